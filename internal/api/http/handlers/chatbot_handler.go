package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shopbot-service/internal/api/dto"
	"github.com/spec-kit/shopbot-service/internal/auth"
	"github.com/spec-kit/shopbot-service/internal/domain"
	"github.com/spec-kit/shopbot-service/internal/service"
	apperrors "github.com/spec-kit/shopbot-service/pkg/util"
)

// ChatbotHandler manages chatbot configuration and message endpoints.
type ChatbotHandler struct {
	chatbots      *service.ChatbotService
	conversations *service.ConversationService
}

// NewChatbotHandler constructs handler.
func NewChatbotHandler(chatbots *service.ChatbotService, conversations *service.ConversationService) *ChatbotHandler {
	return &ChatbotHandler{chatbots: chatbots, conversations: conversations}
}

// GetConfig GET /app/chatbot.
func (h *ChatbotHandler) GetConfig(c *fiber.Ctx) error {
	shop, ok := auth.ShopFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("shop required")
	}
	cfg, err := h.chatbots.GetConfig(c.UserContext(), shop.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": configResponse(cfg)})
}

// UpdateConfig PUT /app/chatbot.
func (h *ChatbotHandler) UpdateConfig(c *fiber.Ctx) error {
	shop, ok := auth.ShopFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("shop required")
	}
	var req dto.UpdateChatbotRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	cfg, err := h.chatbots.UpdateSettings(c.UserContext(), shop.ID, service.ChatbotSettingsInput{
		Name:           req.Name,
		Status:         req.Status,
		WelcomeMessage: req.WelcomeMessage,
		Personality:    req.Personality,
		Schedule: domain.Schedule{
			Start:    req.Schedule.Start,
			End:      req.Schedule.End,
			Timezone: req.Schedule.Timezone,
		},
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": configResponse(cfg)})
}

// AddResponse POST /app/chatbot/responses.
func (h *ChatbotHandler) AddResponse(c *fiber.Ctx) error {
	shop, ok := auth.ShopFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("shop required")
	}
	var req dto.AddResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	rule, err := h.chatbots.AddResponse(c.UserContext(), shop.ID, req.Question, req.Answer, req.Triggers)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ruleResponse(rule)})
}

// HandleMessage POST /app/chatbot/messages.
func (h *ChatbotHandler) HandleMessage(c *fiber.Ctx) error {
	shop, ok := auth.ShopFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("shop required")
	}
	var req dto.ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	reply, err := h.conversations.HandleMessage(c.UserContext(), shop.ID, service.ChatMessageInput{
		Message:       req.Message,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ChatReplyResponse{
		Kind:     string(reply.Kind),
		Reply:    reply.Reply,
		RuleID:   reply.RuleID,
		TicketID: reply.TicketID,
	}})
}

func configResponse(cfg *domain.ChatbotConfig) dto.ChatbotConfigResponse {
	rules := make([]dto.ResponderRuleResponse, 0, len(cfg.Responses))
	for i := range cfg.Responses {
		rules = append(rules, ruleResponse(&cfg.Responses[i]))
	}
	return dto.ChatbotConfigResponse{
		Name:           cfg.Name,
		Status:         string(cfg.Status),
		WelcomeMessage: cfg.WelcomeMessage,
		Personality:    string(cfg.Personality),
		Schedule: dto.ScheduleDTO{
			Start:    cfg.Schedule.Start,
			End:      cfg.Schedule.End,
			Timezone: cfg.Schedule.Timezone,
		},
		Responses: rules,
		UpdatedAt: cfg.UpdatedAt,
	}
}

func ruleResponse(rule *domain.ResponderRule) dto.ResponderRuleResponse {
	return dto.ResponderRuleResponse{
		ID:        rule.ID,
		Question:  rule.Question,
		Answer:    rule.Answer,
		Triggers:  rule.Triggers,
		Position:  rule.Position,
		CreatedAt: rule.CreatedAt,
	}
}
