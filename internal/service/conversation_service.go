package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/shopbot-service/internal/chatbot"
	"github.com/spec-kit/shopbot-service/internal/domain"
	"github.com/spec-kit/shopbot-service/internal/events"
	apperrors "github.com/spec-kit/shopbot-service/pkg/util"
)

// ConversationService orchestrates one inbound customer message end to end:
// resolve against the config snapshot, answer or consult the external
// workflow, and open a ticket on escalation when the customer left an email.
// The resolver itself stays pure; every side effect lives here.
type ConversationService struct {
	chatbots   *ChatbotService
	tickets    *TicketService
	webhook    *ChatWebhookClient
	stats      *StatsService
	dispatcher events.Dispatcher
	logger     *zap.Logger
	clock      func() time.Time
}

// ConversationDependencies bundles collaborators for the service.
type ConversationDependencies struct {
	Chatbots   *ChatbotService
	Tickets    *TicketService
	Webhook    *ChatWebhookClient
	Stats      *StatsService
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// ChatMessageInput is one inbound customer message.
type ChatMessageInput struct {
	Message       string
	CustomerEmail string
}

// ChatReply is the outcome returned to the chat widget.
type ChatReply struct {
	Kind     chatbot.DecisionKind
	Reply    string
	RuleID   string
	TicketID string
}

// NewConversationService constructs the service.
func NewConversationService(deps ConversationDependencies) *ConversationService {
	return &ConversationService{
		chatbots:   deps.Chatbots,
		tickets:    deps.Tickets,
		webhook:    deps.Webhook,
		stats:      deps.Stats,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		clock:      time.Now,
	}
}

// HandleMessage resolves an inbound message for the shop.
func (s *ConversationService) HandleMessage(ctx context.Context, shopID string, input ChatMessageInput) (*ChatReply, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}

	cfg, err := s.chatbots.GetConfig(ctx, shopID)
	if err != nil {
		return nil, err
	}

	decision := chatbot.Resolve(message, cfg, s.clock())
	if decision.Kind == chatbot.DecisionDisabled {
		return &ChatReply{Kind: decision.Kind}, nil
	}

	s.stats.RecordConversation(ctx, shopID)

	switch decision.Kind {
	case chatbot.DecisionOutOfHours:
		return &ChatReply{
			Kind:  decision.Kind,
			Reply: outOfHoursNotice(cfg.Schedule),
		}, nil

	case chatbot.DecisionAutoReply:
		s.stats.RecordAutoReply(ctx, shopID)
		return &ChatReply{
			Kind:   decision.Kind,
			Reply:  decision.Answer,
			RuleID: decision.RuleID,
		}, nil
	}

	return s.escalate(ctx, shopID, message, input.CustomerEmail)
}

func (s *ConversationService) escalate(ctx context.Context, shopID, message, customerEmail string) (*ChatReply, error) {
	s.stats.RecordEscalation(ctx, shopID)

	reply := &ChatReply{Kind: chatbot.DecisionEscalate}

	if s.webhook.Configured() {
		answer, err := s.webhook.Ask(ctx, message)
		if err != nil {
			s.logger.Warn("chat webhook failed, using fallback reply", zap.Error(err))
			reply.Reply = s.webhook.FallbackReply()
		} else {
			reply.Reply = answer
		}
	} else {
		reply.Reply = s.webhook.FallbackReply()
	}

	if strings.TrimSpace(customerEmail) != "" {
		ticket, err := s.tickets.CreateTicket(ctx, shopID, TicketCreateInput{
			CustomerEmail: customerEmail,
			Subject:       escalationSubject(message),
			Message:       message,
		})
		if err != nil {
			return nil, err
		}
		reply.TicketID = ticket.ID
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventMessageEscalated,
		ShopID: shopID,
		Payload: events.MessageEscalatedPayload{
			MessagePreview: preview(message, 120),
			TicketID:       reply.TicketID,
		},
	})
	return reply, nil
}

func outOfHoursNotice(s domain.Schedule) string {
	if s.IsZero() {
		return "Estamos fuera de horario. Déjanos tu mensaje y te responderemos pronto."
	}
	return fmt.Sprintf(
		"Estamos fuera de horario. Nuestro horario de atención es de %s a %s (%s). Déjanos tu mensaje y te responderemos pronto.",
		s.Start, s.End, s.Timezone)
}

func escalationSubject(message string) string {
	return "Consulta de cliente: " + preview(message, 60)
}

func preview(message string, max int) string {
	runes := []rune(message)
	if len(runes) <= max {
		return message
	}
	return string(runes[:max]) + "…"
}

func (s *ConversationService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
