package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shopbot-service/internal/api/dto"
	"github.com/spec-kit/shopbot-service/internal/auth"
	"github.com/spec-kit/shopbot-service/internal/domain"
	"github.com/spec-kit/shopbot-service/internal/service"
	apperrors "github.com/spec-kit/shopbot-service/pkg/util"
)

// TicketsHandler manages merchant ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /app/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	shop, ok := auth.ShopFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("shop required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), shop.ID, service.TicketCreateInput{
		CustomerEmail: req.CustomerEmail,
		Subject:       req.Subject,
		Message:       req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket)})
}

// ListTickets GET /app/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	shop, ok := auth.ShopFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("shop required")
	}

	tickets, err := h.service.ListTickets(c.UserContext(), shop.ID, parseTicketQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateStatus POST /app/tickets/status. Accepts form fields ticketId and
// status, matching the admin page's status select.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	shop, ok := auth.ShopFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("shop required")
	}

	ticketID := strings.TrimSpace(c.FormValue("ticketId"))
	status := strings.TrimSpace(c.FormValue("status"))
	if ticketID == "" || status == "" {
		return apperrors.NewValidationError("ticketId and status required", nil)
	}

	ticket, err := h.service.UpdateStatus(c.UserContext(), shop.ID, ticketID, status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketResponse(ticket)})
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if raw := c.Query("status"); raw != "" {
		if status, ok := domain.ParseTicketStatus(raw); ok {
			filter.Status = &status
		}
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:            ticket.ID,
		CustomerEmail: ticket.CustomerEmail,
		Subject:       ticket.Subject,
		Message:       ticket.Message,
		Status:        string(ticket.Status),
		StatusLabel:   ticket.Status.Label(),
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}
