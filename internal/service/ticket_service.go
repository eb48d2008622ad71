package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shopbot-service/internal/domain"
	"github.com/spec-kit/shopbot-service/internal/events"
	"github.com/spec-kit/shopbot-service/internal/repository"
	apperrors "github.com/spec-kit/shopbot-service/pkg/util"
)

// TicketService coordinates support ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	CustomerEmail string
	Subject       string
	Message       string
}

// TicketListFilter describes merchant listing filters.
type TicketListFilter struct {
	Status     *domain.TicketStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

// CreateTicket opens a ticket in PENDING state.
func (s *TicketService) CreateTicket(ctx context.Context, shopID string, input TicketCreateInput) (*domain.Ticket, error) {
	email := strings.TrimSpace(input.CustomerEmail)
	subject := strings.TrimSpace(input.Subject)
	if email == "" {
		return nil, apperrors.NewValidationError("customer email required", nil)
	}
	if subject == "" {
		return nil, apperrors.NewValidationError("subject required", nil)
	}

	ticket := &domain.Ticket{
		ShopID:        shopID,
		CustomerEmail: email,
		Subject:       subject,
		Message:       strings.TrimSpace(input.Message),
		Status:        domain.TicketStatusPending,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:   events.EventTicketCreated,
		ShopID: shopID,
		Payload: events.TicketCreatedPayload{
			TicketID:      ticket.ID,
			CustomerEmail: ticket.CustomerEmail,
			Subject:       ticket.Subject,
		},
	})
	return ticket, nil
}

// ListTickets returns the shop's tickets, newest first.
func (s *TicketService) ListTickets(ctx context.Context, shopID string, filter TicketListFilter) ([]domain.Ticket, error) {
	return s.tickets.ListByShop(ctx, shopID, repository.TicketFilter{
		Status:     filter.Status,
		SearchTerm: filter.SearchTerm,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// UpdateStatus relabels a ticket. Any status may be set from any other; the
// lifecycle carries no transition guard on purpose.
func (s *TicketService) UpdateStatus(ctx context.Context, shopID, ticketID, rawStatus string) (*domain.Ticket, error) {
	status, ok := domain.ParseTicketStatus(rawStatus)
	if !ok {
		return nil, apperrors.NewValidationError("invalid ticket status", map[string]any{"status": rawStatus})
	}

	ticket, err := s.tickets.GetByID(ctx, shopID, ticketID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	if err := s.tickets.UpdateStatus(ctx, shopID, ticketID, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, err
	}
	ticket.Status = status

	if oldStatus != status {
		s.publishEvent(ctx, events.Event{
			Type:   events.EventTicketStatusChanged,
			ShopID: shopID,
			Payload: events.TicketStatusChangedPayload{
				TicketID:  ticketID,
				OldStatus: oldStatus,
				NewStatus: status,
			},
		})
	}
	return ticket, nil
}

// CountByStatus returns per-status ticket counts for the dashboard.
func (s *TicketService) CountByStatus(ctx context.Context, shopID string) (map[domain.TicketStatus]int64, error) {
	return s.tickets.CountByStatus(ctx, shopID)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
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
