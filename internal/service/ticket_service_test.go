package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shopbot-service/internal/domain"
	"github.com/spec-kit/shopbot-service/internal/events"
	apperrors "github.com/spec-kit/shopbot-service/pkg/util"
)

func TestCreateTicketDefaultsToPending(t *testing.T) {
	svc := NewTicketService(newFakeTicketRepo(), nil)

	ticket, err := svc.CreateTicket(context.Background(), "shop1", TicketCreateInput{
		CustomerEmail: "juan@example.com",
		Subject:       "Problema con pedido",
		Message:       "No llegó mi pedido",
	})
	require.NoError(t, err)
	require.NotEmpty(t, ticket.ID)
	require.Equal(t, domain.TicketStatusPending, ticket.Status)
}

func TestCreateTicketPublishesStampedEvent(t *testing.T) {
	dispatcher := &captureDispatcher{}
	svc := NewTicketService(newFakeTicketRepo(), dispatcher)

	ticket, err := svc.CreateTicket(context.Background(), "shop1", TicketCreateInput{
		CustomerEmail: "juan@example.com",
		Subject:       "Problema con pedido",
	})
	require.NoError(t, err)
	require.Len(t, dispatcher.published, 1)

	event := dispatcher.published[0]
	require.Equal(t, events.EventTicketCreated, event.Type)
	require.Equal(t, "shop1", event.ShopID)
	require.NotEmpty(t, event.ID)
	require.False(t, event.Timestamp.IsZero())

	payload, ok := event.Payload.(events.TicketCreatedPayload)
	require.True(t, ok)
	require.Equal(t, ticket.ID, payload.TicketID)
}

func TestCreateTicketValidation(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, nil)

	_, err := svc.CreateTicket(context.Background(), "shop1", TicketCreateInput{Subject: "x"})
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	_, err = svc.CreateTicket(context.Background(), "shop1", TicketCreateInput{CustomerEmail: "a@b.com", Subject: "  "})
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	// rejected before mutation: the store is unchanged
	require.Empty(t, repo.tickets)
}

func TestUpdateStatusUnknownTicket(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, nil)

	_, err := svc.UpdateStatus(context.Background(), "shop1", "missing", "RESOLVED")
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
	require.Empty(t, repo.tickets)
}

func TestUpdateStatusInvalidValue(t *testing.T) {
	svc := NewTicketService(newFakeTicketRepo(), nil)

	_, err := svc.UpdateStatus(context.Background(), "shop1", "id", "DONE")
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateStatusTransitionsAreUnrestricted(t *testing.T) {
	svc := NewTicketService(newFakeTicketRepo(), nil)

	ticket, err := svc.CreateTicket(context.Background(), "shop1", TicketCreateInput{
		CustomerEmail: "a@b.com",
		Subject:       "s",
	})
	require.NoError(t, err)

	// every state is reachable from every other, including backwards
	for _, status := range []string{"CLOSED", "PENDING", "RESOLVED", "IN_PROGRESS", "PENDING"} {
		updated, err := svc.UpdateStatus(context.Background(), "shop1", ticket.ID, status)
		require.NoError(t, err)
		require.Equal(t, domain.TicketStatus(status), updated.Status)
	}
}

func TestUpdateStatusScopedToShop(t *testing.T) {
	svc := NewTicketService(newFakeTicketRepo(), nil)

	ticket, err := svc.CreateTicket(context.Background(), "shop1", TicketCreateInput{
		CustomerEmail: "a@b.com",
		Subject:       "s",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), "shop2", ticket.ID, "RESOLVED")
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
