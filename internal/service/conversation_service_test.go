package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/shopbot-service/internal/chatbot"
	"github.com/spec-kit/shopbot-service/internal/config"
	"github.com/spec-kit/shopbot-service/internal/domain"
	apperrors "github.com/spec-kit/shopbot-service/pkg/util"
)

type conversationFixture struct {
	service    *ConversationService
	chatbots   *ChatbotService
	ticketRepo *fakeTicketRepo
}

func newConversationFixture(t *testing.T, webhookURL string) *conversationFixture {
	t.Helper()

	chatbots := newChatbotService(newFakeConfigRepo())
	ticketRepo := newFakeTicketRepo()
	tickets := NewTicketService(ticketRepo, nil)
	webhook := NewChatWebhookClient(config.WebhookConfig{
		URL:            webhookURL,
		TimeoutSeconds: 2,
		FallbackReply:  "Lo siento, ha ocurrido un error. Por favor, intenta de nuevo.",
	}, zap.NewNop())

	svc := NewConversationService(ConversationDependencies{
		Chatbots: chatbots,
		Tickets:  tickets,
		Webhook:  webhook,
		Stats:    NewStatsService(nil),
		Logger:   zap.NewNop(),
	})

	// fixed instant inside the 09:00-18:00 Mexico City window
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	svc.clock = func() time.Time { return time.Date(2024, 1, 1, 14, 0, 0, 0, loc) }

	_, err = chatbots.UpdateSettings(context.Background(), "shop1", ChatbotSettingsInput{
		Name:        "ShopBot",
		Status:      "active",
		Personality: "friendly",
		Schedule:    domain.Schedule{Start: "09:00", End: "18:00", Timezone: "America/Mexico_City"},
	})
	require.NoError(t, err)

	_, err = chatbots.AddResponse(context.Background(), "shop1", "¿Cuánto cuesta el envío?", "Envío gratis sobre $500", "envío, gratis")
	require.NoError(t, err)

	return &conversationFixture{service: svc, chatbots: chatbots, ticketRepo: ticketRepo}
}

func TestHandleMessageAutoReply(t *testing.T) {
	fx := newConversationFixture(t, "")

	reply, err := fx.service.HandleMessage(context.Background(), "shop1", ChatMessageInput{
		Message: "¿cuánto cuesta el envío?",
	})
	require.NoError(t, err)
	require.Equal(t, chatbot.DecisionAutoReply, reply.Kind)
	require.Equal(t, "Envío gratis sobre $500", reply.Reply)
	require.Empty(t, reply.TicketID)
	require.Empty(t, fx.ticketRepo.tickets)
}

func TestHandleMessageOutOfHours(t *testing.T) {
	fx := newConversationFixture(t, "")
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)
	fx.service.clock = func() time.Time { return time.Date(2024, 1, 1, 20, 0, 0, 0, loc) }

	reply, err := fx.service.HandleMessage(context.Background(), "shop1", ChatMessageInput{
		Message: "¿cuánto cuesta el envío?",
	})
	require.NoError(t, err)
	require.Equal(t, chatbot.DecisionOutOfHours, reply.Kind)
	require.Contains(t, reply.Reply, "09:00")
	require.Contains(t, reply.Reply, "18:00")
}

func TestHandleMessageDisabled(t *testing.T) {
	fx := newConversationFixture(t, "")
	_, err := fx.chatbots.UpdateSettings(context.Background(), "shop1", ChatbotSettingsInput{
		Status:      "inactive",
		Personality: "friendly",
	})
	require.NoError(t, err)

	reply, err := fx.service.HandleMessage(context.Background(), "shop1", ChatMessageInput{Message: "envío"})
	require.NoError(t, err)
	require.Equal(t, chatbot.DecisionDisabled, reply.Kind)
	require.Empty(t, reply.Reply)
}

func TestHandleMessageEscalatesThroughWebhook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"Un agente te contactará pronto."}`))
	}))
	defer srv.Close()

	fx := newConversationFixture(t, srv.URL)

	reply, err := fx.service.HandleMessage(context.Background(), "shop1", ChatMessageInput{
		Message: "¿tienen la playera en talla M?",
	})
	require.NoError(t, err)
	require.Equal(t, chatbot.DecisionEscalate, reply.Kind)
	require.Equal(t, "Un agente te contactará pronto.", reply.Reply)
	// no email supplied, so no ticket is opened
	require.Empty(t, reply.TicketID)
	require.Empty(t, fx.ticketRepo.tickets)
}

func TestHandleMessageEscalationOpensTicketWithEmail(t *testing.T) {
	fx := newConversationFixture(t, "")

	reply, err := fx.service.HandleMessage(context.Background(), "shop1", ChatMessageInput{
		Message:       "mi pedido no ha llegado",
		CustomerEmail: "juan@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, chatbot.DecisionEscalate, reply.Kind)
	require.NotEmpty(t, reply.TicketID)

	ticket := fx.ticketRepo.tickets[reply.TicketID]
	require.NotNil(t, ticket)
	require.Equal(t, domain.TicketStatusPending, ticket.Status)
	require.Equal(t, "juan@example.com", ticket.CustomerEmail)
	require.Equal(t, "mi pedido no ha llegado", ticket.Message)
}

func TestHandleMessageWebhookFailureFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("not json"))
			},
		},
		{
			name: "empty response field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			fx := newConversationFixture(t, srv.URL)
			reply, err := fx.service.HandleMessage(context.Background(), "shop1", ChatMessageInput{
				Message: "pregunta sin respuesta configurada",
			})
			require.NoError(t, err)
			require.Equal(t, chatbot.DecisionEscalate, reply.Kind)
			require.Equal(t, "Lo siento, ha ocurrido un error. Por favor, intenta de nuevo.", reply.Reply)
		})
	}
}

func TestHandleMessageRequiresText(t *testing.T) {
	fx := newConversationFixture(t, "")

	_, err := fx.service.HandleMessage(context.Background(), "shop1", ChatMessageInput{Message: "   "})
	require.Error(t, err)
	require.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}
