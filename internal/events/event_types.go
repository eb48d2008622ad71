package events

import (
	"time"

	"github.com/spec-kit/shopbot-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated        EventType = "ticket_created"
	EventTicketStatusChanged  EventType = "ticket_status_changed"
	EventRuleAdded            EventType = "rule_added"
	EventChatbotStatusChanged EventType = "chatbot_status_changed"
	EventMessageEscalated     EventType = "message_escalated"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ShopID    string      `json:"shop_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID      string `json:"ticket_id"`
	CustomerEmail string `json:"customer_email"`
	Subject       string `json:"subject"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	TicketID  string              `json:"ticket_id"`
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// RuleAddedPayload payload.
type RuleAddedPayload struct {
	RuleID   string   `json:"rule_id"`
	Question string   `json:"question"`
	Triggers []string `json:"triggers"`
}

// ChatbotStatusChangedPayload payload.
type ChatbotStatusChangedPayload struct {
	OldStatus domain.BotStatus `json:"old_status"`
	NewStatus domain.BotStatus `json:"new_status"`
}

// MessageEscalatedPayload payload.
type MessageEscalatedPayload struct {
	MessagePreview string `json:"message_preview"`
	TicketID       string `json:"ticket_id,omitempty"`
}
