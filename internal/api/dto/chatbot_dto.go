package dto

import "time"

// ScheduleDTO carries the attended window over the wire.
type ScheduleDTO struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"timezone"`
}

// UpdateChatbotRequest is the settings form payload.
type UpdateChatbotRequest struct {
	Name           string      `json:"name"`
	Status         string      `json:"status"`
	WelcomeMessage string      `json:"welcome_message"`
	Personality    string      `json:"personality"`
	Schedule       ScheduleDTO `json:"schedule"`
}

// AddResponseRequest is the add-rule form payload. Triggers is the raw
// comma-separated keyword field.
type AddResponseRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Triggers string `json:"triggers"`
}

// ChatMessageRequest is one inbound customer message from the widget.
type ChatMessageRequest struct {
	Message       string `json:"message"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

// ResponderRuleResponse mirrors a configured rule.
type ResponderRuleResponse struct {
	ID        string    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Triggers  []string  `json:"triggers"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatbotConfigResponse mirrors the configuration aggregate.
type ChatbotConfigResponse struct {
	Name           string                  `json:"name"`
	Status         string                  `json:"status"`
	WelcomeMessage string                  `json:"welcome_message"`
	Personality    string                  `json:"personality"`
	Schedule       ScheduleDTO             `json:"schedule"`
	Responses      []ResponderRuleResponse `json:"responses"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// ChatReplyResponse is the widget-facing outcome of one message.
type ChatReplyResponse struct {
	Kind     string `json:"kind"`
	Reply    string `json:"reply,omitempty"`
	RuleID   string `json:"rule_id,omitempty"`
	TicketID string `json:"ticket_id,omitempty"`
}
