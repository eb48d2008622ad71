package dto

import "time"

// CreateTicketRequest describes ticket creation payload.
type CreateTicketRequest struct {
	CustomerEmail string `json:"customer_email"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
}

// TicketResponse mirrors a support ticket.
type TicketResponse struct {
	ID            string    `json:"id"`
	CustomerEmail string    `json:"customer_email"`
	Subject       string    `json:"subject"`
	Message       string    `json:"message"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"status_label"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
