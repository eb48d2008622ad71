package domain

import "time"

// TicketStatus enumerates lifecycle states for support tickets.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "PENDING"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// ParseTicketStatus validates a raw status value against the closed enum.
func ParseTicketStatus(raw string) (TicketStatus, bool) {
	switch TicketStatus(raw) {
	case TicketStatusPending, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return TicketStatus(raw), true
	default:
		return "", false
	}
}

// Label returns the merchant-facing display label for a status. The switch
// is exhaustive over the enum; an unknown value falls through to the raw
// string so a missing case is visible rather than silently relabelled.
func (s TicketStatus) Label() string {
	switch s {
	case TicketStatusPending:
		return "Pendiente"
	case TicketStatusInProgress:
		return "En progreso"
	case TicketStatusResolved:
		return "Resuelto"
	case TicketStatusClosed:
		return "Cerrado"
	}
	return string(s)
}

// Ticket is the aggregate for customer support requests. Status transitions
// are unrestricted: any status may be set from any other.
type Ticket struct {
	ID            string
	ShopID        string
	CustomerEmail string
	Subject       string
	Message       string
	Status        TicketStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
