package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTicketStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "IN_PROGRESS", "RESOLVED", "CLOSED"} {
		status, ok := ParseTicketStatus(valid)
		require.True(t, ok, valid)
		require.Equal(t, TicketStatus(valid), status)
	}

	for _, invalid := range []string{"", "pending", "OPEN", "DONE"} {
		_, ok := ParseTicketStatus(invalid)
		require.False(t, ok, invalid)
	}
}

func TestTicketStatusLabel(t *testing.T) {
	require.Equal(t, "Pendiente", TicketStatusPending.Label())
	require.Equal(t, "En progreso", TicketStatusInProgress.Label())
	require.Equal(t, "Resuelto", TicketStatusResolved.Label())
	require.Equal(t, "Cerrado", TicketStatusClosed.Label())
}
