package service

import (
	"context"

	"github.com/spec-kit/shopbot-service/internal/domain"
)

// DashboardSummary aggregates the numbers shown on the admin landing page.
type DashboardSummary struct {
	Stats          ChatStats
	TicketsTotal   int64
	TicketsByState map[domain.TicketStatus]int64
	ResolutionRate float64
}

// DashboardService assembles the merchant dashboard from the counters in
// Redis and the ticket table in Postgres.
type DashboardService struct {
	tickets *TicketService
	stats   *StatsService
}

// NewDashboardService constructs the service.
func NewDashboardService(tickets *TicketService, stats *StatsService) *DashboardService {
	return &DashboardService{tickets: tickets, stats: stats}
}

// Summary builds the dashboard snapshot for a shop.
func (s *DashboardService) Summary(ctx context.Context, shopID string) (*DashboardSummary, error) {
	counts, err := s.tickets.CountByStatus(ctx, shopID)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range counts {
		total += count
	}

	stats := s.stats.Snapshot(ctx, shopID)

	summary := &DashboardSummary{
		Stats:          stats,
		TicketsTotal:   total,
		TicketsByState: counts,
	}
	if stats.Conversations > 0 {
		summary.ResolutionRate = float64(stats.AutoReplies) / float64(stats.Conversations) * 100
	}
	return summary, nil
}
