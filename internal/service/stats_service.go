package service

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ChatStats is the dashboard counter snapshot for one shop.
type ChatStats struct {
	Conversations int64
	AutoReplies   int64
	Escalations   int64
}

// StatsService keeps per-shop conversation counters in Redis. A nil client
// turns every operation into a no-op so the chat flow never depends on the
// cache being up.
type StatsService struct {
	client *redis.Client
}

// NewStatsService constructs the service.
func NewStatsService(client *redis.Client) *StatsService {
	return &StatsService{client: client}
}

func statsKey(shopID, counter string) string {
	return "chatbot:stats:" + shopID + ":" + counter
}

// RecordConversation increments the conversation counter.
func (s *StatsService) RecordConversation(ctx context.Context, shopID string) {
	s.incr(ctx, shopID, "conversations")
}

// RecordAutoReply increments the auto-reply counter.
func (s *StatsService) RecordAutoReply(ctx context.Context, shopID string) {
	s.incr(ctx, shopID, "auto_replies")
}

// RecordEscalation increments the escalation counter.
func (s *StatsService) RecordEscalation(ctx context.Context, shopID string) {
	s.incr(ctx, shopID, "escalations")
}

// Snapshot reads the current counters.
func (s *StatsService) Snapshot(ctx context.Context, shopID string) ChatStats {
	if s == nil || s.client == nil {
		return ChatStats{}
	}
	return ChatStats{
		Conversations: s.get(ctx, shopID, "conversations"),
		AutoReplies:   s.get(ctx, shopID, "auto_replies"),
		Escalations:   s.get(ctx, shopID, "escalations"),
	}
}

func (s *StatsService) incr(ctx context.Context, shopID, counter string) {
	if s == nil || s.client == nil {
		return
	}
	_ = s.client.Incr(ctx, statsKey(shopID, counter)).Err()
}

func (s *StatsService) get(ctx context.Context, shopID, counter string) int64 {
	val, err := s.client.Get(ctx, statsKey(shopID, counter)).Int64()
	if err != nil {
		return 0
	}
	return val
}
