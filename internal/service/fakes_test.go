package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shopbot-service/internal/domain"
	"github.com/spec-kit/shopbot-service/internal/events"
	"github.com/spec-kit/shopbot-service/internal/repository"
)

// captureDispatcher records published events for assertions.
type captureDispatcher struct {
	published []events.Event
}

func (d *captureDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *captureDispatcher) Subscribe(events.EventType, events.EventHandler) {}

// memorySnapshotCache is a map-backed ConfigSnapshotCache. Entries are
// copied on Set and Get, mirroring the JSON round trip of the Redis cache,
// so a stale snapshot stays stale.
type memorySnapshotCache struct {
	entries map[string]*domain.ChatbotConfig
}

func newMemorySnapshotCache() *memorySnapshotCache {
	return &memorySnapshotCache{entries: make(map[string]*domain.ChatbotConfig)}
}

func (c *memorySnapshotCache) Get(_ context.Context, shopID string) (*domain.ChatbotConfig, bool) {
	cfg, ok := c.entries[shopID]
	if !ok {
		return nil, false
	}
	return cloneConfig(cfg), true
}

func (c *memorySnapshotCache) Set(_ context.Context, cfg *domain.ChatbotConfig) {
	c.entries[cfg.ShopID] = cloneConfig(cfg)
}

func (c *memorySnapshotCache) Invalidate(_ context.Context, shopID string) {
	delete(c.entries, shopID)
}

func cloneConfig(cfg *domain.ChatbotConfig) *domain.ChatbotConfig {
	clone := *cfg
	clone.Responses = append([]domain.ResponderRule(nil), cfg.Responses...)
	return &clone
}

// fakeTicketRepo is an in-memory TicketRepository.
type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	ticket.ID = uuid.NewString()
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	clone := *ticket
	r.tickets[ticket.ID] = &clone
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, shopID, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok || ticket.ShopID != shopID {
		return nil, pgx.ErrNoRows
	}
	clone := *ticket
	return &clone, nil
}

func (r *fakeTicketRepo) ListByShop(_ context.Context, shopID string, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if ticket.ShopID != shopID {
			continue
		}
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.SearchTerm != nil {
			term := strings.ToLower(*filter.SearchTerm)
			if !strings.Contains(strings.ToLower(ticket.CustomerEmail), term) &&
				!strings.Contains(strings.ToLower(ticket.Subject), term) {
				continue
			}
		}
		result = append(result, *ticket)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *fakeTicketRepo) UpdateStatus(_ context.Context, shopID, id string, status domain.TicketStatus) error {
	ticket, ok := r.tickets[id]
	if !ok || ticket.ShopID != shopID {
		return pgx.ErrNoRows
	}
	ticket.Status = status
	ticket.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) CountByStatus(_ context.Context, shopID string) (map[domain.TicketStatus]int64, error) {
	counts := make(map[domain.TicketStatus]int64)
	for _, ticket := range r.tickets {
		if ticket.ShopID == shopID {
			counts[ticket.Status]++
		}
	}
	return counts, nil
}

// fakeConfigRepo is an in-memory ChatbotConfigRepository. Setting missOnce
// makes the next GetByShop report no row even when one exists, simulating a
// reader that raced a concurrent first access.
type fakeConfigRepo struct {
	configs  map[string]*domain.ChatbotConfig // keyed by shop id
	creates  int
	missOnce bool
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{configs: make(map[string]*domain.ChatbotConfig)}
}

func (r *fakeConfigRepo) GetByShop(_ context.Context, shopID string) (*domain.ChatbotConfig, error) {
	if r.missOnce {
		r.missOnce = false
		return nil, pgx.ErrNoRows
	}
	cfg, ok := r.configs[shopID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cloneConfig(cfg), nil
}

func (r *fakeConfigRepo) Create(_ context.Context, cfg *domain.ChatbotConfig) error {
	if _, ok := r.configs[cfg.ShopID]; ok {
		// ON CONFLICT DO NOTHING: the existing row wins
		return pgx.ErrNoRows
	}
	cfg.ID = uuid.NewString()
	cfg.CreatedAt = time.Now()
	cfg.UpdatedAt = cfg.CreatedAt
	r.configs[cfg.ShopID] = cloneConfig(cfg)
	r.creates++
	return nil
}

func (r *fakeConfigRepo) UpdateSettings(_ context.Context, cfg *domain.ChatbotConfig) error {
	stored, ok := r.configs[cfg.ShopID]
	if !ok {
		return pgx.ErrNoRows
	}
	rules := stored.Responses
	clone := *cfg
	clone.Responses = rules
	clone.UpdatedAt = time.Now()
	r.configs[cfg.ShopID] = &clone
	return nil
}

func (r *fakeConfigRepo) AddRule(_ context.Context, configID string, rule *domain.ResponderRule) error {
	for _, cfg := range r.configs {
		if cfg.ID == configID {
			rule.Position = len(cfg.Responses)
			rule.CreatedAt = time.Now()
			cfg.Responses = append(cfg.Responses, *rule)
			return nil
		}
	}
	return pgx.ErrNoRows
}
