package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shopbot-service/internal/chatbot"
	"github.com/spec-kit/shopbot-service/internal/domain"
	"github.com/spec-kit/shopbot-service/internal/events"
	"github.com/spec-kit/shopbot-service/internal/repository"
	apperrors "github.com/spec-kit/shopbot-service/pkg/util"
)

// ConfigSnapshotCache keeps per-shop config snapshots between reads. Every
// write path must Invalidate, or the resolver serves stale rules until the
// snapshot expires.
type ConfigSnapshotCache interface {
	Get(ctx context.Context, shopID string) (*domain.ChatbotConfig, bool)
	Set(ctx context.Context, cfg *domain.ChatbotConfig)
	Invalidate(ctx context.Context, shopID string)
}

// ChatbotService owns the chatbot configuration aggregate.
type ChatbotService struct {
	configs    repository.ChatbotConfigRepository
	cache      ConfigSnapshotCache
	dispatcher events.Dispatcher
}

// ChatbotDependencies bundles collaborators for the service.
type ChatbotDependencies struct {
	ConfigRepo repository.ChatbotConfigRepository
	Cache      ConfigSnapshotCache
	Dispatcher events.Dispatcher
}

// ChatbotSettingsInput describes a configuration update.
type ChatbotSettingsInput struct {
	Name           string
	Status         string
	WelcomeMessage string
	Personality    string
	Schedule       domain.Schedule
}

// NewChatbotService constructs the service.
func NewChatbotService(deps ChatbotDependencies) *ChatbotService {
	return &ChatbotService{
		configs:    deps.ConfigRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
	}
}

// GetConfig loads the shop's configuration, creating it with defaults on
// first access. Reads go through the snapshot cache.
func (s *ChatbotService) GetConfig(ctx context.Context, shopID string) (*domain.ChatbotConfig, error) {
	if cfg, ok := s.cache.Get(ctx, shopID); ok {
		return cfg, nil
	}

	cfg, err := s.configs.GetByShop(ctx, shopID)
	if errors.Is(err, pgx.ErrNoRows) {
		cfg = defaultConfig(shopID)
		if err := s.configs.Create(ctx, cfg); err != nil {
			if !errors.Is(err, pgx.ErrNoRows) {
				return nil, err
			}
			// lost the race to a concurrent first access; use the winner's row
			cfg, err = s.configs.GetByShop(ctx, shopID)
			if err != nil {
				return nil, err
			}
		}
	} else if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, cfg)
	return cfg, nil
}

// UpdateSettings replaces the merchant-editable configuration fields.
func (s *ChatbotService) UpdateSettings(ctx context.Context, shopID string, input ChatbotSettingsInput) (*domain.ChatbotConfig, error) {
	status, ok := domain.ParseBotStatus(input.Status)
	if !ok {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": input.Status})
	}
	personality, ok := domain.ParsePersonality(input.Personality)
	if !ok {
		return nil, apperrors.NewValidationError("invalid personality", map[string]any{"personality": input.Personality})
	}
	if err := chatbot.ValidateSchedule(input.Schedule); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	cfg, err := s.GetConfig(ctx, shopID)
	if err != nil {
		return nil, err
	}

	oldStatus := cfg.Status
	cfg.Name = input.Name
	cfg.Status = status
	cfg.WelcomeMessage = input.WelcomeMessage
	cfg.Personality = personality
	cfg.Schedule = input.Schedule

	if err := s.configs.UpdateSettings(ctx, cfg); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, shopID)

	if oldStatus != cfg.Status {
		s.publishEvent(ctx, events.Event{
			Type:   events.EventChatbotStatusChanged,
			ShopID: shopID,
			Payload: events.ChatbotStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: cfg.Status,
			},
		})
	}
	return cfg, nil
}

// AddResponse appends a responder rule to the shop's configuration.
// rawTriggers is the comma-separated keyword field from the admin form.
func (s *ChatbotService) AddResponse(ctx context.Context, shopID, question, answer, rawTriggers string) (*domain.ResponderRule, error) {
	rule, err := chatbot.NewRule(question, answer, rawTriggers)
	if err != nil {
		return nil, err
	}

	cfg, err := s.GetConfig(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if err := s.configs.AddRule(ctx, cfg.ID, &rule); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, shopID)

	s.publishEvent(ctx, events.Event{
		Type:   events.EventRuleAdded,
		ShopID: shopID,
		Payload: events.RuleAddedPayload{
			RuleID:   rule.ID,
			Question: rule.Question,
			Triggers: rule.Triggers,
		},
	})
	return &rule, nil
}

func (s *ChatbotService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func defaultConfig(shopID string) *domain.ChatbotConfig {
	return &domain.ChatbotConfig{
		ShopID:         shopID,
		Name:           "",
		Status:         domain.BotStatusActive,
		WelcomeMessage: "",
		Personality:    domain.PersonalityFriendly,
	}
}
