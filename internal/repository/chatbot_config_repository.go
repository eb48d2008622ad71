package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shopbot-service/internal/domain"
)

// ChatbotConfigRepository encapsulates chatbot configuration persistence.
// Responder rules are embedded in the aggregate: they are loaded and saved
// through the config, never addressed independently.
type ChatbotConfigRepository interface {
	GetByShop(ctx context.Context, shopID string) (*domain.ChatbotConfig, error)
	Create(ctx context.Context, cfg *domain.ChatbotConfig) error
	UpdateSettings(ctx context.Context, cfg *domain.ChatbotConfig) error
	AddRule(ctx context.Context, configID string, rule *domain.ResponderRule) error
}

type chatbotConfigRepository struct {
	pool *pgxpool.Pool
}

// NewChatbotConfigRepository instantiates repository.
func NewChatbotConfigRepository(pool *pgxpool.Pool) ChatbotConfigRepository {
	return &chatbotConfigRepository{pool: pool}
}

func (r *chatbotConfigRepository) GetByShop(ctx context.Context, shopID string) (*domain.ChatbotConfig, error) {
	const query = `
        SELECT id, shop_id, name, status, welcome_message, personality,
               schedule_start, schedule_end, schedule_timezone, created_at, updated_at
        FROM chatbot_configs WHERE shop_id=$1`
	var cfg domain.ChatbotConfig
	if err := r.pool.QueryRow(ctx, query, shopID).Scan(
		&cfg.ID,
		&cfg.ShopID,
		&cfg.Name,
		&cfg.Status,
		&cfg.WelcomeMessage,
		&cfg.Personality,
		&cfg.Schedule.Start,
		&cfg.Schedule.End,
		&cfg.Schedule.Timezone,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rules, err := r.listRules(ctx, cfg.ID)
	if err != nil {
		return nil, err
	}
	cfg.Responses = rules
	return &cfg, nil
}

// Create inserts the shop's config row. When a concurrent request already
// created it, nothing is inserted and pgx.ErrNoRows is returned; callers
// re-read the winning row.
func (r *chatbotConfigRepository) Create(ctx context.Context, cfg *domain.ChatbotConfig) error {
	const query = `
        INSERT INTO chatbot_configs (shop_id, name, status, welcome_message, personality,
            schedule_start, schedule_end, schedule_timezone)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        ON CONFLICT (shop_id) DO NOTHING
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		cfg.ShopID,
		cfg.Name,
		cfg.Status,
		cfg.WelcomeMessage,
		cfg.Personality,
		cfg.Schedule.Start,
		cfg.Schedule.End,
		cfg.Schedule.Timezone,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
}

func (r *chatbotConfigRepository) UpdateSettings(ctx context.Context, cfg *domain.ChatbotConfig) error {
	const query = `
        UPDATE chatbot_configs SET name=$1, status=$2, welcome_message=$3, personality=$4,
            schedule_start=$5, schedule_end=$6, schedule_timezone=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		cfg.Name,
		cfg.Status,
		cfg.WelcomeMessage,
		cfg.Personality,
		cfg.Schedule.Start,
		cfg.Schedule.End,
		cfg.Schedule.Timezone,
		cfg.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AddRule appends a rule at the end of the config's sequence. Position is
// assigned from the current maximum so stored order matches insertion order.
func (r *chatbotConfigRepository) AddRule(ctx context.Context, configID string, rule *domain.ResponderRule) error {
	const query = `
        INSERT INTO responder_rules (id, config_id, question, answer, triggers, position)
        VALUES ($1,$2,$3,$4,$5,
            (SELECT COALESCE(MAX(position)+1, 0) FROM responder_rules WHERE config_id=$2))
        RETURNING position, created_at`
	return r.pool.QueryRow(ctx, query,
		rule.ID,
		configID,
		rule.Question,
		rule.Answer,
		rule.Triggers,
	).Scan(&rule.Position, &rule.CreatedAt)
}

func (r *chatbotConfigRepository) listRules(ctx context.Context, configID string) ([]domain.ResponderRule, error) {
	const query = `
        SELECT id, question, answer, triggers, position, created_at
        FROM responder_rules WHERE config_id=$1 ORDER BY position ASC`
	rows, err := r.pool.Query(ctx, query, configID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.ResponderRule
	for rows.Next() {
		var rule domain.ResponderRule
		if err := rows.Scan(
			&rule.ID,
			&rule.Question,
			&rule.Answer,
			&rule.Triggers,
			&rule.Position,
			&rule.CreatedAt,
		); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}
