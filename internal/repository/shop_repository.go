package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shopbot-service/internal/domain"
)

// ShopRepository encapsulates shop persistence.
type ShopRepository interface {
	GetByDomain(ctx context.Context, shopDomain string) (*domain.Shop, error)
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
	Upsert(ctx context.Context, shop *domain.Shop) error
}

type shopRepository struct {
	pool *pgxpool.Pool
}

// NewShopRepository instantiates repository.
func NewShopRepository(pool *pgxpool.Pool) ShopRepository {
	return &shopRepository{pool: pool}
}

func (r *shopRepository) GetByDomain(ctx context.Context, shopDomain string) (*domain.Shop, error) {
	const query = `
        SELECT id, domain, name, created_at, updated_at
        FROM shops WHERE domain=$1`
	var shop domain.Shop
	if err := r.pool.QueryRow(ctx, query, shopDomain).Scan(
		&shop.ID,
		&shop.Domain,
		&shop.Name,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *shopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	const query = `
        SELECT id, domain, name, created_at, updated_at
        FROM shops WHERE id=$1`
	var shop domain.Shop
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&shop.ID,
		&shop.Domain,
		&shop.Name,
		&shop.CreatedAt,
		&shop.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &shop, nil
}

// Upsert inserts the shop on first sight of its domain and refreshes the
// name on subsequent requests.
func (r *shopRepository) Upsert(ctx context.Context, shop *domain.Shop) error {
	const query = `
        INSERT INTO shops (domain, name)
        VALUES ($1,$2)
        ON CONFLICT (domain) DO UPDATE SET name=EXCLUDED.name, updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, shop.Domain, shop.Name).
		Scan(&shop.ID, &shop.CreatedAt, &shop.UpdatedAt)
}
