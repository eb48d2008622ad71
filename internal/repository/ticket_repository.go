package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/shopbot-service/internal/domain"
)

// TicketFilter captures merchant search parameters.
type TicketFilter struct {
	Status     *domain.TicketStatus
	SearchTerm *string
	Limit      int
	Offset     int
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, shopID, id string) (*domain.Ticket, error)
	ListByShop(ctx context.Context, shopID string, filter TicketFilter) ([]domain.Ticket, error)
	UpdateStatus(ctx context.Context, shopID, id string, status domain.TicketStatus) error
	CountByStatus(ctx context.Context, shopID string) (map[domain.TicketStatus]int64, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (shop_id, customer_email, subject, message, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.ShopID,
		ticket.CustomerEmail,
		ticket.Subject,
		ticket.Message,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, shopID, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, shop_id, customer_email, subject, message, status, created_at, updated_at
        FROM tickets WHERE shop_id=$1 AND id=$2`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, shopID, id).Scan(
		&ticket.ID,
		&ticket.ShopID,
		&ticket.CustomerEmail,
		&ticket.Subject,
		&ticket.Message,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListByShop(ctx context.Context, shopID string, filter TicketFilter) ([]domain.Ticket, error) {
	base := `SELECT id, shop_id, customer_email, subject, message, status, created_at, updated_at
             FROM tickets`
	clauses := []string{"shop_id=$1"}
	args := []any{shopID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(customer_email) LIKE %s OR LOWER(subject) LIKE %s OR id::text LIKE %s)",
			placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, shopID, id string, status domain.TicketStatus) error {
	const query = `
        UPDATE tickets SET status=$1, updated_at=NOW()
        WHERE shop_id=$2 AND id=$3`
	cmd, err := r.pool.Exec(ctx, query, status, shopID, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) CountByStatus(ctx context.Context, shopID string) (map[domain.TicketStatus]int64, error) {
	const query = `
        SELECT status, COUNT(*) FROM tickets WHERE shop_id=$1 GROUP BY status`
	rows, err := r.pool.Query(ctx, query, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.TicketStatus]int64)
	for rows.Next() {
		var status domain.TicketStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.ShopID,
			&ticket.CustomerEmail,
			&ticket.Subject,
			&ticket.Message,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
