package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/storage"
)

// Listing defaults, matching the HTTP surface.
const (
	defaultOrderPage  = 1
	defaultOrderLimit = 100
)

// OrderStore implements storage.OrderStore using PostgreSQL.
type OrderStore struct {
	pool *Pool
}

// NewOrderStore creates a new OrderStore.
func NewOrderStore(pool *Pool) *OrderStore {
	return &OrderStore{pool: pool}
}

// Compile-time interface check.
var _ storage.OrderStore = (*OrderStore)(nil)

// Insert adds a new order and assigns its ID and CreatedAt.
func (s *OrderStore) Insert(ctx context.Context, o *domain.Order) error {
	if o == nil || o.SrcToken == "" || o.DstToken == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO orders (
			intent_id, src_token, src_address, src_amount,
			dst_token, dst_address, min_received, expiration, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := s.pool.QueryRow(ctx, query,
		o.IntentID,
		o.SrcToken,
		o.SrcAddress,
		o.SrcAmount,
		o.DstToken,
		o.DstAddress,
		o.MinReceived,
		o.Expiration,
		o.Status,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by its ID. Returns ErrNotFound if not exists.
func (s *OrderStore) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := orderSelect + ` WHERE id = $1`

	row := s.pool.QueryRow(ctx, query, id)
	o, err := scanOrder(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return o, nil
}

// List retrieves orders matching the filter, ordered by ID ASC.
func (s *OrderStore) List(ctx context.Context, f storage.OrderFilter) ([]*domain.Order, error) {
	page := f.Page
	if page < 1 {
		page = defaultOrderPage
	}
	limit := f.Limit
	if limit < 1 {
		limit = defaultOrderLimit
	}
	offset := (page - 1) * limit

	query := orderSelect + `
		WHERE ($1 = '' OR src_address ILIKE '%' || $1 || '%')
		ORDER BY id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := s.pool.Query(ctx, query, f.SrcAddress, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// ListOpenUnassigned retrieves open orders with no batch assignment,
// ordered by ID ASC.
func (s *OrderStore) ListOpenUnassigned(ctx context.Context) ([]*domain.Order, error) {
	query := orderSelect + `
		WHERE status = 'open' AND batch_id IS NULL
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list open unassigned orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

const orderSelect = `
	SELECT id, intent_id, src_token, src_address, src_amount,
	       dst_token, dst_address, min_received, expiration,
	       status, batch_id, created_at
	FROM orders
`

// scanOrder scans a single row into an Order.
func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order

	err := row.Scan(
		&o.ID,
		&o.IntentID,
		&o.SrcToken,
		&o.SrcAddress,
		&o.SrcAmount,
		&o.DstToken,
		&o.DstAddress,
		&o.MinReceived,
		&o.Expiration,
		&o.Status,
		&o.BatchID,
		&o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

// collectOrders drains rows into a slice of orders.
func collectOrders(rows pgx.Rows) ([]*domain.Order, error) {
	var result []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return result, nil
}
