package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/storage"
)

// defaultBatchLimit caps batch listings when the filter has no limit.
const defaultBatchLimit = 10

// BatchStore implements storage.BatchStore using PostgreSQL. The open and
// fill transitions update the batches and orders tables in one transaction.
type BatchStore struct {
	pool *Pool
}

// NewBatchStore creates a new BatchStore.
func NewBatchStore(pool *Pool) *BatchStore {
	return &BatchStore{pool: pool}
}

// Compile-time interface check.
var _ storage.BatchStore = (*BatchStore)(nil)

// Open creates a new open batch over the given orders and stamps each order
// with the new batch id, atomically.
func (s *BatchStore) Open(ctx context.Context, orderIDs []int64) (*domain.Batch, error) {
	if len(orderIDs) == 0 {
		return nil, storage.ErrInvalidInput
	}

	b := &domain.Batch{
		OrderIDs: append([]int64(nil), orderIDs...),
		Status:   domain.BatchStatusOpen,
	}

	err := s.pool.withTx(ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO batches (status) VALUES ('open') RETURNING batch_id, created_at`,
		).Scan(&b.BatchID, &b.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert batch: %w", err)
		}

		// Orders already carrying a batch reference are never reassigned.
		_, err = tx.Exec(ctx,
			`UPDATE orders SET batch_id = $1 WHERE id = ANY($2) AND batch_id IS NULL`,
			b.BatchID, orderIDs,
		)
		if err != nil {
			return fmt.Errorf("assign orders to batch: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// GetBySeq retrieves a batch by its sequence id. Returns ErrNotFound if not
// exists.
func (s *BatchStore) GetBySeq(ctx context.Context, batchID int64) (*domain.Batch, error) {
	row := s.pool.QueryRow(ctx, batchSelect+` WHERE batch_id = $1`, batchID)
	b, err := scanBatch(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get batch by seq: %w", err)
	}

	if err := s.attachOrderIDs(ctx, []*domain.Batch{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// Latest retrieves the batch with the highest sequence id.
func (s *BatchStore) Latest(ctx context.Context) (*domain.Batch, error) {
	row := s.pool.QueryRow(ctx, batchSelect+` ORDER BY batch_id DESC LIMIT 1`)
	b, err := scanBatch(row)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get latest batch: %w", err)
	}

	if err := s.attachOrderIDs(ctx, []*domain.Batch{b}); err != nil {
		return nil, err
	}
	return b, nil
}

// List retrieves batches matching the filter, newest first.
func (s *BatchStore) List(ctx context.Context, f storage.BatchFilter) ([]*domain.Batch, error) {
	limit := f.Limit
	if limit < 1 {
		limit = defaultBatchLimit
	}

	query := batchSelect + `
		WHERE ($1::BIGINT IS NULL OR batch_id >= $1)
		  AND ($2::BIGINT IS NULL OR batch_id <= $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY batch_id DESC
		LIMIT $4
	`

	rows, err := s.pool.Query(ctx, query, f.StartBatchID, f.EndBatchID, string(f.Status), limit)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var result []*domain.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}

	if err := s.attachOrderIDs(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Fill attaches the fill record, marks the batch filled and marks every
// member order filled, atomically.
func (s *BatchStore) Fill(ctx context.Context, batchID int64, fill *domain.FillRecord) error {
	if fill == nil {
		return storage.ErrInvalidInput
	}

	fillJSON, err := json.Marshal(fill)
	if err != nil {
		return fmt.Errorf("marshal fill record: %w", err)
	}

	return s.pool.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE batches SET status = 'filled', fill_data = $2
			 WHERE batch_id = $1 AND status = 'open'`,
			batchID, fillJSON,
		)
		if err != nil {
			return fmt.Errorf("fill batch: %w", err)
		}
		if tag.RowsAffected() == 0 {
			// Distinguish a missing batch from an already-filled one.
			var status string
			err := tx.QueryRow(ctx,
				`SELECT status FROM batches WHERE batch_id = $1`, batchID,
			).Scan(&status)
			if isNotFoundError(err) {
				return storage.ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("check batch status: %w", err)
			}
			return storage.ErrBatchFilled
		}

		_, err = tx.Exec(ctx,
			`UPDATE orders SET status = 'filled' WHERE batch_id = $1`,
			batchID,
		)
		if err != nil {
			return fmt.Errorf("fill member orders: %w", err)
		}
		return nil
	})
}

const batchSelect = `
	SELECT batch_id, status, fill_data, created_at
	FROM batches
`

// scanBatch scans a single row into a Batch. The member order ids are
// attached separately.
func scanBatch(row pgx.Row) (*domain.Batch, error) {
	var b domain.Batch
	var fillJSON []byte

	err := row.Scan(&b.BatchID, &b.Status, &fillJSON, &b.CreatedAt)
	if err != nil {
		return nil, err
	}

	if len(fillJSON) > 0 {
		var fill domain.FillRecord
		if err := json.Unmarshal(fillJSON, &fill); err != nil {
			return nil, fmt.Errorf("unmarshal fill record: %w", err)
		}
		b.Fill = &fill
	}

	return &b, nil
}

// attachOrderIDs fills in OrderIDs for the given batches with a single
// query, preserving assignment order.
func (s *BatchStore) attachOrderIDs(ctx context.Context, batches []*domain.Batch) error {
	if len(batches) == 0 {
		return nil
	}

	byID := make(map[int64]*domain.Batch, len(batches))
	ids := make([]int64, 0, len(batches))
	for _, b := range batches {
		byID[b.BatchID] = b
		ids = append(ids, b.BatchID)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, batch_id FROM orders WHERE batch_id = ANY($1) ORDER BY id ASC`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("list batch orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID, batchID int64
		if err := rows.Scan(&orderID, &batchID); err != nil {
			return fmt.Errorf("scan batch order: %w", err)
		}
		if b, ok := byID[batchID]; ok {
			b.OrderIDs = append(b.OrderIDs, orderID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate batch orders: %w", err)
	}
	return nil
}
