package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/storage"
)

// defaultBatchLimit caps batch listings when the filter has no limit.
const defaultBatchLimit = 10

// BatchStore is an in-memory implementation of storage.BatchStore.
// It holds a reference to the order store because the open and fill
// transitions also stamp the member orders.
type BatchStore struct {
	mu      sync.RWMutex
	data    map[int64]*domain.Batch // keyed by batch sequence id
	nextSeq int64
	orders  *OrderStore
}

// NewBatchStore creates a new in-memory batch store backed by the given
// order store.
func NewBatchStore(orders *OrderStore) *BatchStore {
	return &BatchStore{
		data:    make(map[int64]*domain.Batch),
		nextSeq: 1,
		orders:  orders,
	}
}

// Open creates a new open batch over the given orders and stamps each order
// with the new batch id.
func (s *BatchStore) Open(_ context.Context, orderIDs []int64) (*domain.Batch, error) {
	if len(orderIDs) == 0 {
		return nil, storage.ErrInvalidInput
	}

	s.mu.Lock()
	b := &domain.Batch{
		BatchID:   s.nextSeq,
		OrderIDs:  append([]int64(nil), orderIDs...),
		Status:    domain.BatchStatusOpen,
		CreatedAt: time.Now().UnixMilli(),
	}
	s.nextSeq++
	s.data[b.BatchID] = copyBatch(b)
	s.mu.Unlock()

	s.orders.assignBatch(orderIDs, b.BatchID)
	return b, nil
}

// GetBySeq retrieves a batch by its sequence id. Returns ErrNotFound if not
// exists.
func (s *BatchStore) GetBySeq(_ context.Context, batchID int64) (*domain.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, exists := s.data[batchID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	return copyBatch(b), nil
}

// Latest retrieves the batch with the highest sequence id.
func (s *BatchStore) Latest(_ context.Context) (*domain.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.Batch
	for _, b := range s.data {
		if latest == nil || b.BatchID > latest.BatchID {
			latest = b
		}
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}

	return copyBatch(latest), nil
}

// List retrieves batches matching the filter, newest first.
func (s *BatchStore) List(_ context.Context, f storage.BatchFilter) ([]*domain.Batch, error) {
	limit := f.Limit
	if limit < 1 {
		limit = defaultBatchLimit
	}

	s.mu.RLock()
	var matched []*domain.Batch
	for _, b := range s.data {
		if f.StartBatchID != nil && b.BatchID < *f.StartBatchID {
			continue
		}
		if f.EndBatchID != nil && b.BatchID > *f.EndBatchID {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		matched = append(matched, copyBatch(b))
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].BatchID > matched[j].BatchID
	})

	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// Fill attaches the fill record, marks the batch filled and marks every
// member order filled.
func (s *BatchStore) Fill(_ context.Context, batchID int64, fill *domain.FillRecord) error {
	if fill == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	b, exists := s.data[batchID]
	if !exists {
		s.mu.Unlock()
		return storage.ErrNotFound
	}
	if b.Status == domain.BatchStatusFilled {
		s.mu.Unlock()
		return storage.ErrBatchFilled
	}
	fillCopy := *fill
	fillCopy.Route = append([]domain.RouteStep(nil), fill.Route...)
	b.Fill = &fillCopy
	b.Status = domain.BatchStatusFilled
	orderIDs := append([]int64(nil), b.OrderIDs...)
	s.mu.Unlock()

	s.orders.markFilled(orderIDs)
	return nil
}

// copyBatch returns a deep copy of a batch.
func copyBatch(b *domain.Batch) *domain.Batch {
	batchCopy := *b
	batchCopy.OrderIDs = append([]int64(nil), b.OrderIDs...)
	if b.Fill != nil {
		fillCopy := *b.Fill
		fillCopy.Route = append([]domain.RouteStep(nil), b.Fill.Route...)
		batchCopy.Fill = &fillCopy
	}
	return &batchCopy
}

// Verify interface compliance at compile time.
var _ storage.BatchStore = (*BatchStore)(nil)
