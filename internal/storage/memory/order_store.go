package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/storage"
)

// Listing defaults, matching the HTTP surface.
const (
	defaultOrderPage  = 1
	defaultOrderLimit = 100
)

// OrderStore is an in-memory implementation of storage.OrderStore.
type OrderStore struct {
	mu     sync.RWMutex
	data   map[int64]*domain.Order // keyed by order id
	nextID int64
}

// NewOrderStore creates a new in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		data:   make(map[int64]*domain.Order),
		nextID: 1,
	}
}

// Insert adds a new order and assigns its ID and CreatedAt.
func (s *OrderStore) Insert(_ context.Context, o *domain.Order) error {
	if o == nil || o.SrcToken == "" || o.DstToken == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = s.nextID
	s.nextID++
	if o.CreatedAt == 0 {
		o.CreatedAt = time.Now().UnixMilli()
	}

	// Store a copy to prevent external mutation
	s.data[o.ID] = copyOrder(o)
	return nil
}

// GetByID retrieves an order by its ID. Returns ErrNotFound if not exists.
func (s *OrderStore) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, exists := s.data[id]
	if !exists {
		return nil, storage.ErrNotFound
	}

	return copyOrder(o), nil
}

// List retrieves orders matching the filter, ordered by ID ASC.
func (s *OrderStore) List(_ context.Context, f storage.OrderFilter) ([]*domain.Order, error) {
	page := f.Page
	if page < 1 {
		page = defaultOrderPage
	}
	limit := f.Limit
	if limit < 1 {
		limit = defaultOrderLimit
	}

	s.mu.RLock()
	var matched []*domain.Order
	for _, o := range s.data {
		if matchesSrcAddress(o, f.SrcAddress) {
			matched = append(matched, copyOrder(o))
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID < matched[j].ID
	})

	skip := (page - 1) * limit
	if skip >= len(matched) {
		return nil, nil
	}
	matched = matched[skip:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// ListOpenUnassigned retrieves open orders with no batch assignment,
// ordered by ID ASC.
func (s *OrderStore) ListOpenUnassigned(_ context.Context) ([]*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Order
	for _, o := range s.data {
		if o.Status == domain.OrderStatusOpen && o.BatchID == nil {
			result = append(result, copyOrder(o))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// assignBatch stamps the batch id on the given orders. Called by BatchStore
// during its open transition; orders already carrying a batch id are left
// untouched.
func (s *OrderStore) assignBatch(orderIDs []int64, batchID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range orderIDs {
		o, exists := s.data[id]
		if !exists || o.BatchID != nil {
			continue
		}
		bid := batchID
		o.BatchID = &bid
	}
}

// markFilled transitions the given orders to filled. Called by BatchStore
// when its batch fills.
func (s *OrderStore) markFilled(orderIDs []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range orderIDs {
		if o, exists := s.data[id]; exists {
			o.Status = domain.OrderStatusFilled
		}
	}
}

// copyOrder returns a deep copy of an order.
func copyOrder(o *domain.Order) *domain.Order {
	orderCopy := *o
	if o.BatchID != nil {
		id := *o.BatchID
		orderCopy.BatchID = &id
	}
	return &orderCopy
}

// matchesSrcAddress reports whether an order passes the case-insensitive
// substring filter.
func matchesSrcAddress(o *domain.Order, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.SrcAddress), strings.ToLower(needle))
}

// Verify interface compliance at compile time.
var _ storage.OrderStore = (*OrderStore)(nil)
