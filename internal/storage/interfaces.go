package storage

import (
	"context"

	"solana-batch-auction/internal/domain"
)

// OrderFilter narrows an order listing.
type OrderFilter struct {
	// SrcAddress, when non-empty, keeps only orders whose source address
	// contains it (case-insensitive substring match).
	SrcAddress string

	// Page is 1-based; Limit caps the page size. Zero values fall back to
	// implementation defaults (page 1, limit 100).
	Page  int
	Limit int
}

// BatchFilter narrows a batch listing.
type BatchFilter struct {
	// StartBatchID / EndBatchID bound the batch sequence id range
	// (inclusive); nil means unbounded on that side.
	StartBatchID *int64
	EndBatchID   *int64

	// Status, when non-empty, keeps only batches in that state.
	Status domain.BatchStatus

	// Limit caps the result count. Zero falls back to the implementation
	// default of 10.
	Limit int
}

// OrderStore provides access to orders storage.
type OrderStore interface {
	// Insert adds a new order and assigns its ID and CreatedAt.
	Insert(ctx context.Context, o *domain.Order) error

	// GetByID retrieves an order by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)

	// List retrieves orders matching the filter, ordered by ID ASC.
	List(ctx context.Context, f OrderFilter) ([]*domain.Order, error)

	// ListOpenUnassigned retrieves open orders with no batch assignment,
	// ordered by ID ASC. These are the orders the next sweep picks up.
	ListOpenUnassigned(ctx context.Context) ([]*domain.Order, error)
}

// BatchStore provides access to batches storage and owns the two
// cross-entity lifecycle transitions, which must be atomic with respect to
// the member orders.
type BatchStore interface {
	// Open creates a new open batch over the given orders and stamps each
	// order with the new batch id, atomically. The batch sequence id is
	// store-generated, unique and monotonic. Returns ErrInvalidInput for an
	// empty order set.
	Open(ctx context.Context, orderIDs []int64) (*domain.Batch, error)

	// GetBySeq retrieves a batch by its sequence id. Returns ErrNotFound
	// if not exists.
	GetBySeq(ctx context.Context, batchID int64) (*domain.Batch, error)

	// Latest retrieves the batch with the highest sequence id.
	// Returns ErrNotFound when no batch exists yet.
	Latest(ctx context.Context) (*domain.Batch, error)

	// List retrieves batches matching the filter, newest first.
	List(ctx context.Context, f BatchFilter) ([]*domain.Batch, error)

	// Fill attaches the fill record, marks the batch filled and marks every
	// member order filled, atomically. Returns ErrNotFound if the batch
	// does not exist and ErrBatchFilled if it already has a fill.
	Fill(ctx context.Context, batchID int64, fill *domain.FillRecord) error
}

// SolutionStore provides access to solutions storage. Solutions are
// append-only and submission-ordered by ID.
type SolutionStore interface {
	// Insert adds a new solution and assigns its ID and SubmittedAt.
	Insert(ctx context.Context, s *domain.Solution) error

	// ListByBatch retrieves all solutions targeting a batch, in submission
	// order, with AgentName resolved.
	ListByBatch(ctx context.Context, batchID int64) ([]*domain.Solution, error)

	// ListByBatches retrieves solutions for a set of batches keyed by batch
	// id, each list in submission order, with AgentName resolved.
	ListByBatches(ctx context.Context, batchIDs []int64) (map[int64][]*domain.Solution, error)
}

// AgentStore provides access to agents storage.
type AgentStore interface {
	// Insert adds a new agent. Returns ErrDuplicateKey if the name exists.
	Insert(ctx context.Context, a *domain.Agent) error

	// GetByName retrieves an agent by name. Returns ErrNotFound if not exists.
	GetByName(ctx context.Context, name string) (*domain.Agent, error)

	// List retrieves all agents ordered by ID ASC.
	List(ctx context.Context) ([]*domain.Agent, error)
}
