package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/storage"
)

// SolutionStore is an in-memory implementation of storage.SolutionStore.
// It holds a reference to the agent store to resolve agent names on read.
type SolutionStore struct {
	mu     sync.RWMutex
	data   map[int64]*domain.Solution // keyed by solution id
	nextID int64
	agents *AgentStore
}

// NewSolutionStore creates a new in-memory solution store backed by the
// given agent store.
func NewSolutionStore(agents *AgentStore) *SolutionStore {
	return &SolutionStore{
		data:   make(map[int64]*domain.Solution),
		nextID: 1,
		agents: agents,
	}
}

// Insert adds a new solution and assigns its ID and SubmittedAt.
func (s *SolutionStore) Insert(_ context.Context, sol *domain.Solution) error {
	if sol == nil || sol.BatchID == 0 || sol.AgentID == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sol.ID = s.nextID
	s.nextID++
	if sol.SubmittedAt == 0 {
		sol.SubmittedAt = time.Now().UnixMilli()
	}

	s.data[sol.ID] = copySolution(sol)
	return nil
}

// ListByBatch retrieves all solutions targeting a batch, in submission
// order, with AgentName resolved.
func (s *SolutionStore) ListByBatch(_ context.Context, batchID int64) ([]*domain.Solution, error) {
	s.mu.RLock()
	var result []*domain.Solution
	for _, sol := range s.data {
		if sol.BatchID == batchID {
			result = append(result, copySolution(sol))
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	for _, sol := range result {
		sol.AgentName = s.agents.nameByID(sol.AgentID)
	}

	return result, nil
}

// ListByBatches retrieves solutions for a set of batches keyed by batch id.
func (s *SolutionStore) ListByBatches(ctx context.Context, batchIDs []int64) (map[int64][]*domain.Solution, error) {
	result := make(map[int64][]*domain.Solution, len(batchIDs))
	for _, id := range batchIDs {
		sols, err := s.ListByBatch(ctx, id)
		if err != nil {
			return nil, err
		}
		result[id] = sols
	}
	return result, nil
}

// copySolution returns a deep copy of a solution.
func copySolution(sol *domain.Solution) *domain.Solution {
	solCopy := *sol
	solCopy.Route = append([]domain.RouteStep(nil), sol.Route...)
	return &solCopy
}

// Verify interface compliance at compile time.
var _ storage.SolutionStore = (*SolutionStore)(nil)
