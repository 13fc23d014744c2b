package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/storage"
)

// AgentStore is an in-memory implementation of storage.AgentStore.
type AgentStore struct {
	mu     sync.RWMutex
	byID   map[int64]*domain.Agent
	byName map[string]*domain.Agent
	nextID int64
}

// NewAgentStore creates a new in-memory agent store.
func NewAgentStore() *AgentStore {
	return &AgentStore{
		byID:   make(map[int64]*domain.Agent),
		byName: make(map[string]*domain.Agent),
		nextID: 1,
	}
}

// Insert adds a new agent. Returns ErrDuplicateKey if the name exists.
func (s *AgentStore) Insert(_ context.Context, a *domain.Agent) error {
	if a == nil || a.Name == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[a.Name]; exists {
		return storage.ErrDuplicateKey
	}

	a.ID = s.nextID
	s.nextID++
	if a.CreatedAt == 0 {
		a.CreatedAt = time.Now().UnixMilli()
	}

	agentCopy := *a
	s.byID[a.ID] = &agentCopy
	s.byName[a.Name] = &agentCopy
	return nil
}

// GetByName retrieves an agent by name. Returns ErrNotFound if not exists.
func (s *AgentStore) GetByName(_ context.Context, name string) (*domain.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.byName[name]
	if !exists {
		return nil, storage.ErrNotFound
	}

	agentCopy := *a
	return &agentCopy, nil
}

// List retrieves all agents ordered by ID ASC.
func (s *AgentStore) List(_ context.Context) ([]*domain.Agent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Agent, 0, len(s.byID))
	for _, a := range s.byID {
		agentCopy := *a
		result = append(result, &agentCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

// nameByID resolves an agent id to its name. Used by SolutionStore to join
// agent names onto solutions.
func (s *AgentStore) nameByID(id int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, exists := s.byID[id]; exists {
		return a.Name
	}
	return ""
}

// Verify interface compliance at compile time.
var _ storage.AgentStore = (*AgentStore)(nil)
