package postgres

import (
	"context"
	"fmt"

	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/storage"
)

// AgentStore implements storage.AgentStore using PostgreSQL.
type AgentStore struct {
	pool *Pool
}

// NewAgentStore creates a new AgentStore.
func NewAgentStore(pool *Pool) *AgentStore {
	return &AgentStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AgentStore = (*AgentStore)(nil)

// Insert adds a new agent. Returns ErrDuplicateKey if the name exists.
func (s *AgentStore) Insert(ctx context.Context, a *domain.Agent) error {
	if a == nil || a.Name == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO agents (name, image)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := s.pool.QueryRow(ctx, query, a.Name, a.Image).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert agent: %w", err)
	}
	return nil
}

// GetByName retrieves an agent by name. Returns ErrNotFound if not exists.
func (s *AgentStore) GetByName(ctx context.Context, name string) (*domain.Agent, error) {
	query := `
		SELECT id, name, image, created_at
		FROM agents
		WHERE name = $1
	`

	var a domain.Agent
	err := s.pool.QueryRow(ctx, query, name).Scan(&a.ID, &a.Name, &a.Image, &a.CreatedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get agent by name: %w", err)
	}
	return &a, nil
}

// List retrieves all agents ordered by ID ASC.
func (s *AgentStore) List(ctx context.Context) ([]*domain.Agent, error) {
	query := `
		SELECT id, name, image, created_at
		FROM agents
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	var result []*domain.Agent
	for rows.Next() {
		var a domain.Agent
		if err := rows.Scan(&a.ID, &a.Name, &a.Image, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate agents: %w", err)
	}
	return result, nil
}
