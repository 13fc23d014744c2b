package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/storage"
)

// SolutionStore implements storage.SolutionStore using PostgreSQL.
// Solutions are append-only; the serial id doubles as submission order.
type SolutionStore struct {
	pool *Pool
}

// NewSolutionStore creates a new SolutionStore.
func NewSolutionStore(pool *Pool) *SolutionStore {
	return &SolutionStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SolutionStore = (*SolutionStore)(nil)

// Insert adds a new solution and assigns its ID and SubmittedAt.
func (s *SolutionStore) Insert(ctx context.Context, sol *domain.Solution) error {
	if sol == nil || sol.BatchID == 0 || sol.AgentID == 0 {
		return storage.ErrInvalidInput
	}

	routeJSON, err := json.Marshal(sol.Route)
	if err != nil {
		return fmt.Errorf("marshal route: %w", err)
	}

	query := `
		INSERT INTO solutions (batch_id, agent_id, route, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, submitted_at
	`

	err = s.pool.QueryRow(ctx, query,
		sol.BatchID,
		sol.AgentID,
		routeJSON,
		sol.Score,
	).Scan(&sol.ID, &sol.SubmittedAt)
	if err != nil {
		return fmt.Errorf("insert solution: %w", err)
	}
	return nil
}

// ListByBatch retrieves all solutions targeting a batch, in submission
// order, with AgentName resolved.
func (s *SolutionStore) ListByBatch(ctx context.Context, batchID int64) ([]*domain.Solution, error) {
	rows, err := s.pool.Query(ctx, solutionSelect+`
		WHERE s.batch_id = $1
		ORDER BY s.id ASC
	`, batchID)
	if err != nil {
		return nil, fmt.Errorf("list solutions by batch: %w", err)
	}
	defer rows.Close()

	return collectSolutions(rows)
}

// ListByBatches retrieves solutions for a set of batches keyed by batch id.
func (s *SolutionStore) ListByBatches(ctx context.Context, batchIDs []int64) (map[int64][]*domain.Solution, error) {
	result := make(map[int64][]*domain.Solution, len(batchIDs))
	if len(batchIDs) == 0 {
		return result, nil
	}

	rows, err := s.pool.Query(ctx, solutionSelect+`
		WHERE s.batch_id = ANY($1)
		ORDER BY s.batch_id, s.id ASC
	`, batchIDs)
	if err != nil {
		return nil, fmt.Errorf("list solutions by batches: %w", err)
	}
	defer rows.Close()

	sols, err := collectSolutions(rows)
	if err != nil {
		return nil, err
	}
	for _, sol := range sols {
		result[sol.BatchID] = append(result[sol.BatchID], sol)
	}
	return result, nil
}

const solutionSelect = `
	SELECT s.id, s.batch_id, s.agent_id, a.name, s.route, s.score, s.submitted_at
	FROM solutions s
	JOIN agents a ON a.id = s.agent_id
`

// scanSolution scans a single joined row into a Solution.
func scanSolution(row pgx.Row) (*domain.Solution, error) {
	var sol domain.Solution
	var routeJSON []byte

	err := row.Scan(
		&sol.ID,
		&sol.BatchID,
		&sol.AgentID,
		&sol.AgentName,
		&routeJSON,
		&sol.Score,
		&sol.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(routeJSON) > 0 {
		if err := json.Unmarshal(routeJSON, &sol.Route); err != nil {
			return nil, fmt.Errorf("unmarshal route: %w", err)
		}
	}

	return &sol, nil
}

// collectSolutions drains rows into a slice of solutions.
func collectSolutions(rows pgx.Rows) ([]*domain.Solution, error) {
	var result []*domain.Solution
	for rows.Next() {
		sol, err := scanSolution(rows)
		if err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		result = append(result, sol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solutions: %w", err)
	}
	return result, nil
}
