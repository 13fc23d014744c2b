// Package auction drives the batch lifecycle: sweeping open orders into
// batches, accepting agent solutions and selecting the winning solution
// when a batch closes.
package auction

import (
	"context"
	"errors"
	"fmt"

	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/observability"
	"solana-batch-auction/internal/storage"
)

// Service coordinates orders, batches, solutions and agents.
type Service struct {
	orders    storage.OrderStore
	batches   storage.BatchStore
	solutions storage.SolutionStore
	agents    storage.AgentStore
}

// Options for creating a Service.
type Options struct {
	OrderStore    storage.OrderStore
	BatchStore    storage.BatchStore
	SolutionStore storage.SolutionStore
	AgentStore    storage.AgentStore
}

// New creates a new Service.
func New(opts Options) *Service {
	return &Service{
		orders:    opts.OrderStore,
		batches:   opts.BatchStore,
		solutions: opts.SolutionStore,
		agents:    opts.AgentStore,
	}
}

// SweepOpenOrders collects every open order that no batch has claimed yet
// and opens a new batch over them. Returns (nil, nil) when there is nothing
// to sweep. Orders already carrying a batch reference are never reassigned,
// so running the sweep twice in a row is harmless.
func (s *Service) SweepOpenOrders(ctx context.Context) (*domain.Batch, error) {
	pending, err := s.orders.ListOpenUnassigned(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	if len(pending) == 0 {
		observability.RecordEmptySweep()
		observability.UpdateOpenOrdersPending(0)
		return nil, nil
	}

	ids := make([]int64, len(pending))
	for i, o := range pending {
		ids[i] = o.ID
	}

	batch, err := s.batches.Open(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("open batch: %w", err)
	}

	observability.RecordBatchOpened(len(ids))
	observability.UpdateOpenOrdersPending(0)
	return batch, nil
}

// SubmitSolution records a scored route proposal from a named agent against
// an open batch. The batch must exist and still be open, and the agent name
// must be registered; nothing is persisted otherwise.
func (s *Service) SubmitSolution(ctx context.Context, agentName string, batchID int64, route []domain.RouteStep, score float64) (*domain.Solution, error) {
	batch, err := s.batches.GetBySeq(ctx, batchID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	if batch.Status == domain.BatchStatusFilled {
		return nil, ErrBatchFilled
	}

	agent, err := s.agents.GetByName(ctx, agentName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, fmt.Errorf("get agent: %w", err)
	}

	sol := &domain.Solution{
		BatchID:   batchID,
		AgentID:   agent.ID,
		AgentName: agent.Name,
		Route:     append([]domain.RouteStep(nil), route...),
		Score:     score,
	}
	if err := s.solutions.Insert(ctx, sol); err != nil {
		return nil, fmt.Errorf("insert solution: %w", err)
	}

	observability.RecordSolutionSubmitted(agent.Name)
	return sol, nil
}

// CloseBatch selects the winning solution for an open batch and fills it
// with the given settlement transaction reference. The winner is the
// solution with the strictly greatest score; ties go to the earliest
// submission.
func (s *Service) CloseBatch(ctx context.Context, batchID int64, tx string) (*domain.FillRecord, error) {
	sols, err := s.solutions.ListByBatch(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("list solutions: %w", err)
	}
	winner := SelectWinner(sols)
	if winner == nil {
		return nil, ErrNoSolutions
	}

	fill := &domain.FillRecord{
		Tx:        tx,
		AgentName: winner.AgentName,
		Route:     append([]domain.RouteStep(nil), winner.Route...),
	}

	if err := s.batches.Fill(ctx, batchID, fill); err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrBatchNotFound
		case errors.Is(err, storage.ErrBatchFilled):
			return nil, ErrBatchFilled
		}
		return nil, fmt.Errorf("fill batch: %w", err)
	}

	observability.RecordBatchFilled(winner.Score)
	return fill, nil
}

// SelectWinner picks the solution with the greatest score. Solutions are
// expected in submission order, so keeping the first of equal scores makes
// the tie-break deterministic.
func SelectWinner(sols []*domain.Solution) *domain.Solution {
	var winner *domain.Solution
	for _, sol := range sols {
		if winner == nil || sol.Score > winner.Score {
			winner = sol
		}
	}
	return winner
}
