package mockgen

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"solana-batch-auction/internal/auction"
	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/logger"
	"solana-batch-auction/internal/observability"
	"solana-batch-auction/internal/storage"
)

// Runner drives the demo traffic timers: orders at every interval and,
// offset by three quarters of an interval, solutions plus a fill for the
// latest open batch. The sweep between the two runs elsewhere.
type Runner struct {
	gen      *Generator
	interval time.Duration

	orders  storage.OrderStore
	batches storage.BatchStore
	agents  storage.AgentStore
	svc     *auction.Service
}

// RunnerOptions for creating a Runner.
type RunnerOptions struct {
	Seed     int64
	Interval time.Duration

	OrderStore storage.OrderStore
	BatchStore storage.BatchStore
	AgentStore storage.AgentStore
	Service    *auction.Service
}

// NewRunner creates a Runner.
func NewRunner(opts RunnerOptions) *Runner {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Runner{
		gen:      NewGenerator(seed),
		interval: opts.Interval,
		orders:   opts.OrderStore,
		batches:  opts.BatchStore,
		agents:   opts.AgentStore,
		svc:      opts.Service,
	}
}

// Run blocks until ctx is cancelled. Every failure is logged and skipped;
// mock traffic must never take the server down.
func (r *Runner) Run(ctx context.Context) error {
	logger.Infof("starting mock data generator (interval: %v)", r.interval)

	go r.loop(ctx, 0, r.generateOrders)
	r.loop(ctx, 3*r.interval/4, r.resolveLatestBatch)
	return ctx.Err()
}

// loop runs fn every interval after an initial offset.
func (r *Runner) loop(ctx context.Context, offset time.Duration, fn func(context.Context)) {
	if offset > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(offset):
		}
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn(ctx)
		}
	}
}

// generateOrders inserts a fresh set of random orders.
func (r *Runner) generateOrders(ctx context.Context) {
	for _, o := range r.gen.Orders() {
		if err := r.orders.Insert(ctx, o); err != nil {
			logger.Warnf("mock order insert failed: %v", err)
			continue
		}
		observability.RecordOrderCreated()
		logger.Debugf("added mock order with intent id %d", o.IntentID)
	}
}

// resolveLatestBatch has a random subset of agents submit solutions against
// the latest batch, then closes it with a mock settlement reference.
func (r *Runner) resolveLatestBatch(ctx context.Context) {
	batch, err := r.batches.Latest(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warnf("mock fill: latest batch lookup failed: %v", err)
		}
		return
	}
	if batch.Status != domain.BatchStatusOpen {
		return
	}

	members := make([]*domain.Order, 0, len(batch.OrderIDs))
	for _, id := range batch.OrderIDs {
		o, err := r.orders.GetByID(ctx, id)
		if err != nil {
			logger.Warnf("mock fill: get order %d failed: %v", id, err)
			return
		}
		members = append(members, o)
	}

	agents, err := r.agents.List(ctx)
	if err != nil || len(agents) == 0 {
		logger.Warnf("mock fill: agent listing failed: %v", err)
		return
	}

	submitted := 0
	for _, agent := range r.pickAgents(agents) {
		route := r.gen.RouteGraph(members)
		if _, err := r.svc.SubmitSolution(ctx, agent.Name, batch.BatchID, route, r.gen.Score()); err != nil {
			logger.Warnf("mock solution from %s failed: %v", agent.Name, err)
			continue
		}
		submitted++
	}
	if submitted == 0 {
		return
	}

	tx := "mock-" + uuid.NewString()
	if _, err := r.svc.CloseBatch(ctx, batch.BatchID, tx); err != nil {
		logger.Warnf("mock fill of batch %d failed: %v", batch.BatchID, err)
		return
	}
	logger.Infof("filled batch %d with %d mock solutions", batch.BatchID, submitted)
}

// pickAgents returns a random non-empty subset of agents.
func (r *Runner) pickAgents(agents []*domain.Agent) []*domain.Agent {
	n := r.gen.rng.Intn(len(agents)) + 1
	picked := make([]*domain.Agent, 0, n)
	for _, idx := range r.gen.rng.Perm(len(agents))[:n] {
		picked = append(picked, agents[idx])
	}
	return picked
}
