package auction

import (
	"context"
	"time"

	"solana-batch-auction/internal/logger"
)

// Sweeper periodically sweeps pending orders into a new batch.
type Sweeper struct {
	svc      *Service
	interval time.Duration
}

// NewSweeper creates a Sweeper running at the given interval. The first
// sweep fires after half an interval so order creation settles before the
// batch opens.
func NewSweeper(svc *Service, interval time.Duration) *Sweeper {
	return &Sweeper{svc: svc, interval: interval}
}

// Run blocks until ctx is cancelled. Sweep failures are logged and the next
// tick retries; the loop itself never fails.
func (s *Sweeper) Run(ctx context.Context) error {
	logger.Infof("starting batch sweeper (interval: %v)", s.interval)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.interval / 2):
	}

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	batch, err := s.svc.SweepOpenOrders(ctx)
	if err != nil {
		logger.Errorf("sweep failed: %v", err)
		return
	}
	if batch == nil {
		logger.Debugf("sweep found no pending orders")
		return
	}
	logger.Infof("opened batch %d over %d orders", batch.BatchID, len(batch.OrderIDs))
}
