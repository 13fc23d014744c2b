// Package main runs the batch-auction marketplace server: HTTP API,
// background batch sweeper and, when enabled, the mock traffic generator.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"solana-batch-auction/internal/api"
	"solana-batch-auction/internal/auction"
	"solana-batch-auction/internal/config"
	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/logger"
	"solana-batch-auction/internal/metadata"
	"solana-batch-auction/internal/mockgen"
	"solana-batch-auction/internal/storage"
	"solana-batch-auction/internal/storage/memory"
	"solana-batch-auction/internal/storage/migrations"
	pgstore "solana-batch-auction/internal/storage/postgres"
)

// allStores holds all storage implementations.
type allStores struct {
	orders    storage.OrderStore
	batches   storage.BatchStore
	solutions storage.SolutionStore
	agents    storage.AgentStore
}

func main() {
	loadEnvFile()

	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, cleanup, err := createStores(ctx, cfg.PostgresDSN, *useMemory)
	if err != nil {
		logger.Errorf("failed to create stores: %v", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := seedAgents(ctx, stores.agents); err != nil {
		logger.Errorf("failed to seed agents: %v", err)
		os.Exit(1)
	}

	svc := auction.New(auction.Options{
		OrderStore:    stores.orders,
		BatchStore:    stores.batches,
		SolutionStore: stores.solutions,
		AgentStore:    stores.agents,
	})

	meta := metadata.NewClient(cfg.SolscanAPIKey, metadata.WithBaseURL(cfg.SolscanBaseURL))

	server, err := api.NewServer(api.ServerConfig{
		Addr:          cfg.Addr(),
		Service:       svc,
		OrderStore:    stores.orders,
		BatchStore:    stores.batches,
		SolutionStore: stores.solutions,
		Metadata:      meta,
	})
	if err != nil {
		logger.Errorf("failed to build api server: %v", err)
		os.Exit(1)
	}

	errCh := make(chan error, 3)

	go func() {
		errCh <- server.Start(ctx)
	}()

	sweeper := auction.NewSweeper(svc, cfg.BatchInterval)
	go func() {
		errCh <- sweeper.Run(ctx)
	}()

	if cfg.MockData {
		runner := mockgen.NewRunner(mockgen.RunnerOptions{
			Interval:   cfg.BatchInterval,
			OrderStore: stores.orders,
			BatchStore: stores.batches,
			AgentStore: stores.agents,
			Service:    svc,
		})
		go func() {
			errCh <- runner.Run(ctx)
		}()
	}

	err = <-errCh
	stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("server error: %v", err)
		os.Exit(1)
	}

	logger.Infof("shutdown complete")
}

// createStores creates all required stores, applying migrations when backed
// by PostgreSQL.
func createStores(ctx context.Context, postgresDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		orders := memory.NewOrderStore()
		agents := memory.NewAgentStore()
		return &allStores{
			orders:    orders,
			batches:   memory.NewBatchStore(orders),
			solutions: memory.NewSolutionStore(agents),
			agents:    agents,
		}, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	stores := &allStores{
		orders:    pgstore.NewOrderStore(pool),
		batches:   pgstore.NewBatchStore(pool),
		solutions: pgstore.NewSolutionStore(pool),
		agents:    pgstore.NewAgentStore(pool),
	}
	return stores, pool.Close, nil
}

// seedAgents registers the demo solver agents, skipping ones that already
// exist.
func seedAgents(ctx context.Context, agents storage.AgentStore) error {
	for _, seed := range mockgen.Agents {
		err := agents.Insert(ctx, &domain.Agent{Name: seed.Name, Image: seed.Image})
		if errors.Is(err, storage.ErrDuplicateKey) {
			continue
		}
		if err != nil {
			return fmt.Errorf("seed agent %s: %w", seed.Name, err)
		}
		logger.Infof("added agent: %s", seed.Name)
	}
	return nil
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
