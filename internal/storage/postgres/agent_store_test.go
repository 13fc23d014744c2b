package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/storage"
)

func TestAgentStore_InsertAndGetByName(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewAgentStore(pool)
	ctx := context.Background()

	agent := createTestAgent(t, ctx, pool, "Aleph")
	assert.NotZero(t, agent.ID)
	assert.NotZero(t, agent.CreatedAt)

	retrieved, err := store.GetByName(ctx, "Aleph")
	require.NoError(t, err)
	assert.Equal(t, agent.ID, retrieved.ID)
	assert.Equal(t, "Aleph", retrieved.Name)
	assert.Equal(t, "/Aleph.png", retrieved.Image)
}

func TestAgentStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewAgentStore(pool)
	ctx := context.Background()

	createTestAgent(t, ctx, pool, "Aleph")

	err := store.Insert(ctx, &domain.Agent{Name: "Aleph", Image: "/aleph.png"})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

func TestAgentStore_GetByNameNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewAgentStore(pool)
	ctx := context.Background()

	_, err := store.GetByName(ctx, "Gimel")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAgentStore_List(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewAgentStore(pool)
	ctx := context.Background()

	aleph := createTestAgent(t, ctx, pool, "Aleph")
	bet := createTestAgent(t, ctx, pool, "Bet")

	result, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, aleph.ID, result[0].ID)
	assert.Equal(t, bet.ID, result[1].ID)
}
