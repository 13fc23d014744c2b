package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/storage"
)

func testFill(agentName string) *domain.FillRecord {
	return &domain.FillRecord{
		Tx:        "5UfDuX94A1QfqkQvg5WBvM3WLwqjrG82SuRU3cSP4pPoLV82cvmXZ5rDMHK7q7SfH1W1vdNP4KN1b9SZu9sbKYWV",
		AgentName: agentName,
		Route: []domain.RouteStep{
			{
				SrcName:    "User",
				SrcAddress: "3y3d5QzGr5oUjBrkXQ8A2P2uBBsTzQzFq57hHbJfbGbJ",
				SentToken:  "4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R",
				SentAmount: 10000000000,
				DstName:    "Jupiter",
				DstAddress: "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4",
			},
		},
	}
}

func TestBatchStore_OpenAssignsOrders(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBatchStore(pool)
	orders := NewOrderStore(pool)
	ctx := context.Background()

	o1 := createTestOrder(t, ctx, pool, 1)
	o2 := createTestOrder(t, ctx, pool, 2)

	batch, err := store.Open(ctx, []int64{o1.ID, o2.ID})
	require.NoError(t, err)

	assert.NotZero(t, batch.BatchID)
	assert.Equal(t, domain.BatchStatusOpen, batch.Status)
	assert.Nil(t, batch.Fill)
	assert.NotZero(t, batch.CreatedAt)

	// Both orders now carry the batch id and stay open.
	for _, id := range []int64{o1.ID, o2.ID} {
		o, err := orders.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, o.BatchID)
		assert.Equal(t, batch.BatchID, *o.BatchID)
		assert.Equal(t, domain.OrderStatusOpen, o.Status)
	}
}

func TestBatchStore_OpenEmpty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBatchStore(pool)
	ctx := context.Background()

	_, err := store.Open(ctx, nil)
	assert.ErrorIs(t, err, storage.ErrInvalidInput)
}

func TestBatchStore_OpenNeverReassigns(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBatchStore(pool)
	orders := NewOrderStore(pool)
	ctx := context.Background()

	o := createTestOrder(t, ctx, pool, 1)

	first, err := store.Open(ctx, []int64{o.ID})
	require.NoError(t, err)

	// Sweeping the same order again must not move it to the new batch.
	_, err = store.Open(ctx, []int64{o.ID})
	require.NoError(t, err)

	retrieved, err := orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved.BatchID)
	assert.Equal(t, first.BatchID, *retrieved.BatchID)
}

func TestBatchStore_MonotonicSequence(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBatchStore(pool)
	ctx := context.Background()

	var prev int64
	for i := int64(1); i <= 3; i++ {
		o := createTestOrder(t, ctx, pool, i)
		b, err := store.Open(ctx, []int64{o.ID})
		require.NoError(t, err)
		assert.Greater(t, b.BatchID, prev)
		prev = b.BatchID
	}
}

func TestBatchStore_GetBySeq(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBatchStore(pool)
	ctx := context.Background()

	o1 := createTestOrder(t, ctx, pool, 1)
	o2 := createTestOrder(t, ctx, pool, 2)

	opened, err := store.Open(ctx, []int64{o1.ID, o2.ID})
	require.NoError(t, err)

	retrieved, err := store.GetBySeq(ctx, opened.BatchID)
	require.NoError(t, err)
	assert.Equal(t, opened.BatchID, retrieved.BatchID)
	assert.Equal(t, domain.BatchStatusOpen, retrieved.Status)
	assert.Equal(t, []int64{o1.ID, o2.ID}, retrieved.OrderIDs)
}

func TestBatchStore_GetBySeqNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBatchStore(pool)
	ctx := context.Background()

	_, err := store.GetBySeq(ctx, 999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBatchStore_FillMarksBatchAndOrders(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBatchStore(pool)
	orders := NewOrderStore(pool)
	ctx := context.Background()

	o := createTestOrder(t, ctx, pool, 1)
	batch, err := store.Open(ctx, []int64{o.ID})
	require.NoError(t, err)

	fill := testFill("Aleph")
	require.NoError(t, store.Fill(ctx, batch.BatchID, fill))

	retrieved, err := store.GetBySeq(ctx, batch.BatchID)
	require.NoError(t, err)
	assert.Equal(t, domain.BatchStatusFilled, retrieved.Status)
	require.NotNil(t, retrieved.Fill)
	assert.Equal(t, fill.Tx, retrieved.Fill.Tx)
	assert.Equal(t, fill.AgentName, retrieved.Fill.AgentName)
	require.Len(t, retrieved.Fill.Route, 1)
	assert.Equal(t, fill.Route[0].DstName, retrieved.Fill.Route[0].DstName)

	filled, err := orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusFilled, filled.Status)
}

func TestBatchStore_FillTwice(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBatchStore(pool)
	ctx := context.Background()

	o := createTestOrder(t, ctx, pool, 1)
	batch, err := store.Open(ctx, []int64{o.ID})
	require.NoError(t, err)

	first := testFill("Aleph")
	require.NoError(t, store.Fill(ctx, batch.BatchID, first))

	err = store.Fill(ctx, batch.BatchID, testFill("Bet"))
	assert.ErrorIs(t, err, storage.ErrBatchFilled)

	// The original fill survives.
	retrieved, err := store.GetBySeq(ctx, batch.BatchID)
	require.NoError(t, err)
	require.NotNil(t, retrieved.Fill)
	assert.Equal(t, "Aleph", retrieved.Fill.AgentName)
}

func TestBatchStore_FillNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBatchStore(pool)
	ctx := context.Background()

	err := store.Fill(ctx, 999, testFill("Aleph"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBatchStore_ListAndLatest(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBatchStore(pool)
	ctx := context.Background()

	var ids []int64
	for i := int64(1); i <= 12; i++ {
		o := createTestOrder(t, ctx, pool, i)
		b, err := store.Open(ctx, []int64{o.ID})
		require.NoError(t, err)
		ids = append(ids, b.BatchID)
	}

	// Default limit is 10, newest first.
	result, err := store.List(ctx, storage.BatchFilter{})
	require.NoError(t, err)
	require.Len(t, result, 10)
	assert.Equal(t, ids[11], result[0].BatchID)
	assert.Equal(t, ids[2], result[9].BatchID)

	// Range bounds are inclusive.
	ranged, err := store.List(ctx, storage.BatchFilter{
		StartBatchID: ptr(ids[3]),
		EndBatchID:   ptr(ids[5]),
	})
	require.NoError(t, err)
	require.Len(t, ranged, 3)
	assert.Equal(t, ids[5], ranged[0].BatchID)
	assert.Equal(t, ids[3], ranged[2].BatchID)

	// Status filter.
	require.NoError(t, store.Fill(ctx, ids[0], testFill("Aleph")))
	filled, err := store.List(ctx, storage.BatchFilter{Status: domain.BatchStatusFilled})
	require.NoError(t, err)
	require.Len(t, filled, 1)
	assert.Equal(t, ids[0], filled[0].BatchID)

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids[11], latest.BatchID)
}

func TestBatchStore_LatestNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewBatchStore(pool)
	ctx := context.Background()

	_, err := store.Latest(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
