package memory

import (
	"context"
	"errors"
	"testing"

	"solana-batch-auction/internal/domain"
	"solana-batch-auction/internal/storage"
)

func testOrder(intentID int64) *domain.Order {
	return &domain.Order{
		IntentID:    intentID,
		SrcToken:    "4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R",
		SrcAddress:  "3y3d5QzGr5oUjBrkXQ8A2P2uBBsTzQzFq57hHbJfbGbJ",
		SrcAmount:   10000000000,
		DstToken:    "7vfCXTUXx5WJV5JADk17DUJ4ksgau7utNKj4b963voxs",
		DstAddress:  "8FgRq4Ck7R8XB5j6GZGvGLzziU7tH2dTdeUmNMQd9FQa",
		MinReceived: 950,
		Expiration:  1714000000,
		Status:      domain.OrderStatusOpen,
	}
}

func TestOrderStore_InsertAndGet(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()

	o := testOrder(123456)
	if err := store.Insert(ctx, o); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if o.ID == 0 {
		t.Fatal("Insert did not assign an ID")
	}
	if o.CreatedAt == 0 {
		t.Error("Insert did not stamp CreatedAt")
	}

	got, err := store.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.IntentID != o.IntentID {
		t.Errorf("IntentID mismatch: got %d, want %d", got.IntentID, o.IntentID)
	}
	if got.Status != domain.OrderStatusOpen {
		t.Errorf("Status mismatch: got %s, want open", got.Status)
	}
	if got.BatchID != nil {
		t.Errorf("new order should have nil BatchID, got %d", *got.BatchID)
	}
}

func TestOrderStore_NotFound(t *testing.T) {
	store := NewOrderStore()

	_, err := store.GetByID(context.Background(), 999)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestOrderStore_InvalidInput(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for nil, got %v", err)
	}

	o := testOrder(1)
	o.SrcToken = ""
	if err := store.Insert(ctx, o); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for empty src token, got %v", err)
	}
}

func TestOrderStore_ListPagination(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()

	for i := int64(0); i < 5; i++ {
		if err := store.Insert(ctx, testOrder(i)); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	page1, err := store.List(ctx, storage.OrderFilter{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(page1))
	}

	page3, err := store.List(ctx, storage.OrderFilter{Page: 3, Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page3) != 1 {
		t.Errorf("Expected 1 result on last page, got %d", len(page3))
	}
	if page3[0].ID <= page1[1].ID {
		t.Errorf("Pages out of order: %d on page 3 after %d on page 1", page3[0].ID, page1[1].ID)
	}
}

func TestOrderStore_ListSrcAddressFilter(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()

	a := testOrder(1)
	a.SrcAddress = "AbCdEf123"
	b := testOrder(2)
	b.SrcAddress = "zzzzzz"
	for _, o := range []*domain.Order{a, b} {
		if err := store.Insert(ctx, o); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	// Case-insensitive substring match
	got, err := store.List(ctx, storage.OrderFilter{SrcAddress: "cdef"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(got))
	}
	if got[0].ID != a.ID {
		t.Errorf("Expected order %d, got %d", a.ID, got[0].ID)
	}
}

func TestOrderStore_ListOpenUnassigned(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()

	open := testOrder(1)
	assigned := testOrder(2)
	filled := testOrder(3)
	filled.Status = domain.OrderStatusFilled
	for _, o := range []*domain.Order{open, assigned, filled} {
		if err := store.Insert(ctx, o); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	store.assignBatch([]int64{assigned.ID}, 7)

	got, err := store.ListOpenUnassigned(ctx)
	if err != nil {
		t.Fatalf("ListOpenUnassigned failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 pending order, got %d", len(got))
	}
	if got[0].ID != open.ID {
		t.Errorf("Expected order %d, got %d", open.ID, got[0].ID)
	}
}

func TestOrderStore_AssignBatchNeverReassigns(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()

	o := testOrder(1)
	if err := store.Insert(ctx, o); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	store.assignBatch([]int64{o.ID}, 1)
	store.assignBatch([]int64{o.ID}, 2)

	got, err := store.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.BatchID == nil || *got.BatchID != 1 {
		t.Errorf("Order batch reference changed: got %v, want 1", got.BatchID)
	}
}
