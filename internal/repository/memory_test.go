package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"techmart/internal/domain"
)

func TestMemoryStore_ProductCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := domain.Product{Name: "A", SKU: "S1", Price: decimal.NewFromInt(10), StockQuantity: 5}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == 0 || p.CreatedAt.IsZero() {
		t.Fatalf("no id or timestamp")
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get: %v", err)
	}

	p.Price = decimal.NewFromInt(12)
	if err := store.Update(ctx, &p); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, p.ID); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryTx_TransactionalUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tx := NewMemoryTx(store)
	txs := NewMemoryTransactions(store)

	// seed product
	p := domain.Product{Name: "A", SKU: "S1", Price: decimal.NewFromInt(10), StockQuantity: 5}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}

	// emulate atomic transaction create with stock decrease
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		pp, err := store.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}
		pp.StockQuantity -= 3
		if err := store.Update(ctx, pp); err != nil {
			return err
		}
		rec := domain.Transaction{CustomerID: 1, ProductID: p.ID, Quantity: 3, Status: domain.TransactionCompleted}
		return txs.Create(ctx, &rec)
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	pp, _ := store.GetByID(ctx, p.ID)
	if pp.StockQuantity != 2 {
		t.Fatalf("stock expected 2, got %v", pp.StockQuantity)
	}
	list, _ := txs.List(ctx, TransactionFilter{})
	if len(list) != 1 || list[0].Timestamp.IsZero() {
		t.Fatalf("transaction not stored: %+v", list)
	}
}

func TestList_Filtering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := SeedProducts(ctx, store); err != nil {
		t.Fatal(err)
	}

	list, _ := store.List(ctx, ProductFilter{Search: "acc-"})
	if len(list) != 3 {
		t.Fatalf("sku search expected 3, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Fatalf("list not ordered by id")
		}
	}

	max := int64(8)
	list, _ = store.List(ctx, ProductFilter{MaxStock: &max})
	if len(list) != 3 {
		t.Fatalf("low stock expected 3, got %d", len(list))
	}
	for _, p := range list {
		if p.StockQuantity > max {
			t.Fatalf("stock filter fail")
		}
	}

	list, _ = store.List(ctx, ProductFilter{Search: "audio"})
	if len(list) != 1 {
		t.Fatalf("category search expected 1, got %d", len(list))
	}
}
