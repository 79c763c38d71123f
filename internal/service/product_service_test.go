package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techmart/internal/domain"
	"techmart/internal/repository"
)

func setupPS(t *testing.T) *ProductService {
	t.Helper()
	store := repository.NewMemoryStore()
	return NewProductService(store)
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestProduct_Create_Valid(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, err := ps.Create(ctx, domain.Product{Name: "Mouse", SKU: "M-1", Price: price("49.99"), StockQuantity: 10})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
}

func TestProduct_Create_Invalid(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	bad := []domain.Product{
		{Name: "", SKU: "S", Price: price("1"), StockQuantity: 1},
		{Name: "N", SKU: "", Price: price("1"), StockQuantity: 1},
		{Name: "N", SKU: "S", Price: price("-1"), StockQuantity: 1},
		{Name: "N", SKU: "S", Price: price("1"), StockQuantity: -1},
	}
	for _, p := range bad {
		_, err := ps.Create(ctx, p)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", p)
	}
}

func TestProduct_Update_Get_Delete(t *testing.T) {
	ctx := context.Background()
	ps := setupPS(t)
	p, err := ps.Create(ctx, domain.Product{Name: "A", SKU: "S1", Price: price("10"), StockQuantity: 5})
	require.NoError(t, err)

	got, err := ps.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	p.Name = "A+"
	p.Price = price("12.50")
	p.StockQuantity = 7
	up, err := ps.Update(ctx, *p)
	require.NoError(t, err)
	assert.Equal(t, "A+", up.Name)
	assert.Equal(t, "12.50", up.Price.StringFixed(2))

	require.NoError(t, ps.Delete(ctx, p.ID))
	_, err = ps.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProduct_List_Paging(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, repository.SeedProducts(ctx, store))
	ps := NewProductService(store)

	page, err := ps.List(ctx, ListParams{Page: 2, Limit: 4})
	require.NoError(t, err)
	assert.Equal(t, 6, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(5), page.Data[0].ID)

	page, err = ps.List(ctx, ListParams{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, defaultLimit, page.Limit)

	page, err = ps.List(ctx, ListParams{Search: "keyboard"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "ACC-KEY-002", page.Data[0].SKU)
}

func TestProduct_LowStock(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	require.NoError(t, repository.SeedProducts(ctx, store))
	ps := NewProductService(store)

	low, err := ps.LowStock(ctx, 10, ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), low.Threshold)
	assert.Equal(t, 3, low.Total)
	for _, p := range low.Products {
		assert.LessOrEqual(t, p.StockQuantity, int64(10))
	}

	low, err = ps.LowStock(ctx, 10, ListParams{Search: "hub"})
	require.NoError(t, err)
	require.Equal(t, 1, low.Total)
	assert.Equal(t, "ACC-HUB-004", low.Products[0].SKU)

	_, err = ps.LowStock(ctx, -1, ListParams{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
