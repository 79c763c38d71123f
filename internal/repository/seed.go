package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"techmart/internal/domain"
)

// SeedProducts наполняет каталог демонстрационными товарами
func SeedProducts(ctx context.Context, repo ProductRepository) error {
	seed := []domain.Product{
		{Name: "Wireless Mouse", Category: "Accessories", SKU: "ACC-MOU-001", Price: decimal.RequireFromString("49.99"), StockQuantity: 120},
		{Name: "Mechanical Keyboard", Category: "Accessories", SKU: "ACC-KEY-002", Price: decimal.RequireFromString("129.00"), StockQuantity: 35},
		{Name: "27\" Monitor", Category: "Displays", SKU: "DSP-MON-027", Price: decimal.RequireFromString("329.50"), StockQuantity: 8},
		{Name: "USB-C Hub", Category: "Accessories", SKU: "ACC-HUB-004", Price: decimal.RequireFromString("39.90"), StockQuantity: 4},
		{Name: "Noise Cancelling Headphones", Category: "Audio", SKU: "AUD-HP-005", Price: decimal.RequireFromString("249.99"), StockQuantity: 0},
		{Name: "Laptop Stand", Category: "Furniture", SKU: "FUR-STD-006", Price: decimal.RequireFromString("59.00"), StockQuantity: 60},
	}
	for i := range seed {
		if err := repo.Create(ctx, &seed[i]); err != nil {
			return err
		}
	}
	return nil
}
