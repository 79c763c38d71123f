package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"techmart/internal/builder"
	"techmart/internal/domain"
	"techmart/internal/repository"
)

// TransactionService создание и просмотр транзакций
type TransactionService struct {
	products repository.ProductRepository
	txs      repository.TransactionRepository
	tx       repository.TxManager
}

func NewTransactionService(products repository.ProductRepository, txs repository.TransactionRepository, tx repository.TxManager) *TransactionService {
	return &TransactionService{products: products, txs: txs, tx: tx}
}

var ErrNotEnoughStock = errors.New("not enough stock")

func validPayload(p domain.TransactionPayload) bool {
	switch {
	case p.CustomerID <= 0, p.ProductID <= 0, p.Quantity <= 0:
		return false
	case p.UnitPrice < 0, p.DiscountApplied < 0, p.TaxAmount < 0, p.ShippingCost < 0:
		return false
	case !p.PaymentMethod.Valid():
		return false
	case p.Status != "" && !p.Status.Valid():
		return false
	}
	return true
}

// Create проверяет остаток и атомарно списывает его вместе с записью транзакции
func (s *TransactionService) Create(ctx context.Context, p domain.TransactionPayload) (*domain.Transaction, error) {
	if !validPayload(p) {
		return nil, ErrInvalidInput
	}
	status := p.Status
	if status == "" {
		status = domain.TransactionPending
	}

	unit := decimal.NewFromFloat(p.UnitPrice).Round(2)
	discount := decimal.NewFromFloat(p.DiscountApplied).Round(2)
	taxAmount := decimal.NewFromFloat(p.TaxAmount).Round(2)
	shipping := decimal.NewFromFloat(p.ShippingCost).Round(2)
	total := unit.Mul(decimal.NewFromInt(p.Quantity)).Sub(discount).Add(taxAmount).Add(shipping).Round(2)

	var created *domain.Transaction
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		prod, err := s.products.GetByID(ctx, p.ProductID)
		if err != nil {
			return err
		}
		if prod.StockQuantity < p.Quantity {
			return ErrNotEnoughStock
		}
		// reserve
		prod.StockQuantity -= p.Quantity
		if err := s.products.Update(ctx, prod); err != nil {
			return err
		}

		t := domain.Transaction{
			CustomerID:      p.CustomerID,
			ProductID:       p.ProductID,
			Quantity:        p.Quantity,
			UnitPrice:       unit,
			TotalAmount:     total,
			Status:          status,
			PaymentMethod:   p.PaymentMethod,
			IPAddress:       p.IPAddress,
			UserAgent:       p.UserAgent,
			SessionID:       p.SessionID,
			DiscountApplied: discount,
			TaxAmount:       taxAmount,
			ShippingCost:    shipping,
			Product: &domain.ProductSummary{
				ID:       prod.ID,
				Name:     prod.Name,
				Category: prod.Category,
				Price:    prod.Price,
			},
		}
		if err := s.txs.Create(ctx, &t); err != nil {
			return err
		}
		created = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// GetTransaction возвращает транзакцию по id
func (s *TransactionService) GetTransaction(ctx context.Context, id int64) (*domain.Transaction, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.txs.GetByID(ctx, id)
}

func (s *TransactionService) List(ctx context.Context, p ListParams) (domain.Page[domain.Transaction], error) {
	p = p.normalized()
	all, err := s.txs.List(ctx, repository.TransactionFilter{Search: p.Search})
	if err != nil {
		return domain.Page[domain.Transaction]{}, err
	}
	return paginate(all, p), nil
}

// Quote считает итог заказа без сохранения
func (s *TransactionService) Quote(in builder.PricingInput) (builder.PricingBreakdown, error) {
	if in.Quantity < 0 || in.UnitPrice < 0 || in.DiscountPercent < 0 || in.DiscountPercent > 100 || in.ShippingCost < 0 {
		return builder.PricingBreakdown{}, ErrInvalidInput
	}
	return builder.ComputePricing(in), nil
}
