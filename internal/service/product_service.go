package service

import (
	"context"
	"errors"

	"techmart/internal/domain"
	"techmart/internal/repository"
)

// ProductService инкапсулирует бизнес-логику вокруг товаров
type ProductService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

var ErrInvalidInput = errors.New("invalid input")

// ListParams параметры постраничного списка
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

const (
	defaultLimit = 10
	maxLimit     = 100
)

func (p ListParams) normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func paginate[T any](all []T, p ListParams) domain.Page[T] {
	total := len(all)
	start := (p.Page - 1) * p.Limit
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return domain.Page[T]{
		Data:       all[start:end],
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: domain.TotalPages(total, p.Limit),
	}
}

func validProduct(p domain.Product) bool {
	return p.Name != "" && p.SKU != "" && !p.Price.IsNegative() && p.StockQuantity >= 0
}

func (s *ProductService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if !validProduct(p) {
		return nil, ErrInvalidInput
	}
	cp := p
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID <= 0 || !validProduct(p) {
		return nil, ErrInvalidInput
	}
	cp := p
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// List возвращает страницу товаров, отфильтрованных по строке поиска
func (s *ProductService) List(ctx context.Context, p ListParams) (domain.Page[domain.Product], error) {
	p = p.normalized()
	all, err := s.repo.List(ctx, repository.ProductFilter{Search: p.Search})
	if err != nil {
		return domain.Page[domain.Product]{}, err
	}
	return paginate(all, p), nil
}

// LowStock товары с остатком не выше порога
func (s *ProductService) LowStock(ctx context.Context, threshold int64, p ListParams) (domain.LowStockPage, error) {
	if threshold < 0 {
		return domain.LowStockPage{}, ErrInvalidInput
	}
	p = p.normalized()
	all, err := s.repo.List(ctx, repository.ProductFilter{Search: p.Search, MaxStock: &threshold})
	if err != nil {
		return domain.LowStockPage{}, err
	}
	page := paginate(all, p)
	return domain.LowStockPage{
		Products:   page.Data,
		Threshold:  threshold,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}, nil
}
