package builder

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"techmart/internal/domain"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product lookup failed")
	// ErrStaleResolution is returned when a newer Resolve call superseded this one.
	ErrStaleResolution = errors.New("stale product resolution")
)

// ProductLookup источник цен и остатков (GET /products/{id})
type ProductLookup interface {
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
}

// NotFoundError is implemented by lookup errors that mean the product does not exist.
type NotFoundError interface {
	NotFound() bool
}

// ResolvedProduct товар с актуальной ценой и остатком
type ResolvedProduct struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	Price         float64 `json:"price"`
	StockQuantity int64   `json:"stockQuantity"`
}

// ProductResolver resolves product ids and keeps only the latest result.
// A response that arrives after a newer Resolve call is discarded.
type ProductResolver struct {
	lookup ProductLookup

	mu   sync.Mutex
	gen  uint64
	last *ResolvedProduct
}

func NewProductResolver(lookup ProductLookup) *ProductResolver {
	return &ProductResolver{lookup: lookup}
}

// Ticket identifies one issued resolution. Only the most recently issued
// ticket can produce a result.
type Ticket struct {
	gen uint64
	id  int64
}

func (t Ticket) ProductID() int64 { return t.id }

// Begin issues a ticket for id and supersedes every earlier one. A
// non-positive id clears the last resolution.
func (r *ProductResolver) Begin(id int64) Ticket {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	if id <= 0 {
		r.last = nil
	}
	return Ticket{gen: r.gen, id: id}
}

// Await performs the lookup for t. It returns ErrStaleResolution when a
// newer ticket was issued, whatever order the lookups complete in.
func (r *ProductResolver) Await(ctx context.Context, t Ticket) (*ResolvedProduct, error) {
	if t.id <= 0 {
		return nil, nil
	}
	p, err := r.lookup.GetProduct(ctx, t.id)

	r.mu.Lock()
	defer r.mu.Unlock()
	if t.gen != r.gen {
		return nil, ErrStaleResolution
	}
	if err != nil {
		r.last = nil
		var nf NotFoundError
		if errors.As(err, &nf) && nf.NotFound() {
			return nil, fmt.Errorf("%w: %d: %v", ErrProductNotFound, t.id, err)
		}
		return nil, fmt.Errorf("%w: %d: %v", ErrProductUnavailable, t.id, err)
	}
	rp := &ResolvedProduct{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Price:         p.Price.InexactFloat64(),
		StockQuantity: p.StockQuantity,
	}
	r.last = rp
	cp := *rp
	return &cp, nil
}

// Resolve looks up id. A non-positive id means no product is selected:
// it clears the last resolution and returns (nil, nil) without a lookup.
func (r *ProductResolver) Resolve(ctx context.Context, id int64) (*ResolvedProduct, error) {
	return r.Await(ctx, r.Begin(id))
}

// Last returns the latest successful resolution, or nil.
func (r *ProductResolver) Last() *ResolvedProduct {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return nil
	}
	cp := *r.last
	return &cp
}
