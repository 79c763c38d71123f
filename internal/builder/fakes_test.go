package builder

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"techmart/internal/domain"
)

type notFoundErr struct{}

func (notFoundErr) Error() string  { return "API Error: Not Found" }
func (notFoundErr) NotFound() bool { return true }

// gatedLookup serves products from memory; ids with a gate block until it is closed.
type gatedLookup struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	gates    map[int64]chan struct{}
	fail     map[int64]error
	calls    []int64
}

func newGatedLookup(ps ...domain.Product) *gatedLookup {
	g := &gatedLookup{
		products: make(map[int64]domain.Product),
		gates:    make(map[int64]chan struct{}),
		fail:     make(map[int64]error),
	}
	for _, p := range ps {
		g.products[p.ID] = p
	}
	return g
}

func (g *gatedLookup) gate(id int64) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan struct{})
	g.gates[id] = ch
	return ch
}

func (g *gatedLookup) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	g.mu.Lock()
	g.calls = append(g.calls, id)
	gate := g.gates[id]
	p, ok := g.products[id]
	ferr := g.fail[id]
	g.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if ferr != nil {
		return nil, ferr
	}
	if !ok {
		return nil, notFoundErr{}
	}
	return &p, nil
}

func (g *gatedLookup) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func product(id int64, price string, stock int64) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          "Product",
		SKU:           "SKU-1",
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	}
}

type fakeCreator struct {
	calls   atomic.Int32
	started chan struct{}
	release chan struct{}
	err     error

	mu   sync.Mutex
	last domain.TransactionPayload
}

func (f *fakeCreator) CreateTransaction(ctx context.Context, p domain.TransactionPayload) (*domain.Transaction, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.last = p
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Transaction{ID: 1, CustomerID: p.CustomerID, ProductID: p.ProductID}, nil
}

func (f *fakeCreator) lastPayload() domain.TransactionPayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

type staticAddress struct {
	ip  string
	err error
}

func (s staticAddress) LookupIP(context.Context) (string, error) { return s.ip, s.err }

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)

var errTransport = errors.New("API Error: Internal Server Error")
