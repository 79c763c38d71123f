package repository

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"techmart/internal/domain"
)

// MemoryStore объединённое in-memory хранилище и простой генератор ID
type MemoryStore struct {
	mu         sync.RWMutex
	nextProdID int64
	nextTxID   int64
	products   map[int64]domain.Product
	txs        map[int64]domain.Transaction
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextProdID: 1,
		nextTxID:   1,
		products:   make(map[int64]domain.Product),
		txs:        make(map[int64]domain.Transaction),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// transaction-aware locking helpers
type txKey struct{}

func isTx(ctx context.Context) bool {
	b, _ := ctx.Value(txKey{}).(bool)
	return b
}

func (m *MemoryStore) rlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RLock()
	}
}
func (m *MemoryStore) runlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.RUnlock()
	}
}
func (m *MemoryStore) wlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Lock()
	}
}
func (m *MemoryStore) wunlock(ctx context.Context) {
	if !isTx(ctx) {
		m.mu.Unlock()
	}
}

// Ensure interfaces
var _ ProductRepository = (*MemoryStore)(nil)

func (m *MemoryStore) Create(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	p.ID = m.nextProdID
	m.nextProdID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = m.now()
	}
	m.products[p.ID] = *p
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	p, ok := m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	// return copy
	cp := p
	return &cp, nil
}

func (m *MemoryStore) Update(ctx context.Context, p *domain.Product) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	old, ok := m.products[p.ID]
	if !ok {
		return ErrNotFound
	}
	p.CreatedAt = old.CreatedAt
	m.products[p.ID] = *p
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id int64) error {
	m.wlock(ctx)
	defer m.wunlock(ctx)
	if _, ok := m.products[id]; !ok {
		return ErrNotFound
	}
	delete(m.products, id)
	return nil
}

// List returns matching products ordered by id.
func (m *MemoryStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	m.rlock(ctx)
	defer m.runlock(ctx)
	out := make([]domain.Product, 0)
	for _, p := range m.products {
		if !containsAnyIgnoreCase(f.Search, p.Name, p.SKU, p.Category) {
			continue
		}
		if f.MaxStock != nil && p.StockQuantity > *f.MaxStock {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// TransactionRepository implementation on wrapper type
type MemoryTransactions struct{ store *MemoryStore }

func NewMemoryTransactions(store *MemoryStore) *MemoryTransactions {
	return &MemoryTransactions{store: store}
}

var _ TransactionRepository = (*MemoryTransactions)(nil)

func (mt *MemoryTransactions) Create(ctx context.Context, t *domain.Transaction) error {
	mt.store.wlock(ctx)
	defer mt.store.wunlock(ctx)
	t.ID = mt.store.nextTxID
	mt.store.nextTxID++
	if t.Timestamp.IsZero() {
		t.Timestamp = mt.store.now()
	}
	mt.store.txs[t.ID] = *t
	return nil
}

func (mt *MemoryTransactions) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	mt.store.rlock(ctx)
	defer mt.store.runlock(ctx)
	t, ok := mt.store.txs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := t
	return &cp, nil
}

func (mt *MemoryTransactions) Update(ctx context.Context, t *domain.Transaction) error {
	mt.store.wlock(ctx)
	defer mt.store.wunlock(ctx)
	old, ok := mt.store.txs[t.ID]
	if !ok {
		return ErrNotFound
	}
	t.Timestamp = old.Timestamp
	mt.store.txs[t.ID] = *t
	return nil
}

// List returns matching transactions, newest first.
func (mt *MemoryTransactions) List(ctx context.Context, f TransactionFilter) ([]domain.Transaction, error) {
	mt.store.rlock(ctx)
	defer mt.store.runlock(ctx)
	out := make([]domain.Transaction, 0)
	for _, t := range mt.store.txs {
		fields := []string{string(t.Status), string(t.PaymentMethod), t.SessionID, strconv.FormatInt(t.ID, 10)}
		if t.Product != nil {
			fields = append(fields, t.Product.Name, t.Product.Category)
		}
		if !containsAnyIgnoreCase(f.Search, fields...) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

// Tx manager using write lock to emulate transaction boundary
type MemoryTx struct{ store *MemoryStore }

func NewMemoryTx(store *MemoryStore) *MemoryTx { return &MemoryTx{store: store} }

func (tx *MemoryTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	// Для in-memory используем блокировку записи и помечаем контекст, чтобы репозитории пропускали внутренние локи
	tx.store.mu.Lock()
	defer tx.store.mu.Unlock()
	ctx = context.WithValue(ctx, txKey{}, true)
	return fn(ctx)
}
