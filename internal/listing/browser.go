// Package listing drives paged, searchable tables backed by the API.
package listing

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"techmart/internal/debounce"
	"techmart/internal/domain"
)

// DefaultSearchDelay пауза ввода перед поиском
const DefaultSearchDelay = 400 * time.Millisecond

// DefaultLimit размер страницы
const DefaultLimit = 10

type Query struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Search string `json:"search,omitempty"`
}

// Fetcher загружает одну страницу
type Fetcher[T any] func(ctx context.Context, q Query) (domain.Page[T], error)

// State снимок состояния таблицы
type State[T any] struct {
	Query       Query  `json:"query"`
	SearchInput string `json:"searchInput"`
	Data        []T    `json:"data"`
	Total       int    `json:"total"`
	TotalPages  int    `json:"totalPages"`
	Loading     bool   `json:"loading"`
	Err         string `json:"error,omitempty"`
}

// Browser keeps one table's query and data. Only the latest fetch is
// applied; earlier responses that arrive late are dropped.
type Browser[T any] struct {
	ctx       context.Context
	fetch     Fetcher[T]
	debouncer *debounce.Debouncer
	logger    *zap.Logger

	mu        sync.Mutex
	state     State[T]
	gen       uint64
	listeners map[int]func(State[T])
	nextID    int
}

type Config struct {
	Limit       int
	SearchDelay time.Duration
	Logger      *zap.Logger
}

func New[T any](ctx context.Context, fetch Fetcher[T], cfg Config) *Browser[T] {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.SearchDelay <= 0 {
		cfg.SearchDelay = DefaultSearchDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Browser[T]{
		ctx:       ctx,
		fetch:     fetch,
		debouncer: debounce.New(cfg.SearchDelay),
		logger:    cfg.Logger,
		state:     State[T]{Query: Query{Page: 1, Limit: cfg.Limit}, TotalPages: 1},
		listeners: make(map[int]func(State[T])),
	}
}

// Load fetches the current query. The channel closes when the result is
// applied or discarded.
func (b *Browser[T]) Load() <-chan struct{} {
	b.mu.Lock()
	q := b.state.Query
	b.mu.Unlock()
	return b.run(q)
}

// SetPage switches page and fetches immediately.
func (b *Browser[T]) SetPage(page int) <-chan struct{} {
	if page < 1 {
		page = 1
	}
	b.mu.Lock()
	b.state.Query.Page = page
	q := b.state.Query
	b.mu.Unlock()
	return b.run(q)
}

// SetSearch records the input and, after the quiet period, resets to the
// first page and fetches with the latest input only.
func (b *Browser[T]) SetSearch(s string) {
	b.update(func() { b.state.SearchInput = s })
	b.debouncer.Call(func() {
		b.mu.Lock()
		b.state.Query.Search = b.state.SearchInput
		b.state.Query.Page = 1
		q := b.state.Query
		b.mu.Unlock()
		b.run(q)
	})
}

// Sort orders the loaded page in place on the client.
func (b *Browser[T]) Sort(less func(a, c T) bool) {
	b.update(func() {
		data := append([]T(nil), b.state.Data...)
		sort.SliceStable(data, func(i, j int) bool { return less(data[i], data[j]) })
		b.state.Data = data
	})
}

func (b *Browser[T]) State() State[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Browser[T]) Subscribe(fn func(State[T])) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// Close cancels a pending debounced search.
func (b *Browser[T]) Close() { b.debouncer.Stop() }

func (b *Browser[T]) run(q Query) <-chan struct{} {
	done := make(chan struct{})
	var gen uint64
	b.update(func() {
		b.gen++
		gen = b.gen
		b.state.Loading = true
		b.state.Err = ""
	})

	go func() {
		defer close(done)
		page, err := b.fetch(b.ctx, q)
		b.update(func() {
			if gen != b.gen {
				return
			}
			b.state.Loading = false
			if err != nil {
				b.logger.Warn("list fetch failed", zap.Int("page", q.Page), zap.String("search", q.Search), zap.Error(err))
				b.state.Err = err.Error()
				return
			}
			b.state.Data = page.Data
			b.state.Total = page.Total
			b.state.TotalPages = page.TotalPages
		})
	}()
	return done
}

func (b *Browser[T]) update(fn func()) {
	b.mu.Lock()
	fn()
	s := b.state
	ls := make([]func(State[T]), 0, len(b.listeners))
	for _, l := range b.listeners {
		ls = append(ls, l)
	}
	b.mu.Unlock()
	for _, l := range ls {
		l(s)
	}
}
