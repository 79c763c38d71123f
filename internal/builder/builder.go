// Package builder implements the transaction-creation form engine: form
// state, product resolution, pricing, validation and submission.
//
// The Builder owns all state. Every mutation recomputes pricing and
// validation from scratch and notifies subscribers with a Snapshot.
package builder

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"techmart/internal/domain"
)

// DefaultIPAddress используется, если адрес клиента определить не удалось
const DefaultIPAddress = "127.0.0.1"

// DefaultUserAgent агент по умолчанию
const DefaultUserAgent = "techmart-builder/1.0"

// AddressLookup возвращает внешний адрес клиента
type AddressLookup interface {
	LookupIP(ctx context.Context) (string, error)
}

// Snapshot неизменяемый срез состояния формы. FieldErrors must be treated
// as read-only by subscribers.
type Snapshot struct {
	Form           FormState                  `json:"form"`
	Product        *ResolvedProduct           `json:"product,omitempty"`
	Pricing        PricingBreakdown           `json:"pricing"`
	Validation     ValidationResult           `json:"validation"`
	LoadingProduct bool                       `json:"loadingProduct"`
	Submitting     bool                       `json:"submitting"`
	SubmitError    string                     `json:"submitError,omitempty"`
	Submitted      *domain.TransactionPayload `json:"submitted,omitempty"`
}

type Option func(*Builder)

func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

func WithUserAgent(ua string) Option {
	return func(b *Builder) { b.session.UserAgent = ua }
}

// Builder состояние одной формы создания транзакции
type Builder struct {
	resolver    *ProductResolver
	coordinator *SubmissionCoordinator
	logger      *zap.Logger

	mu         sync.Mutex
	form       FormState
	product    *ResolvedProduct
	resolveErr error
	loading    bool
	session    SessionInfo
	submitting bool
	submitErr  string
	submitted  *domain.TransactionPayload
	snap       Snapshot

	listeners map[int]func(Snapshot)
	nextID    int
}

func New(resolver *ProductResolver, coordinator *SubmissionCoordinator, opts ...Option) *Builder {
	b := &Builder{
		resolver:    resolver,
		coordinator: coordinator,
		logger:      zap.NewNop(),
		form:        DefaultForm(),
		session:     SessionInfo{IPAddress: DefaultIPAddress, UserAgent: DefaultUserAgent},
		listeners:   make(map[int]func(Snapshot)),
	}
	for _, o := range opts {
		o(b)
	}
	b.mu.Lock()
	b.recomputeLocked()
	b.mu.Unlock()
	return b
}

// Mount resolves the client address once. Failures fall back to
// DefaultIPAddress and are never surfaced.
func (b *Builder) Mount(ctx context.Context, lookup AddressLookup) {
	ip := DefaultIPAddress
	if lookup != nil {
		v, err := lookup.LookupIP(ctx)
		switch {
		case err != nil:
			b.logger.Debug("address lookup failed, using loopback", zap.Error(err))
		case v != "":
			ip = v
		}
	}
	b.update(func() { b.session.IPAddress = ip })
}

// Subscribe registers fn for every state change and returns a cancel func.
func (b *Builder) Subscribe(fn func(Snapshot)) func() {
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

// Snapshot returns the current state.
func (b *Builder) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap
}

func (b *Builder) Session() SessionInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session
}

func (b *Builder) SetCustomerID(id int64) {
	b.update(func() { b.form.CustomerID = id })
}

func (b *Builder) SetQuantity(q int64) {
	b.update(func() { b.form.Quantity = q })
}

func (b *Builder) SetPaymentMethod(m domain.PaymentMethod) {
	b.update(func() { b.form.PaymentMethod = m })
}

func (b *Builder) SetDiscountPercent(d float64) {
	b.update(func() { b.form.DiscountPercent = d })
}

func (b *Builder) SetShippingCost(s float64) {
	b.update(func() { b.form.ShippingCost = s })
}

// SetProductID selects a product and starts its resolution in the
// background. The returned channel is closed once the result has been
// applied or discarded. Selecting the current id again is a no-op.
func (b *Builder) SetProductID(ctx context.Context, id int64) <-chan struct{} {
	done := make(chan struct{})

	b.mu.Lock()
	if b.form.ProductID == id {
		b.mu.Unlock()
		close(done)
		return done
	}
	// the ticket is issued under b.mu so issue order matches selection order
	ticket := b.resolver.Begin(id)
	b.form.ProductID = id
	b.resolveErr = nil
	if id <= 0 {
		b.form.UnitPrice = 0
		b.product = nil
		b.loading = false
	} else {
		b.loading = true
	}
	s := b.recomputeLocked()
	ls := b.listenersLocked()
	b.mu.Unlock()
	notify(ls, s)

	if id <= 0 {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		rp, err := b.resolver.Await(ctx, ticket)
		if errors.Is(err, ErrStaleResolution) {
			b.logger.Debug("discarding stale product resolution", zap.Int64("product_id", id))
			return
		}
		b.update(func() {
			if b.form.ProductID != id {
				return
			}
			b.loading = false
			if err != nil {
				b.logger.Warn("product resolution failed", zap.Int64("product_id", id), zap.Error(err))
				b.product = nil
				b.form.UnitPrice = 0
				b.resolveErr = err
				return
			}
			b.product = rp
			b.form.UnitPrice = rp.Price
			b.resolveErr = nil
		})
	}()
	return done
}

// Submit sends the current form. On success the form is left as is and
// the accepted payload is exposed in Snapshot.Submitted.
func (b *Builder) Submit(ctx context.Context) (*domain.TransactionPayload, error) {
	b.mu.Lock()
	if b.submitting {
		b.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	snap := b.snap
	session := b.session
	if !snap.Validation.IsSubmittable {
		b.mu.Unlock()
		return nil, ErrNotSubmittable
	}
	b.submitting = true
	b.submitErr = ""
	s := b.recomputeLocked()
	ls := b.listenersLocked()
	b.mu.Unlock()
	notify(ls, s)

	payload, err := b.coordinator.Submit(ctx, snap.Form, snap.Pricing, snap.Validation, session)
	b.update(func() {
		b.submitting = false
		if err != nil {
			b.submitErr = err.Error()
			return
		}
		b.submitted = payload
	})
	return payload, err
}

func (b *Builder) update(fn func()) {
	b.mu.Lock()
	fn()
	s := b.recomputeLocked()
	ls := b.listenersLocked()
	b.mu.Unlock()
	notify(ls, s)
}

func (b *Builder) recomputeLocked() Snapshot {
	var product *ResolvedProduct
	if b.product != nil {
		cp := *b.product
		product = &cp
	}
	b.snap = Snapshot{
		Form:    b.form,
		Product: product,
		Pricing: ComputePricing(b.form.pricingInput()),
		Validation: Validate(b.form, ResolutionState{
			Product: product,
			Pending: b.loading,
			Err:     b.resolveErr,
		}),
		LoadingProduct: b.loading,
		Submitting:     b.submitting,
		SubmitError:    b.submitErr,
		Submitted:      b.submitted,
	}
	return b.snap
}

func (b *Builder) listenersLocked() []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(b.listeners))
	for _, l := range b.listeners {
		out = append(out, l)
	}
	return out
}

func notify(ls []func(Snapshot), s Snapshot) {
	for _, l := range ls {
		l(s)
	}
}
