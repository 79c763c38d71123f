package builder

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techmart/internal/domain"
)

func newTestBuilder(lookup ProductLookup, creator TransactionCreator) *Builder {
	return New(NewProductResolver(lookup), NewSubmissionCoordinator(creator, nil), WithUserAgent("test-agent"))
}

func TestBuilder_Defaults(t *testing.T) {
	b := newTestBuilder(newGatedLookup(), &fakeCreator{})
	s := b.Snapshot()

	assert.Equal(t, DefaultForm(), s.Form)
	assert.Equal(t, int64(1), s.Form.Quantity)
	assert.Equal(t, 10.0, s.Form.ShippingCost)
	assert.False(t, s.Validation.IsSubmittable)
	assert.Equal(t, DefaultIPAddress, b.Session().IPAddress)
}

func TestBuilder_ResolvesPriceAndRecomputes(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(newGatedLookup(product(1, "49.99", 20)), &fakeCreator{})

	var mu sync.Mutex
	var seen []Snapshot
	cancel := b.Subscribe(func(s Snapshot) {
		mu.Lock()
		seen = append(seen, s)
		mu.Unlock()
	})
	defer cancel()

	b.SetCustomerID(3)
	<-b.SetProductID(ctx, 1)
	b.SetQuantity(3)
	b.SetDiscountPercent(10)

	s := b.Snapshot()
	assert.Equal(t, 49.99, s.Form.UnitPrice)
	assert.False(t, s.LoadingProduct)
	assert.InDelta(t, 161.16976, s.Pricing.TotalAmount, 1e-9)
	assert.True(t, s.Validation.IsSubmittable)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, s, seen[len(seen)-1])
}

func TestBuilder_StockErrorOnQuantityChange(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(newGatedLookup(product(1, "5.00", 4)), &fakeCreator{})
	b.SetCustomerID(1)
	<-b.SetProductID(ctx, 1)

	b.SetQuantity(4)
	assert.True(t, b.Snapshot().Validation.IsSubmittable)

	b.SetQuantity(5)
	s := b.Snapshot()
	assert.False(t, s.Validation.IsSubmittable)
	assert.Equal(t, "Only 4 units available", s.Validation.FieldErrors[FieldQuantity])

	_, err := b.Submit(ctx)
	assert.ErrorIs(t, err, ErrNotSubmittable)
}

func TestBuilder_StaleResolutionIgnored(t *testing.T) {
	ctx := context.Background()
	lookup := newGatedLookup(product(1, "10.00", 1), product(2, "20.00", 2))
	gateA := lookup.gate(1)
	b := newTestBuilder(lookup, &fakeCreator{})

	doneA := b.SetProductID(ctx, 1)
	require.Eventually(t, func() bool { return lookup.callCount() == 1 }, timeout, tick)
	<-b.SetProductID(ctx, 2)

	s := b.Snapshot()
	require.NotNil(t, s.Product)
	assert.Equal(t, int64(2), s.Product.ID)
	assert.Equal(t, 20.0, s.Form.UnitPrice)

	close(gateA)
	<-doneA

	s = b.Snapshot()
	assert.Equal(t, int64(2), s.Form.ProductID)
	assert.Equal(t, int64(2), s.Product.ID)
	assert.Equal(t, 20.0, s.Form.UnitPrice)
}

func TestBuilder_LatestSelectionWinsWhateverLookupOrder(t *testing.T) {
	ctx := context.Background()
	for i := 0; i < 50; i++ {
		lookup := newGatedLookup(product(1, "10.00", 1), product(2, "20.00", 2))
		gateA, gateB := lookup.gate(1), lookup.gate(2)
		b := newTestBuilder(lookup, &fakeCreator{})

		doneA := b.SetProductID(ctx, 1)
		doneB := b.SetProductID(ctx, 2)
		require.Eventually(t, func() bool { return lookup.callCount() == 2 }, timeout, tick)
		lookup.mu.Lock()
		assert.ElementsMatch(t, []int64{1, 2}, lookup.calls)
		lookup.mu.Unlock()
		assert.True(t, b.Snapshot().LoadingProduct)

		// alternate which response lands first
		if i%2 == 0 {
			close(gateB)
			<-doneB
			close(gateA)
			<-doneA
		} else {
			close(gateA)
			<-doneA
			close(gateB)
			<-doneB
		}

		s := b.Snapshot()
		require.False(t, s.LoadingProduct, "iteration %d", i)
		require.NotNil(t, s.Product, "iteration %d", i)
		assert.Equal(t, int64(2), s.Product.ID)
		assert.Equal(t, 20.0, s.Form.UnitPrice)
	}
}

func TestBuilder_ResolutionFailure(t *testing.T) {
	ctx := context.Background()
	b := newTestBuilder(newGatedLookup(product(1, "10.00", 5)), &fakeCreator{})
	<-b.SetProductID(ctx, 1)
	require.Equal(t, 10.0, b.Snapshot().Form.UnitPrice)

	<-b.SetProductID(ctx, 99)
	s := b.Snapshot()
	assert.Nil(t, s.Product)
	assert.Zero(t, s.Form.UnitPrice)
	assert.Equal(t, MsgProductLoadFailed, s.Validation.FieldErrors[FieldProductID])

	<-b.SetProductID(ctx, 0)
	s = b.Snapshot()
	assert.Equal(t, "Product ID is required", s.Validation.FieldErrors[FieldProductID])
	assert.False(t, s.LoadingProduct)
}

func TestBuilder_SubmitFlow(t *testing.T) {
	ctx := context.Background()
	creator := &fakeCreator{err: errTransport}
	b := newTestBuilder(newGatedLookup(product(1, "49.99", 20)), creator)
	b.Mount(ctx, staticAddress{ip: "203.0.113.9"})
	b.SetCustomerID(3)
	<-b.SetProductID(ctx, 1)
	b.SetQuantity(3)
	b.SetDiscountPercent(10)

	_, err := b.Submit(ctx)
	require.Error(t, err)
	s := b.Snapshot()
	assert.Equal(t, "API Error: Internal Server Error", s.SubmitError)
	assert.False(t, s.Submitting)
	assert.True(t, s.Validation.IsSubmittable)

	creator.err = nil
	p, err := b.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.9", p.IPAddress)
	assert.Equal(t, "test-agent", p.UserAgent)
	assert.Equal(t, domain.TransactionCompleted, p.Status)
	assert.Equal(t, 15.0, p.DiscountApplied)
	assert.Equal(t, 16.2, p.TaxAmount)

	s = b.Snapshot()
	assert.Empty(t, s.SubmitError)
	assert.Equal(t, p, s.Submitted)
	// form is not reset
	assert.Equal(t, int64(3), s.Form.Quantity)
	assert.Equal(t, creator.lastPayload(), *p)
}

func TestBuilder_SubmitWhilePendingIsNoop(t *testing.T) {
	ctx := context.Background()
	creator := &fakeCreator{started: make(chan struct{}, 1), release: make(chan struct{})}
	b := newTestBuilder(newGatedLookup(product(1, "1.00", 5)), creator)
	b.SetCustomerID(1)
	<-b.SetProductID(ctx, 1)

	done := make(chan error, 1)
	go func() {
		_, err := b.Submit(ctx)
		done <- err
	}()
	<-creator.started
	assert.True(t, b.Snapshot().Submitting)

	_, err := b.Submit(ctx)
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(creator.release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), creator.calls.Load())
}

func TestBuilder_MountFallsBackToLoopback(t *testing.T) {
	b := newTestBuilder(newGatedLookup(), &fakeCreator{})
	b.Mount(context.Background(), staticAddress{err: errors.New("offline")})
	assert.Equal(t, DefaultIPAddress, b.Session().IPAddress)
}
