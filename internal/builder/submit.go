package builder

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"techmart/internal/domain"
)

var (
	ErrNotSubmittable     = errors.New("form is not submittable")
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

// SubmittedStatus is sent to POST /transactions. The order summary tells
// the user the transaction will be "Pending"; both values are kept as-is
// until the business rule is clarified.
const SubmittedStatus = domain.TransactionCompleted

// DisplayedStatus статус, который форма показывает пользователю
const DisplayedStatus = "Pending"

// TransactionCreator принимает готовый payload (POST /transactions)
type TransactionCreator interface {
	CreateTransaction(ctx context.Context, p domain.TransactionPayload) (*domain.Transaction, error)
}

// SessionInfo метаданные клиента, собранные при монтировании формы
type SessionInfo struct {
	IPAddress string
	UserAgent string
}

// SubmissionCoordinator allows at most one create request in flight.
type SubmissionCoordinator struct {
	creator  TransactionCreator
	logger   *zap.Logger
	inFlight atomic.Bool
	newID    func() string
}

func NewSubmissionCoordinator(creator TransactionCreator, logger *zap.Logger) *SubmissionCoordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionCoordinator{
		creator: creator,
		logger:  logger,
		newID:   func() string { return uuid.NewString() },
	}
}

// Pending reports whether a submission is in flight.
func (c *SubmissionCoordinator) Pending() bool { return c.inFlight.Load() }

// BuildPayload assembles the create request. Amounts are rounded to cents here.
func BuildPayload(f FormState, pricing PricingBreakdown, session SessionInfo, sessionID string) domain.TransactionPayload {
	return domain.TransactionPayload{
		CustomerID:      f.CustomerID,
		ProductID:       f.ProductID,
		Quantity:        f.Quantity,
		UnitPrice:       Round2(f.UnitPrice),
		Status:          SubmittedStatus,
		PaymentMethod:   f.PaymentMethod,
		IPAddress:       session.IPAddress,
		UserAgent:       session.UserAgent,
		SessionID:       sessionID,
		DiscountApplied: Round2(pricing.DiscountAmount),
		TaxAmount:       Round2(pricing.TaxAmount),
		ShippingCost:    f.ShippingCost,
	}
}

// Submit sends the transaction. It refuses locally, without a network
// call, when v is not submittable or another submission is pending.
func (c *SubmissionCoordinator) Submit(ctx context.Context, f FormState, pricing PricingBreakdown, v ValidationResult, session SessionInfo) (*domain.TransactionPayload, error) {
	if !v.IsSubmittable {
		return nil, ErrNotSubmittable
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	payload := BuildPayload(f, pricing, session, c.newID())
	if _, err := c.creator.CreateTransaction(ctx, payload); err != nil {
		c.logger.Warn("transaction submission failed",
			zap.Int64("product_id", payload.ProductID),
			zap.String("session_id", payload.SessionID),
			zap.Error(err),
		)
		return nil, err
	}
	c.logger.Info("transaction created",
		zap.Int64("customer_id", payload.CustomerID),
		zap.Int64("product_id", payload.ProductID),
		zap.Int64("quantity", payload.Quantity),
		zap.String("session_id", payload.SessionID),
	)
	return &payload, nil
}
