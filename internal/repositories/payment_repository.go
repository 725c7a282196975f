package repositories

import (
	"context"
	"errors"
	"time"

	"ridepool/internal/models"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrDuplicateOrder      = errors.New("gateway order id already exists")
	ErrPaymentFinalized    = errors.New("payment already finalized")
	ErrPaymentNotCompleted = errors.New("payment is not completed")
)

// PaymentFilter narrows payment history queries.
type PaymentFilter struct {
	Status string
	Limit  int
	Offset int
}

// PaymentRepository persists booking-payment attempts. All state
// transitions are single compare-and-set updates guarded by the current
// status, so duplicate webhook deliveries and the janitor sweep can race
// without double-applying anything.
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByOrderID(orderID string) (*models.Payment, error)

	// MarkCompleted transitions pending -> completed. When the payment is
	// already finalized it returns the existing record together with
	// ErrPaymentFinalized so callers can short-circuit idempotently.
	MarkCompleted(orderID, gatewayPaymentID, signature string) (*models.Payment, error)
	// MarkFailed transitions pending -> failed.
	MarkFailed(orderID, reason string) (*models.Payment, error)
	// MarkRefunded transitions completed -> refunded.
	MarkRefunded(id uint, refundID, reason string) (*models.Payment, error)

	History(ctx context.Context, userID uint, filter PaymentFilter) ([]models.Payment, int64, error)

	// ExpireStalePending fails pending payments created before the cutoff
	// and returns how many rows were swept.
	ExpireStalePending(cutoff time.Time) (int64, error)

	CreateException(ex *models.AccountingException) error
}
