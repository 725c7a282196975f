package payment

import (
	"context"

	"ridepool/internal/models"
)

// CreateRequest describes a new pending payment record.
type CreateRequest struct {
	RiderID        uint
	DriverID       uint
	TripID         uint
	Amount         int64
	Currency       string
	PricePerSeat   int64
	Seats          int
	GatewayOrderID string
}

// HistoryFilter narrows payment history queries.
type HistoryFilter struct {
	Status string
	Page   int
	Limit  int
}

// Service is the payment record store: one record per booking-payment
// attempt, keyed by the gateway order id, with CAS-guarded status
// transitions.
type Service interface {
	CreatePending(ctx context.Context, req CreateRequest) (*models.Payment, error)
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error)

	// MarkCompleted is idempotent: replayed callbacks for an already
	// finalized order return the existing record with ErrAlreadyFinalized
	// and no side effects.
	MarkCompleted(ctx context.Context, orderID, gatewayPaymentID, signature string) (*models.Payment, error)
	MarkFailed(ctx context.Context, orderID, reason string) (*models.Payment, error)
	MarkRefunded(ctx context.Context, id uint, refundID, reason string) (*models.Payment, error)

	History(ctx context.Context, userID uint, filter HistoryFilter) ([]models.Payment, int64, error)

	// RecordException persists an accounting exception for manual
	// reconciliation.
	RecordException(ctx context.Context, ex *models.AccountingException) error
}
