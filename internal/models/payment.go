package models

import (
	"time"
)

// Payment statuses. Failed and refunded are terminal.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Refund statuses
const (
	RefundStatusNone      = "none"
	RefundStatusCompleted = "completed"
)

// Payment tracks one booking-payment attempt against the gateway. The
// gateway order id is assigned at creation and is the idempotency key for
// webhook callbacks; the gateway payment id arrives with the confirmation.
type Payment struct {
	ID               uint       `gorm:"primarykey" json:"id"`
	RiderID          uint       `gorm:"index:idx_payments_rider_status;not null" json:"rider_id"`
	DriverID         uint       `gorm:"index:idx_payments_driver_status;not null" json:"driver_id"`
	TripID           uint       `gorm:"index;not null" json:"trip_id"`
	Amount           int64      `gorm:"not null" json:"amount"`
	Currency         string     `gorm:"default:'INR'" json:"currency"`
	PricePerSeat     int64      `gorm:"not null" json:"price_per_seat"`
	Seats            int        `gorm:"not null" json:"seats"`
	GatewayOrderID   string     `gorm:"uniqueIndex;not null" json:"gateway_order_id"`
	GatewayPaymentID *string    `gorm:"uniqueIndex" json:"gateway_payment_id,omitempty"`
	GatewaySignature string     `json:"-"`
	Status           string     `gorm:"index:idx_payments_rider_status;index:idx_payments_driver_status;not null;default:'pending'" json:"status"`
	FailureReason    string     `json:"failure_reason,omitempty"`
	RefundAmount     int64      `gorm:"default:0" json:"refund_amount"`
	RefundID         string     `json:"refund_id,omitempty"`
	RefundReason     string     `json:"refund_reason,omitempty"`
	RefundStatus     string     `gorm:"default:'none'" json:"refund_status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	RefundedAt       *time.Time `json:"refunded_at,omitempty"`
}

// Finalized reports whether the payment reached a state from which a
// completion callback must not re-effect side effects.
func (p *Payment) Finalized() bool {
	return p.Status != PaymentStatusPending
}
