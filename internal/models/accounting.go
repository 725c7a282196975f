package models

import (
	"time"
)

// Accounting exception kinds
const (
	ExceptionRefundShortfall = "refund_shortfall"
	ExceptionRefundUnposted  = "refund_unposted"
)

// AccountingException records money movements that could not be applied
// symmetrically, e.g. a refund where the driver's wallet no longer covers
// the reversal. Rows are worked off by manual reconciliation.
type AccountingException struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	PaymentID uint      `gorm:"index;not null" json:"payment_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Kind      string    `gorm:"not null" json:"kind"`
	Note      string    `json:"note,omitempty"`
	Resolved  bool      `gorm:"default:false" json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
}
