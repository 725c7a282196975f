package models

import (
	"time"
)

// Ledger entry directions
const (
	EntryDirectionCredit = "credit"
	EntryDirectionDebit  = "debit"
)

// Ledger entry reasons
const (
	ReasonTripPayment     = "trip_payment"
	ReasonTripEarning     = "trip_earning"
	ReasonRefund          = "refund"
	ReasonWithdrawal      = "withdrawal"
	ReasonGatewayCapture  = "gateway_capture"
	ReasonAdminAdjustment = "admin_adjustment"
)

// LedgerEntry is an immutable posting against a wallet. Entries are never
// updated after insertion; corrections are new offsetting entries.
type LedgerEntry struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	WalletID    uint      `gorm:"index;not null" json:"wallet_id"`
	Direction   string    `gorm:"not null" json:"direction"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Reason      string    `gorm:"not null;index" json:"reason"`
	PaymentID   *uint     `gorm:"index" json:"payment_id,omitempty"`
	TripID      *uint     `gorm:"index" json:"trip_id,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
