package models

import (
	"time"
)

// Wallet statuses
const (
	WalletStatusActive      = "active"
	WalletStatusDeactivated = "deactivated"
)

// Wallet holds a user's balance in minor units (paise). One wallet per
// user, created lazily on the first financial operation and never
// deleted, only deactivated. Balance must always equal the sum of
// credits minus the sum of debits over the wallet's ledger entries.
type Wallet struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Balance       int64     `gorm:"not null;default:0" json:"balance"`
	Currency      string    `gorm:"default:'INR'" json:"currency"`
	TotalEarned   int64     `gorm:"not null;default:0" json:"total_earned"`
	TotalSpent    int64     `gorm:"not null;default:0" json:"total_spent"`
	PendingAmount int64     `gorm:"not null;default:0" json:"pending_amount"`
	Status        string    `gorm:"default:'active'" json:"status"`
	StatusReason  string    `gorm:"default:''" json:"status_reason,omitempty"`
	KYCVerified   bool      `gorm:"default:false" json:"kyc_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
