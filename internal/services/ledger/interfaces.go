package ledger

import (
	"context"

	"ridepool/internal/models"
)

// Service defines the wallet ledger store interface.
type Service interface {
	// Credit appends a credit entry and increases the balance. Fails with
	// ErrInvalidAmount when amount <= 0.
	Credit(ctx context.Context, userID uint, amount int64, reason string, ref EntryRef) (*models.LedgerEntry, error)
	// Debit appends a debit entry only when the balance covers the full
	// amount; fails with ErrInsufficientFunds otherwise. No partial debit.
	Debit(ctx context.Context, userID uint, amount int64, reason string, ref EntryRef) (*models.LedgerEntry, error)

	GetWallet(ctx context.Context, userID uint) (*models.Wallet, error)
	GetBalance(ctx context.Context, userID uint) (int64, error)

	// History returns the wallet's entries newest first.
	History(ctx context.Context, userID uint, filter HistoryFilter) ([]models.LedgerEntry, int64, error)
}

// Cache is the subset of caching operations the ledger needs.
type Cache interface {
	CacheWallet(ctx context.Context, wallet *models.Wallet) error
	GetWallet(ctx context.Context, userID uint) (*models.Wallet, bool, error)
	InvalidateWallet(ctx context.Context, userID uint) error
}
