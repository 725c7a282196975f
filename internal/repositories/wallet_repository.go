package repositories

import (
	"context"
	"errors"

	"ridepool/internal/models"
)

var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrInvalidWalletData = errors.New("invalid wallet data")
)

// EntryFilter narrows ledger history queries. Zero values mean "no
// filter"; Limit defaults to 20.
type EntryFilter struct {
	Direction string
	Reason    string
	Limit     int
	Offset    int
}

// WalletRepository defines wallet and ledger persistence operations.
// Mutating operations that must be serialized per wallet (posting an
// entry together with the balance update) are expected to run inside
// ExecuteInTransaction with the wallet row locked via LockByUserID.
type WalletRepository interface {
	Create(wallet *models.Wallet) error
	GetByUserID(userID uint) (*models.Wallet, error)
	// LockByUserID reads the wallet row FOR UPDATE, creating it lazily if
	// the user has no wallet yet. Only meaningful inside a transaction.
	LockByUserID(userID uint) (*models.Wallet, error)
	Update(wallet *models.Wallet) error

	// CreateEntry appends an immutable ledger entry. Entries are never
	// updated or deleted.
	CreateEntry(entry *models.LedgerEntry) error
	GetEntries(ctx context.Context, walletID uint, filter EntryFilter) ([]models.LedgerEntry, int64, error)

	ExecuteInTransaction(fn func(WalletRepository) error) error
}
