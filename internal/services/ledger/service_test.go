package ledger

import (
	"context"
	"testing"

	"ridepool/internal/models"
	"ridepool/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWalletRepo is an in-memory WalletRepository. Transactions are
// simulated by running the callback against the same state; the tests
// exercise service semantics, not SQL.
type fakeWalletRepo struct {
	wallets map[uint]*models.Wallet
	entries []models.LedgerEntry
	nextID  uint

	failUpdate error
}

func newFakeWalletRepo() *fakeWalletRepo {
	return &fakeWalletRepo{
		wallets: make(map[uint]*models.Wallet),
		nextID:  1,
	}
}

func (f *fakeWalletRepo) Create(wallet *models.Wallet) error {
	if _, ok := f.wallets[wallet.UserID]; ok {
		return repositories.ErrInvalidWalletData
	}
	wallet.ID = f.nextID
	f.nextID++
	f.wallets[wallet.UserID] = wallet
	return nil
}

func (f *fakeWalletRepo) GetByUserID(userID uint) (*models.Wallet, error) {
	w, ok := f.wallets[userID]
	if !ok {
		return nil, repositories.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWalletRepo) LockByUserID(userID uint) (*models.Wallet, error) {
	if w, ok := f.wallets[userID]; ok {
		cp := *w
		return &cp, nil
	}
	w := &models.Wallet{
		UserID:   userID,
		Currency: "INR",
		Status:   models.WalletStatusActive,
	}
	if err := f.Create(w); err != nil {
		return nil, err
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWalletRepo) Update(wallet *models.Wallet) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	cp := *wallet
	f.wallets[wallet.UserID] = &cp
	return nil
}

func (f *fakeWalletRepo) CreateEntry(entry *models.LedgerEntry) error {
	entry.ID = uint(len(f.entries) + 1)
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeWalletRepo) GetEntries(ctx context.Context, walletID uint, filter repositories.EntryFilter) ([]models.LedgerEntry, int64, error) {
	var matched []models.LedgerEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if e.WalletID != walletID {
			continue
		}
		if filter.Direction != "" && e.Direction != filter.Direction {
			continue
		}
		if filter.Reason != "" && e.Reason != filter.Reason {
			continue
		}
		matched = append(matched, e)
	}
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (f *fakeWalletRepo) ExecuteInTransaction(fn func(repositories.WalletRepository) error) error {
	return fn(f)
}

type fakeCache struct {
	wallets     map[uint]*models.Wallet
	invalidated []uint
}

func newFakeCache() *fakeCache {
	return &fakeCache{wallets: make(map[uint]*models.Wallet)}
}

func (f *fakeCache) CacheWallet(ctx context.Context, wallet *models.Wallet) error {
	cp := *wallet
	f.wallets[wallet.UserID] = &cp
	return nil
}

func (f *fakeCache) GetWallet(ctx context.Context, userID uint) (*models.Wallet, bool, error) {
	w, ok := f.wallets[userID]
	if !ok {
		return nil, false, nil
	}
	cp := *w
	return &cp, true, nil
}

func (f *fakeCache) InvalidateWallet(ctx context.Context, userID uint) error {
	delete(f.wallets, userID)
	f.invalidated = append(f.invalidated, userID)
	return nil
}

func TestLedgerService_Credit(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		setup   func(*fakeWalletRepo)
		wantErr error
	}{
		{
			name:   "successful credit",
			amount: 5000,
		},
		{
			name:    "zero amount",
			amount:  0,
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount",
			amount:  -100,
			wantErr: ErrInvalidAmount,
		},
		{
			name:   "deactivated wallet",
			amount: 5000,
			setup: func(repo *fakeWalletRepo) {
				repo.Create(&models.Wallet{UserID: 1, Status: models.WalletStatusDeactivated})
			},
			wantErr: ErrWalletDeactivated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeWalletRepo()
			if tt.setup != nil {
				tt.setup(repo)
			}
			svc := NewService(repo, newFakeCache(), nil)

			entry, err := svc.Credit(context.Background(), 1, tt.amount, models.ReasonTripEarning, EntryRef{})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, models.EntryDirectionCredit, entry.Direction)
			assert.Equal(t, tt.amount, entry.Amount)

			wallet, err := repo.GetByUserID(1)
			require.NoError(t, err)
			assert.Equal(t, tt.amount, wallet.Balance)
			assert.Equal(t, tt.amount, wallet.TotalEarned)
			assert.Equal(t, tt.amount, wallet.PendingAmount)
		})
	}
}

func TestLedgerService_Debit(t *testing.T) {
	tests := []struct {
		name     string
		balance  int64
		amount   int64
		wantErr  error
		wantLeft int64
	}{
		{
			name:     "successful debit",
			balance:  10000,
			amount:   4000,
			wantLeft: 6000,
		},
		{
			name:     "exact balance",
			balance:  4000,
			amount:   4000,
			wantLeft: 0,
		},
		{
			name:    "insufficient funds",
			balance: 3999,
			amount:  4000,
			wantErr: ErrInsufficientFunds,
		},
		{
			name:    "zero balance",
			balance: 0,
			amount:  1,
			wantErr: ErrInsufficientFunds,
		},
		{
			name:    "invalid amount",
			balance: 10000,
			amount:  0,
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeWalletRepo()
			repo.Create(&models.Wallet{UserID: 1, Balance: tt.balance, Status: models.WalletStatusActive})
			svc := NewService(repo, newFakeCache(), nil)

			entry, err := svc.Debit(context.Background(), 1, tt.amount, models.ReasonTripPayment, EntryRef{})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				// Failed debits must leave the wallet untouched.
				wallet, _ := repo.GetByUserID(1)
				assert.Equal(t, tt.balance, wallet.Balance)
				assert.Empty(t, repo.entries)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, models.EntryDirectionDebit, entry.Direction)

			wallet, err := repo.GetByUserID(1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLeft, wallet.Balance)
			assert.Equal(t, tt.amount, wallet.TotalSpent)
		})
	}
}

func TestLedgerService_DebitInvalidatesCache(t *testing.T) {
	repo := newFakeWalletRepo()
	repo.Create(&models.Wallet{UserID: 7, Balance: 1000, Status: models.WalletStatusActive})
	cache := newFakeCache()
	svc := NewService(repo, cache, nil)

	// Warm the cache, then debit; the next read must see the new balance.
	_, err := svc.GetBalance(context.Background(), 7)
	require.NoError(t, err)

	_, err = svc.Debit(context.Background(), 7, 300, models.ReasonWithdrawal, EntryRef{})
	require.NoError(t, err)
	assert.Contains(t, cache.invalidated, uint(7))

	balance, err := svc.GetBalance(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(700), balance)
}

func TestLedgerService_GetWalletLazyCreation(t *testing.T) {
	repo := newFakeWalletRepo()
	svc := NewService(repo, newFakeCache(), nil)

	wallet, err := svc.GetWallet(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), wallet.UserID)
	assert.Equal(t, int64(0), wallet.Balance)
	assert.Equal(t, models.WalletStatusActive, wallet.Status)
	assert.False(t, wallet.KYCVerified)

	// Second call returns the same wallet, not a new one.
	again, err := svc.GetWallet(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, wallet.ID, again.ID)
	assert.Len(t, repo.wallets, 1)
}

func TestLedgerService_History(t *testing.T) {
	repo := newFakeWalletRepo()
	repo.Create(&models.Wallet{UserID: 1, Balance: 0, Status: models.WalletStatusActive})
	svc := NewService(repo, newFakeCache(), nil)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := svc.Credit(ctx, 1, 1000, models.ReasonTripEarning, EntryRef{})
		require.NoError(t, err)
	}
	_, err := svc.Debit(ctx, 1, 500, models.ReasonWithdrawal, EntryRef{})
	require.NoError(t, err)

	t.Run("all entries newest first", func(t *testing.T) {
		entries, total, err := svc.History(ctx, 1, HistoryFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		require.Len(t, entries, 4)
		assert.Equal(t, models.ReasonWithdrawal, entries[0].Reason)
	})

	t.Run("direction filter", func(t *testing.T) {
		entries, total, err := svc.History(ctx, 1, HistoryFilter{Direction: models.EntryDirectionDebit})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, entries, 1)
		assert.Equal(t, models.ReasonWithdrawal, entries[0].Reason)
	})

	t.Run("reason filter", func(t *testing.T) {
		entries, total, err := svc.History(ctx, 1, HistoryFilter{Reason: models.ReasonTripEarning})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, entries, 3)
	})

	t.Run("pagination", func(t *testing.T) {
		entries, total, err := svc.History(ctx, 1, HistoryFilter{Page: 2, Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)
		assert.Len(t, entries, 1)
	})
}
