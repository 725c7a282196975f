package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ridepool/internal/models"
	"ridepool/internal/repositories"
)

type service struct {
	repo    repositories.WalletRepository
	cache   Cache
	metrics MetricsCollector
}

// NewService creates a new ledger service.
func NewService(repo repositories.WalletRepository, cache Cache, metrics MetricsCollector) Service {
	if repo == nil {
		panic("repo is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	return &service{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
	}
}

func (s *service) Credit(ctx context.Context, userID uint, amount int64, reason string, ref EntryRef) (*models.LedgerEntry, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("credit", time.Since(start)) }()

	if amount <= 0 {
		s.metrics.RecordError("credit", "invalid_amount")
		return nil, ErrInvalidAmount
	}

	var entry *models.LedgerEntry
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.LockByUserID(userID)
		if err != nil {
			return err
		}
		if wallet.Status != models.WalletStatusActive {
			return ErrWalletDeactivated
		}

		wallet.Balance += amount
		wallet.TotalEarned += amount
		wallet.PendingAmount += amount
		if err := tx.Update(wallet); err != nil {
			return err
		}

		entry = &models.LedgerEntry{
			WalletID:    wallet.ID,
			Direction:   models.EntryDirectionCredit,
			Amount:      amount,
			Reason:      reason,
			PaymentID:   ref.PaymentID,
			TripID:      ref.TripID,
			Description: ref.Description,
		}
		return tx.CreateEntry(entry)
	})
	if err != nil {
		s.metrics.RecordError("credit", err.Error())
		return nil, err
	}

	s.invalidate(ctx, userID)
	s.metrics.RecordPosting(models.EntryDirectionCredit, reason, amount)
	return entry, nil
}

func (s *service) Debit(ctx context.Context, userID uint, amount int64, reason string, ref EntryRef) (*models.LedgerEntry, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration("debit", time.Since(start)) }()

	if amount <= 0 {
		s.metrics.RecordError("debit", "invalid_amount")
		return nil, ErrInvalidAmount
	}

	var entry *models.LedgerEntry
	err := s.repo.ExecuteInTransaction(func(tx repositories.WalletRepository) error {
		wallet, err := tx.LockByUserID(userID)
		if err != nil {
			return err
		}
		if wallet.Status != models.WalletStatusActive {
			return ErrWalletDeactivated
		}
		if wallet.Balance < amount {
			return ErrInsufficientFunds
		}

		wallet.Balance -= amount
		wallet.TotalSpent += amount
		if err := tx.Update(wallet); err != nil {
			return err
		}

		entry = &models.LedgerEntry{
			WalletID:    wallet.ID,
			Direction:   models.EntryDirectionDebit,
			Amount:      amount,
			Reason:      reason,
			PaymentID:   ref.PaymentID,
			TripID:      ref.TripID,
			Description: ref.Description,
		}
		return tx.CreateEntry(entry)
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientFunds) {
			s.metrics.RecordError("debit", err.Error())
		}
		return nil, err
	}

	s.invalidate(ctx, userID)
	s.metrics.RecordPosting(models.EntryDirectionDebit, reason, amount)
	return entry, nil
}

func (s *service) GetWallet(ctx context.Context, userID uint) (*models.Wallet, error) {
	if wallet, found, err := s.cache.GetWallet(ctx, userID); err == nil && found {
		return wallet, nil
	}

	wallet, err := s.repo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrWalletNotFound) {
			return nil, fmt.Errorf("failed to get wallet: %w", err)
		}
		// Lazy creation: a wallet exists from the moment anyone asks.
		wallet = &models.Wallet{
			UserID:   userID,
			Currency: "INR",
			Status:   models.WalletStatusActive,
		}
		if createErr := s.repo.Create(wallet); createErr != nil {
			// Lost a creation race; the row is there now.
			wallet, err = s.repo.GetByUserID(userID)
			if err != nil {
				return nil, fmt.Errorf("failed to get wallet: %w", err)
			}
		}
	}

	s.cache.CacheWallet(ctx, wallet)
	return wallet, nil
}

func (s *service) GetBalance(ctx context.Context, userID uint) (int64, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return 0, err
	}
	return wallet.Balance, nil
}

func (s *service) History(ctx context.Context, userID uint, filter HistoryFilter) ([]models.LedgerEntry, int64, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	return s.repo.GetEntries(ctx, wallet.ID, repositories.EntryFilter{
		Direction: filter.Direction,
		Reason:    filter.Reason,
		Limit:     filter.Limit,
		Offset:    (filter.Page - 1) * filter.Limit,
	})
}

func (s *service) invalidate(ctx context.Context, userID uint) {
	if err := s.cache.InvalidateWallet(ctx, userID); err != nil {
		s.metrics.RecordError("cache_invalidate", err.Error())
	}
}
