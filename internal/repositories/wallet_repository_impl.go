package repositories

import (
	"context"
	"errors"
	"fmt"

	"ridepool/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

func (r *walletRepository) Create(wallet *models.Wallet) error {
	result := r.db.Create(wallet)
	if result.Error != nil {
		return fmt.Errorf("failed to create wallet: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) GetByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *walletRepository) LockByUserID(userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&wallet).Error
	if err == nil {
		return &wallet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}

	// Lazy creation on first financial operation. The insert itself holds
	// the row lock for the remainder of the transaction; a concurrent
	// creator loses on the unique user_id index and we re-read its row.
	wallet = models.Wallet{
		UserID:   userID,
		Currency: "INR",
		Status:   models.WalletStatusActive,
	}
	if createErr := r.db.Create(&wallet).Error; createErr != nil {
		if errors.Is(createErr, gorm.ErrDuplicatedKey) {
			err = r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("user_id = ?", userID).
				First(&wallet).Error
			if err != nil {
				return nil, fmt.Errorf("failed to lock wallet: %w", err)
			}
			return &wallet, nil
		}
		return nil, fmt.Errorf("failed to create wallet: %w", createErr)
	}
	return &wallet, nil
}

func (r *walletRepository) Update(wallet *models.Wallet) error {
	result := r.db.Save(wallet)
	if result.Error != nil {
		return fmt.Errorf("failed to update wallet: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) CreateEntry(entry *models.LedgerEntry) error {
	result := r.db.Create(entry)
	if result.Error != nil {
		return fmt.Errorf("failed to create ledger entry: %w", result.Error)
	}
	return nil
}

func (r *walletRepository) GetEntries(ctx context.Context, walletID uint, filter EntryFilter) ([]models.LedgerEntry, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	q := r.db.WithContext(ctx).Model(&models.LedgerEntry{}).Where("wallet_id = ?", walletID)
	if filter.Direction != "" {
		q = q.Where("direction = ?", filter.Direction)
	}
	if filter.Reason != "" {
		q = q.Where("reason = ?", filter.Reason)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count ledger entries: %w", err)
	}

	var entries []models.LedgerEntry
	err := q.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&entries).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get ledger entries: %w", err)
	}
	return entries, total, nil
}

func (r *walletRepository) ExecuteInTransaction(fn func(WalletRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &walletRepository{db: tx}
		return fn(txRepo)
	})
}
