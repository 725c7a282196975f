package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ridepool/internal/models"

	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	if err := r.db.Create(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateOrder
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) GetByOrderID(orderID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.Where("gateway_order_id = ?", orderID).First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) MarkCompleted(orderID, gatewayPaymentID, signature string) (*models.Payment, error) {
	now := time.Now()
	result := r.db.Model(&models.Payment{}).
		Where("gateway_order_id = ? AND status = ?", orderID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":             models.PaymentStatusCompleted,
			"gateway_payment_id": gatewayPaymentID,
			"gateway_signature":  signature,
			"completed_at":       now,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to complete payment: %w", result.Error)
	}

	payment, err := r.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return payment, ErrPaymentFinalized
	}
	return payment, nil
}

func (r *paymentRepository) MarkFailed(orderID, reason string) (*models.Payment, error) {
	result := r.db.Model(&models.Payment{}).
		Where("gateway_order_id = ? AND status = ?", orderID, models.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":         models.PaymentStatusFailed,
			"failure_reason": reason,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to fail payment: %w", result.Error)
	}

	payment, err := r.GetByOrderID(orderID)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return payment, ErrPaymentFinalized
	}
	return payment, nil
}

func (r *paymentRepository) MarkRefunded(id uint, refundID, reason string) (*models.Payment, error) {
	now := time.Now()
	result := r.db.Model(&models.Payment{}).
		Where("id = ? AND status = ?", id, models.PaymentStatusCompleted).
		Updates(map[string]interface{}{
			"status":        models.PaymentStatusRefunded,
			"refund_id":     refundID,
			"refund_reason": reason,
			"refund_status": models.RefundStatusCompleted,
			"refund_amount": gorm.Expr("amount"),
			"refunded_at":   now,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to refund payment: %w", result.Error)
	}

	payment, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected == 0 {
		return payment, ErrPaymentNotCompleted
	}
	return payment, nil
}

func (r *paymentRepository) History(ctx context.Context, userID uint, filter PaymentFilter) ([]models.Payment, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}

	q := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("rider_id = ? OR driver_id = ?", userID, userID)
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	var payments []models.Payment
	err := q.Order("created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&payments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get payment history: %w", err)
	}
	return payments, total, nil
}

func (r *paymentRepository) ExpireStalePending(cutoff time.Time) (int64, error) {
	result := r.db.Model(&models.Payment{}).
		Where("status = ? AND created_at < ?", models.PaymentStatusPending, cutoff).
		Updates(map[string]interface{}{
			"status":         models.PaymentStatusFailed,
			"failure_reason": "expired: no gateway confirmation",
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire stale payments: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *paymentRepository) CreateException(ex *models.AccountingException) error {
	if err := r.db.Create(ex).Error; err != nil {
		return fmt.Errorf("failed to create accounting exception: %w", err)
	}
	return nil
}
