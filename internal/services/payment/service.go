package payment

import (
	"context"
	"errors"

	"ridepool/internal/models"
	"ridepool/internal/repositories"
)

type service struct {
	repo repositories.PaymentRepository
}

// NewService creates a new payment record service.
func NewService(repo repositories.PaymentRepository) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo}
}

func (s *service) CreatePending(ctx context.Context, req CreateRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	payment := &models.Payment{
		RiderID:        req.RiderID,
		DriverID:       req.DriverID,
		TripID:         req.TripID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		PricePerSeat:   req.PricePerSeat,
		Seats:          req.Seats,
		GatewayOrderID: req.GatewayOrderID,
		Status:         models.PaymentStatusPending,
		RefundStatus:   models.RefundStatusNone,
	}
	if err := s.repo.Create(payment); err != nil {
		if errors.Is(err, repositories.ErrDuplicateOrder) {
			return nil, ErrDuplicateOrder
		}
		return nil, err
	}
	return payment, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	payment, err := s.repo.GetByID(id)
	if err != nil {
		return nil, translate(err)
	}
	return payment, nil
}

func (s *service) GetByOrderID(ctx context.Context, orderID string) (*models.Payment, error) {
	payment, err := s.repo.GetByOrderID(orderID)
	if err != nil {
		return nil, translate(err)
	}
	return payment, nil
}

func (s *service) MarkCompleted(ctx context.Context, orderID, gatewayPaymentID, signature string) (*models.Payment, error) {
	payment, err := s.repo.MarkCompleted(orderID, gatewayPaymentID, signature)
	if err != nil {
		return payment, translate(err)
	}
	return payment, nil
}

func (s *service) MarkFailed(ctx context.Context, orderID, reason string) (*models.Payment, error) {
	payment, err := s.repo.MarkFailed(orderID, reason)
	if err != nil {
		return payment, translate(err)
	}
	return payment, nil
}

func (s *service) MarkRefunded(ctx context.Context, id uint, refundID, reason string) (*models.Payment, error) {
	payment, err := s.repo.MarkRefunded(id, refundID, reason)
	if err != nil {
		return payment, translate(err)
	}
	return payment, nil
}

func (s *service) History(ctx context.Context, userID uint, filter HistoryFilter) ([]models.Payment, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return s.repo.History(ctx, userID, repositories.PaymentFilter{
		Status: filter.Status,
		Limit:  filter.Limit,
		Offset: (filter.Page - 1) * filter.Limit,
	})
}

func (s *service) RecordException(ctx context.Context, ex *models.AccountingException) error {
	return s.repo.CreateException(ex)
}

func translate(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPaymentNotFound):
		return ErrPaymentNotFound
	case errors.Is(err, repositories.ErrPaymentFinalized):
		return ErrAlreadyFinalized
	case errors.Is(err, repositories.ErrPaymentNotCompleted):
		return ErrNotCompleted
	default:
		return err
	}
}
