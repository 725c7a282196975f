package repositories

import (
	"errors"
	"fmt"

	"ridepool/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{
		db: db,
	}
}

func (r *tripRepository) Create(trip *models.Trip) error {
	if err := r.db.Create(trip).Error; err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

func (r *tripRepository) GetByID(id uint) (*models.Trip, error) {
	var trip models.Trip
	if err := r.db.Preload("Bookings").First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

func (r *tripRepository) LockByID(id uint) (*models.Trip, error) {
	var trip models.Trip
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Bookings").
		First(&trip, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, fmt.Errorf("failed to lock trip: %w", err)
	}
	return &trip, nil
}

func (r *tripRepository) UpdateStatus(tripID uint, status string) error {
	result := r.db.Model(&models.Trip{}).Where("id = ?", tripID).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update trip status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTripNotFound
	}
	return nil
}

func (r *tripRepository) CreateBooking(booking *models.RiderBooking) error {
	if err := r.db.Create(booking).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *tripRepository) UpdateBooking(booking *models.RiderBooking) error {
	if err := r.db.Save(booking).Error; err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	return nil
}

func (r *tripRepository) ExecuteInTransaction(fn func(TripRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		txRepo := &tripRepository{db: tx}
		return fn(txRepo)
	})
}
