package repositories

import (
	"errors"

	"ridepool/internal/models"
)

var (
	ErrTripNotFound    = errors.New("trip not found")
	ErrBookingNotFound = errors.New("booking not found")
)

// TripRepository persists trips and their rider bookings. Seat
// reservations must run inside ExecuteInTransaction with the trip row
// locked via LockByID so that availability checks and booking appends are
// one atomic step.
type TripRepository interface {
	Create(trip *models.Trip) error
	GetByID(id uint) (*models.Trip, error)
	// LockByID reads the trip FOR UPDATE with its bookings preloaded.
	// Only meaningful inside a transaction.
	LockByID(id uint) (*models.Trip, error)
	UpdateStatus(tripID uint, status string) error

	CreateBooking(booking *models.RiderBooking) error
	UpdateBooking(booking *models.RiderBooking) error

	ExecuteInTransaction(fn func(TripRepository) error) error
}
