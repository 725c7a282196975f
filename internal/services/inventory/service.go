package inventory

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ridepool/internal/models"
	"ridepool/internal/repositories"
)

type service struct {
	repo  repositories.TripRepository
	cache Cache
}

// NewService creates a new trip inventory service. A nil cache disables
// trip read caching.
func NewService(repo repositories.TripRepository, cache Cache) Service {
	if repo == nil {
		panic("repo is required")
	}
	return &service{repo: repo, cache: cache}
}

func (s *service) CreateTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	if trip.TotalSeats <= 0 {
		return nil, ErrInvalidSeatCount
	}
	if trip.PricePerSeat <= 0 {
		return nil, fmt.Errorf("price per seat must be positive")
	}
	trip.Status = models.TripStatusScheduled

	if err := s.repo.Create(trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	return trip, nil
}

func (s *service) GetTrip(ctx context.Context, tripID uint) (*models.Trip, error) {
	if s.cache != nil {
		if trip, found, err := s.cache.GetTrip(ctx, tripID); err == nil && found {
			return trip, nil
		}
	}

	trip, err := s.repo.GetByID(tripID)
	if err != nil {
		if errors.Is(err, repositories.ErrTripNotFound) {
			return nil, ErrTripNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.CacheTrip(ctx, trip)
	}
	return trip, nil
}

func (s *service) ReserveSeats(ctx context.Context, tripID, riderID uint, seats int) (*models.RiderBooking, error) {
	if seats <= 0 {
		return nil, ErrInvalidSeatCount
	}

	var booking *models.RiderBooking
	err := s.repo.ExecuteInTransaction(func(tx repositories.TripRepository) error {
		trip, err := tx.LockByID(tripID)
		if err != nil {
			if errors.Is(err, repositories.ErrTripNotFound) {
				return ErrTripNotFound
			}
			return err
		}
		if trip.Status != models.TripStatusScheduled {
			return ErrTripNotOpen
		}
		if trip.ConfirmedBooking(riderID) != nil {
			return ErrAlreadyBooked
		}
		if trip.AvailableSeats() < seats {
			return ErrInsufficientSeats
		}

		booking = &models.RiderBooking{
			TripID:  tripID,
			RiderID: riderID,
			Seats:   seats,
			Status:  models.BookingStatusConfirmed,
		}
		return tx.CreateBooking(booking)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, tripID)
	return booking, nil
}

func (s *service) ReleaseSeats(ctx context.Context, tripID, riderID uint) (int, error) {
	released := 0
	err := s.repo.ExecuteInTransaction(func(tx repositories.TripRepository) error {
		trip, err := tx.LockByID(tripID)
		if err != nil {
			if errors.Is(err, repositories.ErrTripNotFound) {
				return ErrTripNotFound
			}
			return err
		}

		booking := trip.ConfirmedBooking(riderID)
		if booking == nil {
			return ErrBookingNotFound
		}

		booking.Status = models.BookingStatusCancelled
		if err := tx.UpdateBooking(booking); err != nil {
			return err
		}
		released = booking.Seats
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, tripID)
	return released, nil
}

func (s *service) CancelTrip(ctx context.Context, tripID, driverID uint) error {
	err := s.repo.ExecuteInTransaction(func(tx repositories.TripRepository) error {
		trip, err := tx.LockByID(tripID)
		if err != nil {
			if errors.Is(err, repositories.ErrTripNotFound) {
				return ErrTripNotFound
			}
			return err
		}
		if trip.DriverID != driverID {
			return ErrNotOwner
		}
		if trip.Status == models.TripStatusCancelled {
			return nil
		}
		return tx.UpdateStatus(tripID, models.TripStatusCancelled)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, tripID)
	return nil
}

func (s *service) invalidate(ctx context.Context, tripID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTrip(ctx, tripID); err != nil {
		log.Printf("inventory: invalidating trip %d cache: %v", tripID, err)
	}
}
