package inventory

import (
	"context"

	"ridepool/internal/models"
)

// Service defines trip seat-inventory operations. Reservations and
// releases are serialized per trip; availability is always recomputed
// from the confirmed bookings inside the same transaction that mutates
// them.
type Service interface {
	CreateTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error)
	GetTrip(ctx context.Context, tripID uint) (*models.Trip, error)

	// ReserveSeats appends a confirmed booking for the rider if the trip
	// is open, has capacity, and the rider is not already booked.
	ReserveSeats(ctx context.Context, tripID, riderID uint, seats int) (*models.RiderBooking, error)
	// ReleaseSeats cancels the rider's confirmed booking and returns the
	// number of seats freed.
	ReleaseSeats(ctx context.Context, tripID, riderID uint) (int, error)
	// CancelTrip marks the trip cancelled. Refunding its confirmed
	// bookings is the settlement engine's job, not inventory's.
	CancelTrip(ctx context.Context, tripID, driverID uint) error
}

// Cache is the subset of caching operations the inventory needs. Cached
// trips serve reads only; reservations always go to the locked row.
type Cache interface {
	CacheTrip(ctx context.Context, trip *models.Trip) error
	GetTrip(ctx context.Context, tripID uint) (*models.Trip, bool, error)
	InvalidateTrip(ctx context.Context, tripID uint) error
}
