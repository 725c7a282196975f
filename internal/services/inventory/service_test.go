package inventory

import (
	"context"
	"testing"
	"time"

	"ridepool/internal/models"
	"ridepool/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTripRepo struct {
	trips  map[uint]*models.Trip
	nextID uint
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{
		trips:  make(map[uint]*models.Trip),
		nextID: 1,
	}
}

func (f *fakeTripRepo) Create(trip *models.Trip) error {
	trip.ID = f.nextID
	f.nextID++
	cp := *trip
	f.trips[trip.ID] = &cp
	return nil
}

func (f *fakeTripRepo) GetByID(id uint) (*models.Trip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, repositories.ErrTripNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTripRepo) LockByID(id uint) (*models.Trip, error) {
	return f.GetByID(id)
}

func (f *fakeTripRepo) UpdateStatus(tripID uint, status string) error {
	t, ok := f.trips[tripID]
	if !ok {
		return repositories.ErrTripNotFound
	}
	t.Status = status
	return nil
}

func (f *fakeTripRepo) CreateBooking(booking *models.RiderBooking) error {
	t, ok := f.trips[booking.TripID]
	if !ok {
		return repositories.ErrTripNotFound
	}
	booking.ID = uint(len(t.Bookings) + 1)
	t.Bookings = append(t.Bookings, *booking)
	return nil
}

func (f *fakeTripRepo) UpdateBooking(booking *models.RiderBooking) error {
	t, ok := f.trips[booking.TripID]
	if !ok {
		return repositories.ErrTripNotFound
	}
	for i := range t.Bookings {
		if t.Bookings[i].ID == booking.ID {
			t.Bookings[i] = *booking
			return nil
		}
	}
	return repositories.ErrBookingNotFound
}

func (f *fakeTripRepo) ExecuteInTransaction(fn func(repositories.TripRepository) error) error {
	return fn(f)
}

func seedTrip(repo *fakeTripRepo, driverID uint, seats int) *models.Trip {
	trip := &models.Trip{
		DriverID:      driverID,
		Source:        "A",
		Destination:   "B",
		DepartureTime: time.Now().Add(time.Hour),
		PricePerSeat:  10000,
		TotalSeats:    seats,
		Status:        models.TripStatusScheduled,
	}
	repo.Create(trip)
	return trip
}

func TestInventoryService_CreateTrip(t *testing.T) {
	repo := newFakeTripRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	t.Run("successful create", func(t *testing.T) {
		trip, err := svc.CreateTrip(ctx, &models.Trip{
			DriverID:     1,
			Source:       "A",
			Destination:  "B",
			PricePerSeat: 5000,
			TotalSeats:   3,
		})
		require.NoError(t, err)
		assert.NotZero(t, trip.ID)
		assert.Equal(t, models.TripStatusScheduled, trip.Status)
	})

	t.Run("zero seats", func(t *testing.T) {
		_, err := svc.CreateTrip(ctx, &models.Trip{PricePerSeat: 5000})
		assert.ErrorIs(t, err, ErrInvalidSeatCount)
	})

	t.Run("non-positive price", func(t *testing.T) {
		_, err := svc.CreateTrip(ctx, &models.Trip{TotalSeats: 2})
		assert.Error(t, err)
	})
}

func TestInventoryService_ReserveSeats(t *testing.T) {
	ctx := context.Background()

	t.Run("successful reservation", func(t *testing.T) {
		repo := newFakeTripRepo()
		trip := seedTrip(repo, 1, 3)
		svc := NewService(repo, nil)

		booking, err := svc.ReserveSeats(ctx, trip.ID, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusConfirmed, booking.Status)
		assert.Equal(t, 2, booking.Seats)

		got, _ := svc.GetTrip(ctx, trip.ID)
		assert.Equal(t, 1, got.AvailableSeats())
	})

	t.Run("oversell rejected", func(t *testing.T) {
		repo := newFakeTripRepo()
		trip := seedTrip(repo, 1, 3)
		svc := NewService(repo, nil)

		_, err := svc.ReserveSeats(ctx, trip.ID, 2, 2)
		require.NoError(t, err)

		// 1 seat left; asking for 2 must fail and change nothing.
		_, err = svc.ReserveSeats(ctx, trip.ID, 3, 2)
		assert.ErrorIs(t, err, ErrInsufficientSeats)

		got, _ := svc.GetTrip(ctx, trip.ID)
		assert.Equal(t, 1, got.AvailableSeats())
	})

	t.Run("double booking rejected", func(t *testing.T) {
		repo := newFakeTripRepo()
		trip := seedTrip(repo, 1, 3)
		svc := NewService(repo, nil)

		_, err := svc.ReserveSeats(ctx, trip.ID, 2, 1)
		require.NoError(t, err)

		_, err = svc.ReserveSeats(ctx, trip.ID, 2, 1)
		assert.ErrorIs(t, err, ErrAlreadyBooked)
	})

	t.Run("rebooking allowed after cancellation", func(t *testing.T) {
		repo := newFakeTripRepo()
		trip := seedTrip(repo, 1, 3)
		svc := NewService(repo, nil)

		_, err := svc.ReserveSeats(ctx, trip.ID, 2, 1)
		require.NoError(t, err)
		_, err = svc.ReleaseSeats(ctx, trip.ID, 2)
		require.NoError(t, err)

		_, err = svc.ReserveSeats(ctx, trip.ID, 2, 1)
		assert.NoError(t, err)
	})

	t.Run("trip not open", func(t *testing.T) {
		repo := newFakeTripRepo()
		trip := seedTrip(repo, 1, 3)
		repo.UpdateStatus(trip.ID, models.TripStatusCancelled)
		svc := NewService(repo, nil)

		_, err := svc.ReserveSeats(ctx, trip.ID, 2, 1)
		assert.ErrorIs(t, err, ErrTripNotOpen)
	})

	t.Run("trip not found", func(t *testing.T) {
		svc := NewService(newFakeTripRepo(), nil)
		_, err := svc.ReserveSeats(ctx, 99, 2, 1)
		assert.ErrorIs(t, err, ErrTripNotFound)
	})

	t.Run("invalid seat count", func(t *testing.T) {
		repo := newFakeTripRepo()
		trip := seedTrip(repo, 1, 3)
		svc := NewService(repo, nil)

		_, err := svc.ReserveSeats(ctx, trip.ID, 2, 0)
		assert.ErrorIs(t, err, ErrInvalidSeatCount)
	})
}

func TestInventoryService_ReleaseSeats(t *testing.T) {
	ctx := context.Background()

	t.Run("releases booked seats", func(t *testing.T) {
		repo := newFakeTripRepo()
		trip := seedTrip(repo, 1, 3)
		svc := NewService(repo, nil)

		_, err := svc.ReserveSeats(ctx, trip.ID, 2, 2)
		require.NoError(t, err)

		released, err := svc.ReleaseSeats(ctx, trip.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, released)

		got, _ := svc.GetTrip(ctx, trip.ID)
		assert.Equal(t, 3, got.AvailableSeats())
	})

	t.Run("no confirmed booking", func(t *testing.T) {
		repo := newFakeTripRepo()
		trip := seedTrip(repo, 1, 3)
		svc := NewService(repo, nil)

		_, err := svc.ReleaseSeats(ctx, trip.ID, 2)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestInventoryService_CancelTrip(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels", func(t *testing.T) {
		repo := newFakeTripRepo()
		trip := seedTrip(repo, 1, 3)
		svc := NewService(repo, nil)

		require.NoError(t, svc.CancelTrip(ctx, trip.ID, 1))

		got, _ := svc.GetTrip(ctx, trip.ID)
		assert.Equal(t, models.TripStatusCancelled, got.Status)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		repo := newFakeTripRepo()
		trip := seedTrip(repo, 1, 3)
		svc := NewService(repo, nil)

		assert.ErrorIs(t, svc.CancelTrip(ctx, trip.ID, 2), ErrNotOwner)
	})

	t.Run("idempotent on cancelled trip", func(t *testing.T) {
		repo := newFakeTripRepo()
		trip := seedTrip(repo, 1, 3)
		svc := NewService(repo, nil)

		require.NoError(t, svc.CancelTrip(ctx, trip.ID, 1))
		assert.NoError(t, svc.CancelTrip(ctx, trip.ID, 1))
	})
}

type fakeTripCache struct {
	trips       map[uint]*models.Trip
	invalidated []uint
}

func newFakeTripCache() *fakeTripCache {
	return &fakeTripCache{trips: make(map[uint]*models.Trip)}
}

func (f *fakeTripCache) CacheTrip(ctx context.Context, trip *models.Trip) error {
	cp := *trip
	f.trips[trip.ID] = &cp
	return nil
}

func (f *fakeTripCache) GetTrip(ctx context.Context, tripID uint) (*models.Trip, bool, error) {
	t, ok := f.trips[tripID]
	if !ok {
		return nil, false, nil
	}
	cp := *t
	return &cp, true, nil
}

func (f *fakeTripCache) InvalidateTrip(ctx context.Context, tripID uint) error {
	delete(f.trips, tripID)
	f.invalidated = append(f.invalidated, tripID)
	return nil
}

func TestInventoryService_TripCache(t *testing.T) {
	ctx := context.Background()
	repo := newFakeTripRepo()
	trip := seedTrip(repo, 1, 3)
	cache := newFakeTripCache()
	svc := NewService(repo, cache)

	// First read warms the cache.
	_, err := svc.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Contains(t, cache.trips, trip.ID)

	// A reservation invalidates it; the next read sees the new count.
	_, err = svc.ReserveSeats(ctx, trip.ID, 2, 1)
	require.NoError(t, err)
	assert.Contains(t, cache.invalidated, trip.ID)

	got, err := svc.GetTrip(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.AvailableSeats())
}
