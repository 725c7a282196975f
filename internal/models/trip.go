package models

import (
	"time"
)

// Trip statuses
const (
	TripStatusScheduled  = "scheduled"
	TripStatusInProgress = "in_progress"
	TripStatusCompleted  = "completed"
	TripStatusCancelled  = "cancelled"
)

// Booking statuses
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Trip is driver-owned seat inventory. Availability is always derived
// from the confirmed bookings, never kept as a separate counter.
type Trip struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	DriverID      uint           `gorm:"index;not null" json:"driver_id"`
	Source        string         `gorm:"not null" json:"source"`
	Destination   string         `gorm:"not null" json:"destination"`
	DepartureTime time.Time      `gorm:"index" json:"departure_time"`
	PricePerSeat  int64          `gorm:"not null" json:"price_per_seat"`
	TotalSeats    int            `gorm:"not null" json:"total_seats"`
	Status        string         `gorm:"index;default:'scheduled'" json:"status"`
	Description   string         `json:"description,omitempty"`
	Bookings      []RiderBooking `gorm:"foreignKey:TripID" json:"bookings,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// RiderBooking records a rider's confirmed seats on a trip. Owned by the
// trip; lives and dies with it.
type RiderBooking struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	TripID    uint      `gorm:"index;not null" json:"trip_id"`
	RiderID   uint      `gorm:"index;not null" json:"rider_id"`
	Seats     int       `gorm:"not null" json:"seats"`
	Status    string    `gorm:"default:'confirmed'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookedSeats sums the seats of confirmed bookings.
func (t *Trip) BookedSeats() int {
	total := 0
	for _, b := range t.Bookings {
		if b.Status == BookingStatusConfirmed {
			total += b.Seats
		}
	}
	return total
}

// AvailableSeats recomputes availability from the booking list.
func (t *Trip) AvailableSeats() int {
	return t.TotalSeats - t.BookedSeats()
}

// ConfirmedBooking returns the rider's confirmed booking, if any.
func (t *Trip) ConfirmedBooking(riderID uint) *RiderBooking {
	for i := range t.Bookings {
		if t.Bookings[i].RiderID == riderID && t.Bookings[i].Status == BookingStatusConfirmed {
			return &t.Bookings[i]
		}
	}
	return nil
}
