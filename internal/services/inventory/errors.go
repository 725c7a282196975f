package inventory

import "errors"

// Service errors
var (
	ErrTripNotFound      = errors.New("trip not found")
	ErrTripNotOpen       = errors.New("trip is not open for booking")
	ErrInsufficientSeats = errors.New("not enough seats available")
	ErrAlreadyBooked     = errors.New("rider already has a confirmed booking")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNotOwner          = errors.New("caller is not the trip driver")
	ErrInvalidSeatCount  = errors.New("seat count must be positive")
)
