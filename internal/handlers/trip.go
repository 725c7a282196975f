package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"ridepool/internal/models"
	"ridepool/internal/services/inventory"
	"ridepool/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TripHandler struct {
	trips inventory.Service
}

func NewTripHandler(trips inventory.Service) *TripHandler {
	return &TripHandler{trips: trips}
}

func (h *TripHandler) CreateTrip(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		Source        string    `json:"source"`
		Destination   string    `json:"destination"`
		DepartureTime time.Time `json:"departure_time"`
		PricePerSeat  int64     `json:"price_per_seat"`
		TotalSeats    int       `json:"total_seats"`
		Description   string    `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if input.Source == "" || input.Destination == "" {
		return response.BadRequest(c, "source and destination are required")
	}
	if input.TotalSeats <= 0 {
		return response.BadRequest(c, "total_seats must be greater than 0")
	}
	if input.PricePerSeat <= 0 {
		return response.BadRequest(c, "price_per_seat must be greater than 0")
	}
	if input.DepartureTime.Before(time.Now()) {
		return response.BadRequest(c, "departure_time must be in the future")
	}

	trip, err := h.trips.CreateTrip(c.Context(), &models.Trip{
		DriverID:      claims.UserID,
		Source:        input.Source,
		Destination:   input.Destination,
		DepartureTime: input.DepartureTime,
		PricePerSeat:  input.PricePerSeat,
		TotalSeats:    input.TotalSeats,
		Description:   input.Description,
	})
	if err != nil {
		log.Printf("create trip for driver %d: %v", claims.UserID, err)
		return response.ServerError(c, "failed to create trip")
	}

	return response.Success(c, "Trip created", trip)
}

func (h *TripHandler) GetTrip(c *fiber.Ctx) error {
	tripID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid trip id")
	}

	trip, err := h.trips.GetTrip(c.Context(), uint(tripID))
	if err != nil {
		if errors.Is(err, inventory.ErrTripNotFound) {
			return response.NotFound(c, "trip not found")
		}
		log.Printf("get trip %d: %v", tripID, err)
		return response.ServerError(c, "failed to get trip")
	}

	return response.Success(c, "Trip retrieved", fiber.Map{
		"trip":            trip,
		"available_seats": trip.AvailableSeats(),
	})
}

// CancelTrip marks the driver's trip cancelled. Refunding its settled
// bookings stays a per-payment operation.
func (h *TripHandler) CancelTrip(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	tripID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid trip id")
	}

	if err := h.trips.CancelTrip(c.Context(), uint(tripID), claims.UserID); err != nil {
		switch {
		case errors.Is(err, inventory.ErrTripNotFound):
			return response.NotFound(c, "trip not found")
		case errors.Is(err, inventory.ErrNotOwner):
			return response.Forbidden(c, "only the trip's driver can cancel it")
		case errors.Is(err, inventory.ErrTripNotOpen):
			return response.Conflict(c, "trip cannot be cancelled")
		}
		log.Printf("cancel trip %d: %v", tripID, err)
		return response.ServerError(c, "failed to cancel trip")
	}

	return response.Success(c, "Trip cancelled", nil)
}
