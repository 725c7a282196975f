package handlers

import (
	"errors"
	"log"
	"strconv"

	"ridepool/internal/services/inventory"
	"ridepool/internal/services/payment"
	"ridepool/internal/services/settlement"
	"ridepool/internal/utils/pagination"
	"ridepool/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	settlement settlement.Service
	payments   payment.Service
}

func NewPaymentHandler(settlementSvc settlement.Service, paymentSvc payment.Service) *PaymentHandler {
	return &PaymentHandler{
		settlement: settlementSvc,
		payments:   paymentSvc,
	}
}

// InitiateBooking registers a gateway order for a trip booking and
// returns the order the client completes checkout with.
func (h *PaymentHandler) InitiateBooking(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		TripID uint `json:"trip_id"`
		Seats  int  `json:"seats"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if input.TripID == 0 {
		return response.BadRequest(c, "trip_id is required")
	}

	order, err := h.settlement.InitiateBooking(c.Context(), claims.UserID, input.TripID, input.Seats)
	if err != nil {
		switch {
		case errors.Is(err, inventory.ErrTripNotFound):
			return response.NotFound(c, "trip not found")
		case errors.Is(err, inventory.ErrInvalidSeatCount):
			return response.BadRequest(c, "seats must be greater than 0")
		case errors.Is(err, inventory.ErrTripNotOpen):
			return response.Conflict(c, "trip is not open for booking")
		case errors.Is(err, inventory.ErrInsufficientSeats):
			return response.Conflict(c, "not enough seats available")
		case errors.Is(err, settlement.ErrOwnTrip):
			return response.Forbidden(c, "cannot book your own trip")
		}
		log.Printf("initiate booking: %v", err)
		return response.ServerError(c, "failed to initiate booking")
	}

	return response.Success(c, "Booking initiated", order)
}

// VerifyPayment is the gateway success callback. It is idempotent: a
// replayed callback returns the already-settled payment.
func (h *PaymentHandler) VerifyPayment(c *fiber.Ctx) error {
	var input struct {
		OrderID          string `json:"razorpay_order_id"`
		GatewayPaymentID string `json:"razorpay_payment_id"`
		Signature        string `json:"razorpay_signature"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if input.OrderID == "" || input.GatewayPaymentID == "" || input.Signature == "" {
		return response.BadRequest(c, "order id, payment id and signature are required")
	}

	pmt, err := h.settlement.ConfirmPayment(c.Context(), input.OrderID, input.GatewayPaymentID, input.Signature)
	if err != nil {
		switch {
		case errors.Is(err, settlement.ErrSignatureMismatch):
			return response.Unauthorized(c)
		case errors.Is(err, payment.ErrPaymentNotFound):
			return response.NotFound(c, "payment not found")
		case errors.Is(err, settlement.ErrOrderClosed):
			return response.Conflict(c, "order is already failed or refunded")
		case errors.Is(err, inventory.ErrInsufficientSeats),
			errors.Is(err, inventory.ErrTripNotOpen),
			errors.Is(err, inventory.ErrAlreadyBooked):
			// Payment captured but the seat was gone; an automatic refund
			// was issued.
			return response.Conflict(c, "seat no longer available, payment refunded")
		}
		log.Printf("verify payment: %v", err)
		return response.ServerError(c, "failed to verify payment")
	}

	return response.Success(c, "Payment verified", pmt)
}

// PaymentFailed is the gateway failure callback.
func (h *PaymentHandler) PaymentFailed(c *fiber.Ctx) error {
	var input struct {
		OrderID string `json:"razorpay_order_id"`
		Reason  string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if input.OrderID == "" {
		return response.BadRequest(c, "order id is required")
	}
	if input.Reason == "" {
		input.Reason = "gateway reported failure"
	}

	pmt, err := h.settlement.HandleGatewayFailure(c.Context(), input.OrderID, input.Reason)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			return response.NotFound(c, "payment not found")
		}
		log.Printf("payment failed callback: %v", err)
		return response.ServerError(c, "failed to record payment failure")
	}

	return response.Success(c, "Payment marked failed", pmt)
}

// RefundPayment reverses a completed settlement at the request of its
// rider or driver.
func (h *PaymentHandler) RefundPayment(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	paymentID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid payment id")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request format")
	}
	if input.Reason == "" {
		input.Reason = "requested by user"
	}

	pmt, err := h.settlement.Refund(c.Context(), uint(paymentID), claims.UserID, input.Reason)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrPaymentNotFound):
			return response.NotFound(c, "payment not found")
		case errors.Is(err, payment.ErrNotCompleted):
			return response.Conflict(c, "payment is not refundable")
		case errors.Is(err, settlement.ErrUnauthorized):
			return response.Forbidden(c, "not a party to this payment")
		}
		log.Printf("refund payment %d: %v", paymentID, err)
		return response.ServerError(c, "failed to refund payment")
	}

	return response.Success(c, "Payment refunded", pmt)
}

// PaymentHistory lists the caller's payments, newest first.
func (h *PaymentHandler) PaymentHistory(c *fiber.Ctx) error {
	claims, err := extractUserClaims(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	p := pagination.ParseFromRequest(c)
	payments, total, err := h.payments.History(c.Context(), claims.UserID, payment.HistoryFilter{
		Status: c.Query("status"),
		Page:   p.Page,
		Limit:  p.Limit,
	})
	if err != nil {
		log.Printf("payment history for user %d: %v", claims.UserID, err)
		return response.ServerError(c, "failed to get payment history")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, payments))
}
