package settlement

import (
	"context"

	"ridepool/internal/models"
)

// Service orchestrates the booking-payment state machine:
// INITIATED -> PENDING_GATEWAY -> (VERIFIED | FAILED) -> (SETTLED | REFUNDED).
type Service interface {
	// InitiateBooking checks capacity read-only (seats are reserved at
	// settlement, not here, so unpaid orders never hold inventory),
	// registers a gateway order and creates the pending payment record.
	InitiateBooking(ctx context.Context, riderID, tripID uint, seats int) (*BookingOrder, error)

	// ConfirmPayment verifies the callback signature, completes the
	// payment record, reserves seats and posts the ledger entries.
	// Idempotent under duplicate webhook delivery.
	ConfirmPayment(ctx context.Context, orderID, gatewayPaymentID, signature string) (*models.Payment, error)

	// HandleGatewayFailure marks the payment failed. Nothing was ever
	// committed, so there is no ledger or inventory effect.
	HandleGatewayFailure(ctx context.Context, orderID, reason string) (*models.Payment, error)

	// Refund reverses a completed settlement: gateway refund, seat
	// release, rider credit, driver debit.
	Refund(ctx context.Context, paymentID, requesterID uint, reason string) (*models.Payment, error)

	// Withdraw debits the wallet and records the payout as pending; the
	// bank transfer is an external collaborator.
	Withdraw(ctx context.Context, userID uint, amount int64, bank BankDetails) (*WithdrawalReceipt, error)
}
