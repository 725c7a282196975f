package settlement

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ridepool/internal/gateway"
	"ridepool/internal/models"
	"ridepool/internal/services/inventory"
	"ridepool/internal/services/ledger"
	"ridepool/internal/services/notification"
	"ridepool/internal/services/payment"
)

const defaultGatewayTimeout = 10 * time.Second

type service struct {
	trips    inventory.Service
	ledger   ledger.Service
	records  payment.Service
	gw       gateway.Adapter
	notifier notification.Hook
	config   Config
}

// NewService creates a new settlement engine.
func NewService(
	trips inventory.Service,
	ledgerSvc ledger.Service,
	records payment.Service,
	gw gateway.Adapter,
	notifier notification.Hook,
	config Config,
) Service {
	if trips == nil {
		panic("trip inventory is required")
	}
	if ledgerSvc == nil {
		panic("ledger is required")
	}
	if records == nil {
		panic("payment records are required")
	}
	if gw == nil {
		panic("gateway adapter is required")
	}
	if notifier == nil {
		notifier = notification.NewLogHook()
	}

	if config.Currency == "" {
		config.Currency = "INR"
	}
	if config.GatewayTimeout == 0 {
		config.GatewayTimeout = defaultGatewayTimeout
	}

	return &service{
		trips:    trips,
		ledger:   ledgerSvc,
		records:  records,
		gw:       gw,
		notifier: notifier,
		config:   config,
	}
}

func (s *service) InitiateBooking(ctx context.Context, riderID, tripID uint, seats int) (*BookingOrder, error) {
	if seats <= 0 {
		return nil, inventory.ErrInvalidSeatCount
	}

	trip, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip.Status != models.TripStatusScheduled {
		return nil, inventory.ErrTripNotOpen
	}
	if trip.DriverID == riderID {
		return nil, ErrOwnTrip
	}
	// Read-only capacity check. The seat is reserved at settlement, so
	// this can go stale; the race is handled in ConfirmPayment.
	if trip.AvailableSeats() < seats {
		return nil, inventory.ErrInsufficientSeats
	}

	amount := int64(seats) * trip.PricePerSeat
	receipt := fmt.Sprintf("trip_%d_%d", tripID, riderID)

	gwCtx, cancel := context.WithTimeout(ctx, s.config.GatewayTimeout)
	defer cancel()
	order, err := s.gw.CreateOrder(gwCtx, amount, s.config.Currency, receipt)
	if err != nil {
		return nil, err
	}

	pmt, err := s.records.CreatePending(ctx, payment.CreateRequest{
		RiderID:        riderID,
		DriverID:       trip.DriverID,
		TripID:         tripID,
		Amount:         amount,
		Currency:       s.config.Currency,
		PricePerSeat:   trip.PricePerSeat,
		Seats:          seats,
		GatewayOrderID: order.ID,
	})
	if err != nil {
		return nil, err
	}

	return &BookingOrder{
		OrderID:   order.ID,
		PaymentID: pmt.ID,
		Amount:    amount,
		Currency:  s.config.Currency,
		Seats:     seats,
	}, nil
}

func (s *service) ConfirmPayment(ctx context.Context, orderID, gatewayPaymentID, signature string) (*models.Payment, error) {
	if !gateway.VerifySignature(orderID, gatewayPaymentID, signature, s.config.WebhookSecret) {
		log.Printf("settlement: signature mismatch for order %s", orderID)
		return nil, ErrSignatureMismatch
	}

	// (a) Complete the record first, durably. A crash after this point
	// leaves a completed-but-unsettled payment that a reconciliation
	// sweep can detect and repair.
	pmt, err := s.records.MarkCompleted(ctx, orderID, gatewayPaymentID, signature)
	if err != nil {
		if errors.Is(err, payment.ErrAlreadyFinalized) {
			if pmt != nil && pmt.Status == models.PaymentStatusCompleted {
				// Replayed webhook: the first delivery did the work.
				return pmt, nil
			}
			// A success callback for an order already failed or refunded
			// is not a replay; it must not read as a settled payment.
			return nil, ErrOrderClosed
		}
		return nil, err
	}

	// (b) Reserve the seat. Losing the race here means the rider's money
	// was captured for a seat that no longer exists: refund immediately.
	if _, err := s.trips.ReserveSeats(ctx, pmt.TripID, pmt.RiderID, pmt.Seats); err != nil {
		if errors.Is(err, inventory.ErrInsufficientSeats) ||
			errors.Is(err, inventory.ErrTripNotOpen) ||
			errors.Is(err, inventory.ErrAlreadyBooked) {
			return nil, s.refundLostRace(ctx, pmt, err)
		}
		return nil, err
	}

	// (c)+(d) Ledger postings. Any failure compensates what was applied
	// before surfacing: money is never left moved without its matching
	// trip state.
	if err := s.postSettlement(ctx, pmt); err != nil {
		if _, relErr := s.trips.ReleaseSeats(ctx, pmt.TripID, pmt.RiderID); relErr != nil {
			log.Printf("settlement: compensation failed releasing seats for payment %d: %v", pmt.ID, relErr)
		}
		return nil, err
	}

	if hookErr := s.notifier.OnPaymentSettled(ctx, pmt.ID, pmt.RiderID, pmt.DriverID, pmt.Amount); hookErr != nil {
		log.Printf("settlement: notify settled payment %d: %v", pmt.ID, hookErr)
	}
	return pmt, nil
}

// postSettlement moves the captured amount through the ledgers: the
// gateway-captured money enters the rider's wallet, is debited as the
// trip payment and credited to the driver. The rider debit is internal
// bookkeeping of money already captured externally, not a balance gate.
func (s *service) postSettlement(ctx context.Context, pmt *models.Payment) error {
	ref := ledger.EntryRef{PaymentID: &pmt.ID, TripID: &pmt.TripID}

	captureRef := ref
	captureRef.Description = "captured by gateway for order " + pmt.GatewayOrderID
	if _, err := s.ledger.Credit(ctx, pmt.RiderID, pmt.Amount, models.ReasonGatewayCapture, captureRef); err != nil {
		return err
	}

	if _, err := s.ledger.Debit(ctx, pmt.RiderID, pmt.Amount, models.ReasonTripPayment, ref); err != nil {
		s.reverse(ctx, pmt, models.EntryDirectionDebit, pmt.RiderID, "reversal: gateway capture")
		return err
	}

	if _, err := s.ledger.Credit(ctx, pmt.DriverID, pmt.Amount, models.ReasonTripEarning, ref); err != nil {
		s.reverse(ctx, pmt, models.EntryDirectionCredit, pmt.RiderID, "reversal: trip payment")
		s.reverse(ctx, pmt, models.EntryDirectionDebit, pmt.RiderID, "reversal: gateway capture")
		return err
	}
	return nil
}

// reverse posts an offsetting admin adjustment. Ledger entries are
// immutable, so compensation is always a new entry.
func (s *service) reverse(ctx context.Context, pmt *models.Payment, direction string, userID uint, note string) {
	ref := ledger.EntryRef{PaymentID: &pmt.ID, TripID: &pmt.TripID, Description: note}
	var err error
	if direction == models.EntryDirectionCredit {
		_, err = s.ledger.Credit(ctx, userID, pmt.Amount, models.ReasonAdminAdjustment, ref)
	} else {
		_, err = s.ledger.Debit(ctx, userID, pmt.Amount, models.ReasonAdminAdjustment, ref)
	}
	if err != nil {
		log.Printf("settlement: compensation entry failed for payment %d (%s): %v", pmt.ID, note, err)
	}
}

// refundLostRace refunds a captured payment whose seat reservation lost
// a race. No ledger entries were posted, so the external refund alone
// makes the rider whole.
func (s *service) refundLostRace(ctx context.Context, pmt *models.Payment, cause error) error {
	if pmt.GatewayPaymentID == nil {
		log.Printf("settlement: payment %d lost seat race but has no gateway payment id", pmt.ID)
		return cause
	}

	gwCtx, cancel := context.WithTimeout(ctx, s.config.GatewayTimeout)
	defer cancel()
	refund, err := s.gw.RefundPayment(gwCtx, *pmt.GatewayPaymentID, pmt.Amount)
	if err != nil {
		// Completed-but-unsettled; left for the reconciliation sweep.
		log.Printf("settlement: auto-refund failed for payment %d: %v", pmt.ID, err)
		return cause
	}

	if _, err := s.records.MarkRefunded(ctx, pmt.ID, refund.ID, "seat unavailable - race"); err != nil {
		log.Printf("settlement: marking race refund for payment %d: %v", pmt.ID, err)
	}
	if hookErr := s.notifier.OnPaymentRefunded(ctx, pmt.ID, "seat unavailable - race"); hookErr != nil {
		log.Printf("settlement: notify refunded payment %d: %v", pmt.ID, hookErr)
	}
	return cause
}

func (s *service) HandleGatewayFailure(ctx context.Context, orderID, reason string) (*models.Payment, error) {
	pmt, err := s.records.MarkFailed(ctx, orderID, reason)
	if err != nil {
		if errors.Is(err, payment.ErrAlreadyFinalized) {
			return pmt, nil
		}
		return nil, err
	}
	return pmt, nil
}

func (s *service) Refund(ctx context.Context, paymentID, requesterID uint, reason string) (*models.Payment, error) {
	pmt, err := s.records.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if pmt.Status != models.PaymentStatusCompleted {
		return nil, payment.ErrNotCompleted
	}
	if requesterID != pmt.RiderID && requesterID != pmt.DriverID {
		return nil, ErrUnauthorized
	}
	if pmt.GatewayPaymentID == nil {
		return nil, payment.ErrNotCompleted
	}

	gwCtx, cancel := context.WithTimeout(ctx, s.config.GatewayTimeout)
	defer cancel()
	refund, err := s.gw.RefundPayment(gwCtx, *pmt.GatewayPaymentID, pmt.Amount)
	if err != nil {
		return nil, err
	}

	pmt, err = s.records.MarkRefunded(ctx, pmt.ID, refund.ID, reason)
	if err != nil {
		if errors.Is(err, payment.ErrNotCompleted) {
			// Lost a refund race; the other caller finished the reversal.
			return pmt, nil
		}
		return nil, err
	}

	if _, err := s.trips.ReleaseSeats(ctx, pmt.TripID, pmt.RiderID); err != nil {
		// Booking may already be cancelled (e.g. trip-level cancellation).
		log.Printf("settlement: refund %d: release seats: %v", pmt.ID, err)
	}

	// The rider postings cancel each other: the refund credit mirrors the
	// trip payment coming back, and the capture reversal records the
	// gateway pulling the captured backing out of the platform. The rider
	// nets back to the pre-payment level; the externally refunded money
	// never stays withdrawable.
	ref := ledger.EntryRef{PaymentID: &pmt.ID, TripID: &pmt.TripID, Description: "refund: " + reason}
	if _, err := s.ledger.Credit(ctx, pmt.RiderID, pmt.Amount, models.ReasonRefund, ref); err != nil {
		// The payment is durably refunded and the gateway money already
		// moved; a missing posting must not get lost in an error return.
		log.Printf("settlement: refund %d: rider credit: %v", pmt.ID, err)
		s.recordException(ctx, pmt, pmt.RiderID, models.ExceptionRefundUnposted,
			"rider refund postings missing: "+err.Error())
	} else {
		reversalRef := ledger.EntryRef{PaymentID: &pmt.ID, TripID: &pmt.TripID,
			Description: "refunded by gateway for order " + pmt.GatewayOrderID}
		if _, err := s.ledger.Debit(ctx, pmt.RiderID, pmt.Amount, models.ReasonGatewayCapture, reversalRef); err != nil {
			log.Printf("settlement: refund %d: capture reversal: %v", pmt.ID, err)
			s.recordException(ctx, pmt, pmt.RiderID, models.ExceptionRefundUnposted,
				"gateway capture reversal missing: "+err.Error())
		}
	}

	if _, err := s.ledger.Debit(ctx, pmt.DriverID, pmt.Amount, models.ReasonRefund, ref); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			// Driver already withdrew the earning. The rider is still
			// made whole; the shortfall goes to manual reconciliation.
			log.Printf("settlement: refund %d: driver %d shortfall of %d", pmt.ID, pmt.DriverID, pmt.Amount)
			s.recordException(ctx, pmt, pmt.DriverID, models.ExceptionRefundShortfall,
				"driver wallet below refund amount: "+reason)
		} else {
			log.Printf("settlement: refund %d: driver debit: %v", pmt.ID, err)
		}
	}

	if hookErr := s.notifier.OnPaymentRefunded(ctx, pmt.ID, reason); hookErr != nil {
		log.Printf("settlement: notify refunded payment %d: %v", pmt.ID, hookErr)
	}
	return pmt, nil
}

// recordException persists an accounting gap for manual reconciliation.
func (s *service) recordException(ctx context.Context, pmt *models.Payment, userID uint, kind, note string) {
	err := s.records.RecordException(ctx, &models.AccountingException{
		PaymentID: pmt.ID,
		UserID:    userID,
		Amount:    pmt.Amount,
		Kind:      kind,
		Note:      note,
	})
	if err != nil {
		log.Printf("settlement: recording exception for payment %d: %v", pmt.ID, err)
	}
}

func (s *service) Withdraw(ctx context.Context, userID uint, amount int64, bank BankDetails) (*WithdrawalReceipt, error) {
	if amount <= 0 {
		return nil, ledger.ErrInvalidAmount
	}

	wallet, err := s.ledger.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !wallet.KYCVerified {
		return nil, ErrKYCRequired
	}

	entry, err := s.ledger.Debit(ctx, userID, amount, models.ReasonWithdrawal, ledger.EntryRef{
		Description: "withdrawal to account " + maskAccount(bank.AccountNumber),
	})
	if err != nil {
		return nil, err
	}

	// The bank transfer itself runs on external payout rails; locally the
	// withdrawal exists only as this pending marker.
	return &WithdrawalReceipt{
		Amount:  amount,
		Status:  "pending",
		EntryID: entry.ID,
	}, nil
}

func maskAccount(account string) string {
	if len(account) <= 4 {
		return account
	}
	return "****" + account[len(account)-4:]
}
