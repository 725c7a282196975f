package settlement

import "errors"

// Service errors
var (
	// ErrSignatureMismatch is a security boundary: the callback is
	// rejected outright and never retried.
	ErrSignatureMismatch = errors.New("gateway signature mismatch")
	ErrUnauthorized      = errors.New("not authorized for this payment")
	ErrKYCRequired       = errors.New("kyc verification required for withdrawal")
	ErrOwnTrip           = errors.New("driver cannot book own trip")
	// ErrOrderClosed rejects a success callback for an order that already
	// reached a terminal non-completed state (failed or refunded).
	ErrOrderClosed = errors.New("order already closed")
)
