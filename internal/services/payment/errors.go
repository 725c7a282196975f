package payment

import "errors"

// Service errors
var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrDuplicateOrder  = errors.New("order id already has a payment record")
	// ErrAlreadyFinalized signals an idempotency no-op: the record was
	// already out of pending. Callers get the existing record alongside.
	ErrAlreadyFinalized = errors.New("payment already finalized")
	ErrNotCompleted     = errors.New("payment is not completed")
	ErrInvalidAmount    = errors.New("invalid payment amount")
)
