// Package gateway wraps the external payment gateway. The platform only
// consumes the gateway's order-creation, signature and refund contract;
// payment capture itself happens on the gateway's side.
package gateway

import (
	"context"
	"errors"
)

var (
	// ErrGateway marks failures of the external gateway. Callers may
	// retry; nothing has been committed locally when it is returned.
	ErrGateway = errors.New("payment gateway error")
)

// Order is a gateway-side payment order awaiting capture.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

// Refund is a gateway-side refund of a captured payment.
type Refund struct {
	ID     string
	Amount int64
}

// Adapter is the thin interface to the payment gateway. Implementations
// must respect the context deadline; a timed-out call returns ErrGateway.
type Adapter interface {
	// CreateOrder registers an order for the given amount in minor units.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
	// RefundPayment refunds a captured payment, fully or partially.
	RefundPayment(ctx context.Context, gatewayPaymentID string, amount int64) (*Refund, error)
}
