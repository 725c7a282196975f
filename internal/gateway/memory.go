package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryAdapter is an in-process gateway used in development and tests.
// Orders and refunds get deterministic-shape ids; nothing leaves the
// process.
type MemoryAdapter struct {
	mu     sync.Mutex
	orders map[string]*Order
}

func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		orders: make(map[string]*Order),
	}
}

func (a *MemoryAdapter) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	order := &Order{
		ID:       "order_" + uuid.NewString(),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}

	a.mu.Lock()
	a.orders[order.ID] = order
	a.mu.Unlock()

	return order, nil
}

func (a *MemoryAdapter) RefundPayment(ctx context.Context, gatewayPaymentID string, amount int64) (*Refund, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	return &Refund{ID: "rfnd_" + uuid.NewString(), Amount: amount}, nil
}
