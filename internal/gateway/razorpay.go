package gateway

import (
	"context"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

const defaultTimeout = 10 * time.Second

// RazorpayAdapter implements Adapter on top of the Razorpay REST API.
type RazorpayAdapter struct {
	client  *razorpay.Client
	timeout time.Duration
}

func NewRazorpayAdapter(keyID, keySecret string) *RazorpayAdapter {
	return &RazorpayAdapter{
		client:  razorpay.NewClient(keyID, keySecret),
		timeout: defaultTimeout,
	}
}

func (a *RazorpayAdapter) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}

	body, err := a.call(ctx, func() (map[string]interface{}, error) {
		return a.client.Order.Create(data, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: create order: %v", ErrGateway, err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: create order: missing order id", ErrGateway)
	}
	return &Order{
		ID:       id,
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

func (a *RazorpayAdapter) RefundPayment(ctx context.Context, gatewayPaymentID string, amount int64) (*Refund, error) {
	body, err := a.call(ctx, func() (map[string]interface{}, error) {
		return a.client.Payment.Refund(gatewayPaymentID, int(amount), nil, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: refund: %v", ErrGateway, err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: refund: missing refund id", ErrGateway)
	}
	return &Refund{ID: id, Amount: amount}, nil
}

// call runs a gateway request under the context deadline. The SDK has no
// context support, so the request is raced against ctx.
func (a *RazorpayAdapter) call(ctx context.Context, fn func() (map[string]interface{}, error)) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	type result struct {
		body map[string]interface{}
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		body, err := fn()
		ch <- result{body: body, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.body, res.err
	}
}
