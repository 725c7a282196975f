// Package notification emits fire-and-forget settlement events. Delivery
// (email/push/SMS) is an external collaborator; failures are logged by
// callers, never propagated.
package notification

import (
	"context"
	"log"
)

// Hook receives settlement milestones.
type Hook interface {
	OnPaymentSettled(ctx context.Context, paymentID, riderID, driverID uint, amount int64) error
	OnPaymentRefunded(ctx context.Context, paymentID uint, reason string) error
}

// LogHook is a minimal Hook implementation that writes to the process
// log.
type LogHook struct{}

// NewLogHook creates a new logging notification hook.
func NewLogHook() *LogHook { return &LogHook{} }

func (h *LogHook) OnPaymentSettled(ctx context.Context, paymentID, riderID, driverID uint, amount int64) error {
	log.Printf("payment %d settled: rider %d paid %d to driver %d", paymentID, riderID, amount, driverID)
	return nil
}

func (h *LogHook) OnPaymentRefunded(ctx context.Context, paymentID uint, reason string) error {
	log.Printf("payment %d refunded: %s", paymentID, reason)
	return nil
}
