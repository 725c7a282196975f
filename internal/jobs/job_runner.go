package jobs

import (
	"log"
	"time"

	"ridepool/internal/repositories"
)

// Pending payments older than this never got a gateway callback and are
// swept to failed so the order id cannot be completed later.
const stalePaymentAge = 30 * time.Minute

// JobRunner coordinates the scheduled maintenance jobs.
type JobRunner struct {
	payments repositories.PaymentRepository
}

// NewJobRunner creates a job runner over the payment store.
func NewJobRunner(payments repositories.PaymentRepository) *JobRunner {
	if payments == nil {
		panic("payment repository is required")
	}
	return &JobRunner{payments: payments}
}

// runWithRecovery wraps job execution with panic recovery so a broken
// job cannot take down the scheduler.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("job %s panicked: %v", jobName, r)
		}
	}()

	log.Printf("job %s: starting", jobName)
	jobFunc()
	log.Printf("job %s: done", jobName)
}

// ExpireStalePayments fails pending payments that never received a
// gateway callback. Webhooks replayed for a swept order are rejected as
// already finalized.
func (jr *JobRunner) ExpireStalePayments() {
	jr.runWithRecovery("ExpireStalePayments", func() {
		cutoff := time.Now().Add(-stalePaymentAge)
		swept, err := jr.payments.ExpireStalePending(cutoff)
		if err != nil {
			log.Printf("expiring stale payments: %v", err)
			return
		}
		if swept > 0 {
			log.Printf("expired %d stale pending payments", swept)
		}
	})
}
