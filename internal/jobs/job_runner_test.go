package jobs

import (
	"testing"
	"time"

	"ridepool/internal/repositories"

	"github.com/stretchr/testify/assert"
)

type stubPaymentRepo struct {
	repositories.PaymentRepository

	cutoff time.Time
	swept  int64
	calls  int
	panics bool
}

func (s *stubPaymentRepo) ExpireStalePending(cutoff time.Time) (int64, error) {
	s.calls++
	s.cutoff = cutoff
	if s.panics {
		panic("boom")
	}
	return s.swept, nil
}

func TestExpireStalePayments(t *testing.T) {
	repo := &stubPaymentRepo{swept: 2}
	runner := NewJobRunner(repo)

	before := time.Now().Add(-stalePaymentAge)
	runner.ExpireStalePayments()

	assert.Equal(t, 1, repo.calls)
	// Cutoff sits one stale-age behind now.
	assert.WithinDuration(t, before, repo.cutoff, time.Second)
}

func TestExpireStalePaymentsRecoversFromPanic(t *testing.T) {
	repo := &stubPaymentRepo{panics: true}
	runner := NewJobRunner(repo)

	assert.NotPanics(t, runner.ExpireStalePayments)
	assert.Equal(t, 1, repo.calls)
}
