package httpx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker()
	assert.Equal(t, StateClosed, cb.State())

	for i := 0; i < 4; i++ {
		cb.RecordFailure()
		assert.Equal(t, StateClosed, cb.State())
	}

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.CanAttempt())
}

func TestCircuitBreakerSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker()

	for i := 0; i < 4; i++ {
		cb.RecordFailure()
	}
	cb.RecordSuccess()

	// Counter reset; the next failure alone does not trip it
	cb.RecordFailure()
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerHalfOpenAfterTimeout(t *testing.T) {
	cb := NewCircuitBreaker()
	cb.timeout = 10 * time.Millisecond

	for i := 0; i < 5; i++ {
		cb.RecordFailure()
	}
	assert.False(t, cb.CanAttempt())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, cb.CanAttempt())
	assert.Equal(t, StateHalfOpen, cb.State())
}

func TestCircuitBreakerClosesAfterHalfOpenSuccesses(t *testing.T) {
	cb := NewCircuitBreaker()
	cb.timeout = 10 * time.Millisecond

	for i := 0; i < 5; i++ {
		cb.RecordFailure()
	}
	time.Sleep(20 * time.Millisecond)
	assert.True(t, cb.CanAttempt())

	cb.RecordSuccess()
	assert.Equal(t, StateHalfOpen, cb.State())
	cb.RecordSuccess()
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerReopensOnHalfOpenFailure(t *testing.T) {
	cb := NewCircuitBreaker()
	cb.timeout = 10 * time.Millisecond

	for i := 0; i < 5; i++ {
		cb.RecordFailure()
	}
	time.Sleep(20 * time.Millisecond)
	assert.True(t, cb.CanAttempt())

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.CanAttempt())
}

func TestCircuitBreakerStateName(t *testing.T) {
	cb := NewCircuitBreaker()
	assert.Equal(t, "closed", cb.StateName())

	for i := 0; i < 5; i++ {
		cb.RecordFailure()
	}
	assert.Equal(t, "open", cb.StateName())
}
