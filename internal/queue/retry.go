package queue

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// BackoffType is the retry backoff strategy
type BackoffType string

const (
	// BackoffExponential doubles the delay after every failed attempt
	BackoffExponential BackoffType = "exponential"
	// BackoffFixed waits the same delay after every failed attempt
	BackoffFixed BackoffType = "fixed"
)

const (
	DEFAULT_ATTEMPTS      = 5
	DEFAULT_BACKOFF_DELAY = 10 * time.Second
)

// RetryPolicy decides how many times a job runs and how long to wait between attempts
type RetryPolicy struct {
	Attempts    int
	BackoffType BackoffType
	Delay       time.Duration
}

// DefaultRetryPolicy returns 5 attempts with exponential backoff starting at 10 seconds
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts:    DEFAULT_ATTEMPTS,
		BackoffType: BackoffExponential,
		Delay:       DEFAULT_BACKOFF_DELAY,
	}
}

// Validate checks the policy is usable
func (p RetryPolicy) Validate() error {
	if p.Attempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", p.Attempts)
	}
	if p.Delay < 0 {
		return fmt.Errorf("retry delay must not be negative, got %s", p.Delay)
	}
	switch p.BackoffType {
	case BackoffExponential, BackoffFixed:
		return nil
	default:
		return fmt.Errorf("unknown backoff type %q", p.BackoffType)
	}
}

// ShouldRetry reports whether a job that failed attemptsMade times gets another attempt
func ShouldRetry(attemptsMade, maxAttempts int) bool {
	return attemptsMade < maxAttempts
}

// NextDelay returns the wait before the next attempt of a job that failed attemptsMade times.
// Exponential backoff waits delay * 2^(attemptsMade-1), fixed backoff always waits delay.
func NextDelay(backoffType BackoffType, delay time.Duration, attemptsMade int) time.Duration {
	if attemptsMade < 1 || delay <= 0 {
		return 0
	}

	b := newBackOff(backoffType, delay)
	next := delay
	for range attemptsMade {
		next = b.NextBackOff()
	}

	if next == backoff.Stop {
		return delay
	}
	return next
}

func newBackOff(backoffType BackoffType, delay time.Duration) backoff.BackOff {
	if backoffType == BackoffFixed {
		return backoff.NewConstantBackOff(delay)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = delay
	b.Multiplier = 2.0
	b.RandomizationFactor = 0
	b.MaxInterval = 24 * time.Hour
	b.MaxElapsedTime = 0 // Never stop, the attempt ceiling bounds retries
	b.Reset()
	return b
}
