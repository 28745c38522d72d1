// Package retry runs an operation a bounded number of times with a fixed delay between attempts.
package retry

import (
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds a retried operation.
type Policy struct {
	Attempts int
	Delay    time.Duration
}

// Default is five attempts, 100ms apart.
var Default = Policy{Attempts: 5, Delay: 100 * time.Millisecond}

// Normalize fills zero or negative fields from Default.
func (p Policy) Normalize() Policy {
	if p.Attempts <= 0 {
		p.Attempts = Default.Attempts
	}
	if p.Delay < 0 {
		p.Delay = Default.Delay
	}
	return p
}

// ExhaustedError is returned once every attempt has failed. Err is the last failure.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Do calls op until it succeeds or the policy's attempts are used up. notify, when non-nil, is
// called after each failed attempt that will be retried, with the 1-based attempt number.
func Do(p Policy, op func() error, notify func(attempt int, err error)) error {
	p = p.Normalize()

	attempts := 0
	operation := func() error {
		attempts++
		return op()
	}
	onRetry := func(err error, _ time.Duration) {
		if notify != nil {
			notify(attempts, err)
		}
	}

	b := backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Delay), uint64(p.Attempts-1))
	if err := backoff.RetryNotify(operation, b, onRetry); err != nil {
		return &ExhaustedError{Attempts: attempts, Err: err}
	}
	return nil
}
