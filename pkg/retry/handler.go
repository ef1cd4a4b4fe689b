package retry

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rohmanhakim/flowmap/pkg/failure"
	"github.com/rohmanhakim/flowmap/pkg/timeutil"
)

// Result carries the task value together with the number of attempts made.
type Result[T any] struct {
	value    T
	attempts int
}

func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Attempts() int {
	return r.attempts
}

// Retry executes fn up to MaxAttempts times, applying exponential backoff
// with jitter between attempts. Only retryable errors trigger another
// attempt; a non-retryable error is returned as-is. Waiting between
// attempts stops early when ctx is done.
func Retry[T any](
	ctx context.Context,
	retryParam RetryParam,
	fn func() (T, failure.ClassifiedError),
) (Result[T], failure.ClassifiedError) {
	if retryParam.MaxAttempts < 1 {
		return Result[T]{}, &RetryError{
			Message:   "max attempt cannot be 0",
			Cause:     ErrZeroAttempt,
			Retryable: true,
		}
	}

	rng := rand.New(rand.NewSource(retryParam.RandomSeed))

	var lastErr failure.ClassifiedError
	for attempt := 1; attempt <= retryParam.MaxAttempts; attempt++ {
		value, err := fn()
		if err == nil {
			return Result[T]{value: value, attempts: attempt}, nil
		}
		lastErr = err

		if !isErrorRetryable(err) {
			return Result[T]{attempts: attempt}, err
		}

		if attempt == retryParam.MaxAttempts {
			break
		}

		backoffDelay := timeutil.ExponentialBackoffDelay(
			attempt,
			retryParam.Jitter,
			rng,
			retryParam.BackoffParam,
		)

		timer := time.NewTimer(backoffDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Result[T]{attempts: attempt}, &RetryError{
				Message:   fmt.Sprintf("stopped after %d attempts: %v", attempt, ctx.Err()),
				Cause:     ErrCanceled,
				Retryable: true,
				Err:       lastErr,
			}
		case <-timer.C:
		}
	}

	// A single configured attempt is not a retry: surface the task error.
	if retryParam.MaxAttempts == 1 {
		return Result[T]{attempts: 1}, lastErr
	}

	return Result[T]{attempts: retryParam.MaxAttempts}, &RetryError{
		Message:   fmt.Sprintf("exhausted %d attempts. Last error: %v", retryParam.MaxAttempts, lastErr),
		Cause:     ErrExhaustedAttempts,
		Retryable: true,
		Err:       lastErr,
	}
}

// isErrorRetryable checks the optional IsRetryable method; errors that do
// not expose one are treated as retryable.
func isErrorRetryable(err failure.ClassifiedError) bool {
	type hasRetryable interface {
		IsRetryable() bool
	}

	if r, ok := err.(hasRetryable); ok {
		return r.IsRetryable()
	}
	return true
}
