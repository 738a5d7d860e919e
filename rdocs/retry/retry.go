// Package retry repeats record fetches that fail for transient reasons,
// such as a throttled or briefly unavailable search endpoint.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// Config controls how long a fetch is retried and how far apart.
type Config struct {
	MaxAttempts int           // attempts including the first; 0 retries until ctx ends
	InitialWait time.Duration // pause before the second attempt
	MaxWait     time.Duration // no pause is longer than this
	Multiplier  float64       // each pause is the previous one times this
	Jitter      float64       // pauses vary by up to this fraction either way
}

// DefaultConfig suits an interactive list: three tries within about a second.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		InitialWait: 200 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
		Jitter:      0.1,
	}
}

type transientError struct {
	err error
}

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// Retryable tags err as transient so Do tries again. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err: err}
}

// IsRetryable reports whether err carries a Retryable tag anywhere in its chain.
func IsRetryable(err error) bool {
	var target transientError
	return errors.As(err, &target)
}

// Backoff is the pause after the given failed attempt, counting from 1.
func (c Config) Backoff(attempt int) time.Duration {
	mult := c.Multiplier
	if mult <= 0 {
		mult = 1
	}
	wait := float64(c.InitialWait) * math.Pow(mult, float64(attempt-1))
	if c.MaxWait > 0 && wait > float64(c.MaxWait) {
		wait = float64(c.MaxWait)
	}
	if c.Jitter > 0 {
		wait += wait * c.Jitter * (rand.Float64()*2 - 1)
	}
	return time.Duration(wait)
}

func (c Config) lastAttempt(attempt int) bool {
	return c.MaxAttempts > 0 && attempt >= c.MaxAttempts
}

// Do runs fn, pausing and running it again after transient failures.
// The first permanent error, the last transient error once attempts are
// used up, or ctx.Err() is returned.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	_, err := DoWithResult(ctx, cfg, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// DoWithResult is Do for a fetch that returns a value.
func DoWithResult[T any](ctx context.Context, cfg Config, fn func() (T, error)) (T, error) {
	var zero T
	for attempt := 1; ; attempt++ {
		result, err := fn()
		switch {
		case err == nil:
			return result, nil
		case !IsRetryable(err), cfg.lastAttempt(attempt):
			return zero, err
		}

		pause := time.NewTimer(cfg.Backoff(attempt))
		select {
		case <-ctx.Done():
			pause.Stop()
			return zero, ctx.Err()
		case <-pause.C:
		}
	}
}
