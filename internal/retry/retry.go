package retry

import (
	"context"
	"errors"
	"log"
	"time"
)

// Config controls the retry loop. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the delay before the first retry; each further retry
	// doubles it.
	BaseDelay time.Duration
	// Sleep is swapped out in tests. Nil means time.Sleep.
	Sleep func(time.Duration)
}

// DefaultConfig matches the policy used for every outbound network
// call: three attempts, 1s base delay.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
	}
}

// PermanentError marks a failure that must not be retried, such as an
// authentication or permission error.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }

func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so Do rethrows it without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// Do runs op until it succeeds, a permanent error occurs, or
// cfg.MaxAttempts is exhausted, sleeping BaseDelay×2^attempt between
// attempts. The last error is always propagated, never swallowed. Once
// ctx is done no further retries are scheduled; the in-flight attempt
// is allowed to finish.
func Do[T any](ctx context.Context, cfg Config, name string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if IsPermanent(err) {
			return zero, err
		}
		if attempt == cfg.MaxAttempts-1 {
			break
		}
		if ctx.Err() != nil {
			return zero, lastErr
		}

		delay := cfg.BaseDelay << attempt
		log.Printf("retry %s: attempt %d/%d failed, next in %v: %v",
			name, attempt+1, cfg.MaxAttempts, delay, err)
		sleep(delay)
	}
	return zero, lastErr
}
