package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	cfg := DefaultConfig()
	cfg.Sleep = func(time.Duration) { t.Fatal("should not sleep") }

	got, err := Do(context.Background(), cfg, "op", func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesThenSucceeds(t *testing.T) {
	calls := 0
	var delays []time.Duration
	cfg := Config{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		Sleep:       func(d time.Duration) { delays = append(delays, d) },
	}

	got, err := Do(context.Background(), cfg, "op", func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)
	require.Len(t, delays, 2)
	assert.Equal(t, 100*time.Millisecond, delays[0])
	assert.Equal(t, 200*time.Millisecond, delays[1])
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	cfg := Config{MaxAttempts: 3, BaseDelay: time.Millisecond, Sleep: func(time.Duration) {}}

	lastErr := errors.New("still down")
	_, err := Do(context.Background(), cfg, "op", func(ctx context.Context) (int, error) {
		calls++
		return 0, lastErr
	})

	require.ErrorIs(t, err, lastErr)
	assert.Equal(t, 3, calls)
}

func TestDoPermanentErrorNoRetry(t *testing.T) {
	calls := 0
	cfg := DefaultConfig()
	cfg.Sleep = func(time.Duration) { t.Fatal("should not sleep on permanent error") }

	authErr := errors.New("unauthorized")
	_, err := Do(context.Background(), cfg, "op", func(ctx context.Context) (int, error) {
		calls++
		return 0, Permanent(authErr)
	})

	require.Error(t, err)
	assert.True(t, IsPermanent(err))
	assert.ErrorIs(t, err, authErr)
	assert.Equal(t, 1, calls)
}

func TestDoStopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	cfg := Config{MaxAttempts: 5, BaseDelay: time.Millisecond, Sleep: func(time.Duration) {}}

	opErr := errors.New("transient")
	_, err := Do(ctx, cfg, "op", func(ctx context.Context) (int, error) {
		calls++
		cancel() // caller goes away mid-attempt
		return 0, opErr
	})

	require.ErrorIs(t, err, opErr)
	// the in-flight attempt finished, no further ones were scheduled
	assert.Equal(t, 1, calls)
}

func TestPermanentNil(t *testing.T) {
	assert.NoError(t, Permanent(nil))
}
