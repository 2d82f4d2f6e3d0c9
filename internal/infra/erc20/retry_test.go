package erc20

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestRetrier(t *testing.T) {
	t.Parallel()

	t.Run("every attempt has its own deadline", func(t *testing.T) {
		t.Parallel()

		r := newRetrier(Options{Retries: 2, RetryDelay: time.Millisecond, CallTimeout: time.Minute})
		var deadlines []time.Time
		err := r.do(context.Background(), func(ctx context.Context) error {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			deadlines = append(deadlines, deadline)
			if len(deadlines) < 3 {
				return errors.New("busy")
			}
			return nil
		})
		require.NoError(t, err)
		require.Len(t, deadlines, 3)
		require.True(t, deadlines[2].After(deadlines[0]))
	})

	t.Run("gives up after the last retry", func(t *testing.T) {
		t.Parallel()

		r := newRetrier(Options{Retries: 1, RetryDelay: time.Millisecond})
		calls := 0
		err := r.do(context.Background(), func(ctx context.Context) error {
			calls++
			_, ok := ctx.Deadline()
			require.False(t, ok)
			return errors.New("busy")
		})
		require.EqualError(t, err, "busy")
		require.Equal(t, 2, calls)
	})

	t.Run("permanent error stops at once", func(t *testing.T) {
		t.Parallel()

		r := newRetrier(Options{Retries: 5, RetryDelay: time.Millisecond})
		cause := errors.New("bad abi")
		calls := 0
		err := r.do(context.Background(), func(context.Context) error {
			calls++
			return permanent(cause)
		})
		require.Same(t, cause, err)
		require.Equal(t, 1, calls)
	})

	t.Run("cancelled while waiting", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		r := newRetrier(Options{Retries: 3, RetryDelay: time.Hour})
		err := r.do(ctx, func(context.Context) error {
			cancel()
			return errors.New("busy")
		})
		require.ErrorIs(t, err, context.Canceled)
		require.ErrorContains(t, err, "busy")
	})
}
