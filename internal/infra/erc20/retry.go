package erc20

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const defaultRetryDelay = 100 * time.Millisecond

// retrier repeats a contract read. Every attempt runs under its own deadline
// and the pause between attempts doubles. Errors marked permanent end the
// loop at once.
type retrier struct {
	retries int
	timeout time.Duration
	delay   time.Duration
}

func newRetrier(opts Options) retrier {
	r := retrier{
		retries: opts.Retries,
		timeout: opts.CallTimeout,
		delay:   opts.RetryDelay,
	}
	if r.retries < 0 {
		r.retries = 0
	}
	if r.delay <= 0 {
		r.delay = defaultRetryDelay
	}
	return r
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// permanent marks err as not worth another attempt.
func permanent(err error) error {
	return &permanentError{err: err}
}

func (r retrier) do(ctx context.Context, fn func(context.Context) error) error {
	delay := r.delay
	for attempt := 0; ; attempt++ {
		err := r.attempt(ctx, fn)
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		if attempt >= r.retries {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return multierr.Append(err, ctx.Err())
		case <-timer.C:
		}
		delay *= 2
	}
}

func (r retrier) attempt(ctx context.Context, fn func(context.Context) error) error {
	if r.timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return fn(ctx)
}
