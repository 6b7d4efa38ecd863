package retryx

import (
	"github.com/cenkalti/backoff"
)

// ConstantRetry runs fn until it succeeds, waiting a fixed interval between
// attempts. The interval and the attempt budget are tunable through options;
// anything fancier should use the backoff package directly.
func ConstantRetry(fn func() error, opts ...RetryOption) error {
	ro := newRetryOptions(opts...)
	return run(fn, backoff.NewConstantBackOff(ro.interval), ro.retryCount)
}

// ExponentialRetry runs fn until it succeeds, growing the wait between
// attempts exponentially up to the configured maximum interval. It gives up
// once the elapsed-time budget is spent or the attempt budget is exhausted,
// whichever comes first.
func ExponentialRetry(fn func() error, opts ...RetryOption) error {
	ro := newRetryOptions(opts...)

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = ro.interval
	bo.MaxInterval = ro.maxInterval
	bo.MaxElapsedTime = ro.maxElapsedTime

	return run(fn, bo, ro.retryCount)
}

// run drives fn through the backoff strategy. The error of the final allowed
// attempt is marked permanent so backoff.Retry stops instead of sleeping one
// more time.
func run(fn func() error, bo backoff.BackOff, maxAttempts int) error {
	bo.Reset()

	attempts := 0
	return backoff.Retry(func() error {
		err := fn()
		if err == nil {
			return nil
		}

		attempts++
		if attempts >= maxAttempts {
			return backoff.Permanent(err)
		}

		return err
	}, bo)
}
