package retryx

import "time"

const (
	DefaultInterval       = 500 * time.Millisecond
	DefaultMaxInterval    = 2 * time.Second
	DefaultMaxElapsedTime = 5 * time.Second
	DefaultMaxRetries     = 3
)

// retryOptions carries the resolved retry parameters. newRetryOptions applies
// the package defaults before the caller's options, so the strategies never
// deal with zero values.
type retryOptions struct {
	retryCount     int
	interval       time.Duration
	maxInterval    time.Duration
	maxElapsedTime time.Duration
}

type RetryOption func(*retryOptions)

func newRetryOptions(opts ...RetryOption) *retryOptions {
	ro := &retryOptions{
		retryCount:     DefaultMaxRetries,
		interval:       DefaultInterval,
		maxInterval:    DefaultMaxInterval,
		maxElapsedTime: DefaultMaxElapsedTime,
	}
	for _, opt := range opts {
		opt(ro)
	}
	return ro
}

// WithRetryCount caps the total number of attempts, the initial call
// included. Non-positive counts are ignored.
func WithRetryCount(count int) RetryOption {
	return func(ro *retryOptions) {
		if count > 0 {
			ro.retryCount = count
		}
	}
}

// WithInterval sets the wait between attempts, or the initial wait for the
// exponential strategy. Non-positive intervals are ignored.
func WithInterval(interval time.Duration) RetryOption {
	return func(ro *retryOptions) {
		if interval > 0 {
			ro.interval = interval
		}
	}
}

// WithMaxInterval bounds how far the exponential strategy may grow the wait
// between attempts. Non-positive intervals are ignored.
func WithMaxInterval(maxInterval time.Duration) RetryOption {
	return func(ro *retryOptions) {
		if maxInterval > 0 {
			ro.maxInterval = maxInterval
		}
	}
}

// WithMaxElapsedTime bounds the total time spent retrying under the
// exponential strategy. Non-positive durations are ignored.
func WithMaxElapsedTime(maxElapsedTime time.Duration) RetryOption {
	return func(ro *retryOptions) {
		if maxElapsedTime > 0 {
			ro.maxElapsedTime = maxElapsedTime
		}
	}
}
