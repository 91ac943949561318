package retryutil

import (
	"github.com/avast/retry-go/v4"
)

// RetryWithData runs f up to attempts times and returns the last error only.
// An attempts value of 1 runs f exactly once.
func RetryWithData[T any](attempts uint, f func() (T, error)) (T, error) {
	return retry.DoWithData(f, options(attempts)...)
}

func RetryWithoutData(attempts uint, f func() error) error {
	return retry.Do(f, options(attempts)...)
}

func options(attempts uint) []retry.Option {
	if attempts == 0 {
		attempts = 1
	}

	return []retry.Option{
		retry.Attempts(attempts),
		retry.LastErrorOnly(true),
	}
}

// Permanent marks err so that no further attempts are made.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return retry.Unrecoverable(err)
}
