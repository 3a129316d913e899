package cache

import (
	"errors"
	"io"
	"net"
	"time"
)

// Operation is a function that performs an action and returns an error if it fails.
type Operation func() error

// IsRetryableError is a function that checks if an error is worth retrying.
type IsRetryableError func(err error) bool

const DefaultMaxRetries = 3

// Try executes an operation with default retry settings for transient
// Redis errors. It uses DefaultMaxRetries and IsTransientRedisError.
func Try(op Operation) error {
	return WithRetries(op, DefaultMaxRetries, IsTransientRedisError)
}

// WithRetries executes an operation with a retry mechanism for transient errors.
// It attempts the operation up to maxRetries times.
func WithRetries(op Operation, maxRetries int, isRetryable IsRetryableError) error {
	var err error
	// Loop for initial attempt (attempt = 0) + maxRetries
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil // Success
		}

		// If this was the last attempt (either initial if maxRetries = 0, or the last retry)
		// and it failed, break out of the loop to return the error.
		if attempt == maxRetries {
			break
		}

		if isRetryable(err) {
			time.Sleep(time.Duration(50*(attempt+1)) * time.Millisecond) // Simple incremental backoff
			// Continue to the next attempt (handled by the loop)
		} else {
			return err // Not a transient error, return immediately
		}
	}
	return err // All attempts failed or last attempt failed
}

// IsTransientRedisError checks whether an error from Redis looks like a
// transient network condition (timeout, dropped connection) rather than a
// logical failure such as redis.Nil.
func IsTransientRedisError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return false
}
