package retry

import (
	"fmt"

	"github.com/rohmanhakim/dom-patcher/pkg/failure"
)

type RetryErrorCause string

const (
	ErrZeroAttempt       RetryErrorCause = "zero attempt"
	ErrExhaustedAttempts RetryErrorCause = "exhausted attempts"
)

type RetryError struct {
	Message   string
	Retryable bool
	Cause     RetryErrorCause
}

func (e *RetryError) Error() string {
	return fmt.Sprintf("retry error: %s", e.Cause)
}

func (e *RetryError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable
func (e *RetryError) IsRetryable() bool {
	return e.Retryable
}

// Is reports whether target is a RetryError, so errors.Is can be used to
// distinguish retry exhaustion from the underlying task error.
func (e *RetryError) Is(target error) bool {
	_, ok := target.(*RetryError)
	return ok
}
