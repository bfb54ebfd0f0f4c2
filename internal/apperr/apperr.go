// Package apperr separates expected business outcomes from
// infrastructure faults. A BusinessError carries a human-readable
// reason and is reported inside a 200 envelope; every other error is
// treated as a fault and reported with status 500.
package apperr

import (
	"errors"
	"fmt"
)

type BusinessError struct {
	Reason string
}

func (e *BusinessError) Error() string { return e.Reason }

// Business wraps a reason as an expected negative outcome.
func Business(reason string) error {
	return &BusinessError{Reason: reason}
}

func Businessf(format string, args ...any) error {
	return &BusinessError{Reason: fmt.Sprintf(format, args...)}
}

// ReasonOf returns the business reason if err is (or wraps) a
// BusinessError. ok=false means err is an infrastructure fault.
func ReasonOf(err error) (reason string, ok bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Reason, true
	}
	return "", false
}
