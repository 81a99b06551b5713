package spoonacular

import (
	"errors"
	"fmt"
)

var (
	// ErrQuotaExceeded is reported for HTTP 402, the daily point budget.
	ErrQuotaExceeded     = errors.New("API quota exceeded")
	ErrNotFound          = errors.New("recipe not found")
	ErrMalformedResponse = errors.New("malformed response")
	ErrRequestFailed     = errors.New("request failed")
)

// Error describes a failed API call. Err is one of the package sentinels.
type Error struct {
	Op     string
	Status int
	Err    error
	// Detail is the underlying cause, kept for logs.
	Detail error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("spoonacular %s: %v", e.Op, e.Err)
	if e.Status != 0 {
		msg = fmt.Sprintf("spoonacular %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	if e.Detail != nil {
		msg += ": " + e.Detail.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Detail == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Detail}
}
