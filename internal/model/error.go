package model

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrRequestFailed     = errors.New("request failed")
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("invalid workflow transition")
	ErrNoDraft           = errors.New("no parcel draft")
	ErrLineItemNotFound  = errors.New("line item not found")
	ErrInvalidImage      = errors.New("file is not an image")
	ErrImageTooLarge     = errors.New("image must be smaller than 5MB")
	ErrFormClosed        = errors.New("form is not open")
	ErrScanInProgress    = errors.New("barcode scan already running")

	// ErrRefreshAfterSave marks a refetch failure that followed a committed change.
	ErrRefreshAfterSave = errors.New("saved, list refresh failed")
)

// RequestError is a failed backend call. Message is what the operator sees.
type RequestError struct {
	Op      string
	Status  int
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.Status)
}

func (e *RequestError) Unwrap() []error {
	errs := []error{ErrRequestFailed}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	switch e.Status {
	case http.StatusNotFound:
		errs = append(errs, ErrNotFound)
	case http.StatusUnauthorized:
		errs = append(errs, ErrUnauthorized)
	}
	return errs
}

// Violations maps a field name to a violation code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

type ValidationError struct {
	Violations Violations
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Violations))
	for k := range e.Violations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Violations[k])
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// UserMessage extracts the text to surface to the operator.
func UserMessage(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
