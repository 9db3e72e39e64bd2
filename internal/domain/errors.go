package domain

import (
	"errors"
	"fmt"
)

// HTTPError reports a non-success status from one of the upstream APIs.
type HTTPError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: http status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: http status %d: %s", e.Op, e.StatusCode, e.Body)
}

// MalformedResponseError reports a response body missing fields the client relies on.
type MalformedResponseError struct {
	Op     string
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: malformed response: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: malformed response: %s", e.Op, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

type GeolocationReason string

const (
	GeolocationDenied      GeolocationReason = "denied"
	GeolocationUnsupported GeolocationReason = "unsupported"
	GeolocationTimeout     GeolocationReason = "timeout"
	GeolocationUnavailable GeolocationReason = "unavailable"
)

// GeolocationError reports that no position could be obtained.
type GeolocationError struct {
	Reason GeolocationReason
	Err    error
}

func (e *GeolocationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("geolocation %s: %v", e.Reason, e.Err)
	}
	return "geolocation " + string(e.Reason)
}

func (e *GeolocationError) Unwrap() error { return e.Err }

type PersistenceOp string

const (
	PersistenceRead  PersistenceOp = "read"
	PersistenceWrite PersistenceOp = "write"
)

// PersistenceError wraps a failed read or write of the state slot.
type PersistenceError struct {
	Op  PersistenceOp
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s key=%q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type ValidationCode string

const (
	ValidationEmptyName         ValidationCode = "empty_name"
	ValidationNoSelection       ValidationCode = "no_selection"
	ValidationDuplicateCity     ValidationCode = "duplicate_city"
	ValidationMainCityDuplicate ValidationCode = "main_city_duplicate"
)

// ValidationError is a user-facing form problem. Message is already localized.
type ValidationError struct {
	Code    ValidationCode
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation %s: %s", e.Code, e.Message)
}

// Report the validation code carried by err, if any.
func ValidationCodeOf(err error) (ValidationCode, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Code, true
	}
	return "", false
}
