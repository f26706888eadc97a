package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStaleResponse is returned when a response arrives for a request that has been
	// superseded by a newer one (or by a store reset). The response is discarded.
	ErrStaleResponse = errors.New("stale response discarded")
	// ErrPageOutOfRange is returned when navigation targets a page outside [1, totalPages].
	ErrPageOutOfRange = errors.New("page out of range")
	// ErrInvalidPageSize is returned for page sizes outside [1, MaxItemsPerPage].
	ErrInvalidPageSize = errors.New("invalid page size")
	// ErrMalformedResponse is returned when a successful envelope carries no usable record.
	ErrMalformedResponse = errors.New("malformed response payload")
)

// BusinessError is an application-level failure: the transport succeeded but the
// envelope carried a responseCode other than 1.
type BusinessError struct {
	Code    int
	Message string
}

func (e BusinessError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request rejected (responseCode %d)", e.Code)
	}
	return e.Message
}

// TransportError is a network failure or a non-2xx response without an envelope.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("transport failure: %v", e.Err)
	case e.Status > 0:
		return fmt.Sprintf("transport failure: unexpected status %d", e.Status)
	default:
		return "transport failure"
	}
}

func (e TransportError) Unwrap() error { return e.Err }

// ValidationError is a client-side form failure. It never reaches the store.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func IsBusiness(err error) bool {
	var target BusinessError
	return errors.As(err, &target)
}

func IsTransport(err error) bool {
	var target TransportError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

// UserMessage renders err the way the console shows it in a toast or a failed status.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var business BusinessError
	if errors.As(err, &business) {
		return business.Error()
	}
	var validation ValidationError
	if errors.As(err, &validation) {
		return validation.Error()
	}
	return err.Error()
}
