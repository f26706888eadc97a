package httputil

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ErrorMapping represents a single error to HTTP status/message mapping. Either Error
// (matched with errors.Is) or Match is set. An empty Message reuses the error's own text,
// which is how backend business messages reach the console unchanged.
type ErrorMapping struct {
	Error   error
	Match   func(error) bool
	Status  int
	Message string
}

func (m ErrorMapping) matches(err error) bool {
	if m.Match != nil {
		return m.Match(err)
	}
	return m.Error != nil && errors.Is(err, m.Error)
}

func (m ErrorMapping) info(err error) HTTPErrorInfo {
	message := m.Message
	if message == "" {
		message = err.Error()
	}
	return HTTPErrorInfo{Status: m.Status, Message: message}
}

// ErrorMapper maps domain errors to HTTP status codes and messages.
// Mappings are evaluated in registration order.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
}

// NewErrorMapper creates a new ErrorMapper with default settings.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		mappings:       make([]ErrorMapping, 0),
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

// WithMapping adds a sentinel error mapping to the mapper.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{Error: err, Status: status, Message: message})
	return m
}

// WithMatcher adds a mapping for errors recognised by match, typically an errors.As
// helper for a typed error.
func (m *ErrorMapper) WithMatcher(match func(error) bool, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{Match: match, Status: status, Message: message})
	return m
}

// WithDefault sets the default status and message for unmatched errors.
func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// Map converts an error to HTTP status and message.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK, Message: ""}
	}
	if info, ok := contextInfo(err); ok {
		return info
	}
	for _, mapping := range m.mappings {
		if mapping.matches(err) {
			return mapping.info(err)
		}
	}
	return HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
}

// QuickMap is a convenience function for quick error mapping without creating a mapper.
func QuickMap(err error, mappings ...ErrorMapping) HTTPErrorInfo {
	mapper := NewErrorMapper()
	mapper.mappings = append(mapper.mappings, mappings...)
	return mapper.Map(err)
}

func contextInfo(err error) (HTTPErrorInfo, bool) {
	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}, true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}, true
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}, true
	}
	return HTTPErrorInfo{}, false
}
