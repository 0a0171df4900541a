package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

type ErrorCode string

const (
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrConflict       ErrorCode = "CONFLICT"
	ErrBadRequest     ErrorCode = "BAD_REQUEST"
	ErrInternalServer ErrorCode = "INTERNAL_SERVER_ERROR"

	// ErrTransport covers network failures, timeouts and non-2xx responses.
	ErrTransport ErrorCode = "TRANSPORT_ERROR"
	// ErrValidation covers empty view names, empty condition sets and blank condition values.
	ErrValidation ErrorCode = "VALIDATION_ERROR"
	// ErrTranslation is soft: a clause that could not be turned into a query parameter.
	ErrTranslation ErrorCode = "TRANSLATION_ERROR"
)

type APIError struct {
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"status_code,omitempty"`
	cause      error
}

func (e APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e APIError) Unwrap() error {
	return e.cause
}

func NewAPIError(code ErrorCode, message string, details interface{}) APIError {
	if details != nil {
		logrus.WithField("code", code).Error(details)
	}
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
	if cause, ok := details.(error); ok {
		apiErr.cause = cause
	}
	return apiErr
}

// NewTransportError reports a failed request. statusCode is 0 when no response was received.
func NewTransportError(statusCode int, statusText string, cause error) APIError {
	message := statusText
	if statusCode != 0 {
		message = fmt.Sprintf("HTTP %d: %s", statusCode, statusText)
	} else if message == "" && cause != nil {
		message = cause.Error()
	}
	logrus.WithFields(logrus.Fields{"code": ErrTransport, "status": statusCode}).Warn(message)
	return APIError{
		Code:       ErrTransport,
		Message:    message,
		StatusCode: statusCode,
		cause:      cause,
	}
}

func NewValidationError(message string, details interface{}) APIError {
	return APIError{
		Code:    ErrValidation,
		Message: message,
		Details: details,
	}
}

// NewTranslationError reports a condition value that could not be parsed for its field.
func NewTranslationError(field, value string, cause error) APIError {
	return APIError{
		Code:    ErrTranslation,
		Message: fmt.Sprintf("cannot translate %s value %q, clause skipped", field, value),
		Details: map[string]string{"field": field, "value": value},
		cause:   cause,
	}
}

// IsCode reports whether err wraps an APIError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

func MapErrorToHTTPStatus(err error) int {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case ErrNotFound:
			return http.StatusNotFound
		case ErrConflict:
			return http.StatusConflict
		case ErrBadRequest, ErrValidation, ErrTranslation:
			return http.StatusBadRequest
		case ErrTransport:
			return http.StatusBadGateway
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}
