// Package services orchestrates the analytics engine for callers: input
// validation, projection of transactions into series, and logging.
package services

import (
	"errors"

	"github.com/soltixdb/finsight/internal/analytics/trend"
)

// Error codes carried by ServiceError.
const (
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeInvalidSeries    = "INVALID_SERIES"
	CodeInvalidRequest   = "INVALID_REQUEST"
)

// ServiceError represents a service layer error
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Err     error                  `json:"-"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Unwrap returns the engine error, if any.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewServiceErrorWithDetails creates a new ServiceError with details
func NewServiceErrorWithDetails(code, message string, details map[string]interface{}) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// fromEngineError maps analyzer errors onto service codes.
func fromEngineError(err error) *ServiceError {
	var insufficient *trend.InsufficientDataError
	if errors.As(err, &insufficient) {
		return &ServiceError{
			Code:    CodeInsufficientData,
			Message: err.Error(),
			Details: map[string]interface{}{
				"need": insufficient.Need,
				"have": insufficient.Have,
			},
			Err: err,
		}
	}
	return &ServiceError{
		Code:    CodeInvalidSeries,
		Message: err.Error(),
		Err:     err,
	}
}

// CodeOf returns the ServiceError code of err, or "" when err is not one.
func CodeOf(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
