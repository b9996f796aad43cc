// Package errors maps service failures to client facing categories.
package errors

import (
	"errors"
	"net/http"
)

// Category classifies a ServiceError for the client
type Category int

const (
	// CategoryGeneralError is an unexpected failure; details are only logged.
	CategoryGeneralError Category = iota
	// CategoryDataError is an invalid request payload or parameter.
	CategoryDataError
	// CategoryUnauthorized is a missing or invalid credential.
	CategoryUnauthorized
	// CategoryResourceNotFound is an unknown resource id.
	CategoryResourceNotFound
	// CategoryDataConflict is a request clashing with existing state.
	CategoryDataConflict
	// CategoryRateLimited is a client over its request budget.
	CategoryRateLimited
	// CategoryDependencyFailure is a failure reported by the node or database.
	CategoryDependencyFailure
	// CategoryUnavailable is a service shutting down or not ready.
	CategoryUnavailable
)

var categoryNames = map[Category]string{
	CategoryGeneralError:      "CategoryGeneralError",
	CategoryDataError:         "CategoryDataError",
	CategoryUnauthorized:      "CategoryUnauthorized",
	CategoryResourceNotFound:  "CategoryResourceNotFound",
	CategoryDataConflict:      "CategoryDataConflict",
	CategoryRateLimited:       "CategoryRateLimited",
	CategoryDependencyFailure: "CategoryDependencyFailure",
	CategoryUnavailable:       "CategoryUnavailable",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "CategoryGeneralError"
}

// ServiceError carries a client safe message next to the underlying error.
// Message is sent to the client; Err is only logged.
type ServiceError struct {
	Category Category
	Message  string
	Err      error
}

func (err *ServiceError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return err.Message
}

func (err *ServiceError) Unwrap() error {
	return err.Err
}

// StatusCode returns the HTTP status code for the error category
func (err *ServiceError) StatusCode() int {
	switch err.Category {
	case CategoryDataError:
		return http.StatusBadRequest
	case CategoryUnauthorized:
		return http.StatusUnauthorized
	case CategoryResourceNotFound:
		return http.StatusNotFound
	case CategoryDataConflict:
		return http.StatusConflict
	case CategoryRateLimited:
		return http.StatusTooManyRequests
	case CategoryDependencyFailure:
		return http.StatusBadGateway
	case CategoryUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Is checks that err is a ServiceError with category cat
func Is(err error, cat Category) bool {
	var svcErr *ServiceError
	return errors.As(err, &svcErr) && svcErr.Category == cat
}

func newError(cat Category, err error, message, fallback string) error {
	if err == nil {
		err = errors.New(fallback)
	}
	return &ServiceError{Category: cat, Message: message, Err: err}
}

// GeneralError hides err behind "Internal Server Error"
func GeneralError(err error) error {
	return newError(CategoryGeneralError, err, "Internal Server Error", "internal server error")
}

// BadRequestError returns a CategoryDataError
func BadRequestError(err error, message string) error {
	return newError(CategoryDataError, err, message, "bad request: "+message)
}

// UnAuthorizedError returns a CategoryUnauthorized
func UnAuthorizedError(err error, message string) error {
	return newError(CategoryUnauthorized, err, message, "unauthorized")
}

// ResourceNotFoundError returns a CategoryResourceNotFound
func ResourceNotFoundError(err error, message string) error {
	return newError(CategoryResourceNotFound, err, message, "resource not found: "+message)
}

// ConflictError returns a CategoryDataConflict
func ConflictError(err error, message string) error {
	return newError(CategoryDataConflict, err, message, "conflict")
}

// RateLimitedError returns a CategoryRateLimited
func RateLimitedError(message string) error {
	return newError(CategoryRateLimited, nil, message, "rate limited")
}

// DependencyError returns a CategoryDependencyFailure
func DependencyError(err error, message string) error {
	return newError(CategoryDependencyFailure, err, message, "dependency failure")
}

// UnavailableError returns a CategoryUnavailable
func UnavailableError(err error, message string) error {
	return newError(CategoryUnavailable, err, message, "service unavailable")
}
