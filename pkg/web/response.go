// Package web defines common components for a web application.
package web

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/go-petr/pet-ledger/pkg/errorspkg"
)

// Response holds the common response type for all APIs.
type Response struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Error wraps a given err into the common response.
func Error(err error) Response {
	return Response{Error: err.Error()}
}

// BindingError converts a request binding error into a client facing message.
// Validation failures report the first offending field.
func BindingError(err error) Response {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		field := ve[0]
		return Response{Error: field.Field() + GetErrorMsg(field)}
	}

	return Error(errorspkg.ErrInvalidRequest)
}

// GetErrorMsg returns the message suffix for a failed validation tag.
func GetErrorMsg(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return " is required"
	case "gt":
		return fmt.Sprintf(" must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf(" must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf(" must be at most %s", fe.Param())
	case "min":
		return fmt.Sprintf(" must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf(" must be at most %s characters long", fe.Param())
	case "alphanum":
		return " must contain only letters and digits"
	case "nefield":
		return fmt.Sprintf(" must differ from %s", fe.Param())
	}

	return " is invalid"
}
