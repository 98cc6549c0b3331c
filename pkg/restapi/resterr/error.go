/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/trustbloc/vc-verifier/pkg/validation"
)

type ErrorCode string

const (
	SystemError  ErrorCode = "system-error"
	InvalidValue ErrorCode = "invalid-value"
	BadRequest   ErrorCode = "bad-request"
	DoesntExist  ErrorCode = "doesnt-exist"
	Unavailable  ErrorCode = "service-unavailable"
)

func (c ErrorCode) Name() string {
	return string(c)
}

// CustomError is an error with a code, the component and operation that produced it, and an optional
// validation kind. It renders as a JSON error body.
type CustomError struct {
	Code            ErrorCode
	IncorrectValue  string
	FailedOperation string
	Component       Component
	Kind            validation.Kind
	Err             error
}

func NewValidationError(code ErrorCode, incorrectValue string, err error) *CustomError {
	return &CustomError{
		Code:           code,
		IncorrectValue: incorrectValue,
		Err:            err,
	}
}

func NewSystemError(component Component, failedOperation string, err error) *CustomError {
	return &CustomError{
		Code:            SystemError,
		FailedOperation: failedOperation,
		Component:       component,
		Err:             err,
	}
}

func NewCustomError(code ErrorCode, err error) *CustomError {
	return &CustomError{
		Code: code,
		Err:  err,
	}
}

// FromValidation converts a validation error returned by component. Resolution and infrastructure
// failures become system errors, every other kind is a bad request.
func FromValidation(component Component, failedOperation string, err error) *CustomError {
	kind, _ := validation.KindOf(err)

	switch kind {
	case validation.ResolutionError, validation.NotFound, "":
		e := NewSystemError(component, failedOperation, err)
		e.Kind = kind

		return e
	default:
		return &CustomError{
			Code:            BadRequest,
			FailedOperation: failedOperation,
			Component:       component,
			Kind:            kind,
			Err:             err,
		}
	}
}

func (e *CustomError) Error() string {
	var details []string

	if e.Component != "" {
		details = append(details, string(e.Component))
	}

	if e.FailedOperation != "" {
		details = append(details, e.FailedOperation)
	}

	if e.IncorrectValue != "" {
		details = append(details, e.IncorrectValue)
	}

	if len(details) == 0 {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}

	return fmt.Sprintf("%s[%s]: %v", e.Code, strings.Join(details, ", "), e.Err)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// HTTPCodeMsg returns the HTTP status and the JSON body for the error.
func (e *CustomError) HTTPCodeMsg() (int, interface{}) {
	var code int

	switch e.Code {
	case InvalidValue, BadRequest:
		code = http.StatusBadRequest
	case DoesntExist:
		code = http.StatusNotFound
	case Unavailable:
		code = http.StatusServiceUnavailable
	default:
		code = http.StatusInternalServerError
	}

	msg := map[string]interface{}{
		"code":    e.Code.Name(),
		"message": e.Err.Error(),
	}

	if e.Kind != "" {
		msg["kind"] = string(e.Kind)
	}

	if e.IncorrectValue != "" {
		msg["incorrectValue"] = e.IncorrectValue
	}

	if e.Component != "" {
		msg["component"] = string(e.Component)
	}

	return code, msg
}

// GetErrorDetails returns the message, code and component of a CustomError anywhere in the chain of err.
func GetErrorDetails(err error) (string, string, Component) {
	var customErr *CustomError

	if errors.As(err, &customErr) {
		return customErr.Err.Error(), customErr.Code.Name(), customErr.Component
	}

	return err.Error(), "", ""
}
