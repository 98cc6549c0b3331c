/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a validation failure.
type Kind string

const (
	// EncodingError reports malformed base64url or JSON.
	EncodingError Kind = "EncodingError"
	// HeaderError reports JOSE header rule violations (disjointness, crit, b64).
	HeaderError Kind = "HeaderError"
	// UnsupportedAlgorithm reports that no verifier is registered for the "alg" header.
	UnsupportedAlgorithm Kind = "UnsupportedAlgorithm"
	// SignatureError reports a cryptographic signature mismatch.
	SignatureError Kind = "SignatureError"
	// KeyNotFound reports that the signing key could not be selected from the DID document.
	KeyNotFound Kind = "KeyNotFound"
	// CredentialStructure reports a credential that does not match the expected shape.
	CredentialStructure Kind = "CredentialStructure"
	// PresentationStructure reports a presentation that does not match the expected shape.
	PresentationStructure Kind = "PresentationStructure"
	// IssuanceDate reports an issuance date in the future.
	IssuanceDate Kind = "IssuanceDate"
	// ExpirationDate reports an expired credential or presentation.
	ExpirationDate Kind = "ExpirationDate"
	// InvalidStatus reports a malformed, mismatched or unsupported credentialStatus.
	InvalidStatus Kind = "InvalidStatus"
	// OutsideTimeframe reports that "now" is outside a RevocationTimeframe2024 window.
	OutsideTimeframe Kind = "OutsideTimeframe"
	// Revoked is the expected outcome of a revoked credential.
	Revoked Kind = "Revoked"
	// Suspended is the expected outcome of a suspended credential.
	Suspended Kind = "Suspended"
	// ResolutionError reports a DID resolution failure other than NotFound.
	ResolutionError Kind = "ResolutionError"
	// NotFound reports that a DID (or a resource referenced by a DID URL) does not exist.
	NotFound Kind = "NotFound"
	// SignerURL reports an "iss" that is not a parseable DID of the expected method.
	SignerURL Kind = "SignerUrl"
	// BindingError reports a presentation audience/nonce mismatch or a holder relationship violation.
	BindingError Kind = "BindingError"
)

// Error is a single validation failure.
type Error struct {
	Kind Kind
	Err  error
}

// NewError returns a new Error of the given kind.
func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Errorf returns a new Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return t.Err == nil && t.Kind == e.Kind
}

// Sentinel returns an *Error carrying only a kind, suitable for errors.Is comparisons.
func Sentinel(kind Kind) error {
	return &Error{Kind: kind}
}

// AccumulatedError is a non-empty, ordered collection of validation failures.
type AccumulatedError struct {
	Errors []*Error
}

func (e *AccumulatedError) Error() string {
	msgs := make([]string, 0, len(e.Errors))

	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}

	return fmt.Sprintf("%d validation errors: [%s]", len(e.Errors), strings.Join(msgs, "; "))
}

func (e *AccumulatedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))

	for _, err := range e.Errors {
		errs = append(errs, err)
	}

	return errs
}

// Kinds returns the kinds of the accumulated errors in order.
func (e *AccumulatedError) Kinds() []Kind {
	kinds := make([]Kind, 0, len(e.Errors))

	for _, err := range e.Errors {
		kinds = append(kinds, err.Kind)
	}

	return kinds
}

// KindOf returns the kind of the first *Error found in err's chain.
func KindOf(err error) (Kind, bool) {
	var vErr *Error
	if errors.As(err, &vErr) {
		return vErr.Kind, true
	}

	return "", false
}

// IsKind reports whether err (or any error it wraps) is a validation error of the given kind.
func IsKind(err error, kind Kind) bool {
	return errors.Is(err, Sentinel(kind))
}

// Flatten returns the validation errors contained in err in order. Errors that are not
// validation errors are returned with an empty kind.
func Flatten(err error) []*Error {
	if err == nil {
		return nil
	}

	var acc *AccumulatedError
	if errors.As(err, &acc) {
		return acc.Errors
	}

	var vErr *Error
	if errors.As(err, &vErr) {
		return []*Error{vErr}
	}

	return []*Error{{Err: err}}
}
