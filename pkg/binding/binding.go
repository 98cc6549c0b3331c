/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination binding_mocks_test.go -self_package mocks -package binding -source=binding.go -mock_names credentialValidator=MockCredentialValidator,presentationValidator=MockPresentationValidator

package binding

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/service/verifycredential"
	"github.com/trustbloc/vc-verifier/pkg/service/verifypresentation"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

var logger = log.New("binding")

type credentialValidator interface {
	ValidateWithResolver(ctx context.Context, token string,
		opts *verifycredential.Options) (*verifycredential.DecodedCredential, error)
}

type presentationValidator interface {
	ValidateWithResolver(ctx context.Context, token string,
		opts *verifypresentation.Options) (*verifypresentation.DecodedPresentation, error)
}

// CredentialRequest is the JSON request of ValidateCredentialJSON.
type CredentialRequest struct {
	Credential string             `json:"credential" validate:"required"`
	Options    *CredentialOptions `json:"options,omitempty" validate:"omitempty"`
}

// PresentationRequest is the JSON request of ValidatePresentationJSON.
type PresentationRequest struct {
	Presentation string               `json:"presentation" validate:"required"`
	Options      *PresentationOptions `json:"options,omitempty" validate:"omitempty"`
}

type Config struct {
	Credentials   credentialValidator
	Presentations presentationValidator
	// Clock is used when a request does not set "now". Defaults to the system clock.
	Clock validation.Clock
	// DefaultLeeway applies when a request does not set "leewaySeconds".
	DefaultLeeway time.Duration
	// AllowedDIDMethod applies to credentials when a request does not set "allowedDIDMethod".
	AllowedDIDMethod string
}

// Binding is the embeddable front end of the verifier. It accepts and returns plain JSON so that it can be
// exposed to other runtimes.
type Binding struct {
	credentials   credentialValidator
	presentations presentationValidator
	clock         validation.Clock
	leeway        time.Duration
	didMethod     string
	validate      *validator.Validate
}

func New(config *Config) *Binding {
	clock := config.Clock
	if clock == nil {
		clock = validation.SystemClock{}
	}

	return &Binding{
		credentials:   config.Credentials,
		presentations: config.Presentations,
		clock:         clock,
		leeway:        config.DefaultLeeway,
		didMethod:     config.AllowedDIDMethod,
		validate:      validator.New(),
	}
}

// ValidateRequest checks the validate tags of a request or options struct.
func (b *Binding) ValidateRequest(req interface{}) error {
	if err := b.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	return nil
}

// CredentialOptions converts JSON options to validator options using the binding defaults.
func (b *Binding) CredentialOptions(opts *CredentialOptions) (*verifycredential.Options, error) {
	res, err := opts.Options(b.clock, b.leeway)
	if err != nil {
		return nil, err
	}

	if res.AllowedDIDMethod == "" {
		res.AllowedDIDMethod = b.didMethod
	}

	return res, nil
}

// PresentationOptions converts JSON options to validator options using the binding defaults.
func (b *Binding) PresentationOptions(opts *PresentationOptions) (*verifypresentation.Options, error) {
	res, err := opts.Options(b.clock, b.leeway)
	if err != nil {
		return nil, err
	}

	if res.Credential.AllowedDIDMethod == "" {
		res.Credential.AllowedDIDMethod = b.didMethod
	}

	return res, nil
}

// ValidateCredential validates a credential JWT, resolving its issuer. Validation failures are reported
// in the result; the error is only set for invalid options.
func (b *Binding) ValidateCredential(ctx context.Context, req *CredentialRequest) (*CredentialResult, error) {
	if err := b.ValidateRequest(req); err != nil {
		return nil, err
	}

	opts, err := b.CredentialOptions(req.Options)
	if err != nil {
		return nil, err
	}

	decoded, err := b.credentials.ValidateWithResolver(ctx, req.Credential, opts)
	if err != nil {
		logger.Debug("credential validation failed", log.WithError(err))
	}

	return NewCredentialResult(decoded, err), nil
}

// ValidatePresentation validates a presentation JWT, resolving its holder and credential issuers.
func (b *Binding) ValidatePresentation(ctx context.Context,
	req *PresentationRequest) (*PresentationResult, error) {
	if err := b.ValidateRequest(req); err != nil {
		return nil, err
	}

	opts, err := b.PresentationOptions(req.Options)
	if err != nil {
		return nil, err
	}

	decoded, err := b.presentations.ValidateWithResolver(ctx, req.Presentation, opts)
	if err != nil {
		logger.Debug("presentation validation failed", log.WithError(err))
	}

	return NewPresentationResult(decoded, err), nil
}

// ValidateCredentialJSON is ValidateCredential over a JSON encoded CredentialRequest.
func (b *Binding) ValidateCredentialJSON(ctx context.Context, request []byte) ([]byte, error) {
	var req CredentialRequest
	if err := json.Unmarshal(request, &req); err != nil {
		return nil, fmt.Errorf("decode credential request: %w", err)
	}

	res, err := b.ValidateCredential(ctx, &req)
	if err != nil {
		return nil, err
	}

	return json.Marshal(res)
}

// ValidatePresentationJSON is ValidatePresentation over a JSON encoded PresentationRequest.
func (b *Binding) ValidatePresentationJSON(ctx context.Context, request []byte) ([]byte, error) {
	var req PresentationRequest
	if err := json.Unmarshal(request, &req); err != nil {
		return nil, fmt.Errorf("decode presentation request: %w", err)
	}

	res, err := b.ValidatePresentation(ctx, &req)
	if err != nil {
		return nil, err
	}

	return json.Marshal(res)
}

// CheckStructure checks a credential in JSON form.
func (b *Binding) CheckStructure(credential []byte) error {
	return vc.CheckCredentialStructure(credential)
}

// CheckPresentationStructure checks a presentation in JSON form.
func (b *Binding) CheckPresentationStructure(presentation []byte) error {
	return verifypresentation.CheckStructure(presentation)
}

// ExtractIssuer returns the issuer DID of a credential JWT without verifying it.
func (b *Binding) ExtractIssuer(token string) (string, error) {
	return verifycredential.ExtractIssuer(token)
}

// ExtractHolder returns the holder DID of a presentation JWT without verifying it.
func (b *Binding) ExtractHolder(token string) (string, error) {
	return verifypresentation.ExtractHolder(token)
}
