/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package binding

import (
	"fmt"
	"time"

	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc/statustype"
	"github.com/trustbloc/vc-verifier/pkg/service/verifycredential"
	"github.com/trustbloc/vc-verifier/pkg/service/verifypresentation"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

// KeyBindingOptions is the JSON form of an expected SD-JWT key binding.
type KeyBindingOptions struct {
	Nonce         string `json:"nonce" validate:"required"`
	Audience      string `json:"audience" validate:"required"`
	MaxAgeSeconds int64  `json:"maxAgeSeconds,omitempty" validate:"gte=0"`
}

// CredentialOptions is the JSON form of verifycredential.Options.
type CredentialOptions struct {
	ExpectedIssuer   string `json:"expectedIssuer,omitempty" validate:"omitempty,startswith=did:"`
	AllowedDIDMethod string `json:"allowedDIDMethod,omitempty" validate:"omitempty,alphanum"`
	// MethodScope is one of "any", "assertionMethod" or "authentication".
	MethodScope   string `json:"methodScope,omitempty" validate:"omitempty,oneof=any assertionMethod authentication"`
	LeewaySeconds int64  `json:"leewaySeconds,omitempty" validate:"gte=0"`

	// Now overrides the verifier clock.
	Now            *time.Time `json:"now,omitempty"`
	LatestIssuance *time.Time `json:"latestIssuance,omitempty"`
	EarliestExpiry *time.Time `json:"earliestExpiry,omitempty"`
	SkipTemporal   bool       `json:"skipTemporal,omitempty"`

	StatusCheck statustype.StatusCheck `json:"statusCheck,omitempty"`
	// StatusScope is one of "all", "validityTimeframe" or "revocation".
	StatusScope string              `json:"statusScope,omitempty" validate:"omitempty,oneof=all validityTimeframe revocation"`
	FailFast    validation.FailFast `json:"failFast,omitempty"`

	KeyBinding *KeyBindingOptions `json:"keyBinding,omitempty" validate:"omitempty"`
}

// PresentationOptions is the JSON form of verifypresentation.Options.
type PresentationOptions struct {
	Challenge     string     `json:"challenge,omitempty"`
	Domain        string     `json:"domain,omitempty"`
	LeewaySeconds int64      `json:"leewaySeconds,omitempty" validate:"gte=0"`
	Now           *time.Time `json:"now,omitempty"`
	MethodScope   string     `json:"methodScope,omitempty" validate:"omitempty,oneof=any assertionMethod authentication"`

	SubjectHolderRelationship verifypresentation.SubjectHolderRelationship `json:"subjectHolderRelationship,omitempty"`
	SkipCredentials           bool                                         `json:"skipCredentials,omitempty"`
	AllowUnsignedCredentials  bool                                         `json:"allowUnsignedCredentials,omitempty"`

	// Credential applies to every embedded credential.
	Credential *CredentialOptions `json:"credential,omitempty" validate:"omitempty"`

	FailFast validation.FailFast `json:"failFast,omitempty"`
}

func parseMethodScope(name string) (did.MethodScope, error) {
	switch name {
	case "", "any":
		return did.ScopeAny, nil
	case "assertionMethod":
		return did.ScopeAssertionMethod, nil
	case "authentication":
		return did.ScopeAuthentication, nil
	default:
		return did.ScopeAny, fmt.Errorf("unsupported method scope: %s", name)
	}
}

func parseCheckScope(name string) (statustype.CheckScope, error) {
	switch name {
	case "", "all":
		return statustype.ScopeAll, nil
	case "validityTimeframe":
		return statustype.ScopeValidityTimeframe, nil
	case "revocation":
		return statustype.ScopeRevocation, nil
	default:
		return statustype.ScopeAll, fmt.Errorf("unsupported status scope: %s", name)
	}
}

func clockFor(now *time.Time, fallback validation.Clock) validation.Clock {
	if now != nil {
		return validation.FixedClock(*now)
	}

	return fallback
}

// Options converts the JSON options. clock is used when Now is not set; defaultLeeway is used when
// LeewaySeconds is zero.
func (o *CredentialOptions) Options(clock validation.Clock, defaultLeeway time.Duration) (*verifycredential.Options, error) {
	if o == nil {
		return &verifycredential.Options{Clock: clock, Leeway: defaultLeeway}, nil
	}

	scope, err := parseMethodScope(o.MethodScope)
	if err != nil {
		return nil, err
	}

	statusScope, err := parseCheckScope(o.StatusScope)
	if err != nil {
		return nil, err
	}

	opts := &verifycredential.Options{
		Clock:            clockFor(o.Now, clock),
		Leeway:           defaultLeeway,
		LatestIssuance:   o.LatestIssuance,
		EarliestExpiry:   o.EarliestExpiry,
		SkipTemporal:     o.SkipTemporal,
		ExpectedIssuer:   o.ExpectedIssuer,
		AllowedDIDMethod: o.AllowedDIDMethod,
		MethodScope:      scope,
		StatusCheck:      o.StatusCheck,
		StatusScope:      statusScope,
		FailFast:         o.FailFast,
	}

	if o.LeewaySeconds > 0 {
		opts.Leeway = time.Duration(o.LeewaySeconds) * time.Second
	}

	if o.KeyBinding != nil {
		opts.KeyBinding = &vc.KeyBindingExpectation{
			Nonce:    o.KeyBinding.Nonce,
			Audience: o.KeyBinding.Audience,
			Clock:    opts.Clock,
			MaxAge:   time.Duration(o.KeyBinding.MaxAgeSeconds) * time.Second,
		}
	}

	return opts, nil
}

// Options converts the JSON options. Embedded credentials inherit the presentation clock and leeway
// unless their own options override them.
func (o *PresentationOptions) Options(clock validation.Clock,
	defaultLeeway time.Duration) (*verifypresentation.Options, error) {
	if o == nil {
		return &verifypresentation.Options{
			Clock:      clock,
			Leeway:     defaultLeeway,
			Credential: verifycredential.Options{Leeway: defaultLeeway},
		}, nil
	}

	scope, err := parseMethodScope(o.MethodScope)
	if err != nil {
		return nil, err
	}

	opts := &verifypresentation.Options{
		Clock:                     clockFor(o.Now, clock),
		Leeway:                    defaultLeeway,
		Domain:                    o.Domain,
		Challenge:                 o.Challenge,
		MethodScope:               scope,
		SubjectHolderRelationship: o.SubjectHolderRelationship,
		SkipCredentials:           o.SkipCredentials,
		AllowUnsignedCredentials:  o.AllowUnsignedCredentials,
		FailFast:                  o.FailFast,
	}

	if o.LeewaySeconds > 0 {
		opts.Leeway = time.Duration(o.LeewaySeconds) * time.Second
	}

	credOpts, err := o.Credential.Options(nil, opts.Leeway)
	if err != nil {
		return nil, fmt.Errorf("credential options: %w", err)
	}

	opts.Credential = *credOpts

	return opts, nil
}
