/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifycredential

import (
	"context"
	"time"

	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/doc/jose"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc/statustype"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

// Options represents options for validate credential.
type Options struct {
	// Clock supplies "now". Defaults to the system clock.
	Clock validation.Clock
	// Leeway is the tolerated clock skew for temporal checks.
	Leeway time.Duration
	// LatestIssuance rejects credentials issued after it. Defaults to now.
	LatestIssuance *time.Time
	// EarliestExpiry rejects credentials expiring before it. Defaults to now.
	EarliestExpiry *time.Time
	SkipTemporal   bool

	// ExpectedIssuer, when set, must equal the "iss" claim.
	ExpectedIssuer string
	// AllowedDIDMethod, when set, restricts the DID method of "iss".
	AllowedDIDMethod string
	// MethodScope restricts which verification relationships may hold the signing key.
	MethodScope did.MethodScope

	StatusCheck statustype.StatusCheck
	StatusScope statustype.CheckScope
	FailFast    validation.FailFast

	// KeyBinding, when set, requires a valid SD-JWT key binding JWT matching the expectation.
	KeyBinding *vc.KeyBindingExpectation
}

// DecodedCredential is a credential whose signature verified.
type DecodedCredential struct {
	Credential *vc.Credential
	Headers    jose.Headers
	KeyID      string
	// Status is Unchecked when no status was consulted. Revoked and Suspended are outcomes, not errors.
	Status statustype.Outcome
	// Disclosed is true when the token was an SD-JWT.
	Disclosed bool
}

type ServiceInterface interface {
	Validate(ctx context.Context, token string, issuer *did.Doc, opts *Options) (*DecodedCredential, error)
	ValidateWithResolver(ctx context.Context, token string, opts *Options) (*DecodedCredential, error)
	CheckStatus(ctx context.Context, credential *vc.Credential, issuer *did.Doc,
		opts *Options) (statustype.Outcome, error)
}
