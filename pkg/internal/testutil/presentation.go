/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package testutil

import (
	"testing"

	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
)

type VPOpt func(claims map[string]interface{})

func WithChallenge(challenge string) VPOpt {
	return func(claims map[string]interface{}) {
		claims["nonce"] = challenge
	}
}

func WithDomain(domain string) VPOpt {
	return func(claims map[string]interface{}) {
		claims["aud"] = domain
	}
}

// PresentationClaims returns JWT claims of a presentation by holder carrying the given credentials.
func PresentationClaims(holder string, credentials []interface{}, opts ...VPOpt) map[string]interface{} {
	claims := map[string]interface{}{
		"iss": holder,
		"jti": "urn:uuid:3978344f-8596-4c3a-a978-8fcaba3903c5",
		"vp": map[string]interface{}{
			"@context":             []interface{}{vc.ContextV1},
			"type":                 []interface{}{vc.TypeVerifiablePresentation},
			"verifiableCredential": credentials,
		},
	}

	for _, opt := range opts {
		opt(claims)
	}

	return claims
}

// SignedVP signs a presentation of credentials with the holder key.
func SignedVP(t *testing.T, holder *DIDKey, credentials []interface{}, opts ...VPOpt) string {
	t.Helper()

	return SignedClaimsJWTWithExistingPrivateKey(t, holder.KeyID, holder.PrivateKey,
		PresentationClaims(holder.DID, credentials, opts...))
}
