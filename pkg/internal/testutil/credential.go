/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package testutil

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
)

// DIDKey is an Ed25519 key listed as assertion and authentication method of a DID document.
type DIDKey struct {
	DID        string
	KeyID      string
	PrivateKey ed25519.PrivateKey
	Doc        *did.Doc
}

func NewDIDKey(t *testing.T, didID string) *DIDKey {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	keyID := didID + "#key-1"

	return &DIDKey{
		DID:        didID,
		KeyID:      keyID,
		PrivateKey: priv,
		Doc:        createDIDDoc(t, didID, keyID, pub),
	}
}

func createDIDDoc(t *testing.T, didID, keyID string, pub ed25519.PublicKey) *did.Doc {
	t.Helper()

	vm := did.VerificationMethod{
		ID:         keyID,
		Type:       did.Ed25519VerificationKey2020,
		Controller: didID,
		Value:      pub,
	}

	return &did.Doc{
		Context:            []string{"https://www.w3.org/ns/did/v1"},
		ID:                 didID,
		VerificationMethod: []did.VerificationMethod{vm},
		AssertionMethod:    []did.VerificationMethod{vm},
		Authentication:     []did.VerificationMethod{vm},
	}
}

// CredentialClaims returns JWT claims of a university degree credential issued at issued.
func CredentialClaims(issuer, subject string, issued time.Time) map[string]interface{} {
	return map[string]interface{}{
		"iss": issuer,
		"sub": subject,
		"jti": "https://example.edu/credentials/1872",
		"nbf": issued.Unix(),
		"vc": map[string]interface{}{
			"@context": []interface{}{vc.ContextV1, "https://www.w3.org/2018/credentials/examples/v1"},
			"type":     []interface{}{vc.TypeVerifiableCredential, "UniversityDegreeCredential"},
			"credentialSubject": map[string]interface{}{
				"degree": map[string]interface{}{"type": "BachelorDegree", "name": "Bachelor of Science"},
			},
		},
	}
}

// WithExpiry sets "exp" on credential claims.
func WithExpiry(claims map[string]interface{}, exp time.Time) map[string]interface{} {
	claims["exp"] = exp.Unix()

	return claims
}

// WithStatus sets vc.credentialStatus on credential claims.
func WithStatus(claims map[string]interface{}, status *vc.TypedID) map[string]interface{} {
	vcClaim, _ := claims["vc"].(map[string]interface{})
	vcClaim["credentialStatus"] = status

	return claims
}

// SignedVC signs credential claims with the issuer key.
func SignedVC(t *testing.T, issuer *DIDKey, claims map[string]interface{}) string {
	t.Helper()

	return SignedClaimsJWTWithExistingPrivateKey(t, issuer.KeyID, issuer.PrivateKey, claims)
}
