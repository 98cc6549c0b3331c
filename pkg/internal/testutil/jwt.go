/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package testutil

import (
	"crypto/ed25519"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/doc/jose"
)

type SignedClaimsJWTResult struct {
	JWT               string
	Resolver          *did.StaticResolver
	Key               *DIDKey
	VerMethodDIDKeyID string
}

// SignedClaimsJWT signs claims with a fresh Ed25519 key of did:example:abc.
func SignedClaimsJWT(t *testing.T, claims interface{}) *SignedClaimsJWTResult {
	t.Helper()

	key := NewDIDKey(t, "did:example:abc")

	return &SignedClaimsJWTResult{
		JWT:               SignedClaimsJWTWithExistingPrivateKey(t, key.KeyID, key.PrivateKey, claims),
		Resolver:          did.NewStaticResolver(key.Doc),
		Key:               key,
		VerMethodDIDKeyID: key.KeyID,
	}
}

func SignedClaimsJWTWithExistingPrivateKey(
	t *testing.T, verMethodDIDKeyID string, priv ed25519.PrivateKey, claims interface{}) string {
	t.Helper()

	return SignedClaimsJWTWithHeaders(t, priv, jose.Headers{jose.HeaderKeyID: verMethodDIDKeyID}, claims)
}

func SignedClaimsJWTWithHeaders(t *testing.T, priv ed25519.PrivateKey, headers jose.Headers,
	claims interface{}) string {
	t.Helper()

	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	headers = headers.Clone()
	if _, ok := headers.Type(); !ok {
		headers[jose.HeaderType] = "JWT"
	}

	jws, err := jose.NewJWS(headers, nil, payload, jose.NewEd25519Signer(priv, ""))
	require.NoError(t, err)

	token, err := jws.SerializeCompact(false)
	require.NoError(t, err)

	return token
}
