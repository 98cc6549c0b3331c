/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vc

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/vc-verifier/pkg/doc/jose"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

func TestParseCombinedFormat(t *testing.T) {
	sd := ParseCombinedFormat("a.b.c")
	require.Equal(t, "a.b.c", sd.SDJWT)
	require.Empty(t, sd.Disclosures)
	require.Empty(t, sd.HolderVerification)

	sd = ParseCombinedFormat("a.b.c~d1~d2~")
	require.Equal(t, []string{"d1", "d2"}, sd.Disclosures)
	require.Empty(t, sd.HolderVerification)
	require.Equal(t, "a.b.c~d1~d2~", sd.Serialize())
	require.Equal(t, "a.b.c~d1~d2~", KeyBindingInput(sd))

	sd = ParseCombinedFormat("a.b.c~d1~x.y.z")
	require.Equal(t, []string{"d1"}, sd.Disclosures)
	require.Equal(t, "x.y.z", sd.HolderVerification)
	require.Equal(t, "a.b.c~d1~", KeyBindingInput(sd))

	sd = ParseCombinedFormat("a.b.c~d1~d2")
	require.Equal(t, []string{"d1", "d2"}, sd.Disclosures)
	require.Empty(t, sd.HolderVerification)

	sd = ParseCombinedFormat("a.b.c~x.y.z")
	require.Empty(t, sd.Disclosures)
	require.Equal(t, "a.b.c~", KeyBindingInput(sd))
}

func digestOf(t *testing.T, hash crypto.Hash, disclosure string) string {
	t.Helper()

	digest, err := DisclosureDigest(hash, disclosure)
	require.NoError(t, err)

	return digest
}

func TestDiscloseClaims(t *testing.T) {
	given, err := EncodeDisclosure("salt1", "given_name", "Alice")
	require.NoError(t, err)

	degree, err := EncodeDisclosure("salt2", "degree", map[string]interface{}{"type": "BachelorDegree"})
	require.NoError(t, err)

	undisclosed, err := EncodeDisclosure("salt3", "secret", "hidden")
	require.NoError(t, err)

	claims := map[string]interface{}{
		"iss":          "did:example:issuer",
		SDAlgorithmKey: "sha-256",
		"vc": map[string]interface{}{
			"credentialSubject": map[string]interface{}{
				"id": "did:example:holder",
				SDKey: []interface{}{
					digestOf(t, crypto.SHA256, given),
					digestOf(t, crypto.SHA256, degree),
					digestOf(t, crypto.SHA256, undisclosed),
				},
			},
		},
	}

	disclosed, err := DiscloseClaims(claims, []string{given, degree})
	require.NoError(t, err)
	require.NotContains(t, disclosed, SDAlgorithmKey)

	subject := disclosed["vc"].(map[string]interface{})["credentialSubject"].(map[string]interface{})
	require.Equal(t, "Alice", subject["given_name"])
	require.Equal(t, map[string]interface{}{"type": "BachelorDegree"}, subject["degree"])
	require.NotContains(t, subject, SDKey)
	require.NotContains(t, subject, "secret")

	t.Run("unknown disclosure", func(t *testing.T) {
		other, err := EncodeDisclosure("salt4", "other", "x")
		require.NoError(t, err)

		_, err = DiscloseClaims(claims, []string{other})
		require.True(t, validation.IsKind(err, validation.CredentialStructure))
	})

	t.Run("duplicate disclosure", func(t *testing.T) {
		_, err := DiscloseClaims(claims, []string{given, given})
		require.True(t, validation.IsKind(err, validation.CredentialStructure))
	})

	t.Run("unsupported digest algorithm", func(t *testing.T) {
		_, err := DiscloseClaims(map[string]interface{}{SDAlgorithmKey: "md5"}, nil)
		require.True(t, validation.IsKind(err, validation.UnsupportedAlgorithm))
	})

	t.Run("sha-512", func(t *testing.T) {
		c := map[string]interface{}{
			SDAlgorithmKey: "sha-512",
			SDKey:          []interface{}{digestOf(t, crypto.SHA512, given)},
		}

		d, err := DiscloseClaims(c, []string{given})
		require.NoError(t, err)
		require.Equal(t, "Alice", d["given_name"])
	})

	t.Run("sd_alg defaults to sha-256", func(t *testing.T) {
		c := map[string]interface{}{
			SDKey: []interface{}{digestOf(t, crypto.SHA256, given)},
		}

		d, err := DiscloseClaims(c, []string{given})
		require.NoError(t, err)
		require.Equal(t, "Alice", d["given_name"])
	})

	t.Run("malformed disclosure", func(t *testing.T) {
		for _, bad := range []string{
			base64.RawURLEncoding.EncodeToString([]byte(`{"salt":"name"}`)),
			"not base64!",
		} {
			_, err := DiscloseClaims(claims, []string{bad})
			require.True(t, validation.IsKind(err, validation.EncodingError), bad)
		}
	})
}

func TestDiscloseClaims_ArrayElements(t *testing.T) {
	de, err := EncodeArrayElementDisclosure("salt1", "DE")
	require.NoError(t, err)

	fr, err := EncodeArrayElementDisclosure("salt2", "FR")
	require.NoError(t, err)

	hidden, err := EncodeArrayElementDisclosure("salt3", "US")
	require.NoError(t, err)

	claims := map[string]interface{}{
		SDAlgorithmKey: "sha-256",
		"nationalities": []interface{}{
			map[string]interface{}{ArrayElementDigestKey: digestOf(t, crypto.SHA256, de)},
			"IT",
			map[string]interface{}{ArrayElementDigestKey: digestOf(t, crypto.SHA256, hidden)},
			map[string]interface{}{ArrayElementDigestKey: digestOf(t, crypto.SHA256, fr)},
		},
	}

	tests := []struct {
		name        string
		disclosures []string
		expected    []interface{}
	}{
		{
			name:        "all disclosed",
			disclosures: []string{de, fr, hidden},
			expected:    []interface{}{"DE", "IT", "US", "FR"},
		},
		{
			name:        "some disclosed",
			disclosures: []string{fr},
			expected:    []interface{}{"IT", "FR"},
		},
		{
			name:     "none disclosed",
			expected: []interface{}{"IT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			disclosed, err := DiscloseClaims(claims, tt.disclosures)
			require.NoError(t, err)
			require.Equal(t, tt.expected, disclosed["nationalities"])
			require.NotContains(t, disclosed, SDAlgorithmKey)
		})
	}

	t.Run("element not referenced", func(t *testing.T) {
		other, err := EncodeArrayElementDisclosure("salt4", "ES")
		require.NoError(t, err)

		_, err = DiscloseClaims(claims, []string{other})
		require.True(t, validation.IsKind(err, validation.CredentialStructure))
	})

	t.Run("digest referenced twice", func(t *testing.T) {
		twice := map[string]interface{}{
			"a": []interface{}{map[string]interface{}{ArrayElementDigestKey: digestOf(t, crypto.SHA256, de)}},
			"b": []interface{}{map[string]interface{}{ArrayElementDigestKey: digestOf(t, crypto.SHA256, de)}},
		}

		_, err := DiscloseClaims(twice, []string{de})
		require.True(t, validation.IsKind(err, validation.CredentialStructure))
	})
}

func signJWT(t *testing.T, priv ed25519.PrivateKey, headers jose.Headers, claims interface{}) string {
	t.Helper()

	payload, err := json.Marshal(claims)
	require.NoError(t, err)

	jws, err := jose.NewJWS(headers, nil, payload, jose.NewEd25519Signer(priv, ""))
	require.NoError(t, err)

	s, err := jws.SerializeCompact(false)
	require.NoError(t, err)

	return s
}

func TestVerifyKeyBinding(t *testing.T) {
	holderPub, holderPriv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	issuerClaims := map[string]interface{}{
		CNFKey: map[string]interface{}{
			"jwk": map[string]interface{}{
				"kty": "OKP",
				"crv": "Ed25519",
				"x":   base64.RawURLEncoding.EncodeToString(holderPub),
			},
		},
	}

	sd := &SDJWT{SDJWT: "a.b.c", Disclosures: []string{"d1"}}
	sdHash := digestOf(t, crypto.SHA256, KeyBindingInput(sd))

	kbHeaders := jose.Headers{jose.HeaderType: KeyBindingJWTType}
	sd.HolderVerification = signJWT(t, holderPriv, kbHeaders, map[string]interface{}{
		"nonce":   "abc",
		"aud":     "https://verifier.example.com",
		"iat":     now.Add(-time.Minute).Unix(),
		"sd_hash": sdHash,
	})

	expected := &KeyBindingExpectation{
		Nonce:    "abc",
		Audience: "https://verifier.example.com",
		Clock:    validation.FixedClock(now),
		MaxAge:   5 * time.Minute,
	}

	require.NoError(t, VerifyKeyBinding(sd, issuerClaims, jose.DefaultVerifier(), expected))
	require.NoError(t, VerifyKeyBinding(sd, issuerClaims, jose.DefaultVerifier(), nil))

	t.Run("nonce mismatch", func(t *testing.T) {
		e := *expected
		e.Nonce = "xyz"

		err := VerifyKeyBinding(sd, issuerClaims, jose.DefaultVerifier(), &e)
		require.True(t, validation.IsKind(err, validation.BindingError))
	})

	t.Run("audience mismatch", func(t *testing.T) {
		e := *expected
		e.Audience = "https://other.example.com"

		err := VerifyKeyBinding(sd, issuerClaims, jose.DefaultVerifier(), &e)
		require.True(t, validation.IsKind(err, validation.BindingError))
	})

	t.Run("too old", func(t *testing.T) {
		e := *expected
		e.MaxAge = time.Second

		err := VerifyKeyBinding(sd, issuerClaims, jose.DefaultVerifier(), &e)
		require.True(t, validation.IsKind(err, validation.BindingError))
	})

	t.Run("disclosures changed", func(t *testing.T) {
		changed := *sd
		changed.Disclosures = []string{"d2"}

		err := VerifyKeyBinding(&changed, issuerClaims, jose.DefaultVerifier(), expected)
		require.True(t, validation.IsKind(err, validation.BindingError))
	})

	t.Run("signed by another key", func(t *testing.T) {
		_, otherPriv, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		forged := *sd
		forged.HolderVerification = signJWT(t, otherPriv, kbHeaders, map[string]interface{}{"nonce": "abc"})

		err = VerifyKeyBinding(&forged, issuerClaims, jose.DefaultVerifier(), expected)
		require.True(t, validation.IsKind(err, validation.SignatureError))
	})

	t.Run("wrong typ", func(t *testing.T) {
		wrong := *sd
		wrong.HolderVerification = signJWT(t, holderPriv, jose.Headers{jose.HeaderType: "JWT"}, map[string]interface{}{})

		err := VerifyKeyBinding(&wrong, issuerClaims, jose.DefaultVerifier(), expected)
		require.True(t, validation.IsKind(err, validation.HeaderError))
	})

	t.Run("sd_hash uses the sd_alg hash", func(t *testing.T) {
		sha512Claims := map[string]interface{}{
			SDAlgorithmKey: "sha-512",
			CNFKey:         issuerClaims[CNFKey],
		}

		bound := &SDJWT{SDJWT: "a.b.c", Disclosures: []string{"d1"}}
		bound.HolderVerification = signJWT(t, holderPriv, kbHeaders, map[string]interface{}{
			"nonce":   "abc",
			"sd_hash": digestOf(t, crypto.SHA512, KeyBindingInput(bound)),
		})

		require.NoError(t, VerifyKeyBinding(bound, sha512Claims, jose.DefaultVerifier(), nil))

		// the same binding checked as sha-256 no longer matches
		err := VerifyKeyBinding(bound, issuerClaims, jose.DefaultVerifier(), nil)
		require.True(t, validation.IsKind(err, validation.BindingError))
	})

	t.Run("max age without clock", func(t *testing.T) {
		e := *expected
		e.Clock = nil

		err := VerifyKeyBinding(sd, issuerClaims, jose.DefaultVerifier(), &e)
		require.True(t, validation.IsKind(err, validation.BindingError))
	})

	t.Run("missing binding", func(t *testing.T) {
		err := VerifyKeyBinding(&SDJWT{SDJWT: "a.b.c"}, issuerClaims, jose.DefaultVerifier(), expected)
		require.True(t, validation.IsKind(err, validation.BindingError))

		err = VerifyKeyBinding(sd, map[string]interface{}{}, jose.DefaultVerifier(), expected)
		require.True(t, validation.IsKind(err, validation.KeyNotFound))
	})
}
