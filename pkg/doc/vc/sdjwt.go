/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vc

import (
	"crypto"
	_ "crypto/sha256" // register SHA-256
	_ "crypto/sha512" // register SHA-384 and SHA-512
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gojose "github.com/go-jose/go-jose/v3"
	afgjwt "github.com/hyperledger/aries-framework-go/component/models/jwt"
	"github.com/hyperledger/aries-framework-go/component/models/sdjwt/common"
	"github.com/samber/lo"

	"github.com/trustbloc/vc-verifier/pkg/doc/jose"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

const (
	// SDAlgorithmKey is the claim naming the disclosure digest algorithm.
	SDAlgorithmKey = common.SDAlgorithmKey
	// SDKey is the claim holding disclosure digests.
	SDKey = common.SDKey
	// CNFKey is the confirmation claim carrying the holder key.
	CNFKey = common.CNFKey

	// KeyBindingJWTType is the "typ" of key binding JWTs.
	KeyBindingJWTType = "kb+jwt"

	// ArrayElementDigestKey marks an array element replaced by a disclosure digest.
	ArrayElementDigestKey = "..."

	defaultSDAlg = "sha-256"
)

// SDJWT holds the issuer-signed JWT, the disclosures and the key binding JWT (HolderVerification)
// of an SD-JWT in combined format.
type SDJWT = common.CombinedFormatForPresentation

// IsSDJWT reports whether token is in combined format.
func IsSDJWT(token string) bool {
	return strings.Contains(token, common.CombinedFormatSeparator)
}

// ParseCombinedFormat splits "jwt~d1~d2~[kb-jwt]" into its parts. The issuance form "jwt~d1~d2" without
// trailing separator is accepted as well.
func ParseCombinedFormat(combined string) *SDJWT {
	sd := common.ParseCombinedFormatForPresentation(combined)

	if sd.HolderVerification != "" && !jose.IsCompactJWS(sd.HolderVerification) {
		issuance := common.ParseCombinedFormatForIssuance(combined)

		return &SDJWT{SDJWT: issuance.SDJWT, Disclosures: issuance.Disclosures}
	}

	return sd
}

// EncodeDisclosure creates an object property disclosure for name/value with the given salt.
func EncodeDisclosure(salt, name string, value interface{}) (string, error) {
	return encodeDisclosure([]interface{}{salt, name, value})
}

// EncodeArrayElementDisclosure creates an array element disclosure with the given salt.
func EncodeArrayElementDisclosure(salt string, value interface{}) (string, error) {
	return encodeDisclosure([]interface{}{salt, value})
}

func encodeDisclosure(parts []interface{}) (string, error) {
	b, err := json.Marshal(parts)
	if err != nil {
		return "", fmt.Errorf("marshal disclosure: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

// DisclosureDigest calculates the base64url digest of a disclosure.
func DisclosureDigest(hash crypto.Hash, disclosure string) (string, error) {
	digest, err := common.GetHash(hash, disclosure)
	if err != nil {
		return "", validation.Errorf(validation.UnsupportedAlgorithm, "disclosure digest: %w", err)
	}

	return digest, nil
}

// DigestHash returns the hash named by the "_sd_alg" claim. SHA-256 applies when the claim is absent.
func DigestHash(claims map[string]interface{}) (crypto.Hash, error) {
	raw, ok := claims[SDAlgorithmKey]
	if !ok {
		return crypto.SHA256, nil
	}

	sdAlg, ok := raw.(string)
	if !ok {
		return 0, validation.Errorf(validation.CredentialStructure, "%s must be a string", SDAlgorithmKey)
	}

	hash, err := common.GetCryptoHash(sdAlg)
	if err != nil {
		return 0, validation.NewError(validation.UnsupportedAlgorithm, err)
	}

	return hash, nil
}

// DiscloseClaims checks every disclosure against the digests of claims and returns a copy of claims
// with disclosed values restored and all selective disclosure bookkeeping removed.
func DiscloseClaims(claims map[string]interface{}, disclosures []string) (map[string]interface{}, error) {
	hash, err := DigestHash(claims)
	if err != nil {
		return nil, err
	}

	if dups := lo.FindDuplicates(disclosures); len(dups) > 0 {
		return nil, validation.Errorf(validation.CredentialStructure, "duplicate disclosures found %v", dups)
	}

	disclosureClaims, err := common.GetDisclosureClaims(disclosures, hash)
	if err != nil {
		return nil, validation.Errorf(validation.EncodingError, "decode disclosures: %w", err)
	}

	sdClaims := lo.Assign(claims)
	if _, ok := sdClaims[SDAlgorithmKey]; !ok {
		sdClaims[SDAlgorithmKey] = defaultSDAlg
	}

	elements, err := arrayElements(disclosureClaims, hash)
	if err != nil {
		return nil, err
	}

	objectDisclosures := lo.Filter(disclosures, func(d string, _ int) bool {
		_, isElement := elements[d]

		return !isElement
	})

	err = common.VerifyDisclosuresInSDJWT(objectDisclosures, &afgjwt.JSONWebToken{Payload: sdClaims})
	if err != nil {
		return nil, validation.NewError(validation.CredentialStructure, err)
	}

	used := map[string]bool{}

	withElements, err := discloseArrayElements(sdClaims, elements, used)
	if err != nil {
		return nil, err
	}

	for _, element := range elements {
		if !used[element.digest] && !referencedByDisclosure(element.digest, disclosures) {
			return nil, validation.Errorf(validation.CredentialStructure,
				"disclosure digest '%s' not found in SD-JWT disclosure digests", element.digest)
		}
	}

	result, err := common.GetDisclosedClaims(disclosureClaims, withElements.(map[string]interface{}))
	if err != nil {
		return nil, validation.NewError(validation.CredentialStructure, err)
	}

	delete(result, SDAlgorithmKey)

	return result, nil
}

// referencedByDisclosure reports whether digest is nested in the value of one of the disclosures.
func referencedByDisclosure(digest string, disclosures []string) bool {
	return lo.SomeBy(disclosures, func(d string) bool {
		decoded, err := base64.RawURLEncoding.DecodeString(d)

		return err == nil && strings.Contains(string(decoded), digest)
	})
}

type arrayElement struct {
	digest string
	value  interface{}
}

// arrayElements indexes the array element disclosures by disclosure.
func arrayElements(claims []*common.DisclosureClaim, hash crypto.Hash) (map[string]*arrayElement, error) {
	elements := map[string]*arrayElement{}

	for _, dc := range claims {
		if dc.Type != common.DisclosureClaimTypeArrayElement {
			continue
		}

		digest, err := DisclosureDigest(hash, dc.Disclosure)
		if err != nil {
			return nil, err
		}

		elements[dc.Disclosure] = &arrayElement{digest: digest, value: dc.Value}
	}

	return elements, nil
}

// discloseArrayElements replaces {"...": digest} array elements by their disclosed values and drops
// the undisclosed ones.
func discloseArrayElements(v interface{}, elements map[string]*arrayElement,
	used map[string]bool) (interface{}, error) {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))

		for k, value := range t {
			disclosed, err := discloseArrayElements(value, elements, used)
			if err != nil {
				return nil, err
			}

			out[k] = disclosed
		}

		return out, nil
	case []interface{}:
		out := make([]interface{}, 0, len(t))

		for _, item := range t {
			digest, isDigest := arrayElementDigest(item)
			if !isDigest {
				disclosed, err := discloseArrayElements(item, elements, used)
				if err != nil {
					return nil, err
				}

				out = append(out, disclosed)

				continue
			}

			if used[digest] {
				return nil, validation.Errorf(validation.CredentialStructure,
					"digest '%s' has been included in more than one place", digest)
			}

			element, found := lo.Find(lo.Values(elements), func(e *arrayElement) bool {
				return e.digest == digest
			})
			if !found {
				continue
			}

			used[digest] = true

			disclosed, err := discloseArrayElements(element.value, elements, used)
			if err != nil {
				return nil, err
			}

			out = append(out, disclosed)
		}

		return out, nil
	default:
		return v, nil
	}
}

func arrayElementDigest(v interface{}) (string, bool) {
	m, ok := v.(map[string]interface{})
	if !ok || len(m) != 1 {
		return "", false
	}

	digest, ok := m[ArrayElementDigestKey].(string)

	return digest, ok
}

// KeyBindingExpectation holds the expected binding of a key binding JWT.
type KeyBindingExpectation struct {
	Nonce    string
	Audience string
	Clock    validation.Clock
	// MaxAge bounds how old the key binding "iat" may be. Zero disables the check.
	MaxAge time.Duration
}

type keyBindingClaims struct {
	Nonce    string      `json:"nonce"`
	Audience interface{} `json:"aud"`
	IssuedAt json.Number `json:"iat"`
	SDHash   string      `json:"sd_hash,omitempty"`
}

// KeyBindingInput returns the part of the combined format covered by the key binding "sd_hash":
// the issuer JWT and the disclosures, each followed by the separator.
func KeyBindingInput(sd *SDJWT) string {
	issuance := &common.CombinedFormatForIssuance{SDJWT: sd.SDJWT, Disclosures: sd.Disclosures}

	return issuance.Serialize() + common.CombinedFormatSeparator
}

// VerifyKeyBinding verifies the key binding JWT of sd against the holder key in the issuer claims' "cnf".
func VerifyKeyBinding(sd *SDJWT, issuerClaims map[string]interface{}, verifier jose.SignatureVerifier,
	expected *KeyBindingExpectation) error {
	if sd.HolderVerification == "" {
		return validation.Errorf(validation.BindingError, "key binding JWT is missing")
	}

	holderKey, err := confirmationKey(issuerClaims)
	if err != nil {
		return err
	}

	kb, err := jose.Decode(sd.HolderVerification)
	if err != nil {
		return err
	}

	if typ, _ := kb.Headers().Type(); typ != KeyBindingJWTType {
		return validation.Errorf(validation.HeaderError, "key binding JWT typ must be %s", KeyBindingJWTType)
	}

	_, err = kb.Verify(jose.KeyResolverFunc(func(jose.Headers) (*gojose.JSONWebKey, error) {
		return holderKey, nil
	}), verifier)
	if err != nil {
		return err
	}

	var claims keyBindingClaims

	if err = json.Unmarshal(kb.Payload, &claims); err != nil {
		return validation.Errorf(validation.EncodingError, "unmarshal key binding claims: %w", err)
	}

	if claims.SDHash != "" {
		if err = checkSDHash(sd, issuerClaims, claims.SDHash); err != nil {
			return err
		}
	}

	return checkKeyBindingExpectation(&claims, expected)
}

func checkSDHash(sd *SDJWT, issuerClaims map[string]interface{}, sdHash string) error {
	hash, err := DigestHash(issuerClaims)
	if err != nil {
		return err
	}

	expected, err := DisclosureDigest(hash, KeyBindingInput(sd))
	if err != nil {
		return err
	}

	if sdHash != expected {
		return validation.Errorf(validation.BindingError, "key binding sd_hash does not match")
	}

	return nil
}

func checkKeyBindingExpectation(claims *keyBindingClaims, expected *KeyBindingExpectation) error {
	if expected == nil {
		return nil
	}

	if expected.Nonce != "" && claims.Nonce != expected.Nonce {
		return validation.Errorf(validation.BindingError, "key binding nonce %q does not match expected %q",
			claims.Nonce, expected.Nonce)
	}

	if expected.Audience != "" {
		aud, err := stringOrArray(claims.Audience)
		if err != nil || !lo.Contains(aud, expected.Audience) {
			return validation.Errorf(validation.BindingError, "key binding audience does not contain %q",
				expected.Audience)
		}
	}

	if expected.MaxAge > 0 {
		if expected.Clock == nil {
			return validation.Errorf(validation.BindingError, "key binding max age requires a clock")
		}

		iat, err := claims.IssuedAt.Int64()
		if err != nil {
			return validation.Errorf(validation.BindingError, "key binding iat is missing")
		}

		if expected.Clock.Now().Sub(time.Unix(iat, 0)) > expected.MaxAge {
			return validation.Errorf(validation.BindingError, "key binding JWT is too old")
		}
	}

	return nil
}

func confirmationKey(claims map[string]interface{}) (*gojose.JSONWebKey, error) {
	cnf, err := common.GetCNF(claims)
	if err != nil {
		return nil, validation.NewError(validation.KeyNotFound, err)
	}

	jwkMap, ok := cnf["jwk"].(map[string]interface{})
	if !ok {
		return nil, validation.Errorf(validation.KeyNotFound, "%s claim has no jwk", CNFKey)
	}

	jwkBytes, err := json.Marshal(jwkMap)
	if err != nil {
		return nil, validation.Errorf(validation.EncodingError, "marshal holder jwk: %w", err)
	}

	var jwk gojose.JSONWebKey

	if err = jwk.UnmarshalJSON(jwkBytes); err != nil {
		return nil, validation.Errorf(validation.EncodingError, "unmarshal holder jwk: %w", err)
	}

	return &jwk, nil
}
