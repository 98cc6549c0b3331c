/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	gojose "github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/json"
	"github.com/multiformats/go-multibase"
)

// Verification method types.
const (
	Ed25519VerificationKey2018 = "Ed25519VerificationKey2018"
	Ed25519VerificationKey2020 = "Ed25519VerificationKey2020"
	JSONWebKey2020             = "JsonWebKey2020"
	JSONWebKey                 = "JsonWebKey"
	Multikey                   = "Multikey"
)

// ed25519 public key multicodec prefix (varint 0xed).
var ed25519MulticodecPrefix = []byte{0xed, 0x01} //nolint:gochecknoglobals

// JSONWebKey returns the verification method's public key as a JWK.
func (vm *VerificationMethod) JSONWebKey() (*gojose.JSONWebKey, error) {
	switch {
	case vm.PublicKeyJwk != nil:
		return jwkFromMap(vm.PublicKeyJwk, vm.ID)
	case len(vm.Value) > 0:
		return vm.rawKey(vm.Value)
	default:
		return nil, fmt.Errorf("verification method %s has no public key", vm.ID)
	}
}

func (vm *VerificationMethod) rawKey(value []byte) (*gojose.JSONWebKey, error) {
	if len(value) == ed25519.PublicKeySize+len(ed25519MulticodecPrefix) &&
		value[0] == ed25519MulticodecPrefix[0] && value[1] == ed25519MulticodecPrefix[1] {
		value = value[len(ed25519MulticodecPrefix):]
	}

	switch vm.Type {
	case Ed25519VerificationKey2018, Ed25519VerificationKey2020, Multikey:
	default:
		return nil, fmt.Errorf("verification method %s: unsupported key type %s", vm.ID, vm.Type)
	}

	if len(value) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("verification method %s: invalid ed25519 key size %d", vm.ID, len(value))
	}

	return &gojose.JSONWebKey{
		Key:       ed25519.PublicKey(value),
		KeyID:     vm.ID,
		Algorithm: "EdDSA",
	}, nil
}

func jwkFromMap(jwkMap map[string]interface{}, kid string) (*gojose.JSONWebKey, error) {
	if len(jwkMap) == 0 {
		return nil, errors.New("publicKeyJwk is empty")
	}

	if _, hasPrivate := jwkMap["d"]; hasPrivate {
		return nil, errors.New("publicKeyJwk must not contain private key material")
	}

	jwkBytes, err := json.Marshal(jwkMap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal publicKeyJwk, cause: %w", err)
	}

	var jwk gojose.JSONWebKey

	if err = jwk.UnmarshalJSON(jwkBytes); err != nil {
		return nil, fmt.Errorf("unmarshal JWK: %w", err)
	}

	if jwk.KeyID == "" {
		jwk.KeyID = kid
	}

	return &jwk, nil
}

// EncodeEd25519Multibase encodes an Ed25519 public key as base58btc multibase with the multicodec prefix.
func EncodeEd25519Multibase(pub ed25519.PublicKey) (string, error) {
	value := append(append([]byte{}, ed25519MulticodecPrefix...), pub...)

	return multibase.Encode(multibase.Base58BTC, value)
}
