/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"errors"
	"fmt"
	"math/big"

	gojose "github.com/go-jose/go-jose/v3"

	"github.com/trustbloc/vc-verifier/pkg/validation"
)

// Supported JWS algorithms.
const (
	AlgEdDSA = "EdDSA"
	AlgES256 = "ES256"
	AlgES384 = "ES384"
)

// VerificationInput is everything a signature verifier needs for one signature.
type VerificationInput struct {
	Algorithm    string
	Headers      Headers
	SigningInput []byte
	Signature    []byte
	PublicKey    *gojose.JSONWebKey
}

// SignatureVerifier checks a single signature.
type SignatureVerifier interface {
	Verify(input *VerificationInput) error
}

// SignatureVerifierFunc is a function wrapper for SignatureVerifier.
type SignatureVerifierFunc func(input *VerificationInput) error

// Verify calls f(input).
func (f SignatureVerifierFunc) Verify(input *VerificationInput) error {
	return f(input)
}

// AlgSignatureVerifier defines verifier for particular signature algorithm.
type AlgSignatureVerifier struct {
	Alg      string
	Verifier SignatureVerifier
}

// CompositeAlgSigVerifier dispatches to the verifier registered for the "alg" header.
type CompositeAlgSigVerifier struct {
	verifierByAlg map[string]SignatureVerifier
}

// NewCompositeAlgSigVerifier creates a new CompositeAlgSigVerifier.
func NewCompositeAlgSigVerifier(v AlgSignatureVerifier, vOther ...AlgSignatureVerifier) *CompositeAlgSigVerifier {
	verifierByAlg := make(map[string]SignatureVerifier, 1+len(vOther))
	verifierByAlg[v.Alg] = v.Verifier

	for _, v := range vOther {
		verifierByAlg[v.Alg] = v.Verifier
	}

	return &CompositeAlgSigVerifier{
		verifierByAlg: verifierByAlg,
	}
}

// Supports reports whether a verifier is registered for alg.
func (v *CompositeAlgSigVerifier) Supports(alg string) bool {
	_, ok := v.verifierByAlg[alg]

	return ok
}

// Verify verifies the signature with the verifier registered for input.Algorithm.
func (v *CompositeAlgSigVerifier) Verify(input *VerificationInput) error {
	verifier, ok := v.verifierByAlg[input.Algorithm]
	if !ok {
		return validation.Errorf(validation.UnsupportedAlgorithm, "no verifier found for %s algorithm", input.Algorithm)
	}

	return verifier.Verify(input)
}

// DefaultVerifier supports EdDSA only.
func DefaultVerifier() *CompositeAlgSigVerifier {
	return NewCompositeAlgSigVerifier(AlgSignatureVerifier{Alg: AlgEdDSA, Verifier: NewEd25519Verifier()})
}

// ExtendedVerifier supports EdDSA, ES256 and ES384.
func ExtendedVerifier() *CompositeAlgSigVerifier {
	return NewCompositeAlgSigVerifier(
		AlgSignatureVerifier{Alg: AlgEdDSA, Verifier: NewEd25519Verifier()},
		AlgSignatureVerifier{Alg: AlgES256, Verifier: NewECDSAVerifier(elliptic.P256(), crypto.SHA256)},
		AlgSignatureVerifier{Alg: AlgES384, Verifier: NewECDSAVerifier(elliptic.P384(), crypto.SHA384)},
	)
}

// NewEd25519Verifier returns the EdDSA (Ed25519) signature verifier.
func NewEd25519Verifier() SignatureVerifier {
	return SignatureVerifierFunc(func(input *VerificationInput) error {
		pubKey, err := ed25519Key(input.PublicKey)
		if err != nil {
			return err
		}

		if !ed25519.Verify(pubKey, input.SigningInput, input.Signature) {
			return validation.Errorf(validation.SignatureError, "ed25519: invalid signature")
		}

		return nil
	})
}

func ed25519Key(jwk *gojose.JSONWebKey) (ed25519.PublicKey, error) {
	if jwk == nil {
		return nil, validation.Errorf(validation.KeyNotFound, "public key is not defined")
	}

	switch k := jwk.Key.(type) {
	case ed25519.PublicKey:
		if len(k) != ed25519.PublicKeySize {
			return nil, validation.Errorf(validation.SignatureError, "ed25519: invalid key length %d", len(k))
		}

		return k, nil
	case ed25519.PrivateKey:
		pub, ok := k.Public().(ed25519.PublicKey)
		if !ok {
			return nil, validation.Errorf(validation.SignatureError, "ed25519: invalid private key")
		}

		return pub, nil
	default:
		return nil, validation.Errorf(validation.SignatureError, "key type %T is not usable with EdDSA", jwk.Key)
	}
}

// NewECDSAVerifier returns an ECDSA verifier for the given curve expecting R||S signatures.
func NewECDSAVerifier(curve elliptic.Curve, hash crypto.Hash) SignatureVerifier {
	keySize := (curve.Params().BitSize + 7) / 8

	return SignatureVerifierFunc(func(input *VerificationInput) error {
		if input.PublicKey == nil {
			return validation.Errorf(validation.KeyNotFound, "public key is not defined")
		}

		pubKey, ok := input.PublicKey.Key.(*ecdsa.PublicKey)
		if !ok {
			return validation.Errorf(validation.SignatureError,
				"key type %T is not usable with %s", input.PublicKey.Key, input.Algorithm)
		}

		if pubKey.Curve.Params().Name != curve.Params().Name {
			return validation.Errorf(validation.SignatureError, "ecdsa: curve %s does not match %s",
				pubKey.Curve.Params().Name, input.Algorithm)
		}

		if len(input.Signature) != 2*keySize {
			return validation.Errorf(validation.SignatureError, "ecdsa: invalid signature size")
		}

		hasher := hash.New()
		_, _ = hasher.Write(input.SigningInput)

		r := new(big.Int).SetBytes(input.Signature[:keySize])
		s := new(big.Int).SetBytes(input.Signature[keySize:])

		if !ecdsa.Verify(pubKey, hasher.Sum(nil), r, s) {
			return validation.Errorf(validation.SignatureError, "ecdsa: invalid signature")
		}

		return nil
	})
}

// KeyResolver finds the public key for a signature from its headers.
type KeyResolver interface {
	ResolveKey(headers Headers) (*gojose.JSONWebKey, error)
}

// KeyResolverFunc is a function wrapper for KeyResolver.
type KeyResolverFunc func(headers Headers) (*gojose.JSONWebKey, error)

// ResolveKey calls f(headers).
func (f KeyResolverFunc) ResolveKey(headers Headers) (*gojose.JSONWebKey, error) {
	return f(headers)
}

// VerifiedToken is a JWS whose every signature has been verified.
type VerifiedToken struct {
	Payload    []byte
	Headers    Headers
	Signatures []*Signature
	// Keys are the keys that verified each signature, in signature order.
	Keys []*gojose.JSONWebKey
}

// Verify verifies every signature of the JWS. All of them must be valid.
func (j *JSONWebSignature) Verify(keys KeyResolver, verifier SignatureVerifier) (*VerifiedToken, error) {
	if len(j.Signatures) == 0 {
		return nil, validation.Errorf(validation.SignatureError, "JWS has no signatures")
	}

	verifiedKeys := make([]*gojose.JSONWebKey, 0, len(j.Signatures))

	for i, sig := range j.Signatures {
		key, err := verifySignature(sig, keys, verifier)
		if err != nil {
			if len(j.Signatures) > 1 {
				return nil, wrapSignatureIndex(i, err)
			}

			return nil, err
		}

		verifiedKeys = append(verifiedKeys, key)
	}

	return &VerifiedToken{
		Payload:    j.Payload,
		Headers:    j.Headers(),
		Signatures: j.Signatures,
		Keys:       verifiedKeys,
	}, nil
}

// VerifyEach verifies every signature independently and returns one result per signature.
func (j *JSONWebSignature) VerifyEach(keys KeyResolver, verifier SignatureVerifier) []error {
	results := make([]error, len(j.Signatures))

	for i, sig := range j.Signatures {
		_, results[i] = verifySignature(sig, keys, verifier)
	}

	return results
}

func verifySignature(sig *Signature, keys KeyResolver, verifier SignatureVerifier) (*gojose.JSONWebKey, error) {
	headers := sig.Headers()

	alg, ok := headers.Algorithm()
	if !ok {
		return nil, validation.Errorf(validation.HeaderError, "alg header is not defined")
	}

	if c, isComposite := verifier.(*CompositeAlgSigVerifier); isComposite && !c.Supports(alg) {
		return nil, validation.Errorf(validation.UnsupportedAlgorithm, "no verifier found for %s algorithm", alg)
	}

	key, err := keys.ResolveKey(headers)
	if err != nil {
		if _, hasKind := validation.KindOf(err); hasKind {
			return nil, err
		}

		return nil, validation.Errorf(validation.KeyNotFound, "resolve public key: %w", err)
	}

	err = verifier.Verify(&VerificationInput{
		Algorithm:    alg,
		Headers:      headers,
		SigningInput: sig.SigningInput(),
		Signature:    sig.Value,
		PublicKey:    key,
	})
	if err != nil {
		if _, hasKind := validation.KindOf(err); hasKind {
			return nil, err
		}

		return nil, validation.NewError(validation.SignatureError, err)
	}

	return key, nil
}

func wrapSignatureIndex(i int, err error) error {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return validation.NewError(vErr.Kind, fmt.Errorf("signature %d: %w", i, vErr.Err))
	}

	return fmt.Errorf("signature %d: %w", i, err)
}
