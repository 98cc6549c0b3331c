/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jose

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/go-jose/go-jose/v3/json"
)

// Signer defines JWS Signer interface. It makes signing of data and provides custom JWS headers relevant to the signer.
type Signer interface {
	// Sign signs.
	Sign(data []byte) ([]byte, error)

	// Headers provides JWS headers. "alg" header must be provided (see https://tools.ietf.org/html/rfc7515#section-4.1)
	Headers() Headers
}

// NewJWS creates JSON Web Signature.
func NewJWS(protectedHeaders, unprotectedHeaders Headers, payload []byte, signer Signer) (*JSONWebSignature, error) {
	jws := &JSONWebSignature{
		Payload:       payload,
		Serialization: Compact,
	}

	if err := jws.AddSignature(protectedHeaders, unprotectedHeaders, signer); err != nil {
		return nil, err
	}

	return jws, nil
}

// AddSignature signs the payload with signer and appends the signature.
func (j *JSONWebSignature) AddSignature(protectedHeaders, unprotectedHeaders Headers, signer Signer) error {
	protected := mergeHeaders(protectedHeaders, signer.Headers())

	if _, ok := protected.Algorithm(); !ok {
		return errors.New("alg JWS header is not defined")
	}

	b64, err := protected.Base64Payload()
	if err != nil {
		return err
	}

	if len(j.Signatures) > 0 {
		prevB64, _ := j.Signatures[0].ProtectedHeaders.Base64Payload() //nolint:errcheck
		if prevB64 != b64 {
			return errors.New("b64 header value differs between signatures")
		}
	}

	protectedBytes, err := json.Marshal(protected)
	if err != nil {
		return fmt.Errorf("marshal JWS protected headers: %w", err)
	}

	protectedSegment := base64.RawURLEncoding.EncodeToString(protectedBytes)

	input, err := signingInput(protectedSegment, j.Payload, b64)
	if err != nil {
		return err
	}

	value, err := signer.Sign(input)
	if err != nil {
		return fmt.Errorf("sign JWS: %w", err)
	}

	j.Signatures = append(j.Signatures, &Signature{
		ProtectedHeaders:   protected,
		UnprotectedHeaders: unprotectedHeaders,
		Value:              value,
		protected:          protectedSegment,
		signingInput:       input,
	})

	if len(j.Signatures) > 1 {
		j.Serialization = General
	}

	return nil
}

func (j *JSONWebSignature) payloadSegment() string {
	b64, _ := j.ProtectedHeaders().Base64Payload() //nolint:errcheck
	if !b64 {
		return string(j.Payload)
	}

	return base64.RawURLEncoding.EncodeToString(j.Payload)
}

// SerializeCompact makes JWS Compact Serialization (https://tools.ietf.org/html/rfc7515#section-7.1).
// With detached set the payload segment is left empty.
func (j *JSONWebSignature) SerializeCompact(detached bool) (string, error) {
	if len(j.Signatures) != 1 {
		return "", errors.New("compact serialization requires exactly one signature")
	}

	sig := j.Signatures[0]
	if len(sig.UnprotectedHeaders) > 0 {
		return "", errors.New("compact serialization cannot carry unprotected headers")
	}

	payload := ""
	if !detached {
		payload = j.payloadSegment()
	}

	return sig.protected + "." + payload + "." + base64.RawURLEncoding.EncodeToString(sig.Value), nil
}

// SerializeFlattened makes the flattened JSON serialization.
func (j *JSONWebSignature) SerializeFlattened(detached bool) (string, error) {
	if len(j.Signatures) != 1 {
		return "", errors.New("flattened serialization requires exactly one signature")
	}

	sig := j.Signatures[0]

	out := jsonJWS{
		Protected: sig.protected,
		Header:    sig.UnprotectedHeaders,
	}

	signature := base64.RawURLEncoding.EncodeToString(sig.Value)
	out.Signature = &signature

	if !detached {
		payload := j.payloadSegment()
		out.Payload = &payload
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshal flattened JWS: %w", err)
	}

	return string(b), nil
}

// SerializeGeneral makes the general JSON serialization.
func (j *JSONWebSignature) SerializeGeneral(detached bool) (string, error) {
	if len(j.Signatures) == 0 {
		return "", errors.New("JWS has no signatures")
	}

	out := jsonJWS{
		Signatures: make([]jsonSignature, 0, len(j.Signatures)),
	}

	for _, sig := range j.Signatures {
		out.Signatures = append(out.Signatures, jsonSignature{
			Protected: sig.protected,
			Header:    sig.UnprotectedHeaders,
			Signature: base64.RawURLEncoding.EncodeToString(sig.Value),
		})
	}

	if !detached {
		payload := j.payloadSegment()
		out.Payload = &payload
	}

	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("marshal general JWS: %w", err)
	}

	return string(b), nil
}

// Ed25519Signer signs with an Ed25519 private key.
type Ed25519Signer struct {
	privateKey ed25519.PrivateKey
	headers    Headers
}

// NewEd25519Signer returns an EdDSA signer. kid is added to the protected headers when not empty.
func NewEd25519Signer(privateKey ed25519.PrivateKey, kid string) *Ed25519Signer {
	headers := Headers{HeaderAlgorithm: AlgEdDSA}
	if kid != "" {
		headers[HeaderKeyID] = kid
	}

	return &Ed25519Signer{privateKey: privateKey, headers: headers}
}

// Sign signs data.
func (s *Ed25519Signer) Sign(data []byte) ([]byte, error) {
	if len(s.privateKey) != ed25519.PrivateKeySize {
		return nil, errors.New("ed25519: invalid private key")
	}

	return ed25519.Sign(s.privateKey, data), nil
}

// Headers returns the signer headers.
func (s *Ed25519Signer) Headers() Headers {
	return s.headers.Clone()
}
