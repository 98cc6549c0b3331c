/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vc

import (
	"strings"

	"github.com/hyperledger/aries-framework-go/component/models/sdjwt/common"
	"github.com/tidwall/gjson"

	"github.com/trustbloc/vc-verifier/pkg/doc/jose"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

// UnverifiedPayload decodes a JWS without verifying it and returns its payload. SD-JWT
// disclosures following the issuer JWT are ignored.
func UnverifiedPayload(token string) ([]byte, error) {
	if i := strings.Index(token, common.CombinedFormatSeparator); i >= 0 {
		token = token[:i]
	}

	jws, err := jose.Decode(token)
	if err != nil {
		return nil, err
	}

	return jws.Payload, nil
}

// ExtractIssuer returns the "iss" claim of a credential JWT without verifying the signature.
func ExtractIssuer(token string) (string, error) {
	return peekIssuer(token, "vc", validation.CredentialStructure)
}

// ExtractHolder returns the "iss" claim of a presentation JWT without verifying the signature.
func ExtractHolder(token string) (string, error) {
	return peekIssuer(token, "vp", validation.PresentationStructure)
}

func peekIssuer(token, claim string, kind validation.Kind) (string, error) {
	payload, err := UnverifiedPayload(token)
	if err != nil {
		return "", err
	}

	if !gjson.ValidBytes(payload) {
		return "", validation.Errorf(validation.EncodingError, "JWT payload is not valid JSON")
	}

	if !gjson.GetBytes(payload, claim).IsObject() {
		return "", validation.Errorf(kind, "JWT claims do not contain %q", claim)
	}

	iss := gjson.GetBytes(payload, "iss")
	if iss.Type != gjson.String || iss.Str == "" {
		return "", validation.Errorf(kind, "JWT claims do not contain \"iss\"")
	}

	return iss.Str, nil
}
