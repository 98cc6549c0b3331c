/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-jose/go-jose/v3/jwt"

	"github.com/trustbloc/vc-verifier/pkg/validation"
)

// JWTCredClaims is JWT Claims extension by Verifiable Credential (with custom "vc" claim).
type JWTCredClaims struct {
	*jwt.Claims

	VC map[string]interface{} `json:"vc,omitempty"`
}

// ParseJWTCredClaims decodes a JWT payload carrying a "vc" claim.
func ParseJWTCredClaims(payload []byte) (*JWTCredClaims, error) {
	claims := &JWTCredClaims{}

	d := json.NewDecoder(bytes.NewReader(payload))
	d.UseNumber()

	if err := d.Decode(claims); err != nil {
		return nil, validation.Errorf(validation.CredentialStructure, "failed to parse JWT claims: %w", err)
	}

	if claims.Claims == nil {
		claims.Claims = &jwt.Claims{}
	}

	if claims.VC == nil {
		return nil, validation.Errorf(validation.CredentialStructure, "JWT claims do not contain \"vc\"")
	}

	if claims.Issuer == "" {
		return nil, validation.Errorf(validation.CredentialStructure, "JWT claims do not contain \"iss\"")
	}

	return claims, nil
}

// Credential rehydrates the credential carried in the claims. Registered claims override the
// corresponding "vc" members: iss→issuer, nbf (or iat)→issuanceDate, exp→expirationDate, jti→id,
// sub→credentialSubject.id.
func (c *JWTCredClaims) Credential() (*Credential, error) {
	vcJSON, err := json.Marshal(c.VC)
	if err != nil {
		return nil, validation.Errorf(validation.CredentialStructure, "marshal \"vc\" claim: %w", err)
	}

	cred, err := ParseCredential(vcJSON)
	if err != nil {
		return nil, err
	}

	c.refine(cred)

	return cred, nil
}

func (c *JWTCredClaims) refine(cred *Credential) {
	if c.Issuer != "" {
		cred.Issuer.ID = c.Issuer
	}

	switch {
	case c.NotBefore != nil:
		nbf := c.NotBefore.Time().UTC()
		cred.Issued = &nbf
	case c.IssuedAt != nil:
		iat := c.IssuedAt.Time().UTC()
		cred.Issued = &iat
	}

	if c.Expiry != nil {
		exp := c.Expiry.Time().UTC()
		cred.Expired = &exp
	}

	if c.ID != "" {
		cred.ID = c.ID
	}

	if c.Subject != "" {
		switch len(cred.Subject) {
		case 0:
			cred.Subject = []Subject{{ID: c.Subject}}
		case 1:
			cred.Subject[0].ID = c.Subject
		}
	}
}

// JWTClaims converts the credential to JWT claims. With minimizeVC the members mirrored by
// registered claims are removed from "vc".
func (vc *Credential) JWTClaims(minimizeVC bool) (*JWTCredClaims, error) {
	claims := &jwt.Claims{
		Issuer: vc.Issuer.ID,
		ID:     vc.ID,
	}

	if vc.Issued != nil {
		claims.NotBefore = jwt.NewNumericDate(*vc.Issued)
		claims.IssuedAt = jwt.NewNumericDate(*vc.Issued)
	}

	if vc.Expired != nil {
		claims.Expiry = jwt.NewNumericDate(*vc.Expired)
	}

	if ids := vc.SubjectIDs(); len(ids) == 1 && len(vc.Subject) == 1 {
		claims.Subject = ids[0]
	}

	vcMap, err := vc.ToMap()
	if err != nil {
		return nil, fmt.Errorf("convert credential to map: %w", err)
	}

	if minimizeVC {
		delete(vcMap, "issuanceDate")
		delete(vcMap, "expirationDate")
		delete(vcMap, "id")

		if issuer, ok := vcMap["issuer"].(string); ok && issuer == vc.Issuer.ID {
			delete(vcMap, "issuer")
		}
	}

	return &JWTCredClaims{Claims: claims, VC: vcMap}, nil
}
