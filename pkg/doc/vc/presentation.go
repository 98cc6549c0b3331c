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
	"github.com/samber/lo"

	"github.com/trustbloc/vc-verifier/pkg/validation"
)

// Presentation Verifiable Presentation base data model definition.
type Presentation struct {
	Context       []string
	CustomContext []interface{}
	ID            string
	Types         []string
	Holder        string
	// Credentials are either compact JWT strings or credential JSON objects.
	Credentials []interface{}

	CustomFields CustomFields
}

type rawPresentation struct {
	Context     interface{} `json:"@context,omitempty"`
	ID          string      `json:"id,omitempty"`
	Type        interface{} `json:"type,omitempty"`
	Credentials interface{} `json:"verifiableCredential,omitempty"`
	Holder      string      `json:"holder,omitempty"`

	CustomFields `json:"-"`
}

// MarshalJSON defines custom marshalling of rawPresentation to JSON.
func (rp *rawPresentation) MarshalJSON() ([]byte, error) {
	type Alias rawPresentation

	return marshalWithCustomFields((*Alias)(rp), rp.CustomFields)
}

// UnmarshalJSON defines custom unmarshalling of rawPresentation from JSON.
func (rp *rawPresentation) UnmarshalJSON(data []byte) error {
	type Alias rawPresentation

	rp.CustomFields = make(CustomFields)

	return unmarshalWithCustomFields(data, (*Alias)(rp), rp.CustomFields)
}

// ParsePresentation decodes a presentation from its JSON form.
func ParsePresentation(data []byte) (*Presentation, error) {
	raw := &rawPresentation{}

	if err := json.Unmarshal(data, raw); err != nil {
		return nil, validation.Errorf(validation.PresentationStructure, "unmarshal presentation: %w", err)
	}

	return newPresentation(raw)
}

func newPresentation(raw *rawPresentation) (*Presentation, error) {
	context, customContext, err := decodeContext(raw.Context)
	if err != nil {
		return nil, validation.Errorf(validation.PresentationStructure, "fill presentation context from raw: %w", err)
	}

	types, err := stringOrArray(raw.Type)
	if err != nil {
		return nil, validation.Errorf(validation.PresentationStructure, "fill presentation types from raw: %w", err)
	}

	var creds []interface{}

	switch c := raw.Credentials.(type) {
	case nil:
	case []interface{}:
		creds = c
	default:
		creds = []interface{}{c}
	}

	return &Presentation{
		Context:       context,
		CustomContext: customContext,
		ID:            raw.ID,
		Types:         types,
		Holder:        raw.Holder,
		Credentials:   creds,
		CustomFields:  raw.CustomFields,
	}, nil
}

// MarshalJSON converts Verifiable Presentation to JSON bytes.
func (vp *Presentation) MarshalJSON() ([]byte, error) {
	raw := &rawPresentation{
		Context:      contextToRaw(vp.Context, vp.CustomContext),
		ID:           vp.ID,
		Type:         singleOrArray(vp.Types),
		Holder:       vp.Holder,
		CustomFields: vp.CustomFields,
	}

	if len(vp.Credentials) > 0 {
		raw.Credentials = vp.Credentials
	}

	return json.Marshal(raw)
}

// CheckStructure checks the presentation against the base data model: a holder is required and
// the credential list must be present.
func (vp *Presentation) CheckStructure() error {
	vpMap, err := toMap(vp)
	if err != nil {
		return validation.Errorf(validation.PresentationStructure, "convert presentation to JSON: %w", err)
	}

	if err = validateSchema(presentationSchemaLoader, vpMap, "verifiable presentation"); err != nil {
		return validation.NewError(validation.PresentationStructure, err)
	}

	if vp.Holder == "" {
		return validation.Errorf(validation.PresentationStructure, "presentation holder is not defined")
	}

	if len(vp.Credentials) == 0 {
		return validation.Errorf(validation.PresentationStructure, "presentation has no credentials")
	}

	return nil
}

// JWTCredentials returns the embedded credentials serialized as compact JWTs, in order.
func (vp *Presentation) JWTCredentials() []string {
	return lo.FilterMap(vp.Credentials, func(c interface{}, _ int) (string, bool) {
		s, ok := c.(string)
		return s, ok
	})
}

// JWTPresClaims is JWT Claims extension by Verifiable Presentation (with custom "vp" claim).
type JWTPresClaims struct {
	*jwt.Claims

	Nonce string                 `json:"nonce,omitempty"`
	VP    map[string]interface{} `json:"vp,omitempty"`
}

// ParseJWTPresClaims decodes a JWT payload carrying a "vp" claim.
func ParseJWTPresClaims(payload []byte) (*JWTPresClaims, error) {
	claims := &JWTPresClaims{}

	d := json.NewDecoder(bytes.NewReader(payload))
	d.UseNumber()

	if err := d.Decode(claims); err != nil {
		return nil, validation.Errorf(validation.PresentationStructure, "failed to parse JWT claims: %w", err)
	}

	if claims.Claims == nil {
		claims.Claims = &jwt.Claims{}
	}

	if claims.VP == nil {
		return nil, validation.Errorf(validation.PresentationStructure, "JWT claims do not contain \"vp\"")
	}

	return claims, nil
}

// Presentation rehydrates the presentation: iss→holder, jti→id.
func (c *JWTPresClaims) Presentation() (*Presentation, error) {
	vpJSON, err := json.Marshal(c.VP)
	if err != nil {
		return nil, validation.Errorf(validation.PresentationStructure, "marshal \"vp\" claim: %w", err)
	}

	vp, err := ParsePresentation(vpJSON)
	if err != nil {
		return nil, err
	}

	if c.Issuer != "" {
		vp.Holder = c.Issuer
	}

	if c.ID != "" {
		vp.ID = c.ID
	}

	return vp, nil
}

// JWTClaims converts the presentation to JWT claims bound to the given audience and nonce.
func (vp *Presentation) JWTClaims(audience []string, nonce string) (*JWTPresClaims, error) {
	vpMap, err := toMap(vp)
	if err != nil {
		return nil, fmt.Errorf("convert presentation to map: %w", err)
	}

	return &JWTPresClaims{
		Claims: &jwt.Claims{
			Issuer:   vp.Holder,
			ID:       vp.ID,
			Audience: audience,
		},
		Nonce: nonce,
		VP:    vpMap,
	}, nil
}
