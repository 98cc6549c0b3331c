/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vc

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/trustbloc/vc-verifier/pkg/validation"
)

const (
	// ContextV1 is the base context of verifiable credentials and presentations.
	ContextV1 = "https://www.w3.org/2018/credentials/v1"
	// TypeVerifiableCredential is the base credential type.
	TypeVerifiableCredential = "VerifiableCredential"
	// TypeVerifiablePresentation is the base presentation type.
	TypeVerifiablePresentation = "VerifiablePresentation"
)

// TypedID defines a flexible structure with id and name fields and arbitrary extra fields
// kept in CustomFields. It is used for credentialStatus and similar descriptors.
type TypedID struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type,omitempty"`

	CustomFields `json:"-"`
}

// MarshalJSON defines custom marshalling of TypedID to JSON.
func (tid TypedID) MarshalJSON() ([]byte, error) {
	type Alias TypedID

	alias := Alias(tid)

	data, err := marshalWithCustomFields(alias, tid.CustomFields)
	if err != nil {
		return nil, fmt.Errorf("marshal TypedID: %w", err)
	}

	return data, nil
}

// UnmarshalJSON defines custom unmarshalling of TypedID from JSON.
func (tid *TypedID) UnmarshalJSON(data []byte) error {
	type Alias TypedID

	alias := (*Alias)(tid)

	tid.CustomFields = make(CustomFields)

	if err := unmarshalWithCustomFields(data, alias, tid.CustomFields); err != nil {
		return fmt.Errorf("unmarshal TypedID: %w", err)
	}

	return nil
}

// Issuer of the Verifiable Credential.
type Issuer struct {
	ID string `json:"id,omitempty"`

	CustomFields CustomFields `json:"-"`
}

// MarshalJSON marshals Issuer to JSON.
func (i Issuer) MarshalJSON() ([]byte, error) {
	if len(i.CustomFields) == 0 {
		return json.Marshal(i.ID)
	}

	type Alias Issuer

	data, err := marshalWithCustomFields(Alias(i), i.CustomFields)
	if err != nil {
		return nil, fmt.Errorf("marshal Issuer: %w", err)
	}

	return data, nil
}

// UnmarshalJSON unmarshals issuer from JSON.
func (i *Issuer) UnmarshalJSON(bytes []byte) error {
	var issuerID string

	if err := json.Unmarshal(bytes, &issuerID); err == nil {
		i.ID = issuerID
		return nil
	}

	type Alias Issuer

	alias := (*Alias)(i)

	i.CustomFields = make(CustomFields)

	if err := unmarshalWithCustomFields(bytes, alias, i.CustomFields); err != nil {
		return fmt.Errorf("unmarshal Issuer: %w", err)
	}

	if i.ID == "" {
		return errors.New("issuer ID is not defined")
	}

	return nil
}

// Subject of the Verifiable Credential.
type Subject struct {
	ID string `json:"id,omitempty"`

	CustomFields CustomFields `json:"-"`
}

// MarshalJSON marshals Subject to JSON.
func (s Subject) MarshalJSON() ([]byte, error) {
	type Alias Subject

	return marshalWithCustomFields(Alias(s), s.CustomFields)
}

// UnmarshalJSON unmarshals Subject from JSON.
func (s *Subject) UnmarshalJSON(bytes []byte) error {
	type Alias Subject

	s.CustomFields = make(CustomFields)

	return unmarshalWithCustomFields(bytes, (*Alias)(s), s.CustomFields)
}

// Credential Verifiable Credential definition.
type Credential struct {
	Context         []string
	CustomContext   []interface{}
	ID              string
	Types           []string
	Subject         []Subject
	Issuer          Issuer
	Issued          *time.Time
	Expired         *time.Time
	Status          *TypedID
	NonTransferable bool

	CustomFields CustomFields
}

// rawCredential is a basic verifiable credential.
type rawCredential struct {
	Context         interface{}     `json:"@context,omitempty"`
	ID              string          `json:"id,omitempty"`
	Type            interface{}     `json:"type,omitempty"`
	Subject         json.RawMessage `json:"credentialSubject,omitempty"`
	Issued          string          `json:"issuanceDate,omitempty"`
	Expired         string          `json:"expirationDate,omitempty"`
	Status          *TypedID        `json:"credentialStatus,omitempty"`
	Issuer          json.RawMessage `json:"issuer,omitempty"`
	NonTransferable *bool           `json:"nonTransferable,omitempty"`

	CustomFields `json:"-"`
}

// MarshalJSON defines custom marshalling of rawCredential to JSON.
func (rc *rawCredential) MarshalJSON() ([]byte, error) {
	type Alias rawCredential

	return marshalWithCustomFields((*Alias)(rc), rc.CustomFields)
}

// UnmarshalJSON defines custom unmarshalling of rawCredential from JSON.
func (rc *rawCredential) UnmarshalJSON(data []byte) error {
	type Alias rawCredential

	rc.CustomFields = make(CustomFields)

	return unmarshalWithCustomFields(data, (*Alias)(rc), rc.CustomFields)
}

// ParseCredential decodes a credential from its JSON form. Shape problems are CredentialStructure errors.
func ParseCredential(data []byte) (*Credential, error) {
	raw := &rawCredential{}

	if err := json.Unmarshal(data, raw); err != nil {
		return nil, validation.Errorf(validation.CredentialStructure, "unmarshal credential: %w", err)
	}

	return newCredential(raw)
}

func newCredential(raw *rawCredential) (*Credential, error) {
	context, customContext, err := decodeContext(raw.Context)
	if err != nil {
		return nil, validation.Errorf(validation.CredentialStructure, "fill credential context from raw: %w", err)
	}

	types, err := stringOrArray(raw.Type)
	if err != nil {
		return nil, validation.Errorf(validation.CredentialStructure, "fill credential types from raw: %w", err)
	}

	subjects, err := decodeSubjects(raw.Subject)
	if err != nil {
		return nil, validation.Errorf(validation.CredentialStructure, "fill credential subject from raw: %w", err)
	}

	var issuer Issuer

	if len(raw.Issuer) > 0 {
		if err = json.Unmarshal(raw.Issuer, &issuer); err != nil {
			return nil, validation.Errorf(validation.CredentialStructure, "fill credential issuer from raw: %w", err)
		}
	}

	issued, err := decodeDate(raw.Issued)
	if err != nil {
		return nil, validation.Errorf(validation.CredentialStructure, "failed to parse issuance date: %w", err)
	}

	expired, err := decodeDate(raw.Expired)
	if err != nil {
		return nil, validation.Errorf(validation.CredentialStructure, "failed to parse expiration date: %w", err)
	}

	return &Credential{
		Context:         context,
		CustomContext:   customContext,
		ID:              raw.ID,
		Types:           types,
		Subject:         subjects,
		Issuer:          issuer,
		Issued:          issued,
		Expired:         expired,
		Status:          raw.Status,
		NonTransferable: raw.NonTransferable != nil && *raw.NonTransferable,
		CustomFields:    raw.CustomFields,
	}, nil
}

func decodeContext(c interface{}) ([]string, []interface{}, error) {
	switch rContext := c.(type) {
	case nil:
		return nil, nil, nil
	case string:
		return []string{rContext}, nil, nil
	case []interface{}:
		var (
			s      []string
			custom []interface{}
		)

		for _, item := range rContext {
			if str, ok := item.(string); ok {
				s = append(s, str)
			} else {
				custom = append(custom, item)
			}
		}

		return s, custom, nil
	default:
		return nil, nil, errors.New("credential context of unknown type")
	}
}

func decodeSubjects(raw json.RawMessage) ([]Subject, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var id string

	if err := json.Unmarshal(raw, &id); err == nil {
		return []Subject{{ID: id}}, nil
	}

	var single Subject

	if err := json.Unmarshal(raw, &single); err == nil {
		return []Subject{single}, nil
	}

	var many []Subject

	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, err
	}

	return many, nil
}

func decodeDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	d, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}

	d = d.UTC()

	return &d, nil
}

func (vc *Credential) raw() (*rawCredential, error) {
	issuer, err := json.Marshal(vc.Issuer)
	if err != nil {
		return nil, err
	}

	if vc.Issuer.ID == "" && len(vc.Issuer.CustomFields) == 0 {
		issuer = nil
	}

	r := &rawCredential{
		Context:      contextToRaw(vc.Context, vc.CustomContext),
		ID:           vc.ID,
		Type:         singleOrArray(vc.Types),
		Status:       vc.Status,
		Issuer:       issuer,
		CustomFields: vc.CustomFields,
	}

	if len(vc.Subject) > 0 {
		var subject interface{} = vc.Subject
		if len(vc.Subject) == 1 {
			subject = vc.Subject[0]
		}

		if r.Subject, err = json.Marshal(subject); err != nil {
			return nil, err
		}
	}

	if vc.Issued != nil {
		r.Issued = vc.Issued.UTC().Format(time.RFC3339)
	}

	if vc.Expired != nil {
		r.Expired = vc.Expired.UTC().Format(time.RFC3339)
	}

	if vc.NonTransferable {
		nonTransferable := true
		r.NonTransferable = &nonTransferable
	}

	return r, nil
}

func contextToRaw(context []string, cContext []interface{}) interface{} {
	if len(context)+len(cContext) == 0 {
		return nil
	}

	if len(cContext) == 0 && len(context) == 1 {
		return context[0]
	}

	all := make([]interface{}, 0, len(context)+len(cContext))

	for _, c := range context {
		all = append(all, c)
	}

	return append(all, cContext...)
}

// MarshalJSON converts Verifiable Credential to JSON bytes.
func (vc *Credential) MarshalJSON() ([]byte, error) {
	raw, err := vc.raw()
	if err != nil {
		return nil, fmt.Errorf("JSON marshalling of verifiable credential: %w", err)
	}

	return json.Marshal(raw)
}

// ToMap returns the JSON object form of the credential.
func (vc *Credential) ToMap() (map[string]interface{}, error) {
	return toMap(vc)
}

// SubjectIDs returns the ids of all credential subjects that have one.
func (vc *Credential) SubjectIDs() []string {
	return lo.FilterMap(vc.Subject, func(s Subject, _ int) (string, bool) {
		return s.ID, s.ID != ""
	})
}

// HasType reports whether the credential declares type t.
func (vc *Credential) HasType(t string) bool {
	return lo.Contains(vc.Types, t)
}
