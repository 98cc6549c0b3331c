/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package vc

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/trustbloc/vc-verifier/pkg/validation"
)

const credentialSchema = `{
  "required": ["@context", "type", "credentialSubject", "issuer", "issuanceDate"],
  "properties": {
    "@context": {
      "oneOf": [
        {"type": "string", "const": "https://www.w3.org/2018/credentials/v1"},
        {
          "type": "array",
          "minItems": 1,
          "items": [{"type": "string", "const": "https://www.w3.org/2018/credentials/v1"}],
          "uniqueItems": true,
          "additionalItems": {"oneOf": [{"type": "object"}, {"type": "string"}]}
        }
      ]
    },
    "id": {"type": "string"},
    "type": {
      "oneOf": [
        {
          "type": "array",
          "minItems": 1,
          "items": [{"type": "string", "pattern": "^VerifiableCredential$"}],
          "additionalItems": {"type": "string"}
        },
        {"type": "string", "pattern": "^VerifiableCredential$"}
      ]
    },
    "credentialSubject": {
      "anyOf": [
        {"type": "array", "minItems": 1, "items": {"type": "object", "minProperties": 1}},
        {"type": "object", "minProperties": 1}
      ]
    },
    "issuer": {
      "anyOf": [
        {"type": "string", "minLength": 1},
        {"type": "object", "required": ["id"], "properties": {"id": {"type": "string", "minLength": 1}}}
      ]
    },
    "issuanceDate": {"type": "string"},
    "expirationDate": {"type": "string"},
    "credentialStatus": {
      "type": "object",
      "required": ["id", "type"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "type": {"type": "string", "minLength": 1}
      }
    },
    "nonTransferable": {"type": "boolean"}
  }
}`

const presentationSchema = `{
  "required": ["@context", "type"],
  "properties": {
    "@context": {
      "oneOf": [
        {"type": "string", "const": "https://www.w3.org/2018/credentials/v1"},
        {
          "type": "array",
          "minItems": 1,
          "items": [{"type": "string", "const": "https://www.w3.org/2018/credentials/v1"}],
          "additionalItems": {"oneOf": [{"type": "object"}, {"type": "string"}]}
        }
      ]
    },
    "id": {"type": "string"},
    "type": {
      "oneOf": [
        {
          "type": "array",
          "minItems": 1,
          "items": [{"type": "string", "pattern": "^VerifiablePresentation$"}],
          "additionalItems": {"type": "string"}
        },
        {"type": "string", "pattern": "^VerifiablePresentation$"}
      ]
    },
    "verifiableCredential": {
      "anyOf": [
        {"type": "array", "items": {"anyOf": [{"type": "string"}, {"type": "object"}]}},
        {"type": "string"},
        {"type": "object"}
      ]
    },
    "holder": {"type": "string", "minLength": 1}
  }
}`

var (
	credentialSchemaLoader   = gojsonschema.NewStringLoader(credentialSchema)   //nolint:gochecknoglobals
	presentationSchemaLoader = gojsonschema.NewStringLoader(presentationSchema) //nolint:gochecknoglobals
)

// CheckStructure checks the credential against the base verifiable credential data model.
func (vc *Credential) CheckStructure() error {
	vcMap, err := vc.ToMap()
	if err != nil {
		return validation.Errorf(validation.CredentialStructure, "convert credential to JSON: %w", err)
	}

	if err = validateSchema(credentialSchemaLoader, vcMap, "verifiable credential"); err != nil {
		return validation.NewError(validation.CredentialStructure, err)
	}

	return nil
}

// CheckCredentialStructure checks a credential given in JSON form.
func CheckCredentialStructure(data []byte) error {
	cred, err := ParseCredential(data)
	if err != nil {
		return err
	}

	return cred.CheckStructure()
}

func validateSchema(schema gojsonschema.JSONLoader, doc interface{}, what string) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validation of %s: %w", what, err)
	}

	if result.Valid() {
		return nil
	}

	return fmt.Errorf("%s is not valid:\n%s", what, describeSchemaValidationError(result))
}

func describeSchemaValidationError(result *gojsonschema.Result) string {
	var b strings.Builder

	for _, desc := range result.Errors() {
		b.WriteString(fmt.Sprintf("- %s\n", desc))
	}

	return b.String()
}
