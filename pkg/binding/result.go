/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package binding

import (
	"encoding/json"

	"github.com/trustbloc/vc-verifier/pkg/doc/vc/statustype"
	"github.com/trustbloc/vc-verifier/pkg/service/verifycredential"
	"github.com/trustbloc/vc-verifier/pkg/service/verifypresentation"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

type ErrorDetail struct {
	Kind    validation.Kind `json:"kind,omitempty"`
	Message string          `json:"message"`
}

type CredentialResult struct {
	Valid bool `json:"valid"`
	// Status is "Unchecked" when no status was consulted.
	Status     statustype.Outcome     `json:"status"`
	Errors     []ErrorDetail          `json:"errors,omitempty"`
	Credential map[string]interface{} `json:"credential,omitempty"`
	KeyID      string                 `json:"keyId,omitempty"`
	Disclosed  bool                   `json:"disclosed,omitempty"`
}

type PresentationResult struct {
	Valid        bool            `json:"valid"`
	Errors       []ErrorDetail   `json:"errors,omitempty"`
	Holder       string          `json:"holder,omitempty"`
	KeyID        string          `json:"keyId,omitempty"`
	Presentation json.RawMessage `json:"presentation,omitempty"`
	// Credentials has one entry per embedded credential in presentation order.
	Credentials []*CredentialResult `json:"credentials,omitempty"`
}

// ErrorDetails lists the validation failures contained in err in order.
func ErrorDetails(err error) []ErrorDetail {
	var details []ErrorDetail

	for _, e := range validation.Flatten(err) {
		details = append(details, ErrorDetail{Kind: e.Kind, Message: e.Error()})
	}

	return details
}

// NewCredentialResult builds the result of a credential validation. A Revoked or Suspended outcome makes
// the result invalid.
func NewCredentialResult(decoded *verifycredential.DecodedCredential, err error) *CredentialResult {
	res := &CredentialResult{
		Status: statustype.Unchecked,
		Errors: ErrorDetails(err),
	}

	if decoded == nil {
		return res
	}

	res.Status = decoded.Status
	res.KeyID = decoded.KeyID
	res.Disclosed = decoded.Disclosed

	if statusErr := decoded.Status.Err(); statusErr != nil {
		res.Errors = append(res.Errors, ErrorDetails(statusErr)...)
	}

	if decoded.Credential != nil {
		if m, mErr := decoded.Credential.ToMap(); mErr == nil {
			res.Credential = m
		}
	}

	res.Valid = len(res.Errors) == 0

	return res
}

// NewPresentationResult builds the result of a presentation validation.
func NewPresentationResult(decoded *verifypresentation.DecodedPresentation, err error) *PresentationResult {
	res := &PresentationResult{
		Errors: ErrorDetails(err),
	}

	if decoded != nil {
		res.KeyID = decoded.KeyID

		if decoded.Presentation != nil {
			res.Holder = decoded.Presentation.Holder

			if raw, mErr := json.Marshal(decoded.Presentation); mErr == nil {
				res.Presentation = raw
			}
		}

		for _, cred := range decoded.Credentials {
			if cred == nil {
				res.Credentials = append(res.Credentials, &CredentialResult{Status: statustype.Unchecked})

				continue
			}

			credRes := NewCredentialResult(cred, nil)
			res.Errors = append(res.Errors, credRes.Errors...)
			res.Credentials = append(res.Credentials, credRes)
		}
	}

	res.Valid = len(res.Errors) == 0

	return res
}
