/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc/statustype"
)

// CheckStatusRequest defines model for CheckStatusRequest.
type CheckStatusRequest struct {
	// Issuer DID of the credential.
	Issuer string `json:"issuer" validate:"required"`

	// CredentialStatus is the credentialStatus object of the credential.
	CredentialStatus *vc.TypedID `json:"credentialStatus" validate:"required"`

	// StatusScope is one of "all", "validityTimeframe" or "revocation".
	StatusScope *string `json:"statusScope,omitempty" validate:"omitempty,oneof=all validityTimeframe revocation"`
}

// CheckStatusResponse defines model for CheckStatusResponse.
type CheckStatusResponse struct {
	Status statustype.Outcome `json:"status"`
}

// StatusTypesResponse defines model for StatusTypesResponse.
type StatusTypesResponse struct {
	Types []string `json:"types"`
}
