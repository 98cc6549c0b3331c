/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credentialstatus

import (
	"context"

	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc/statustype"
)

// CheckStatusRequest names the issuer of a credential and the credentialStatus it carries.
type CheckStatusRequest struct {
	Issuer string
	Status *vc.TypedID
	Scope  statustype.CheckScope
}

type CheckStatusResult struct {
	Status statustype.Outcome
	// Issuer is the resolved issuer DID.
	Issuer string
}

type ServiceInterface interface {
	CheckStatus(ctx context.Context, req *CheckStatusRequest) (*CheckStatusResult, error)
	SupportedTypes() []string
}
