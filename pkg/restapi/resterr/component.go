/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

type Component string

const (
	VerifierStatusCheckSvcComponent        Component = "verifier.status-check-service"
	VerifierVerifyCredentialSvcComponent   Component = "verifier.verify-credential-service"
	VerifierVerifyPresentationSvcComponent Component = "verifier.verify-presentation-service"
	DIDResolverComponent                   Component = "did-resolver"
	StatusListFetcherComponent             Component = "status-list-fetcher"
)
