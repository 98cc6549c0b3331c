/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package did

import (
	"fmt"

	afgdid "github.com/hyperledger/aries-framework-go/component/models/did"
)

// DID is parsed according to the generic syntax: https://w3c.github.io/did-core/#generic-did-syntax
type DID = afgdid.DID

// DIDURL holds a DID URL: a DID with optional path, queries and fragment.
type DIDURL = afgdid.DIDURL //nolint:revive

// Parse parses the string according to the generic DID syntax.
func Parse(did string) (*DID, error) {
	return afgdid.Parse(did)
}

// ParseDIDURL parses a DID URL string.
func ParseDIDURL(didURL string) (*DIDURL, error) {
	u, err := afgdid.ParseDIDURL(didURL)
	if err != nil {
		return nil, fmt.Errorf("parse did url %q: %w", didURL, err)
	}

	return u, nil
}

// ResourceID returns the DID URL without its queries: DID, path and "#fragment".
func ResourceID(u *DIDURL) string {
	id := u.DID.String() + u.Path

	if u.Fragment != "" {
		id += "#" + u.Fragment
	}

	return id
}
