/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifypresentation

import (
	"encoding/json"
	"sync"

	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

// LazyCredential is an embedded credential that is serialized and parsed on first use.
type LazyCredential struct {
	raw        interface{}
	serialized []byte
	parsed     *vc.Credential
	mut        sync.Mutex
}

func NewLazyCredential(raw interface{}) *LazyCredential {
	return &LazyCredential{
		raw: raw,
		mut: sync.Mutex{},
	}
}

// Token returns the credential as a compact JWT or SD-JWT when it was embedded in that form.
func (l *LazyCredential) Token() (string, bool) {
	s, ok := l.raw.(string)

	return s, ok
}

func (l *LazyCredential) Serialized() ([]byte, error) {
	l.mut.Lock()
	defer l.mut.Unlock()

	return l.serialize()
}

func (l *LazyCredential) serialize() ([]byte, error) {
	if l.serialized != nil {
		return l.serialized, nil
	}

	vcBytes, err := json.Marshal(l.raw)
	if err != nil {
		return nil, validation.Errorf(validation.CredentialStructure, "marshal embedded credential: %w", err)
	}

	l.serialized = vcBytes

	return vcBytes, nil
}

// Credential parses an embedded credential object.
func (l *LazyCredential) Credential() (*vc.Credential, error) {
	l.mut.Lock()
	defer l.mut.Unlock()

	if l.parsed != nil {
		return l.parsed, nil
	}

	if _, ok := l.raw.(map[string]interface{}); !ok {
		return nil, validation.Errorf(validation.CredentialStructure, "embedded credential is not a JSON object")
	}

	vcBytes, err := l.serialize()
	if err != nil {
		return nil, err
	}

	cred, err := vc.ParseCredential(vcBytes)
	if err != nil {
		return nil, err
	}

	l.parsed = cred

	return cred, nil
}

func (l *LazyCredential) Raw() interface{} {
	return l.raw
}
