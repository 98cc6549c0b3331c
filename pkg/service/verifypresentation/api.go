/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifypresentation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/doc/jose"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/service/verifycredential"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

// SubjectHolderRelationship declares how the holder must relate to the subjects of presented credentials.
type SubjectHolderRelationship int

const (
	// AlwaysSubject requires the holder to be a subject of every credential.
	AlwaysSubject SubjectHolderRelationship = iota
	// SubjectOnNonTransferable requires the holder to be a subject of nonTransferable credentials only.
	SubjectOnNonTransferable
	// Any accepts any holder.
	Any
)

var relationshipNames = map[SubjectHolderRelationship]string{ //nolint:gochecknoglobals
	AlwaysSubject:            "AlwaysSubject",
	SubjectOnNonTransferable: "SubjectOnNonTransferable",
	Any:                      "Any",
}

func (r SubjectHolderRelationship) String() string {
	if name, ok := relationshipNames[r]; ok {
		return name
	}

	return fmt.Sprintf("SubjectHolderRelationship(%d)", int(r))
}

// MarshalJSON encodes the relationship as its name.
func (r SubjectHolderRelationship) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes the relationship from its name. An empty name is AlwaysSubject.
func (r *SubjectHolderRelationship) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	if name == "" {
		*r = AlwaysSubject

		return nil
	}

	rel, ok := lo.FindKey(relationshipNames, name)
	if !ok {
		return fmt.Errorf("unsupported subject holder relationship: %s", name)
	}

	*r = rel

	return nil
}

type Options struct {
	// Clock supplies "now" for the presentation and its credentials. Defaults to the system clock.
	Clock  validation.Clock
	Leeway time.Duration

	// Domain, when set, must be one of the presentation "aud" values.
	Domain string
	// Challenge, when set, must equal the presentation "nonce".
	Challenge string

	// MethodScope restricts which verification relationships may hold the holder key.
	MethodScope did.MethodScope

	SubjectHolderRelationship SubjectHolderRelationship
	// SkipCredentials disables validation of the embedded credentials.
	SkipCredentials bool
	// AllowUnsignedCredentials accepts embedded credential objects after a structure check only.
	AllowUnsignedCredentials bool

	// Credential holds the options used for every embedded credential. Clock and FailFast are inherited
	// when not set.
	Credential verifycredential.Options

	FailFast validation.FailFast
}

func (o *Options) credentialOptions() *verifycredential.Options {
	opts := o.Credential

	if opts.Clock == nil {
		opts.Clock = o.Clock
	}

	if opts.FailFast == validation.FirstError {
		opts.FailFast = o.FailFast
	}

	return &opts
}

// DecodedPresentation is a presentation whose holder signature verified.
type DecodedPresentation struct {
	Presentation *vc.Presentation
	Headers      jose.Headers
	KeyID        string
	Audience     []string
	Nonce        string
	// Credentials holds one entry per embedded credential, in presentation order. An entry is nil when
	// the credential was not validated or failed validation.
	Credentials []*verifycredential.DecodedCredential
}

type ServiceInterface interface {
	Validate(ctx context.Context, token string, holder *did.Doc, opts *Options) (*DecodedPresentation, error)
	ValidateWithResolver(ctx context.Context, token string, opts *Options) (*DecodedPresentation, error)
}
