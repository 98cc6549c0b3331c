/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statustype

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

// Outcome is the result of a successful status check.
type Outcome int

const (
	// Unchecked means the status was not consulted.
	Unchecked Outcome = iota
	// Valid means neither revoked nor suspended.
	Valid
	// Revoked means the issuer revoked the credential.
	Revoked
	// Suspended means the issuer suspended the credential.
	Suspended
)

func (o Outcome) String() string {
	switch o {
	case Unchecked:
		return "Unchecked"
	case Valid:
		return "Valid"
	case Revoked:
		return "Revoked"
	case Suspended:
		return "Suspended"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// MarshalJSON encodes the outcome as its name.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes the outcome from its name.
func (o *Outcome) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	for _, candidate := range []Outcome{Unchecked, Valid, Revoked, Suspended} {
		if candidate.String() == name {
			*o = candidate

			return nil
		}
	}

	return fmt.Errorf("unsupported status outcome: %s", name)
}

// Err converts Revoked and Suspended to the matching validation error. Other outcomes return nil.
func (o Outcome) Err() error {
	switch o {
	case Revoked:
		return validation.Errorf(validation.Revoked, "credential has been revoked")
	case Suspended:
		return validation.Errorf(validation.Suspended, "credential has been suspended")
	default:
		return nil
	}
}

// StatusCheck controls how a credentialStatus is handled.
type StatusCheck int

const (
	// Strict checks every status and fails InvalidStatus on an unknown type.
	Strict StatusCheck = iota
	// SkipUnsupported checks known types and ignores unknown ones.
	SkipUnsupported
	// SkipAll never consults the status.
	SkipAll
)

var statusCheckNames = map[StatusCheck]string{ //nolint:gochecknoglobals
	Strict:          "Strict",
	SkipUnsupported: "SkipUnsupported",
	SkipAll:         "SkipAll",
}

func (s StatusCheck) String() string {
	if name, ok := statusCheckNames[s]; ok {
		return name
	}

	return fmt.Sprintf("StatusCheck(%d)", int(s))
}

// MarshalJSON encodes the mode as its name.
func (s StatusCheck) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes the mode from its name. An empty name is Strict.
func (s *StatusCheck) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	if name == "" {
		*s = Strict

		return nil
	}

	mode, ok := lo.FindKey(statusCheckNames, name)
	if !ok {
		return fmt.Errorf("unsupported status check mode: %s", name)
	}

	*s = mode

	return nil
}

// CheckScope selects which parts of a timeframe status are checked.
type CheckScope int

const (
	// ScopeAll checks the validity timeframe, then the revocation bitmap.
	ScopeAll CheckScope = iota
	// ScopeValidityTimeframe only checks that now is inside the timeframe.
	ScopeValidityTimeframe
	// ScopeRevocation only consults the revocation bitmap.
	ScopeRevocation
)

// Request carries everything a scheme needs to check one credentialStatus.
type Request struct {
	Status *vc.TypedID
	// Issuer is the resolved document of the credential issuer.
	Issuer *did.Doc
	// Clock is required by schemes that check a validity timeframe.
	Clock  validation.Clock
	Scope  CheckScope
}

// Scheme checks one family of credentialStatus types.
type Scheme interface {
	// Types returns the credentialStatus type values handled by the scheme.
	Types() []string
	Check(ctx context.Context, req *Request) (Outcome, error)
}

// Registry dispatches status checks to schemes by credentialStatus type.
type Registry struct {
	schemes map[string]Scheme
}

// NewRegistry returns a registry holding the given schemes.
func NewRegistry(schemes ...Scheme) *Registry {
	r := &Registry{schemes: map[string]Scheme{}}

	for _, s := range schemes {
		r.Register(s)
	}

	return r
}

// Register adds a scheme, replacing any scheme previously registered for the same types.
func (r *Registry) Register(s Scheme) {
	for _, t := range s.Types() {
		r.schemes[t] = s
	}
}

// Scheme returns the scheme handling statusType.
func (r *Registry) Scheme(statusType string) (Scheme, bool) {
	s, ok := r.schemes[statusType]

	return s, ok
}

// Types returns the registered status types in lexical order.
func (r *Registry) Types() []string {
	types := lo.Keys(r.schemes)
	sort.Strings(types)

	return types
}

// Check dispatches req to the scheme registered for req.Status.Type.
func (r *Registry) Check(ctx context.Context, req *Request, mode StatusCheck) (Outcome, error) {
	if mode == SkipAll || req.Status == nil {
		return Unchecked, nil
	}

	scheme, ok := r.schemes[req.Status.Type]
	if !ok {
		if mode == SkipUnsupported {
			return Unchecked, nil
		}

		return Unchecked, validation.Errorf(validation.InvalidStatus,
			"unsupported credential status type %q", req.Status.Type)
	}

	return scheme.Check(ctx, req)
}

func checkType(status *vc.TypedID, types ...string) error {
	if status == nil {
		return validation.Errorf(validation.InvalidStatus, "credential status is missing")
	}

	if !lo.Contains(types, status.Type) {
		return validation.Errorf(validation.InvalidStatus,
			"credential status type %q is not %v", status.Type, types)
	}

	return nil
}

func stringProperty(status *vc.TypedID, name string) (string, error) {
	v, ok := status.CustomFields[name]
	if !ok {
		return "", validation.Errorf(validation.InvalidStatus, "%s field not exist in vc status", name)
	}

	s, ok := v.(string)
	if !ok || s == "" {
		return "", validation.Errorf(validation.InvalidStatus, "%s field in vc status must be a non-empty string", name)
	}

	return s, nil
}

// indexProperty reads a decimal, non-negative index such as "5".
func indexProperty(status *vc.TypedID, name string) (int, error) {
	s, err := stringProperty(status, name)
	if err != nil {
		return 0, err
	}

	return parseIndex(s, name)
}

func parseIndex(s, name string) (int, error) {
	if s == "" || s[0] == '+' {
		return 0, validation.Errorf(validation.InvalidStatus, "unable to get %s: %q is not a decimal index", name, s)
	}

	index, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, validation.Errorf(validation.InvalidStatus, "unable to get %s: %w", name, err)
	}

	return int(index), nil
}

func formatIndex(index int) string {
	return strconv.Itoa(index)
}
