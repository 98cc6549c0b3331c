/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination statustype_mocks_test.go -self_package mocks -package statustype -source=statuslist2021.go

package statustype

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc/bitstring"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

const (
	// StatusList2021Entry is the credentialStatus type of a StatusList2021 entry.
	StatusList2021Entry = "StatusList2021Entry"
	// StatusList2021 is accepted as an alias of StatusList2021Entry.
	StatusList2021 = "StatusList2021"
	// StatusList2021VCType is the type of the status list credential.
	// 	status list VC > Type
	StatusList2021VCType = "StatusList2021Credential"
	// StatusList2021VCSubjectType is the subject type of status list VC.
	// 	status list VC > Subject > Type
	StatusList2021VCSubjectType = "StatusList2021"
	// StatusListIndex identifies the bit position of the status value of the VC.
	//  VC > Status > CustomFields key.
	StatusListIndex = "statusListIndex"
	// StatusListCredential stores the link to the status list VC.
	//  VC > Status > CustomFields key.
	StatusListCredential = "statusListCredential"
	// StatusPurpose is "revocation" or "suspension" on both the entry and the list subject.
	StatusPurpose = "statusPurpose"
	// StatusList2021Context for StatusList2021.
	StatusList2021Context = "https://w3id.org/vc/status-list/2021/v1"

	StatusPurposeRevocation = "revocation"
	StatusPurposeSuspension = "suspension"

	encodedListKey = "encodedList"
	typeKey        = "type"

	// bitStringSize is the minimum list length, 16KB uncompressed.
	bitStringSize = 131072
)

// StatusListFetcher returns the verified status list credential published at statusURL.
// issuer is the already resolved document of the credential issuer; a list signed by it is
// verified against it without another resolution.
type StatusListFetcher interface {
	GetRevocationVC(ctx context.Context, statusURL string, issuer *did.Doc) (*vc.Credential, error)
}

// StatusList is the decoded bitstring of a StatusList2021 credential.
type StatusList struct {
	Purpose string
	bits    *bitstring.BitString
}

// NewStatusList returns an all-zero list of at least size entries.
func NewStatusList(purpose string, size int) (*StatusList, error) {
	if err := checkPurpose(purpose); err != nil {
		return nil, err
	}

	if size < bitStringSize {
		size = bitStringSize
	}

	return &StatusList{Purpose: purpose, bits: bitstring.NewBitString(size)}, nil
}

// StatusListFromCredential decodes the list carried by a StatusList2021Credential.
func StatusListFromCredential(cred *vc.Credential) (*StatusList, error) {
	if !cred.HasType(StatusList2021VCType) {
		return nil, validation.Errorf(validation.InvalidStatus, "status list credential is not a %s", StatusList2021VCType)
	}

	if len(cred.Subject) != 1 {
		return nil, validation.Errorf(validation.InvalidStatus, "status list credential must have exactly one subject")
	}

	subject := cred.Subject[0].CustomFields

	if t, _ := subject[typeKey].(string); t != StatusList2021VCSubjectType {
		return nil, validation.Errorf(validation.InvalidStatus, "status list subject type %q is not %s", t,
			StatusList2021VCSubjectType)
	}

	purpose, _ := subject[StatusPurpose].(string)
	if err := checkPurpose(purpose); err != nil {
		return nil, err
	}

	encoded, ok := subject[encodedListKey].(string)
	if !ok {
		return nil, validation.Errorf(validation.InvalidStatus, "status list subject has no %s", encodedListKey)
	}

	bits, err := bitstring.DecodeBits(encoded)
	if err != nil {
		return nil, validation.Errorf(validation.InvalidStatus, "failed to decode bits: %w", err)
	}

	return &StatusList{Purpose: purpose, bits: bits}, nil
}

// Len returns the number of entries.
func (l *StatusList) Len() int {
	return l.bits.Len()
}

// Entry returns the bit at index; ok is false when index is out of bounds.
func (l *StatusList) Entry(index int) (set, ok bool) {
	return l.bits.Entry(index)
}

// SetEntry sets the bit at index.
func (l *StatusList) SetEntry(index int, value bool) error {
	return l.bits.Set(index, value)
}

// EncodedList returns the gzip-compressed, base64url bitstring.
func (l *StatusList) EncodedList() (string, error) {
	return l.bits.EncodeBits()
}

// UpdateCredential writes the list back into a status list credential subject.
func (l *StatusList) UpdateCredential(cred *vc.Credential) error {
	if len(cred.Subject) != 1 {
		return fmt.Errorf("status list credential must have exactly one subject")
	}

	encoded, err := l.EncodedList()
	if err != nil {
		return err
	}

	if cred.Subject[0].CustomFields == nil {
		cred.Subject[0].CustomFields = vc.CustomFields{}
	}

	cred.Subject[0].CustomFields[encodedListKey] = encoded

	return nil
}

// CreateStatusListCredential returns an unsigned StatusList2021Credential with an all-zero list.
func CreateStatusListCredential(listID, issuer, purpose string, size int, issued time.Time) (*vc.Credential, error) {
	list, err := NewStatusList(purpose, size)
	if err != nil {
		return nil, err
	}

	encoded, err := list.EncodedList()
	if err != nil {
		return nil, err
	}

	if listID == "" {
		listID = uuid.New().URN()
	}

	issued = issued.UTC()

	return &vc.Credential{
		Context: []string{vc.ContextV1, StatusList2021Context},
		ID:      listID,
		Types:   []string{vc.TypeVerifiableCredential, StatusList2021VCType},
		Issuer:  vc.Issuer{ID: issuer},
		Issued:  &issued,
		Subject: []vc.Subject{{
			ID: listID + "#list",
			CustomFields: vc.CustomFields{
				typeKey:        StatusList2021VCSubjectType,
				StatusPurpose:  purpose,
				encodedListKey: encoded,
			},
		}},
	}, nil
}

// NewStatusListEntry returns a credentialStatus pointing at index of the list at listURL.
func NewStatusListEntry(listURL string, index int, purpose string) *vc.TypedID {
	return &vc.TypedID{
		ID:   fmt.Sprintf("%s#%d", listURL, index),
		Type: StatusList2021Entry,
		CustomFields: vc.CustomFields{
			StatusPurpose:        purpose,
			StatusListIndex:      formatIndex(index),
			StatusListCredential: listURL,
		},
	}
}

func checkPurpose(purpose string) error {
	if purpose != StatusPurposeRevocation && purpose != StatusPurposeSuspension {
		return validation.Errorf(validation.InvalidStatus, "unsupported status purpose %q", purpose)
	}

	return nil
}

// statusList2021 implements Status List 2021.
// Spec: https://w3c-ccg.github.io/vc-status-list-2021/#statuslist2021credential
type statusList2021 struct {
	fetcher StatusListFetcher
}

// NewStatusList2021 returns the StatusList2021 scheme fetching list credentials through fetcher.
func NewStatusList2021(fetcher StatusListFetcher) Scheme {
	return &statusList2021{fetcher: fetcher}
}

func (s *statusList2021) Types() []string {
	return []string{StatusList2021Entry, StatusList2021}
}

func (s *statusList2021) Check(ctx context.Context, req *Request) (Outcome, error) {
	if err := checkType(req.Status, s.Types()...); err != nil {
		return Unchecked, err
	}

	index, err := indexProperty(req.Status, StatusListIndex)
	if err != nil {
		return Unchecked, err
	}

	listURL, err := stringProperty(req.Status, StatusListCredential)
	if err != nil {
		return Unchecked, err
	}

	purpose, err := stringProperty(req.Status, StatusPurpose)
	if err != nil {
		return Unchecked, err
	}

	if err = checkPurpose(purpose); err != nil {
		return Unchecked, err
	}

	listVC, err := s.fetcher.GetRevocationVC(ctx, listURL, req.Issuer)
	if err != nil {
		if _, ok := validation.KindOf(err); ok {
			return Unchecked, err
		}

		return Unchecked, validation.Errorf(validation.ResolutionError, "failed to get status list credential: %w", err)
	}

	if req.Issuer != nil && listVC.Issuer.ID != req.Issuer.ID {
		return Unchecked, validation.Errorf(validation.InvalidStatus,
			"issuer of the credential does not match status list vc issuer")
	}

	list, err := StatusListFromCredential(listVC)
	if err != nil {
		return Unchecked, err
	}

	if list.Purpose != purpose {
		return Unchecked, validation.Errorf(validation.InvalidStatus,
			"status list purpose %q does not match entry purpose %q", list.Purpose, purpose)
	}

	set, ok := list.Entry(index)
	if !ok {
		return Unchecked, validation.Errorf(validation.InvalidStatus,
			"%s %d is outside the list of %d entries", StatusListIndex, index, list.Len())
	}

	if !set {
		return Valid, nil
	}

	return PurposeOutcome(purpose), nil
}

// PurposeOutcome returns the outcome a set bit means for purpose.
func PurposeOutcome(purpose string) Outcome {
	return lo.Ternary(purpose == StatusPurposeSuspension, Suspended, Revoked)
}
