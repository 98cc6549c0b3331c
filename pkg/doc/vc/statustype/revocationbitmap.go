/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statustype

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc/bitstring"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

const (
	// RevocationBitmap2022 is both the credentialStatus type and the DID service type.
	RevocationBitmap2022 = "RevocationBitmap2022"
	// RevocationBitmapIndex is the credentialStatus property holding the decimal bit index.
	RevocationBitmapIndex = "revocationBitmapIndex"

	dataURLPrefix = "data:application/octet-stream;base64,"
	indexQueryKey = "index"
)

// RevocationBitmap is the issuer-hosted set of revoked indices. It grows on Revoke.
type RevocationBitmap struct {
	bits []byte
}

// NewRevocationBitmap returns an empty bitmap.
func NewRevocationBitmap() *RevocationBitmap {
	return &RevocationBitmap{}
}

// Revoke marks index as revoked.
func (b *RevocationBitmap) Revoke(index int) error {
	if index < 0 {
		return fmt.Errorf("index %d is negative", index)
	}

	if n := index/8 + 1; n > len(b.bits) {
		b.bits = append(b.bits, make([]byte, n-len(b.bits))...)
	}

	bs := bitstring.FromBytes(b.bits)
	if err := bs.Set(index, true); err != nil {
		return err
	}

	b.bits = bs.Bytes()

	return nil
}

// Unrevoke clears index. Indices beyond the bitmap are already unrevoked.
func (b *RevocationBitmap) Unrevoke(index int) error {
	if index < 0 {
		return fmt.Errorf("index %d is negative", index)
	}

	if index/8 >= len(b.bits) {
		return nil
	}

	bs := bitstring.FromBytes(b.bits)
	if err := bs.Set(index, false); err != nil {
		return err
	}

	b.bits = bs.Bytes()

	return nil
}

// IsRevoked reports whether index is revoked.
func (b *RevocationBitmap) IsRevoked(index int) bool {
	revoked, ok := bitstring.FromBytes(b.bits).Entry(index)

	return ok && revoked
}

// ToServiceEndpoint encodes the bitmap as a data URL holding zlib-compressed, base64url bits.
func (b *RevocationBitmap) ToServiceEndpoint() (string, error) {
	encoded, err := bitstring.FromBytes(b.bits, bitstring.WithCompression(bitstring.ZLIB)).EncodeBits()
	if err != nil {
		return "", fmt.Errorf("encode revocation bitmap: %w", err)
	}

	return dataURLPrefix + encoded, nil
}

// ToService returns a RevocationBitmap2022 DID service carrying the bitmap.
func (b *RevocationBitmap) ToService(id string) (*did.Service, error) {
	endpoint, err := b.ToServiceEndpoint()
	if err != nil {
		return nil, err
	}

	return &did.Service{
		ID:              id,
		Type:            []string{RevocationBitmap2022},
		ServiceEndpoint: endpoint,
	}, nil
}

// ParseServiceEndpoint decodes a bitmap data URL.
func ParseServiceEndpoint(endpoint string) (*RevocationBitmap, error) {
	encoded, ok := strings.CutPrefix(endpoint, dataURLPrefix)
	if !ok {
		return nil, fmt.Errorf("service endpoint is not a %q data url", dataURLPrefix)
	}

	bs, err := bitstring.DecodeBits(encoded, bitstring.WithCompression(bitstring.ZLIB))
	if err != nil {
		return nil, fmt.Errorf("decode revocation bitmap: %w", err)
	}

	return &RevocationBitmap{bits: bs.Bytes()}, nil
}

// BitmapFromService decodes the bitmap carried by a RevocationBitmap2022 service.
func BitmapFromService(svc *did.Service) (*RevocationBitmap, error) {
	if !svc.HasType(RevocationBitmap2022) {
		return nil, fmt.Errorf("service %s is not of type %s", svc.ID, RevocationBitmap2022)
	}

	endpoint, err := svc.EndpointURI()
	if err != nil {
		return nil, err
	}

	return ParseServiceEndpoint(endpoint)
}

// NewBitmapStatus builds a RevocationBitmap2022 descriptor for the bitmap service at serviceURL.
func NewBitmapStatus(serviceURL string, index int) *vc.TypedID {
	return &vc.TypedID{
		ID:   serviceURL,
		Type: RevocationBitmap2022,
		CustomFields: vc.CustomFields{
			RevocationBitmapIndex: formatIndex(index),
		},
	}
}

// revocationBitmap2022 checks credentials against a bitmap hosted in the issuer's DID document.
type revocationBitmap2022 struct{}

// NewRevocationBitmap2022 returns the RevocationBitmap2022 scheme.
func NewRevocationBitmap2022() Scheme {
	return revocationBitmap2022{}
}

func (revocationBitmap2022) Types() []string {
	return []string{RevocationBitmap2022}
}

func (revocationBitmap2022) Check(_ context.Context, req *Request) (Outcome, error) {
	if err := checkType(req.Status, RevocationBitmap2022); err != nil {
		return Unchecked, err
	}

	revoked, err := bitmapRevoked(req.Status, req.Issuer)
	if err != nil {
		return Unchecked, err
	}

	if revoked {
		return Revoked, nil
	}

	return Valid, nil
}

// bitmapRevoked resolves the bitmap named by status.id inside the issuer document and tests the index.
func bitmapRevoked(status *vc.TypedID, issuer *did.Doc) (bool, error) {
	index, err := indexProperty(status, RevocationBitmapIndex)
	if err != nil {
		return false, err
	}

	svc, err := bitmapService(status, issuer, index)
	if err != nil {
		return false, err
	}

	bitmap, err := BitmapFromService(svc)
	if err != nil {
		return false, validation.NewError(validation.InvalidStatus, err)
	}

	return bitmap.IsRevoked(index), nil
}

func bitmapService(status *vc.TypedID, issuer *did.Doc, index int) (*did.Service, error) {
	if issuer == nil {
		return nil, validation.Errorf(validation.InvalidStatus, "issuer document is required for %s", status.Type)
	}

	statusURL, err := did.ParseDIDURL(status.ID)
	if err != nil {
		return nil, validation.Errorf(validation.InvalidStatus, "status id: %w", err)
	}

	if statusURL.DID.String() != issuer.ID {
		return nil, validation.Errorf(validation.InvalidStatus,
			"status id DID %s does not match issuer %s", statusURL.DID.String(), issuer.ID)
	}

	if q := url.Values(statusURL.Queries).Get(indexQueryKey); q != "" {
		queryIndex, iErr := parseIndex(q, indexQueryKey)
		if iErr != nil {
			return nil, iErr
		}

		if queryIndex != index {
			return nil, validation.Errorf(validation.InvalidStatus,
				"status id index %d does not match %s %d", queryIndex, RevocationBitmapIndex, index)
		}
	}

	if statusURL.Fragment == "" {
		return nil, validation.Errorf(validation.InvalidStatus, "status id %s does not name a service", status.ID)
	}

	serviceID := did.ResourceID(statusURL)

	svc, ok := issuer.ServiceByID(serviceID)
	if !ok {
		return nil, validation.Errorf(validation.InvalidStatus, "service %s not found in issuer document", serviceID)
	}

	return svc, nil
}
