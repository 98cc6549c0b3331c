/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package statustype

import (
	"context"
	"time"

	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

const (
	// RevocationTimeframe2024 is the credentialStatus type of rotation-window revocation.
	RevocationTimeframe2024 = "RevocationTimeframe2024"
	// StartValidityTimeframe is the RFC3339 start of the validity window.
	StartValidityTimeframe = "startValidityTimeframe"
	// EndValidityTimeframe is the RFC3339 end of the validity window.
	EndValidityTimeframe = "endValidityTimeframe"
)

// Timeframe is an issuer-chosen validity window. Both bounds are inclusive.
type Timeframe struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (tf Timeframe) Contains(t time.Time) bool {
	return !t.Before(tf.Start) && !t.After(tf.End)
}

// NewTimeframeStatus builds a RevocationTimeframe2024 descriptor for a bitmap service.
func NewTimeframeStatus(serviceURL string, index int, tf Timeframe) *vc.TypedID {
	return &vc.TypedID{
		ID:   serviceURL,
		Type: RevocationTimeframe2024,
		CustomFields: vc.CustomFields{
			RevocationBitmapIndex:  formatIndex(index),
			StartValidityTimeframe: tf.Start.UTC().Format(time.RFC3339),
			EndValidityTimeframe:   tf.End.UTC().Format(time.RFC3339),
		},
	}
}

// TimeframeOf reads the validity window from a RevocationTimeframe2024 descriptor.
func TimeframeOf(status *vc.TypedID) (Timeframe, error) {
	if err := checkType(status, RevocationTimeframe2024); err != nil {
		return Timeframe{}, err
	}

	start, err := timeProperty(status, StartValidityTimeframe)
	if err != nil {
		return Timeframe{}, err
	}

	end, err := timeProperty(status, EndValidityTimeframe)
	if err != nil {
		return Timeframe{}, err
	}

	if end.Before(start) {
		return Timeframe{}, validation.Errorf(validation.InvalidStatus,
			"%s is before %s", EndValidityTimeframe, StartValidityTimeframe)
	}

	return Timeframe{Start: start, End: end}, nil
}

func timeProperty(status *vc.TypedID, name string) (time.Time, error) {
	s, err := stringProperty(status, name)
	if err != nil {
		return time.Time{}, err
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, validation.Errorf(validation.InvalidStatus, "unable to get %s: %w", name, err)
	}

	return t.UTC(), nil
}

// revocationTimeframe2024 checks a validity window and a RevocationBitmap2022 slot.
type revocationTimeframe2024 struct{}

// NewRevocationTimeframe2024 returns the RevocationTimeframe2024 scheme.
func NewRevocationTimeframe2024() Scheme {
	return revocationTimeframe2024{}
}

func (revocationTimeframe2024) Types() []string {
	return []string{RevocationTimeframe2024}
}

func (revocationTimeframe2024) Check(_ context.Context, req *Request) (Outcome, error) {
	if req.Scope != ScopeRevocation {
		if req.Clock == nil {
			return Unchecked, validation.ErrMissingClock
		}

		if err := CheckValidityTimeframe(req.Status, req.Clock); err != nil {
			return Unchecked, err
		}
	}

	if req.Scope == ScopeValidityTimeframe {
		return Valid, nil
	}

	if err := checkType(req.Status, RevocationTimeframe2024); err != nil {
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

// CheckValidityTimeframe fails OutsideTimeframe when the clock is outside the descriptor's window.
func CheckValidityTimeframe(status *vc.TypedID, clock validation.Clock) error {
	tf, err := TimeframeOf(status)
	if err != nil {
		return err
	}

	now := clock.Now()
	if !tf.Contains(now) {
		return validation.Errorf(validation.OutsideTimeframe, "%s is outside the validity timeframe [%s, %s]",
			now.UTC().Format(time.RFC3339), tf.Start.Format(time.RFC3339), tf.End.Format(time.RFC3339))
	}

	return nil
}
