/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credentialstatus

import "errors"

var (
	// ErrUnsupportedStatusType is wrapped by the InvalidStatus error returned for a credentialStatus type
	// that no registered scheme handles.
	ErrUnsupportedStatusType = errors.New("unsupported credential status type")
	ErrMissingStatus         = errors.New("credential status is missing")
)
