/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package noop

import (
	"time"

	"github.com/trustbloc/vc-verifier/pkg/observability/metrics"
)

type noopProvider struct{}

// NewNoopProvider returns a provider whose metrics discard everything.
func NewNoopProvider() metrics.Provider {
	return &noopProvider{}
}

func (p *noopProvider) Create() error  { return nil }
func (p *noopProvider) Destroy() error { return nil }

func (p *noopProvider) Metrics() metrics.Metrics {
	return GetMetrics()
}

// NoMetrics provides default no operation implementation for the NoMetrics interface.
type NoMetrics struct{}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	return &NoMetrics{}
}

func (n *NoMetrics) ValidateCredentialTime(_ time.Duration)   {}
func (n *NoMetrics) ValidatePresentationTime(_ time.Duration) {}
func (n *NoMetrics) CheckStatusTime(_ time.Duration)          {}
func (n *NoMetrics) ResolveDIDTime(_ time.Duration)           {}
func (n *NoMetrics) FetchStatusListTime(_ time.Duration)      {}
func (n *NoMetrics) ValidationError(_ string)                 {}
func (n *NoMetrics) StatusOutcome(_ string)                   {}
