/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"
)

// Logger used by different metrics provider.
var Logger = log.New("metrics-provider")

// Constants used by different metrics provider.
const (
	// Namespace Organization namespace.
	Namespace = "vcverifier"

	// Service operations.
	Service                    = "service"
	ValidateCredentialMetric   = "service_validateCredential_seconds"
	ValidatePresentationMetric = "service_validatePresentation_seconds"
	CheckStatusMetric          = "service_checkStatus_seconds"
	ValidationErrorsMetric     = "service_validation_errors_total"
	StatusOutcomesMetric       = "service_status_outcomes_total"

	// Resolver operations.
	Resolver          = "resolver"
	ResolveDIDMetric  = "resolver_resolveDID_seconds"
	FetchStatusMetric = "resolver_fetchStatusList_seconds"
)

// Provider is an interface for metrics provider.
type Provider interface {
	// Create creates a metrics provider instance
	Create() error
	// Destroy destroys the metrics provider instance
	Destroy() error
	// Metrics providers metrics
	Metrics() Metrics
}

// Metrics is an interface for the metrics to be supported by the provider.
//
//nolint:interfacebloat
type Metrics interface {
	ValidateCredentialTime(value time.Duration)
	ValidatePresentationTime(value time.Duration)
	CheckStatusTime(value time.Duration)
	ResolveDIDTime(value time.Duration)
	FetchStatusListTime(value time.Duration)
	ValidationError(kind string)
	StatusOutcome(outcome string)
}
