/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vc-verifier/internal/logfields"
	"github.com/trustbloc/vc-verifier/pkg/observability/metrics"
)

var logger = metrics.Logger

const metricsPath = "/metrics"

var (
	createOnce sync.Once       //nolint:gochecknoglobals
	instance   metrics.Metrics //nolint:gochecknoglobals
)

type promProvider struct {
	router *echo.Echo
}

// NewPrometheusProvider creates new instance of Prometheus Metrics Provider serving /metrics on router.
func NewPrometheusProvider(router *echo.Echo) metrics.Provider {
	return &promProvider{router: router}
}

// Create registers the /metrics endpoint. OpenMetrics is negotiated so that exemplars can be scraped.
func (pp *promProvider) Create() error {
	if pp.router == nil {
		return nil
	}

	pp.router.GET(metricsPath, echo.WrapHandler(
		promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{EnableOpenMetrics: true}),
	))

	logger.Debug("prometheus metrics endpoint registered", logfields.WithPath(metricsPath))

	return nil
}

// Metrics returns supported metrics.
func (pp *promProvider) Metrics() metrics.Metrics {
	return GetMetrics()
}

// Destroy destroys the prometheus metrics provider.
func (pp *promProvider) Destroy() error {
	return nil
}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	createOnce.Do(func() {
		instance = NewMetrics()
	})

	return instance
}

// PromMetrics manages the metrics for the verifier.
type PromMetrics struct {
	validateCredentialTime   prometheus.Histogram
	validatePresentationTime prometheus.Histogram
	checkStatusTime          prometheus.Histogram
	resolveDIDTime           prometheus.Histogram
	fetchStatusListTime      prometheus.Histogram
	validationErrors         *prometheus.CounterVec
	statusOutcomes           *prometheus.CounterVec
}

// NewMetrics creates instance of prometheus metrics.
func NewMetrics() metrics.Metrics {
	pm := &PromMetrics{
		validateCredentialTime: newHistogram(metrics.Service, metrics.ValidateCredentialMetric,
			"The time (in seconds) it takes to validate a credential.", nil),
		validatePresentationTime: newHistogram(metrics.Service, metrics.ValidatePresentationMetric,
			"The time (in seconds) it takes to validate a presentation.", nil),
		checkStatusTime: newHistogram(metrics.Service, metrics.CheckStatusMetric,
			"The time (in seconds) it takes to check a credential status.", nil),
		resolveDIDTime: newHistogram(metrics.Resolver, metrics.ResolveDIDMetric,
			"The time (in seconds) it takes to resolve a DID.", nil),
		fetchStatusListTime: newHistogram(metrics.Resolver, metrics.FetchStatusMetric,
			"The time (in seconds) it takes to fetch a status list credential.", nil),
		validationErrors: newCounterVec(metrics.Service, metrics.ValidationErrorsMetric,
			"The number of validation errors by kind.", "kind"),
		statusOutcomes: newCounterVec(metrics.Service, metrics.StatusOutcomesMetric,
			"The number of status checks by outcome.", "outcome"),
	}

	registerMetrics(pm)

	return pm
}

// ValidateCredentialTime records the time to validate a credential.
func (pm *PromMetrics) ValidateCredentialTime(value time.Duration) {
	pm.validateCredentialTime.Observe(value.Seconds())

	logger.Debug("validate credential time", log.WithDuration(value))
}

// ValidatePresentationTime records the time to validate a presentation.
func (pm *PromMetrics) ValidatePresentationTime(value time.Duration) {
	pm.validatePresentationTime.Observe(value.Seconds())

	logger.Debug("validate presentation time", log.WithDuration(value))
}

// CheckStatusTime records the time to check a credential status.
func (pm *PromMetrics) CheckStatusTime(value time.Duration) {
	pm.checkStatusTime.Observe(value.Seconds())

	logger.Debug("check status time", log.WithDuration(value))
}

// ResolveDIDTime records the time to resolve a DID.
func (pm *PromMetrics) ResolveDIDTime(value time.Duration) {
	pm.resolveDIDTime.Observe(value.Seconds())

	logger.Debug("resolve DID time", log.WithDuration(value))
}

// FetchStatusListTime records the time to fetch a status list credential.
func (pm *PromMetrics) FetchStatusListTime(value time.Duration) {
	pm.fetchStatusListTime.Observe(value.Seconds())

	logger.Debug("fetch status list time", log.WithDuration(value))
}

// ValidationError counts a validation error of the given kind.
func (pm *PromMetrics) ValidationError(kind string) {
	pm.validationErrors.WithLabelValues(kind).Inc()
}

// StatusOutcome counts a status check outcome.
func (pm *PromMetrics) StatusOutcome(outcome string) {
	pm.statusOutcomes.WithLabelValues(outcome).Inc()
}

func registerMetrics(pm *PromMetrics) {
	prometheus.MustRegister(
		pm.validateCredentialTime, pm.validatePresentationTime, pm.checkStatusTime,
		pm.resolveDIDTime, pm.fetchStatusListTime, pm.validationErrors, pm.statusOutcomes,
	)
}

func newCounterVec(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metrics.Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labels)
}

func newHistogram(subsystem, name, help string, labels prometheus.Labels) prometheus.Histogram {
	return prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}
