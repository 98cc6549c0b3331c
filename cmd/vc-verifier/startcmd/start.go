/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vc-verifier/cmd/common"
	"github.com/trustbloc/vc-verifier/internal/logfields"
	"github.com/trustbloc/vc-verifier/pkg/observability/health/healthchecks"
	"github.com/trustbloc/vc-verifier/pkg/observability/metrics"
	metricsProvider "github.com/trustbloc/vc-verifier/pkg/observability/metrics/noop"
	"github.com/trustbloc/vc-verifier/pkg/observability/metrics/prometheus"
	"github.com/trustbloc/vc-verifier/pkg/observability/tracing"
	"github.com/trustbloc/vc-verifier/pkg/restapi/resterr"
	"github.com/trustbloc/vc-verifier/pkg/restapi/v1/healthcheck"
	"github.com/trustbloc/vc-verifier/pkg/restapi/v1/logapi"
	"github.com/trustbloc/vc-verifier/pkg/restapi/v1/verifier"
	"github.com/trustbloc/vc-verifier/pkg/restapi/v1/version"
)

var logger = log.New("vc-verifier")

const (
	readHeaderTimeout = 10 * time.Second
	bodyLimit         = "2M"
)

type httpServer interface {
	ListenAndServe() error
	ListenAndServeTLS(certFile, keyFile string) error
}

type startOpts struct {
	server  httpServer
	handler *echo.Echo
	version string
}

// StartOpts configures the start command.
type StartOpts func(opts *startOpts)

// WithHTTPServer sets the server used instead of a net/http server listening on the host URL.
func WithHTTPServer(srv httpServer) StartOpts {
	return func(opts *startOpts) {
		opts.server = srv
	}
}

// WithEchoHandler captures the handler built by the start command.
func WithEchoHandler(e *echo.Echo) StartOpts {
	return func(opts *startOpts) {
		opts.handler = e
	}
}

// WithVersion sets the version reported on startup.
func WithVersion(version string) StartOpts {
	return func(opts *startOpts) {
		opts.version = version
	}
}

// GetStartCmd returns the Cobra start command.
func GetStartCmd(opts ...StartOpts) *cobra.Command {
	startCmd := createStartCmd(opts...)

	createFlags(startCmd)

	return startCmd
}

func createStartCmd(opts ...StartOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start vc-verifier",
		Long:  "Start the vc-verifier REST service",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := getStartupParameters(cmd)
			if err != nil {
				return fmt.Errorf("failed to get startup parameters: %w", err)
			}

			common.SetLogSpec(logger, params.logLevel)

			return startServer(params, opts...)
		},
	}
}

func startServer(params *startupParameters, opts ...StartOpts) error {
	o := &startOpts{}

	for _, opt := range opts {
		opt(o)
	}

	e := o.handler
	if e == nil {
		e = echo.New()
	}

	shutdown, err := buildEchoHandler(params, e, o.version)
	if err != nil {
		return err
	}

	defer shutdown()

	srv := o.server
	if srv == nil {
		srv = &http.Server{
			Addr:              params.hostURL,
			Handler:           e,
			ReadHeaderTimeout: readHeaderTimeout,
		}
	}

	logger.Info("Starting vc-verifier server", logfields.WithHostURL(params.hostURL), logfields.WithVersion(o.version))

	if params.tlsParameters.serveCertPath != "" && params.tlsParameters.serveKeyPath != "" {
		err = srv.ListenAndServeTLS(params.tlsParameters.serveCertPath, params.tlsParameters.serveKeyPath)
	} else {
		err = srv.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("vc-verifier server stopped: %w", err)
	}

	return nil
}

// buildEchoHandler registers the middleware and routes of the service. The returned function shuts down
// the tracer provider.
func buildEchoHandler(params *startupParameters, e *echo.Echo, buildVersion string) (func(), error) {
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = resterr.HTTPErrorHandler

	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit(bodyLimit))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		Skipper:   RequestLogSkipper,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Debug("request served", logfields.WithPath(v.URI), log.WithHTTPStatus(v.Status),
				log.WithDuration(v.Latency))

			return nil
		},
		LogLatency: true,
	}))

	readiness := newReadinessController(e)

	m, err := createMetrics(params.metricsProviderName, e)
	if err != nil {
		return nil, err
	}

	shutdownTracing, tracer, err := tracing.Initialize(params.tracingParams.exporter,
		params.tracingParams.serviceName)
	if err != nil {
		return nil, fmt.Errorf("initialize tracing: %w", err)
	}

	conf, err := prepareConfiguration(params, m, tracer)
	if err != nil {
		shutdownTracing()

		return nil, err
	}

	verifier.RegisterHandlers(e, verifier.NewController(&verifier.Config{
		StatusSvc:     conf.Status,
		ValidationSvc: conf.Binding,
	}))

	healthcheck.RegisterHandlers(e, healthcheck.NewController(&healthcheck.Config{
		Checks: healthchecks.Get(&healthchecks.Config{
			DIDResolver: conf.DIDResolver,
			Timeout:     params.requestTimeout,
		}),
	}))

	version.NewController(e, &version.Config{Version: buildVersion, StatusTypes: conf.StatusTypes})
	logapi.NewController(e)

	readiness.Ready(true)

	return shutdownTracing, nil
}

func createMetrics(providerName string, e *echo.Echo) (metrics.Metrics, error) {
	var provider metrics.Provider

	switch providerName {
	case metricsProviderPrometheus:
		provider = prometheus.NewPrometheusProvider(e)
	default:
		provider = metricsProvider.NewNoopProvider()
	}

	if err := provider.Create(); err != nil {
		return nil, fmt.Errorf("create metrics provider %q: %w", providerName, err)
	}

	return provider.Metrics(), nil
}
