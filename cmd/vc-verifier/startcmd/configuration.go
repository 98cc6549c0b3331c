/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/vc-verifier/internal/logfields"
	tlsutil "github.com/trustbloc/vc-verifier/internal/pkg/utils/tls"
	"github.com/trustbloc/vc-verifier/pkg/binding"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc/statustype"
	"github.com/trustbloc/vc-verifier/pkg/observability/metrics"
	credentialstatustracing "github.com/trustbloc/vc-verifier/pkg/observability/tracing/wrappers/credentialstatus"
	verifycredentialtracing "github.com/trustbloc/vc-verifier/pkg/observability/tracing/wrappers/verifycredential"
	verifypresentationtracing "github.com/trustbloc/vc-verifier/pkg/observability/tracing/wrappers/verifypresentation"
	"github.com/trustbloc/vc-verifier/pkg/service/credentialstatus"
	"github.com/trustbloc/vc-verifier/pkg/service/verifycredential"
	"github.com/trustbloc/vc-verifier/pkg/service/verifycredential/revocation"
	"github.com/trustbloc/vc-verifier/pkg/service/verifypresentation"
	"github.com/trustbloc/vc-verifier/pkg/validation"
	"github.com/trustbloc/vc-verifier/pkg/vdr/httpresolver"
)

const resolverRetryInterval = 500 * time.Millisecond

// Configuration holds the services behind the REST API.
type Configuration struct {
	DIDResolver   *httpresolver.Resolver
	StatusTypes   *statustype.Registry
	Credentials   *verifycredentialtracing.Wrapper
	Presentations *verifypresentationtracing.Wrapper
	Status        *credentialstatustracing.Wrapper
	Binding       *binding.Binding
}

func prepareConfiguration(parameters *startupParameters, m metrics.Metrics,
	tracer trace.Tracer) (*Configuration, error) {
	tlsConfig, err := tlsutil.ClientConfig(parameters.tlsParameters.systemCertPool,
		parameters.tlsParameters.caCerts)
	if err != nil {
		return nil, err
	}

	resolver, err := createDIDResolver(parameters, tlsConfig)
	if err != nil {
		return nil, err
	}

	clock := validation.SystemClock{}

	// Status list credentials are verified without consulting their own status.
	listVerifier := verifycredential.New(&verifycredential.Config{
		DIDResolver: resolver,
		Metrics:     m,
	})

	fetcher := revocation.New(&revocation.Config{
		CredentialVerifier: listVerifier,
		TLSConfig:          tlsConfig,
		RequestTokens:      parameters.requestTokens,
		Timeout:            parameters.requestTimeout,
		Clock:              clock,
		Metrics:            m,
	})

	registry := statustype.NewRegistry(
		statustype.NewRevocationBitmap2022(),
		statustype.NewRevocationTimeframe2024(),
		statustype.NewStatusList2021(fetcher),
	)

	credentials := verifycredentialtracing.Wrap(verifycredential.New(&verifycredential.Config{
		DIDResolver:   resolver,
		StatusChecker: registry,
		Metrics:       m,
	}), tracer)

	presentations := verifypresentationtracing.Wrap(verifypresentation.New(&verifypresentation.Config{
		DIDResolver:        resolver,
		CredentialVerifier: credentials,
		Metrics:            m,
	}), tracer)

	status := credentialstatustracing.Wrap(credentialstatus.New(&credentialstatus.Config{
		DIDResolver: resolver,
		Registry:    registry,
		Clock:       clock,
		Metrics:     m,
	}), tracer)

	logger.Info("status types registered", logfields.WithStatusTypes(registry.Types()))

	return &Configuration{
		DIDResolver:   resolver,
		StatusTypes:   registry,
		Credentials:   credentials,
		Presentations: presentations,
		Status:        status,
		Binding: binding.New(&binding.Config{
			Credentials:      credentials,
			Presentations:    presentations,
			Clock:            clock,
			DefaultLeeway:    parameters.temporalLeeway,
			AllowedDIDMethod: parameters.allowedDIDMethod,
		}),
	}, nil
}

func createDIDResolver(parameters *startupParameters, tlsConfig *tls.Config) (*httpresolver.Resolver, error) {
	opts := []httpresolver.Opt{
		httpresolver.WithHTTPClient(&http.Client{
			Timeout:   parameters.requestTimeout,
			Transport: &http.Transport{TLSClientConfig: tlsConfig},
		}),
		httpresolver.WithRetry(uint64(parameters.resolverRetries), resolverRetryInterval),
	}

	if token := parameters.requestTokens[resolverRequestTokenName]; token != "" {
		opts = append(opts, httpresolver.WithAuthToken(token))
	}

	if parameters.allowedDIDMethod != "" {
		opts = append(opts, httpresolver.WithAcceptedMethods(parameters.allowedDIDMethod))
	}

	resolver, err := httpresolver.New(parameters.universalResolverURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create universal resolver: %w", err)
	}

	return resolver, nil
}
