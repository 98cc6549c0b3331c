/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination revocation_mocks_test.go -self_package mocks -package revocation -source=revocation_service.go -mock_names credentialVerifier=MockCredentialVerifier

package revocation

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc/statustype"
	noopMetricsProvider "github.com/trustbloc/vc-verifier/pkg/observability/metrics/noop"
	"github.com/trustbloc/vc-verifier/pkg/service/verifycredential"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

var logger = log.New("vc-verifier-revocation-service")

const (
	cslRequestTokenName = "csl"

	// maxListSize bounds the body of a status list response.
	maxListSize = 8 << 20
)

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type credentialVerifier interface {
	Validate(ctx context.Context, token string, issuer *did.Doc,
		opts *verifycredential.Options) (*verifycredential.DecodedCredential, error)
	ValidateWithResolver(ctx context.Context, token string,
		opts *verifycredential.Options) (*verifycredential.DecodedCredential, error)
}

type metricsProvider interface {
	FetchStatusListTime(value time.Duration)
}

type Config struct {
	CredentialVerifier credentialVerifier
	TLSConfig          *tls.Config
	HTTPClient         httpClient
	RequestTokens      map[string]string
	Timeout            time.Duration
	Clock              validation.Clock
	Metrics            metricsProvider
}

// Service fetches StatusList2021 credentials over HTTP and verifies them before use.
type Service struct {
	verifier      credentialVerifier
	httpClient    httpClient
	requestTokens map[string]string
	timeout       time.Duration
	clock         validation.Clock
	metrics       metricsProvider
}

func New(config *Config) *Service {
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Transport: &http.Transport{TLSClientConfig: config.TLSConfig}}
	}

	metrics := config.Metrics
	if metrics == nil {
		metrics = &noopMetricsProvider.NoMetrics{}
	}

	return &Service{
		verifier:      config.CredentialVerifier,
		httpClient:    client,
		requestTokens: config.RequestTokens,
		timeout:       config.Timeout,
		clock:         config.Clock,
		metrics:       metrics,
	}
}

var _ statustype.StatusListFetcher = (*Service)(nil)

// GetRevocationVC downloads the status list credential at statusURL and verifies its issuer signature.
// A list signed by issuer is verified against that document; only a list from another DID is resolved.
func (s *Service) GetRevocationVC(ctx context.Context, statusURL string, issuer *did.Doc) (*vc.Credential, error) {
	st := time.Now()

	defer func() {
		s.metrics.FetchStatusListTime(time.Since(st))
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, statusURL, nil)
	if err != nil {
		return nil, validation.Errorf(validation.InvalidStatus, "status list url %q: %w", statusURL, err)
	}

	resp, err := s.sendHTTPRequest(req, http.StatusOK, s.requestTokens[cslRequestTokenName])
	if err != nil {
		return nil, validation.Errorf(validation.ResolutionError, "fetch status list %s: %w", statusURL, err)
	}

	revocationListVC, err := s.parseAndVerifyVC(ctx, resp, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to parse and verify status vc: %w", err)
	}

	return revocationListVC, nil
}

func (s *Service) parseAndVerifyVC(ctx context.Context, vcBytes []byte, issuer *did.Doc) (*vc.Credential, error) {
	token := string(bytes.TrimSpace(vcBytes))

	// Some publishers return the JWT as a JSON string.
	if len(token) > 0 && token[0] == '"' {
		if err := json.Unmarshal([]byte(token), &token); err != nil {
			return nil, validation.Errorf(validation.EncodingError, "unquote status list jwt: %w", err)
		}
	}

	if s.verifier == nil {
		return nil, validation.Errorf(validation.ResolutionError, "no credential verifier configured")
	}

	if s.clock == nil {
		return nil, validation.ErrMissingClock
	}

	opts := &verifycredential.Options{
		Clock:       s.clock,
		StatusCheck: statustype.SkipAll,
	}

	if issuer == nil {
		return s.credential(s.verifier.ValidateWithResolver(ctx, token, opts))
	}

	listIssuer, err := verifycredential.ExtractIssuer(token)
	if err != nil {
		return nil, err
	}

	if listIssuer != issuer.ID {
		return nil, validation.Errorf(validation.InvalidStatus,
			"issuer of the credential does not match status list vc issuer")
	}

	return s.credential(s.verifier.Validate(ctx, token, issuer, opts))
}

func (s *Service) credential(decoded *verifycredential.DecodedCredential, err error) (*vc.Credential, error) {
	if err != nil {
		return nil, err
	}

	return decoded.Credential, nil
}

func (s *Service) sendHTTPRequest(req *http.Request, status int, token string) ([]byte, error) {
	if token != "" {
		req.Header.Add("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Warn("failed to close response body", log.WithError(closeErr))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if len(body) > maxListSize {
		return nil, fmt.Errorf("status list response exceeds %d bytes", maxListSize)
	}

	if resp.StatusCode != status {
		return nil, fmt.Errorf("failed to read response body for status %d: %s", resp.StatusCode, string(body))
	}

	logger.Debug("status list fetched", log.WithURL(req.URL.String()), log.WithHTTPStatus(resp.StatusCode))

	return body, nil
}
