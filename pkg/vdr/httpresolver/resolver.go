/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package httpresolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vc-verifier/internal/logfields"
	"github.com/trustbloc/vc-verifier/pkg/doc/did"
)

var logger = log.New("http-did-resolver")

const (
	didLDJson        = "application/did+ld+json"
	resolutionLDJson = "application/ld+json;profile=\"https://w3id.org/did-resolution\""

	defaultTimeout       = 10 * time.Second
	defaultRetryInterval = 500 * time.Millisecond
	maxResponseSize      = 1 << 20
)

// ErrMethodNotAccepted is returned for a DID whose method the resolver is not configured for.
var ErrMethodNotAccepted = errors.New("DID method not accepted")

type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Resolver resolves DIDs through a universal-resolver compatible HTTP endpoint
// (GET {endpoint}/{did}).
type Resolver struct {
	endpointURL   *url.URL
	client        httpClient
	authToken     string
	maxRetries    uint64
	retryInterval time.Duration
	methods       []string
}

// Opt configures the resolver.
type Opt func(r *Resolver)

// WithHTTPClient sets the HTTP client used for resolution.
func WithHTTPClient(client httpClient) Opt {
	return func(r *Resolver) {
		r.client = client
	}
}

// WithTimeout replaces the HTTP client with one using the given timeout.
func WithTimeout(timeout time.Duration) Opt {
	return func(r *Resolver) {
		r.client = &http.Client{Timeout: timeout}
	}
}

// WithAuthToken sends the token as a bearer token with every request.
func WithAuthToken(token string) Opt {
	return func(r *Resolver) {
		r.authToken = token
	}
}

// WithRetry retries transport failures and 5xx responses up to maxRetries times.
func WithRetry(maxRetries uint64, interval time.Duration) Opt {
	return func(r *Resolver) {
		r.maxRetries = maxRetries
		r.retryInterval = interval
	}
}

// WithAcceptedMethods restricts resolution to the given DID methods.
func WithAcceptedMethods(methods ...string) Opt {
	return func(r *Resolver) {
		r.methods = methods
	}
}

// New returns a resolver for the given endpoint URL.
func New(endpointURL string, opts ...Opt) (*Resolver, error) {
	u, err := url.ParseRequestURI(endpointURL)
	if err != nil {
		return nil, fmt.Errorf("url parse request uri failed: %w", err)
	}

	r := &Resolver{
		endpointURL:   u,
		client:        &http.Client{Timeout: defaultTimeout},
		retryInterval: defaultRetryInterval,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Accept reports whether the resolver handles the given DID method.
func (r *Resolver) Accept(method string) bool {
	return len(r.methods) == 0 || lo.Contains(r.methods, method)
}

// Resolve fetches and parses the document of didID. A 404 response is reported as did.ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, didID string) (*did.Doc, error) {
	parsed, err := did.Parse(didID)
	if err != nil {
		return nil, err
	}

	if !r.Accept(parsed.Method) {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotAccepted, parsed.Method)
	}

	reqURL := r.endpointURL.JoinPath(didID)

	var data []byte

	attempt := 0

	err = backoff.Retry(func() error {
		attempt++

		var fetchErr error

		data, fetchErr = r.fetch(ctx, reqURL.String())
		if fetchErr != nil && !isPermanent(fetchErr) {
			logger.Debug("DID resolution attempt failed", logfields.WithDID(didID), logfields.WithAttempt(attempt),
				log.WithError(fetchErr))
		}

		return fetchErr
	}, backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.retryInterval), r.maxRetries), ctx))
	if err != nil {
		return nil, err
	}

	doc, err := parseResolution(data)
	if err != nil {
		return nil, fmt.Errorf("parse DID document of %s: %w", didID, err)
	}

	if doc.ID != didID {
		return nil, fmt.Errorf("resolved document id %s does not match %s", doc.ID, didID)
	}

	return doc, nil
}

// HealthCheck reports whether the resolver endpoint answers.
func (r *Resolver) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpointURL.String(), http.NoBody)
	if err != nil {
		return fmt.Errorf("create health check request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("DID resolver %s unreachable: %w", r.endpointURL.Host, err)
	}

	defer closeResponseBody(resp.Body)

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("DID resolver %s returned status %d", r.endpointURL.Host, resp.StatusCode)
	}

	return nil
}

func (r *Resolver) fetch(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, http.NoBody)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("HTTP create get request failed: %w", err))
	}

	req.Header.Add("Accept", didLDJson)
	req.Header.Add("Accept", resolutionLDJson)

	if r.authToken != "" {
		req.Header.Add("Authorization", "Bearer "+r.authToken)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP get request failed: %w", err)
	}

	defer closeResponseBody(resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response body failed: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		if len(body) == 0 {
			return nil, backoff.Permanent(did.ErrNotFound)
		}

		return body, nil
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return nil, backoff.Permanent(did.ErrNotFound)
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("DID resolver returned status %d: %s", resp.StatusCode, body)
	default:
		return nil, backoff.Permanent(fmt.Errorf("unsupported response from DID resolver [%d] header [%s] body [%s]",
			resp.StatusCode, resp.Header.Get("Content-Type"), body))
	}
}

// parseResolution accepts either a DID resolution result ({"didDocument": ...}) or a bare document.
func parseResolution(data []byte) (*did.Doc, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("response is not valid JSON")
	}

	if gjson.GetBytes(data, "didDocumentMetadata.deactivated").Bool() {
		return nil, did.ErrNotFound
	}

	if doc := gjson.GetBytes(data, "didDocument"); doc.IsObject() {
		return did.ParseDocument([]byte(doc.Raw))
	}

	return did.ParseDocument(data)
}

func isPermanent(err error) bool {
	var permanent *backoff.PermanentError

	return errors.As(err, &permanent)
}

func closeResponseBody(respBody io.Closer) {
	if err := respBody.Close(); err != nil {
		logger.Warn("failed to close response body", log.WithError(err))
	}
}
