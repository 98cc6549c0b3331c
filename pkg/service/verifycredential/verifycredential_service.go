/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination service_mocks_test.go -self_package mocks -package verifycredential -source=verifycredential_service.go -mock_names didResolver=MockDIDResolver,statusChecker=MockStatusChecker

package verifycredential

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	gojose "github.com/go-jose/go-jose/v3"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vc-verifier/internal/logfields"
	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/doc/jose"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc/statustype"
	noopMetricsProvider "github.com/trustbloc/vc-verifier/pkg/observability/metrics/noop"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

var logger = log.New("verify-credential-service")

type didResolver interface {
	Resolve(ctx context.Context, didID string) (*did.Doc, error)
}

type statusChecker interface {
	Check(ctx context.Context, req *statustype.Request, mode statustype.StatusCheck) (statustype.Outcome, error)
}

type metricsProvider interface {
	ValidateCredentialTime(value time.Duration)
	CheckStatusTime(value time.Duration)
	ResolveDIDTime(value time.Duration)
	ValidationError(kind string)
	StatusOutcome(outcome string)
}

type Config struct {
	DIDResolver   didResolver
	StatusChecker statusChecker
	// SignatureVerifier defaults to jose.DefaultVerifier (EdDSA only).
	SignatureVerifier jose.SignatureVerifier
	Metrics           metricsProvider
}

type Service struct {
	didResolver   didResolver
	statusChecker statusChecker
	verifier      jose.SignatureVerifier
	metrics       metricsProvider
}

func New(config *Config) *Service {
	verifier := config.SignatureVerifier
	if verifier == nil {
		verifier = jose.DefaultVerifier()
	}

	metrics := config.Metrics
	if metrics == nil {
		metrics = &noopMetricsProvider.NoMetrics{}
	}

	statusChecker := config.StatusChecker
	if statusChecker == nil {
		statusChecker = statustype.NewRegistry(statustype.NewRevocationBitmap2022(),
			statustype.NewRevocationTimeframe2024())
	}

	return &Service{
		didResolver:   config.DIDResolver,
		statusChecker: statusChecker,
		verifier:      verifier,
		metrics:       metrics,
	}
}

// Validate decodes and verifies a credential JWT (or SD-JWT) against the issuer document, then runs the
// structure, temporal and status checks under opts.FailFast. Once the signature has verified, the decoded
// credential is returned together with any check failure.
func (s *Service) Validate(ctx context.Context, token string, issuer *did.Doc,
	opts *Options) (*DecodedCredential, error) {
	st := time.Now()

	defer func() {
		s.metrics.ValidateCredentialTime(time.Since(st))
	}()

	if opts == nil || opts.Clock == nil {
		return nil, validation.ErrMissingClock
	}

	decoded, err := s.decode(token, issuer, opts)
	if err != nil {
		return nil, s.fail(opts.FailFast, err)
	}

	err = validation.Run(opts.FailFast,
		func() error {
			return decoded.Credential.CheckStructure()
		},
		func() error {
			if opts.SkipTemporal {
				return nil
			}

			return CheckTemporal(decoded.Credential, opts)
		},
		func() error {
			outcome, statusErr := s.CheckStatus(ctx, decoded.Credential, issuer, opts)
			decoded.Status = outcome

			return statusErr
		},
	)
	if err != nil {
		return decoded, s.fail(opts.FailFast, err)
	}

	return decoded, nil
}

// ValidateWithResolver resolves the issuer DID named by "iss" once and validates the credential against it.
func (s *Service) ValidateWithResolver(ctx context.Context, token string, opts *Options) (*DecodedCredential, error) {
	if opts == nil || opts.Clock == nil {
		return nil, validation.ErrMissingClock
	}

	issuerDID, err := ExtractIssuer(token)
	if err != nil {
		return nil, s.fail(opts.FailFast, err)
	}

	doc, err := s.resolve(ctx, issuerDID)
	if err != nil {
		return nil, s.fail(opts.FailFast, err)
	}

	return s.Validate(ctx, token, doc, opts)
}

// CheckStatus dispatches the credentialStatus to its scheme. A credential without status is Unchecked.
func (s *Service) CheckStatus(ctx context.Context, credential *vc.Credential, issuer *did.Doc,
	opts *Options) (statustype.Outcome, error) {
	if opts == nil {
		opts = &Options{}
	}

	if credential.Status == nil {
		return statustype.Unchecked, nil
	}

	st := time.Now()

	outcome, err := s.statusChecker.Check(ctx, &statustype.Request{
		Status: credential.Status,
		Issuer: issuer,
		Clock:  opts.Clock,
		Scope:  opts.StatusScope,
	}, opts.StatusCheck)

	s.metrics.CheckStatusTime(time.Since(st))

	if err != nil {
		logger.Debug("credential status check failed",
			logfields.WithStatusType(credential.Status.Type), log.WithID(credential.ID), log.WithError(err))

		return statustype.Unchecked, err
	}

	s.metrics.StatusOutcome(outcome.String())

	logger.Debug("credential status checked",
		logfields.WithStatusType(credential.Status.Type), log.WithID(credential.ID), logfields.WithStatus(outcome.String()))

	return outcome, nil
}

func (s *Service) resolve(ctx context.Context, issuerDID string) (*did.Doc, error) {
	if s.didResolver == nil {
		return nil, validation.Errorf(validation.ResolutionError, "no DID resolver configured")
	}

	st := time.Now()

	doc, err := s.didResolver.Resolve(ctx, issuerDID)

	s.metrics.ResolveDIDTime(time.Since(st))

	if err != nil {
		logger.Warn("failed to resolve issuer DID", logfields.WithDID(issuerDID), log.WithError(err))

		return nil, did.ResolutionError(issuerDID, err)
	}

	return doc, nil
}

func (s *Service) decode(token string, issuer *did.Doc, opts *Options) (*DecodedCredential, error) {
	jwt := token

	var sd *vc.SDJWT

	if vc.IsSDJWT(token) {
		sd = vc.ParseCombinedFormat(token)
		jwt = sd.SDJWT
	}

	jws, err := jose.Decode(jwt)
	if err != nil {
		return nil, err
	}

	if issuer == nil {
		return nil, validation.Errorf(validation.KeyNotFound, "issuer DID document is required")
	}

	verified, err := jws.Verify(issuerKeys(issuer, opts.MethodScope), s.verifier)
	if err != nil {
		return nil, err
	}

	payload := verified.Payload

	if sd != nil {
		payload, err = s.disclose(sd, payload, opts)
		if err != nil {
			return nil, err
		}
	}

	claims, err := vc.ParseJWTCredClaims(payload)
	if err != nil {
		return nil, err
	}

	if err = checkIssuerClaim(claims.Issuer, issuer, opts); err != nil {
		return nil, err
	}

	credential, err := claims.Credential()
	if err != nil {
		return nil, err
	}

	kid, _ := verified.Headers.KeyID()

	return &DecodedCredential{
		Credential: credential,
		Headers:    verified.Headers,
		KeyID:      kid,
		Disclosed:  sd != nil,
	}, nil
}

func (s *Service) disclose(sd *vc.SDJWT, payload []byte, opts *Options) ([]byte, error) {
	var claims map[string]interface{}

	d := json.NewDecoder(bytes.NewReader(payload))
	d.UseNumber()

	if err := d.Decode(&claims); err != nil {
		return nil, validation.Errorf(validation.CredentialStructure, "failed to parse SD-JWT claims: %w", err)
	}

	if sd.HolderVerification != "" || opts.KeyBinding != nil {
		expected := opts.KeyBinding
		if expected != nil && expected.Clock == nil {
			withClock := *expected
			withClock.Clock = opts.Clock
			expected = &withClock
		}

		if err := vc.VerifyKeyBinding(sd, claims, s.verifier, expected); err != nil {
			return nil, err
		}
	}

	disclosed, err := vc.DiscloseClaims(claims, sd.Disclosures)
	if err != nil {
		return nil, err
	}

	payload, err = json.Marshal(disclosed)
	if err != nil {
		return nil, validation.Errorf(validation.CredentialStructure, "marshal disclosed claims: %w", err)
	}

	return payload, nil
}

func (s *Service) fail(mode validation.FailFast, err error) error {
	for _, e := range validation.Flatten(err) {
		s.metrics.ValidationError(string(e.Kind))
	}

	if mode == validation.AllErrors {
		if _, ok := err.(*validation.AccumulatedError); !ok { //nolint:errorlint
			return &validation.AccumulatedError{Errors: validation.Flatten(err)}
		}
	}

	return err
}

func issuerKeys(issuer *did.Doc, scope did.MethodScope) jose.KeyResolver {
	return jose.KeyResolverFunc(func(headers jose.Headers) (*gojose.JSONWebKey, error) {
		kid, _ := headers.KeyID()

		vm, err := issuer.VerificationMethodByKID(kid, scope)
		if err != nil {
			return nil, validation.Errorf(validation.KeyNotFound, "select verification method %q: %w", kid, err)
		}

		return vm.JSONWebKey()
	})
}

func checkIssuerClaim(iss string, issuer *did.Doc, opts *Options) error {
	issuerDID, err := did.Parse(iss)
	if err != nil {
		return validation.Errorf(validation.SignerURL, "iss %q is not a DID: %w", iss, err)
	}

	if opts.AllowedDIDMethod != "" && issuerDID.Method != opts.AllowedDIDMethod {
		return validation.Errorf(validation.SignerURL, "iss %q is not a did:%s DID", iss, opts.AllowedDIDMethod)
	}

	if opts.ExpectedIssuer != "" && iss != opts.ExpectedIssuer {
		return validation.Errorf(validation.SignerURL, "iss %q is not the expected issuer %q", iss, opts.ExpectedIssuer)
	}

	if iss != issuer.ID {
		return validation.Errorf(validation.SignerURL, "iss %q does not match the DID %q of the verifying key",
			iss, issuer.ID)
	}

	return nil
}

// ExtractIssuer returns the issuer DID of a credential JWT without verifying it.
func ExtractIssuer(token string) (string, error) {
	iss, err := vc.ExtractIssuer(token)
	if err != nil {
		return "", err
	}

	if _, err = did.Parse(iss); err != nil {
		return "", validation.Errorf(validation.SignerURL, "iss %q is not a DID: %w", iss, err)
	}

	return iss, nil
}

// CheckTemporal checks issuance and expiration dates against the bounds in opts, widened by opts.Leeway.
func CheckTemporal(credential *vc.Credential, opts *Options) error {
	if opts.Clock == nil {
		return validation.ErrMissingClock
	}

	now := opts.Clock.Now()

	if credential.Issued != nil && credential.Expired != nil && credential.Expired.Before(*credential.Issued) {
		return validation.Errorf(validation.ExpirationDate, "expiration date %s is before issuance date %s",
			credential.Expired.Format(time.RFC3339), credential.Issued.Format(time.RFC3339))
	}

	latestIssuance := now
	if opts.LatestIssuance != nil {
		latestIssuance = *opts.LatestIssuance
	}

	if credential.Issued != nil && credential.Issued.After(latestIssuance.Add(opts.Leeway)) {
		return validation.Errorf(validation.IssuanceDate, "credential is issued in the future: %s",
			credential.Issued.Format(time.RFC3339))
	}

	earliestExpiry := now
	if opts.EarliestExpiry != nil {
		earliestExpiry = *opts.EarliestExpiry
	}

	if credential.Expired != nil && credential.Expired.Before(earliestExpiry.Add(-opts.Leeway)) {
		return validation.Errorf(validation.ExpirationDate, "credential expired at %s",
			credential.Expired.Format(time.RFC3339))
	}

	return nil
}
