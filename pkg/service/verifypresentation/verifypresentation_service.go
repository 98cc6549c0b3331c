/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination service_mocks_test.go -self_package mocks -package verifypresentation -source=verifypresentation_service.go -mock_names didResolver=MockDIDResolver,credentialVerifier=MockCredentialVerifier

package verifypresentation

import (
	"context"
	"fmt"
	"time"

	gojose "github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/samber/lo"
	"github.com/trustbloc/logutil-go/pkg/log"
	"golang.org/x/sync/errgroup"

	"github.com/trustbloc/vc-verifier/internal/logfields"
	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/doc/jose"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	noopMetricsProvider "github.com/trustbloc/vc-verifier/pkg/observability/metrics/noop"
	"github.com/trustbloc/vc-verifier/pkg/service/verifycredential"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

var logger = log.New("verify-presentation-service")

type didResolver interface {
	Resolve(ctx context.Context, didID string) (*did.Doc, error)
}

type credentialVerifier interface {
	Validate(ctx context.Context, token string, issuer *did.Doc,
		opts *verifycredential.Options) (*verifycredential.DecodedCredential, error)
}

type metricsProvider interface {
	ValidatePresentationTime(value time.Duration)
	ResolveDIDTime(value time.Duration)
	ValidationError(kind string)
}

type Config struct {
	DIDResolver        didResolver
	CredentialVerifier credentialVerifier
	SignatureVerifier  jose.SignatureVerifier
	Metrics            metricsProvider
}

type Service struct {
	didResolver didResolver
	credentials credentialVerifier
	verifier    jose.SignatureVerifier
	metrics     metricsProvider
}

func New(config *Config) *Service {
	verifier := config.SignatureVerifier
	if verifier == nil {
		verifier = jose.DefaultVerifier()
	}

	credentials := config.CredentialVerifier
	if credentials == nil {
		credentials = verifycredential.New(&verifycredential.Config{SignatureVerifier: verifier})
	}

	metrics := config.Metrics
	if metrics == nil {
		metrics = &noopMetricsProvider.NoMetrics{}
	}

	return &Service{
		didResolver: config.DIDResolver,
		credentials: credentials,
		verifier:    verifier,
		metrics:     metrics,
	}
}

// ExtractHolder returns the holder DID of a presentation JWT without verifying it.
func ExtractHolder(token string) (string, error) {
	iss, err := vc.ExtractHolder(token)
	if err != nil {
		return "", err
	}

	if _, err = did.Parse(iss); err != nil {
		return "", validation.Errorf(validation.SignerURL, "iss %q is not a DID: %w", iss, err)
	}

	return iss, nil
}

// CheckStructure checks a presentation given in JSON form.
func CheckStructure(data []byte) error {
	vp, err := vc.ParsePresentation(data)
	if err != nil {
		return err
	}

	return vp.CheckStructure()
}

// Validate verifies the outer JWS of a presentation against the holder document, then checks structure,
// lifetime, audience and nonce binding, the embedded credentials and the subject/holder relationship.
// Credential issuers are resolved at most once per invocation.
func (s *Service) Validate(ctx context.Context, token string, holder *did.Doc,
	opts *Options) (*DecodedPresentation, error) {
	st := time.Now()

	defer func() {
		s.metrics.ValidatePresentationTime(time.Since(st))
	}()

	if opts == nil || opts.Clock == nil {
		return nil, validation.ErrMissingClock
	}

	decoded, claims, err := s.decode(token, holder, opts)
	if err != nil {
		return nil, s.fail(opts.FailFast, err)
	}

	if err = s.check(ctx, decoded, claims, map[string]*did.Doc{holder.ID: holder}, opts); err != nil {
		return decoded, s.fail(opts.FailFast, err)
	}

	return decoded, nil
}

// ValidateWithResolver resolves the holder DID named by "iss" and validates the presentation against it.
func (s *Service) ValidateWithResolver(ctx context.Context, token string,
	opts *Options) (*DecodedPresentation, error) {
	if opts == nil || opts.Clock == nil {
		return nil, validation.ErrMissingClock
	}

	holderDID, err := ExtractHolder(token)
	if err != nil {
		return nil, s.fail(opts.FailFast, err)
	}

	holder, err := s.resolve(ctx, holderDID)
	if err != nil {
		return nil, s.fail(opts.FailFast, err)
	}

	return s.Validate(ctx, token, holder, opts)
}

func (s *Service) decode(token string, holder *did.Doc,
	opts *Options) (*DecodedPresentation, *vc.JWTPresClaims, error) {
	jws, err := jose.Decode(token)
	if err != nil {
		return nil, nil, err
	}

	if holder == nil {
		return nil, nil, validation.Errorf(validation.KeyNotFound, "holder DID document is required")
	}

	verified, err := jws.Verify(holderKeys(holder, opts.MethodScope), s.verifier)
	if err != nil {
		return nil, nil, err
	}

	claims, err := vc.ParseJWTPresClaims(verified.Payload)
	if err != nil {
		return nil, nil, err
	}

	if _, err = did.Parse(claims.Issuer); err != nil {
		return nil, nil, validation.Errorf(validation.SignerURL, "iss %q is not a DID: %w", claims.Issuer, err)
	}

	if claims.Issuer != holder.ID {
		return nil, nil, validation.Errorf(validation.SignerURL,
			"iss %q does not match the DID %q of the verifying key", claims.Issuer, holder.ID)
	}

	vp, err := claims.Presentation()
	if err != nil {
		return nil, nil, err
	}

	kid, _ := verified.Headers.KeyID()

	return &DecodedPresentation{
		Presentation: vp,
		Headers:      verified.Headers,
		KeyID:        kid,
		Audience:     claims.Audience,
		Nonce:        claims.Nonce,
	}, claims, nil
}

func (s *Service) check(ctx context.Context, decoded *DecodedPresentation, claims *vc.JWTPresClaims,
	known map[string]*did.Doc, opts *Options) error {
	return validation.Run(opts.FailFast,
		func() error {
			return decoded.Presentation.CheckStructure()
		},
		func() error {
			return checkLifetime(claims, opts)
		},
		func() error {
			return checkBinding(claims, opts)
		},
		func() error {
			if opts.SkipCredentials {
				return nil
			}

			var err error

			decoded.Credentials, err = s.validateCredentials(ctx, decoded.Presentation, known, opts)

			return err
		},
		func() error {
			return checkSubjectHolder(decoded.Presentation.Holder, decoded.Credentials, opts)
		},
	)
}

type resolution struct {
	doc *did.Doc
	err error
}

// validateCredentials validates the embedded credentials concurrently. Results and errors keep
// presentation order.
func (s *Service) validateCredentials(ctx context.Context, vp *vc.Presentation, known map[string]*did.Doc,
	opts *Options) ([]*verifycredential.DecodedCredential, error) {
	creds := lo.Map(vp.Credentials, func(c interface{}, _ int) *LazyCredential {
		return NewLazyCredential(c)
	})

	issuers := make([]string, len(creds))
	issuerErrs := make([]error, len(creds))

	for i, c := range creds {
		if token, ok := c.Token(); ok {
			issuers[i], issuerErrs[i] = verifycredential.ExtractIssuer(token)
		}
	}

	docs := s.resolveAll(ctx, lo.Uniq(lo.Compact(issuers)), known)

	results := make([]*verifycredential.DecodedCredential, len(creds))
	errs := make([]error, len(creds))

	var g errgroup.Group

	for i := range creds {
		i := i

		g.Go(func() error {
			if issuerErrs[i] != nil {
				errs[i] = issuerErrs[i]

				return nil
			}

			results[i], errs[i] = s.validateCredential(ctx, creds[i], docs[issuers[i]], opts)
			if errs[i] != nil {
				results[i] = nil
			}

			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck

	checks := lo.Map(errs, func(err error, i int) validation.Check {
		return func() error {
			return credentialError(i, err)
		}
	})

	return results, validation.Run(opts.FailFast, checks...)
}

func (s *Service) validateCredential(ctx context.Context, cred *LazyCredential, issuer resolution,
	opts *Options) (*verifycredential.DecodedCredential, error) {
	credOpts := opts.credentialOptions()

	if token, ok := cred.Token(); ok {
		if issuer.err != nil {
			return nil, issuer.err
		}

		return s.credentials.Validate(ctx, token, issuer.doc, credOpts)
	}

	if !opts.AllowUnsignedCredentials {
		return nil, validation.Errorf(validation.CredentialStructure, "embedded credential is not signed")
	}

	parsed, err := cred.Credential()
	if err != nil {
		return nil, err
	}

	err = validation.Run(credOpts.FailFast,
		parsed.CheckStructure,
		func() error {
			if credOpts.SkipTemporal {
				return nil
			}

			return verifycredential.CheckTemporal(parsed, credOpts)
		},
	)
	if err != nil {
		return nil, err
	}

	return &verifycredential.DecodedCredential{Credential: parsed}, nil
}

// resolveAll resolves every DID not already in known, concurrently and once each.
func (s *Service) resolveAll(ctx context.Context, dids []string, known map[string]*did.Doc) map[string]resolution {
	pending := lo.Filter(dids, func(d string, _ int) bool {
		_, ok := known[d]
		return !ok
	})

	resolved := make([]resolution, len(pending))

	var g errgroup.Group

	for i, d := range pending {
		i, d := i, d

		g.Go(func() error {
			resolved[i].doc, resolved[i].err = s.resolve(ctx, d)

			return nil
		})
	}

	_ = g.Wait() //nolint:errcheck

	docs := make(map[string]resolution, len(known)+len(pending))

	for d, doc := range known {
		docs[d] = resolution{doc: doc}
	}

	for i, d := range pending {
		docs[d] = resolved[i]
	}

	return docs
}

func (s *Service) resolve(ctx context.Context, didID string) (*did.Doc, error) {
	if s.didResolver == nil {
		return nil, validation.Errorf(validation.ResolutionError, "no DID resolver configured for %s", didID)
	}

	st := time.Now()

	doc, err := s.didResolver.Resolve(ctx, didID)

	s.metrics.ResolveDIDTime(time.Since(st))

	if err != nil {
		logger.Warn("failed to resolve DID", logfields.WithDID(didID), log.WithError(err))

		return nil, did.ResolutionError(didID, err)
	}

	return doc, nil
}

func (s *Service) fail(mode validation.FailFast, err error) error {
	kinds := lo.Map(validation.Flatten(err), func(e *validation.Error, _ int) string {
		return string(e.Kind)
	})

	for _, kind := range kinds {
		s.metrics.ValidationError(kind)
	}

	logger.Debug("presentation validation failed", logfields.WithErrorKinds(kinds), log.WithError(err))

	if mode == validation.AllErrors {
		if _, ok := err.(*validation.AccumulatedError); !ok { //nolint:errorlint
			return &validation.AccumulatedError{Errors: validation.Flatten(err)}
		}
	}

	return err
}

func holderKeys(holder *did.Doc, scope did.MethodScope) jose.KeyResolver {
	return jose.KeyResolverFunc(func(headers jose.Headers) (*gojose.JSONWebKey, error) {
		kid, _ := headers.KeyID()

		vm, err := holder.VerificationMethodByKID(kid, scope)
		if err != nil {
			return nil, validation.Errorf(validation.KeyNotFound, "select verification method %q: %w", kid, err)
		}

		return vm.JSONWebKey()
	})
}

func checkLifetime(claims *vc.JWTPresClaims, opts *Options) error {
	now := opts.Clock.Now()

	if claims.Expiry != nil && claims.Expiry.Time().Before(now.Add(-opts.Leeway)) {
		return validation.Errorf(validation.ExpirationDate, "presentation expired at %s",
			claims.Expiry.Time().UTC().Format(time.RFC3339))
	}

	for _, issued := range []*jwt.NumericDate{claims.NotBefore, claims.IssuedAt} {
		if issued != nil && issued.Time().After(now.Add(opts.Leeway)) {
			return validation.Errorf(validation.IssuanceDate, "presentation is not valid before %s",
				issued.Time().UTC().Format(time.RFC3339))
		}
	}

	return nil
}

// checkBinding compares the audience and nonce with the expected domain and challenge. A verified
// signature says nothing about them.
func checkBinding(claims *vc.JWTPresClaims, opts *Options) error {
	return validation.Run(opts.FailFast,
		func() error {
			if opts.Domain == "" || lo.Contains([]string(claims.Audience), opts.Domain) {
				return nil
			}

			return validation.Errorf(validation.BindingError, "presentation audience %v does not contain %q",
				[]string(claims.Audience), opts.Domain)
		},
		func() error {
			if opts.Challenge == "" || claims.Nonce == opts.Challenge {
				return nil
			}

			return validation.Errorf(validation.BindingError, "presentation nonce %q does not match challenge %q",
				claims.Nonce, opts.Challenge)
		},
	)
}

func checkSubjectHolder(holder string, creds []*verifycredential.DecodedCredential, opts *Options) error {
	if opts.SubjectHolderRelationship == Any {
		return nil
	}

	checks := lo.Map(creds, func(c *verifycredential.DecodedCredential, i int) validation.Check {
		return func() error {
			if c == nil {
				return nil
			}

			if opts.SubjectHolderRelationship == SubjectOnNonTransferable && !c.Credential.NonTransferable {
				return nil
			}

			if !lo.Contains(c.Credential.SubjectIDs(), holder) {
				return validation.Errorf(validation.BindingError,
					"credential %d: holder %s is not a subject of the credential", i, holder)
			}

			return nil
		}
	})

	return validation.Run(opts.FailFast, checks...)
}

func credentialError(i int, err error) error {
	if err == nil {
		return nil
	}

	errs := lo.Map(validation.Flatten(err), func(e *validation.Error, _ int) *validation.Error {
		return validation.NewError(e.Kind, fmt.Errorf("credential %d: %w", i, e.Err))
	})

	if len(errs) == 1 {
		return errs[0]
	}

	return &validation.AccumulatedError{Errors: errs}
}
