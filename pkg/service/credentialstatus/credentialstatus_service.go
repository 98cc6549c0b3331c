/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination service_mocks_test.go -self_package mocks -package credentialstatus -source=credentialstatus_service.go -mock_names didResolver=MockDIDResolver,statusRegistry=MockStatusRegistry

package credentialstatus

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vc-verifier/internal/logfields"
	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc/statustype"
	noopMetricsProvider "github.com/trustbloc/vc-verifier/pkg/observability/metrics/noop"
	"github.com/trustbloc/vc-verifier/pkg/validation"
)

var logger = log.New("credential-status-service")

type didResolver interface {
	Resolve(ctx context.Context, didID string) (*did.Doc, error)
}

type statusRegistry interface {
	Types() []string
	Check(ctx context.Context, req *statustype.Request, mode statustype.StatusCheck) (statustype.Outcome, error)
}

type metricsProvider interface {
	CheckStatusTime(value time.Duration)
	ResolveDIDTime(value time.Duration)
	StatusOutcome(outcome string)
}

type Config struct {
	DIDResolver didResolver
	Registry    statusRegistry
	// Clock is required for RevocationTimeframe2024 checks.
	Clock       validation.Clock
	Metrics     metricsProvider
}

// Service checks a single credentialStatus on behalf of a remote caller.
type Service struct {
	didResolver didResolver
	registry    statusRegistry
	clock       validation.Clock
	metrics     metricsProvider
}

func New(config *Config) *Service {
	registry := config.Registry
	if registry == nil {
		registry = statustype.NewRegistry(statustype.NewRevocationBitmap2022(), statustype.NewRevocationTimeframe2024())
	}

	metrics := config.Metrics
	if metrics == nil {
		metrics = &noopMetricsProvider.NoMetrics{}
	}

	return &Service{
		didResolver: config.DIDResolver,
		registry:    registry,
		clock:       config.Clock,
		metrics:     metrics,
	}
}

// SupportedTypes returns the credentialStatus types that can be checked, sorted.
func (s *Service) SupportedTypes() []string {
	types := s.registry.Types()
	sort.Strings(types)

	return types
}

// CheckStatus resolves the issuer DID and dispatches the status to the scheme registered for its type.
// An unregistered type fails InvalidStatus wrapping ErrUnsupportedStatusType.
func (s *Service) CheckStatus(ctx context.Context, req *CheckStatusRequest) (*CheckStatusResult, error) {
	if req.Status == nil {
		return nil, validation.NewError(validation.InvalidStatus, ErrMissingStatus)
	}

	if !lo.Contains(s.registry.Types(), req.Status.Type) {
		return nil, validation.NewError(validation.InvalidStatus,
			fmt.Errorf("%w: %q", ErrUnsupportedStatusType, req.Status.Type))
	}

	if _, err := did.Parse(req.Issuer); err != nil {
		return nil, validation.Errorf(validation.SignerURL, "issuer %q is not a DID: %w", req.Issuer, err)
	}

	issuer, err := s.resolve(ctx, req.Issuer)
	if err != nil {
		return nil, err
	}

	st := time.Now()

	outcome, err := s.registry.Check(ctx, &statustype.Request{
		Status: req.Status,
		Issuer: issuer,
		Clock:  s.clock,
		Scope:  req.Scope,
	}, statustype.Strict)

	s.metrics.CheckStatusTime(time.Since(st))

	if err != nil {
		logger.Debug("status check failed", logfields.WithDID(req.Issuer), logfields.WithStatusType(req.Status.Type),
			log.WithError(err))

		return nil, err
	}

	s.metrics.StatusOutcome(outcome.String())

	logger.Debug("status checked", logfields.WithDID(req.Issuer), logfields.WithStatusType(req.Status.Type),
		logfields.WithStatus(outcome.String()))

	return &CheckStatusResult{Status: outcome, Issuer: issuer.ID}, nil
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
