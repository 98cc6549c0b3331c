/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package verifycredential . Service

package verifycredential

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc/statustype"
	"github.com/trustbloc/vc-verifier/pkg/observability/tracing/attributeutil"
	"github.com/trustbloc/vc-verifier/pkg/service/verifycredential"
)

var _ Service = (*Wrapper)(nil) // make sure Wrapper implements verifycredential.ServiceInterface

type Service verifycredential.ServiceInterface

type Wrapper struct {
	svc    Service
	tracer trace.Tracer
}

func Wrap(svc Service, tracer trace.Tracer) *Wrapper {
	return &Wrapper{svc: svc, tracer: tracer}
}

func (w *Wrapper) Validate(ctx context.Context, token string, issuer *did.Doc,
	opts *verifycredential.Options) (*verifycredential.DecodedCredential, error) {
	ctx, span := w.tracer.Start(ctx, "verifycredential.Validate")
	defer span.End()

	if issuer != nil {
		span.SetAttributes(attribute.String("issuer", issuer.ID))
	}

	span.SetAttributes(attributeutil.JWTClaims("credential", token, attributeutil.WithRedacted("vc.credentialSubject")))
	setOptions(span, opts)

	res, err := w.svc.Validate(ctx, token, issuer, opts)
	endValidation(span, res, err)

	return res, err
}

func (w *Wrapper) ValidateWithResolver(ctx context.Context, token string,
	opts *verifycredential.Options) (*verifycredential.DecodedCredential, error) {
	ctx, span := w.tracer.Start(ctx, "verifycredential.ValidateWithResolver")
	defer span.End()

	span.SetAttributes(attributeutil.JWTClaims("credential", token, attributeutil.WithRedacted("vc.credentialSubject")))
	setOptions(span, opts)

	res, err := w.svc.ValidateWithResolver(ctx, token, opts)
	endValidation(span, res, err)

	return res, err
}

func (w *Wrapper) CheckStatus(ctx context.Context, credential *vc.Credential, issuer *did.Doc,
	opts *verifycredential.Options) (statustype.Outcome, error) {
	ctx, span := w.tracer.Start(ctx, "verifycredential.CheckStatus")
	defer span.End()

	if credential != nil {
		span.SetAttributes(attributeutil.JSON("credential_status", credential.Status))
	}

	if issuer != nil {
		span.SetAttributes(attribute.String("issuer", issuer.ID))
	}

	outcome, err := w.svc.CheckStatus(ctx, credential, issuer, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "status check failed")
		span.SetAttributes(attributeutil.ErrorKinds("error_kinds", err))
	}

	span.SetAttributes(attribute.String("status", outcome.String()))

	return outcome, err
}

func setOptions(span trace.Span, opts *verifycredential.Options) {
	if opts == nil {
		return
	}

	span.SetAttributes(
		attribute.String("expected_issuer", opts.ExpectedIssuer),
		attribute.String("allowed_did_method", opts.AllowedDIDMethod),
		attribute.String("method_scope", opts.MethodScope.String()),
		attribute.String("status_check", opts.StatusCheck.String()),
		attribute.String("fail_fast", opts.FailFast.String()),
		attribute.Bool("key_binding", opts.KeyBinding != nil),
	)
}

func endValidation(span trace.Span, res *verifycredential.DecodedCredential, err error) {
	if res != nil {
		span.SetAttributes(
			attribute.String("key_id", res.KeyID),
			attribute.String("status", res.Status.String()),
			attribute.Bool("disclosed", res.Disclosed),
		)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "credential validation failed")
		span.SetAttributes(attributeutil.ErrorKinds("error_kinds", err))
	}
}
