/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package verifypresentation . Service

package verifypresentation

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/vc-verifier/pkg/doc/did"
	"github.com/trustbloc/vc-verifier/pkg/observability/tracing/attributeutil"
	"github.com/trustbloc/vc-verifier/pkg/service/verifypresentation"
)

var _ Service = (*Wrapper)(nil) // make sure Wrapper implements verifypresentation.ServiceInterface

type Service verifypresentation.ServiceInterface

type Wrapper struct {
	svc    Service
	tracer trace.Tracer
}

func Wrap(svc Service, tracer trace.Tracer) *Wrapper {
	return &Wrapper{svc: svc, tracer: tracer}
}

func (w *Wrapper) Validate(ctx context.Context, token string, holder *did.Doc,
	opts *verifypresentation.Options) (*verifypresentation.DecodedPresentation, error) {
	ctx, span := w.tracer.Start(ctx, "verifypresentation.Validate")
	defer span.End()

	if holder != nil {
		span.SetAttributes(attribute.String("holder", holder.ID))
	}

	setAttributes(span, token, opts)

	res, err := w.svc.Validate(ctx, token, holder, opts)
	endValidation(span, res, err)

	return res, err
}

func (w *Wrapper) ValidateWithResolver(ctx context.Context, token string,
	opts *verifypresentation.Options) (*verifypresentation.DecodedPresentation, error) {
	ctx, span := w.tracer.Start(ctx, "verifypresentation.ValidateWithResolver")
	defer span.End()

	setAttributes(span, token, opts)

	res, err := w.svc.ValidateWithResolver(ctx, token, opts)
	endValidation(span, res, err)

	return res, err
}

// setAttributes records the presentation claims without the embedded credentials.
func setAttributes(span trace.Span, token string, opts *verifypresentation.Options) {
	span.SetAttributes(attributeutil.JWTClaims("presentation", token,
		attributeutil.WithRedacted("vp.verifiableCredential")))

	if opts == nil {
		return
	}

	span.SetAttributes(
		attribute.String("challenge", opts.Challenge),
		attribute.String("domain", opts.Domain),
		attribute.String("subject_holder_relationship", opts.SubjectHolderRelationship.String()),
		attribute.Bool("skip_credentials", opts.SkipCredentials),
		attribute.String("fail_fast", opts.FailFast.String()),
	)
}

func endValidation(span trace.Span, res *verifypresentation.DecodedPresentation, err error) {
	if res != nil {
		span.SetAttributes(
			attribute.String("key_id", res.KeyID),
			attribute.Int("credentials", len(res.Credentials)),
		)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "presentation validation failed")
		span.SetAttributes(attributeutil.ErrorKinds("error_kinds", err))
	}
}
