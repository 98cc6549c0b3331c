/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package credentialstatus . Service

package credentialstatus

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/vc-verifier/pkg/observability/tracing/attributeutil"
	"github.com/trustbloc/vc-verifier/pkg/service/credentialstatus"
)

var _ Service = (*Wrapper)(nil) // make sure Wrapper implements credentialstatus.ServiceInterface

type Service credentialstatus.ServiceInterface

type Wrapper struct {
	svc    Service
	tracer trace.Tracer
}

func Wrap(svc Service, tracer trace.Tracer) *Wrapper {
	return &Wrapper{svc: svc, tracer: tracer}
}

func (w *Wrapper) CheckStatus(ctx context.Context,
	req *credentialstatus.CheckStatusRequest) (*credentialstatus.CheckStatusResult, error) {
	ctx, span := w.tracer.Start(ctx, "credentialstatus.CheckStatus")
	defer span.End()

	span.SetAttributes(attribute.String("issuer", req.Issuer))
	span.SetAttributes(attribute.Int("scope", int(req.Scope)))

	if req.Status != nil {
		span.SetAttributes(attributeutil.JSON("credential_status", req.Status))
	}

	res, err := w.svc.CheckStatus(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "status check failed")
		span.SetAttributes(attributeutil.ErrorKinds("error_kinds", err))

		return nil, err
	}

	span.SetAttributes(attribute.String("status", res.Status.String()))

	return res, nil
}

func (w *Wrapper) SupportedTypes() []string {
	return w.svc.SupportedTypes()
}
