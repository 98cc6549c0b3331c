/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination controller_mocks_test.go -self_package mocks -package verifier -source=controller.go -mock_names statusService=MockStatusService,validationService=MockValidationService

package verifier

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vc-verifier/internal/logfields"
	"github.com/trustbloc/vc-verifier/pkg/binding"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc/statustype"
	"github.com/trustbloc/vc-verifier/pkg/restapi/resterr"
	"github.com/trustbloc/vc-verifier/pkg/restapi/v1/util"
	"github.com/trustbloc/vc-verifier/pkg/service/credentialstatus"
)

var logger = log.New("verifier-restapi")

var _ ServerInterface = (*Controller)(nil) // make sure Controller implements ServerInterface

type statusService interface {
	CheckStatus(ctx context.Context, req *credentialstatus.CheckStatusRequest) (*credentialstatus.CheckStatusResult,
		error)
	SupportedTypes() []string
}

type validationService interface {
	ValidateCredential(ctx context.Context, req *binding.CredentialRequest) (*binding.CredentialResult, error)
	ValidatePresentation(ctx context.Context, req *binding.PresentationRequest) (*binding.PresentationResult, error)
}

type Config struct {
	StatusSvc     statusService
	ValidationSvc validationService
}

// Controller for the verifier API.
type Controller struct {
	statusSvc     statusService
	validationSvc validationService
}

// NewController creates a new controller for the verifier API.
func NewController(config *Config) *Controller {
	return &Controller{
		statusSvc:     config.StatusSvc,
		validationSvc: config.ValidationSvc,
	}
}

// PostCheckStatus checks the status of a credential.
// (POST /verifier/status/check).
func (c *Controller) PostCheckStatus(ctx echo.Context) error {
	var body CheckStatusRequest

	if err := util.ReadBody(ctx, &body); err != nil {
		return err
	}

	return util.WriteOutput(ctx)(c.checkStatus(ctx.Request().Context(), &body))
}

func (c *Controller) checkStatus(ctx context.Context, body *CheckStatusRequest) (*CheckStatusResponse, error) {
	scope := statustype.ScopeAll

	if body.StatusScope != nil {
		switch *body.StatusScope {
		case "validityTimeframe":
			scope = statustype.ScopeValidityTimeframe
		case "revocation":
			scope = statustype.ScopeRevocation
		}
	}

	st := time.Now()

	res, err := c.statusSvc.CheckStatus(ctx, &credentialstatus.CheckStatusRequest{
		Issuer: body.Issuer,
		Status: body.CredentialStatus,
		Scope:  scope,
	})
	if err != nil {
		if errors.Is(err, credentialstatus.ErrUnsupportedStatusType) {
			return nil, resterr.NewValidationError(resterr.DoesntExist, "credentialStatus.type", err)
		}

		return nil, resterr.FromValidation(resterr.VerifierStatusCheckSvcComponent, "CheckStatus", err)
	}

	logger.Debug("status checked", logfields.WithStatusType(body.CredentialStatus.Type),
		logfields.WithStatus(res.Status.String()), log.WithDuration(time.Since(st)))

	return &CheckStatusResponse{Status: res.Status}, nil
}

// GetStatusTypes lists the supported credential status types.
// (GET /verifier/status/types).
func (c *Controller) GetStatusTypes(ctx echo.Context) error {
	return util.WriteOutput(ctx)(&StatusTypesResponse{Types: c.statusSvc.SupportedTypes()}, nil)
}

// PostValidateCredential validates a credential JWT. Validation failures are reported in the response body.
// (POST /verifier/credentials/validate).
func (c *Controller) PostValidateCredential(ctx echo.Context) error {
	var body binding.CredentialRequest

	if err := util.ReadBody(ctx, &body); err != nil {
		return err
	}

	res, err := c.validationSvc.ValidateCredential(ctx.Request().Context(), &body)
	if err != nil {
		return resterr.NewValidationError(resterr.InvalidValue, "options", err)
	}

	if !res.Valid {
		logger.Debug("credential is not valid", logfields.WithErrorKinds(errorKinds(res.Errors)))
	}

	return util.WriteOutput(ctx)(res, nil)
}

// PostValidatePresentation validates a presentation JWT and its embedded credentials.
// (POST /verifier/presentations/validate).
func (c *Controller) PostValidatePresentation(ctx echo.Context) error {
	var body binding.PresentationRequest

	if err := util.ReadBody(ctx, &body); err != nil {
		return err
	}

	res, err := c.validationSvc.ValidatePresentation(ctx.Request().Context(), &body)
	if err != nil {
		return resterr.NewValidationError(resterr.InvalidValue, "options", err)
	}

	if !res.Valid {
		logger.Debug("presentation is not valid", logfields.WithErrorKinds(errorKinds(res.Errors)))
	}

	return util.WriteOutput(ctx)(res, nil)
}

func errorKinds(details []binding.ErrorDetail) []string {
	return lo.Map(details, func(d binding.ErrorDetail, _ int) string {
		return string(d.Kind)
	})
}
