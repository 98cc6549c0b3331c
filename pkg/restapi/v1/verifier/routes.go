/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"github.com/labstack/echo/v4"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Check the status of a credential.
	// (POST /verifier/status/check)
	PostCheckStatus(ctx echo.Context) error
	// List supported credential status types.
	// (GET /verifier/status/types)
	GetStatusTypes(ctx echo.Context) error
	// Validate a credential.
	// (POST /verifier/credentials/validate)
	PostValidateCredential(ctx echo.Context) error
	// Validate a presentation.
	// (POST /verifier/presentations/validate)
	PostValidatePresentation(ctx echo.Context) error
}

// EchoRouter is the subset of echo routing used by RegisterHandlers. Both *echo.Echo and *echo.Group
// implement it.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	router.POST("/verifier/status/check", si.PostCheckStatus)
	router.GET("/verifier/status/types", si.GetStatusTypes)
	router.POST("/verifier/credentials/validate", si.PostValidateCredential)
	router.POST("/verifier/presentations/validate", si.PostValidatePresentation)
}
