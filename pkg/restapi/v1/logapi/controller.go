/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vc-verifier/internal/logfields"
	"github.com/trustbloc/vc-verifier/pkg/restapi/resterr"
)

var logger = log.New("logapi")

const maxSpecLength = 4096

type router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

type Controller struct{}

func NewController(router router) *Controller {
	c := &Controller{}

	router.GET("/loglevels", c.GetLogLevels)
	router.POST("/loglevels", c.PostLogLevels)

	return c
}

// GetLogLevels returns the current log spec, for example "binding=DEBUG:INFO".
// (GET /loglevels).
func (c *Controller) GetLogLevels(ctx echo.Context) error {
	return ctx.String(http.StatusOK, log.GetSpec())
}

// PostLogLevels updates log levels from a spec in the request body.
// (POST /loglevels).
func (c *Controller) PostLogLevels(ctx echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxSpecLength))
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	spec := strings.TrimSpace(string(body))

	if err = log.SetSpec(spec); err != nil {
		return resterr.NewValidationError(resterr.InvalidValue, "logLevels", err)
	}

	logger.Info("log levels modified", logfields.WithUserLogLevel(spec))

	return ctx.NoContent(http.StatusOK)
}
