/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package version

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

type statusTypes interface {
	Types() []string
}

type Config struct {
	Version     string
	StatusTypes statusTypes
}

// Controller reports the build version and the credential status types the verifier understands.
type Controller struct {
	version     string
	statusTypes statusTypes
}

type versionResponse struct {
	Version     string   `json:"version"`
	StatusTypes []string `json:"statusTypes,omitempty"`
}

func NewController(router router, cfg *Config) *Controller {
	c := &Controller{
		version:     cfg.Version,
		statusTypes: cfg.StatusTypes,
	}

	router.GET("/version", c.GetVersion)

	return c
}

// GetVersion returns the version of the service.
// (GET /version).
func (c *Controller) GetVersion(ctx echo.Context) error {
	resp := versionResponse{Version: c.version}

	if c.statusTypes != nil {
		resp.StatusTypes = c.statusTypes.Types()
	}

	return ctx.JSON(http.StatusOK, resp)
}
