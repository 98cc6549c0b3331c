/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const (
	healthCheckEndpoint = "/healthcheck"
	metricsEndpoint     = "/metrics"
	versionEndpoint     = "/version"
)

// RequestLogSkipper keeps health checks and metric scrapes out of the request log.
func RequestLogSkipper(c echo.Context) bool {
	switch c.Path() {
	case healthCheckEndpoint, metricsEndpoint, readinessEndpoint, versionEndpoint:
		return true
	}

	return echomw.DefaultSkipper(c)
}
