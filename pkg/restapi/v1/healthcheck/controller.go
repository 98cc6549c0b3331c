/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthcheck

import (
	"net/http"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/labstack/echo/v4"

	"github.com/trustbloc/vc-verifier/pkg/observability/health/healthutil"
)

const cacheDuration = time.Second

type Config struct {
	Checks []health.Check
}

// Controller for health check API.
type Controller struct {
	handler http.Handler
}

func NewController(config *Config) *Controller {
	rt := healthutil.NewResponseTimes()

	opts := []health.CheckerOption{
		health.WithCacheDuration(cacheDuration),
		health.WithInterceptors(healthutil.ResponseTimeInterceptor(rt)),
	}

	for _, check := range config.Checks {
		opts = append(opts, health.WithCheck(check))
	}

	return &Controller{
		handler: health.NewHandler(health.NewChecker(opts...),
			health.WithResultWriter(healthutil.NewJSONResultWriter(rt))),
	}
}

// GetHealthcheck returns the health check status. The response is 503 when a check is failing.
// GET /healthcheck.
func (c *Controller) GetHealthcheck(ctx echo.Context) error {
	c.handler.ServeHTTP(ctx.Response(), ctx.Request())

	return nil
}

// RegisterHandlers adds the health check route to the router.
func RegisterHandlers(router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}, c *Controller) {
	router.GET("/healthcheck", c.GetHealthcheck)
}
