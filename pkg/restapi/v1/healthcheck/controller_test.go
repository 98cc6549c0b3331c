/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthcheck_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexliesenfeld/health"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/vc-verifier/pkg/restapi/v1/healthcheck"
)

func getHealthcheck(t *testing.T, controller *healthcheck.Controller) (int, map[string]interface{}) {
	t.Helper()

	e := echo.New()
	healthcheck.RegisterHandlers(e, controller)

	req := httptest.NewRequest(http.MethodGet, "/healthcheck", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return rec.Code, resp
}

func TestController_GetHealthcheck(t *testing.T) {
	t.Run("200 OK", func(t *testing.T) {
		code, resp := getHealthcheck(t, healthcheck.NewController(&healthcheck.Config{
			Checks: []health.Check{{
				Name:  "did-resolver",
				Check: func(context.Context) error { return nil },
			}},
		}))
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "up", resp["status"])
		require.Contains(t, resp, "current_time")
	})

	t.Run("no checks", func(t *testing.T) {
		code, _ := getHealthcheck(t, healthcheck.NewController(&healthcheck.Config{}))
		require.Equal(t, http.StatusOK, code)
	})

	t.Run("503 when a check fails", func(t *testing.T) {
		code, resp := getHealthcheck(t, healthcheck.NewController(&healthcheck.Config{
			Checks: []health.Check{{
				Name:  "did-resolver",
				Check: func(context.Context) error { return errors.New("connection refused") },
			}},
		}))
		require.Equal(t, http.StatusServiceUnavailable, code)
		require.Equal(t, "down", resp["status"])

		components, ok := resp["components"].(map[string]interface{})
		require.True(t, ok)
		require.Contains(t, components, "did-resolver")
	})
}
