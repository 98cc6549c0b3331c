/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vc-verifier/cmd/common"
	"github.com/trustbloc/vc-verifier/pkg/doc/vc/statustype"
)

type mockServer struct {
	tls bool
}

func (s *mockServer) ListenAndServe() error {
	return nil
}

func (s *mockServer) ListenAndServeTLS(_, _ string) error {
	s.tls = true

	return nil
}

func TestStartCmdContents(t *testing.T) {
	startCmd := GetStartCmd()

	require.Equal(t, "start", startCmd.Use)
	require.Equal(t, "Start vc-verifier", startCmd.Short)
	require.Equal(t, "Start the vc-verifier REST service", startCmd.Long)

	checkFlagPropertiesCorrect(t, startCmd, hostURLFlagName, hostURLFlagShorthand, hostURLFlagUsage)
	checkFlagPropertiesCorrect(t, startCmd, universalResolverURLFlagName, universalResolverURLFlagShorthand,
		universalResolverURLFlagUsage)
}

func TestStartCmdWithBlankArg(t *testing.T) {
	t.Run("test blank host url arg", func(t *testing.T) {
		startCmd := GetStartCmd()

		startCmd.SetArgs([]string{"--" + hostURLFlagName, ""})

		err := startCmd.Execute()
		require.Error(t, err)
		require.Contains(t, err.Error(), "host-url value is empty")
	})

	t.Run("test blank universal resolver url arg", func(t *testing.T) {
		startCmd := GetStartCmd()

		startCmd.SetArgs([]string{
			"--" + hostURLFlagName, "localhost:8080",
			"--" + universalResolverURLFlagName, "",
		})

		err := startCmd.Execute()
		require.Error(t, err)
		require.Contains(t, err.Error(), "universal-resolver-url value is empty")
	})
}

func TestStartCmdWithMissingArg(t *testing.T) {
	t.Run("test missing host url arg", func(t *testing.T) {
		startCmd := GetStartCmd()
		startCmd.SetArgs([]string{})

		err := startCmd.Execute()
		require.Error(t, err)
		require.Contains(t, err.Error(),
			"Neither host-url (command line flag) nor VC_VERIFIER_HOST_URL (environment variable) have been set.")
	})
}

func TestStartCmdWithBlankEnvVar(t *testing.T) {
	t.Setenv(hostURLEnvKey, "")

	startCmd := GetStartCmd()
	startCmd.SetArgs([]string{})

	err := startCmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "VC_VERIFIER_HOST_URL value is empty")
}

func TestStartCmdWithInvalidArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  string
	}{
		{
			name: "invalid resolver url",
			args: []string{"--" + universalResolverURLFlagName, "not a url"},
			err:  "failed to create universal resolver",
		},
		{
			name: "invalid retries",
			args: []string{"--" + resolverRetriesFlagName, "many"},
			err:  "invalid value for resolver-retries",
		},
		{
			name: "invalid timeout",
			args: []string{"--" + requestTimeoutFlagName, "5"},
			err:  "invalid value for request-timeout",
		},
		{
			name: "invalid leeway",
			args: []string{"--" + temporalLeewayFlagName, "-1m"},
			err:  "must not be negative",
		},
		{
			name: "invalid tls system cert pool",
			args: []string{"--" + tlsSystemCertPoolFlagName, "wrongvalue"},
			err:  "invalid syntax",
		},
		{
			name: "missing ca cert",
			args: []string{"--" + tlsCACertsFlagName, "/nonexistent/ca.pem"},
			err:  "failed to read cert",
		},
		{
			name: "unsupported metrics provider",
			args: []string{"--" + metricsProviderFlagName, "statsd"},
			err:  "unsupported metrics provider: statsd",
		},
		{
			name: "unsupported tracing provider",
			args: []string{"--" + tracingProviderFlagName, "ZIPKIN"},
			err:  "unsupported tracing provider: ZIPKIN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			startCmd := GetStartCmd(WithHTTPServer(&mockServer{}))

			args := []string{
				"--" + hostURLFlagName, "localhost:8080",
				"--" + universalResolverURLFlagName, "http://localhost:9090/1.0/identifiers",
			}

			startCmd.SetArgs(append(args, tt.args...))

			err := startCmd.Execute()
			require.ErrorContains(t, err, tt.err)
		})
	}
}

func TestStartCmdValidArgs(t *testing.T) {
	resolver := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer resolver.Close()

	e := echo.New()
	srv := &mockServer{}

	startCmd := GetStartCmd(WithHTTPServer(srv), WithEchoHandler(e), WithVersion("test"))

	startCmd.SetArgs([]string{
		"--" + hostURLFlagName, "localhost:8080",
		"--" + universalResolverURLFlagName, resolver.URL + "/1.0/identifiers",
		"--" + resolverRetriesFlagName, "0",
		"--" + requestTimeoutFlagName, "2s",
		"--" + metricsProviderFlagName, metricsProviderPrometheus,
		"--" + requestTokensFlagName, "csl=tk1", "--" + requestTokensFlagName, "resolver=tk2",
		"--" + requestTokensFlagName, "invalid=tk=1",
		"--" + allowedDIDMethodFlagName, "key",
		"--" + temporalLeewayFlagName, "1m",
		"--" + common.LogLevelFlagName, log.ERROR.String(),
	})

	require.NoError(t, startCmd.Execute())
	require.False(t, srv.tls)

	t.Run("ready", func(t *testing.T) {
		rec := serve(e, http.MethodGet, readinessEndpoint)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("status types", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/verifier/status/types")
		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Types []string `json:"types"`
		}

		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.ElementsMatch(t, []string{
			statustype.RevocationBitmap2022,
			statustype.RevocationTimeframe2024,
			statustype.StatusList2021,
		}, body.Types)
	})

	t.Run("health", func(t *testing.T) {
		rec := serve(e, http.MethodGet, healthCheckEndpoint)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("version", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/version")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"version":"test"`)
	})

	t.Run("metrics", func(t *testing.T) {
		rec := serve(e, http.MethodGet, metricsEndpoint)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestStartCmdValidArgsEnvVar(t *testing.T) {
	t.Setenv(hostURLEnvKey, "localhost:8080")
	t.Setenv(universalResolverURLEnvKey, "http://localhost:9090/1.0/identifiers")
	t.Setenv(tlsCertificateEnvKey, "cert.pem")
	t.Setenv(tlsKeyEnvKey, "key.pem")
	t.Setenv(tracingServiceNameEnvKey, "verifier-test")

	srv := &mockServer{}

	startCmd := GetStartCmd(WithHTTPServer(srv))
	startCmd.SetArgs([]string{})

	require.NoError(t, startCmd.Execute())
	require.True(t, srv.tls)
}

func TestRequestLogSkipper(t *testing.T) {
	tests := []struct {
		path string
		skip bool
	}{
		{path: healthCheckEndpoint, skip: true},
		{path: metricsEndpoint, skip: true},
		{path: readinessEndpoint, skip: true},
		{path: "/verifier/status/check", skip: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			ctx := echo.New().NewContext(req, httptest.NewRecorder())
			ctx.SetPath(tt.path)

			require.Equal(t, tt.skip, RequestLogSkipper(ctx))
		})
	}
}

func serve(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, http.NoBody))

	return rec
}

func checkFlagPropertiesCorrect(t *testing.T, cmd *cobra.Command, flagName, flagShorthand, flagUsage string) {
	t.Helper()

	flag := cmd.Flag(flagName)

	require.NotNil(t, flag)
	require.Equal(t, flagName, flag.Name)
	require.Equal(t, flagShorthand, flag.Shorthand)
	require.Equal(t, flagUsage, flag.Usage)
	require.Equal(t, "", flag.Value.String())
}
