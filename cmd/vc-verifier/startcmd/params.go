/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vc-verifier/cmd/common"
	cmdutils "github.com/trustbloc/vc-verifier/internal/pkg/utils/cmd"
	"github.com/trustbloc/vc-verifier/pkg/observability/tracing"
)

const (
	commonEnvVarUsageText = "Alternatively, this can be set with the following environment variable: "

	hostURLFlagName      = "host-url"
	hostURLFlagShorthand = "u"
	hostURLFlagUsage     = "URL to run the vc-verifier instance on. Format: HostName:Port."
	hostURLEnvKey        = "VC_VERIFIER_HOST_URL"

	universalResolverURLFlagName      = "universal-resolver-url"
	universalResolverURLFlagShorthand = "r"
	universalResolverURLFlagUsage     = "Universal Resolver instance is running on. Format: http://HostName:Port. " +
		commonEnvVarUsageText + universalResolverURLEnvKey
	universalResolverURLEnvKey = "UNIVERSAL_RESOLVER_HOST_URL"

	resolverRetriesFlagName  = "resolver-retries"
	resolverRetriesEnvKey    = "VC_VERIFIER_RESOLVER_RETRIES"
	resolverRetriesFlagUsage = "Number of times a DID resolution is retried after a transport failure. Default: 3. " +
		commonEnvVarUsageText + resolverRetriesEnvKey

	requestTimeoutFlagName  = "request-timeout"
	requestTimeoutEnvKey    = "VC_VERIFIER_REQUEST_TIMEOUT"
	requestTimeoutFlagUsage = "Timeout of outbound requests to the resolver and status list publishers, " +
		"for example 10s. Default: 5s. " + commonEnvVarUsageText + requestTimeoutEnvKey

	tlsSystemCertPoolFlagName  = "tls-systemcertpool"
	tlsSystemCertPoolEnvKey    = "VC_VERIFIER_TLS_SYSTEMCERTPOOL"
	tlsSystemCertPoolFlagUsage = "Use system certificate pool. Possible values [true] [false]. " +
		"Defaults to false if not set. " + commonEnvVarUsageText + tlsSystemCertPoolEnvKey

	tlsCACertsFlagName  = "tls-cacerts"
	tlsCACertsEnvKey    = "VC_VERIFIER_TLS_CACERTS"
	tlsCACertsFlagUsage = "Comma-Separated list of ca certs path. " + commonEnvVarUsageText + tlsCACertsEnvKey

	tlsCertificateFlagName  = "tls-certificate"
	tlsCertificateEnvKey    = "VC_VERIFIER_TLS_CERTIFICATE"
	tlsCertificateFlagUsage = "TLS certificate of the REST server. " + commonEnvVarUsageText + tlsCertificateEnvKey

	tlsKeyFlagName  = "tls-key"
	tlsKeyEnvKey    = "VC_VERIFIER_TLS_KEY"
	tlsKeyFlagUsage = "TLS key of the REST server. " + commonEnvVarUsageText + tlsKeyEnvKey

	metricsProviderFlagName  = "metrics-provider-name"
	metricsProviderEnvKey    = "VC_VERIFIER_METRICS_PROVIDER_NAME"
	metricsProviderFlagUsage = "The metrics provider name (for example: 'prometheus'). Metrics are disabled " +
		"when not set. " + commonEnvVarUsageText + metricsProviderEnvKey

	tracingProviderFlagName  = "tracing-provider"
	tracingProviderEnvKey    = "VC_VERIFIER_TRACING_PROVIDER"
	tracingProviderFlagUsage = "The tracing span exporter (JAEGER or STDOUT). Tracing is disabled when not set. " +
		commonEnvVarUsageText + tracingProviderEnvKey

	tracingServiceNameFlagName  = "tracing-service-name"
	tracingServiceNameEnvKey    = "VC_VERIFIER_TRACING_SERVICE_NAME"
	tracingServiceNameFlagUsage = "The name of the tracing service. Default: vc-verifier. " +
		commonEnvVarUsageText + tracingServiceNameEnvKey

	requestTokensFlagName  = "request-tokens"
	requestTokensEnvKey    = "VC_VERIFIER_REQUEST_TOKENS" //nolint: gosec
	requestTokensFlagUsage = "Tokens used for outbound requests, as name=token pairs. " +
		"'csl' is sent to status list publishers, 'resolver' to the universal resolver. " +
		commonEnvVarUsageText + requestTokensEnvKey

	allowedDIDMethodFlagName  = "allowed-did-method"
	allowedDIDMethodEnvKey    = "VC_VERIFIER_ALLOWED_DID_METHOD"
	allowedDIDMethodFlagUsage = "When set, credentials and presentations must be signed by a DID of this method " +
		"(for example: key). " + commonEnvVarUsageText + allowedDIDMethodEnvKey

	temporalLeewayFlagName  = "temporal-leeway"
	temporalLeewayEnvKey    = "VC_VERIFIER_TEMPORAL_LEEWAY"
	temporalLeewayFlagUsage = "Default leeway applied to issuance and expiration dates, for example 30s. " +
		commonEnvVarUsageText + temporalLeewayEnvKey

	metricsProviderPrometheus = "prometheus"

	resolverRequestTokenName = "resolver"

	splitRequestTokenLength = 2

	defaultResolverRetries    = 3
	defaultRequestTimeout     = 5 * time.Second
	defaultTracingServiceName = "vc-verifier"
)

type startupParameters struct {
	hostURL              string
	universalResolverURL string
	resolverRetries      int
	requestTimeout       time.Duration
	tlsParameters        *tlsParameters
	logLevel             string
	metricsProviderName  string
	tracingParams        *tracingParams
	requestTokens        map[string]string
	allowedDIDMethod     string
	temporalLeeway       time.Duration
}

type tlsParameters struct {
	systemCertPool bool
	caCerts        []string
	serveCertPath  string
	serveKeyPath   string
}

type tracingParams struct {
	exporter    tracing.SpanExporterType
	serviceName string
}

func getStartupParameters(cmd *cobra.Command) (*startupParameters, error) {
	hostURL, err := cmdutils.GetUserSetVarFromString(cmd, hostURLFlagName, hostURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	universalResolverURL, err := cmdutils.GetUserSetVarFromString(cmd, universalResolverURLFlagName,
		universalResolverURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	resolverRetries, err := cmdutils.GetUserSetOptionalInt(cmd, resolverRetriesFlagName, resolverRetriesEnvKey,
		defaultResolverRetries)
	if err != nil {
		return nil, err
	}

	requestTimeout, err := cmdutils.GetUserSetOptionalDuration(cmd, requestTimeoutFlagName, requestTimeoutEnvKey,
		defaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	tlsParams, err := getTLS(cmd)
	if err != nil {
		return nil, err
	}

	metricsProviderName, err := getMetricsProviderName(cmd)
	if err != nil {
		return nil, err
	}

	tracingParams, err := getTracingParams(cmd)
	if err != nil {
		return nil, err
	}

	temporalLeeway, err := cmdutils.GetUserSetOptionalDuration(cmd, temporalLeewayFlagName, temporalLeewayEnvKey, 0)
	if err != nil {
		return nil, err
	}

	return &startupParameters{
		hostURL:              hostURL,
		universalResolverURL: universalResolverURL,
		resolverRetries:      resolverRetries,
		requestTimeout:       requestTimeout,
		tlsParameters:        tlsParams,
		logLevel:             cmdutils.GetUserSetOptionalVarFromString(cmd, common.LogLevelFlagName, common.LogLevelEnvKey),
		metricsProviderName:  metricsProviderName,
		tracingParams:        tracingParams,
		requestTokens:        getRequestTokens(cmd),
		allowedDIDMethod:     cmdutils.GetUserSetOptionalVarFromString(cmd, allowedDIDMethodFlagName, allowedDIDMethodEnvKey),
		temporalLeeway:       temporalLeeway,
	}, nil
}

func getTLS(cmd *cobra.Command) (*tlsParameters, error) {
	tlsSystemCertPool, err := cmdutils.GetUserSetOptionalBool(cmd, tlsSystemCertPoolFlagName,
		tlsSystemCertPoolEnvKey, false)
	if err != nil {
		return nil, err
	}

	return &tlsParameters{
		systemCertPool: tlsSystemCertPool,
		caCerts:        cmdutils.GetUserSetOptionalCSVVar(cmd, tlsCACertsFlagName, tlsCACertsEnvKey),
		serveCertPath:  cmdutils.GetUserSetOptionalVarFromString(cmd, tlsCertificateFlagName, tlsCertificateEnvKey),
		serveKeyPath:   cmdutils.GetUserSetOptionalVarFromString(cmd, tlsKeyFlagName, tlsKeyEnvKey),
	}, nil
}

func getMetricsProviderName(cmd *cobra.Command) (string, error) {
	metricsProvider := cmdutils.GetUserSetOptionalVarFromString(cmd, metricsProviderFlagName, metricsProviderEnvKey)

	switch metricsProvider {
	case "", metricsProviderPrometheus:
		return metricsProvider, nil
	default:
		return "", fmt.Errorf("unsupported metrics provider: %s", metricsProvider)
	}
}

func getTracingParams(cmd *cobra.Command) (*tracingParams, error) {
	serviceName := cmdutils.GetUserSetOptionalVarFromString(cmd, tracingServiceNameFlagName, tracingServiceNameEnvKey)
	if serviceName == "" {
		serviceName = defaultTracingServiceName
	}

	exporter := cmdutils.GetUserSetOptionalVarFromString(cmd, tracingProviderFlagName, tracingProviderEnvKey)
	if !tracing.IsExporterSupported(exporter) {
		return nil, fmt.Errorf("unsupported tracing provider: %s", exporter)
	}

	return &tracingParams{
		exporter:    exporter,
		serviceName: serviceName,
	}, nil
}

func getRequestTokens(cmd *cobra.Command) map[string]string {
	requestTokens := cmdutils.GetUserSetOptionalCSVVar(cmd, requestTokensFlagName, requestTokensEnvKey)

	tokens := make(map[string]string)

	for _, token := range requestTokens {
		split := strings.Split(token, "=")
		switch len(split) {
		case splitRequestTokenLength:
			tokens[split[0]] = split[1]
		default:
			logger.Warn("invalid request token", log.WithID(split[0]))
		}
	}

	return tokens
}

func createFlags(startCmd *cobra.Command) {
	startCmd.Flags().StringP(hostURLFlagName, hostURLFlagShorthand, "", hostURLFlagUsage)
	startCmd.Flags().StringP(universalResolverURLFlagName, universalResolverURLFlagShorthand, "",
		universalResolverURLFlagUsage)
	startCmd.Flags().String(resolverRetriesFlagName, "", resolverRetriesFlagUsage)
	startCmd.Flags().String(requestTimeoutFlagName, "", requestTimeoutFlagUsage)
	startCmd.Flags().String(tlsSystemCertPoolFlagName, "", tlsSystemCertPoolFlagUsage)
	startCmd.Flags().StringSlice(tlsCACertsFlagName, []string{}, tlsCACertsFlagUsage)
	startCmd.Flags().String(tlsCertificateFlagName, "", tlsCertificateFlagUsage)
	startCmd.Flags().String(tlsKeyFlagName, "", tlsKeyFlagUsage)
	startCmd.Flags().StringP(common.LogLevelFlagName, common.LogLevelFlagShorthand, "", common.LogLevelPrefixFlagUsage)
	startCmd.Flags().String(metricsProviderFlagName, "", metricsProviderFlagUsage)
	startCmd.Flags().String(tracingProviderFlagName, "", tracingProviderFlagUsage)
	startCmd.Flags().String(tracingServiceNameFlagName, "", tracingServiceNameFlagUsage)
	startCmd.Flags().StringSlice(requestTokensFlagName, []string{}, requestTokensFlagUsage)
	startCmd.Flags().String(allowedDIDMethodFlagName, "", allowedDIDMethodFlagUsage)
	startCmd.Flags().String(temporalLeewayFlagName, "", temporalLeewayFlagUsage)
}
