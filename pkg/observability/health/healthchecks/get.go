/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthchecks

import (
	"context"
	"fmt"
	"time"

	"github.com/alexliesenfeld/health"
)

const (
	DIDResolverCheck = "did-resolver"

	defaultTimeout = 5 * time.Second
)

type didResolver interface {
	HealthCheck(ctx context.Context) error
}

type Config struct {
	// DIDResolver is checked when set. A verifier running with a static resolver has nothing to check.
	DIDResolver didResolver
	Timeout     time.Duration
}

// Get returns the health checks of the verifier dependencies.
func Get(config *Config) []health.Check {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	var checks []health.Check

	if config.DIDResolver != nil {
		checks = append(checks, health.Check{
			Name:               DIDResolverCheck,
			Check:              NewDIDResolverCheck(config.DIDResolver),
			Timeout:            timeout,
			MaxTimeInError:     1,
			MaxContiguousFails: 1,
		})
	}

	return checks
}

// NewDIDResolverCheck returns a check that fails when the DID resolver is unreachable.
func NewDIDResolverCheck(resolver didResolver) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if err := resolver.HealthCheck(ctx); err != nil {
			return fmt.Errorf("did resolver is unavailable: %w", err)
		}

		return nil
	}
}
