/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthutil

import (
	"context"
	"testing"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/stretchr/testify/require"
)

func TestResponseTimeInterceptor(t *testing.T) {
	rt := NewResponseTimes()
	interceptor := ResponseTimeInterceptor(rt)

	var calls int

	next := func(_ context.Context, _ string, state health.CheckState) health.CheckState {
		calls++

		return state
	}

	_, ok := rt.Get("test")
	require.False(t, ok)

	interceptor(next)(context.Background(), "test", health.CheckState{})
	interceptor(next)(context.Background(), "test", health.CheckState{})

	require.Equal(t, 2, calls)

	_, ok = rt.Get("test")
	require.True(t, ok)
}

func TestResponseTimes_Average(t *testing.T) {
	rt := NewResponseTimes()
	rt.record("test", 2*time.Millisecond)
	rt.record("test", 4*time.Millisecond)

	state, ok := rt.Get("test")
	require.True(t, ok)
	require.Equal(t, 4*time.Millisecond, state.LastResponseTime)
	require.Equal(t, 3*time.Millisecond, state.AverageResponseTime)
}
