/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alexliesenfeld/health"
)

type healthStatus struct {
	Status      health.AvailabilityStatus `json:"status"`
	CurrentTime time.Time                 `json:"current_time"`
	Components  map[string]checkResult    `json:"components,omitempty"`
}

type checkResult struct {
	health.CheckResult
	LastResponseTime    string `json:"last_response_time,omitempty"`
	AverageResponseTime string `json:"avg_response_time,omitempty"`
}

// JSONResultWriter writes a checker result as JSON, adding the response times of each component.
type JSONResultWriter struct {
	responseTimes *ResponseTimes
	now           func() time.Time
}

func NewJSONResultWriter(rt *ResponseTimes) *JSONResultWriter {
	return &JSONResultWriter{
		responseTimes: rt,
		now:           time.Now,
	}
}

func (rw *JSONResultWriter) Write(result *health.CheckerResult, status int, w http.ResponseWriter,
	_ *http.Request) error {
	r := &healthStatus{
		Status:      result.Status,
		CurrentTime: rw.now().UTC(),
	}

	if len(result.Details) > 0 {
		r.Components = map[string]checkResult{}

		for name, cr := range result.Details {
			res := checkResult{CheckResult: cr}

			if t, ok := rw.responseTimes.Get(name); ok {
				res.LastResponseTime = t.LastResponseTime.String()
				res.AverageResponseTime = t.AverageResponseTime.String()
			}

			r.Components[name] = res
		}
	}

	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("cannot marshal response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(b)

	return err
}
