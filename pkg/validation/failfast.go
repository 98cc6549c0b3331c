/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package validation

import (
	"encoding/json"
	"fmt"
)

// FailFast controls whether a sequence of checks halts at the first failure.
type FailFast int

const (
	// FirstError halts at the first failing check.
	FirstError FailFast = iota
	// AllErrors runs every check and returns an AccumulatedError if any failed.
	AllErrors
)

func (f FailFast) String() string {
	switch f {
	case FirstError:
		return "FirstError"
	case AllErrors:
		return "AllErrors"
	default:
		return fmt.Sprintf("FailFast(%d)", int(f))
	}
}

// MarshalJSON encodes the mode as its name.
func (f FailFast) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON decodes the mode from its name.
func (f *FailFast) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "FirstError", "":
		*f = FirstError
	case "AllErrors":
		*f = AllErrors
	default:
		return fmt.Errorf("unsupported fail fast mode: %s", s)
	}

	return nil
}

// Check is a single independent validation step.
type Check func() error

// Run executes checks in order. With FirstError it returns the first failure unchanged.
// With AllErrors it runs every check and returns a non-empty *AccumulatedError preserving
// check order; nested accumulated errors are flattened.
func Run(mode FailFast, checks ...Check) error {
	var errs []*Error

	for _, check := range checks {
		if check == nil {
			continue
		}

		err := check()
		if err == nil {
			continue
		}

		if mode == FirstError {
			return err
		}

		errs = append(errs, Flatten(err)...)
	}

	if len(errs) == 0 {
		return nil
	}

	return &AccumulatedError{Errors: errs}
}
