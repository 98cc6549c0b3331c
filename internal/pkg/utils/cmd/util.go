/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// GetUserSetOptionalVarFromString returns values either command line flag or environment variable.
func GetUserSetOptionalVarFromString(cmd *cobra.Command, flagName, envKey string) string {
	//nolint // the error will not happen for optional var
	v, _ := GetUserSetVarFromString(cmd, flagName, envKey, true)

	return v
}

// GetUserSetVarFromString returns values either command line flag or environment variable.
// The command line flag takes precedence.
func GetUserSetVarFromString(cmd *cobra.Command, flagName, envKey string, isOptional bool) (string, error) {
	if cmd.Flags().Changed(flagName) {
		value, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", fmt.Errorf(flagName+" flag not found: %s", err)
		}

		if value == "" {
			return "", fmt.Errorf("%s value is empty", flagName)
		}

		return value, nil
	}

	value, isSet := os.LookupEnv(envKey)

	if isOptional || isSet {
		if !isOptional && value == "" {
			return "", fmt.Errorf("%s value is empty", envKey)
		}

		return value, nil
	}

	return "", errors.New("Neither " + flagName + " (command line flag) nor " + envKey +
		" (environment variable) have been set.")
}

// GetUserSetOptionalCSVVar returns the variables set via either command line flag or environment variable.
// The variables are parsed as comma-separated-values and the flag must be a StringSlice.
// A nil slice is returned when the variable is not set.
func GetUserSetOptionalCSVVar(cmd *cobra.Command, flagName, envKey string) []string {
	if cmd.Flags().Changed(flagName) {
		//nolint // the flag is registered by the caller
		value, _ := cmd.Flags().GetStringSlice(flagName)

		return value
	}

	value := os.Getenv(envKey)
	if value == "" {
		return nil
	}

	return strings.Split(value, ",")
}

// GetUserSetOptionalBool parses an optional boolean variable. defaultValue is returned when it is not set.
func GetUserSetOptionalBool(cmd *cobra.Command, flagName, envKey string, defaultValue bool) (bool, error) {
	v := GetUserSetOptionalVarFromString(cmd, flagName, envKey)
	if v == "" {
		return defaultValue, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid value for %s [%s]: %w", flagName, v, err)
	}

	return b, nil
}

// GetUserSetOptionalInt parses an optional integer variable. defaultValue is returned when it is not set.
func GetUserSetOptionalInt(cmd *cobra.Command, flagName, envKey string, defaultValue int) (int, error) {
	v := GetUserSetOptionalVarFromString(cmd, flagName, envKey)
	if v == "" {
		return defaultValue, nil
	}

	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s [%s]: %w", flagName, v, err)
	}

	if i < 0 {
		return 0, fmt.Errorf("invalid value for %s [%s]: must not be negative", flagName, v)
	}

	return i, nil
}

// GetUserSetOptionalDuration parses an optional duration variable such as "30s".
// defaultValue is returned when it is not set.
func GetUserSetOptionalDuration(cmd *cobra.Command, flagName, envKey string,
	defaultValue time.Duration) (time.Duration, error) {
	v := GetUserSetOptionalVarFromString(cmd, flagName, envKey)
	if v == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s [%s]: %w", flagName, v, err)
	}

	if d < 0 {
		return 0, fmt.Errorf("invalid value for %s [%s]: must not be negative", flagName, v)
	}

	return d, nil
}
