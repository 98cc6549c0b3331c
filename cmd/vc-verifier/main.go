/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package main is the vc-verifier REST service. It validates JWT verifiable credentials and presentations
// and checks credential status on behalf of relying parties.
package main

import (
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/vc-verifier/cmd/vc-verifier/startcmd"
)

var logger = log.New("vc-verifier")

var Version string // will be embedded during build

func main() {
	rootCmd := &cobra.Command{
		Use: "vc-verifier",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	rootCmd.AddCommand(startcmd.GetStartCmd(startcmd.WithVersion(Version)))

	if err := rootCmd.Execute(); err != nil {
		logger.Fatal("Failed to run vc-verifier", log.WithError(err))
	}
}
