// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-crypto.
//
// go-crypto is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Global configuration
	globalConfig *Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "crypt",
	Short: "go-crypto CLI - provider-agnostic cryptographic operations",
	Long: `go-crypto CLI provides a command-line interface to the go-crypto
library: message digests, MACs, symmetric encryption (including AEAD
modes) and public key generation, dispatched through an ordered chain
of crypto providers.

The provider search order is configurable; the first provider that
supports a requested algorithm wins.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return globalConfig.Load()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	globalConfig = NewConfig()

	rootCmd.PersistentFlags().StringVar(&globalConfig.ConfigFile, "config", "",
		"config file (default is $HOME/.crypt.yaml)")
	rootCmd.PersistentFlags().BoolVar(&globalConfig.Debug, "debug", false,
		"enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(algorithmsCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(macCmd)
	rootCmd.AddCommand(randCmd)
	rootCmd.AddCommand(encryptCmd)
	rootCmd.AddCommand(decryptCmd)
	rootCmd.AddCommand(keygenCmd)
}

// getConfig returns the global configuration
func getConfig() *Config {
	return globalConfig
}
