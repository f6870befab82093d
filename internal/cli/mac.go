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
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-crypto/pkg/types"
)

var (
	macAlgorithm string
	macKeyHex    string
)

var macCmd = &cobra.Command{
	Use:   "mac [file]",
	Short: "Compute a message authentication code over a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := types.NewMACSpec(macAlgorithm)
		if err != nil {
			return err
		}
		key, err := hex.DecodeString(macKeyHex)
		if err != nil {
			return fmt.Errorf("decode key: %w", err)
		}
		eng, err := getConfig().CreateEngine()
		if err != nil {
			return err
		}
		msg, err := readInput(args)
		if err != nil {
			return err
		}
		tag, err := eng.MAC(spec, key, msg)
		if err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(tag))
		return nil
	},
}

func init() {
	macCmd.Flags().StringVarP(&macAlgorithm, "algorithm", "a", "hmac-sha256",
		"MAC algorithm (hmac-sha256, hmac-sha512, ...)")
	macCmd.Flags().StringVarP(&macKeyHex, "key", "k", "",
		"MAC key as hex")
	macCmd.MarkFlagRequired("key")
}
