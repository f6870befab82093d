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
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var randEncoding string

var randCmd = &cobra.Command{
	Use:   "rand <bytes>",
	Short: "Generate cryptographically strong random bytes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var n int
		if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n <= 0 {
			return fmt.Errorf("invalid byte count %q", args[0])
		}
		eng, err := getConfig().CreateEngine()
		if err != nil {
			return err
		}
		buf, err := eng.Random(n)
		if err != nil {
			return err
		}
		switch randEncoding {
		case "hex":
			fmt.Println(hex.EncodeToString(buf))
		case "base64":
			fmt.Println(base64.StdEncoding.EncodeToString(buf))
		default:
			return fmt.Errorf("unknown encoding %q", randEncoding)
		}
		return nil
	},
}

func init() {
	randCmd.Flags().StringVarP(&randEncoding, "encoding", "e", "hex",
		"output encoding (hex, base64)")
}
