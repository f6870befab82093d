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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-crypto/pkg/types"
)

var digestAlgorithm string

// readInput returns the contents of the named file, or stdin when the
// argument list is empty or the name is "-".
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

var digestCmd = &cobra.Command{
	Use:   "digest [file]",
	Short: "Compute a message digest over a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := types.NewDigestSpec(digestAlgorithm)
		if err != nil {
			return err
		}
		eng, err := getConfig().CreateEngine()
		if err != nil {
			return err
		}
		msg, err := readInput(args)
		if err != nil {
			return err
		}
		sum, err := eng.Digest(spec, msg)
		if err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(sum))
		return nil
	},
}

func init() {
	digestCmd.Flags().StringVarP(&digestAlgorithm, "algorithm", "a", "sha256",
		"digest algorithm (sha256, sha512, sha3-256, blake2b-256, ...)")
}
