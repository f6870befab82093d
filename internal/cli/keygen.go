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
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-crypto/pkg/types"
)

var (
	keygenSystem string
	keygenBits   int
	keygenCurve  string
)

// keygenOptions maps the CLI flags to structured keygen options for the
// requested cryptosystem.
func keygenOptions() (types.KeygenOptions, error) {
	switch types.ParseCryptosystem(keygenSystem) {
	case types.SystemRSA:
		return &types.RSAOptions{Bits: keygenBits}, nil
	case types.SystemECDSA:
		return &types.ECDSAOptions{Curve: types.ParseEllipticCurve(keygenCurve)}, nil
	case types.SystemEd25519:
		return &types.Ed25519Options{}, nil
	case types.SystemECDH:
		return &types.ECDHOptions{Curve: types.ParseEllipticCurve(keygenCurve)}, nil
	default:
		return nil, fmt.Errorf("unknown cryptosystem %q", keygenSystem)
	}
}

// keypairSummary is the YAML document printed after generation.
type keypairSummary struct {
	ID           string   `yaml:"id"`
	System       string   `yaml:"system"`
	Capabilities []string `yaml:"capabilities"`
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a public key cryptosystem keypair",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := keygenOptions()
		if err != nil {
			return err
		}
		eng, err := getConfig().CreateEngine()
		if err != nil {
			return err
		}
		kp, err := eng.GenerateKey(opts)
		if err != nil {
			return err
		}
		defer kp.Destroy()

		caps := kp.Capabilities().List()
		summary := keypairSummary{
			ID:     kp.ID(),
			System: kp.System().String(),
		}
		for _, c := range caps {
			summary.Capabilities = append(summary.Capabilities, c.String())
		}
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(&summary)
	},
}

func init() {
	keygenCmd.Flags().StringVarP(&keygenSystem, "system", "s", "ecdsa",
		"cryptosystem (rsa, ecdsa, ed25519, ecdh)")
	keygenCmd.Flags().IntVarP(&keygenBits, "bits", "b", 2048,
		"RSA modulus size in bits (2048, 3072, 4096)")
	keygenCmd.Flags().StringVar(&keygenCurve, "curve", "P-256",
		"elliptic curve (P-256, P-384, P-521; X25519 for ecdh)")
}
