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

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-crypto/pkg/types"
)

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List algorithms supported by the configured providers",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := getConfig().CreateEngine()
		if err != nil {
			return err
		}
		chain := eng.Chain()

		var specs []*types.AlgorithmSpec
		for _, d := range []types.DigestAlgorithm{
			types.DigestSHA1, types.DigestSHA224, types.DigestSHA256,
			types.DigestSHA384, types.DigestSHA512,
			types.DigestSHA3_256, types.DigestSHA3_384, types.DigestSHA3_512,
			types.DigestBLAKE2b256, types.DigestBLAKE2b384, types.DigestBLAKE2b512,
		} {
			if spec, err := types.NewDigestSpec(d.String()); err == nil {
				specs = append(specs, spec)
			}
		}
		for _, m := range []types.MACAlgorithm{
			types.MACHMACSHA1, types.MACHMACSHA256, types.MACHMACSHA384,
			types.MACHMACSHA512, types.MACHMACSHA3_256,
		} {
			if spec, err := types.NewMACSpec(m.String()); err == nil {
				specs = append(specs, spec)
			}
		}
		ciphers := []struct {
			alg   types.CipherAlgorithm
			modes []types.CipherMode
		}{
			{types.CipherAES128, []types.CipherMode{types.ModeGCM, types.ModeCBC, types.ModeCTR}},
			{types.CipherAES192, []types.CipherMode{types.ModeGCM, types.ModeCBC, types.ModeCTR}},
			{types.CipherAES256, []types.CipherMode{types.ModeGCM, types.ModeCBC, types.ModeCTR}},
			{types.CipherChaCha20, []types.CipherMode{types.ModePoly1305}},
			{types.CipherXChaCha20, []types.CipherMode{types.ModePoly1305}},
		}
		for _, c := range ciphers {
			for _, mode := range c.modes {
				if spec, err := types.NewCipherSpec(c.alg.String(), mode.String()); err == nil {
					specs = append(specs, spec)
				}
			}
		}
		for _, cs := range []types.Cryptosystem{
			types.SystemRSA, types.SystemECDSA, types.SystemEd25519, types.SystemECDH,
		} {
			if spec, err := types.NewPKSpec(cs.String()); err == nil {
				specs = append(specs, spec)
			}
		}

		for _, spec := range specs {
			impl, err := chain.Resolve(spec)
			if err != nil {
				continue
			}
			fmt.Printf("%-28s %s\n", spec.String(), impl.Factory().Name())
		}
		return nil
	},
}
