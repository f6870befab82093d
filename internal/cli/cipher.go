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
	"os"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-crypto/pkg/engine"
	"github.com/jeremyhahn/go-crypto/pkg/types"
)

var (
	cipherAlgorithm string
	cipherMode      string
	cipherKeyHex    string
	cipherIVHex     string
	cipherAAD       string
	cipherOutFile   string
)

// cipherSetup parses the shared cipher flags into a spec, key, iv and aad.
// An empty --iv on encrypt synthesizes a random IV and prints it so the
// caller can supply it back on decrypt.
func cipherSetup(eng *engine.Engine, encrypting bool) (*types.AlgorithmSpec, []byte, []byte, []byte, error) {
	spec, err := types.NewCipherSpec(cipherAlgorithm, cipherMode)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	key, err := hex.DecodeString(cipherKeyHex)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("decode key: %w", err)
	}
	var iv []byte
	if cipherIVHex == "" {
		if !encrypting {
			return nil, nil, nil, nil, fmt.Errorf("--iv is required for decryption")
		}
		iv, err = eng.GenerateIV(spec)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		fmt.Fprintf(os.Stderr, "iv: %s\n", hex.EncodeToString(iv))
	} else {
		iv, err = hex.DecodeString(cipherIVHex)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("decode iv: %w", err)
		}
	}
	var aad []byte
	if cipherAAD != "" {
		aad = []byte(cipherAAD)
	}
	return spec, key, iv, aad, nil
}

// writeOutput writes data to --out or stdout.
func writeOutput(data []byte) error {
	if cipherOutFile == "" || cipherOutFile == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(cipherOutFile, data, 0600)
}

var encryptCmd = &cobra.Command{
	Use:   "encrypt [file]",
	Short: "Encrypt a file or stdin with a symmetric cipher",
	Long: `Encrypt a file or stdin with a symmetric cipher.

For AEAD modes (gcm, poly1305) the authentication tag is appended to the
ciphertext and any --aad string is authenticated alongside it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := getConfig().CreateEngine()
		if err != nil {
			return err
		}
		spec, key, iv, aad, err := cipherSetup(eng, true)
		if err != nil {
			return err
		}
		plaintext, err := readInput(args)
		if err != nil {
			return err
		}
		ciphertext, err := eng.Encrypt(spec, key, iv, plaintext, aad)
		if err != nil {
			return err
		}
		return writeOutput(ciphertext)
	},
}

var decryptCmd = &cobra.Command{
	Use:   "decrypt [file]",
	Short: "Decrypt a file or stdin with a symmetric cipher",
	Long: `Decrypt a file or stdin with a symmetric cipher.

For AEAD modes the input must carry the trailing authentication tag; a
tag or AAD mismatch fails without producing any plaintext.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := getConfig().CreateEngine()
		if err != nil {
			return err
		}
		spec, key, iv, aad, err := cipherSetup(eng, false)
		if err != nil {
			return err
		}
		ciphertext, err := readInput(args)
		if err != nil {
			return err
		}
		plaintext, err := eng.Decrypt(spec, key, iv, ciphertext, aad)
		if err != nil {
			return err
		}
		return writeOutput(plaintext)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{encryptCmd, decryptCmd} {
		cmd.Flags().StringVarP(&cipherAlgorithm, "cipher", "c", "aes-256",
			"cipher algorithm (aes-128, aes-192, aes-256, chacha20, xchacha20)")
		cmd.Flags().StringVarP(&cipherMode, "mode", "m", "gcm",
			"cipher mode (gcm, cbc, ctr, poly1305)")
		cmd.Flags().StringVarP(&cipherKeyHex, "key", "k", "",
			"cipher key as hex")
		cmd.Flags().StringVar(&cipherIVHex, "iv", "",
			"IV/nonce as hex (encrypt: generated and printed to stderr when omitted)")
		cmd.Flags().StringVar(&cipherAAD, "aad", "",
			"additional authenticated data (AEAD modes only)")
		cmd.Flags().StringVarP(&cipherOutFile, "out", "o", "",
			"output file (default stdout)")
		cmd.MarkFlagRequired("key")
	}
}
