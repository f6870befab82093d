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

package types

import (
	"fmt"
)

// =============================================================================
// Spec Kind
// =============================================================================

// Kind discriminates the algorithm categories an AlgorithmSpec can describe.
type Kind uint8

const (
	// KindDigest is a message digest spec.
	KindDigest Kind = 1 + iota

	// KindCipher is a symmetric cipher spec (algorithm + mode).
	KindCipher

	// KindMAC is a message authentication code spec.
	KindMAC

	// KindPK is a public key cryptosystem spec.
	KindPK
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindDigest:
		return "digest"
	case KindCipher:
		return "cipher"
	case KindMAC:
		return "mac"
	case KindPK:
		return "pk"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// =============================================================================
// AlgorithmSpec
// =============================================================================

// cipherModes is the cipher algorithm / mode compatibility table. A cipher
// spec is well-formed only if its mode appears in the algorithm's row.
var cipherModes = map[CipherAlgorithm][]CipherMode{
	CipherAES128:    {ModeGCM, ModeCBC, ModeCTR},
	CipherAES192:    {ModeGCM, ModeCBC, ModeCTR},
	CipherAES256:    {ModeGCM, ModeCBC, ModeCTR},
	CipherChaCha20:  {ModePoly1305},
	CipherXChaCha20: {ModePoly1305},
}

// cipherKeySizes maps each cipher algorithm to its required key size in bytes.
var cipherKeySizes = map[CipherAlgorithm]int{
	CipherAES128:    16,
	CipherAES192:    24,
	CipherAES256:    32,
	CipherChaCha20:  32,
	CipherXChaCha20: 32,
}

// AlgorithmSpec is a normalized, validated description of a requested
// algorithm. A spec is one of four variants: digest, cipher (algorithm +
// mode), MAC, or public key cryptosystem.
//
// Specs are immutable once constructed and are always well-formed: the
// constructors validate algorithm names and cipher/mode pairings, so a
// malformed spec never reaches factory resolution.
type AlgorithmSpec struct {
	kind   Kind
	digest DigestAlgorithm
	cipher CipherAlgorithm
	mode   CipherMode
	mac    MACAlgorithm
	system Cryptosystem
}

// NewDigestSpec normalizes and validates a digest algorithm name.
func NewDigestSpec(name string) (*AlgorithmSpec, error) {
	digest := ParseDigestAlgorithm(name)
	if digest == "" {
		return nil, fmt.Errorf("%w: unknown digest %q", ErrInvalidSpec, name)
	}
	return &AlgorithmSpec{kind: KindDigest, digest: digest}, nil
}

// NewCipherSpec normalizes and validates a cipher algorithm name and mode
// pairing against the compatibility table.
func NewCipherSpec(name, mode string) (*AlgorithmSpec, error) {
	cipher := ParseCipherAlgorithm(name)
	if cipher == "" {
		return nil, fmt.Errorf("%w: unknown cipher %q", ErrInvalidSpec, name)
	}
	m := ParseCipherMode(mode)
	if m == "" {
		return nil, fmt.Errorf("%w: unknown cipher mode %q", ErrInvalidSpec, mode)
	}
	for _, supported := range cipherModes[cipher] {
		if m == supported {
			return &AlgorithmSpec{kind: KindCipher, cipher: cipher, mode: m}, nil
		}
	}
	return nil, fmt.Errorf("%w: cipher %s does not support mode %s", ErrInvalidSpec, cipher, m)
}

// NewMACSpec normalizes and validates a MAC algorithm name.
func NewMACSpec(name string) (*AlgorithmSpec, error) {
	mac := ParseMACAlgorithm(name)
	if mac == "" {
		return nil, fmt.Errorf("%w: unknown MAC %q", ErrInvalidSpec, name)
	}
	return &AlgorithmSpec{kind: KindMAC, mac: mac}, nil
}

// NewPKSpec normalizes and validates a public key cryptosystem name.
func NewPKSpec(system string) (*AlgorithmSpec, error) {
	cs := ParseCryptosystem(system)
	if cs == "" {
		return nil, fmt.Errorf("%w: unknown cryptosystem %q", ErrInvalidSpec, system)
	}
	return &AlgorithmSpec{kind: KindPK, system: cs}, nil
}

// Kind returns the spec's algorithm category.
func (s *AlgorithmSpec) Kind() Kind {
	return s.kind
}

// Digest returns the digest algorithm for digest specs, or "".
func (s *AlgorithmSpec) Digest() DigestAlgorithm {
	return s.digest
}

// Cipher returns the cipher algorithm for cipher specs, or "".
func (s *AlgorithmSpec) Cipher() CipherAlgorithm {
	return s.cipher
}

// Mode returns the cipher mode for cipher specs, or "".
func (s *AlgorithmSpec) Mode() CipherMode {
	return s.mode
}

// MAC returns the MAC algorithm for MAC specs, or "".
func (s *AlgorithmSpec) MAC() MACAlgorithm {
	return s.mac
}

// System returns the cryptosystem for PK specs, or "".
func (s *AlgorithmSpec) System() Cryptosystem {
	return s.system
}

// IsAEAD returns true for cipher specs whose mode carries built-in
// authentication tag semantics.
func (s *AlgorithmSpec) IsAEAD() bool {
	return s.kind == KindCipher && s.mode.IsAEAD()
}

// KeySize returns the required key size in bytes for cipher specs, or the
// recommended key size for MAC specs (the underlying digest output size).
// Returns 0 for digest and PK specs, whose key sizes are fixed by keygen
// options instead.
func (s *AlgorithmSpec) KeySize() int {
	switch s.kind {
	case KindCipher:
		return cipherKeySizes[s.cipher]
	case KindMAC:
		return s.mac.Digest().Size()
	default:
		return 0
	}
}

// IVSize returns the required IV/nonce size in bytes for cipher specs, or 0
// for specs that take no IV.
func (s *AlgorithmSpec) IVSize() int {
	if s.kind != KindCipher {
		return 0
	}
	switch s.mode {
	case ModeGCM:
		return 12
	case ModeCBC, ModeCTR:
		return 16 // AES block size
	case ModePoly1305:
		if s.cipher == CipherXChaCha20 {
			return 24
		}
		return 12
	default:
		return 0
	}
}

// String returns a stable human-readable form, e.g. "digest:sha256" or
// "cipher:aes-256-gcm". Errors and log lines use this form to identify the
// spec that triggered them.
func (s *AlgorithmSpec) String() string {
	switch s.kind {
	case KindDigest:
		return "digest:" + s.digest.String()
	case KindCipher:
		return fmt.Sprintf("cipher:%s-%s", s.cipher, s.mode)
	case KindMAC:
		return "mac:" + s.mac.String()
	case KindPK:
		return "pk:" + s.system.String()
	default:
		return "invalid"
	}
}
