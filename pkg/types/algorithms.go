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
	"strings"
)

// =============================================================================
// Algorithm String Constants
// =============================================================================
// These string constants are the canonical lowercase identifiers used
// throughout the library. All parsing is case-insensitive and tolerant of
// dash/underscore variations; the canonical forms below are what a normalized
// AlgorithmSpec carries.

// DigestAlgorithm represents message digest algorithm identifiers.
type DigestAlgorithm string

const (
	// DigestSHA1 is SHA-1 (legacy, use SHA-256+ for new applications).
	DigestSHA1 DigestAlgorithm = "sha1"

	// DigestSHA224 is SHA-224.
	DigestSHA224 DigestAlgorithm = "sha224"

	// DigestSHA256 is SHA-256 (recommended minimum).
	DigestSHA256 DigestAlgorithm = "sha256"

	// DigestSHA384 is SHA-384.
	DigestSHA384 DigestAlgorithm = "sha384"

	// DigestSHA512 is SHA-512.
	DigestSHA512 DigestAlgorithm = "sha512"

	// DigestSHA3_256 is SHA3-256.
	DigestSHA3_256 DigestAlgorithm = "sha3-256"

	// DigestSHA3_384 is SHA3-384.
	DigestSHA3_384 DigestAlgorithm = "sha3-384"

	// DigestSHA3_512 is SHA3-512.
	DigestSHA3_512 DigestAlgorithm = "sha3-512"

	// DigestBLAKE2b256 is BLAKE2b-256.
	DigestBLAKE2b256 DigestAlgorithm = "blake2b-256"

	// DigestBLAKE2b384 is BLAKE2b-384.
	DigestBLAKE2b384 DigestAlgorithm = "blake2b-384"

	// DigestBLAKE2b512 is BLAKE2b-512.
	DigestBLAKE2b512 DigestAlgorithm = "blake2b-512"
)

// String returns the string representation.
func (d DigestAlgorithm) String() string {
	return string(d)
}

// Equals performs case-insensitive comparison for protocol compatibility.
func (d DigestAlgorithm) Equals(s string) bool {
	return strings.EqualFold(string(d), s)
}

// digestSizes maps each digest algorithm to its output size in bytes.
var digestSizes = map[DigestAlgorithm]int{
	DigestSHA1:       20,
	DigestSHA224:     28,
	DigestSHA256:     32,
	DigestSHA384:     48,
	DigestSHA512:     64,
	DigestSHA3_256:   32,
	DigestSHA3_384:   48,
	DigestSHA3_512:   64,
	DigestBLAKE2b256: 32,
	DigestBLAKE2b384: 48,
	DigestBLAKE2b512: 64,
}

// Size returns the digest output size in bytes, or 0 for unknown algorithms.
func (d DigestAlgorithm) Size() int {
	return digestSizes[d]
}

// ParseDigestAlgorithm converts a string to a DigestAlgorithm.
// Returns "" if the string is not a recognized digest algorithm.
func ParseDigestAlgorithm(s string) DigestAlgorithm {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")

	switch s {
	case "sha1", "sha-1":
		return DigestSHA1
	case "sha224", "sha-224":
		return DigestSHA224
	case "sha256", "sha-256":
		return DigestSHA256
	case "sha384", "sha-384":
		return DigestSHA384
	case "sha512", "sha-512":
		return DigestSHA512
	case "sha3-256":
		return DigestSHA3_256
	case "sha3-384":
		return DigestSHA3_384
	case "sha3-512":
		return DigestSHA3_512
	case "blake2b-256":
		return DigestBLAKE2b256
	case "blake2b-384":
		return DigestBLAKE2b384
	case "blake2b-512":
		return DigestBLAKE2b512
	default:
		return ""
	}
}

// =============================================================================
// Cipher Constants
// =============================================================================

// CipherAlgorithm represents symmetric cipher algorithm identifiers.
// The algorithm name carries the key size (aes-128 vs aes-256) but not the
// mode of operation; a cipher AlgorithmSpec pairs an algorithm with a mode.
type CipherAlgorithm string

const (
	// CipherAES128 is AES with a 128-bit key.
	CipherAES128 CipherAlgorithm = "aes-128"

	// CipherAES192 is AES with a 192-bit key.
	CipherAES192 CipherAlgorithm = "aes-192"

	// CipherAES256 is AES with a 256-bit key (recommended).
	CipherAES256 CipherAlgorithm = "aes-256"

	// CipherChaCha20 is ChaCha20 with a 256-bit key.
	CipherChaCha20 CipherAlgorithm = "chacha20"

	// CipherXChaCha20 is XChaCha20 with a 256-bit key (extended nonce).
	CipherXChaCha20 CipherAlgorithm = "xchacha20"
)

// String returns the string representation.
func (c CipherAlgorithm) String() string {
	return string(c)
}

// Equals performs case-insensitive comparison for protocol compatibility.
func (c CipherAlgorithm) Equals(s string) bool {
	return strings.EqualFold(string(c), s)
}

// ParseCipherAlgorithm converts a string to a CipherAlgorithm.
// Returns "" if the string is not a recognized cipher algorithm.
func ParseCipherAlgorithm(s string) CipherAlgorithm {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")

	switch s {
	case "aes-128", "aes128":
		return CipherAES128
	case "aes-192", "aes192":
		return CipherAES192
	case "aes-256", "aes256":
		return CipherAES256
	case "chacha20":
		return CipherChaCha20
	case "xchacha20":
		return CipherXChaCha20
	default:
		return ""
	}
}

// CipherMode represents a symmetric cipher mode of operation.
type CipherMode string

const (
	// ModeGCM is Galois/Counter Mode (AEAD).
	ModeGCM CipherMode = "gcm"

	// ModeCBC is Cipher Block Chaining with PKCS#7 padding.
	ModeCBC CipherMode = "cbc"

	// ModeCTR is Counter mode (stream).
	ModeCTR CipherMode = "ctr"

	// ModePoly1305 pairs a ChaCha20-family cipher with the Poly1305
	// authenticator (AEAD).
	ModePoly1305 CipherMode = "poly1305"
)

// String returns the string representation.
func (m CipherMode) String() string {
	return string(m)
}

// IsAEAD returns true if the mode provides authenticated encryption with
// associated data.
func (m CipherMode) IsAEAD() bool {
	switch m {
	case ModeGCM, ModePoly1305:
		return true
	default:
		return false
	}
}

// ParseCipherMode converts a string to a CipherMode.
// Returns "" if the string is not a recognized mode.
func ParseCipherMode(s string) CipherMode {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "gcm":
		return ModeGCM
	case "cbc":
		return ModeCBC
	case "ctr":
		return ModeCTR
	case "poly1305":
		return ModePoly1305
	default:
		return ""
	}
}

// =============================================================================
// MAC Constants
// =============================================================================

// MACAlgorithm represents message authentication code algorithm identifiers.
// HMAC constructions are named "hmac-<digest>".
type MACAlgorithm string

const (
	// MACHMACSHA1 is HMAC-SHA1 (legacy).
	MACHMACSHA1 MACAlgorithm = "hmac-sha1"

	// MACHMACSHA256 is HMAC-SHA256 (recommended minimum).
	MACHMACSHA256 MACAlgorithm = "hmac-sha256"

	// MACHMACSHA384 is HMAC-SHA384.
	MACHMACSHA384 MACAlgorithm = "hmac-sha384"

	// MACHMACSHA512 is HMAC-SHA512.
	MACHMACSHA512 MACAlgorithm = "hmac-sha512"

	// MACHMACSHA3_256 is HMAC-SHA3-256.
	MACHMACSHA3_256 MACAlgorithm = "hmac-sha3-256"
)

// String returns the string representation.
func (m MACAlgorithm) String() string {
	return string(m)
}

// Digest returns the underlying digest algorithm of an HMAC construction,
// or "" if the MAC name is not an HMAC.
func (m MACAlgorithm) Digest() DigestAlgorithm {
	name, ok := strings.CutPrefix(string(m), "hmac-")
	if !ok {
		return ""
	}
	return ParseDigestAlgorithm(name)
}

// ParseMACAlgorithm converts a string to a MACAlgorithm.
// Returns "" if the string is not a recognized MAC algorithm.
func ParseMACAlgorithm(s string) MACAlgorithm {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")

	name, ok := strings.CutPrefix(s, "hmac-")
	if !ok {
		return ""
	}
	digest := ParseDigestAlgorithm(name)
	if digest == "" {
		return ""
	}
	return MACAlgorithm("hmac-" + digest.String())
}

// =============================================================================
// Public Key Cryptosystem Constants
// =============================================================================

// Cryptosystem represents public key cryptosystem identifiers.
type Cryptosystem string

const (
	// SystemRSA supports signing, verification, encryption and decryption.
	SystemRSA Cryptosystem = "rsa"

	// SystemECDSA supports signing and verification only.
	SystemECDSA Cryptosystem = "ecdsa"

	// SystemEd25519 supports signing and verification only.
	SystemEd25519 Cryptosystem = "ed25519"

	// SystemECDH supports key agreement only.
	SystemECDH Cryptosystem = "ecdh"
)

// String returns the string representation.
func (cs Cryptosystem) String() string {
	return string(cs)
}

// Equals performs case-insensitive comparison for protocol compatibility.
func (cs Cryptosystem) Equals(s string) bool {
	return strings.EqualFold(string(cs), s)
}

// ParseCryptosystem converts a string to a Cryptosystem.
// Returns "" if the string is not a recognized cryptosystem.
func ParseCryptosystem(s string) Cryptosystem {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "rsa":
		return SystemRSA
	case "ecdsa", "ec", "ecc":
		return SystemECDSA
	case "ed25519":
		return SystemEd25519
	case "ecdh", "dh":
		return SystemECDH
	default:
		return ""
	}
}

// =============================================================================
// Curve Name Constants
// =============================================================================
// Curve names follow NIST naming conventions (P-256, P-384, P-521).

// EllipticCurve represents elliptic curve identifiers.
type EllipticCurve string

const (
	// CurveP256 is NIST P-256 (secp256r1, prime256v1).
	CurveP256 EllipticCurve = "P-256"

	// CurveP384 is NIST P-384 (secp384r1).
	CurveP384 EllipticCurve = "P-384"

	// CurveP521 is NIST P-521 (secp521r1).
	CurveP521 EllipticCurve = "P-521"

	// CurveX25519 is Curve25519 for key agreement (X25519).
	CurveX25519 EllipticCurve = "X25519"
)

// String returns the string representation.
func (c EllipticCurve) String() string {
	return string(c)
}

// ParseEllipticCurve converts a string to an EllipticCurve.
// Returns "" if the string is not a recognized curve.
func ParseEllipticCurve(s string) EllipticCurve {
	s = strings.ToUpper(strings.TrimSpace(s))
	switch s {
	case "P-256", "P256", "SECP256R1", "PRIME256V1":
		return CurveP256
	case "P-384", "P384", "SECP384R1":
		return CurveP384
	case "P-521", "P521", "SECP521R1":
		return CurveP521
	case "X25519":
		return CurveX25519
	default:
		return ""
	}
}

// =============================================================================
// Capabilities
// =============================================================================

// Capability identifies a single public key operation type.
type Capability uint8

const (
	// CapabilitySign is digest signing with the private key.
	CapabilitySign Capability = 1 << iota

	// CapabilityVerify is signature verification with the public key.
	CapabilityVerify

	// CapabilityEncrypt is asymmetric encryption with the public key.
	CapabilityEncrypt

	// CapabilityDecrypt is asymmetric decryption with the private key.
	CapabilityDecrypt

	// CapabilityAgree is shared secret derivation with the private key and a
	// peer public key.
	CapabilityAgree
)

// String returns the string representation of the capability.
func (c Capability) String() string {
	switch c {
	case CapabilitySign:
		return "sign"
	case CapabilityVerify:
		return "verify"
	case CapabilityEncrypt:
		return "encrypt"
	case CapabilityDecrypt:
		return "decrypt"
	case CapabilityAgree:
		return "agree"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// CapabilitySet is a bitmask of Capability values.
type CapabilitySet uint8

// NewCapabilitySet builds a CapabilitySet from individual capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range caps {
		s |= CapabilitySet(c)
	}
	return s
}

// Has returns true if the set contains the given capability.
func (s CapabilitySet) Has(c Capability) bool {
	return s&CapabilitySet(c) != 0
}

// Intersect returns the intersection of two capability sets.
func (s CapabilitySet) Intersect(o CapabilitySet) CapabilitySet {
	return s & o
}

// List returns the capabilities in the set in declaration order.
func (s CapabilitySet) List() []Capability {
	all := []Capability{
		CapabilitySign,
		CapabilityVerify,
		CapabilityEncrypt,
		CapabilityDecrypt,
		CapabilityAgree,
	}
	var out []Capability
	for _, c := range all {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String returns a comma-separated list of capability names.
func (s CapabilitySet) String() string {
	caps := s.List()
	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = c.String()
	}
	return strings.Join(names, ",")
}

// PublicCapabilities is the set of operations performable without secret
// key material. Public-only keypair projections are restricted to the
// intersection of the original capability set with this set.
var PublicCapabilities = NewCapabilitySet(CapabilityVerify, CapabilityEncrypt)

// systemCapabilities fixes the capability set of each cryptosystem.
var systemCapabilities = map[Cryptosystem]CapabilitySet{
	SystemRSA:     NewCapabilitySet(CapabilitySign, CapabilityVerify, CapabilityEncrypt, CapabilityDecrypt),
	SystemECDSA:   NewCapabilitySet(CapabilitySign, CapabilityVerify),
	SystemEd25519: NewCapabilitySet(CapabilitySign, CapabilityVerify),
	SystemECDH:    NewCapabilitySet(CapabilityAgree),
}

// CapabilitiesFor returns the capability set declared by the cryptosystem.
// Returns the empty set for unknown cryptosystems.
func CapabilitiesFor(cs Cryptosystem) CapabilitySet {
	return systemCapabilities[cs]
}
