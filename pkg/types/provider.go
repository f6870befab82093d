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

import "fmt"

// This file defines the narrow contract a native crypto engine must satisfy
// to back an AlgorithmSpec. It lives in pkg/types so that pkg/factory,
// pkg/context, pkg/keypair and the backends can all reference it without
// import cycles.

// =============================================================================
// Cipher Direction
// =============================================================================

// CipherDirection selects encryption or decryption when a cipher primitive
// is initialized.
type CipherDirection uint8

const (
	// DirectionEncrypt initializes a cipher primitive for encryption.
	DirectionEncrypt CipherDirection = 1 + iota

	// DirectionDecrypt initializes a cipher primitive for decryption.
	DirectionDecrypt
)

// String returns the string representation of the direction.
func (d CipherDirection) String() string {
	switch d {
	case DirectionEncrypt:
		return "encrypt"
	case DirectionDecrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(d))
	}
}

// =============================================================================
// Incremental Primitives
// =============================================================================

// DigestPrimitive is one in-progress digest computation inside a provider.
// Primitives carry no misuse protection of their own; the context layer
// sequences calls and enforces the single-use lifecycle.
type DigestPrimitive interface {
	// Update appends input to the computation.
	Update(p []byte) error

	// Final flushes the computation and returns the digest bytes.
	Final() ([]byte, error)

	// Size returns the digest output size in bytes.
	Size() int
}

// MACPrimitive is one in-progress MAC computation inside a provider.
type MACPrimitive interface {
	// Update appends input to the computation.
	Update(p []byte) error

	// Final flushes the computation and returns the MAC bytes.
	Final() ([]byte, error)

	// Size returns the MAC output size in bytes.
	Size() int
}

// CipherPrimitive is one in-progress symmetric cipher operation inside a
// provider. Update may buffer internally (block modes, AEAD) and therefore
// may return less output than input, including none.
type CipherPrimitive interface {
	// Update appends input and returns any output produced so far.
	Update(p []byte) ([]byte, error)

	// Final flushes remaining buffered input and returns the terminal
	// output chunk.
	Final() ([]byte, error)
}

// AEADPrimitive extends CipherPrimitive with raw tag operations for AEAD
// modes. The AEAD tag manager in pkg/context drives these instead of Final
// so that tag packing stays in one place.
type AEADPrimitive interface {
	CipherPrimitive

	// TagSize returns the algorithm-defined authentication tag length in
	// bytes. Callers never choose the tag length.
	TagSize() int

	// SealFinal completes an encryption, returning the ciphertext and the
	// authentication tag over ciphertext and AAD separately.
	SealFinal() (ciphertext, tag []byte, err error)

	// OpenFinal completes a decryption, verifying the supplied tag in
	// constant time against the accumulated ciphertext and AAD. On tag
	// mismatch it returns ErrAuthenticationFailure and no plaintext.
	OpenFinal(tag []byte) ([]byte, error)
}

// =============================================================================
// Public Key Primitives
// =============================================================================

// PublicKey is provider-held public key material.
type PublicKey interface {
	// System returns the key's cryptosystem.
	System() Cryptosystem

	// VerifyDigest verifies a signature over a precomputed digest. The
	// digest algorithm identifier must always be supplied: some signature
	// schemes embed it in the signature encoding.
	// An invalid signature yields (false, nil), not an error.
	VerifyDigest(digest, signature []byte, d DigestAlgorithm) (bool, error)

	// Encrypt performs asymmetric encryption with the public key.
	Encrypt(plaintext []byte) ([]byte, error)
}

// PrivateKey is provider-held private key material together with the public
// components. It supports the operations of its cryptosystem; capability
// gating happens in pkg/keypair before a call ever reaches the provider.
type PrivateKey interface {
	// System returns the key's cryptosystem.
	System() Cryptosystem

	// Public returns the public components of this key.
	Public() PublicKey

	// SignDigest signs a precomputed digest. The digest algorithm
	// identifier must always be supplied, even though the digest is
	// precomputed.
	SignDigest(digest []byte, d DigestAlgorithm) ([]byte, error)

	// Decrypt performs asymmetric decryption with the private key.
	// Malformed ciphertext fails with ErrDecryption.
	Decrypt(ciphertext []byte) ([]byte, error)

	// Agree derives a shared secret from this private key and the peer's
	// public key. A peer from an incompatible parameter set fails with
	// ErrIncompatibleKey.
	Agree(peer PublicKey) ([]byte, error)

	// Destroy overwrites the backing private key material. The key must
	// not be used after Destroy returns.
	Destroy()
}

// =============================================================================
// Keygen Options
// =============================================================================

// KeygenOptions is a per-cryptosystem structured configuration for key
// generation. Each cryptosystem enumerates exactly the options it
// recognizes; validation happens eagerly at call time.
type KeygenOptions interface {
	// System returns the cryptosystem these options generate keys for.
	System() Cryptosystem

	// Validate returns ErrInvalidKeygenOptions (wrapped with detail) if any
	// option is unrecognized or out of range.
	Validate() error
}

// RSAOptions configures RSA key generation.
type RSAOptions struct {
	// Bits is the modulus size. Supported sizes: 2048, 3072, 4096.
	Bits int
}

// System returns SystemRSA.
func (o *RSAOptions) System() Cryptosystem {
	return SystemRSA
}

// Validate checks the modulus size.
func (o *RSAOptions) Validate() error {
	switch o.Bits {
	case 2048, 3072, 4096:
		return nil
	default:
		return fmt.Errorf("%w: rsa bits must be 2048, 3072 or 4096, got %d",
			ErrInvalidKeygenOptions, o.Bits)
	}
}

// ECDSAOptions configures ECDSA key generation.
type ECDSAOptions struct {
	// Curve is the NIST curve to use: P-256, P-384 or P-521.
	Curve EllipticCurve
}

// System returns SystemECDSA.
func (o *ECDSAOptions) System() Cryptosystem {
	return SystemECDSA
}

// Validate checks the curve.
func (o *ECDSAOptions) Validate() error {
	switch o.Curve {
	case CurveP256, CurveP384, CurveP521:
		return nil
	default:
		return fmt.Errorf("%w: ecdsa curve must be P-256, P-384 or P-521, got %q",
			ErrInvalidKeygenOptions, o.Curve)
	}
}

// Ed25519Options configures Ed25519 key generation. Ed25519 has no
// parameters; the type exists so keygen dispatch stays uniform.
type Ed25519Options struct{}

// System returns SystemEd25519.
func (o *Ed25519Options) System() Cryptosystem {
	return SystemEd25519
}

// Validate always succeeds.
func (o *Ed25519Options) Validate() error {
	return nil
}

// ECDHOptions configures ECDH key generation.
type ECDHOptions struct {
	// Curve is the agreement curve: X25519, P-256, P-384 or P-521.
	Curve EllipticCurve
}

// System returns SystemECDH.
func (o *ECDHOptions) System() Cryptosystem {
	return SystemECDH
}

// Validate checks the curve.
func (o *ECDHOptions) Validate() error {
	switch o.Curve {
	case CurveX25519, CurveP256, CurveP384, CurveP521:
		return nil
	default:
		return fmt.Errorf("%w: ecdh curve must be X25519, P-256, P-384 or P-521, got %q",
			ErrInvalidKeygenOptions, o.Curve)
	}
}

// =============================================================================
// Provider
// =============================================================================

// Provider is the contract a native crypto engine satisfies to offer
// implementations of algorithm specs. Providers are stateless beyond their
// engine handle and must be safe for unsynchronized concurrent use; all
// per-operation state lives in the primitives they hand out.
type Provider interface {
	// Name returns a stable identity for the provider, used in factory
	// registration, logs and metrics.
	Name() string

	// Supports reports whether the provider can produce an implementation
	// of the given spec. Supports answers for the spec only; concrete
	// parameters (key sizes, IV sizes) are checked at primitive
	// construction and fail with ErrUnsupportedParameter.
	Supports(spec *AlgorithmSpec) bool

	// Digest creates a fresh digest computation for the spec.
	Digest(spec *AlgorithmSpec) (DigestPrimitive, error)

	// Cipher creates a fresh cipher operation for the spec. For AEAD specs
	// the returned primitive also implements AEADPrimitive and the aad is
	// folded into the tag; for non-AEAD specs aad must be nil.
	Cipher(spec *AlgorithmSpec, dir CipherDirection, key, iv, aad []byte) (CipherPrimitive, error)

	// MAC creates a fresh MAC computation for the spec with the given key.
	MAC(spec *AlgorithmSpec, key []byte) (MACPrimitive, error)

	// GenerateKey generates a private key for the options' cryptosystem.
	GenerateKey(opts KeygenOptions) (PrivateKey, error)
}
