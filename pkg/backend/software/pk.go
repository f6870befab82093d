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

package software

import (
	"crypto"
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"

	"github.com/jeremyhahn/go-crypto/pkg/types"
)

// hashID maps a digest algorithm to the crypto.Hash identifier embedded in
// RSA signature encodings. SHA-3 and BLAKE2b identifiers require their
// x/crypto packages to be linked, which this package does.
func hashID(d types.DigestAlgorithm) (crypto.Hash, error) {
	switch d {
	case types.DigestSHA1:
		return crypto.SHA1, nil
	case types.DigestSHA224:
		return crypto.SHA224, nil
	case types.DigestSHA256:
		return crypto.SHA256, nil
	case types.DigestSHA384:
		return crypto.SHA384, nil
	case types.DigestSHA512:
		return crypto.SHA512, nil
	case types.DigestSHA3_256:
		return crypto.SHA3_256, nil
	case types.DigestSHA3_384:
		return crypto.SHA3_384, nil
	case types.DigestSHA3_512:
		return crypto.SHA3_512, nil
	case types.DigestBLAKE2b256:
		return crypto.BLAKE2b_256, nil
	case types.DigestBLAKE2b384:
		return crypto.BLAKE2b_384, nil
	case types.DigestBLAKE2b512:
		return crypto.BLAKE2b_512, nil
	default:
		return 0, fmt.Errorf("digest %q: %w", d, types.ErrUnsupportedParameter)
	}
}

// GenerateKey generates a private key for the options' cryptosystem.
func (s *Software) GenerateKey(opts types.KeygenOptions) (types.PrivateKey, error) {
	if opts == nil {
		return nil, fmt.Errorf("software keygen: nil options: %w", types.ErrInvalidKeygenOptions)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("software keygen: %w", err)
	}

	switch o := opts.(type) {
	case *types.RSAOptions:
		key, err := rsa.GenerateKey(rand.Reader, o.Bits)
		if err != nil {
			return nil, fmt.Errorf("software keygen rsa: %w", err)
		}
		return &rsaPrivateKey{key: key}, nil

	case *types.ECDSAOptions:
		var curve elliptic.Curve
		switch o.Curve {
		case types.CurveP256:
			curve = elliptic.P256()
		case types.CurveP384:
			curve = elliptic.P384()
		case types.CurveP521:
			curve = elliptic.P521()
		}
		key, err := ecdsa.GenerateKey(curve, rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("software keygen ecdsa: %w", err)
		}
		return &ecdsaPrivateKey{key: key}, nil

	case *types.Ed25519Options:
		_, key, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("software keygen ed25519: %w", err)
		}
		return &ed25519PrivateKey{key: key}, nil

	case *types.ECDHOptions:
		var curve ecdh.Curve
		switch o.Curve {
		case types.CurveX25519:
			curve = ecdh.X25519()
		case types.CurveP256:
			curve = ecdh.P256()
		case types.CurveP384:
			curve = ecdh.P384()
		case types.CurveP521:
			curve = ecdh.P521()
		}
		key, err := curve.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("software keygen ecdh: %w", err)
		}
		return &ecdhPrivateKey{key: key, curve: o.Curve}, nil

	default:
		return nil, fmt.Errorf("software keygen: unrecognized options %T: %w",
			opts, types.ErrInvalidKeygenOptions)
	}
}

// =============================================================================
// RSA
// =============================================================================

type rsaPrivateKey struct {
	key *rsa.PrivateKey
}

func (k *rsaPrivateKey) System() types.Cryptosystem {
	return types.SystemRSA
}

func (k *rsaPrivateKey) Public() types.PublicKey {
	return &rsaPublicKey{key: &k.key.PublicKey}
}

func (k *rsaPrivateKey) SignDigest(digest []byte, d types.DigestAlgorithm) ([]byte, error) {
	h, err := hashID(d)
	if err != nil {
		return nil, err
	}
	return rsa.SignPKCS1v15(rand.Reader, k.key, h, digest)
}

func (k *rsaPrivateKey) Decrypt(ciphertext []byte) ([]byte, error) {
	plaintext, err := rsa.DecryptOAEP(sha256.New(), nil, k.key, ciphertext, nil)
	if err != nil {
		return nil, types.ErrDecryption
	}
	return plaintext, nil
}

func (k *rsaPrivateKey) Agree(types.PublicKey) ([]byte, error) {
	return nil, types.ErrCapability
}

// Destroy zeroes the CRT values, primes and private exponent.
func (k *rsaPrivateKey) Destroy() {
	k.key.D.SetInt64(0)
	for _, p := range k.key.Primes {
		p.SetInt64(0)
	}
	k.key.Precomputed = rsa.PrecomputedValues{}
}

type rsaPublicKey struct {
	key *rsa.PublicKey
}

func (k *rsaPublicKey) System() types.Cryptosystem {
	return types.SystemRSA
}

func (k *rsaPublicKey) VerifyDigest(digest, signature []byte, d types.DigestAlgorithm) (bool, error) {
	h, err := hashID(d)
	if err != nil {
		return false, err
	}
	if err := rsa.VerifyPKCS1v15(k.key, h, digest, signature); err != nil {
		return false, nil
	}
	return true, nil
}

func (k *rsaPublicKey) Encrypt(plaintext []byte) ([]byte, error) {
	return rsa.EncryptOAEP(sha256.New(), rand.Reader, k.key, plaintext, nil)
}

// =============================================================================
// ECDSA
// =============================================================================

type ecdsaPrivateKey struct {
	key *ecdsa.PrivateKey
}

func (k *ecdsaPrivateKey) System() types.Cryptosystem {
	return types.SystemECDSA
}

func (k *ecdsaPrivateKey) Public() types.PublicKey {
	return &ecdsaPublicKey{key: &k.key.PublicKey}
}

func (k *ecdsaPrivateKey) SignDigest(digest []byte, d types.DigestAlgorithm) ([]byte, error) {
	// ECDSA does not embed the digest identifier, but the caller must still
	// name a known digest so signatures stay portable across providers.
	if _, err := hashID(d); err != nil {
		return nil, err
	}
	return ecdsa.SignASN1(rand.Reader, k.key, digest)
}

func (k *ecdsaPrivateKey) Decrypt([]byte) ([]byte, error) {
	return nil, types.ErrCapability
}

func (k *ecdsaPrivateKey) Agree(types.PublicKey) ([]byte, error) {
	return nil, types.ErrCapability
}

func (k *ecdsaPrivateKey) Destroy() {
	k.key.D.SetInt64(0)
}

type ecdsaPublicKey struct {
	key *ecdsa.PublicKey
}

func (k *ecdsaPublicKey) System() types.Cryptosystem {
	return types.SystemECDSA
}

func (k *ecdsaPublicKey) VerifyDigest(digest, signature []byte, d types.DigestAlgorithm) (bool, error) {
	if _, err := hashID(d); err != nil {
		return false, err
	}
	return ecdsa.VerifyASN1(k.key, digest, signature), nil
}

func (k *ecdsaPublicKey) Encrypt([]byte) ([]byte, error) {
	return nil, types.ErrCapability
}

// =============================================================================
// Ed25519
// =============================================================================

type ed25519PrivateKey struct {
	key ed25519.PrivateKey
}

func (k *ed25519PrivateKey) System() types.Cryptosystem {
	return types.SystemEd25519
}

func (k *ed25519PrivateKey) Public() types.PublicKey {
	return &ed25519PublicKey{key: k.key.Public().(ed25519.PublicKey)}
}

func (k *ed25519PrivateKey) SignDigest(digest []byte, d types.DigestAlgorithm) ([]byte, error) {
	if _, err := hashID(d); err != nil {
		return nil, err
	}
	return ed25519.Sign(k.key, digest), nil
}

func (k *ed25519PrivateKey) Decrypt([]byte) ([]byte, error) {
	return nil, types.ErrCapability
}

func (k *ed25519PrivateKey) Agree(types.PublicKey) ([]byte, error) {
	return nil, types.ErrCapability
}

func (k *ed25519PrivateKey) Destroy() {
	for i := range k.key {
		k.key[i] = 0
	}
}

type ed25519PublicKey struct {
	key ed25519.PublicKey
}

func (k *ed25519PublicKey) System() types.Cryptosystem {
	return types.SystemEd25519
}

func (k *ed25519PublicKey) VerifyDigest(digest, signature []byte, d types.DigestAlgorithm) (bool, error) {
	if _, err := hashID(d); err != nil {
		return false, err
	}
	if len(signature) != ed25519.SignatureSize {
		return false, nil
	}
	return ed25519.Verify(k.key, digest, signature), nil
}

func (k *ed25519PublicKey) Encrypt([]byte) ([]byte, error) {
	return nil, types.ErrCapability
}

// =============================================================================
// ECDH
// =============================================================================

type ecdhPrivateKey struct {
	key   *ecdh.PrivateKey
	curve types.EllipticCurve
}

func (k *ecdhPrivateKey) System() types.Cryptosystem {
	return types.SystemECDH
}

func (k *ecdhPrivateKey) Public() types.PublicKey {
	return &ecdhPublicKey{key: k.key.PublicKey(), curve: k.curve}
}

func (k *ecdhPrivateKey) SignDigest([]byte, types.DigestAlgorithm) ([]byte, error) {
	return nil, types.ErrCapability
}

func (k *ecdhPrivateKey) Decrypt([]byte) ([]byte, error) {
	return nil, types.ErrCapability
}

func (k *ecdhPrivateKey) Agree(peer types.PublicKey) ([]byte, error) {
	pub, ok := peer.(*ecdhPublicKey)
	if !ok {
		return nil, fmt.Errorf("peer key %T: %w", peer, types.ErrIncompatibleKey)
	}
	if pub.curve != k.curve {
		return nil, fmt.Errorf("peer curve %s, want %s: %w",
			pub.curve, k.curve, types.ErrIncompatibleKey)
	}
	secret, err := k.key.ECDH(pub.key)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, types.ErrIncompatibleKey)
	}
	return secret, nil
}

func (k *ecdhPrivateKey) Destroy() {
	// ecdh.PrivateKey offers no mutable access to its scalar; drop the
	// reference so the backing array is not reachable from this key.
	k.key = nil
}

type ecdhPublicKey struct {
	key   *ecdh.PublicKey
	curve types.EllipticCurve
}

func (k *ecdhPublicKey) System() types.Cryptosystem {
	return types.SystemECDH
}

func (k *ecdhPublicKey) VerifyDigest([]byte, []byte, types.DigestAlgorithm) (bool, error) {
	return false, types.ErrCapability
}

func (k *ecdhPublicKey) Encrypt([]byte) ([]byte, error) {
	return nil, types.ErrCapability
}
