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

// Package keypair models public key pairs and their operations.
//
// A KeyPair owns provider-held key material and is tagged with the
// capability set its cryptosystem declares. Every operation is gated by
// that capability set before it reaches the provider, so a signature-only
// key fails encryption with ErrCapability rather than a provider error, and
// a public-only projection can never perform a private operation.
package keypair

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jeremyhahn/go-crypto/pkg/context"
	"github.com/jeremyhahn/go-crypto/pkg/factory"
	"github.com/jeremyhahn/go-crypto/pkg/types"
)

// KeyPair holds private and/or public key material for one cryptosystem.
//
// A KeyPair is immutable apart from Destroy. The private key material it
// references is sensitive; call Destroy on every exit path once the key is
// no longer needed so the backing storage is overwritten deterministically
// instead of lingering until garbage collection.
type KeyPair struct {
	id     string
	system types.Cryptosystem
	caps   types.CapabilitySet
	priv   types.PrivateKey // nil for public-only projections
	pub    types.PublicKey
}

// Generate resolves the cryptosystem against the chain and generates a new
// key pair. Options are validated eagerly; unrecognized or out-of-range
// options fail with ErrInvalidKeygenOptions before resolution. The
// resulting capability set is fixed by the cryptosystem.
func Generate(chain *factory.Chain, opts types.KeygenOptions) (*KeyPair, error) {
	if opts == nil {
		return nil, fmt.Errorf("generate: nil options: %w", types.ErrInvalidKeygenOptions)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("generate %s: %w", opts.System(), err)
	}

	spec, err := types.NewPKSpec(opts.System().String())
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	impl, err := chain.Resolve(spec)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	priv, err := impl.Provider().GenerateKey(opts)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", impl, err)
	}

	return &KeyPair{
		id:     uuid.NewString(),
		system: opts.System(),
		caps:   types.CapabilitiesFor(opts.System()),
		priv:   priv,
		pub:    priv.Public(),
	}, nil
}

// ID returns the keypair's unique identifier.
func (k *KeyPair) ID() string {
	return k.id
}

// System returns the keypair's cryptosystem.
func (k *KeyPair) System() types.Cryptosystem {
	return k.system
}

// Capabilities returns the operations this keypair supports.
func (k *KeyPair) Capabilities() types.CapabilitySet {
	return k.caps
}

// IsPrivate returns true if the keypair holds private key material.
func (k *KeyPair) IsPrivate() bool {
	return k.priv != nil
}

// Public returns the provider-held public key, for transporting to peers.
func (k *KeyPair) Public() types.PublicKey {
	return k.pub
}

// PublicOnly returns a new KeyPair referencing only the public components.
// Its capability set is the intersection of the original's with the public
// capability set {verify, encrypt}; private operations on the projection
// fail permanently with ErrCapability. The projection gets its own ID and
// does not own the original's private material.
func (k *KeyPair) PublicOnly() *KeyPair {
	return &KeyPair{
		id:     uuid.NewString(),
		system: k.system,
		caps:   k.caps.Intersect(types.PublicCapabilities),
		pub:    k.pub,
	}
}

// require gates an operation on the capability set and, for private
// operations, on the presence of private material.
func (k *KeyPair) require(op string, c types.Capability, private bool) error {
	if !k.caps.Has(c) {
		return fmt.Errorf("%s %s (key %s): %w", op, k.system, k.id, types.ErrCapability)
	}
	if private && k.priv == nil {
		return fmt.Errorf("%s %s (key %s): public-only key: %w", op, k.system, k.id, types.ErrCapability)
	}
	return nil
}

// SignDigest signs a precomputed digest. The digest algorithm identifier
// must be supplied even though the digest is precomputed: some signature
// schemes embed it in the signature encoding.
func (k *KeyPair) SignDigest(digest []byte, d types.DigestAlgorithm) ([]byte, error) {
	if err := k.require("sign", types.CapabilitySign, true); err != nil {
		return nil, err
	}
	sig, err := k.priv.SignDigest(digest, d)
	if err != nil {
		return nil, fmt.Errorf("sign %s (key %s): %w", k.system, k.id, err)
	}
	return sig, nil
}

// DigestAndSign computes the digest of message via the chain, then signs
// it. Equivalent to a digest context followed by SignDigest.
func (k *KeyPair) DigestAndSign(chain *factory.Chain, d types.DigestAlgorithm, message []byte) ([]byte, error) {
	if err := k.require("sign", types.CapabilitySign, true); err != nil {
		return nil, err
	}
	spec, err := types.NewDigestSpec(d.String())
	if err != nil {
		return nil, fmt.Errorf("digest-and-sign: %w", err)
	}
	impl, err := chain.Resolve(spec)
	if err != nil {
		return nil, fmt.Errorf("digest-and-sign: %w", err)
	}
	ctx, err := context.NewDigest(impl)
	if err != nil {
		return nil, fmt.Errorf("digest-and-sign: %w", err)
	}
	if err := ctx.Update(message); err != nil {
		return nil, fmt.Errorf("digest-and-sign: %w", err)
	}
	digest, err := ctx.Final()
	if err != nil {
		return nil, fmt.Errorf("digest-and-sign: %w", err)
	}
	return k.SignDigest(digest, d)
}

// VerifyDigest verifies a signature over a precomputed digest. An invalid
// signature yields (false, nil); errors are reserved for unusable inputs.
func (k *KeyPair) VerifyDigest(digest, signature []byte, d types.DigestAlgorithm) (bool, error) {
	if err := k.require("verify", types.CapabilityVerify, false); err != nil {
		return false, err
	}
	ok, err := k.pub.VerifyDigest(digest, signature, d)
	if err != nil {
		return false, fmt.Errorf("verify %s (key %s): %w", k.system, k.id, err)
	}
	return ok, nil
}

// Encrypt performs asymmetric encryption with the public key. Fails with
// ErrCapability for cryptosystems without encryption support.
func (k *KeyPair) Encrypt(plaintext []byte) ([]byte, error) {
	if err := k.require("encrypt", types.CapabilityEncrypt, false); err != nil {
		return nil, err
	}
	ciphertext, err := k.pub.Encrypt(plaintext)
	if err != nil {
		return nil, fmt.Errorf("encrypt %s (key %s): %w", k.system, k.id, err)
	}
	return ciphertext, nil
}

// Decrypt performs asymmetric decryption with the private key. Malformed
// ciphertext fails with ErrDecryption.
func (k *KeyPair) Decrypt(ciphertext []byte) ([]byte, error) {
	if err := k.require("decrypt", types.CapabilityDecrypt, true); err != nil {
		return nil, err
	}
	plaintext, err := k.priv.Decrypt(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decrypt %s (key %s): %w", k.system, k.id, err)
	}
	return plaintext, nil
}

// Agree derives a shared secret from this private key and the peer's public
// key. Fails with ErrCapability for non-agreement cryptosystems and with
// ErrIncompatibleKey when the peer key is from a different cryptosystem or
// parameter set.
func (k *KeyPair) Agree(peer *KeyPair) ([]byte, error) {
	if err := k.require("agree", types.CapabilityAgree, true); err != nil {
		return nil, err
	}
	if peer == nil || peer.pub == nil {
		return nil, fmt.Errorf("agree %s (key %s): nil peer: %w", k.system, k.id, types.ErrIncompatibleKey)
	}
	if peer.system != k.system {
		return nil, fmt.Errorf("agree %s (key %s): peer system %s: %w",
			k.system, k.id, peer.system, types.ErrIncompatibleKey)
	}
	secret, err := k.priv.Agree(peer.pub)
	if err != nil {
		return nil, fmt.Errorf("agree %s (key %s): %w", k.system, k.id, err)
	}
	return secret, nil
}

// Destroy overwrites the private key material and strips the keypair down
// to its public capabilities. Safe to call on public-only projections and
// safe to call more than once.
func (k *KeyPair) Destroy() {
	if k.priv != nil {
		k.priv.Destroy()
		k.priv = nil
	}
	k.caps = k.caps.Intersect(types.PublicCapabilities)
}
