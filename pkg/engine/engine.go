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

// Package engine is the caller-facing facade over the factory chain. It
// provides one-shot digest, MAC, cipher and public key entry points, creates
// incremental contexts for streaming callers, and synthesizes keys and IVs
// from the configured random source. The engine adds logging and metrics
// around the core packages without changing their semantics.
package engine

import (
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-crypto/pkg/backend/software"
	"github.com/jeremyhahn/go-crypto/pkg/context"
	"github.com/jeremyhahn/go-crypto/pkg/crypto/rand"
	"github.com/jeremyhahn/go-crypto/pkg/factory"
	"github.com/jeremyhahn/go-crypto/pkg/keypair"
	"github.com/jeremyhahn/go-crypto/pkg/logging"
	"github.com/jeremyhahn/go-crypto/pkg/metrics"
	"github.com/jeremyhahn/go-crypto/pkg/types"
)

// Config configures an Engine. Zero-value fields select defaults.
type Config struct {
	// Chain is the factory chain to resolve against. Defaults to a chain
	// holding only the software provider.
	Chain *factory.Chain

	// Rand supplies random bytes for key/IV synthesis. Defaults to the
	// software resolver over crypto/rand.
	Rand rand.Resolver

	// Logger receives debug/error logging. Defaults to a non-debug logger.
	Logger *logging.Logger

	// Metrics receives operation counters. Defaults to the no-op recorder.
	Metrics metrics.Recorder
}

// Engine composes the factory chain with randomness, logging and metrics.
// Engines are safe for concurrent use; the contexts they hand out are not
// and belong to one caller each.
type Engine struct {
	chain   *factory.Chain
	rand    rand.Resolver
	logger  *logging.Logger
	metrics metrics.Recorder
}

// New creates an engine from the config. A nil config selects all defaults.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	e := &Engine{
		chain:   cfg.Chain,
		rand:    cfg.Rand,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
	if e.chain == nil {
		e.chain = factory.NewChain(factory.New(software.New()))
	}
	if e.rand == nil {
		resolver, err := rand.NewResolver(nil)
		if err != nil {
			return nil, fmt.Errorf("engine: %w", err)
		}
		e.rand = resolver
	}
	if e.logger == nil {
		e.logger = logging.DefaultLogger()
	}
	if e.metrics == nil {
		e.metrics = metrics.Noop()
	}
	return e, nil
}

// Chain returns the engine's factory chain for reconfiguration.
func (e *Engine) Chain() *factory.Chain {
	return e.chain
}

// resolve wraps chain resolution with metrics and debug logging.
func (e *Engine) resolve(spec *types.AlgorithmSpec) (*factory.Implementation, error) {
	impl, err := e.chain.Resolve(spec)
	if err != nil {
		e.metrics.RecordResolution("none", false)
		return nil, err
	}
	e.metrics.RecordResolution(impl.Factory().Name(), true)
	e.logger.Debug("resolved", "spec", spec.String(), "factory", impl.Factory().Name())
	return impl, nil
}

// =============================================================================
// Digest / MAC
// =============================================================================

// Digest computes a one-shot digest of msg.
func (e *Engine) Digest(spec *types.AlgorithmSpec, msg []byte) ([]byte, error) {
	ctx, err := e.NewDigestContext(spec)
	if err != nil {
		return nil, err
	}
	if err := ctx.Update(msg); err != nil {
		return nil, err
	}
	out, err := ctx.Final()
	if err != nil {
		return nil, err
	}
	e.metrics.RecordOperation("digest")
	return out, nil
}

// NewDigestContext creates an incremental digest context.
func (e *Engine) NewDigestContext(spec *types.AlgorithmSpec) (*context.Digest, error) {
	impl, err := e.resolve(spec)
	if err != nil {
		return nil, err
	}
	return context.NewDigest(impl)
}

// MAC computes a one-shot MAC of msg under key.
func (e *Engine) MAC(spec *types.AlgorithmSpec, key, msg []byte) ([]byte, error) {
	ctx, err := e.NewMACContext(spec, key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Update(msg); err != nil {
		return nil, err
	}
	out, err := ctx.Final()
	if err != nil {
		return nil, err
	}
	e.metrics.RecordOperation("mac")
	return out, nil
}

// NewMACContext creates an incremental MAC context.
func (e *Engine) NewMACContext(spec *types.AlgorithmSpec, key []byte) (*context.MAC, error) {
	impl, err := e.resolve(spec)
	if err != nil {
		return nil, err
	}
	return context.NewMAC(impl, key)
}

// =============================================================================
// Symmetric ciphers
// =============================================================================

// Encrypt performs a one-shot symmetric encryption. For AEAD specs the
// authentication tag is appended to the returned ciphertext and aad is
// authenticated; for other specs aad must be nil.
func (e *Engine) Encrypt(spec *types.AlgorithmSpec, key, iv, plaintext, aad []byte) ([]byte, error) {
	ctx, err := e.NewCipherContext(spec, types.DirectionEncrypt, key, iv, aad)
	if err != nil {
		return nil, err
	}
	head, err := ctx.Update(plaintext)
	if err != nil {
		return nil, err
	}
	tail, err := ctx.Final()
	if err != nil {
		return nil, err
	}
	e.metrics.RecordOperation("encrypt")
	return append(head, tail...), nil
}

// Decrypt performs a one-shot symmetric decryption. For AEAD specs the
// input must carry the trailing authentication tag, and a tag mismatch
// fails with ErrAuthenticationFailure returning no plaintext.
func (e *Engine) Decrypt(spec *types.AlgorithmSpec, key, iv, ciphertext, aad []byte) ([]byte, error) {
	ctx, err := e.NewCipherContext(spec, types.DirectionDecrypt, key, iv, aad)
	if err != nil {
		return nil, err
	}
	head, err := ctx.Update(ciphertext)
	if err != nil {
		return nil, err
	}
	tail, err := ctx.Final()
	if err != nil {
		if errors.Is(err, types.ErrAuthenticationFailure) {
			e.metrics.RecordAuthFailure(spec.String())
			e.logger.Debug("authentication failure", "spec", spec.String())
		}
		return nil, err
	}
	e.metrics.RecordOperation("decrypt")
	return append(head, tail...), nil
}

// NewCipherContext creates an incremental cipher context.
func (e *Engine) NewCipherContext(spec *types.AlgorithmSpec, dir types.CipherDirection, key, iv, aad []byte) (*context.Cipher, error) {
	impl, err := e.resolve(spec)
	if err != nil {
		return nil, err
	}
	return context.NewCipher(impl, dir, key, iv, aad)
}

// =============================================================================
// Randomness
// =============================================================================

// Random returns n cryptographically strong random bytes.
func (e *Engine) Random(n int) ([]byte, error) {
	return e.rand.Rand(n)
}

// GenerateSymmetricKey synthesizes a random key of the spec's required size.
func (e *Engine) GenerateSymmetricKey(spec *types.AlgorithmSpec) ([]byte, error) {
	n := spec.KeySize()
	if n == 0 {
		return nil, fmt.Errorf("generate key %s: no key size: %w", spec, types.ErrInvalidSpec)
	}
	return e.rand.Rand(n)
}

// GenerateIV synthesizes a random IV/nonce of the spec's required size.
func (e *Engine) GenerateIV(spec *types.AlgorithmSpec) ([]byte, error) {
	n := spec.IVSize()
	if n == 0 {
		return nil, fmt.Errorf("generate iv %s: no iv size: %w", spec, types.ErrInvalidSpec)
	}
	return e.rand.Rand(n)
}

// =============================================================================
// Public key operations
// =============================================================================

// GenerateKey generates a keypair for the options' cryptosystem via the
// factory chain.
func (e *Engine) GenerateKey(opts types.KeygenOptions) (*keypair.KeyPair, error) {
	kp, err := keypair.Generate(e.chain, opts)
	if err != nil {
		return nil, err
	}
	e.metrics.RecordOperation("keygen")
	e.logger.Debug("generated keypair", "system", kp.System().String(),
		"id", kp.ID(), "capabilities", kp.Capabilities().String())
	return kp, nil
}

// DigestAndSign digests message with d and signs the digest.
func (e *Engine) DigestAndSign(kp *keypair.KeyPair, d types.DigestAlgorithm, message []byte) ([]byte, error) {
	sig, err := kp.DigestAndSign(e.chain, d, message)
	if err != nil {
		return nil, err
	}
	e.metrics.RecordOperation("sign")
	return sig, nil
}

// SignDigest signs a precomputed digest.
func (e *Engine) SignDigest(kp *keypair.KeyPair, digest []byte, d types.DigestAlgorithm) ([]byte, error) {
	sig, err := kp.SignDigest(digest, d)
	if err != nil {
		return nil, err
	}
	e.metrics.RecordOperation("sign")
	return sig, nil
}

// VerifyDigest verifies a signature over a precomputed digest.
func (e *Engine) VerifyDigest(kp *keypair.KeyPair, digest, signature []byte, d types.DigestAlgorithm) (bool, error) {
	ok, err := kp.VerifyDigest(digest, signature, d)
	if err != nil {
		return false, err
	}
	e.metrics.RecordOperation("verify")
	return ok, nil
}

// PKEncrypt performs asymmetric encryption with kp's public key.
func (e *Engine) PKEncrypt(kp *keypair.KeyPair, plaintext []byte) ([]byte, error) {
	ciphertext, err := kp.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}
	e.metrics.RecordOperation("pk_encrypt")
	return ciphertext, nil
}

// PKDecrypt performs asymmetric decryption with kp's private key.
func (e *Engine) PKDecrypt(kp *keypair.KeyPair, ciphertext []byte) ([]byte, error) {
	plaintext, err := kp.Decrypt(ciphertext)
	if err != nil {
		return nil, err
	}
	e.metrics.RecordOperation("pk_decrypt")
	return plaintext, nil
}

// Agree derives a shared secret between kp's private key and the peer's
// public key.
func (e *Engine) Agree(kp, peer *keypair.KeyPair) ([]byte, error) {
	secret, err := kp.Agree(peer)
	if err != nil {
		return nil, err
	}
	e.metrics.RecordOperation("agree")
	return secret, nil
}
