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

package context

import (
	"fmt"

	"github.com/jeremyhahn/go-crypto/pkg/factory"
	"github.com/jeremyhahn/go-crypto/pkg/types"
)

// Cipher is an incremental symmetric cipher operation. For AEAD specs the
// context routes finalization through the tag manager, which packs the
// authentication tag onto ciphertext on encryption and splits and verifies
// it on decryption.
type Cipher struct {
	lifecycle
	impl *factory.Implementation
	prim types.CipherPrimitive
	dir  types.CipherDirection
	tags *tagManager // nil for non-AEAD specs
}

// NewCipher creates a cipher context from a resolved implementation.
//
// Key and IV sizes are validated against the spec before the provider is
// asked for a primitive; mismatches fail with ErrUnsupportedParameter.
// AAD may only be supplied for AEAD specs.
func NewCipher(impl *factory.Implementation, dir types.CipherDirection, key, iv, aad []byte) (*Cipher, error) {
	spec := impl.Spec()
	if spec.Kind() != types.KindCipher {
		return nil, fmt.Errorf("cipher context: %s: %w", spec, types.ErrInvalidSpec)
	}
	if dir != types.DirectionEncrypt && dir != types.DirectionDecrypt {
		return nil, fmt.Errorf("cipher context %s: invalid direction %d: %w",
			spec, dir, types.ErrInvalidSpec)
	}
	if len(key) != spec.KeySize() {
		return nil, fmt.Errorf("cipher context %s: key size %d, want %d: %w",
			spec, len(key), spec.KeySize(), types.ErrUnsupportedParameter)
	}
	if len(iv) != spec.IVSize() {
		return nil, fmt.Errorf("cipher context %s: iv size %d, want %d: %w",
			spec, len(iv), spec.IVSize(), types.ErrUnsupportedParameter)
	}
	if len(aad) > 0 && !spec.IsAEAD() {
		return nil, fmt.Errorf("cipher context %s: aad requires an AEAD mode: %w",
			spec, types.ErrInvalidSpec)
	}

	prim, err := impl.Provider().Cipher(spec, dir, key, iv, aad)
	if err != nil {
		return nil, fmt.Errorf("cipher context %s: %w", impl, err)
	}

	c := &Cipher{impl: impl, prim: prim, dir: dir}
	if spec.IsAEAD() {
		aead, ok := prim.(types.AEADPrimitive)
		if !ok {
			return nil, fmt.Errorf("cipher context %s: provider %s returned no AEAD primitive: %w",
				spec, impl.Factory().Name(), types.ErrNoImplementation)
		}
		c.tags = newTagManager(aead, dir)
	}
	return c, nil
}

// Direction returns whether this context encrypts or decrypts.
func (c *Cipher) Direction() types.CipherDirection {
	return c.dir
}

// Update appends input and returns any output produced so far. Block and
// AEAD modes buffer internally, so output may be empty until Final.
func (c *Cipher) Update(p []byte) ([]byte, error) {
	if err := c.advance("cipher update", c.impl.Spec()); err != nil {
		return nil, err
	}
	if c.tags != nil {
		return c.tags.update(p)
	}
	return c.prim.Update(p)
}

// Final flushes remaining buffered input and returns the terminal output
// chunk. For AEAD encryption the authentication tag is appended to the
// returned ciphertext; for AEAD decryption the trailing tag is split off,
// verified in constant time, and a mismatch fails with
// ErrAuthenticationFailure without returning any plaintext. The context
// must be discarded afterwards.
func (c *Cipher) Final() ([]byte, error) {
	if err := c.finalize("cipher final", c.impl.Spec()); err != nil {
		return nil, err
	}
	if c.tags != nil {
		out, err := c.tags.final()
		if err != nil {
			return nil, fmt.Errorf("cipher final %s: %w", c.impl.Spec(), err)
		}
		return out, nil
	}
	out, err := c.prim.Final()
	if err != nil {
		return nil, fmt.Errorf("cipher final %s: %w", c.impl.Spec(), err)
	}
	return out, nil
}
