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

	"github.com/jeremyhahn/go-crypto/pkg/types"
)

// tagManager packs and unpacks authentication tags around an AEAD cipher
// primitive.
//
// Encryption: the tag is computed over the ciphertext and any AAD supplied
// at context creation, and appended to the ciphertext returned from final.
// The tag length is algorithm-defined, never caller-chosen.
//
// Decryption: the caller streams ciphertext||tag; the manager buffers input
// so the trailing TagSize bytes can be split off at final, then asks the
// primitive to verify them in constant time against the recomputed tag. On
// mismatch, no plaintext leaves this type: the decrypted bytes a primitive
// may have produced internally are discarded.
type tagManager struct {
	prim types.AEADPrimitive
	dir  types.CipherDirection
	buf  []byte // decrypt side only: ciphertext||tag accumulator
}

func newTagManager(prim types.AEADPrimitive, dir types.CipherDirection) *tagManager {
	return &tagManager{prim: prim, dir: dir}
}

// update routes input. Encryption feeds the primitive directly; decryption
// buffers locally because the tag boundary is only known at final.
func (t *tagManager) update(p []byte) ([]byte, error) {
	if t.dir == types.DirectionEncrypt {
		return t.prim.Update(p)
	}
	t.buf = append(t.buf, p...)
	return nil, nil
}

// final completes the operation with tag packing or verification.
func (t *tagManager) final() ([]byte, error) {
	if t.dir == types.DirectionEncrypt {
		ciphertext, tag, err := t.prim.SealFinal()
		if err != nil {
			return nil, err
		}
		return append(ciphertext, tag...), nil
	}

	tagSize := t.prim.TagSize()
	if len(t.buf) < tagSize {
		// Too short to even carry a tag. Reported as an authentication
		// failure so truncated and forged inputs are indistinguishable.
		return nil, fmt.Errorf("input shorter than %d-byte tag: %w",
			tagSize, types.ErrAuthenticationFailure)
	}
	body, tag := t.buf[:len(t.buf)-tagSize], t.buf[len(t.buf)-tagSize:]
	if _, err := t.prim.Update(body); err != nil {
		return nil, err
	}
	plaintext, err := t.prim.OpenFinal(tag)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}
