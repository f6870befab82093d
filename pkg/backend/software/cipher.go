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
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/jeremyhahn/go-crypto/pkg/types"
)

// Cipher creates a fresh cipher operation for the spec.
func (s *Software) Cipher(spec *types.AlgorithmSpec, dir types.CipherDirection, key, iv, aad []byte) (types.CipherPrimitive, error) {
	if spec == nil || spec.Kind() != types.KindCipher {
		return nil, fmt.Errorf("software cipher: %s: %w", spec, types.ErrInvalidSpec)
	}
	if len(key) != spec.KeySize() {
		return nil, fmt.Errorf("software cipher %s: key size %d, want %d: %w",
			spec, len(key), spec.KeySize(), types.ErrUnsupportedParameter)
	}
	if len(iv) != spec.IVSize() {
		return nil, fmt.Errorf("software cipher %s: iv size %d, want %d: %w",
			spec, len(iv), spec.IVSize(), types.ErrUnsupportedParameter)
	}

	switch spec.Mode() {
	case types.ModeGCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("software cipher %s: %w", spec, err)
		}
		gcm, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("software cipher %s: %w", spec, err)
		}
		return newAEADPrimitive(gcm, iv, aad, dir), nil

	case types.ModePoly1305:
		var aead cipher.AEAD
		var err error
		if spec.Cipher() == types.CipherXChaCha20 {
			aead, err = chacha20poly1305.NewX(key)
		} else {
			aead, err = chacha20poly1305.New(key)
		}
		if err != nil {
			return nil, fmt.Errorf("software cipher %s: %w", spec, err)
		}
		return newAEADPrimitive(aead, iv, aad, dir), nil

	case types.ModeCBC:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("software cipher %s: %w", spec, err)
		}
		if dir == types.DirectionEncrypt {
			return &cbcEncrypter{bm: cipher.NewCBCEncrypter(block, iv)}, nil
		}
		return &cbcDecrypter{bm: cipher.NewCBCDecrypter(block, iv)}, nil

	case types.ModeCTR:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("software cipher %s: %w", spec, err)
		}
		return &ctrStream{stream: cipher.NewCTR(block, iv)}, nil

	default:
		return nil, fmt.Errorf("software cipher %s: %w", spec, types.ErrInvalidSpec)
	}
}

// =============================================================================
// AEAD
// =============================================================================

// aeadPrimitive buffers input and performs the seal/open at finalization.
// cipher.AEAD is one-shot by design, so incremental Update calls accumulate
// until SealFinal or OpenFinal; tag verification inside Open is constant
// time.
type aeadPrimitive struct {
	aead  cipher.AEAD
	nonce []byte
	aad   []byte
	dir   types.CipherDirection
	buf   []byte
}

func newAEADPrimitive(aead cipher.AEAD, nonce, aad []byte, dir types.CipherDirection) *aeadPrimitive {
	return &aeadPrimitive{aead: aead, nonce: nonce, aad: aad, dir: dir}
}

func (p *aeadPrimitive) Update(b []byte) ([]byte, error) {
	p.buf = append(p.buf, b...)
	return nil, nil
}

// Final performs the combined operation: for encryption it returns
// ciphertext with the tag appended, for decryption it expects the trailing
// tag on the buffered input. The context layer's tag manager uses SealFinal
// and OpenFinal instead to keep tag handling explicit.
func (p *aeadPrimitive) Final() ([]byte, error) {
	if p.dir == types.DirectionEncrypt {
		ciphertext, tag, err := p.SealFinal()
		if err != nil {
			return nil, err
		}
		return append(ciphertext, tag...), nil
	}
	tagSize := p.TagSize()
	if len(p.buf) < tagSize {
		return nil, types.ErrAuthenticationFailure
	}
	body, tag := p.buf[:len(p.buf)-tagSize], p.buf[len(p.buf)-tagSize:]
	p.buf = body
	return p.OpenFinal(tag)
}

func (p *aeadPrimitive) TagSize() int {
	return p.aead.Overhead()
}

func (p *aeadPrimitive) SealFinal() ([]byte, []byte, error) {
	sealed := p.aead.Seal(nil, p.nonce, p.buf, p.aad)
	split := len(sealed) - p.TagSize()
	return sealed[:split], sealed[split:], nil
}

func (p *aeadPrimitive) OpenFinal(tag []byte) ([]byte, error) {
	plaintext, err := p.aead.Open(nil, p.nonce, append(p.buf, tag...), p.aad)
	if err != nil {
		// The decrypted bytes computed inside Open are never surfaced.
		return nil, types.ErrAuthenticationFailure
	}
	return plaintext, nil
}

// Verify interface compliance
var _ types.AEADPrimitive = (*aeadPrimitive)(nil)

// =============================================================================
// CBC
// =============================================================================

// pkcs7Pad appends PKCS#7 padding to a full multiple of blockSize. The pad
// is always 1..blockSize bytes, so an exact multiple gains a full block.
func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

// pkcs7Unpad strips and validates PKCS#7 padding.
func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, types.ErrDecryption
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, types.ErrDecryption
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, types.ErrDecryption
		}
	}
	return b[:len(b)-n], nil
}

// cbcEncrypter encrypts full blocks eagerly and pads the remainder at Final.
type cbcEncrypter struct {
	bm  cipher.BlockMode
	buf []byte
}

func (p *cbcEncrypter) Update(b []byte) ([]byte, error) {
	p.buf = append(p.buf, b...)
	bs := p.bm.BlockSize()
	n := len(p.buf) - len(p.buf)%bs
	if n == 0 {
		return nil, nil
	}
	out := make([]byte, n)
	p.bm.CryptBlocks(out, p.buf[:n])
	p.buf = append(p.buf[:0], p.buf[n:]...)
	return out, nil
}

func (p *cbcEncrypter) Final() ([]byte, error) {
	padded := pkcs7Pad(p.buf, p.bm.BlockSize())
	out := make([]byte, len(padded))
	p.bm.CryptBlocks(out, padded)
	p.buf = nil
	return out, nil
}

// cbcDecrypter withholds the last full block until Final, where the padding
// is stripped and validated.
type cbcDecrypter struct {
	bm  cipher.BlockMode
	buf []byte
}

func (p *cbcDecrypter) Update(b []byte) ([]byte, error) {
	p.buf = append(p.buf, b...)
	bs := p.bm.BlockSize()
	// Keep at least one full block back; it may carry the padding.
	n := len(p.buf) - len(p.buf)%bs
	if len(p.buf)%bs == 0 {
		n -= bs
	}
	if n <= 0 {
		return nil, nil
	}
	out := make([]byte, n)
	p.bm.CryptBlocks(out, p.buf[:n])
	p.buf = append(p.buf[:0], p.buf[n:]...)
	return out, nil
}

func (p *cbcDecrypter) Final() ([]byte, error) {
	bs := p.bm.BlockSize()
	if len(p.buf) != bs {
		return nil, types.ErrDecryption
	}
	out := make([]byte, bs)
	p.bm.CryptBlocks(out, p.buf)
	p.buf = nil
	return pkcs7Unpad(out, bs)
}

// =============================================================================
// CTR
// =============================================================================

// ctrStream streams output block-for-block with no buffering.
type ctrStream struct {
	stream cipher.Stream
}

func (p *ctrStream) Update(b []byte) ([]byte, error) {
	out := make([]byte, len(b))
	p.stream.XORKeyStream(out, b)
	return out, nil
}

func (p *ctrStream) Final() ([]byte, error) {
	return nil, nil
}
