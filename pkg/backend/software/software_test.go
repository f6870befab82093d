// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-crypto.

package software

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-crypto/pkg/types"
)

func TestSupports(t *testing.T) {
	s := New()
	assert.Equal(t, "software", s.Name())

	digest, err := types.NewDigestSpec("sha256")
	require.NoError(t, err)
	assert.True(t, s.Supports(digest))

	mac, err := types.NewMACSpec("hmac-sha3-256")
	require.NoError(t, err)
	assert.True(t, s.Supports(mac))

	cipher, err := types.NewCipherSpec("xchacha20", "poly1305")
	require.NoError(t, err)
	assert.True(t, s.Supports(cipher))

	for _, system := range []string{"rsa", "ecdsa", "ed25519", "ecdh"} {
		pk, err := types.NewPKSpec(system)
		require.NoError(t, err)
		assert.True(t, s.Supports(pk), system)
	}

	assert.False(t, s.Supports(nil))
}

func TestDigestKnownAnswers(t *testing.T) {
	// Empty-message vectors from the algorithm specifications.
	tests := []struct {
		alg  string
		want string
	}{
		{alg: "sha1", want: "da39a3ee5e6b4b0d3255bfef95601890afd80709"},
		{alg: "sha256", want: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{alg: "sha512", want: "cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e"},
		{alg: "sha3-256", want: "a7ffc6f8bf1ed76651c14756a061d662f580ff4de43b49fa82d80a4b80f8434a"},
		{alg: "blake2b-256", want: "0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8"},
	}

	for _, tt := range tests {
		t.Run(tt.alg, func(t *testing.T) {
			spec, err := types.NewDigestSpec(tt.alg)
			require.NoError(t, err)

			prim, err := New().Digest(spec)
			require.NoError(t, err)
			got, err := prim.Final()
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(got))
		})
	}
}

func TestDigestABC(t *testing.T) {
	// FIPS 180-4 "abc" vector.
	spec, err := types.NewDigestSpec("sha256")
	require.NoError(t, err)

	prim, err := New().Digest(spec)
	require.NoError(t, err)
	require.NoError(t, prim.Update([]byte("abc")))
	got, err := prim.Final()
	require.NoError(t, err)
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		hex.EncodeToString(got))
	assert.Equal(t, 32, prim.Size())
}

func TestMACKnownAnswer(t *testing.T) {
	// RFC 4231 test case 2: key "Jefe", data "what do ya want for nothing?".
	spec, err := types.NewMACSpec("hmac-sha256")
	require.NoError(t, err)

	prim, err := New().MAC(spec, []byte("Jefe"))
	require.NoError(t, err)
	require.NoError(t, prim.Update([]byte("what do ya want for nothing?")))
	got, err := prim.Final()
	require.NoError(t, err)
	assert.Equal(t,
		"5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
		hex.EncodeToString(got))
}

func TestDigestRejectsWrongKind(t *testing.T) {
	mac, err := types.NewMACSpec("hmac-sha256")
	require.NoError(t, err)

	_, err = New().Digest(mac)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidSpec))

	digest, err := types.NewDigestSpec("sha256")
	require.NoError(t, err)
	_, err = New().MAC(digest, []byte("key"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidSpec))
}

func TestCipherParameterValidation(t *testing.T) {
	spec, err := types.NewCipherSpec("aes-256", "gcm")
	require.NoError(t, err)

	// Key size mismatch surfaces as an unsupported parameter, distinct from
	// an unsupported spec.
	_, err = New().Cipher(spec, types.DirectionEncrypt, make([]byte, 16), make([]byte, 12), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnsupportedParameter))

	_, err = New().Cipher(spec, types.DirectionEncrypt, make([]byte, 32), make([]byte, 16), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnsupportedParameter))
}

func TestAEADPrimitiveTagSize(t *testing.T) {
	tests := []struct {
		cipher string
		mode   string
		want   int
	}{
		{cipher: "aes-256", mode: "gcm", want: 16},
		{cipher: "chacha20", mode: "poly1305", want: 16},
		{cipher: "xchacha20", mode: "poly1305", want: 16},
	}

	for _, tt := range tests {
		spec, err := types.NewCipherSpec(tt.cipher, tt.mode)
		require.NoError(t, err)

		key := make([]byte, spec.KeySize())
		iv := make([]byte, spec.IVSize())
		prim, err := New().Cipher(spec, types.DirectionEncrypt, key, iv, nil)
		require.NoError(t, err)

		aead, ok := prim.(types.AEADPrimitive)
		require.True(t, ok, "%s-%s must be AEAD", tt.cipher, tt.mode)
		assert.Equal(t, tt.want, aead.TagSize())
	}
}

func TestAEADSealOpenRoundTrip(t *testing.T) {
	spec, err := types.NewCipherSpec("aes-256", "gcm")
	require.NoError(t, err)
	key := make([]byte, 32)
	iv := make([]byte, 12)
	aad := []byte("header")
	plaintext := []byte("the payload")

	enc, err := New().Cipher(spec, types.DirectionEncrypt, key, iv, aad)
	require.NoError(t, err)
	sealer := enc.(types.AEADPrimitive)
	_, err = sealer.Update(plaintext)
	require.NoError(t, err)
	ciphertext, tag, err := sealer.SealFinal()
	require.NoError(t, err)
	assert.Len(t, ciphertext, len(plaintext))
	assert.Len(t, tag, sealer.TagSize())

	dec, err := New().Cipher(spec, types.DirectionDecrypt, key, iv, aad)
	require.NoError(t, err)
	opener := dec.(types.AEADPrimitive)
	_, err = opener.Update(ciphertext)
	require.NoError(t, err)
	got, err := opener.OpenFinal(tag)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	// A second opener with a corrupted tag must fail.
	dec2, err := New().Cipher(spec, types.DirectionDecrypt, key, iv, aad)
	require.NoError(t, err)
	opener2 := dec2.(types.AEADPrimitive)
	_, err = opener2.Update(ciphertext)
	require.NoError(t, err)
	badTag := append([]byte(nil), tag...)
	badTag[0] ^= 0x01
	_, err = opener2.OpenFinal(badTag)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrAuthenticationFailure))
}

func TestPKCS7Padding(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		pad   int
	}{
		{name: "empty gains full block", input: []byte{}, pad: 16},
		{name: "one byte", input: []byte{0x41}, pad: 15},
		{name: "fifteen bytes", input: make([]byte, 15), pad: 1},
		{name: "exact block gains full block", input: make([]byte, 16), pad: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			padded := pkcs7Pad(tt.input, 16)
			assert.Equal(t, 0, len(padded)%16)
			assert.Equal(t, byte(tt.pad), padded[len(padded)-1])

			got, err := pkcs7Unpad(padded, 16)
			require.NoError(t, err)
			assert.Equal(t, len(tt.input), len(got))
		})
	}
}

func TestPKCS7UnpadRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{name: "empty", input: []byte{}},
		{name: "not block aligned", input: make([]byte, 15)},
		{name: "zero pad byte", input: append(make([]byte, 15), 0x00)},
		{name: "pad larger than block", input: append(make([]byte, 15), 0x11)},
		{name: "inconsistent pad bytes", input: append(make([]byte, 14), 0x01, 0x02)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pkcs7Unpad(tt.input, 16)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrDecryption))
		})
	}
}

func TestGenerateKeyRejectsUnknownOptions(t *testing.T) {
	_, err := New().GenerateKey(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidKeygenOptions))

	_, err = New().GenerateKey(&types.RSAOptions{Bits: 1000})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidKeygenOptions))
}

func TestSignDigestRejectsUnknownHash(t *testing.T) {
	key, err := New().GenerateKey(&types.ECDSAOptions{Curve: types.CurveP256})
	require.NoError(t, err)
	defer key.Destroy()

	_, err = key.SignDigest(make([]byte, 32), types.DigestAlgorithm("md5"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnsupportedParameter))
}
