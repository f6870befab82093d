// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-crypto.

package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDigestSpec(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DigestAlgorithm
		wantErr bool
	}{
		{name: "canonical sha256", input: "sha256", want: DigestSHA256},
		{name: "dashed variant", input: "SHA-256", want: DigestSHA256},
		{name: "underscore variant", input: "sha3_256", want: DigestSHA3_256},
		{name: "whitespace tolerated", input: "  blake2b-512 ", want: DigestBLAKE2b512},
		{name: "unknown algorithm", input: "md5", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewDigestSpec(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidSpec))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, KindDigest, spec.Kind())
			assert.Equal(t, tt.want, spec.Digest())
		})
	}
}

func TestNewCipherSpec(t *testing.T) {
	tests := []struct {
		name    string
		cipher  string
		mode    string
		wantErr bool
	}{
		{name: "aes-256 gcm", cipher: "aes-256", mode: "gcm"},
		{name: "aes-128 cbc", cipher: "aes-128", mode: "cbc"},
		{name: "aes-192 ctr", cipher: "aes-192", mode: "ctr"},
		{name: "chacha20 poly1305", cipher: "chacha20", mode: "poly1305"},
		{name: "xchacha20 poly1305", cipher: "xchacha20", mode: "poly1305"},
		{name: "case insensitive", cipher: "AES-256", mode: "GCM"},
		{name: "incompatible pairing aes-poly1305", cipher: "aes-256", mode: "poly1305", wantErr: true},
		{name: "incompatible pairing chacha20-gcm", cipher: "chacha20", mode: "gcm", wantErr: true},
		{name: "unknown cipher", cipher: "des", mode: "cbc", wantErr: true},
		{name: "unknown mode", cipher: "aes-256", mode: "ecb", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := NewCipherSpec(tt.cipher, tt.mode)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidSpec))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, KindCipher, spec.Kind())
		})
	}
}

func TestNewMACSpec(t *testing.T) {
	spec, err := NewMACSpec("hmac-sha256")
	require.NoError(t, err)
	assert.Equal(t, KindMAC, spec.Kind())
	assert.Equal(t, MACHMACSHA256, spec.MAC())
	assert.Equal(t, DigestSHA256, spec.MAC().Digest())

	_, err = NewMACSpec("hmac-md5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSpec))

	_, err = NewMACSpec("cmac-aes")
	require.Error(t, err)
}

func TestNewPKSpec(t *testing.T) {
	for _, system := range []string{"rsa", "ecdsa", "ed25519", "ecdh"} {
		spec, err := NewPKSpec(system)
		require.NoError(t, err, system)
		assert.Equal(t, KindPK, spec.Kind())
	}

	_, err := NewPKSpec("dsa")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSpec))
}

func TestAlgorithmSpecKeySize(t *testing.T) {
	tests := []struct {
		cipher string
		mode   string
		want   int
	}{
		{cipher: "aes-128", mode: "gcm", want: 16},
		{cipher: "aes-192", mode: "cbc", want: 24},
		{cipher: "aes-256", mode: "ctr", want: 32},
		{cipher: "chacha20", mode: "poly1305", want: 32},
		{cipher: "xchacha20", mode: "poly1305", want: 32},
	}

	for _, tt := range tests {
		spec, err := NewCipherSpec(tt.cipher, tt.mode)
		require.NoError(t, err)
		assert.Equal(t, tt.want, spec.KeySize(), "%s-%s", tt.cipher, tt.mode)
	}

	// MAC key size follows the underlying digest output size
	macSpec, err := NewMACSpec("hmac-sha512")
	require.NoError(t, err)
	assert.Equal(t, 64, macSpec.KeySize())

	digestSpec, err := NewDigestSpec("sha256")
	require.NoError(t, err)
	assert.Equal(t, 0, digestSpec.KeySize())
}

func TestAlgorithmSpecIVSize(t *testing.T) {
	tests := []struct {
		cipher string
		mode   string
		want   int
	}{
		{cipher: "aes-256", mode: "gcm", want: 12},
		{cipher: "aes-256", mode: "cbc", want: 16},
		{cipher: "aes-256", mode: "ctr", want: 16},
		{cipher: "chacha20", mode: "poly1305", want: 12},
		{cipher: "xchacha20", mode: "poly1305", want: 24},
	}

	for _, tt := range tests {
		spec, err := NewCipherSpec(tt.cipher, tt.mode)
		require.NoError(t, err)
		assert.Equal(t, tt.want, spec.IVSize(), "%s-%s", tt.cipher, tt.mode)
	}
}

func TestAlgorithmSpecIsAEAD(t *testing.T) {
	gcm, err := NewCipherSpec("aes-256", "gcm")
	require.NoError(t, err)
	assert.True(t, gcm.IsAEAD())

	poly, err := NewCipherSpec("chacha20", "poly1305")
	require.NoError(t, err)
	assert.True(t, poly.IsAEAD())

	cbc, err := NewCipherSpec("aes-256", "cbc")
	require.NoError(t, err)
	assert.False(t, cbc.IsAEAD())

	digest, err := NewDigestSpec("sha256")
	require.NoError(t, err)
	assert.False(t, digest.IsAEAD())
}

func TestAlgorithmSpecString(t *testing.T) {
	digest, _ := NewDigestSpec("sha256")
	assert.Equal(t, "digest:sha256", digest.String())

	cipher, _ := NewCipherSpec("aes-256", "gcm")
	assert.Equal(t, "cipher:aes-256-gcm", cipher.String())

	mac, _ := NewMACSpec("hmac-sha256")
	assert.Equal(t, "mac:hmac-sha256", mac.String())

	pk, _ := NewPKSpec("ed25519")
	assert.Equal(t, "pk:ed25519", pk.String())
}
