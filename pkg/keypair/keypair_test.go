// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-crypto.

package keypair

import (
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-crypto/pkg/backend/software"
	"github.com/jeremyhahn/go-crypto/pkg/factory"
	"github.com/jeremyhahn/go-crypto/pkg/types"
)

func testChain() *factory.Chain {
	return factory.NewChain(factory.New(software.New()))
}

func TestGenerateValidatesOptions(t *testing.T) {
	chain := testChain()

	tests := []struct {
		name string
		opts types.KeygenOptions
	}{
		{name: "nil options", opts: nil},
		{name: "rsa bits too small", opts: &types.RSAOptions{Bits: 512}},
		{name: "ecdsa bad curve", opts: &types.ECDSAOptions{Curve: "P-224"}},
		{name: "ecdh bad curve", opts: &types.ECDHOptions{Curve: "brainpool"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(chain, tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrInvalidKeygenOptions), "got %v", err)
		})
	}
}

func TestGenerateCapabilities(t *testing.T) {
	chain := testChain()

	tests := []struct {
		name string
		opts types.KeygenOptions
		want types.CapabilitySet
	}{
		{
			name: "ecdsa",
			opts: &types.ECDSAOptions{Curve: types.CurveP256},
			want: types.NewCapabilitySet(types.CapabilitySign, types.CapabilityVerify),
		},
		{
			name: "ed25519",
			opts: &types.Ed25519Options{},
			want: types.NewCapabilitySet(types.CapabilitySign, types.CapabilityVerify),
		},
		{
			name: "ecdh",
			opts: &types.ECDHOptions{Curve: types.CurveX25519},
			want: types.NewCapabilitySet(types.CapabilityAgree),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kp, err := Generate(chain, tt.opts)
			require.NoError(t, err)
			defer kp.Destroy()

			assert.Equal(t, tt.want, kp.Capabilities())
			assert.Equal(t, tt.opts.System(), kp.System())
			assert.NotEmpty(t, kp.ID())
			assert.True(t, kp.IsPrivate())
		})
	}
}

func TestSignAndVerify(t *testing.T) {
	chain := testChain()

	tests := []struct {
		name string
		opts types.KeygenOptions
	}{
		{name: "ecdsa p256", opts: &types.ECDSAOptions{Curve: types.CurveP256}},
		{name: "ecdsa p384", opts: &types.ECDSAOptions{Curve: types.CurveP384}},
		{name: "ed25519", opts: &types.Ed25519Options{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kp, err := Generate(chain, tt.opts)
			require.NoError(t, err)
			defer kp.Destroy()

			digest := sha256.Sum256([]byte("message"))
			sig, err := kp.SignDigest(digest[:], types.DigestSHA256)
			require.NoError(t, err)

			ok, err := kp.VerifyDigest(digest[:], sig, types.DigestSHA256)
			require.NoError(t, err)
			assert.True(t, ok)

			// A different message must not verify.
			other := sha256.Sum256([]byte("message'"))
			ok, err = kp.VerifyDigest(other[:], sig, types.DigestSHA256)
			require.NoError(t, err)
			assert.False(t, ok)

			// A corrupted signature must not verify, and is not an error.
			bad := append([]byte(nil), sig...)
			bad[0] ^= 0xFF
			ok, err = kp.VerifyDigest(digest[:], bad, types.DigestSHA256)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestDigestAndSign(t *testing.T) {
	chain := testChain()
	kp, err := Generate(chain, &types.ECDSAOptions{Curve: types.CurveP256})
	require.NoError(t, err)
	defer kp.Destroy()

	message := []byte("sign me end to end")
	sig, err := kp.DigestAndSign(chain, types.DigestSHA256, message)
	require.NoError(t, err)

	digest := sha256.Sum256(message)
	ok, err := kp.VerifyDigest(digest[:], sig, types.DigestSHA256)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRSAEncryptDecrypt(t *testing.T) {
	chain := testChain()
	kp, err := Generate(chain, &types.RSAOptions{Bits: 2048})
	require.NoError(t, err)
	defer kp.Destroy()

	plaintext := []byte("sealed with oaep")
	ciphertext, err := kp.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	got, err := kp.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	// Malformed ciphertext fails as a decryption error.
	_, err = kp.Decrypt([]byte("garbage"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrDecryption))
}

func TestCapabilityGating(t *testing.T) {
	chain := testChain()
	digest := sha256.Sum256([]byte("gated"))

	// ECDSA keys sign and verify, nothing else.
	ecdsaKP, err := Generate(chain, &types.ECDSAOptions{Curve: types.CurveP256})
	require.NoError(t, err)
	defer ecdsaKP.Destroy()

	_, err = ecdsaKP.Encrypt([]byte("data"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrCapability))

	_, err = ecdsaKP.Decrypt([]byte("data"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrCapability))

	_, err = ecdsaKP.Agree(ecdsaKP)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrCapability))

	// ECDH keys agree, nothing else.
	ecdhKP, err := Generate(chain, &types.ECDHOptions{Curve: types.CurveX25519})
	require.NoError(t, err)
	defer ecdhKP.Destroy()

	_, err = ecdhKP.SignDigest(digest[:], types.DigestSHA256)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrCapability))

	_, err = ecdhKP.VerifyDigest(digest[:], []byte("sig"), types.DigestSHA256)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrCapability))
}

func TestPublicOnlyProjection(t *testing.T) {
	chain := testChain()
	kp, err := Generate(chain, &types.ECDSAOptions{Curve: types.CurveP256})
	require.NoError(t, err)
	defer kp.Destroy()

	digest := sha256.Sum256([]byte("projected"))
	sig, err := kp.SignDigest(digest[:], types.DigestSHA256)
	require.NoError(t, err)

	pub := kp.PublicOnly()
	assert.False(t, pub.IsPrivate())
	assert.NotEqual(t, kp.ID(), pub.ID())
	assert.Equal(t, kp.System(), pub.System())

	// Verification still works on the projection.
	ok, err := pub.VerifyDigest(digest[:], sig, types.DigestSHA256)
	require.NoError(t, err)
	assert.True(t, ok)

	// Private operations fail permanently with a capability error.
	_, err = pub.SignDigest(digest[:], types.DigestSHA256)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrCapability))

	_, err = pub.Decrypt([]byte("ct"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrCapability))
}

func TestRSAPublicOnlyStillEncrypts(t *testing.T) {
	chain := testChain()
	kp, err := Generate(chain, &types.RSAOptions{Bits: 2048})
	require.NoError(t, err)
	defer kp.Destroy()

	pub := kp.PublicOnly()
	ciphertext, err := pub.Encrypt([]byte("to the key holder"))
	require.NoError(t, err)

	got, err := kp.Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, []byte("to the key holder"), got)

	_, err = pub.Decrypt(ciphertext)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrCapability))
}

func TestAgree(t *testing.T) {
	chain := testChain()

	for _, curve := range []types.EllipticCurve{types.CurveX25519, types.CurveP256} {
		t.Run(curve.String(), func(t *testing.T) {
			alice, err := Generate(chain, &types.ECDHOptions{Curve: curve})
			require.NoError(t, err)
			defer alice.Destroy()

			bob, err := Generate(chain, &types.ECDHOptions{Curve: curve})
			require.NoError(t, err)
			defer bob.Destroy()

			// Both directions derive the same shared secret.
			ab, err := alice.Agree(bob)
			require.NoError(t, err)
			ba, err := bob.Agree(alice)
			require.NoError(t, err)
			assert.Equal(t, ab, ba)
			assert.NotEmpty(t, ab)
		})
	}
}

func TestAgreeIncompatiblePeers(t *testing.T) {
	chain := testChain()

	x, err := Generate(chain, &types.ECDHOptions{Curve: types.CurveX25519})
	require.NoError(t, err)
	defer x.Destroy()

	p, err := Generate(chain, &types.ECDHOptions{Curve: types.CurveP256})
	require.NoError(t, err)
	defer p.Destroy()

	// Same cryptosystem, different curve.
	_, err = x.Agree(p)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrIncompatibleKey))

	// Different cryptosystem entirely.
	signer, err := Generate(chain, &types.ECDSAOptions{Curve: types.CurveP256})
	require.NoError(t, err)
	defer signer.Destroy()

	_, err = x.Agree(signer)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrIncompatibleKey))

	// Nil peer.
	_, err = x.Agree(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrIncompatibleKey))
}

func TestDestroy(t *testing.T) {
	chain := testChain()
	kp, err := Generate(chain, &types.ECDSAOptions{Curve: types.CurveP256})
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("before destroy"))
	sig, err := kp.SignDigest(digest[:], types.DigestSHA256)
	require.NoError(t, err)

	kp.Destroy()
	assert.False(t, kp.IsPrivate())

	// Signing is gone; verification survives.
	_, err = kp.SignDigest(digest[:], types.DigestSHA256)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrCapability))

	ok, err := kp.VerifyDigest(digest[:], sig, types.DigestSHA256)
	require.NoError(t, err)
	assert.True(t, ok)

	// Destroy is idempotent.
	kp.Destroy()
}

func TestGenerateUnresolvableSystem(t *testing.T) {
	// An empty chain cannot resolve any cryptosystem.
	chain := factory.NewChain()
	_, err := Generate(chain, &types.Ed25519Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNoImplementation))
}
