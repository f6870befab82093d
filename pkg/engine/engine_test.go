// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-crypto.

package engine

import (
	"crypto/sha256"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeremyhahn/go-crypto/pkg/metrics"
	"github.com/jeremyhahn/go-crypto/pkg/types"
)

// captureRecorder counts events for assertions.
type captureRecorder struct {
	mu           sync.Mutex
	resolutions  map[string]int
	operations   map[string]int
	authFailures map[string]int
}

func newCaptureRecorder() *captureRecorder {
	return &captureRecorder{
		resolutions:  map[string]int{},
		operations:   map[string]int{},
		authFailures: map[string]int{},
	}
}

func (r *captureRecorder) RecordResolution(factory string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	outcome := "hit"
	if !ok {
		outcome = "miss"
	}
	r.resolutions[factory+"/"+outcome]++
}

func (r *captureRecorder) RecordOperation(op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations[op]++
}

func (r *captureRecorder) RecordAuthFailure(algorithm string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authFailures[algorithm]++
}

var _ metrics.Recorder = (*captureRecorder)(nil)

func newTestEngine(t *testing.T, rec metrics.Recorder) *Engine {
	t.Helper()
	e, err := New(&Config{Metrics: rec})
	require.NoError(t, err)
	return e
}

func TestNewDefaults(t *testing.T) {
	e, err := New(nil)
	require.NoError(t, err)
	require.NotNil(t, e.Chain())
	assert.Equal(t, 1, e.Chain().Len())
}

func TestEngineDigest(t *testing.T) {
	e := newTestEngine(t, nil)

	spec, err := types.NewDigestSpec("sha256")
	require.NoError(t, err)

	got, err := e.Digest(spec, []byte("abc"))
	require.NoError(t, err)

	want := sha256.Sum256([]byte("abc"))
	assert.Equal(t, want[:], got)
}

func TestEngineMAC(t *testing.T) {
	e := newTestEngine(t, nil)

	spec, err := types.NewMACSpec("hmac-sha256")
	require.NoError(t, err)

	key, err := e.GenerateSymmetricKey(spec)
	require.NoError(t, err)
	assert.Len(t, key, 32)

	tag, err := e.MAC(spec, key, []byte("message"))
	require.NoError(t, err)
	assert.Len(t, tag, 32)

	// Same key, same message, same tag.
	again, err := e.MAC(spec, key, []byte("message"))
	require.NoError(t, err)
	assert.Equal(t, tag, again)
}

func TestEngineEncryptDecrypt(t *testing.T) {
	rec := newCaptureRecorder()
	e := newTestEngine(t, rec)

	spec, err := types.NewCipherSpec("aes-256", "gcm")
	require.NoError(t, err)

	key, err := e.GenerateSymmetricKey(spec)
	require.NoError(t, err)
	iv, err := e.GenerateIV(spec)
	require.NoError(t, err)
	assert.Len(t, iv, 12)

	plaintext := []byte("round trip through the engine")
	aad := []byte("context")

	ciphertext, err := e.Encrypt(spec, key, iv, plaintext, aad)
	require.NoError(t, err)

	got, err := e.Decrypt(spec, key, iv, ciphertext, aad)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	assert.Equal(t, 1, rec.operations["encrypt"])
	assert.Equal(t, 1, rec.operations["decrypt"])
}

func TestEngineDecryptAuthFailureRecorded(t *testing.T) {
	rec := newCaptureRecorder()
	e := newTestEngine(t, rec)

	spec, err := types.NewCipherSpec("aes-256", "gcm")
	require.NoError(t, err)

	key := make([]byte, 32)
	iv := make([]byte, 12)

	ciphertext, err := e.Encrypt(spec, key, iv, []byte("data"), nil)
	require.NoError(t, err)
	ciphertext[0] ^= 0xFF

	_, err = e.Decrypt(spec, key, iv, ciphertext, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrAuthenticationFailure))
	assert.Equal(t, 1, rec.authFailures["cipher:aes-256-gcm"])
	assert.Equal(t, 0, rec.operations["decrypt"])
}

func TestEngineResolutionMetrics(t *testing.T) {
	rec := newCaptureRecorder()
	e := newTestEngine(t, rec)

	spec, err := types.NewDigestSpec("sha256")
	require.NoError(t, err)
	_, err = e.Digest(spec, []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, 1, rec.resolutions["software/hit"])
}

func TestEngineGenerateSymmetricKeyRequiresKeyedSpec(t *testing.T) {
	e := newTestEngine(t, nil)

	digest, err := types.NewDigestSpec("sha256")
	require.NoError(t, err)

	_, err = e.GenerateSymmetricKey(digest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidSpec))

	_, err = e.GenerateIV(digest)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidSpec))
}

func TestEngineRandom(t *testing.T) {
	e := newTestEngine(t, nil)

	buf, err := e.Random(24)
	require.NoError(t, err)
	assert.Len(t, buf, 24)
}

func TestEngineKeyPairLifecycle(t *testing.T) {
	rec := newCaptureRecorder()
	e := newTestEngine(t, rec)

	kp, err := e.GenerateKey(&types.ECDSAOptions{Curve: types.CurveP256})
	require.NoError(t, err)
	defer kp.Destroy()

	message := []byte("signed through the engine")
	sig, err := e.DigestAndSign(kp, types.DigestSHA256, message)
	require.NoError(t, err)

	digest := sha256.Sum256(message)
	ok, err := e.VerifyDigest(kp, digest[:], sig, types.DigestSHA256)
	require.NoError(t, err)
	assert.True(t, ok)

	sig2, err := e.SignDigest(kp, digest[:], types.DigestSHA256)
	require.NoError(t, err)
	ok, err = e.VerifyDigest(kp, digest[:], sig2, types.DigestSHA256)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, 1, rec.operations["keygen"])
	assert.Equal(t, 2, rec.operations["sign"])
	assert.Equal(t, 2, rec.operations["verify"])
}

func TestEnginePKEncryptDecrypt(t *testing.T) {
	rec := newCaptureRecorder()
	e := newTestEngine(t, rec)

	kp, err := e.GenerateKey(&types.RSAOptions{Bits: 2048})
	require.NoError(t, err)
	defer kp.Destroy()

	ciphertext, err := e.PKEncrypt(kp, []byte("wrapped"))
	require.NoError(t, err)

	got, err := e.PKDecrypt(kp, ciphertext)
	require.NoError(t, err)
	assert.Equal(t, []byte("wrapped"), got)

	assert.Equal(t, 1, rec.operations["pk_encrypt"])
	assert.Equal(t, 1, rec.operations["pk_decrypt"])
}

func TestEngineAgree(t *testing.T) {
	e := newTestEngine(t, nil)

	alice, err := e.GenerateKey(&types.ECDHOptions{Curve: types.CurveX25519})
	require.NoError(t, err)
	defer alice.Destroy()

	bob, err := e.GenerateKey(&types.ECDHOptions{Curve: types.CurveX25519})
	require.NoError(t, err)
	defer bob.Destroy()

	ab, err := e.Agree(alice, bob)
	require.NoError(t, err)
	ba, err := e.Agree(bob, alice)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
}

func TestEngineUnresolvableSpec(t *testing.T) {
	rec := newCaptureRecorder()
	e := newTestEngine(t, rec)

	// The types package refuses to build unsupported specs, so exercise the
	// miss path by emptying the chain.
	e.Chain().Configure()

	spec, err := types.NewDigestSpec("sha256")
	require.NoError(t, err)
	_, err = e.Digest(spec, []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNoImplementation))
	assert.Equal(t, 1, rec.resolutions["none/miss"])
}
