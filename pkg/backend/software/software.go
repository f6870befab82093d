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

// Package software is the default native engine behind the provider
// interface, built on the Go standard library and golang.org/x/crypto.
//
// Digests: SHA-1/224/256/384/512, SHA3-256/384/512, BLAKE2b-256/384/512.
// Ciphers: AES-128/192/256 in GCM, CBC (PKCS#7) and CTR; ChaCha20-Poly1305;
// XChaCha20-Poly1305. MACs: HMAC over any supported digest. Public key:
// RSA (PKCS#1 v1.5 signatures, OAEP encryption), ECDSA, Ed25519, and ECDH
// over X25519 and the NIST curves.
package software

import (
	"github.com/jeremyhahn/go-crypto/pkg/types"
)

// ProviderName is the stable identity this provider registers under.
const ProviderName = "software"

// Software implements types.Provider over stdlib and x/crypto primitives.
// The zero value is not usable; call New.
type Software struct {
	name string
}

// New creates the software provider.
func New() *Software {
	return &Software{name: ProviderName}
}

// Name returns the provider identity.
func (s *Software) Name() string {
	return s.name
}

// Supports reports whether this provider implements the spec. All specs the
// types package can construct are supported here; the software provider is
// the reference engine the validation tables were written against.
func (s *Software) Supports(spec *types.AlgorithmSpec) bool {
	if spec == nil {
		return false
	}
	switch spec.Kind() {
	case types.KindDigest:
		_, err := newHash(spec.Digest())
		return err == nil
	case types.KindMAC:
		_, err := newHash(spec.MAC().Digest())
		return err == nil
	case types.KindCipher:
		return spec.KeySize() > 0
	case types.KindPK:
		switch spec.System() {
		case types.SystemRSA, types.SystemECDSA, types.SystemEd25519, types.SystemECDH:
			return true
		}
	}
	return false
}

// Verify interface compliance
var _ types.Provider = (*Software)(nil)
