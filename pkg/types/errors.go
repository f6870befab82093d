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

package types

import "errors"

var (
	// ErrInvalidSpec is returned when an algorithm descriptor is malformed or
	// names an unknown algorithm or an unsupported algorithm/mode pairing.
	// This is a caller bug; retrying the same spec will not succeed.
	ErrInvalidSpec = errors.New("crypto: invalid algorithm spec")

	// ErrNoImplementation is returned when no configured factory supports the
	// requested algorithm spec. This is a configuration issue and is surfaced
	// immediately by chain resolution.
	ErrNoImplementation = errors.New("crypto: no factory supports the algorithm spec")

	// ErrContextReused is returned when Update or Final is called on a context
	// that has already been finalized. Contexts are strictly single-use and
	// must be discarded after finalization, never reset.
	ErrContextReused = errors.New("crypto: context already finalized")

	// ErrAuthenticationFailure is returned when an AEAD authentication tag
	// does not verify. No plaintext is ever returned alongside this error.
	ErrAuthenticationFailure = errors.New("crypto: message authentication failed")

	// ErrInvalidKeygenOptions is returned when key generation options are
	// unrecognized or out of range for the requested cryptosystem.
	ErrInvalidKeygenOptions = errors.New("crypto: invalid key generation options")

	// ErrCapability is returned when an operation is not supported by the
	// key's cryptosystem, or when a private operation is attempted on a
	// public-only keypair projection.
	ErrCapability = errors.New("crypto: operation not supported by this key")

	// ErrDecryption is returned when asymmetric decryption fails on malformed
	// ciphertext, or when block cipher padding is invalid.
	ErrDecryption = errors.New("crypto: decryption failed")

	// ErrIncompatibleKey is returned when a key agreement peer key does not
	// belong to a compatible parameter set (e.g. a different curve).
	ErrIncompatibleKey = errors.New("crypto: incompatible peer key")

	// ErrUnsupportedParameter is returned when a provider supports the
	// algorithm spec but rejects a concrete parameter, such as a key or IV
	// of the wrong size. Distinct from ErrNoImplementation: reconfiguring
	// the factory chain will not help, fixing the parameter will.
	ErrUnsupportedParameter = errors.New("crypto: unsupported algorithm parameter")
)
