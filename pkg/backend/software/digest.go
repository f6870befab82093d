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
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/jeremyhahn/go-crypto/pkg/types"
)

// newHash maps a digest algorithm to its hash.Hash constructor result.
func newHash(d types.DigestAlgorithm) (hash.Hash, error) {
	switch d {
	case types.DigestSHA1:
		return sha1.New(), nil
	case types.DigestSHA224:
		return sha256.New224(), nil
	case types.DigestSHA256:
		return sha256.New(), nil
	case types.DigestSHA384:
		return sha512.New384(), nil
	case types.DigestSHA512:
		return sha512.New(), nil
	case types.DigestSHA3_256:
		return sha3.New256(), nil
	case types.DigestSHA3_384:
		return sha3.New384(), nil
	case types.DigestSHA3_512:
		return sha3.New512(), nil
	case types.DigestBLAKE2b256:
		return blake2b.New256(nil)
	case types.DigestBLAKE2b384:
		return blake2b.New384(nil)
	case types.DigestBLAKE2b512:
		return blake2b.New512(nil)
	default:
		return nil, fmt.Errorf("digest %q: %w", d, types.ErrInvalidSpec)
	}
}

// hashPrimitive adapts a hash.Hash to both the digest and MAC primitive
// contracts (hmac.New returns a hash.Hash as well).
type hashPrimitive struct {
	h hash.Hash
}

func (p *hashPrimitive) Update(b []byte) error {
	// hash.Hash.Write never returns an error
	p.h.Write(b)
	return nil
}

func (p *hashPrimitive) Final() ([]byte, error) {
	return p.h.Sum(nil), nil
}

func (p *hashPrimitive) Size() int {
	return p.h.Size()
}

// Digest creates a fresh digest computation for the spec.
func (s *Software) Digest(spec *types.AlgorithmSpec) (types.DigestPrimitive, error) {
	if spec == nil || spec.Kind() != types.KindDigest {
		return nil, fmt.Errorf("software digest: %s: %w", spec, types.ErrInvalidSpec)
	}
	h, err := newHash(spec.Digest())
	if err != nil {
		return nil, err
	}
	return &hashPrimitive{h: h}, nil
}

// MAC creates a fresh HMAC computation for the spec with the given key.
// HMAC accepts keys of any length; no size validation applies here.
func (s *Software) MAC(spec *types.AlgorithmSpec, key []byte) (types.MACPrimitive, error) {
	if spec == nil || spec.Kind() != types.KindMAC {
		return nil, fmt.Errorf("software mac: %s: %w", spec, types.ErrInvalidSpec)
	}
	digest := spec.MAC().Digest()
	if _, err := newHash(digest); err != nil {
		return nil, err
	}
	h := hmac.New(func() hash.Hash {
		inner, _ := newHash(digest)
		return inner
	}, key)
	return &hashPrimitive{h: h}, nil
}
