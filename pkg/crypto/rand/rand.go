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

// Package rand provides the process-wide source of cryptographically strong
// random bytes used to synthesize keys, IVs and salts on request.
//
// The Resolver abstraction keeps the rest of the library independent of
// where randomness comes from. The software source wraps crypto/rand;
// hardware-backed sources plug in behind the same Source interface. A
// Resolver implements io.Reader, so it is a drop-in replacement for
// crypto/rand.Reader in standard library key generation functions.
//
// Generation may block at the process level while the kernel gathers
// entropy, but callers should treat Rand as non-blocking in practice. All
// Resolver implementations are safe for concurrent use.
package rand

import (
	"crypto/rand"
	"fmt"
)

// Mode specifies which RNG source to use.
type Mode string

const (
	// ModeAuto selects the best available source. With no hardware source
	// registered this is the software source.
	ModeAuto Mode = "auto"

	// ModeSoftware uses crypto/rand (stdlib secure random).
	ModeSoftware Mode = "software"
)

// Config contains RNG configuration.
type Config struct {
	// Mode specifies the primary RNG source. Defaults to ModeAuto.
	Mode Mode

	// FallbackMode specifies the source to use if the primary mode is
	// unavailable. If empty, failures are returned as errors.
	FallbackMode Mode
}

// Source represents a random number generator.
type Source interface {
	// Rand returns n random bytes, or an error if the source is
	// unavailable or fails.
	Rand(n int) ([]byte, error)

	// Available returns true if this source is ready.
	Available() bool

	// Close releases any resources held by the source.
	Close() error
}

// Resolver is the caller-facing randomness handle. Applications create one
// Resolver at startup and share it.
type Resolver interface {
	// Rand returns n random bytes from the configured source.
	Rand(n int) ([]byte, error)

	// Read implements io.Reader for compatibility with crypto/rand.Reader.
	Read(p []byte) (n int, err error)

	// Source returns the underlying Source in use.
	Source() Source

	// Available returns true if at least one source is available.
	Available() bool

	// Close closes the resolver and releases any resources.
	Close() error
}

// NewResolver creates a resolver for the given configuration. A nil config
// selects auto mode.
func NewResolver(cfg *Config) (Resolver, error) {
	if cfg == nil {
		cfg = &Config{Mode: ModeAuto}
	}
	mode := cfg.Mode
	if mode == "" {
		mode = ModeAuto
	}

	switch mode {
	case ModeAuto, ModeSoftware:
		return &SoftwareResolver{}, nil
	default:
		if cfg.FallbackMode != "" && cfg.FallbackMode != mode {
			return NewResolver(&Config{Mode: cfg.FallbackMode})
		}
		return nil, fmt.Errorf("unknown RNG mode: %s", mode)
	}
}

// SoftwareResolver uses crypto/rand from the Go standard library.
type SoftwareResolver struct{}

var _ Resolver = (*SoftwareResolver)(nil)

func (s *SoftwareResolver) Rand(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	return buf, err
}

// Read implements io.Reader for compatibility with crypto/rand.Reader.
func (s *SoftwareResolver) Read(p []byte) (n int, err error) {
	return rand.Read(p)
}

func (s *SoftwareResolver) Source() Source {
	return &softwareSource{}
}

func (s *SoftwareResolver) Available() bool {
	return true // crypto/rand always available
}

func (s *SoftwareResolver) Close() error {
	return nil // Nothing to close
}

type softwareSource struct{}

func (s *softwareSource) Rand(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	return buf, err
}

func (s *softwareSource) Available() bool {
	return true
}

func (s *softwareSource) Close() error {
	return nil
}
