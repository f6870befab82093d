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

// Package factory resolves algorithm specs to concrete provider
// implementations. A Factory wraps one provider; a Chain consults an ordered
// list of factories and returns the first implementation offered.
package factory

import (
	"fmt"

	"github.com/jeremyhahn/go-crypto/pkg/types"
)

// Factory wraps a single provider and answers support queries for it.
// Factories are stateless beyond the provider handle: they are registered
// once, shared by all resolutions, and read-only afterwards.
type Factory struct {
	provider types.Provider
}

// New wraps a provider in a Factory.
func New(provider types.Provider) *Factory {
	return &Factory{provider: provider}
}

// Name returns the wrapped provider's stable identity.
func (f *Factory) Name() string {
	return f.provider.Name()
}

// Provider returns the wrapped provider.
func (f *Factory) Provider() types.Provider {
	return f.provider
}

// Supports reports whether the wrapped provider can implement the spec.
func (f *Factory) Supports(spec *types.AlgorithmSpec) bool {
	return f.provider.Supports(spec)
}

// Implementation binds the spec to this factory's provider. Returns
// ErrNoImplementation if the provider does not support the spec.
func (f *Factory) Implementation(spec *types.AlgorithmSpec) (*Implementation, error) {
	if spec == nil {
		return nil, fmt.Errorf("factory %s: nil spec: %w", f.Name(), types.ErrInvalidSpec)
	}
	if !f.provider.Supports(spec) {
		return nil, fmt.Errorf("factory %s: %s: %w", f.Name(), spec, types.ErrNoImplementation)
	}
	return &Implementation{spec: spec, factory: f}, nil
}

// Implementation is a resolved, ready-to-use binding of an algorithm spec to
// one factory's provider. Implementations are immutable, stateless with
// respect to any particular operation's data, and safe to cache and share
// across goroutines; callers that resolve the same spec repeatedly may hold
// on to the Implementation instead of re-resolving.
type Implementation struct {
	spec    *types.AlgorithmSpec
	factory *Factory
}

// Spec returns the algorithm spec this implementation was resolved for.
func (i *Implementation) Spec() *types.AlgorithmSpec {
	return i.spec
}

// Factory returns the factory that produced this implementation.
func (i *Implementation) Factory() *Factory {
	return i.factory
}

// Provider returns the backing provider.
func (i *Implementation) Provider() types.Provider {
	return i.factory.provider
}

// String identifies the implementation in errors and logs.
func (i *Implementation) String() string {
	return fmt.Sprintf("%s@%s", i.spec, i.factory.Name())
}
