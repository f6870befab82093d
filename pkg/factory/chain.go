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

package factory

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jeremyhahn/go-crypto/pkg/types"
)

// Chain is an ordered list of factories consulted in sequence during
// resolution. Order is significant and caller-controlled: resolution is a
// deliberate first-match policy, so reordering the chain changes which
// provider wins for specs that several providers support.
//
// The chain is the one piece of process-wide mutable state in the library.
// Reconfiguration swaps in a new snapshot atomically; a resolution running
// concurrently with a reconfiguration observes either the old order or the
// new one, never a partially updated list. Resolution itself performs no
// caching; Implementations are immutable and callers may cache them.
type Chain struct {
	mu        sync.Mutex
	factories atomic.Pointer[[]*Factory]
}

// NewChain creates a chain with the given initial factory order.
func NewChain(factories ...*Factory) *Chain {
	c := &Chain{}
	c.store(factories)
	return c
}

// store publishes a defensive copy as the current snapshot.
func (c *Chain) store(factories []*Factory) {
	snapshot := make([]*Factory, len(factories))
	copy(snapshot, factories)
	c.factories.Store(&snapshot)
}

// Register appends a factory to the end of the chain.
func (c *Chain) Register(f *Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(append(c.Factories(), f))
}

// Configure replaces the entire chain order.
func (c *Chain) Configure(factories ...*Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(factories)
}

// Factories returns a copy of the current factory order.
func (c *Chain) Factories() []*Factory {
	snapshot := *c.factories.Load()
	out := make([]*Factory, len(snapshot))
	copy(out, snapshot)
	return out
}

// Len returns the number of registered factories.
func (c *Chain) Len() int {
	return len(*c.factories.Load())
}

// Resolve walks the chain in order and returns the first factory's
// implementation of the spec. If no factory supports the spec the resolution
// fails with ErrNoImplementation naming the spec.
func (c *Chain) Resolve(spec *types.AlgorithmSpec) (*Implementation, error) {
	if spec == nil {
		return nil, fmt.Errorf("resolve: nil spec: %w", types.ErrInvalidSpec)
	}
	for _, f := range *c.factories.Load() {
		if f.Supports(spec) {
			return &Implementation{spec: spec, factory: f}, nil
		}
	}
	return nil, fmt.Errorf("resolve %s: %w", spec, types.ErrNoImplementation)
}
