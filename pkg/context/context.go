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

// Package context provides stateful handles for incremental digest, cipher
// and MAC operations.
//
// Every context is a Fresh -> Accumulating -> Finalized state machine:
// Update is legal in Fresh and Accumulating, Final is legal in Fresh and
// Accumulating and transitions to Finalized, and any call on a Finalized
// context fails with types.ErrContextReused. Contexts are strictly
// single-use: they are never reset and must be discarded after
// finalization or abandonment.
//
// A context has exactly one logical owner and is not safe for concurrent
// use. Implementations and factories, by contrast, are immutable and may be
// shared freely; create one context per in-flight operation.
package context

import (
	"fmt"

	"github.com/jeremyhahn/go-crypto/pkg/factory"
	"github.com/jeremyhahn/go-crypto/pkg/types"
)

// State is the lifecycle state of a context.
type State uint8

const (
	// StateFresh is a context that has not yet received input.
	StateFresh State = iota

	// StateAccumulating is a context that has received at least one Update.
	StateAccumulating

	// StateFinalized is a context whose Final has run. Terminal.
	StateFinalized
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateAccumulating:
		return "accumulating"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// lifecycle is the shared state machine embedded in every context type.
type lifecycle struct {
	state State
}

// advance moves Fresh -> Accumulating, failing if already finalized.
func (l *lifecycle) advance(op string, spec *types.AlgorithmSpec) error {
	if l.state == StateFinalized {
		return fmt.Errorf("%s %s: %w", op, spec, types.ErrContextReused)
	}
	l.state = StateAccumulating
	return nil
}

// finalize moves to Finalized, failing if already finalized.
func (l *lifecycle) finalize(op string, spec *types.AlgorithmSpec) error {
	if l.state == StateFinalized {
		return fmt.Errorf("%s %s: %w", op, spec, types.ErrContextReused)
	}
	l.state = StateFinalized
	return nil
}

// State returns the current lifecycle state.
func (l *lifecycle) State() State {
	return l.state
}

// Digest is an incremental digest computation.
type Digest struct {
	lifecycle
	impl *factory.Implementation
	prim types.DigestPrimitive
}

// NewDigest creates a digest context from a resolved implementation.
func NewDigest(impl *factory.Implementation) (*Digest, error) {
	spec := impl.Spec()
	if spec.Kind() != types.KindDigest {
		return nil, fmt.Errorf("digest context: %s: %w", spec, types.ErrInvalidSpec)
	}
	prim, err := impl.Provider().Digest(spec)
	if err != nil {
		return nil, fmt.Errorf("digest context %s: %w", impl, err)
	}
	return &Digest{impl: impl, prim: prim}, nil
}

// Update appends input to the digest computation.
func (d *Digest) Update(p []byte) error {
	if err := d.advance("digest update", d.impl.Spec()); err != nil {
		return err
	}
	return d.prim.Update(p)
}

// Final flushes the computation and returns the digest bytes. The context
// must be discarded afterwards.
func (d *Digest) Final() ([]byte, error) {
	if err := d.finalize("digest final", d.impl.Spec()); err != nil {
		return nil, err
	}
	return d.prim.Final()
}

// Size returns the digest output size in bytes.
func (d *Digest) Size() int {
	return d.prim.Size()
}

// MAC is an incremental MAC computation.
type MAC struct {
	lifecycle
	impl *factory.Implementation
	prim types.MACPrimitive
}

// NewMAC creates a MAC context from a resolved implementation and a key.
func NewMAC(impl *factory.Implementation, key []byte) (*MAC, error) {
	spec := impl.Spec()
	if spec.Kind() != types.KindMAC {
		return nil, fmt.Errorf("mac context: %s: %w", spec, types.ErrInvalidSpec)
	}
	prim, err := impl.Provider().MAC(spec, key)
	if err != nil {
		return nil, fmt.Errorf("mac context %s: %w", impl, err)
	}
	return &MAC{impl: impl, prim: prim}, nil
}

// Update appends input to the MAC computation.
func (m *MAC) Update(p []byte) error {
	if err := m.advance("mac update", m.impl.Spec()); err != nil {
		return err
	}
	return m.prim.Update(p)
}

// Final flushes the computation and returns the MAC bytes. The context must
// be discarded afterwards.
func (m *MAC) Final() ([]byte, error) {
	if err := m.finalize("mac final", m.impl.Spec()); err != nil {
		return nil, err
	}
	return m.prim.Final()
}

// Size returns the MAC output size in bytes.
func (m *MAC) Size() int {
	return m.prim.Size()
}
