// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package pow implements the proof-of-work hash pipelines and the
// per-header State that amortizes their precomputation across many nonce
// attempts.
package pow

import (
	"fmt"

	"github.com/fishdagd/fishdagd/chainhash"
	"github.com/fishdagd/fishdagd/crypto/hashes"
	"github.com/fishdagd/fishdagd/math/uint256"
	"github.com/fishdagd/fishdagd/pow/fishhash"
)

// Block version identifiers this package's State dispatches on. A caller's
// concrete header type (see package wire) is expected to use these same
// numeric values for its own version field.
const (
	VersionKHashV1 uint16 = 1
	VersionKHashV2 uint16 = 2
)

// Header is the minimum view of a candidate block header State needs. A
// caller's concrete header type implements this directly; the core never
// depends on a concrete wire format.
type Header interface {
	HeaderVersion() uint16
	HeaderTimestamp() uint64
	HeaderBits() uint32
	HeaderNonce() uint64
	PrePowHash() chainhash.Hash
}

// State holds everything calculate_pow needs for a given header, built
// once and reused across every nonce attempt. It is immutable except
// through FinalizeWithNonce's clone-then-absorb pattern, so concurrent
// nonce attempts against the same State are safe only if each caller holds
// its own clone-worthy view; in practice each attempt is single-threaded
// per State and State itself is thread-local (see package fishhash's
// concurrency notes).
type State struct {
	target   uint256.Uint256
	version  uint16
	matrix   *hashes.Matrix
	b3Prefix *hashes.PowB3Hash
	ctx      *fishhash.Context
}

// NewState builds a State from header: it decodes the compact target,
// computes the header's pre-PoW hash, primes a BLAKE3 hasher with it, and,
// for V1 headers, generates the matrix up front.
func NewState(header Header, ctx *fishhash.Context) (*State, error) {
	version := header.HeaderVersion()
	if version != VersionKHashV1 && version != VersionKHashV2 {
		return nil, fmt.Errorf("pow: unsupported header version %d", version)
	}

	prePowHash := hashes.Hash256(header.PrePowHash())
	s := &State{
		target:   uint256.FromCompact(header.HeaderBits()),
		version:  version,
		b3Prefix: hashes.NewPowB3Hash(&prePowHash, header.HeaderTimestamp()),
		ctx:      ctx,
	}
	if version == VersionKHashV1 {
		m := hashes.GenerateMatrix(&prePowHash)
		s.matrix = &m
	}
	return s, nil
}

// CalculatePow computes the proof-of-work value for nonce, dispatching on
// the header version captured at construction. A version outside
// {VersionKHashV1, VersionKHashV2} can never reach a constructed State
// (NewState rejects it), so this never needs a default case beyond a
// panic guarding a programmer error in a future caller.
func (s *State) CalculatePow(nonce uint64) uint256.Uint256 {
	switch s.version {
	case VersionKHashV1:
		return calculateKHashV1(s.b3Prefix, nonce, s.matrix)
	case VersionKHashV2:
		return calculateKHashV2(s.b3Prefix, nonce, s.ctx)
	default:
		panic(fmt.Sprintf("pow: State built with unreachable version %d", s.version))
	}
}

// CheckPow reports whether nonce's proof-of-work value is at or below the
// state's target, alongside the value itself.
func (s *State) CheckPow(nonce uint64) (bool, uint256.Uint256) {
	pow := s.CalculatePow(nonce)
	return pow.LessOrEqual(s.target), pow
}

// Target returns the 256-bit decoded difficulty target this state checks
// proof-of-work against.
func (s *State) Target() uint256.Uint256 {
	return s.target
}
