// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg holds the proof-of-work core's configuration bundle:
// the tolerances, limits, and memory-mode switch §6 requires from the
// surrounding node, plus the DAA-score-keyed algorithm activation table.
package chaincfg

import "github.com/fishdagd/fishdagd/wire"

// Params bundles the configuration the pre-GHOSTDAG validator and the PoW
// core need from the surrounding node. It is a plain struct, not a flags
// parser, since the CLI/daemon bootstrap layer is out of scope for this
// core.
type Params struct {
	// TimestampDeviationToleranceSecs bounds how far into the future a
	// header's timestamp may be relative to the local clock.
	TimestampDeviationToleranceSecs uint64

	// MaxBlockParentsUpperBound is the structural cap on direct parents
	// enforced pre-GHOSTDAG; a tighter per-DAA limit is applied later,
	// outside this core.
	MaxBlockParentsUpperBound uint8

	// MaxBlockLevel is the ceiling block level derivation is measured
	// against.
	MaxBlockLevel uint8

	// SkipProofOfWork disables the PoW check in ValidateHeaderInIsolation,
	// used by networks/test harnesses that don't want to pay for real
	// mining.
	SkipProofOfWork bool

	// FullDataset selects whether the node's FishHashContext prebuilds the
	// full ~4.6 GB dataset or computes items on demand from the light
	// cache.
	FullDataset bool

	// Algorithms is the DAA-score-keyed proof-of-work algorithm activation
	// table, generalizing the teacher's per-height algorithm switch to
	// this network's two-algorithm, per-DAA-score hard fork.
	Algorithms []wire.AlgorithmSpec
}

// KHashV2Active reports whether kHashV2 (FishHashPlus) is the required
// algorithm at daaScore: the table is walked for the highest entry whose
// DaaScore is <= daaScore, and that entry's Version determines the
// answer. An empty table means kHashV2 is never active.
func (p *Params) KHashV2Active(daaScore uint64) bool {
	var active *wire.AlgorithmSpec
	for i := range p.Algorithms {
		entry := &p.Algorithms[i]
		if entry.DaaScore > daaScore {
			continue
		}
		if active == nil || entry.DaaScore > active.DaaScore {
			active = entry
		}
	}
	return active != nil && active.Version == wire.BlockVersionKHashV2
}
