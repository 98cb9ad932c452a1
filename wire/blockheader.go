// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"

	"github.com/fishdagd/fishdagd/chainhash"
	"github.com/fishdagd/fishdagd/crypto/hashes"
)

// BlockHeader is this repository's concrete header type. The proof-of-work
// core (packages pow and blockchain) never imports it directly; instead it
// depends on the small Header interface those packages declare, and
// BlockHeader is simply the type that satisfies it for every caller in this
// repository, including its own tests and fixtures.
type BlockHeader struct {
	// Version selects the proof-of-work algorithm: BlockVersionKHashV1 or
	// BlockVersionKHashV2.
	Version uint16

	// Timestamp is milliseconds since the Unix epoch.
	Timestamp uint64

	// Bits is the compact-encoded difficulty target.
	Bits uint32

	// Nonce is the miner-chosen proof-of-work witness.
	Nonce uint64

	// DaaScore is the DAA-space height used as the hard-fork activation
	// variable.
	DaaScore uint64

	// ParentsByLevel groups parent hashes by block level; level 0 holds
	// the direct parents.
	ParentsByLevel [][]chainhash.Hash
}

// HeaderVersion, HeaderTimestamp, and HeaderBits satisfy pow.Header. They
// are named with a Header prefix rather than Version/Timestamp/Bits so the
// same type can also expose those as plain fields, matching the field
// access the rest of this package and its tests use directly.
func (h *BlockHeader) HeaderVersion() uint16   { return h.Version }
func (h *BlockHeader) HeaderTimestamp() uint64 { return h.Timestamp }
func (h *BlockHeader) HeaderBits() uint32      { return h.Bits }
func (h *BlockHeader) HeaderNonce() uint64     { return h.Nonce }
func (h *BlockHeader) HeaderDaaScore() uint64  { return h.DaaScore }

// DirectParents returns the header's level-0 parent hashes.
func (h *BlockHeader) DirectParents() []chainhash.Hash {
	if len(h.ParentsByLevel) == 0 {
		return nil
	}
	return h.ParentsByLevel[0]
}

// serialize encodes the header's consensus-relevant fields in a fixed,
// canonical little-endian layout. timestamp and nonce are each forced to
// the value the caller supplies so PrePowHash can zero them without
// mutating the receiver.
func (h *BlockHeader) serialize(timestamp, nonce uint64) []byte {
	size := 2 + 8 + 4 + 8 + 8 + 2
	for _, level := range h.ParentsByLevel {
		size += 2 + len(level)*chainhash.HashSize
	}

	buf := make([]byte, size)
	off := 0
	binary.LittleEndian.PutUint16(buf[off:], h.Version)
	off += 2
	binary.LittleEndian.PutUint64(buf[off:], timestamp)
	off += 8
	binary.LittleEndian.PutUint32(buf[off:], h.Bits)
	off += 4
	binary.LittleEndian.PutUint64(buf[off:], nonce)
	off += 8
	binary.LittleEndian.PutUint64(buf[off:], h.DaaScore)
	off += 8
	binary.LittleEndian.PutUint16(buf[off:], uint16(len(h.ParentsByLevel)))
	off += 2
	for _, level := range h.ParentsByLevel {
		binary.LittleEndian.PutUint16(buf[off:], uint16(len(level)))
		off += 2
		for _, hash := range level {
			copy(buf[off:], hash.Bytes())
			off += chainhash.HashSize
		}
	}
	return buf
}

// PrePowHash returns the header's proof-of-work pre-image hash: the
// canonical encoding above with timestamp and nonce both forced to zero,
// hashed with BLAKE3. It is independent of timestamp and nonce by
// construction, satisfying invariant I1.
func (h *BlockHeader) PrePowHash() chainhash.Hash {
	digest := hashes.HashBLAKE3(h.serialize(0, 0))
	return chainhash.Hash(digest)
}
