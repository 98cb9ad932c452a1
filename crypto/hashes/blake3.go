// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashes

import (
	"encoding/binary"

	"lukechampine.com/blake3"
)

// PowB3Hash is a BLAKE3 streaming hasher primed with everything a header's
// pre-PoW hash determines, letting a miner amortize that absorption across
// many nonce attempts by cloning the underlying hasher state.
type PowB3Hash struct {
	h *blake3.Hasher
}

// NewPowB3Hash primes a PowB3Hash with prePowHash (32 bytes), the header
// timestamp (8 bytes little-endian), and 32 zero bytes. The zero bytes stay
// zero; FinalizeWithNonce absorbs the nonce after them.
func NewPowB3Hash(prePowHash *Hash256, timestamp uint64) *PowB3Hash {
	h := blake3.New(32, nil)
	h.Write(prePowHash[:])
	var ts [8]byte
	binary.LittleEndian.PutUint64(ts[:], timestamp)
	h.Write(ts[:])
	var zero [32]byte
	h.Write(zero[:])
	return &PowB3Hash{h: h}
}

// FinalizeWithNonce clones the primed hasher state, absorbs nonce (8 bytes
// little-endian), and returns the first 32 bytes of the BLAKE3 output. The
// receiver is left unmodified so it can be reused for the next nonce.
func (p *PowB3Hash) FinalizeWithNonce(nonce uint64) Hash256 {
	clone := p.h.Clone()
	var nb [8]byte
	binary.LittleEndian.PutUint64(nb[:], nonce)
	clone.Write(nb[:])

	var out Hash256
	copy(out[:], clone.Sum(nil))
	return out
}

// HashBLAKE3 returns the 32-byte BLAKE3 digest of data, the stateless
// one-shot hash kHashV2 uses to finalize the FishHashPlus kernel output.
func HashBLAKE3(data []byte) Hash256 {
	var out Hash256
	sum := blake3.Sum256(data)
	copy(out[:], sum[:])
	return out
}
