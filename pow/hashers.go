// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import (
	"github.com/fishdagd/fishdagd/crypto/hashes"
	"github.com/fishdagd/fishdagd/math/uint256"
	"github.com/fishdagd/fishdagd/pow/fishhash"
)

// calculateKHashV1 runs the kHashV1 (matrix / heavy-hash) pipeline: finalize
// the primed BLAKE3 prefix with nonce, then heavy-mix the result through
// the header's matrix.
func calculateKHashV1(b3Prefix *hashes.PowB3Hash, nonce uint64, matrix *hashes.Matrix) uint256.Uint256 {
	h := b3Prefix.FinalizeWithNonce(nonce)
	mixed := matrix.HeavyHash(h)
	n, _ := uint256.FromLittleEndianBytes(mixed[:])
	return n
}

// calculateKHashV2 runs the kHashV2 (FishHashPlus) pipeline: finalize the
// primed BLAKE3 prefix with nonce, run it through the memory-hard kernel,
// then finalize with one more BLAKE3 pass.
func calculateKHashV2(b3Prefix *hashes.PowB3Hash, nonce uint64, ctx *fishhash.Context) uint256.Uint256 {
	h0 := b3Prefix.FinalizeWithNonce(nonce)
	h1 := fishHashPlusKernel(h0, ctx)
	h2 := hashes.HashBLAKE3(h1[:])
	n, _ := uint256.FromLittleEndianBytes(h2[:])
	return n
}

// fishHashPlusKernel is the v2 memory-hard core: seed is widened to 512
// bits by zero-padding its high half, then that 512-bit value is
// duplicated to fill the 1024-bit mix buffer. The buffer is then mixed
// against 32 dataset lookups whose indices are derived from folded "mix
// group" words rather than raw mix words directly.
func fishHashPlusKernel(seed hashes.Hash256, ctx *fishhash.Context) hashes.Hash256 {
	var widened hashes.Hash512
	copy(widened[:32], seed[:])
	mix := hashes.Hash1024FromHalves(&widened, &widened)

	n := uint32(fishhash.FullDatasetNumItems)
	for i := uint32(0); i < fishhash.NumDatasetAccesses; i++ {
		var mg [8]uint32
		for k := 0; k < 8; k++ {
			mg[k] = mix.WordU32(4*k) ^ mix.WordU32(4*k+1) ^ mix.WordU32(4*k+2) ^ mix.WordU32(4*k+3)
		}

		p0 := uint64(mg[0]^mg[3]^mg[6]) % uint64(n)
		p1 := uint64(mg[1]^mg[4]^mg[7]) % uint64(n)
		p2 := uint64(mg[2]^mg[5]^i) % uint64(n)

		f0 := ctx.Lookup(p0)
		f1 := ctx.Lookup(p1)
		f2 := ctx.Lookup(p2)

		for j := 0; j < 32; j++ {
			f1.SetWordU32(j, fishhash.Fnv1(mix.WordU32(j), f1.WordU32(j)))
			f2.SetWordU32(j, mix.WordU32(j)^f2.WordU32(j))
		}
		for j := 0; j < 16; j++ {
			mix.SetWordU64(j, f0.WordU64(j)*f1.WordU64(j)+f2.WordU64(j))
		}
	}

	var out hashes.Hash256
	for g := 0; g < 8; g++ {
		acc := mix.WordU32(4 * g)
		for k := 1; k < 4; k++ {
			acc = fishhash.Fnv1(acc, mix.WordU32(4*g+k))
		}
		out.SetWordU32(g, acc)
	}
	return out
}
