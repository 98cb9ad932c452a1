// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashes

import "encoding/binary"

// keccakF1600 applies the 24-round Keccak-f[1600] permutation to state in
// place. The lane at position (x, y) of the 5x5 state array lives at
// state[x+5*y], matching the flat [25]uint64 representation used by both
// the reference Keccak implementations and this core's callers.
//
// REDESIGN (spec.md §9 / §4.1): the source offers an assembly-tuned Keccak
// on some platforms and a pure fallback elsewhere; this core exposes a
// single portable implementation since no third-party Go module in the
// pack exports a reusable raw permutation to swap in behind a build tag.
func keccakF1600(a *[25]uint64) {
	var bc [5]uint64

	for round := 0; round < 24; round++ {
		// Theta
		for x := 0; x < 5; x++ {
			bc[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			t := bc[(x+4)%5] ^ rotl64(bc[(x+1)%5], 1)
			for y := 0; y < 25; y += 5 {
				a[x+y] ^= t
			}
		}

		// Rho and Pi
		t := a[1]
		for i := 0; i < 24; i++ {
			j := piLane[i]
			a[j], t = rotl64(t, rotOffset[i]), a[j]
		}

		// Chi
		for y := 0; y < 25; y += 5 {
			for x := 0; x < 5; x++ {
				bc[x] = a[y+x]
			}
			for x := 0; x < 5; x++ {
				a[y+x] ^= ^bc[(x+1)%5] & bc[(x+2)%5]
			}
		}

		// Iota
		a[0] ^= roundConstants[round]
	}
}

func rotl64(x uint64, n uint) uint64 {
	return x<<n | x>>(64-n)
}

var rotOffset = [24]uint{1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14, 27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44}

var piLane = [24]int{10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4, 15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1}

var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// keccak512RateBytes is the sponge rate for Keccak-512 (capacity = 1024
// bits, the original Keccak padding/domain convention rather than NIST
// SHA3's, matching FishHash's reference derivation).
const keccak512RateBytes = 72

// sponge runs the original-Keccak pad10*1 sponge construction (domain byte
// 0x01, as opposed to SHA3's 0x06) over data and squeezes outBytes of
// output. It is only ever called with outBytes <= rateBytes by this
// package, so a single squeeze pass after the last absorb suffices.
func sponge(data []byte, rateBytes, outBytes int) []byte {
	padLen := rateBytes - len(data)%rateBytes
	buf := make([]byte, len(data)+padLen)
	copy(buf, data)
	buf[len(data)] ^= 0x01
	buf[len(buf)-1] ^= 0x80

	var state [25]uint64
	for off := 0; off < len(buf); off += rateBytes {
		block := buf[off : off+rateBytes]
		for i := 0; i < rateBytes/8; i++ {
			state[i] ^= binary.LittleEndian.Uint64(block[i*8 : i*8+8])
		}
		keccakF1600(&state)
	}

	out := make([]byte, outBytes)
	for i := 0; i*8 < outBytes; i++ {
		binary.LittleEndian.PutUint64(out[i*8:], state[i])
	}
	return out
}

// Keccak512 computes the 64-byte Keccak-512 digest of data.
func Keccak512(data []byte) Hash512 {
	var out Hash512
	copy(out[:], sponge(data, keccak512RateBytes, 64))
	return out
}

// Keccak512InPlace overwrites h with its own Keccak-512 digest, the
// "keccak-in-place" operation the light-cache build and dataset item
// derivation both use to advance a Hash512 cell.
func Keccak512InPlace(h *Hash512) {
	*h = Keccak512(h[:])
}
