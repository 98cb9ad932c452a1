// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashes

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

const matrixSize = 32

// Matrix is the deterministic 32x32 nibble (4-bit entry) matrix the kHashV1
// pipeline derives from a header's pre-PoW hash and uses to heavy-mix a
// Hash256.
type Matrix [matrixSize][matrixSize]uint16

// xoshiro256pp is the xoshiro256++ generator used to fill Matrix entries.
type xoshiro256pp struct {
	s [4]uint64
}

func newXoshiro256pp(seed [32]byte) *xoshiro256pp {
	var x xoshiro256pp
	for i := 0; i < 4; i++ {
		x.s[i] = binary.LittleEndian.Uint64(seed[i*8 : i*8+8])
	}
	return &x
}

func (x *xoshiro256pp) next() uint64 {
	result := rotl64(x.s[0]+x.s[3], 23) + x.s[0]
	t := x.s[1] << 17
	x.s[2] ^= x.s[0]
	x.s[3] ^= x.s[1]
	x.s[1] ^= x.s[2]
	x.s[0] ^= x.s[3]
	x.s[2] ^= t
	x.s[3] = rotl64(x.s[3], 45)
	return result
}

func cShake256(domain string, data []byte, outLen int) []byte {
	h := sha3.NewCShake256(nil, []byte(domain))
	h.Write(data)
	out := make([]byte, outLen)
	h.Read(out)
	return out
}

// GenerateMatrix derives a Matrix from a header's pre-PoW hash: the hash is
// expanded via cSHAKE256 under the "ProofOfWorkHash" domain into a seed for
// xoshiro256++, which fills the matrix sixteen nibbles (one uint64) at a
// time.
func GenerateMatrix(prePowHash *Hash256) Matrix {
	var seed [32]byte
	copy(seed[:], cShake256("ProofOfWorkHash", prePowHash[:], 32))
	gen := newXoshiro256pp(seed)

	var m Matrix
	for i := 0; i < matrixSize; i++ {
		for col := 0; col < matrixSize; col += 16 {
			v := gen.next()
			for shift := 0; shift < 16 && col+shift < matrixSize; shift++ {
				m[i][col+shift] = uint16(v>>(4*shift)) & 0x0f
			}
		}
	}
	return m
}

// HeavyHash mixes h through the matrix (a row/column multiply-accumulate
// quantized back down to a byte per row) and finalizes the XOR-folded
// result under cSHAKE256's "HeavyHash" domain.
func (m *Matrix) HeavyHash(h Hash256) Hash256 {
	var vector [matrixSize]uint32
	for j := 0; j < matrixSize; j++ {
		vector[j] = uint32(h[j])
	}

	var mixed Hash256
	for i := 0; i < matrixSize; i++ {
		var sum uint32
		for j := 0; j < matrixSize; j++ {
			sum += uint32(m[i][j]) * vector[j]
		}
		mixed[i] = h[i] ^ byte((sum>>4)&0xff)
	}

	var out Hash256
	copy(out[:], cShake256("HeavyHash", mixed[:], 32))
	return out
}
