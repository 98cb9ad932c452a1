// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package uint256

import "github.com/fishdagd/fishdagd/chainhash"

// DiffBitsToUint256 converts the compact representation used to encode
// difficulty targets to an unsigned 256-bit integer. See FromCompact for
// details on the compact format.
func DiffBitsToUint256(compact uint32) Uint256 {
	return FromCompact(compact)
}

// Uint256ToDiffBits converts an unsigned 256-bit integer to the compact
// representation used to encode difficulty targets. See ToCompact for
// details on the compact format.
func Uint256ToDiffBits(n Uint256) uint32 {
	return ToCompact(n)
}

// HashToUint256 converts a hash to an unsigned 256-bit integer that can be
// used to perform math comparisons.
func HashToUint256(hash *chainhash.Hash) Uint256 {
	n, _ := FromLittleEndianBytes(hash[:])
	return n
}

// maxUint256 is 2^256 - 1, the largest value a Uint256 can hold; 2^256
// itself does not fit in 256 bits.
var maxUint256 = Uint256{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}

// CalcWork calculates a work value from difficulty bits. Decred does this
// by performing a truncated division of 2^256 by the difficulty, producing
// a value denominated in hashes that is proportional to the difficulty: a
// higher difficulty target (a smaller allowed hash range) corresponds to a
// higher work value.
func CalcWork(bits uint32) Uint256 {
	target := FromCompact(bits)
	if target.IsZero() {
		return Uint256{}
	}

	// work = (2^256 - 1 - target) / (target + 1) + 1, which is algebraically
	// equivalent to floor(2^256 / (target + 1)) without needing a true
	// 257-bit intermediate value.
	denominator := target.Add(Uint256{1, 0, 0, 0})
	if denominator.IsZero() {
		// target was the maximum possible value; 2^256 / 2^256 == 1.
		return Uint256{1, 0, 0, 0}
	}
	numerator := maxUint256.subFrom(target)
	quotient := divUint256(numerator, denominator)
	return quotient.Add(Uint256{1, 0, 0, 0})
}

// subFrom returns n - m using 256-bit subtraction with borrow. Callers
// only pass m <= n (maxUint256 - target in CalcWork, remainder -
// denominator in divUint256), so the result never underflows.
func (n Uint256) subFrom(m Uint256) Uint256 {
	var out Uint256
	var borrow uint64
	for i := 0; i < 4; i++ {
		d := n[i] - m[i] - borrow
		if n[i] < m[i]+borrow {
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = d
	}
	return out
}

// divUint256 performs unsigned 256-bit long division using the simple
// binary shift-and-subtract algorithm; CalcWork is computed once per
// difficulty retarget, not per nonce, so this does not need to be
// constant-time or especially fast.
func divUint256(numerator, denominator Uint256) Uint256 {
	if denominator.IsZero() {
		return Uint256{}
	}
	var quotient, remainder Uint256
	for bit := 255; bit >= 0; bit-- {
		remainder = remainder.Lsh(1)
		if bitSet(numerator, bit) {
			remainder[0] |= 1
		}
		if remainder.Cmp(denominator) >= 0 {
			remainder = remainder.subFrom(denominator)
			setBit(&quotient, bit)
		}
	}
	return quotient
}

func bitSet(n Uint256, bit int) bool {
	return n[bit/64]&(1<<uint(bit%64)) != 0
}

func setBit(n *Uint256, bit int) {
	n[bit/64] |= 1 << uint(bit%64)
}
