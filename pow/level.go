// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package pow

import "github.com/fishdagd/fishdagd/pow/fishhash"

// CalcBlockLevel derives a header's block level: max(0, maxBlockLevel -
// bitlen(pow)), and reports whether its proof-of-work passed. Genesis
// headers (directParents == 0) are exempt from the check entirely: their
// level is maxBlockLevel by definition and PoW is never evaluated (I5).
func CalcBlockLevel(header Header, directParents int, maxBlockLevel uint8, ctx *fishhash.Context) (level uint8, passed bool, err error) {
	if directParents == 0 {
		return maxBlockLevel, true, nil
	}

	state, err := NewState(header, ctx)
	if err != nil {
		return 0, false, err
	}
	ok, pow := state.CheckPow(header.HeaderNonce())

	bitLen := pow.BitLen()
	if bitLen >= int(maxBlockLevel) {
		return 0, ok, nil
	}
	return maxBlockLevel - uint8(bitLen), ok, nil
}
