// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import "testing"

func TestHashStringRoundTrip(t *testing.T) {
	var h Hash
	for i := range h {
		h[i] = byte(i)
	}

	s := h.String()
	got, err := NewHashFromStr(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsEqual(&h) {
		t.Fatalf("round trip mismatch: got %v, want %v", got, h)
	}
}

func TestSetBytesWrongLength(t *testing.T) {
	var h Hash
	if err := h.SetBytes([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for short byte slice")
	}
}

func TestIsEqualNil(t *testing.T) {
	var a *Hash
	var b *Hash
	if !a.IsEqual(b) {
		t.Fatal("two nil hashes should be equal")
	}
	h := new(Hash)
	if a.IsEqual(h) || h.IsEqual(a) {
		t.Fatal("nil hash should never equal a non-nil hash")
	}
}
