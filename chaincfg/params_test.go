// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"testing"

	"github.com/fishdagd/fishdagd/wire"
)

func TestKHashV2ActiveTableDriven(t *testing.T) {
	p := &Params{
		Algorithms: []wire.AlgorithmSpec{
			{DaaScore: 0, Version: wire.BlockVersionKHashV1},
			{DaaScore: 1_000_000, Version: wire.BlockVersionKHashV2},
		},
	}

	if p.KHashV2Active(0) {
		t.Fatal("expected V1 at DAA score 0")
	}
	if p.KHashV2Active(999_999) {
		t.Fatal("expected V1 just below the V2 activation threshold")
	}
	if !p.KHashV2Active(1_000_000) {
		t.Fatal("expected V2 at the activation threshold")
	}
	if !p.KHashV2Active(2_000_000) {
		t.Fatal("expected V2 to remain active past its activation threshold")
	}
}

func TestKHashV2ActiveEmptyTable(t *testing.T) {
	p := &Params{}
	if p.KHashV2Active(123) {
		t.Fatal("expected an empty algorithm table to never activate V2")
	}
}
