// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"

	"github.com/fishdagd/fishdagd/chaincfg"
	"github.com/fishdagd/fishdagd/chainhash"
	"github.com/fishdagd/fishdagd/pow"
	"github.com/fishdagd/fishdagd/pow/fishhash"
	"github.com/fishdagd/fishdagd/wire"
)

type mockStatusProvider map[chainhash.Hash]Status

func (m mockStatusProvider) Status(h chainhash.Hash) (Status, bool) {
	s, ok := m[h]
	return s, ok
}

type mockReachability map[[2]chainhash.Hash]bool

func (m mockReachability) IsDAGAncestorOf(a, b chainhash.Hash) bool {
	return m[[2]chainhash.Hash{a, b}]
}

func hashFromByte(b byte) chainhash.Hash {
	var h chainhash.Hash
	h[0] = b
	return h
}

func newHeader(version uint16, daaScore uint64, parents []chainhash.Hash) *wire.BlockHeader {
	return &wire.BlockHeader{
		Version:        version,
		Timestamp:      1_700_000_000_000,
		Bits:           0x1d00ffff,
		Nonce:          0,
		DaaScore:       daaScore,
		ParentsByLevel: [][]chainhash.Hash{parents},
	}
}

func fixedClock(ms uint64) func() uint64 {
	return func() uint64 { return ms }
}

func testValidator(t *testing.T, threshold uint64) (*Validator, mockStatusProvider, mockReachability) {
	t.Helper()
	ctx, err := fishhash.NewContext(false, &fishhash.DefaultSeed)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	status := mockStatusProvider{}
	reach := mockReachability{}
	params := &chaincfg.Params{
		TimestampDeviationToleranceSecs: 600,
		MaxBlockParentsUpperBound:       10,
		MaxBlockLevel:                   225,
		SkipProofOfWork:                 true,
		Algorithms: []wire.AlgorithmSpec{
			{DaaScore: 0, Version: wire.BlockVersionKHashV1},
			{DaaScore: threshold, Version: wire.BlockVersionKHashV2},
		},
	}
	v := NewValidator(params, status, reach, ctx, fixedClock(1_700_000_000_000))
	return v, status, reach
}

func TestValidateHeaderInIsolationVersionForkRejection(t *testing.T) {
	v, _, _ := testValidator(t, 1_000_000)

	parents := []chainhash.Hash{hashFromByte(1)}
	h := newHeader(pow.VersionKHashV1, 2_000_000, parents)
	_, err := v.ValidateHeaderInIsolation(h)
	re, ok := err.(RuleError)
	if !ok || re.ErrorCode != ErrWrongBlockVersion {
		t.Fatalf("expected ErrWrongBlockVersion, got %v", err)
	}

	h2 := newHeader(pow.VersionKHashV2, 2_000_000, parents)
	if _, err := v.ValidateHeaderInIsolation(h2); err != nil {
		t.Fatalf("expected V2 header to pass isolation checks, got %v", err)
	}
}

func TestValidateHeaderInIsolationNoParents(t *testing.T) {
	v, _, _ := testValidator(t, 1_000_000)
	h := newHeader(pow.VersionKHashV1, 0, nil)
	_, err := v.ValidateHeaderInIsolation(h)
	re, ok := err.(RuleError)
	if !ok || re.ErrorCode != ErrNoParents {
		t.Fatalf("expected ErrNoParents, got %v", err)
	}
}

func TestValidateHeaderInIsolationTooManyParents(t *testing.T) {
	v, _, _ := testValidator(t, 1_000_000)
	parents := make([]chainhash.Hash, 11)
	for i := range parents {
		parents[i] = hashFromByte(byte(i + 1))
	}
	h := newHeader(pow.VersionKHashV1, 0, parents)
	_, err := v.ValidateHeaderInIsolation(h)
	re, ok := err.(RuleError)
	if !ok || re.ErrorCode != ErrTooManyParents {
		t.Fatalf("expected ErrTooManyParents, got %v", err)
	}
}

func TestValidateHeaderInIsolationOriginParent(t *testing.T) {
	v, _, _ := testValidator(t, 1_000_000)
	h := newHeader(pow.VersionKHashV1, 0, []chainhash.Hash{OriginHash})
	_, err := v.ValidateHeaderInIsolation(h)
	re, ok := err.(RuleError)
	if !ok || re.ErrorCode != ErrOriginParent {
		t.Fatalf("expected ErrOriginParent, got %v", err)
	}
}

func TestValidateHeaderInIsolationFutureTimestamp(t *testing.T) {
	v, _, _ := testValidator(t, 1_000_000)
	h := newHeader(pow.VersionKHashV1, 0, []chainhash.Hash{hashFromByte(1)})
	h.Timestamp = 1_700_000_000_000 + 10_000_000
	_, err := v.ValidateHeaderInIsolation(h)
	re, ok := err.(RuleError)
	if !ok || re.ErrorCode != ErrTimeTooFarIntoTheFuture {
		t.Fatalf("expected ErrTimeTooFarIntoTheFuture, got %v", err)
	}
}

func TestValidateParentRelationsMissingParents(t *testing.T) {
	v, _, _ := testValidator(t, 1_000_000)
	a, b := hashFromByte(1), hashFromByte(2)
	h := newHeader(pow.VersionKHashV1, 0, []chainhash.Hash{a, b})

	err := v.ValidateParentRelations(h)
	re, ok := err.(RuleError)
	if !ok || re.ErrorCode != ErrMissingParents {
		t.Fatalf("expected ErrMissingParents, got %v", err)
	}
}

func TestValidateParentRelationsInvalidParent(t *testing.T) {
	v, status, _ := testValidator(t, 1_000_000)
	a := hashFromByte(1)
	status[a] = StatusInvalid
	h := newHeader(pow.VersionKHashV1, 0, []chainhash.Hash{a})

	err := v.ValidateParentRelations(h)
	re, ok := err.(RuleError)
	if !ok || re.ErrorCode != ErrInvalidParent {
		t.Fatalf("expected ErrInvalidParent, got %v", err)
	}
}

func TestValidateParentRelationsIncestRejection(t *testing.T) {
	v, status, reach := testValidator(t, 1_000_000)
	a, b := hashFromByte(1), hashFromByte(2)
	status[a] = StatusValid
	status[b] = StatusValid
	reach[[2]chainhash.Hash{a, b}] = true

	h := newHeader(pow.VersionKHashV1, 0, []chainhash.Hash{a, b})
	err := v.ValidateParentRelations(h)
	re, ok := err.(RuleError)
	if !ok || re.ErrorCode != ErrInvalidParentsRelation {
		t.Fatalf("expected ErrInvalidParentsRelation, got %v", err)
	}
}

func TestValidateParentRelationsAccepts(t *testing.T) {
	v, status, _ := testValidator(t, 1_000_000)
	a, b := hashFromByte(1), hashFromByte(2)
	status[a] = StatusValid
	status[b] = StatusValid

	h := newHeader(pow.VersionKHashV1, 0, []chainhash.Hash{a, b})
	if err := v.ValidateParentRelations(h); err != nil {
		t.Fatalf("expected valid, unrelated parents to be accepted, got %v", err)
	}
}
