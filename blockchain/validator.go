// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockchain implements the pre-GHOSTDAG header validation
// pipeline: the gate a header must pass before it is admitted to the DAG,
// in isolation from its parents and then against them.
package blockchain

import (
	"fmt"

	"github.com/fishdagd/fishdagd/chaincfg"
	"github.com/fishdagd/fishdagd/chainhash"
	"github.com/fishdagd/fishdagd/pow"
	"github.com/fishdagd/fishdagd/pow/fishhash"
)

// OriginHash is the reserved sentinel denoting "before genesis"; it must
// never appear as a parent.
var OriginHash = chainhash.Hash{}

// Header is the view of a candidate header the validator needs: pow.Header
// plus the DAG-specific attributes §4.5 gates on.
type Header interface {
	pow.Header
	HeaderDaaScore() uint64
	DirectParents() []chainhash.Hash
}

// Status is a parent header's last known validation outcome.
type Status int

// Status values a StatusProvider can report.
const (
	StatusUnknown Status = iota
	StatusValid
	StatusInvalid
)

// StatusProvider looks up a previously-seen header's validation status by
// hash.
type StatusProvider interface {
	Status(hash chainhash.Hash) (Status, bool)
}

// ReachabilityOracle answers DAG ancestor queries used to reject
// parent-incest.
type ReachabilityOracle interface {
	IsDAGAncestorOf(a, b chainhash.Hash) bool
}

// HeaderState models §4.5's per-header state machine.
type HeaderState int

// HeaderState values.
const (
	Arrived HeaderState = iota
	IsolationOK
	ParentsOK
	LevelAssigned
	Rejected
	MissingParentsState
)

// Validator gates incoming headers on version/timestamp/parents/PoW and,
// once parents are known, on parent validity and DAG-incest.
type Validator struct {
	params   *chaincfg.Params
	status   StatusProvider
	reach    ReachabilityOracle
	ctx      *fishhash.Context
	nowMs    func() uint64
}

// NewValidator builds a Validator from its configuration and the two
// external oracles §6 requires. nowMs supplies the current Unix time in
// milliseconds; callers almost always pass a thin wrapper around the
// system clock, and tests pass a fixed function.
func NewValidator(params *chaincfg.Params, status StatusProvider, reach ReachabilityOracle, ctx *fishhash.Context, nowMs func() uint64) *Validator {
	return &Validator{params: params, status: status, reach: reach, ctx: ctx, nowMs: nowMs}
}

// ValidateHeaderInIsolation enforces version/fork consistency, timestamp,
// parent structure, and proof-of-work, in that order, returning the
// header's block level on success.
func (v *Validator) ValidateHeaderInIsolation(header Header) (uint8, error) {
	want := pow.VersionKHashV1
	if v.params.KHashV2Active(header.HeaderDaaScore()) {
		want = pow.VersionKHashV2
	}
	if got := header.HeaderVersion(); got != want {
		return 0, ruleError(ErrWrongBlockVersion,
			fmt.Sprintf("header version %d does not match required version %d for DAA score %d",
				got, want, header.HeaderDaaScore()))
	}

	maxAllowed := v.nowMs() + v.params.TimestampDeviationToleranceSecs*1000
	if header.HeaderTimestamp() > maxAllowed {
		return 0, ruleError(ErrTimeTooFarIntoTheFuture,
			fmt.Sprintf("header timestamp %d is too far into the future (max allowed %d)",
				header.HeaderTimestamp(), maxAllowed))
	}

	parents := header.DirectParents()
	if len(parents) == 0 {
		return 0, ruleError(ErrNoParents, "header has no direct parents")
	}

	if len(parents) > int(v.params.MaxBlockParentsUpperBound) {
		return 0, ruleError(ErrTooManyParents,
			fmt.Sprintf("header has %d direct parents, limit is %d", len(parents), v.params.MaxBlockParentsUpperBound))
	}

	for _, p := range parents {
		if p == OriginHash {
			return 0, ruleError(ErrOriginParent, "header lists the origin sentinel as a parent")
		}
	}

	level, passed, err := pow.CalcBlockLevel(header, len(parents), v.params.MaxBlockLevel, v.ctx)
	if err != nil {
		return 0, err
	}
	if !passed && !v.params.SkipProofOfWork {
		return 0, ruleError(ErrInvalidPoW, "header's proof-of-work hash exceeds its declared target")
	}
	return level, nil
}

// ValidateParentRelations checks that every direct parent is known and not
// already invalid, and that no two direct parents violate the
// no-parent-incest rule. It must be called after ValidateHeaderInIsolation
// and after the header's parents are believed to be known.
func (v *Validator) ValidateParentRelations(header Header) error {
	parents := header.DirectParents()

	var missing []chainhash.Hash
	for _, p := range parents {
		status, known := v.status.Status(p)
		if !known {
			missing = append(missing, p)
			continue
		}
		if status == StatusInvalid {
			return ruleError(ErrInvalidParent, fmt.Sprintf("parent %s is marked invalid", p))
		}
	}
	if len(missing) > 0 {
		return ruleError(ErrMissingParents, fmt.Sprintf("%d parent(s) not yet known", len(missing)))
	}

	for i, a := range parents {
		for j, b := range parents {
			if i == j {
				continue
			}
			if v.reach.IsDAGAncestorOf(a, b) {
				return ruleError(ErrInvalidParentsRelation,
					fmt.Sprintf("parent %s is a DAG ancestor of parent %s", a, b))
			}
		}
	}
	return nil
}
