// Copyright (c) 2015-2024 The fishdagd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "fmt"

// ErrorCode identifies a kind of rule violation the validator can return.
// It is a closed set: every value the validator can produce is listed
// below, and callers are expected to switch on it exhaustively.
type ErrorCode int

const (
	// ErrWrongBlockVersion indicates a header's version does not match
	// what the algorithm activation predicate requires for its DAA
	// score.
	ErrWrongBlockVersion ErrorCode = iota

	// ErrTimeTooFarIntoTheFuture indicates a header's timestamp is beyond
	// the configured future-tolerance window.
	ErrTimeTooFarIntoTheFuture

	// ErrNoParents indicates a non-genesis header declared zero direct
	// parents.
	ErrNoParents

	// ErrTooManyParents indicates a header's direct-parent count exceeds
	// the configured upper bound.
	ErrTooManyParents

	// ErrOriginParent indicates a header lists the origin sentinel hash
	// as a parent.
	ErrOriginParent

	// ErrInvalidPoW indicates a header's proof-of-work hash exceeds its
	// declared target.
	ErrInvalidPoW

	// ErrMissingParents indicates one or more of a header's direct
	// parents have not yet been seen by the caller's store. Unlike the
	// other codes, this one is recoverable: the caller is expected to
	// fetch the missing parents and retry.
	ErrMissingParents

	// ErrInvalidParent indicates a direct parent is already marked
	// invalid.
	ErrInvalidParent

	// ErrInvalidParentsRelation indicates two direct parents violate the
	// no-parent-incest rule: one is a DAG-ancestor of the other.
	ErrInvalidParentsRelation
)

var errorCodeStrings = map[ErrorCode]string{
	ErrWrongBlockVersion:       "ErrWrongBlockVersion",
	ErrTimeTooFarIntoTheFuture: "ErrTimeTooFarIntoTheFuture",
	ErrNoParents:               "ErrNoParents",
	ErrTooManyParents:          "ErrTooManyParents",
	ErrOriginParent:            "ErrOriginParent",
	ErrInvalidPoW:              "ErrInvalidPoW",
	ErrMissingParents:          "ErrMissingParents",
	ErrInvalidParent:           "ErrInvalidParent",
	ErrInvalidParentsRelation:  "ErrInvalidParentsRelation",
}

// String returns the ErrorCode's symbolic name.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int(e))
}

// RuleError identifies a rule violation. It carries both a machine-checkable
// ErrorCode and a human-readable Description.
type RuleError struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface.
func (e RuleError) Error() string {
	return e.Description
}

// ruleError creates a RuleError given a set of arguments.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}
