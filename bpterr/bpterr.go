// Package bpterr defines the fatal, internal-consistency error channel of
// §7: "Internal consistency violations (size out of bounds, invariant
// breakage) are fatal: the implementation must halt the operation;
// continuing risks corrupting the persisted index." Domain outcomes
// (duplicate key on insert, absent key on get/remove) are NOT errors here —
// those stay plain bool/(_, bool) returns on the tree's public surface,
// matching the teacher's BLTErrOk-vs-found-bool split.
package bpterr

import "github.com/pkg/errors"

// Invariant names a class of structural violation. A violation is
// unrecoverable for the operation that found it. The tree's descent loops
// raise InvariantKind and InvariantOccupancy; no code in this module raises
// the other three.
type Invariant string

const (
	InvariantOccupancy Invariant = "occupancy"  // size outside [0, maxSize]
	InvariantOrdering   Invariant = "ordering"  // leaf keys not strictly increasing
	InvariantRouting    Invariant = "routing"   // internal separator misplaced
	InvariantChain      Invariant = "chain"     // leaf next-pointer chain broken
	InvariantKind       Invariant = "node-kind" // page header kind byte unrecognized
)

// Fatal wraps an invariant violation with a stack trace via
// github.com/pkg/errors, the same wrapping style
// other_examples/0ee3520d_explodes-binq__db2-btree.go.go uses for its own
// btree invariant panics.
func Fatal(inv Invariant, detail string) error {
	return errors.Wrapf(errors.New(detail), "bptree: fatal %s violation", inv)
}

// Halt panics with a Fatal error. Tree operations call this instead of
// returning once they observe a broken invariant — per §7, continuing risks
// corrupting the persisted index, so the operation must stop outright
// rather than attempt to report a normal error to the caller.
func Halt(inv Invariant, detail string) {
	panic(Fatal(inv, detail))
}
