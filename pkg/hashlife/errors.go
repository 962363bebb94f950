// Package hashlife simulates Life-like cellular automata on an unbounded grid
// using Gosper's hashlife: a hash-consed quadtree whose nodes memoise their
// own future, so repeated structure in space and time is computed once.
//
// A Universe is the stateful handle. It owns a Store of canonical nodes and
// is not safe for concurrent use.
package hashlife

import "github.com/pkg/errors"

var (
	// ErrLengthMismatch is returned by SetupField when the coordinate slices differ in length.
	ErrLengthMismatch = errors.New("coordinate slices differ in length")

	// ErrOutOfRange is returned when a coordinate lies beyond the largest supported tree.
	ErrOutOfRange = errors.New("coordinate out of range")

	// ErrLevelOverflow is returned when advancing would grow the tree beyond MaxLevel.
	ErrLevelOverflow = errors.New("universe level overflow")

	// ErrInvalidStep is returned for step exponents above MaxStep.
	ErrInvalidStep = errors.New("invalid step")

	// ErrNoRewindState is returned when restoring without a saved rewind state.
	ErrNoRewindState = errors.New("no rewind state saved")
)
