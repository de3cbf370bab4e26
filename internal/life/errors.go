package life

import (
	"errors"
	"fmt"
)

// Domain errors for registry operations.
var (
	// ErrRangeBelowRadius indicates a proposed interaction range smaller
	// than the owning group's particle radius.
	ErrRangeBelowRadius = errors.New("life: interaction range below particle radius")

	// ErrTableMisaligned indicates a rule table whose size diverged from
	// the group count. This is a registry bug, not bad input.
	ErrTableMisaligned = errors.New("life: rule table out of sync with group count")

	// ErrNoSuchGroup indicates a stale or unknown group identifier.
	ErrNoSuchGroup = errors.New("life: no such group")
)

// RuleError reports a rejected rule: the range a target group would
// apply toward a source group is below the target's particle radius.
type RuleError struct {
	Target int // registry index of the group owning the rule
	Source int // registry index of the source group
	Range  float64
	Radius float64
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("group %d toward group %d: range %g below particle radius %g",
		e.Target, e.Source, e.Range, e.Radius)
}

func (e *RuleError) Unwrap() error { return ErrRangeBelowRadius }

// TableError reports a rule table whose entry count diverged from the
// number of registered groups.
type TableError struct {
	Group  int // registry index of the offending group
	Rules  int
	Groups int
}

func (e *TableError) Error() string {
	return fmt.Sprintf("group %d: %d rule entries for %d groups", e.Group, e.Rules, e.Groups)
}

func (e *TableError) Unwrap() error { return ErrTableMisaligned }
