// Package synerr collects the sentinel error values that every synthesis
// stage reports through, so a caller can classify a failure with
// errors.Is without parsing message text.
package synerr

import "errors"

var (
	// ErrIO covers file open/read/write failures.
	ErrIO = errors.New("io")

	// ErrArity is returned when a netlist line has an operand count the
	// fan-in decomposition table does not cover.
	ErrArity = errors.New("parse: unsupported operand count")

	// ErrToken is returned when a line references a wire the parser
	// cannot resolve: an unrecognizable identifier, or (per the
	// disambiguation policy recorded in DESIGN.md) a dangling internal
	// wire with no producer.
	ErrToken = errors.New("parse: unrecognized or dangling identifier")

	// ErrCycle signals that a scheduling fixed-point pass made no
	// progress while gates remained unassigned: the netlist contains a
	// combinational cycle.
	ErrCycle = errors.New("schedule: fixed point stalled, circuit is not acyclic")

	// ErrResourceExhausted signals a breach of a configured limit
	// (MaxGates, MaxPI, MaxLevels). MaxRow and MaxCol are not checked
	// against a mapping's extent.
	ErrResourceExhausted = errors.New("resource exhausted")
)

// Stage wraps an error with the pipeline stage name that produced it, so
// the CLI can print "<stage>: <cause>" without each stage hand-formatting
// the same prefix.
type Stage struct {
	Name string
	Err  error
}

func (s *Stage) Error() string { return s.Name + ": " + s.Err.Error() }

func (s *Stage) Unwrap() error { return s.Err }

// Wrap annotates err with the stage that produced it. Wrap(nil, ...)
// returns nil so callers can write `return synerr.Wrap(stage, fn())`.
func Wrap(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &Stage{Name: stage, Err: err}
}
