// Package netlist holds the gate-table data model shared by the
// scheduler, mapper, and report generator, plus the parser that builds
// it from a textual equation list.
package netlist

import "github.com/crossbarsynth/crossbarsynth/internal/ids"

// Gate is a logical NOT or NOR node in the flattened netlist.
//
// Schedule decorations are filled in by the scheduler. AsapLevel,
// AlapLevel, ListLevel and ListTime start at ids.Unassigned when the
// parser builds a gate; Mobility and Slack start at zero until
// schedule.ComputeList sets them. GateMap is set only by a mapper pass and is never read by
// the scheduler.
type Gate struct {
	Fanin  int    // 1 (NOT) or 2 (NOR)
	Inputs [2]int // wire ids; Inputs[1] unused when Fanin == 1
	Out    int    // wire id this gate produces

	AsapLevel int
	AlapLevel int
	ListLevel int
	ListTime  int
	Mobility  int
	Slack     int

	// IsOutput marks a gate whose Out was tagged with ids.OutBias in the
	// source line. OutputName holds the generator-facing name for such a
	// gate.
	IsOutput   bool
	OutputName string

	// GateMap is the back-reference into the crossbar cell produced for
	// this gate by whichever mapper ran last. nil until a mapper runs.
	GateMap *CellRef
}

// CellRef is a lightweight pointer into a CrossbarMapping, used instead
// of an embedded *MemristiveGate so Gate does not import the crossbar
// package (kept in internal/crossbar to avoid an import cycle: the
// mapper needs netlist.Circuit, and the generator needs both).
type CellRef struct {
	Row, Col int
}

// Circuit is the bag of gates produced by the parser, plus the metadata
// the scheduler and mapper accumulate about it.
type Circuit struct {
	Gates         []Gate
	PrimaryInputs map[int]int // dense index -> wire id (ids.EncodePrimaryInput(index))
	NumInputs     int
	NumOutputs    int
	BenchName     string

	MaxAsap      int
	MaxAlap      int
	MaxList      int
	MaxResources int
}

// NewCircuit returns an empty circuit ready for parsing.
func NewCircuit(benchName string) *Circuit {
	return &Circuit{
		Gates:         nil,
		PrimaryInputs: make(map[int]int),
		BenchName:     benchName,
	}
}

// GateByOutput returns the index of the gate producing wire out, and
// whether one exists. Linear scan is adequate for the gate counts this
// pipeline targets; callers needing repeated lookups should build their
// own index.
func (c *Circuit) GateByOutput(out int) (int, bool) {
	for i := range c.Gates {
		if c.Gates[i].Out == out {
			return i, true
		}
	}
	return 0, false
}

// IsPrimaryInput reports whether wire id is one of this circuit's
// primary inputs under the MaxGates partition.
func (c *Circuit) IsPrimaryInput(wire int) bool {
	return ids.IsPrimaryInput(wire, ids.MaxGates)
}
