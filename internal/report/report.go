// Package report renders a scheduled, mapped circuit into the three
// human-readable artifacts this pipeline produces: a schedule-statistics
// text summary, a structural NOT/NOR netlist, and a per-cycle
// micro-operation instruction stream.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/crossbarsynth/crossbarsynth/internal/crossbar"
	"github.com/crossbarsynth/crossbarsynth/internal/ids"
	"github.com/crossbarsynth/crossbarsynth/internal/netlist"
)

// WriteScheduleStats writes ASAP, ALAP, and LIST gate-distribution
// summaries, one after another, in that order.
func WriteScheduleStats(w io.Writer, c *netlist.Circuit) error {
	passes := []struct {
		name string
		get  func(netlist.Gate) int
	}{
		{"ASAP", func(g netlist.Gate) int { return g.AsapLevel }},
		{"ALAP", func(g netlist.Gate) int { return g.AlapLevel }},
		{"LIST", func(g netlist.Gate) int { return g.ListLevel }},
	}
	for _, p := range passes {
		if err := writeOneScheduleStats(w, c, p.name, p.get); err != nil {
			return err
		}
	}
	return nil
}

func writeOneScheduleStats(w io.Writer, c *netlist.Circuit, name string, level func(netlist.Gate) int) error {
	if _, err := fmt.Fprintf(w, "%s SCHEDULE:\n=============\n", name); err != nil {
		return err
	}

	maxLevel := 0
	for _, g := range c.Gates {
		if l := level(g); l > maxLevel {
			maxLevel = l
		}
	}
	vecSize := maxLevel
	if vecSize < 1 {
		vecSize = 1
	}
	if vecSize > 500 {
		vecSize = 500
	}

	gateCount := make([]int, vecSize)
	for _, g := range c.Gates {
		l := level(g)
		if l > 0 && l <= vecSize {
			gateCount[l-1]++
		}
	}

	parts := make([]string, len(gateCount))
	for i, n := range gateCount {
		parts[i] = fmt.Sprint(n)
	}
	if _, err := fmt.Fprintf(w, "Gate distribution across levels:\n  %s\n", joinSpace(parts)); err != nil {
		return err
	}

	maxGatesAtLevel := 0
	for _, n := range gateCount {
		if n > maxGatesAtLevel {
			maxGatesAtLevel = n
		}
	}
	if _, err := fmt.Fprintf(w, "Number of levels: %d, MaxGates: %d\n", maxLevel, maxGatesAtLevel); err != nil {
		return err
	}

	crossRows := make([]int, maxGatesAtLevel)
	for l := 1; l <= maxLevel; l++ {
		gatesLevel := 0
		for _, g := range c.Gates {
			if level(g) != l {
				continue
			}
			switch g.Fanin {
			case 1:
				if crossRows[gatesLevel] == 2 {
					crossRows[gatesLevel] = 3
				} else {
					crossRows[gatesLevel] = 1
				}
				gatesLevel++
			case 2:
				if crossRows[gatesLevel] == 1 {
					crossRows[gatesLevel] = 3
				} else {
					crossRows[gatesLevel] = 2
				}
				gatesLevel++
			}
		}
	}

	notCount, norCount := 0, 0
	for _, g := range c.Gates {
		if g.Fanin == 1 {
			notCount++
		} else {
			norCount++
		}
	}

	memrSerial := 0
	for _, v := range crossRows {
		if v == 1 {
			memrSerial += 2
		} else {
			memrSerial += 3
		}
	}
	if _, err := fmt.Fprintf(w, "Number of memristors: %d\n", memrSerial); err != nil {
		return err
	}

	timeParallel := 2 * maxLevel
	timeSerial := notCount + norCount + maxLevel
	if _, err := fmt.Fprintf(w, "Time steps (serial): %d, Time steps (parallel): %d\n", timeSerial, timeParallel); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Crossbar size (serial): %d x %d\n", maxGatesAtLevel, 3); err != nil {
		return err
	}

	onesCount := 0
	for _, v := range crossRows {
		if v == 1 {
			onesCount++
		}
	}
	_, err := fmt.Fprintf(w, "Crossbar size (parallel): %d x %d\n", maxGatesAtLevel, 3*maxGatesAtLevel-onesCount)
	return err
}

func joinSpace(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " "
		}
		out += p
	}
	return out
}

// WriteStructuralNetlist renders the circuit as a NOT/NOR structural
// module, gates ordered by ASAP level, with ip_N / op_N / wr_N wire
// naming matching this pipeline's MAGIC-flavored netlist convention.
func WriteStructuralNetlist(w io.Writer, c *netlist.Circuit) error {
	order := make([]int, len(c.Gates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return c.Gates[order[a]].AsapLevel < c.Gates[order[b]].AsapLevel
	})

	if _, err := fmt.Fprintf(w, "// NOR_NOT mapped module module_name\n\nmodule module_name (\n"); err != nil {
		return err
	}
	for i := 0; i < c.NumInputs-1; i++ {
		if _, err := fmt.Fprintf(w, "  input  ip_%d,\n", i+1); err != nil {
			return err
		}
	}
	if c.NumInputs > 0 {
		if _, err := fmt.Fprintf(w, "  input  ip_%d,\n", c.NumInputs); err != nil {
			return err
		}
	}
	for i := 0; i < c.NumOutputs-1; i++ {
		if _, err := fmt.Fprintf(w, "  output op_%d,\n", i+1); err != nil {
			return err
		}
	}
	if c.NumOutputs > 0 {
		if _, err := fmt.Fprintf(w, "  output op_%d\n);\n", c.NumOutputs); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	for i := c.NumOutputs + 1; i <= len(c.Gates); i++ {
		if _, err := fmt.Fprintf(w, "  wire wr_%d;\n", i); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	for i, gi := range order {
		g := c.Gates[gi]
		name := fmt.Sprintf("g%d", i+1)
		if g.Fanin == 1 {
			if _, err := fmt.Fprintf(w, "  not    %-5s( %s ,           %s );\n", name, formatWire(c, g.Out), formatWire(c, g.Inputs[0])); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(w, "  nor    %-5s( %s , %s , %s );\n", name, formatWire(c, g.Out), formatWire(c, g.Inputs[0]), formatWire(c, g.Inputs[1])); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintln(w, "\nendmodule")
	return err
}

// formatWire renders a wire id as its declared port or wire name.
// Primary inputs are recognized by the MaxGates partition; a wire that is
// some gate's Out and that gate is tagged IsOutput renders as its assigned
// OutputName. Everything else, including a compiler-synthesized
// intermediate wire with a negative id, is an ordinary internal wire.
// This is keyed off Gate.IsOutput rather than the sign of id, since an
// output-tagged wire and a synthesized intermediate wire are not
// distinguishable by sign alone (see DESIGN.md).
func formatWire(c *netlist.Circuit, id int) string {
	if id >= ids.MaxGates {
		return fmt.Sprintf("ip_%-5d", id-ids.MaxGates+1)
	}
	if gi, ok := c.GateByOutput(id); ok && c.Gates[gi].IsOutput {
		return fmt.Sprintf("%-8s", c.Gates[gi].OutputName)
	}
	return fmt.Sprintf("wr_%-5d", id)
}

// WriteMicroOps renders the per-cycle instruction stream a crossbar
// mapping implies: one row per non-copy device, grouped by ASAP level,
// followed by a metrics block summarizing cycle counts and crossbar
// footprint.
func WriteMicroOps(w io.Writer, c *netlist.Circuit, m *crossbar.Mapping, isNaive bool) error {
	currLevel := 0
	anyPrinted := false

	for l := 1; l <= c.MaxAsap; l++ {
		for i := 0; i <= m.MaxRow; i++ {
			for j := 0; j <= m.MaxCol; j++ {
				cell := m.At(i, j)
				if cell.Row == ids.Absent || cell.Value >= ids.MaxGates || cell.IsCopy || cell.AsapLevel != l {
					continue
				}
				if cell.AsapLevel > currLevel {
					currLevel = cell.AsapLevel
					if _, err := fmt.Fprintf(w, "# Level: %2d _____________________________________\n", currLevel); err != nil {
						return err
					}
				}
				anyPrinted = true

				if _, err := fmt.Fprintf(w, "%4d %5s ", cell.Row, "False"); err != nil {
					return err
				}
				if cell.Inputs[0] != nil {
					if _, err := fmt.Fprintf(w, "%4d ", cell.Inputs[0].Col); err != nil {
						return err
					}
					if _, err := fmt.Fprintf(w, "%-9s ", formatGateName(cell.Inputs[0])); err != nil {
						return err
					}
				} else {
					if _, err := fmt.Fprintf(w, "%-14s ", " "); err != nil {
						return err
					}
				}
				if cell.Fanin > 1 && cell.Inputs[1] != nil {
					if _, err := fmt.Fprintf(w, "%4d", cell.Inputs[1].Col); err != nil {
						return err
					}
					if _, err := fmt.Fprintf(w, "%-9s ", formatGateName(cell.Inputs[1])); err != nil {
						return err
					}
				} else {
					if _, err := fmt.Fprintf(w, "%-14s", " "); err != nil {
						return err
					}
				}
				if _, err := fmt.Fprintf(w, "%4d True\n", cell.Col); err != nil {
					return err
				}
			}
		}
	}

	if _, err := fmt.Fprintf(w, "\nMetrics\n-------\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Primary Inputs    : %d\n", c.NumInputs); err != nil {
		return err
	}
	if anyPrinted {
		if _, err := fmt.Fprintf(w, "Levels            : %d\n", currLevel); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "Levels            : 0\n"); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Read Operations   : %d\n", c.MaxAsap); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Write Operations  : %d\n", 2*c.MaxAsap+1); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Evaluation Cycles : %d\n", c.MaxAsap); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total Cycles      : %d\n", 4*c.MaxAsap+1); err != nil {
		return err
	}

	if isNaive {
		if m.MaxCol < 0 {
			_, err := fmt.Fprintf(w, "Crossbar Size     : %dx%d\n", 1, 1)
			if err != nil {
				return err
			}
		} else if _, err := fmt.Fprintf(w, "Crossbar Size     : %dx%d\n", 1, m.MaxCol+1); err != nil {
			return err
		}
	} else {
		if m.MaxRow < 0 || m.MaxCol < 0 {
			if _, err := fmt.Fprintf(w, "Crossbar Size     : %dx%d\n", 1, 1); err != nil {
				return err
			}
		} else if _, err := fmt.Fprintf(w, "Crossbar Size     : %dx%d\n", m.MaxRow+1, m.MaxCol+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "---------------------------\n\n")
	return err
}

func formatGateName(cell *crossbar.Cell) string {
	if cell.Value >= ids.MaxGates {
		return fmt.Sprintf("/%d", cell.Value-ids.MaxGates)
	}
	if cell.IsCopy {
		if cell.Inputs[0] != nil {
			return formatGateName(cell.Inputs[0])
		}
		return "???"
	}
	return fmt.Sprintf("%dx%d", cell.Row, cell.Col)
}
