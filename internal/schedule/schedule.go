// Package schedule assigns each gate an ASAP level, an ALAP level, and a
// final list-scheduled level and time step. All three passes are
// deterministic fixed-point iterations over the gate table; none of them
// spawn goroutines, matching the single-threaded pass structure the rest
// of this pipeline uses throughout.
package schedule

import (
	"fmt"
	"sort"

	"github.com/crossbarsynth/crossbarsynth/internal/ids"
	"github.com/crossbarsynth/crossbarsynth/internal/netlist"
	"github.com/crossbarsynth/crossbarsynth/internal/synerr"
)

// ComputeASAP assigns every gate the earliest level at which its inputs
// are all available: primary inputs and the special absent input slot
// sit at level 0, and a gate's level is one past the latest of its
// operands. The pass repeats until every gate is labeled or a full sweep
// places nothing, which can only happen if the netlist contains a
// combinational cycle.
func ComputeASAP(c *netlist.Circuit) error {
	for i := range c.Gates {
		c.Gates[i].AsapLevel = ids.Unassigned
	}

	labeled := newWideBitmap(len(c.Gates))
	remaining := len(c.Gates)
	maxLevel := 0

	for remaining > 0 {
		progress := false
		for i := range c.Gates {
			if labeled.IsSet(i) {
				continue
			}
			g := &c.Gates[i]
			level, ready := asapOperandLevel(c, g, labeled)
			if !ready {
				continue
			}
			g.AsapLevel = level
			labeled.Set(i)
			remaining--
			progress = true
			if level > maxLevel {
				maxLevel = level
			}
		}
		if !progress {
			return synerr.Wrap("schedule", fmt.Errorf("%w: %d gate(s) never became ready", synerr.ErrCycle, remaining))
		}
	}
	c.MaxAsap = maxLevel
	return nil
}

// asapOperandLevel reports the level a gate's ASAP level would take if
// all of its operands are already labeled, and whether that condition
// holds.
func asapOperandLevel(c *netlist.Circuit, g *netlist.Gate, labeled *wideBitmap) (int, bool) {
	level := 0
	for j := 0; j < g.Fanin; j++ {
		in := g.Inputs[j]
		predLevel := 0
		if !ids.IsPrimaryInput(in, ids.MaxGates) {
			idx, ok := c.GateByOutput(in)
			if !ok {
				// A dangling reference would already have failed parsing;
				// treat it as available at level 0 so the pass still
				// terminates rather than stalling forever on bad input
				// that slipped through.
				predLevel = 0
			} else {
				if !labeled.IsSet(idx) {
					return 0, false
				}
				predLevel = c.Gates[idx].AsapLevel
			}
		}
		if predLevel+1 > level {
			level = predLevel + 1
		}
	}
	return level, true
}

// ComputeALAP assigns every gate the latest level it can occupy without
// pushing any gate that reads it past the circuit's ASAP-derived depth.
// Dataflow sinks (gates nothing else reads) are pinned to MaxAsap; every
// other gate's ALAP level is one less than the minimum ALAP level among
// the gates that consume it, propagated backward to a fixed point.
func ComputeALAP(c *netlist.Circuit) error {
	consumers := buildConsumers(c)
	labeled := newWideBitmap(len(c.Gates))
	remaining := len(c.Gates)

	for i := range c.Gates {
		// A gate nothing else reads is a dataflow sink regardless of
		// whether the netlist tagged it as a named output; it gets no
		// slack and is pinned to the circuit's overall depth.
		if len(consumers[c.Gates[i].Out]) == 0 {
			c.Gates[i].AlapLevel = c.MaxAsap
			labeled.Set(i)
			remaining--
		}
	}

	// Fixed-point propagation backward from the sinks, with a bounded
	// number of extra convergence passes once every gate first receives
	// a label (mirrors the slack the reference scheduler allows for wide
	// fan-out graphs whose minimum isn't visible on the first sweep).
	extra := 10
	for remaining > 0 || extra > 0 {
		progress := false
		for i := range c.Gates {
			g := &c.Gates[i]
			min := c.MaxAsap
			have := false
			for _, consumerIdx := range consumers[g.Out] {
				cg := &c.Gates[consumerIdx]
				if cg.AlapLevel == ids.Unassigned {
					continue
				}
				have = true
				if cg.AlapLevel-1 < min {
					min = cg.AlapLevel - 1
				}
			}
			if !have {
				continue
			}
			if !labeled.IsSet(i) {
				labeled.Set(i)
				remaining--
				progress = true
			}
			if g.AlapLevel == ids.Unassigned || min < g.AlapLevel {
				g.AlapLevel = min
				progress = true
			}
		}
		if remaining == 0 {
			extra--
		}
		if !progress && remaining > 0 {
			return synerr.Wrap("schedule", fmt.Errorf("%w: ALAP pass stalled with %d gate(s) unlabeled", synerr.ErrCycle, remaining))
		}
		if !progress && extra <= 0 {
			break
		}
	}

	c.MaxAlap = c.MaxAsap
	return nil
}

func buildConsumers(c *netlist.Circuit) map[int][]int {
	consumers := make(map[int][]int, len(c.Gates))
	for i, g := range c.Gates {
		for j := 0; j < g.Fanin; j++ {
			in := g.Inputs[j]
			if ids.IsPrimaryInput(in, ids.MaxGates) {
				continue
			}
			consumers[in] = append(consumers[in], i)
		}
	}
	return consumers
}

// mobility is the scheduling slack of a gate: how many levels its ALAP
// sits above its ASAP. Zero-mobility gates lie on a critical path and
// must be scheduled at their ASAP level for the circuit to fit within
// MaxAsap levels at all.
func mobility(g netlist.Gate) int {
	return g.AlapLevel - g.AsapLevel
}

// ComputeList performs priority list scheduling: gates become "ready"
// once every operand has been placed, and among ready gates the ones
// with the least mobility (tightest slack) are placed first, breaking
// ties by gate index for a stable, reproducible order. A level-capacity
// ceiling bounds how many gates may share a level; if the circuit cannot
// be scheduled within MaxAsap levels under the smallest tested
// capacity, the capacity is relaxed and the whole pass retried, starting
// at 2 and climbing to ceil inclusive. The first capacity that reaches
// exactly MaxAsap levels is kept.
func ComputeList(c *netlist.Circuit, ceil int) error {
	if ceil < 2 {
		ceil = 2
	}
	for capacity := 2; capacity <= ceil; capacity++ {
		levels, ok := tryListSchedule(c, capacity)
		if ok {
			for i := range c.Gates {
				c.Gates[i].ListLevel = levels[i]
				c.Gates[i].ListTime = levels[i]
				c.Gates[i].Mobility = mobility(c.Gates[i])
				c.Gates[i].Slack = mobility(c.Gates[i])
			}
			c.MaxList = c.MaxAsap
			return nil
		}
	}
	return synerr.Wrap("schedule", fmt.Errorf("%w: no level capacity up to %d reaches the asap depth of %d", synerr.ErrResourceExhausted, ceil, c.MaxAsap))
}

// tryListSchedule attempts one list-scheduling run at a fixed
// per-level gate capacity, returning the level assigned to each gate
// (by index) and whether the run reached the circuit's ASAP-derived
// depth without stalling.
func tryListSchedule(c *netlist.Circuit, capacity int) ([]int, bool) {
	n := len(c.Gates)
	levels := make([]int, n)
	for i := range levels {
		levels[i] = ids.Unassigned
	}
	placed := newWideBitmap(n)
	remaining := n

	for level := 1; remaining > 0; level++ {
		if level > c.MaxAsap {
			return nil, false
		}
		ready := readyGates(c, placed)
		if len(ready) == 0 {
			return nil, false
		}
		sort.SliceStable(ready, func(a, b int) bool {
			return mobility(c.Gates[ready[a]]) < mobility(c.Gates[ready[b]])
		})
		if len(ready) > capacity {
			ready = ready[:capacity]
		}
		for _, idx := range ready {
			levels[idx] = level
			placed.Set(idx)
			remaining--
		}
	}
	maxPlaced := 0
	for _, l := range levels {
		if l > maxPlaced {
			maxPlaced = l
		}
	}
	return levels, maxPlaced == c.MaxAsap
}

// readyGates returns the indices of every not-yet-placed gate whose
// operands are all either primary inputs or already placed.
func readyGates(c *netlist.Circuit, placed *wideBitmap) []int {
	var ready []int
	for i := range c.Gates {
		if placed.IsSet(i) {
			continue
		}
		g := &c.Gates[i]
		ok := true
		for j := 0; j < g.Fanin; j++ {
			in := g.Inputs[j]
			if ids.IsPrimaryInput(in, ids.MaxGates) {
				continue
			}
			idx, found := c.GateByOutput(in)
			if !found {
				continue
			}
			if !placed.IsSet(idx) {
				ok = false
				break
			}
		}
		if ok {
			ready = append(ready, i)
		}
	}
	return ready
}
