// Package pipeline wires the parser, scheduler, mapper, and report
// stages into the single sequential run the CLI drives. There is no
// parallel variant: list scheduling and crossbar mapping are both
// order-dependent passes over shared state, and splitting
// them across goroutines would just buy contention for no shorter a
// critical path.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/crossbarsynth/crossbarsynth/internal/config"
	"github.com/crossbarsynth/crossbarsynth/internal/crossbar"
	"github.com/crossbarsynth/crossbarsynth/internal/netlist"
	"github.com/crossbarsynth/crossbarsynth/internal/report"
	"github.com/crossbarsynth/crossbarsynth/internal/schedule"
	"github.com/crossbarsynth/crossbarsynth/internal/synerr"
)

// Result bundles everything a finished run produced, so the CLI layer
// can decide what to print or dump without re-deriving it.
type Result struct {
	Circuit *netlist.Circuit
	Naive   *crossbar.Mapping
	Compact *crossbar.Mapping
}

// Run parses netlistPath, schedules it under limits, maps it both
// naively and compactly, and writes the four report artifacts into
// bench-named files under outDir/{schedule_stats,magic,micro_ins_naive,
// micro_ins_compact}.
func Run(netlistPath, outDir string, limits config.Limits) (*Result, error) {
	c, err := netlist.Parse(netlistPath)
	if err != nil {
		return nil, synerr.Wrap("parse", err)
	}

	if err := enforceLimits(c, limits); err != nil {
		return nil, synerr.Wrap("parse", err)
	}

	if err := schedule.ComputeASAP(c); err != nil {
		return nil, err
	}
	if c.MaxAsap > limits.MaxLevels {
		return nil, synerr.Wrap("schedule", fmt.Errorf("%w: %d levels exceeds max_levels %d", synerr.ErrResourceExhausted, c.MaxAsap, limits.MaxLevels))
	}
	if err := schedule.ComputeALAP(c); err != nil {
		return nil, err
	}
	if err := schedule.ComputeList(c, limits.MaxGatesPerLevelCeil); err != nil {
		return nil, err
	}

	naive := crossbar.NaiveMapping(c)
	compact := crossbar.CompactMapping(c)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, synerr.Wrap("report", fmt.Errorf("%w: %v", synerr.ErrIO, err))
	}
	if err := writeReports(c, naive, compact, outDir); err != nil {
		return nil, synerr.Wrap("report", err)
	}

	return &Result{Circuit: c, Naive: naive, Compact: compact}, nil
}

func enforceLimits(c *netlist.Circuit, limits config.Limits) error {
	switch {
	case len(c.Gates) > limits.MaxGates:
		return fmt.Errorf("%w: %d gates exceeds max_gates %d", synerr.ErrResourceExhausted, len(c.Gates), limits.MaxGates)
	case c.NumInputs > limits.MaxPI:
		return fmt.Errorf("%w: %d primary inputs exceeds max_pi %d", synerr.ErrResourceExhausted, c.NumInputs, limits.MaxPI)
	}
	return nil
}

// writeReports lays out the four report artifacts the way the reference
// toolchain's batch output does: one subdirectory per artifact kind,
// each file named after the circuit's bench name rather than a fixed
// basename, so results from multiple netlists can share one --output
// directory without overwriting each other.
func writeReports(c *netlist.Circuit, naive, compact *crossbar.Mapping, outDir string) error {
	magicDir := filepath.Join(outDir, "magic")
	statsDir := filepath.Join(outDir, "schedule_stats")
	naiveDir := filepath.Join(outDir, "micro_ins_naive")
	compactDir := filepath.Join(outDir, "micro_ins_compact")
	for _, dir := range []string{magicDir, statsDir, naiveDir, compactDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", synerr.ErrIO, err)
		}
	}

	statsPath := filepath.Join(statsDir, c.BenchName+"_stats.txt")
	f, err := os.Create(statsPath)
	if err != nil {
		return fmt.Errorf("%w: %v", synerr.ErrIO, err)
	}
	err = report.WriteScheduleStats(f, c)
	closeErr := f.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %v", synerr.ErrIO, closeErr)
	}

	magicPath := filepath.Join(magicDir, c.BenchName+"_magic.v")
	f, err = os.Create(magicPath)
	if err != nil {
		return fmt.Errorf("%w: %v", synerr.ErrIO, err)
	}
	err = report.WriteStructuralNetlist(f, c)
	closeErr = f.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %v", synerr.ErrIO, closeErr)
	}

	naivePath := filepath.Join(naiveDir, c.BenchName+"_naive.txt")
	f, err = os.Create(naivePath)
	if err != nil {
		return fmt.Errorf("%w: %v", synerr.ErrIO, err)
	}
	err = report.WriteMicroOps(f, c, naive, true)
	closeErr = f.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %v", synerr.ErrIO, closeErr)
	}

	compactPath := filepath.Join(compactDir, c.BenchName+"_compact.txt")
	f, err = os.Create(compactPath)
	if err != nil {
		return fmt.Errorf("%w: %v", synerr.ErrIO, err)
	}
	err = report.WriteMicroOps(f, c, compact, false)
	closeErr = f.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return fmt.Errorf("%w: %v", synerr.ErrIO, closeErr)
	}

	return nil
}
