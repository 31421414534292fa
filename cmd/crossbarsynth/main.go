// Command crossbarsynth turns a flattened NOT/NOR netlist into a
// scheduled, crossbar-mapped report.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/crossbarsynth/crossbarsynth/internal/config"
	"github.com/crossbarsynth/crossbarsynth/internal/diag"
	"github.com/crossbarsynth/crossbarsynth/internal/pipeline"
	"github.com/crossbarsynth/crossbarsynth/internal/synerr"
)

func main() {
	log.SetFlags(0)
	if err := run(os.Args[1:]); err != nil {
		log.Println(err)
		os.Exit(exitCode(err))
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: crossbarsynth process <netlist> [flags]")
	}
	if args[0] != "process" {
		return fmt.Errorf("unknown subcommand %q; only \"process\" is supported", args[0])
	}

	fs := flag.NewFlagSet("process", flag.ContinueOnError)
	outDir := fs.String("output", ".", "directory to create magic/, schedule_stats/, micro_ins_naive/, and micro_ins_compact/ subdirectories in")
	configPath := fs.String("config", "", "TOML file overriding the default resource limits")
	maxGatesPerLevelMax := fs.Int("max-gates-per-level-max", 0, "override the level-capacity ceiling list scheduling searches up to (0 = use config default)")
	dump := fs.Bool("dump", false, "write a structural dump of the scheduled, mapped circuit to stdout")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: crossbarsynth process <netlist> [flags]")
	}
	netlistPath := fs.Arg(0)

	limits, err := config.Load(*configPath)
	if err != nil {
		return synerr.Wrap("config", err)
	}
	if *maxGatesPerLevelMax > 0 {
		limits.MaxGatesPerLevelCeil = *maxGatesPerLevelMax
	}

	expandedOut, err := homedir.Expand(*outDir)
	if err != nil {
		return fmt.Errorf("%w: expanding --output: %v", synerr.ErrIO, err)
	}

	result, err := pipeline.Run(netlistPath, expandedOut, limits)
	if err != nil {
		return err
	}

	if *dump {
		diag.Dump(os.Stdout, result)
	}

	fmt.Printf("wrote reports for %s (%d gates, %d levels) to %s\n",
		result.Circuit.BenchName, len(result.Circuit.Gates), result.Circuit.MaxAsap, expandedOut)
	return nil
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, synerr.ErrIO):
		return 2
	case errors.Is(err, synerr.ErrArity), errors.Is(err, synerr.ErrToken):
		return 3
	case errors.Is(err, synerr.ErrCycle):
		return 4
	case errors.Is(err, synerr.ErrResourceExhausted):
		return 5
	default:
		return 1
	}
}
