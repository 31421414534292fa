// Package diag supports the CLI's --dump flag: a verbose, human-facing
// printout of the parsed and scheduled circuit for debugging a netlist
// that produced a surprising mapping.
package diag

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/crossbarsynth/crossbarsynth/internal/pipeline"
)

var config = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump writes a structural dump of a pipeline result to w.
func Dump(w io.Writer, r *pipeline.Result) {
	fmt.Fprintln(w, "=== circuit ===")
	config.Fdump(w, r.Circuit)
	fmt.Fprintln(w, "=== naive mapping ===")
	config.Fdump(w, r.Naive)
	fmt.Fprintln(w, "=== compact mapping ===")
	config.Fdump(w, r.Compact)
}
