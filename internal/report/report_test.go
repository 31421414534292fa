package report

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/crossbarsynth/crossbarsynth/internal/crossbar"
	"github.com/crossbarsynth/crossbarsynth/internal/ids"
	"github.com/crossbarsynth/crossbarsynth/internal/netlist"
	"github.com/crossbarsynth/crossbarsynth/internal/schedule"
)

func twoLevelCircuit(t *testing.T) *netlist.Circuit {
	t.Helper()
	c := netlist.NewCircuit("bench")
	c.Gates = []netlist.Gate{
		{Fanin: 1, Inputs: [2]int{ids.MaxGates, 0}, Out: 1},
		{Fanin: 2, Inputs: [2]int{1, ids.MaxGates + 1}, Out: 2, IsOutput: true, OutputName: "op_1"},
	}
	c.NumInputs = 2
	c.NumOutputs = 1
	c.PrimaryInputs = map[int]int{0: ids.MaxGates, 1: ids.MaxGates + 1}
	require.NoError(t, schedule.ComputeASAP(c))
	require.NoError(t, schedule.ComputeALAP(c))
	require.NoError(t, schedule.ComputeList(c, 19))
	return c
}

func TestWriteScheduleStats_HasAllThreeSections(t *testing.T) {
	c := twoLevelCircuit(t)
	var buf strings.Builder
	require.NoError(t, WriteScheduleStats(&buf, c))
	out := buf.String()
	require.True(t, strings.Contains(out, "ASAP SCHEDULE:"))
	require.True(t, strings.Contains(out, "ALAP SCHEDULE:"))
	require.True(t, strings.Contains(out, "LIST SCHEDULE:"))
	require.True(t, strings.Contains(out, "Number of memristors"))
}

func TestWriteScheduleStats_GateDistributionMatchesLevels(t *testing.T) {
	c := twoLevelCircuit(t)
	var buf strings.Builder
	require.NoError(t, WriteScheduleStats(&buf, c))
	out := buf.String()
	want := "Gate distribution across levels:\n  1 1"
	if !strings.Contains(out, want) {
		t.Errorf("expected distribution line %q in output:\n%s", want, out)
	}
}

func TestWriteStructuralNetlist_WireNaming(t *testing.T) {
	c := twoLevelCircuit(t)
	var buf strings.Builder
	require.NoError(t, WriteStructuralNetlist(&buf, c))
	out := buf.String()
	require.True(t, strings.Contains(out, "module module_name ("))
	require.True(t, strings.Contains(out, "input  ip_1,"))
	require.True(t, strings.Contains(out, "input  ip_2"))
	require.True(t, strings.Contains(out, "not    g1"))
	require.True(t, strings.Contains(out, "nor    g2"))
	require.True(t, strings.Contains(out, "endmodule"))
}

func TestFormatWire_Partitions(t *testing.T) {
	c := netlist.NewCircuit("bench")
	c.Gates = []netlist.Gate{
		{Fanin: 2, Inputs: [2]int{-1, -2}, Out: -1},
		{Fanin: 2, Inputs: [2]int{ids.MaxGates, ids.MaxGates + 1}, Out: 2, IsOutput: true, OutputName: "op_1"},
	}

	cases := map[int]string{
		ids.MaxGates: "ip_1    ",
		5:            "wr_5    ",
		-1:           "wr_-1   ",
		2:            "op_1    ",
	}
	for id, want := range cases {
		if diff := cmp.Diff(want, formatWire(c, id)); diff != "" {
			t.Errorf("formatWire(%d) mismatch (-want +got):\n%s", id, diff)
		}
	}
}

func TestWriteMicroOps_EmitsMetricsBlock(t *testing.T) {
	c := twoLevelCircuit(t)
	m := crossbar.NaiveMapping(c)
	var buf strings.Builder
	require.NoError(t, WriteMicroOps(&buf, c, m, true))
	out := buf.String()
	require.True(t, strings.Contains(out, "Metrics"))
	require.True(t, strings.Contains(out, "Primary Inputs    : 2"))
	require.True(t, strings.Contains(out, "Crossbar Size     : 1x"))
}
