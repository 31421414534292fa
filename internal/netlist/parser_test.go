package netlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crossbarsynth/crossbarsynth/internal/ids"
	"github.com/crossbarsynth/crossbarsynth/internal/synerr"
)

func TestParseReader_SingleNot(t *testing.T) {
	// WHAT: a bare NOT line (2 tokens) decomposes to exactly one gate
	// WHY: fan-in 1 is the base case the rest of the decomposition table builds on
	c, err := parseReader(strings.NewReader("n1 = NOT(x0)"), "bench")
	require.NoError(t, err)
	require.Len(t, c.Gates, 1)
	require.Equal(t, 1, c.Gates[0].Fanin)
	require.Equal(t, ids.MaxGates, c.Gates[0].Inputs[0])
	require.Equal(t, 1, c.Gates[0].Out)
	require.False(t, c.Gates[0].IsOutput)
}

func TestParseReader_TwoInputNor(t *testing.T) {
	// WHAT: a 3-token line decomposes to a single 2-input NOR
	c, err := parseReader(strings.NewReader("n2 = NOR(x0, x1)"), "bench")
	require.NoError(t, err)
	require.Len(t, c.Gates, 1)
	require.Equal(t, 2, c.Gates[0].Fanin)
	require.Equal(t, [2]int{ids.MaxGates, ids.MaxGates + 1}, c.Gates[0].Inputs)
}

func TestParseReader_ThreeInputCascade(t *testing.T) {
	// WHAT: a 4-token line decomposes into two NOR gates: an intermediate
	// NOR(v2,v3) followed by a final NOR(v1, intermediate)
	c, err := parseReader(strings.NewReader("n3 = NOR(x0, x1, x2)"), "bench")
	require.NoError(t, err)
	require.Len(t, c.Gates, 2)

	intermediate := c.Gates[0]
	require.Equal(t, 2, intermediate.Fanin)
	require.True(t, ids.IsIntermediate(intermediate.Out))
	require.Equal(t, [2]int{ids.MaxGates + 1, ids.MaxGates + 2}, intermediate.Inputs)

	final := c.Gates[1]
	require.Equal(t, [2]int{ids.MaxGates, intermediate.Out}, final.Inputs)
	require.Equal(t, 3, final.Out)
}

func TestParseReader_FourInputCascade(t *testing.T) {
	// WHAT: a 5-token line decomposes into two independent NOR gates whose
	// outputs feed a third, final NOR
	c, err := parseReader(strings.NewReader("n4 = NOR(x0, x1, x2, x3)"), "bench")
	require.NoError(t, err)
	require.Len(t, c.Gates, 3)

	t1, t2, final := c.Gates[0], c.Gates[1], c.Gates[2]
	require.Equal(t, [2]int{ids.MaxGates, ids.MaxGates + 1}, t1.Inputs)
	require.Equal(t, [2]int{ids.MaxGates + 2, ids.MaxGates + 3}, t2.Inputs)
	require.Equal(t, [2]int{t1.Out, t2.Out}, final.Inputs)
	require.Equal(t, 4, final.Out)
}

func TestParseReader_OutputBiasStripping(t *testing.T) {
	// WHAT: an output-biased left-hand side is stripped of the bias and
	// flagged, regardless of which decomposition arity produced it
	for _, line := range []string{
		"n10005 = NOT(x0)",
		"n10005 = NOR(x0, x1)",
		"n10005 = NOR(x0, x1, x2)",
		"n10005 = NOR(x0, x1, x2, x3)",
	} {
		c, err := parseReader(strings.NewReader(line), "bench")
		require.NoError(t, err, line)
		final := c.Gates[len(c.Gates)-1]
		require.True(t, final.IsOutput, line)
		require.Equal(t, 5, final.Out, line)
	}
}

func TestParseReader_DanglingWireRejected(t *testing.T) {
	// WHAT: a right-hand side wire with no producing gate anywhere in the
	// netlist is rejected rather than silently treated as a primary input
	_, err := parseReader(strings.NewReader("n1 = NOR(n99, x0)"), "bench")
	require.ErrorIs(t, err, synerr.ErrToken)
}

func TestParseReader_UnsupportedArity(t *testing.T) {
	_, err := parseReader(strings.NewReader("n1 = NOR(x0, x1, x2, x3, x4, x5)"), "bench")
	require.ErrorIs(t, err, synerr.ErrArity)
}

func TestParseReader_PrimaryInputsAndOutputsCounted(t *testing.T) {
	src := `n1 = NOT(x0)
n10002 = NOR(n1, x1)
`
	c, err := parseReader(strings.NewReader(src), "bench")
	require.NoError(t, err)
	require.Equal(t, 2, c.NumInputs)
	require.Equal(t, 1, c.NumOutputs)
	require.Equal(t, ids.MaxGates, c.PrimaryInputs[0])
	require.Equal(t, ids.MaxGates+1, c.PrimaryInputs[1])
}

func TestParseReader_StopsAtDotLine(t *testing.T) {
	src := `n1 = NOT(x0)
.end
n2 = NOT(x1)
`
	c, err := parseReader(strings.NewReader(src), "bench")
	require.NoError(t, err)
	require.Len(t, c.Gates, 1)
}

func TestParseReader_BlankLinesIgnored(t *testing.T) {
	src := "\nn1 = NOT(x0)\n\n\n"
	c, err := parseReader(strings.NewReader(src), "bench")
	require.NoError(t, err)
	require.Len(t, c.Gates, 1)
}
