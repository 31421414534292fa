package netlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/crossbarsynth/crossbarsynth/internal/ids"
	"github.com/crossbarsynth/crossbarsynth/internal/synerr"
)

// tokenRe matches a single xN or nN variable reference. Scanning the
// whole line with one pattern, rather than an xN pass followed by a
// separate nN pass, preserves textual order regardless of which prefix
// a token uses.
var tokenRe = regexp.MustCompile(`[nx]\d+`)

// Parse reads a netlist file and returns the decomposed gate table. The
// file is read line by line (bufio.Scanner, following the same
// line-oriented reading style the corpus's circuit parser uses) until a
// line starting with '.' terminates the listing.
func Parse(path string) (*Circuit, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", synerr.ErrIO, path, err)
	}
	defer f.Close()

	base := filepath.Base(path)
	benchName := strings.TrimSuffix(base, filepath.Ext(base))

	c, err := parseReader(f, benchName)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func parseReader(r io.Reader, benchName string) (*Circuit, error) {
	c := NewCircuit(benchName)

	scanner := bufio.NewScanner(r)
	nextTemp := -1 // monotonically decreasing fresh-wire counter for compiler-generated intermediates

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			break
		}

		tokens, err := extractVariables(line)
		if err != nil {
			return nil, err
		}

		switch len(tokens) {
		case 2:
			out, isOutput := canonicalizeOutput(tokens[0])
			c.Gates = append(c.Gates, Gate{
				Fanin:     1,
				Inputs:    [2]int{tokens[1], 0},
				Out:       out,
				AsapLevel: ids.Unassigned,
				AlapLevel: ids.Unassigned,
				ListLevel: ids.Unassigned,
				ListTime:  ids.Unassigned,
				IsOutput:  isOutput,
			})
		case 3:
			out, isOutput := canonicalizeOutput(tokens[0])
			c.Gates = append(c.Gates, Gate{
				Fanin:     2,
				Inputs:    [2]int{tokens[1], tokens[2]},
				Out:       out,
				AsapLevel: ids.Unassigned,
				AlapLevel: ids.Unassigned,
				ListLevel: ids.Unassigned,
				ListTime:  ids.Unassigned,
				IsOutput:  isOutput,
			})
		case 4:
			t := nextTemp
			nextTemp--
			c.Gates = append(c.Gates,
				newNor(tokens[2], tokens[3], t),
			)
			out, isOutput := canonicalizeOutput(tokens[0])
			c.Gates = append(c.Gates,
				finalGate(tokens[1], t, out, isOutput),
			)
		case 5:
			t1, t2 := nextTemp, nextTemp-1
			nextTemp -= 2
			c.Gates = append(c.Gates,
				newNor(tokens[1], tokens[2], t1),
				newNor(tokens[3], tokens[4], t2),
			)
			out, isOutput := canonicalizeOutput(tokens[0])
			c.Gates = append(c.Gates,
				finalGate(t1, t2, out, isOutput),
			)
		default:
			return nil, fmt.Errorf("%w: line %q has %d operands", synerr.ErrArity, line, len(tokens))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", synerr.ErrIO, err)
	}

	assignOutputNames(c)
	findPrimaryInputs(c)
	if err := checkDangling(c); err != nil {
		return nil, err
	}
	return c, nil
}

// assignOutputNames gives every output-tagged gate a stable generator-facing
// name (op_1, op_2, ...) in parse order. The generator keys wire naming off
// this and IsOutput rather than the sign of the gate's Out id, since a
// canonicalized output wire and a compiler-synthesized intermediate wire
// can't be told apart by sign alone (see DESIGN.md).
func assignOutputNames(c *Circuit) {
	n := 0
	for i := range c.Gates {
		if c.Gates[i].IsOutput {
			n++
			c.Gates[i].OutputName = fmt.Sprintf("op_%d", n)
		}
	}
}

// newNor builds a compiler-generated 2-input NOR producing wire out.
func newNor(a, b, out int) Gate {
	return Gate{
		Fanin:     2,
		Inputs:    [2]int{a, b},
		Out:       out,
		AsapLevel: ids.Unassigned,
		AlapLevel: ids.Unassigned,
		ListLevel: ids.Unassigned,
		ListTime:  ids.Unassigned,
	}
}

// finalGate builds the top gate of a cascade, carrying the canonicalized
// output marking. Output-bias stripping applies uniformly to whichever
// gate actually drives the named output, regardless of how many NORs
// the decomposition produced to get there (see DESIGN.md).
func finalGate(a, b, out int, isOutput bool) Gate {
	return Gate{
		Fanin:     2,
		Inputs:    [2]int{a, b},
		Out:       out,
		AsapLevel: ids.Unassigned,
		AlapLevel: ids.Unassigned,
		ListLevel: ids.Unassigned,
		ListTime:  ids.Unassigned,
		IsOutput:  isOutput,
	}
}

func canonicalizeOutput(raw int) (out int, isOutput bool) {
	if raw >= ids.OutBias {
		return raw - ids.OutBias, true
	}
	return raw, false
}

// extractVariables tokenizes a line into wire ids in textual order: the
// left-hand side's variable first, then every right-hand side variable
// in the order it appears. xN becomes a primary-input id
// (ids.MaxGates+N); nN becomes its bare numeric id, with OUT_BIAS
// left for the caller to interpret on the output position only.
func extractVariables(line string) ([]int, error) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return nil, fmt.Errorf("%w: line %q has no '='", synerr.ErrToken, line)
	}
	lhs, rhs := line[:eq], line[eq+1:]

	lhsTok := tokenRe.FindString(lhs)
	if lhsTok == "" {
		return nil, fmt.Errorf("%w: no output variable in %q", synerr.ErrToken, line)
	}
	out := make([]int, 0, 5)
	v, err := tokenValue(lhsTok)
	if err != nil {
		return nil, err
	}
	out = append(out, v)

	for _, tok := range tokenRe.FindAllString(rhs, -1) {
		v, err := tokenValue(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func tokenValue(tok string) (int, error) {
	n, err := strconv.Atoi(tok[1:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", synerr.ErrToken, tok, err)
	}
	if tok[0] == 'x' {
		return ids.MaxGates + n, nil
	}
	return n, nil
}

// findPrimaryInputs scans every gate's inputs for primary-input ids and
// fills in Circuit.NumInputs / PrimaryInputs densely from 0..NumInputs-1.
// An input index that the netlist never references leaves no
// corresponding slot (see DESIGN.md).
func findPrimaryInputs(c *Circuit) {
	maxInputNum := -1
	for _, g := range c.Gates {
		for j := 0; j < g.Fanin; j++ {
			if ids.IsPrimaryInput(g.Inputs[j], ids.MaxGates) {
				n := ids.PrimaryInputIndex(g.Inputs[j], ids.MaxGates)
				if n > maxInputNum {
					maxInputNum = n
				}
			}
		}
	}
	c.NumInputs = maxInputNum + 1
	c.PrimaryInputs = make(map[int]int, c.NumInputs)
	for _, g := range c.Gates {
		for j := 0; j < g.Fanin; j++ {
			if ids.IsPrimaryInput(g.Inputs[j], ids.MaxGates) {
				n := ids.PrimaryInputIndex(g.Inputs[j], ids.MaxGates)
				c.PrimaryInputs[n] = g.Inputs[j]
			}
		}
	}

	outputs := 0
	for _, g := range c.Gates {
		if g.IsOutput {
			outputs++
		}
	}
	c.NumOutputs = outputs
}

// checkDangling rejects a positive internal-wire reference that has no
// producing gate anywhere in the netlist, rather than silently promoting
// it to a primary input (see DESIGN.md for this disambiguation policy).
func checkDangling(c *Circuit) error {
	produced := make(map[int]bool, len(c.Gates))
	for _, g := range c.Gates {
		produced[g.Out] = true
	}
	for _, g := range c.Gates {
		for j := 0; j < g.Fanin; j++ {
			in := g.Inputs[j]
			if ids.IsPrimaryInput(in, ids.MaxGates) || ids.IsIntermediate(in) {
				continue
			}
			if !produced[in] {
				return fmt.Errorf("%w: wire n%d is read but never produced", synerr.ErrToken, in)
			}
		}
	}
	return nil
}
