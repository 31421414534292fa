package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crossbarsynth/crossbarsynth/internal/config"
)

func writeNetlist(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRun_ProducesAllReportFiles(t *testing.T) {
	dir := t.TempDir()
	netPath := writeNetlist(t, dir, "bench.txt", "n10001 = NOR(x0, x1)\n")
	outDir := filepath.Join(dir, "out")

	result, err := Run(netPath, outDir, config.Default())
	require.NoError(t, err)
	require.Len(t, result.Circuit.Gates, 1)

	for _, rel := range []string{
		filepath.Join("schedule_stats", "bench_stats.txt"),
		filepath.Join("magic", "bench_magic.v"),
		filepath.Join("micro_ins_naive", "bench_naive.txt"),
		filepath.Join("micro_ins_compact", "bench_compact.txt"),
	} {
		_, statErr := os.Stat(filepath.Join(outDir, rel))
		require.NoError(t, statErr, "missing report file %s", rel)
	}
}

func TestRun_RejectsOversizedCircuit(t *testing.T) {
	dir := t.TempDir()
	netPath := writeNetlist(t, dir, "bench.txt", "n10001 = NOR(x0, x1)\n")
	outDir := filepath.Join(dir, "out")

	limits := config.Default()
	limits.MaxGates = 0
	_, err := Run(netPath, outDir, limits)
	require.Error(t, err)
}

func TestRun_PropagatesParseErrors(t *testing.T) {
	dir := t.TempDir()
	netPath := writeNetlist(t, dir, "bad.txt", "n1 = NOR(n99, x0)\n")
	outDir := filepath.Join(dir, "out")

	_, err := Run(netPath, outDir, config.Default())
	require.Error(t, err)
}
