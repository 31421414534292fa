package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	l, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), l)
}

func TestLoad_OverridesSelectedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "limits.toml")
	body := "max_gates_per_level_ceiling = 5\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	l, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, l.MaxGatesPerLevelCeil)
	require.Equal(t, Default().MaxGates, l.MaxGates)
}

func TestValidate_RejectsNonPositiveLimit(t *testing.T) {
	l := Default()
	l.MaxPI = 0
	require.Error(t, l.Validate())
}

func TestValidate_RejectsTinyCeiling(t *testing.T) {
	l := Default()
	l.MaxGatesPerLevelCeil = 1
	require.Error(t, l.Validate())
}
