// Package config holds the tunable resource limits of the synthesis
// pipeline and loads them from an optional TOML file, following the
// config-file convention the example corpus already depends on
// (BurntSushi/toml, vendored transitively by emer-gosl).
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/crossbarsynth/crossbarsynth/internal/ids"
)

// Limits holds the resource ceilings of the synthesis pipeline. The
// pipeline enforces MaxGates, MaxPI, MaxLevels and MaxGatesPerLevelCeil;
// MaxRow and MaxCol are validated but no stage checks a mapping against
// them. A zero Limits is not valid; use Default() or Load().
type Limits struct {
	MaxGates             int `toml:"max_gates"`
	MaxPI                int `toml:"max_pi"`
	MaxRow               int `toml:"max_row"`
	MaxCol               int `toml:"max_col"`
	MaxLevels            int `toml:"max_levels"`
	MaxGatesPerLevelCeil int `toml:"max_gates_per_level_ceiling"`
}

// Default returns the reference resource ceilings.
func Default() Limits {
	return Limits{
		MaxGates:             ids.MaxGates,
		MaxPI:                ids.MaxPI,
		MaxRow:                ids.MaxRow,
		MaxCol:               ids.MaxCol,
		MaxLevels:            ids.MaxLevels,
		MaxGatesPerLevelCeil: 19,
	}
}

// Load decodes a TOML file, filling in any field the file omits with the
// reference default, then validates the result.
func Load(path string) (Limits, error) {
	l := Default()
	if path == "" {
		return l, nil
	}
	if _, err := toml.DecodeFile(path, &l); err != nil {
		return Limits{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return l, l.Validate()
}

// Validate reports whether every limit is a usable positive bound.
func (l Limits) Validate() error {
	fields := map[string]int{
		"max_gates":                   l.MaxGates,
		"max_pi":                      l.MaxPI,
		"max_row":                     l.MaxRow,
		"max_col":                     l.MaxCol,
		"max_levels":                  l.MaxLevels,
		"max_gates_per_level_ceiling": l.MaxGatesPerLevelCeil,
	}
	for name, v := range fields {
		if v <= 0 {
			return fmt.Errorf("config: %s must be positive, got %d", name, v)
		}
	}
	if l.MaxGatesPerLevelCeil < 2 {
		return fmt.Errorf("config: max_gates_per_level_ceiling must be >= 2, got %d", l.MaxGatesPerLevelCeil)
	}
	return nil
}
