package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

// TablePreset is the initial state of one table as written in the presets
// file. Unset fields fall back to the hard-coded defaults.
type TablePreset struct {
	Sorting       []SortPreset  `toml:"sorting"`
	Search        *SearchPreset `toml:"search"`
	PageSize      int           `toml:"page_size"`
	HiddenColumns []string      `toml:"hidden_columns"`
}

type SortPreset struct {
	ID   string `toml:"id"`
	Desc bool   `toml:"desc"`
}

type SearchPreset struct {
	Term   string `toml:"term"`
	Column string `toml:"column"`
}

// Presets maps table names to their preset.
type Presets map[string]TablePreset

const defaultPresets = `
[candidates]
sorting = [{ id = "appliedAt", desc = true }]
hidden_columns = ["skills"]

[skills]
sorting = [{ id = "name" }]
page_size = 20

[departments]
sorting = [{ id = "name" }]
`

// DefaultPresets returns the built-in presets.
func DefaultPresets() Presets {
	p, err := ParsePresets(defaultPresets)
	if err != nil {
		panic(err)
	}
	return p
}

// LoadPresets reads presets from a TOML file. An empty path returns the
// built-in presets.
func LoadPresets(path string) (Presets, error) {
	if path == "" {
		return DefaultPresets(), nil
	}

	var p Presets
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file %q: %w", path, err)
	}
	warnUndecoded(md)

	return p, p.Validate()
}

func ParsePresets(data string) (Presets, error) {
	var p Presets
	md, err := toml.Decode(data, &p)
	if err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	warnUndecoded(md)

	return p, p.Validate()
}

func (p Presets) Validate() error {
	for table, preset := range p {
		if preset.PageSize < 0 {
			return fmt.Errorf("table %q: page_size must be positive", table)
		}
		for _, s := range preset.Sorting {
			if s.ID == "" {
				return fmt.Errorf("table %q: sort rule without id", table)
			}
		}
	}
	return nil
}

func warnUndecoded(md toml.MetaData) {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return
	}
	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	zap.S().Named("config").Warnw("unknown keys in presets", "keys", strings.Join(keys, ", "))
}
