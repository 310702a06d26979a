package compat

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/touch-arcade/internal/device"
)

//go:embed defaults/requirements.yaml
var defaultRequirementsYAML []byte

// Requirements is one game's static needs. Rows are loaded once into
// the registry at startup and never mutated.
type Requirements struct {
	MinWidth     int                  `yaml:"min_width"`
	MinHeight    int                  `yaml:"min_height"`
	Keyboard     bool                 `yaml:"keyboard"`
	Mouse        bool                 `yaml:"mouse"`
	Gamepad      bool                 `yaml:"gamepad"`
	Needs3D      bool                 `yaml:"needs_3d"`
	Audio        bool                 `yaml:"audio"`
	Orientations []device.Orientation `yaml:"orientations"` // empty = any
	MinMemoryMB  int                  `yaml:"min_memory_mb"`
	Heavy        bool                 `yaml:"heavy"`
	Offline      bool                 `yaml:"offline"`
}

// Registry maps game ids to their requirements. Unknown ids resolve to
// a maximally permissive row, never an error.
type Registry struct {
	games map[string]Requirements
	def   Requirements
}

// Lookup returns the requirements for a game, or the permissive
// default for unknown ids.
func (r *Registry) Lookup(gameID string) Requirements {
	if req, ok := r.games[gameID]; ok {
		return req
	}
	return r.def
}

// Has reports whether the registry carries an explicit row for the id.
func (r *Registry) Has(gameID string) bool {
	_, ok := r.games[gameID]
	return ok
}

// Games lists the registered game ids in sorted order.
func (r *Registry) Games() []string {
	ids := make([]string, 0, len(r.games))
	for id := range r.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// requirementsFile is the on-disk shape of the registry.
type requirementsFile struct {
	Games map[string]Requirements `yaml:"games"`
}

// LoadRegistry reads the requirements table.
// Search order: customPath -> ~/.touchcade/requirements.yaml -> ./configs/requirements.yaml -> embedded default
func LoadRegistry(customPath string) (*Registry, error) {
	var f requirementsFile

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read requirements %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse requirements %s: %w", customPath, err)
		}
		return newRegistry(f.Games), nil
	}

	// Try user config directory
	if userPath := userConfigPath("requirements.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, &f); err == nil {
				return newRegistry(f.Games), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/requirements.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &f); err == nil {
			return newRegistry(f.Games), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultRequirementsYAML, &f); err != nil {
		return BuiltinRegistry(), nil // Fallback to hardcoded if embed fails
	}
	return newRegistry(f.Games), nil
}

// BuiltinRegistry returns a hardcoded minimal registry, used when no
// requirements file can be read or parsed.
func BuiltinRegistry() *Registry {
	games := map[string]Requirements{
		"box-jump": {
			MinWidth:     480,
			MinHeight:    320,
			Keyboard:     true,
			Orientations: []device.Orientation{device.Landscape},
			Offline:      true,
		},
		"tunnel-racer": {
			MinWidth:     640,
			MinHeight:    360,
			Keyboard:     true,
			Needs3D:      true,
			Heavy:        true,
			MinMemoryMB:  2048,
			Orientations: []device.Orientation{device.Landscape},
		},
	}
	return newRegistry(games)
}

func newRegistry(games map[string]Requirements) *Registry {
	if games == nil {
		games = make(map[string]Requirements)
	}
	return &Registry{games: games}
}

// userConfigPath returns the path to a user config file, or empty if
// home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".touchcade", filename)
}
