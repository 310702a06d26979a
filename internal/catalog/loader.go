package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/touch-arcade/internal/core"
	"github.com/vovakirdan/touch-arcade/internal/device"
)

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// catalogFile is the on-disk shape of the adaptation table.
type catalogFile struct {
	Games map[string]Adaptation `yaml:"games"`
}

// Load reads the adaptation table.
// Search order: customPath -> ~/.touchcade/catalog.yaml -> ./configs/catalog.yaml -> embedded default
func Load(customPath string) (*Catalog, error) {
	var f catalogFile

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", customPath, err)
		}
		return newCatalog(f.Games), nil
	}

	// Try user config directory
	if userPath := userConfigPath("catalog.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, &f); err == nil {
				return newCatalog(f.Games), nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/catalog.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &f); err == nil {
			return newCatalog(f.Games), nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultCatalogYAML, &f); err != nil {
		return Builtin(), nil // Fallback to hardcoded if embed fails
	}
	return newCatalog(f.Games), nil
}

// Builtin returns a hardcoded minimal table, used when no catalog file
// can be read or parsed.
func Builtin() *Catalog {
	games := map[string]Adaptation{
		"box-jump": {
			Orientation: device.Landscape,
			Scale:       ScaleFit,
			Controls: []ControlSpec{
				{
					ID:   "move",
					Kind: ControlJoystick,
					Pos:  core.Point{X: 40, Y: 420},
					Size: core.Size{W: 140, H: 140},
					Keys: []core.Key{
						core.KeyArrowUp, core.KeyArrowDown,
						core.KeyArrowLeft, core.KeyArrowRight,
					},
					Label: "Move",
				},
				{
					ID:    "jump",
					Kind:  ControlButton,
					Pos:   core.Point{X: 620, Y: 440},
					Size:  core.Size{W: 120, H: 120},
					Keys:  []core.Key{core.KeySpace},
					Label: "Jump",
				},
			},
		},
	}
	return newCatalog(games)
}

func newCatalog(games map[string]Adaptation) *Catalog {
	if games == nil {
		games = make(map[string]Adaptation)
	}
	return &Catalog{
		games: games,
		def:   defaultAdaptation(),
	}
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
