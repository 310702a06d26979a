package device

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/devices.yaml
var defaultDevicesYAML []byte

// presetFile is the on-disk shape of a device preset table.
type presetFile struct {
	Devices map[string]Snapshot `yaml:"devices"`
}

// LoadPresets loads the named device snapshot table.
// Search order: customPath -> ~/.touchcade/devices.yaml -> ./configs/devices.yaml -> embedded default
func LoadPresets(customPath string) (map[string]Snapshot, error) {
	var f presetFile

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read presets %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse presets %s: %w", customPath, err)
		}
		return f.Devices, nil
	}

	// Try user config directory
	if userPath := userConfigPath("devices.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if err := yaml.Unmarshal(data, &f); err == nil {
				return f.Devices, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/devices.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &f); err == nil {
			return f.Devices, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultDevicesYAML, &f); err != nil {
		return BuiltinPresets(), nil // Fallback to hardcoded if embed fails
	}
	return f.Devices, nil
}

// BuiltinPresets returns a minimal hardcoded preset table, used when no
// preset file can be read or parsed.
func BuiltinPresets() map[string]Snapshot {
	return map[string]Snapshot{
		"iphone-se": {
			UserAgent:      "Mozilla/5.0 (iPhone; CPU iPhone OS 15_7 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.6 Mobile/15E148 Safari/604.1",
			ScreenW:        320,
			ScreenH:        568,
			PixelRatio:     2,
			MaxTouchPoints: 5,
			TouchEvents:    true,
			CPUCores:       2,
			MemoryMB:       2048,
			Accelerated3D:  true,
			Audio:          true,
		},
		"ipad-air": {
			UserAgent:      "Mozilla/5.0 (iPad; CPU OS 15_7 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.6 Mobile/15E148 Safari/604.1",
			ScreenW:        820,
			ScreenH:        1180,
			PixelRatio:     2,
			MaxTouchPoints: 5,
			TouchEvents:    true,
			CPUCores:       8,
			MemoryMB:       4096,
			Accelerated3D:  true,
			Audio:          true,
		},
		"desktop": {
			UserAgent:     "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			ScreenW:       1920,
			ScreenH:       1080,
			PixelRatio:    1,
			CPUCores:      8,
			MemoryMB:      16384,
			Accelerated3D: true,
			Audio:         true,
		},
	}
}

// PresetNames returns the preset identifiers in sorted order.
func PresetNames(presets map[string]Snapshot) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
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
