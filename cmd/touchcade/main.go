// touchcade inspects and adapts browser games for touch devices from
// the terminal.
//
// Usage:
//
//	touchcade devices          - List device presets
//	touchcade games            - List configured games
//	touchcade profile          - Show the detected device profile
//	touchcade check <game>     - Check a game against a device
//	touchcade demo <game>      - Run the interactive demo host
//
// Global flags:
//
//	--device <name>        - Device preset (default: desktop)
//	--width/--height       - Override screen dimensions (CSS pixels)
//	--dpr <ratio>          - Override device pixel ratio
//	--ua <string>          - Override user agent
//	--cores/--memory       - Override CPU cores / memory in MB
//	--catalog <path>       - Custom adaptation catalog YAML
//	--requirements <path>  - Custom game requirements YAML
//	--verbose              - Log checker internals
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/touch-arcade/internal/catalog"
	"github.com/vovakirdan/touch-arcade/internal/compat"
	"github.com/vovakirdan/touch-arcade/internal/device"
)

var (
	// Global flags
	flagDevice       string
	flagWidth        int
	flagHeight       int
	flagDPR          float64
	flagUA           string
	flagCores        int
	flagMemory       int
	flagCatalog      string
	flagRequirements string
	flagVerbose      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "touchcade",
	Short: "Touch Arcade - adapt browser games to touch devices",
	Long: `Touch Arcade checks whether portal games run well on a given device
and adapts their input and presentation when they do not.

Available commands:
  devices  - Show the device preset table
  games    - Show catalog and requirements per game
  profile  - Classify a device snapshot
  check    - Score one game against a device (or all presets)
  demo     - Interactive terminal host with mouse-as-touch input

Examples:
  touchcade devices
  touchcade profile --device iphone-se
  touchcade check box-jump --device low-end-android
  touchcade check tunnel-racer --all-devices
  touchcade check --interactive
  touchcade demo box-jump --device iphone-se`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDevice, "device", "desktop", "Device preset name (see 'touchcade devices')")
	rootCmd.PersistentFlags().IntVar(&flagWidth, "width", 0, "Override screen width in CSS pixels")
	rootCmd.PersistentFlags().IntVar(&flagHeight, "height", 0, "Override screen height in CSS pixels")
	rootCmd.PersistentFlags().Float64Var(&flagDPR, "dpr", 0, "Override device pixel ratio")
	rootCmd.PersistentFlags().StringVar(&flagUA, "ua", "", "Override user agent string")
	rootCmd.PersistentFlags().IntVar(&flagCores, "cores", 0, "Override CPU core count")
	rootCmd.PersistentFlags().IntVar(&flagMemory, "memory", 0, "Override device memory in MB")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to custom adaptation catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagRequirements, "requirements", "", "Path to custom requirements YAML")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Log checker internals")

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(demoCmd)
}

// buildSnapshot resolves the --device preset and applies the override
// flags on top. Returns the snapshot and the preset name for display.
func buildSnapshot() (device.Snapshot, string, error) {
	presets, err := device.LoadPresets("")
	if err != nil {
		return device.Snapshot{}, "", fmt.Errorf("loading device presets: %w", err)
	}

	snap, ok := presets[flagDevice]
	if !ok {
		return device.Snapshot{}, "", fmt.Errorf("unknown device preset %q (known: %s)",
			flagDevice, strings.Join(device.PresetNames(presets), ", "))
	}

	if flagWidth > 0 {
		snap.ScreenW = flagWidth
	}
	if flagHeight > 0 {
		snap.ScreenH = flagHeight
	}
	if flagDPR > 0 {
		snap.PixelRatio = flagDPR
	}
	if flagUA != "" {
		snap.UserAgent = flagUA
	}
	if flagCores > 0 {
		snap.CPUCores = flagCores
	}
	if flagMemory > 0 {
		snap.MemoryMB = flagMemory
	}
	return snap, flagDevice, nil
}

// newLogger builds the CLI logger; --verbose unlocks the checker's
// debug output.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "touchcade",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadData reads the requirements registry and the adaptation catalog,
// honoring the custom-path flags.
func loadData() (*compat.Registry, *catalog.Catalog, error) {
	reqs, err := compat.LoadRegistry(flagRequirements)
	if err != nil {
		return nil, nil, fmt.Errorf("loading requirements: %w", err)
	}
	cat, err := catalog.Load(flagCatalog)
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	return reqs, cat, nil
}
