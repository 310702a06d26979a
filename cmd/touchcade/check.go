package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/touch-arcade/internal/catalog"
	"github.com/vovakirdan/touch-arcade/internal/compat"
	"github.com/vovakirdan/touch-arcade/internal/device"
	"github.com/vovakirdan/touch-arcade/internal/platform/tui"
)

var (
	flagAllDevices  bool
	flagInteractive bool
)

var checkCmd = &cobra.Command{
	Use:   "check [game]",
	Short: "Check a game against a device",
	Long: `Scores a game's compatibility with the selected device and prints the
issues, adaptations and fallbacks the engine identified.

Examples:
  touchcade check box-jump
  touchcade check box-jump --device iphone-se
  touchcade check tunnel-racer --all-devices
  touchcade check --interactive`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagAllDevices, "all-devices", false, "Score the game on every device preset")
	checkCmd.Flags().BoolVar(&flagInteractive, "interactive", false, "Open the interactive report browser")
}

func runCheck(cmd *cobra.Command, args []string) {
	reqs, cat, err := loadData()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagInteractive {
		runCheckInteractive(reqs, cat)
		return
	}

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Error: a game id is required unless --interactive is set")
		fmt.Fprintln(os.Stderr, "Run 'touchcade games' to see configured games.")
		os.Exit(1)
	}
	gameID := args[0]

	if flagAllDevices {
		runCheckMatrix(reqs, cat, gameID)
		return
	}

	snap, preset, err := buildSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	report := newChecker(reqs, cat, snap).Check(gameID)
	printReport(report, preset)
}

// runCheckInteractive opens the report browser sized to the terminal.
func runCheckInteractive(reqs *compat.Registry, cat *catalog.Catalog) {
	presets, err := device.LoadPresets("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if _, err := tui.RunReport(reqs, cat, presets, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runCheckMatrix scores one game across every preset.
func runCheckMatrix(reqs *compat.Registry, cat *catalog.Catalog, gameID string) {
	presets, err := device.LoadPresets("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	names := device.PresetNames(presets)
	maxNameLen := 6 // "Device" header
	for _, name := range names {
		if len(name) > maxNameLen {
			maxNameLen = len(name)
		}
	}

	fmt.Printf("Compatibility matrix for %s:\n", gameID)
	fmt.Println()
	fmt.Printf("  %-*s  %-6s  %-12s  %s\n", maxNameLen, "Device", "Score", "Verdict", "Issues")
	fmt.Printf("  %-*s  %-6s  %-12s  %s\n", maxNameLen, "------", "-----", "-------", "------")

	for _, name := range names {
		report := newChecker(reqs, cat, presets[name]).Check(gameID)

		verdict := "compatible"
		if !report.Compatible {
			verdict = "INCOMPATIBLE"
		}
		fmt.Printf("  %-*s  %-6d  %-12s  %d\n",
			maxNameLen, name, report.Score, verdict, len(report.Issues))
	}
}

// newChecker builds a checker over a fixed snapshot.
func newChecker(reqs *compat.Registry, cat *catalog.Catalog, snap device.Snapshot) *compat.Checker {
	return compat.NewChecker(reqs, cat,
		func() device.Snapshot { return snap },
		compat.WithLogger(newLogger()),
	)
}

// printReport renders one report in full detail.
func printReport(r compat.Report, preset string) {
	verdict := "compatible"
	if !r.Compatible {
		verdict = "NOT compatible"
	}

	fmt.Printf("%s on %s (%s): score %d/100, %s\n", r.GameID, preset, r.Profile.Class(), r.Score, verdict)

	if len(r.Issues) > 0 {
		fmt.Println()
		fmt.Println("Issues:")
		for _, is := range r.Issues {
			fmt.Printf("  [%-8s] %s: %s\n", is.Severity, is.Kind, is.Message)
			if is.Hint != "" {
				fmt.Printf("             hint: %s\n", is.Hint)
			}
		}
	}

	if len(r.Adaptations) > 0 {
		fmt.Println()
		fmt.Println("Adaptations:")
		for _, a := range r.Adaptations {
			fmt.Printf("  - %s: %s\n", a.Kind, a.Message)
		}
	}

	if len(r.Fallbacks) > 0 {
		fmt.Println()
		fmt.Println("Fallbacks:")
		for _, f := range r.Fallbacks {
			fmt.Printf("  - %s: %s\n", f.Kind, f.Message)
		}
	}

	if len(r.Issues) == 0 {
		fmt.Println()
		fmt.Println("No issues found.")
	}
}
