package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/touch-arcade/internal/platform/tui"
)

var demoCmd = &cobra.Command{
	Use:   "demo <game>",
	Short: "Run the interactive adaptation demo",
	Long: `Runs the full adaptation pipeline against a simulated device and renders
the resulting touch overlays in the terminal. The terminal window plays
the part of the device screen: resize it and the engine re-checks and
re-attaches, click inside the surface and the click is delivered as a
touch.

Controls:
  mouse      touch the surface (drag for swipes)
  g          toggle gesture recognition
  o          rotate the simulated device
  m          cycle the viewport scale mode
  c          re-run the compatibility check
  q          quit

Examples:
  touchcade demo box-jump
  touchcade demo tunnel-racer --device low-end-android
  touchcade demo box-jump --device iphone-se --dpr 3`,
	Args: cobra.ExactArgs(1),
	Run:  runDemo,
}

func runDemo(cmd *cobra.Command, args []string) {
	reqs, cat, err := loadData()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	snap, preset, err := buildSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.RunDemo(reqs, cat, snap, preset, args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
