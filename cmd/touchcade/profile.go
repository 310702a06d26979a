package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/touch-arcade/internal/device"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the detected device profile",
	Long: `Classifies the device snapshot built from the flags and prints the
resulting profile.

Examples:
  touchcade profile --device iphone-se
  touchcade profile --device desktop --width 800 --height 1280
  touchcade profile --ua "Mozilla/5.0 (Linux; Android 13) Mobile" --dpr 3`,
	Run: runProfile,
}

func runProfile(cmd *cobra.Command, args []string) {
	snap, preset, err := buildSnapshot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := device.Detect(snap)

	touch := "no"
	if p.Touch {
		touch = "yes"
	}

	fmt.Printf("Profile for %s:\n", preset)
	fmt.Println()
	fmt.Printf("  Class:        %s\n", p.Class())
	fmt.Printf("  Platform:     %s\n", p.Platform)
	fmt.Printf("  Screen:       %dx%d (%s)\n", p.ScreenW, p.ScreenH, p.Orientation)
	fmt.Printf("  Pixel ratio:  %.3g\n", p.PixelRatio)
	fmt.Printf("  Touch:        %s\n", touch)
	fmt.Printf("  CPU cores:    %d\n", snap.CPUCores)
	fmt.Printf("  Memory:       %d MB\n", snap.MemoryMB)
}
