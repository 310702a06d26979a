package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/touch-arcade/internal/device"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List device presets",
	Long:  `Shows the known device presets with their classification.`,
	Run:   runDevices,
}

func runDevices(cmd *cobra.Command, args []string) {
	presets, err := device.LoadPresets("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	names := device.PresetNames(presets)
	if len(names) == 0 {
		fmt.Println("No device presets configured.")
		return
	}

	maxNameLen := 4 // "Name" header
	for _, name := range names {
		if len(name) > maxNameLen {
			maxNameLen = len(name)
		}
	}

	fmt.Println("Device presets:")
	fmt.Println()
	fmt.Printf("  %-*s  %-8s  %-10s  %-5s  %-6s  %s\n", maxNameLen, "Name", "Class", "Screen", "DPR", "Cores", "Touch")
	fmt.Printf("  %-*s  %-8s  %-10s  %-5s  %-6s  %s\n", maxNameLen, "----", "-----", "------", "---", "-----", "-----")

	for _, name := range names {
		snap := presets[name]
		p := device.Detect(snap)

		touch := "no"
		if p.Touch {
			touch = "yes"
		}
		screen := fmt.Sprintf("%dx%d", snap.ScreenW, snap.ScreenH)
		fmt.Printf("  %-*s  %-8s  %-10s  %-5.3g  %-6d  %s\n",
			maxNameLen, name, p.Class(), screen, snap.PixelRatio, snap.CPUCores, touch)
	}

	fmt.Println()
	fmt.Println("Run 'touchcade check <game> --device <name>' to score a game on a preset.")
}
