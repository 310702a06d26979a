package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/touch-arcade/internal/catalog"
	"github.com/vovakirdan/touch-arcade/internal/compat"
	"github.com/vovakirdan/touch-arcade/internal/device"
)

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List configured games",
	Long:  `Shows every game known to the adaptation catalog or the requirements table.`,
	Run:   runGames,
}

func runGames(cmd *cobra.Command, args []string) {
	reqs, cat, err := loadData()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ids := mergeGameIDs(cat, reqs)
	if len(ids) == 0 {
		fmt.Println("No games configured.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, id := range ids {
		if len(id) > maxIDLen {
			maxIDLen = len(id)
		}
	}

	fmt.Println("Configured games:")
	fmt.Println()
	fmt.Printf("  %-*s  %-9s  %-8s  %-9s  %s\n", maxIDLen, "ID", "Controls", "Scale", "Floor", "Needs")
	fmt.Printf("  %-*s  %-9s  %-8s  %-9s  %s\n", maxIDLen, "--", "--------", "-----", "-----", "-----")

	for _, id := range ids {
		a := cat.Lookup(id, device.Profile{})
		req := reqs.Lookup(id)

		floor := "-"
		if req.MinWidth > 0 || req.MinHeight > 0 {
			floor = fmt.Sprintf("%dx%d", req.MinWidth, req.MinHeight)
		}
		fmt.Printf("  %-*s  %-9d  %-8s  %-9s  %s\n",
			maxIDLen, id, len(a.Controls), a.Scale, floor, needsSummary(req))
	}

	fmt.Println()
	fmt.Println("Run 'touchcade check <id>' to score a game on the selected device.")
}

// mergeGameIDs joins the catalog and requirements game lists.
func mergeGameIDs(cat *catalog.Catalog, reqs *compat.Registry) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, id := range cat.Games() {
		seen[id] = true
		ids = append(ids, id)
	}
	for _, id := range reqs.Games() {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// needsSummary compacts a requirements row into a flag list.
func needsSummary(req compat.Requirements) string {
	var needs []string
	if req.Keyboard {
		needs = append(needs, "keyboard")
	}
	if req.Mouse {
		needs = append(needs, "mouse")
	}
	if req.Gamepad {
		needs = append(needs, "gamepad")
	}
	if req.Needs3D {
		needs = append(needs, "3d")
	}
	if req.Audio {
		needs = append(needs, "audio")
	}
	if req.Heavy {
		needs = append(needs, "heavy")
	}
	if req.MinMemoryMB > 0 {
		needs = append(needs, fmt.Sprintf("%dMB", req.MinMemoryMB))
	}
	if req.Offline {
		needs = append(needs, "offline")
	}
	if len(needs) == 0 {
		return "-"
	}
	return strings.Join(needs, ",")
}
