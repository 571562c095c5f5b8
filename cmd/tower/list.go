package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/config"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tower's levels",
	Long:  `Shows every level of the tower with its size and allowed abilities.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	tower, err := config.LoadTower(flagLevels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	if len(tower.Levels) == 0 {
		fmt.Println("No levels defined.")
		return
	}

	fmt.Println("Tower levels:")
	fmt.Println()

	maxNameLen := 5 // "Level" header
	for _, lv := range tower.Levels {
		if len(lv.Name) > maxNameLen {
			maxNameLen = len(lv.Name)
		}
	}

	fmt.Printf("  %-2s  %-*s  %-7s  %s\n", "#", maxNameLen, "Level", "Size", "Abilities")
	fmt.Printf("  %-2s  %-*s  %-7s  %s\n", "--", maxNameLen, "-----", "----", "---------")

	for i, lv := range tower.Levels {
		size := fmt.Sprintf("%dx%d", lv.Width, lv.Height)
		abilities := strings.Join(lv.Samurai.Abilities, " ")
		fmt.Printf("  %-2d  %-*s  %-7s  %s\n", i+1, maxNameLen, lv.Name, size, abilities)
	}

	fmt.Println()
	fmt.Println("Run 'tower play <level> --script <file>' to climb a level.")
}
