package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tower/internal/platform/tui"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show recorded playthroughs",
	Long: `Display recorded playthroughs.

With a level name, prints the top 10 for that level. Without one,
opens an interactive scoreboard covering every recorded level.

Examples:
  tower scores
  tower scores first-steps`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening playthroughs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if sbErr := tui.RunScoreboard(store, width, height); sbErr != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", sbErr)
			os.Exit(1)
		}
		return
	}

	level := args[0]
	entries, err := store.TopPlaythroughs(level, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving playthroughs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Playthroughs - %s\n", level)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No playthroughs recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'tower play %s --script <file>' to set the first record!\n", level)
		return
	}

	fmt.Printf("  %-4s  %-8s  %-8s  %-7s  %s\n", "Rank", "Score", "Outcome", "Rounds", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %-7s  %s\n", "----", "-----", "-------", "------", "----")

	for i, entry := range entries {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-8s  %-7d  %s\n", i+1, entry.Score, entry.Outcome, entry.Rounds, dateStr)
	}

	best, err := store.BestScore(level)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d\n", best)
	}
}
