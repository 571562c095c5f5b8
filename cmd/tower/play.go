package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/config"
	"github.com/vovakirdan/tui-tower/internal/game"
	"github.com/vovakirdan/tui-tower/internal/platform/tui"
	"github.com/vovakirdan/tui-tower/internal/script"
	"github.com/vovakirdan/tui-tower/internal/storage"
)

var (
	flagScript   string
	flagHeadless bool
)

var playCmd = &cobra.Command{
	Use:   "play <level>",
	Short: "Replay a script on a level",
	Long: `Run your Lua script against the named level and watch the replay.

The script must define a Player table with a play_turn method:

  Player = {}
  function Player:play_turn(turn)
      turn:walk()
  end

A script that fails to compile is rejected before the replay starts.
Runtime errors cost the samurai that round's action but never abort
the ascent.

Controls:
  Space/P    - Pause
  +/-        - Faster/slower
  R          - Restart (after the ascent ends)
  Q/Ctrl+C   - Quit

Examples:
  tower play first-steps --script climb.lua
  tower play 2 --script climb.lua
  tower play archer-gallery --script climb.lua --headless
  tower play first-steps --script climb.lua --levels ./my-tower.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagScript, "script", "", "Path to the Lua script (required)")
	playCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without the TUI and print the result")
	//nolint:errcheck // Flag exists, registered above
	playCmd.MarkFlagRequired("script")
}

func runPlay(cmd *cobra.Command, args []string) {
	level, source := loadLevelAndScript(args[0])

	// Refuse to start on a script that does not compile.
	if _, err := script.Compile(source); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rebuild := func() (*game.Engine, error) {
		floor, err := level.Build()
		if err != nil {
			return nil, err
		}
		controller, err := script.Compile(source)
		if err != nil {
			return nil, err
		}
		return game.NewEngine(floor, controller, level.RoundLimit)
	}

	if flagHeadless {
		runHeadless(rebuild, level.Name)
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open playthroughs database: %v\n", err)
		// Continue without storage - replay still works
		store = nil
	}

	runErr := tui.Run(rebuild, store, level.Name, flagSpeed)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running replay: %v\n", runErr)
		os.Exit(1)
	}
}

// runHeadless resolves the whole ascent at once and prints the result.
func runHeadless(rebuild func() (*game.Engine, error), levelName string) {
	engine, err := rebuild()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result := engine.Run()

	fmt.Printf("%s: %s after %d rounds, score %d\n",
		levelName, result.Outcome, result.Rounds, result.Score)
	for _, f := range result.Failures {
		fmt.Printf("  round %d: %v\n", f.Round, f.Err)
	}

	if store, storeErr := storage.Open(flagDBPath); storeErr == nil {
		//nolint:errcheck // Best-effort save
		store.RecordPlaythrough(levelName, result.Outcome.String(), result.Rounds, result.Score)
		store.Close()
	}

	if result.Outcome != game.OutcomeWin {
		os.Exit(1)
	}
}

// loadLevelAndScript resolves the level by name or index and reads the
// script source. Exits with a message on any failure.
func loadLevelAndScript(levelKey string) (config.Level, string) {
	tower, err := config.LoadTower(flagLevels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	level, err := tower.Find(levelKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'tower list' to see available levels.")
		os.Exit(1)
	}

	source, err := os.ReadFile(flagScript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading script: %v\n", err)
		os.Exit(1)
	}

	return level, string(source)
}
