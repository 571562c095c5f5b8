// tower is a scripted tower-climbing puzzle played in the terminal.
//
// The player writes a Lua script that drives a samurai up the tower,
// one floor at a time. The script acts; the terminal only watches.
//
// Usage:
//
//	tower list                      - List the tower's levels
//	tower play <level> --script f   - Replay a script on a level
//	tower scores [level]            - Show recorded playthroughs
//	tower serve <level> --script f  - Share a replay over SSH
//
// Global flags:
//
//	--levels <path>  - Path to a custom levels YAML
//	--db <path>      - Set database path (default: ~/.tower/playthroughs.db)
//	--speed <n>      - Replay pace in rounds per second (default: 4)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagLevels string
	flagDBPath string
	flagSpeed  int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tower",
	Short: "Tower - script a samurai's climb in your terminal",
	Long: `Tower is a turn-based puzzle where a Lua script, not the keyboard,
controls the hero. Each level is one floor of the tower: reach the
stairs before the round limit, past whoever stands in the way.

Available commands:
  list     - Show the tower's levels and their allowed abilities
  play     - Replay a script on a level
  scores   - View recorded playthroughs
  serve    - Share a replay over SSH

Examples:
  tower list
  tower play first-steps --script climb.lua
  tower play 2 --script climb.lua --headless
  tower scores first-steps
  tower serve first-steps --script climb.lua --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Path to custom levels YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tower/playthroughs.db", "Path to playthroughs database")
	rootCmd.PersistentFlags().IntVar(&flagSpeed, "speed", 4, "Replay pace in rounds per second")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
