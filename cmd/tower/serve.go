package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tower/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeScript string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve <level>",
	Short: "Share a replay over SSH",
	Long: `Start an SSH server that replays your script on the named level.

Each connection gets its own replay with its own script state, so
viewers can pause, restart, and change speed independently.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tower/host_key

Examples:
  tower serve first-steps --script climb.lua
  tower serve 2 --script climb.lua --ssh :2222
  tower serve first-steps --script climb.lua --host-key ./my_host_key

Viewers can connect with:
  ssh localhost -p 23235`,
	Args: cobra.ExactArgs(1),
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeScript, "script", "", "Path to the Lua script (required)")
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	//nolint:errcheck // Flag exists, registered above
	serveCmd.MarkFlagRequired("script")
}

func runServe(cmd *cobra.Command, args []string) {
	flagScript = flagServeScript
	level, source := loadLevelAndScript(args[0])

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Speed:       flagSpeed,
	}

	server, err := tui.NewSSHServer(cfg, level, source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting tower SSH server on %s\n", cfg.Address)
	fmt.Printf("Replaying %q for every connection\n", level.Name)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
