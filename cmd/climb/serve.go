package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyclimb/internal/platform/tui"
	"github.com/vovakirdan/skyclimb/internal/progression"
	"github.com/vovakirdan/skyclimb/internal/spawning"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the level browser SSH server",
	Long: `Start an SSH server that opens the level browser for every connection.

Each SSH session gets its own progression session starting at level 1.
The furthest level reached is saved under the SSH user name, so
--profile is ignored here.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.climb/host_key

Examples:
  climb serve                                  # Listen on :23234
  climb serve --ssh :2222                      # Listen on port 2222
  climb serve --driver postgres --dsn "postgres://climb@db/climb?sslmode=disable"

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) {
	// Session start/end lines are info level.
	if !cmd.Flags().Changed("log-level") {
		flagLogLevel = "info"
	}
	logger, logCloser := newLogger(true)
	defer logCloser.Close()

	spawnCfg := loadSpawnConfig()
	backend := openBackend()
	defer backend.Close()

	factory := func() (progression.Spawner, error) {
		return spawning.New(spawnCfg, spawning.WithSeed(flagSeed), spawning.WithLogger(logger))
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg, backend, factory, logger.WithPrefix("climb-ssh"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting climb SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: %s\n", connectHint(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// connectHint returns the ssh command line for a listen address. Wildcard
// hosts become localhost.
func connectHint(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "ssh " + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return fmt.Sprintf("ssh %s -p %s", host, port)
}
