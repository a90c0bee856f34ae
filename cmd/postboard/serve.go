package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiowebux/postboard/internal/mock"
)

// Flags for serve
var (
	serveConfig  string
	servePort    int
	serveHost    string
	serveStorage string
	serveDB      string
	serveSeed    string
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development backend",
		Long: `Run the development backend serving the post board API.

Posts live in memory unless --storage sqlite is given. A seed file (yaml or
json) fills the board at startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}

	cmd.Flags().StringVar(&serveConfig, "backend-config", "", "Backend config file (yaml or json)")
	cmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default 8080)")
	cmd.Flags().StringVar(&serveHost, "host", "", "Host to bind (default localhost)")
	cmd.Flags().StringVar(&serveStorage, "storage", "", "Storage backend (memory/sqlite)")
	cmd.Flags().StringVar(&serveDB, "db", "", "SQLite database path")
	cmd.Flags().StringVar(&serveSeed, "seed", "", "Seed file with initial posts and comments")
	return cmd
}

func runServe(cmd *cobra.Command) error {
	backendConfig := mock.DefaultConfig()
	if serveConfig != "" {
		loaded, err := mock.LoadConfig(serveConfig)
		if err != nil {
			return err
		}
		backendConfig = loaded
	}

	if servePort != 0 {
		backendConfig.Port = servePort
	}
	if serveHost != "" {
		backendConfig.Host = serveHost
	}
	if serveStorage != "" {
		backendConfig.Storage = serveStorage
	}
	if serveDB != "" {
		backendConfig.DatabasePath = serveDB
	}
	if serveSeed != "" {
		backendConfig.SeedFile = serveSeed
	}
	if err := backendConfig.Validate(); err != nil {
		return fmt.Errorf("invalid backend config: %w", err)
	}

	serverLog := logger
	if flagLogFile == "" {
		serverLog = newLogger(os.Stderr, slog.LevelInfo)
	}

	store, err := mock.OpenStore(backendConfig)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	if backendConfig.SeedFile != "" {
		seed, err := mock.LoadSeed(backendConfig.SeedFile)
		if err != nil {
			return err
		}
		if err := mock.ApplySeed(ctx, store, seed); err != nil {
			return err
		}
		serverLog.Info("board seeded", "file", backendConfig.SeedFile, "posts", len(seed.Posts))
	}

	server := mock.NewServer(backendConfig, store, serverLog)
	if err := server.Start(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Backend listening on %s (Ctrl+C to stop)\n", server.GetAddress())

	<-ctx.Done()
	serverLog.Info("shutting down backend")
	return server.Stop()
}
