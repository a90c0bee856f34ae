package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/studiowebux/postboard/internal/cli"
	"github.com/studiowebux/postboard/internal/config"
	"github.com/studiowebux/postboard/internal/executor"
	"github.com/studiowebux/postboard/internal/keybinds"
	"github.com/studiowebux/postboard/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err == nil {
		return
	}
	if errors.Is(err, cli.ErrAborted) || errors.Is(err, cli.ErrNoSelection) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cli.IsReported(err) {
		// The transport already printed the failure
		if hint := executor.Hint(err); hint != "" {
			fmt.Fprintln(os.Stderr, "Hint: "+hint)
		}
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, cli.ErrorLine(err, cli.IsInteractive()))
	os.Exit(1)
}

var rootCmd = &cobra.Command{
	Use:   "postboard",
	Short: "Post board - browse, write and discuss posts",
	Long: `Post board is a client for a small post and comment backend.

Run without arguments to start the interactive TUI, or use the subcommands
to work with the board from scripts.

Examples:
  postboard                              # Start interactive TUI
  postboard posts list                   # Print the post list
  postboard posts get 3 -o json          # One post with its comments
  postboard posts create --title T --content C
  postboard comments add 3 "Nice post"
  postboard guid                         # Generate a GUID
  postboard serve --seed board.yaml      # Run the development backend
  postboard keybinds export              # Write keybinds.json to customize`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
}

// Flags shared by every command
var (
	flagConfig  string
	flagBaseURL string
	flagLogFile string
	flagLogJSON bool
)

// Resolved during setup
var (
	appConfig *config.Config
	logger    = slog.New(slog.DiscardHandler)
	logFile   io.Closer
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default: ./.postboard.yaml or ~/.postboard/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "Backend URL, overrides the config")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to file")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Write logs as JSON")

	rootCmd.AddCommand(newPostsCmd())
	rootCmd.AddCommand(newCommentsCmd())
	rootCmd.AddCommand(newGUIDCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newKeybindsCmd())
}

// setup initializes the config directory, loads the client config and opens the log
func setup() error {
	if err := config.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	path := flagConfig
	if path == "" {
		path = config.GetConfigFilePath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	appConfig = cfg

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		logger = newLogger(f, slog.LevelDebug)
	}
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if flagLogJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func closeLog() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// runTUI starts the interactive TUI
func runTUI(cmd *cobra.Command) error {
	registry, err := keybinds.LoadOrDefault(config.KeybindsFile)
	if err != nil {
		return fmt.Errorf("failed to load keybinds: %w", err)
	}

	return tui.Run(cmd.Context(), tui.Options{
		Config:   appConfig,
		Keybinds: registry,
		Logger:   logger,
	})
}
