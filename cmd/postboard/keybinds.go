package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studiowebux/postboard/internal/config"
	"github.com/studiowebux/postboard/internal/keybinds"
)

// Flags for keybinds export
var (
	keybindsPath  string
	keybindsForce bool
)

func newKeybindsCmd() *cobra.Command {
	keybindsCmd := &cobra.Command{
		Use:   "keybinds",
		Short: "Manage TUI key bindings",
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the default key bindings to keybinds.json",
		Long: `Write the default key bindings to keybinds.json (~/.postboard/keybinds.json
unless --path is given). Edit the file to override bindings; the TUI reads it
at startup.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := keybindsPath
			if path == "" {
				path = config.KeybindsFile
			}
			if err := keybinds.WriteDefaults(path, keybindsForce); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Key bindings written to %s\n", path)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&keybindsPath, "path", "", "Output file")
	exportCmd.Flags().BoolVarP(&keybindsForce, "force", "f", false, "Overwrite an existing file")

	keybindsCmd.AddCommand(exportCmd)
	return keybindsCmd
}
