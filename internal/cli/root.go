package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "puzzlectl",
		Short: "CLI tool for the puzzle progress API",
		Long: `puzzlectl is a CLI tool for interacting with the puzzle progress API.

It can register players, read and submit completed puzzles, clear the
progress table and check server health. The id of the last registered
player is remembered so later commands can omit --id.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load player id from file if not provided via flag/env
			if err := cfg.LoadPlayerID(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: PUZZLECTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerID, "id", cfg.PlayerID, "Player id (env: PUZZLECTL_PLAYER_ID)")
	rootCmd.PersistentFlags().StringVar(&cfg.PlayerIDFile, "id-file", cfg.PlayerIDFile, "File remembering the player id (env: PUZZLECTL_PLAYER_ID_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newTimeCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newProgressCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
