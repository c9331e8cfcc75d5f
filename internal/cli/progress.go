package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Read and submit puzzle progress",
	}

	cmd.AddCommand(newProgressGetCmd())
	cmd.AddCommand(newProgressSetCmd())

	return cmd
}

func newProgressGetCmd() *cobra.Command {
	var anyPlayer bool

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show a player's completed puzzles",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/progress"
			if !anyPlayer {
				if cfg.PlayerID == "" {
					return fmt.Errorf("no player id; pass --id or use --any")
				}
				path += "?id=" + url.QueryEscape(cfg.PlayerID)
			}

			var result ProgressResult
			if err := client.Get(cmd.Context(), path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&anyPlayer, "any", false, "Show the first stored record instead of a specific player")

	return cmd
}

func newProgressSetCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "set [progress-json]",
		Short: "Replace a player's completed puzzles",
		Long: `Replace a player's completed puzzles with a JSON value.

The value is given as an argument or read from --file ('-' for stdin).
The whole stored value is replaced; nothing is merged.`,
		Example: `  puzzlectl progress set '["puzzle1","puzzle3"]'
  puzzlectl progress set --file progress.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PlayerID == "" {
				return fmt.Errorf("no player id; run 'player register' or pass --id")
			}

			raw, err := readProgress(cmd, args, file)
			if err != nil {
				return err
			}
			if !json.Valid(raw) {
				return fmt.Errorf("progress is not valid JSON")
			}

			req := struct {
				ID       string          `json:"id"`
				Progress json.RawMessage `json:"progress"`
			}{
				ID:       cfg.PlayerID,
				Progress: raw,
			}
			if err := client.Post(cmd.Context(), "/progress", req, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Progress saved")
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read progress JSON from a file ('-' for stdin)")

	return cmd
}

func readProgress(cmd *cobra.Command, args []string, file string) ([]byte, error) {
	switch {
	case len(args) == 1 && file != "":
		return nil, fmt.Errorf("pass progress as an argument or with --file, not both")
	case len(args) == 1:
		return []byte(args[0]), nil
	case file == "-":
		return io.ReadAll(cmd.InOrStdin())
	case file != "":
		return os.ReadFile(file)
	default:
		return nil, fmt.Errorf("progress JSON is required")
	}
}

func newClearCmd() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every player's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to clear all progress without --yes")
			}

			if err := client.Post(cmd.Context(), "/clear_table", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage("Progress table cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "Confirm deleting all records")

	return cmd
}
