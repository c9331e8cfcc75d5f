package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerRegisterCmd())
	cmd.AddCommand(newPlayerShowCmd())

	return cmd
}

func newPlayerRegisterCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a player with empty progress",
		Long: `Register a player with empty progress.

Without --user-id (or an explicit --id) a random UUID is generated. The registered id is saved
to the id file and used by later commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" && cmd.Flags().Changed("id") {
				userID = cfg.PlayerID
			}
			if userID == "" {
				userID = uuid.NewString()
			}

			req := map[string]string{"user_id": userID}
			if err := client.Post(cmd.Context(), "/uuid", req, nil); err != nil {
				return err
			}

			if err := cfg.SavePlayerID(userID); err != nil {
				return fmt.Errorf("failed to save player id: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(PlayerResult{ID: userID})
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "Player id to register (default: random UUID)")

	return cmd
}

func newPlayerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the remembered player id",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.PlayerID == "" {
				return fmt.Errorf("no player id; run 'player register' or pass --id")
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(PlayerResult{ID: cfg.PlayerID})
			return nil
		},
	}
}
