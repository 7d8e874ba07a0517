package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/ranchgame/internal/services/identity"
)

func newIdentityCmd() *cobra.Command {
	var salt string

	cmd := &cobra.Command{
		Use:   "identity <index>",
		Short: "Derive the key, username and ranch for an index locally",
		Long: `Derive a player's identity from its index without contacting the server.

The result matches what the server stores only when --salt matches the
server's RANCHGAME_SALT.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be an integer: %w", err)
			}

			id, err := identity.NewGenerator(salt).Derive(index)
			if err != nil {
				return err
			}

			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())
			out.Print(Identity{
				Index:    id.Index,
				Key:      id.Key,
				Username: id.Username,
				Ranch:    string(id.Ranch),
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&salt, "salt", getEnvOrDefault("RANCHGAME_SALT", identity.DefaultSalt), "Identity salt (env: RANCHGAME_SALT)")

	return cmd
}
