package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBootstrapCmd() *cobra.Command {
	var (
		count int
		force bool
	)

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Generate and store the first --count players (admin)",
		Long: `Generate and store players 0..count-1 on the server.

A second bootstrap is a no-op unless --force is given. With --force, players
that are already stored are kept and only missing ones are written.
Requires the admin token.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("--count must be positive")
			}
			if cfg.AdminToken == "" {
				return fmt.Errorf("--admin-token or RANCHCTL_ADMIN_TOKEN is required")
			}

			req := map[string]any{"count": count, "force": force}
			var result BootstrapResult
			if err := client.Post("/api/v1/admin/bootstrap", req, &result); err != nil {
				return err
			}

			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Number of players to generate (required)")
	cmd.Flags().BoolVar(&force, "force", false, "Bootstrap again even if already bootstrapped")
	_ = cmd.MarkFlagRequired("count")

	return cmd
}
