package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player lookup commands",
	}

	cmd.AddCommand(newPlayerGetCmd())
	cmd.AddCommand(newPlayerByIDCmd())
	cmd.AddCommand(newPlayerUseCmd())

	return cmd
}

func newPlayerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the player owning the configured key",
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := cfg.RequireKey()
			if err != nil {
				return err
			}

			var result Player
			if err := client.WithToken(key).Get("/api/v1/me", &result); err != nil {
				return err
			}

			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPlayerByIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "by-id <id>",
		Short: "Show the public view of a player by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PublicPlayer
			if err := client.Get("/api/v1/players/by-id/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newPlayerUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <key>",
		Short: "Check a player key against the server and save it for later commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			if err := client.WithToken(args[0]).Get("/api/v1/me", &result); err != nil {
				return err
			}

			if err := cfg.SaveKey(args[0]); err != nil {
				return fmt.Errorf("failed to save key: %w", err)
			}

			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			if cfg.Verbose {
				out.PrintMessage("Saved key to " + cfg.KeyFile)
			}
			return nil
		},
	}
}
