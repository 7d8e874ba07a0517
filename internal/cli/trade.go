package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newTradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trade",
		Short: "Trade commands for the player owning the configured key",
	}

	cmd.AddCommand(newTradeQuoteCmd())
	cmd.AddCommand(newTradeSendCmd())

	return cmd
}

func newTradeQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote <player-id>",
		Short: "Show what a trade with a player would earn, without trading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := cfg.RequireKey()
			if err != nil {
				return err
			}

			var result Quote
			if err := client.WithToken(key).Get("/api/v1/me/quote?to_id="+url.QueryEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newTradeSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <player-id>",
		Short: "Trade with a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := cfg.RequireKey()
			if err != nil {
				return err
			}

			req := map[string]string{"to_id": args[0]}
			var result TradeResult
			if err := client.WithToken(key).Post("/api/v1/me/trades", req, &result); err != nil {
				return err
			}

			out := NewOutputTo(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}
