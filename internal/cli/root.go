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
		Use:   "ranchctl",
		Short: "CLI tool for the ranch game API",
		Long: `ranchctl is a CLI tool for interacting with the ranch game JSON API.

It covers bootstrapping the player population, looking up players and the
leaderboard, and quoting and executing trades. The identity command derives
a player's key and username locally without contacting the server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load the player key from file if not provided via flag/env
			if err := cfg.LoadKey(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.AdminToken)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: RANCHCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Key, "key", cfg.Key, "Player key (env: RANCHCTL_KEY)")
	rootCmd.PersistentFlags().StringVar(&cfg.KeyFile, "key-file", cfg.KeyFile, "Player key file path (env: RANCHCTL_KEY_FILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminToken, "admin-token", cfg.AdminToken, "Admin bearer token (env: RANCHCTL_ADMIN_TOKEN)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newBootstrapCmd())
	rootCmd.AddCommand(newPlayerCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newTradeCmd())
	rootCmd.AddCommand(newIdentityCmd())
	rootCmd.AddCommand(newAdminCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
