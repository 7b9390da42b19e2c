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
		Use:   "wordduel",
		Short: "Two-player word duel: servers and client in one binary",
		Long: `wordduel runs the word duel services and talks to them.

Serve commands start the session authority, game authority, or identity
service. Client commands log in, request a pairing, submit guesses, and
watch a game's live updates.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.LoadUser(); err != nil {
				return err
			}

			client = NewClient(cfg)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.IdentityURL, "identity-url", cfg.IdentityURL, "Identity service URL (env: WORDDUEL_IDENTITY_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionURL, "session-url", cfg.SessionURL, "Session authority URL (env: WORDDUEL_SESSION_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.GameURL, "game-url", cfg.GameURL, "Game authority URL (env: WORDDUEL_GAME_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.UserID, "user", cfg.UserID, "User id to act as (env: WORDDUEL_USER_ID)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newJoinCmd())
	rootCmd.AddCommand(newRoomCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
