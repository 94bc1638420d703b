package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/donothingclub/donothing/internal/client"
	"github.com/donothingclub/donothing/internal/dependencies/random"
	"github.com/donothingclub/donothing/internal/identity"
)

var (
	cfg       *Config
	apiClient *client.Client
	ids       *identity.Store
	logger    *slog.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "donothing",
		Short: "CLI for the do-nothing timer and leaderboard",
		Long: `donothing tracks how long you manage to do absolutely nothing and ranks
you against everyone else doing the same.

Register once per device, then 'donothing start' and walk away. Accrued
time is pushed to the service periodically while the session runs.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger = newLogger(cfg.Verbose)
			apiClient = client.NewClient(cfg.ServerURL)
			ids = identity.NewStore(cfg.IdentityFile, clockwork.NewRealClock(), random.New(), logger)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: DONOTHING_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.IdentityFile, "identity-file", cfg.IdentityFile, "Identity file path (env: DONOTHING_IDENTITY_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newStartCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newMeCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
