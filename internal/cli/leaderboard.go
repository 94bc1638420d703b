package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donothingclub/donothing/internal/leaderboard"
	"github.com/donothingclub/donothing/internal/model"
)

func newLeaderboardCmd() *cobra.Command {
	var scope string

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the rankings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if scope != model.ScopeGlobal && scope != model.ScopeCountry {
				return fmt.Errorf("--scope must be %q or %q", model.ScopeGlobal, model.ScopeCountry)
			}

			ctx := cmd.Context()

			// The country view needs the registered user's country code;
			// without an account it is simply empty.
			var user *model.User
			if u, err := apiClient.FetchUser(ctx, ids.GetOrCreate()); err == nil {
				user = u
			} else if !errors.Is(err, model.ErrUserNotFound) {
				return err
			}

			coordinator := leaderboard.NewCoordinator(apiClient, logger)
			snap := coordinator.Refresh(ctx, user)

			entries := snap.Global
			if scope == model.ScopeCountry {
				entries = snap.Country
			}

			out := NewOutput(cfg.Output)
			out.Print(LeaderboardView{Scope: scope, Entries: entries})
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", model.ScopeGlobal, "Board scope: global or country")

	return cmd
}
