package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/donothingclub/donothing/internal/leaderboard"
	"github.com/donothingclub/donothing/internal/model"
	"github.com/donothingclub/donothing/internal/session"
)

func newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start doing nothing",
		Long: `Start runs an accrual session until interrupted. Elapsed time ticks up
once per second and is pushed to the service every ten seconds; the
leaderboards refresh after each push.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			id := ids.GetOrCreate()
			user, err := apiClient.FetchUser(ctx, id)
			if err != nil {
				if errors.Is(err, model.ErrUserNotFound) {
					return fmt.Errorf("this device is not registered yet, run 'donothing register' first")
				}
				return err
			}

			out := NewOutput(cfg.Output)
			coordinator := leaderboard.NewCoordinator(apiClient, logger)
			coordinator.Refresh(ctx, user)

			sess, err := session.New(user, apiClient, clockwork.NewRealClock(), logger,
				session.WithOnPersist(func(total int64) {
					snap := coordinator.Refresh(ctx, user)
					out.PrintStatus(total, rankOf(user.ID, snap.Global))
				}),
			)
			if err != nil {
				return err
			}

			out.PrintMessage(fmt.Sprintf("doing nothing as %s - press Ctrl+C to give up", displayName(user)))

			if err := sess.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			out.Print(SessionSummary{
				Elapsed: sess.Elapsed(),
				Total:   sess.Total(),
			})
			return nil
		},
	}
}

// rankOf finds the 1-based position of a user on a board, 0 if absent
func rankOf(id model.UserID, entries []model.LeaderboardEntry) int {
	for i, e := range entries {
		if e.UserID == id {
			return i + 1
		}
	}
	return 0
}

func displayName(u *model.User) string {
	if u.Username != "" {
		return u.Username
	}
	return "anonymous"
}
