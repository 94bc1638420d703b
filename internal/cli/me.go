package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donothingclub/donothing/internal/model"
)

func newMeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show this device's account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := apiClient.FetchUser(cmd.Context(), ids.GetOrCreate())
			if err != nil {
				if errors.Is(err, model.ErrUserNotFound) {
					return fmt.Errorf("this device is not registered yet, run 'donothing register' first")
				}
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(UserView{User: *user})
			return nil
		},
	}
}
