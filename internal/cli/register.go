package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donothingclub/donothing/internal/model"
)

func newRegisterCmd() *cobra.Command {
	var username string
	var anonymous bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register this device with the service",
		Long: `Register associates this device's identifier with the service. A named
registration (--username) makes the account prize-eligible; --anonymous
creates an unnamed account that still appears on the boards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Local validation, no remote call on violation
			if !anonymous && username == "" {
				return fmt.Errorf("--username is required (or pass --anonymous)")
			}
			if anonymous && username != "" {
				return fmt.Errorf("--username and --anonymous are mutually exclusive")
			}

			ctx := cmd.Context()
			id := ids.GetOrCreate()
			out := NewOutput(cfg.Output)

			// Already registered on this device?
			if existing, err := apiClient.FetchUser(ctx, id); err == nil {
				out.PrintMessage("this device is already registered")
				out.Print(UserView{User: *existing})
				return nil
			} else if !errors.Is(err, model.ErrUserNotFound) {
				return err
			}

			// Best-effort location pre-fill; a miss is fine
			loc, err := apiClient.ResolveLocation(ctx)
			if err != nil {
				logger.Debug("location unavailable", "error", err)
				loc = nil
			}

			user, err := apiClient.RegisterUser(ctx, id, username, !anonymous, loc)
			if err != nil {
				if errors.Is(err, model.ErrUsernameTaken) {
					return fmt.Errorf("username %q is already taken, try another", username)
				}
				return err
			}

			out.Print(UserView{User: *user})
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username to register under")
	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "Register without a username")

	return cmd
}
