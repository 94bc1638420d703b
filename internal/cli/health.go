package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apiClient.Health(cmd.Context()); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(HealthView{Status: "ok"})
			return nil
		},
	}
}
