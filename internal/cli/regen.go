package cli

import (
	"github.com/spf13/cobra"

	"github.com/tornlabs/tornspec/internal/config"
)

func RegenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "regen",
		Short: "Fetch the latest spec and interpret it in one pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}
			if err := runFetch(cmd, cfg); err != nil {
				return err
			}
			return runInterpret(cmd, cfg)
		},
	}
}
