package cli

import (
	"github.com/spf13/cobra"

	"github.com/tornlabs/tornspec/internal/config"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "tornspec",
		Short:   "tornspec - Torn OpenAPI spec interpreter",
		Version: "1.0.0",

		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	config.BindCommonFlags(root)

	root.AddCommand(
		FetchCommand(),
		InterpretCommand(),
		RegenCommand(),
		SchemaCommand(),
	)

	return root
}
