package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tornlabs/tornspec/internal/artifact"
	"github.com/tornlabs/tornspec/internal/config"
	"github.com/tornlabs/tornspec/internal/interp"
	"github.com/tornlabs/tornspec/internal/loader"
)

func SchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <name|ref>",
		Short: "Print one schema with every reference fully expanded",
		Long: "Resolves a named component schema (or any #/ reference) with all\n" +
			"nested references substituted. Circular references are cut off with a\n" +
			"_circular marker instead of expanding forever.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}

			result, err := loader.LoadFile(cfg.Spec, nil)
			if err != nil {
				return fmt.Errorf("loading spec: %w", err)
			}

			ref := args[0]
			if !strings.HasPrefix(ref, "#/") {
				ref = "#/components/schemas/" + ref
			}

			node, ok := interp.Resolve(result.Document, ref)
			if !ok {
				return fmt.Errorf("schema not found: %s", ref)
			}

			expanded := interp.ResolveDeep(result.Document, node)
			data, err := artifact.Marshal(expanded)
			if err != nil {
				return fmt.Errorf("encoding schema: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
