package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tornlabs/tornspec/internal/config"
	"github.com/tornlabs/tornspec/internal/fetch"
)

func FetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the latest OpenAPI spec",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}
			return runFetch(cmd, cfg)
		},
	}
}

func runFetch(cmd *cobra.Command, cfg *config.Config) error {
	client := fetch.New(&fetch.Options{
		URL:       cfg.Fetch.URL,
		UserAgent: cfg.Fetch.UserAgent,
		Retries:   cfg.Fetch.Retries,
		Timeout:   cfg.Fetch.Timeout,
	})

	data, err := client.Fetch(cmd.Context())
	if err != nil {
		return err
	}
	if err := fetch.WriteSpec(cfg.Spec, data); err != nil {
		return fmt.Errorf("writing spec: %w", err)
	}

	cmd.PrintErrf("Written: %s\n", cfg.Spec)
	return nil
}
