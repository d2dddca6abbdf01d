package cli

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tornlabs/tornspec/internal/artifact"
	"github.com/tornlabs/tornspec/internal/config"
	"github.com/tornlabs/tornspec/internal/interp"
	"github.com/tornlabs/tornspec/internal/loader"
	"github.com/tornlabs/tornspec/internal/store"
)

func InterpretCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interpret",
		Short: "Interpret the spec into endpoint, pagination and schema maps",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}
			return runInterpret(cmd, cfg)
		},
	}
}

func runInterpret(cmd *cobra.Command, cfg *config.Config) error {
	result, err := loader.LoadFile(cfg.Spec, &loader.Options{Validate: cfg.Validate})
	if err != nil {
		return fmt.Errorf("loading spec: %w", err)
	}
	for _, w := range result.Warnings {
		cmd.PrintErrf("Warning: %s\n", w)
	}

	res := interp.Interpret(result.Document)

	if err := artifact.WriteResult(cfg.OutputDir, res); err != nil {
		return err
	}

	cmd.PrintErrf("Loaded OpenAPI %s\n", result.Version)
	cmd.PrintErrf("  Tags: %d, Endpoints: %d\n", len(res.SpecMap), res.SpecMap.EndpointCount())
	cmd.PrintErrf("  Paginated endpoints: %d\n", len(res.PaginationMap))
	cmd.PrintErrf("  Schemas: %d\n", len(res.SchemaMap))

	if cfg.Store != "" {
		if err := recordRun(cfg, result.RawData, res); err != nil {
			return fmt.Errorf("recording run: %w", err)
		}
	}
	return nil
}

func recordRun(cfg *config.Config, rawSpec []byte, res *interp.Result) error {
	st, err := store.NewSQLiteStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	sum := sha256.Sum256(rawSpec)
	run, err := st.CreateRun(cfg.Spec, hex.EncodeToString(sum[:]))
	if err != nil {
		return err
	}

	artifacts := map[string]any{
		artifact.SpecMapFile:       res.SpecMap,
		artifact.PaginationMapFile: res.PaginationMap,
		artifact.SchemaMapFile:     res.SchemaMap,
	}
	for name, v := range artifacts {
		data, err := artifact.Marshal(v)
		if err != nil {
			return err
		}
		if err := st.SaveArtifact(run.ID, name, data); err != nil {
			return err
		}
	}

	return st.CompleteRun(run.ID, res.SpecMap.EndpointCount(), len(res.PaginationMap), len(res.SchemaMap))
}
