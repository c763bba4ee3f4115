package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vigilix/trailpipe/internal/config"
	"github.com/vigilix/trailpipe/internal/pipeline"
)

func cmdIngest() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ingest [input]",
		Aliases: []string{"i", "run"},
		Args:    cobra.MaximumNArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			logger = logger.With("mode", "ingest")
			logger.Info("Spawning...")

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				config.Ingest.Input = args[0]
			}
			if config.Ingest.Input == "" {
				return errors.New("no input specified")
			}

			logger.Debug("creating sink...")
			snk, err := buildSink(cmd.Context())
			if err != nil {
				return err
			}

			logger.Debug("creating source...")
			src, err := buildSource(cmd.Context(), config.Ingest.Input)
			if err != nil {
				return err
			}

			records, err := src.Records(cmd.Context())
			if err != nil {
				return err
			}

			p := pipeline.New(snk,
				pipeline.WithLogger(logger.With("component", "pipeline")),
				pipeline.WithDelay(config.Ingest.Delay))

			summary := p.Run(cmd.Context(), records)
			logger.Info("ingest complete", "source", src.Name(),
				"records", summary.Records, "delivered", summary.Delivered, "failed", summary.Failed)
			return nil
		},
	}

	bindEnvMap(cmd, ingestEnvMapString)
	bindEnvMap(cmd, ingestEnvMapDuration)
	bindEnvMap(cmd, ingestEnvMapStringSlice)

	return cmd
}
