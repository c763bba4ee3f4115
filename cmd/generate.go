package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vigilix/trailpipe/internal/config"
	"github.com/vigilix/trailpipe/internal/generator"
	"github.com/vigilix/trailpipe/internal/pipeline"
)

func cmdGenerate() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g", "gen", "fake"},
		PreRunE: func(_ *cobra.Command, _ []string) error {
			logger = logger.With("mode", "generate")
			logger.Info("Spawning...")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.Debug("creating sink...")
			snk, err := buildSink(cmd.Context())
			if err != nil {
				return err
			}

			events := generator.Events(config.Generate.Count)
			logger.Info("sending synthetic events...", "count", len(events))

			p := pipeline.New(snk,
				pipeline.WithLogger(logger.With("component", "pipeline")),
				pipeline.WithDelay(config.Generate.Delay))

			summary := p.Forward(cmd.Context(), events)
			logger.Info("generation complete",
				"records", summary.Records, "delivered", summary.Delivered, "failed", summary.Failed)
			return nil
		},
	}

	cmd.PersistentFlags().IntVarP(&config.Generate.Count, "generate-count", "n", config.Generate.Count, "the number of synthetic events to send")
	bindEnvMap(cmd, genEnvMapDuration)

	return cmd
}
