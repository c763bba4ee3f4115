package cmd

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vigilix/trailpipe/internal/controllers/aws"
	"github.com/vigilix/trailpipe/internal/pipeline"
	"github.com/vigilix/trailpipe/internal/runtime"
)

func cmdLambda() *cobra.Command {
	cmd := &cobra.Command{
		Use: "lambda",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			logger = logger.With("mode", "lambda")
			logger.Info("Spawning...")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.Debug("creating sink...")
			snk, err := buildSink(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "failed to setup lambda")
			}

			logger.Debug("creating AWS controller...")
			controller, err := aws.NewController(
				aws.WithLogger(logger.With("component", "aws-controller")),
				aws.WithContext(cmd.Context()))
			if err != nil {
				return errors.Wrap(err, "failed to setup lambda")
			}

			logger.Debug("creating runtime...")
			rt := runtime.NewRuntime(
				pipeline.New(snk, pipeline.WithLogger(logger.With("component", "pipeline"))),
				runtime.WithLogger(logger.With("component", "runtime")),
				runtime.WithController(controller))

			logger.Info("lambda starting...")
			lambda.StartWithOptions(rt.HandleS3Event,
				lambda.WithContext(cmd.Context()))

			return nil
		},
	}

	return cmd
}
