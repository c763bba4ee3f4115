package cmd

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/vigilix/trailpipe/internal/config"
	"github.com/vigilix/trailpipe/internal/controllers/aws"
	"github.com/vigilix/trailpipe/internal/helpers"
	"github.com/vigilix/trailpipe/internal/sink"
	"github.com/vigilix/trailpipe/internal/sink/hec"
	"github.com/vigilix/trailpipe/internal/source"
)

// buildSink assembles the HEC client from collector configuration, fetching
// the token from SSM first when the auth mode demands it.
func buildSink(ctx context.Context) (sink.Sink, error) {
	token := config.Collector.Token
	switch config.Collector.AuthMode {
	case config.AuthModeToken:
		break
	case config.AuthModeSSM:
		logger.Debug("fetching collector token from SSM...")
		controller, err := aws.NewController(
			aws.WithLogger(logger.With("component", "aws-controller")),
			aws.WithContext(ctx))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create AWS controller")
		}
		fetched, err := controller.GetSecret(config.Collector.SSMKey, true)
		if err != nil {
			return nil, errors.Wrap(err, "failed to fetch collector token")
		}
		token = helpers.String(fetched)
	default:
		return nil, fmt.Errorf("unsupported auth mode: %s", config.Collector.AuthMode)
	}

	client, err := hec.NewClient(
		hec.WithLogger(logger.With("component", "hec")),
		hec.WithURL(config.Collector.URL),
		hec.WithToken(token),
		hec.WithIndex(config.Collector.Index),
		hec.WithSourceType(config.Collector.SourceType),
		hec.WithTimeout(config.Collector.Timeout),
		hec.WithInsecureSkipVerify(config.Collector.InsecureSkipVerify))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create collector client")
	}
	return client, nil
}

// buildSource resolves the ingest input into a record source. Bare values
// are local file paths; s3://bucket/key and kafka://topic select the
// matching scheme.
func buildSource(ctx context.Context, input string) (source.Source, error) {
	sourceLogger := logger.With("component", "source")

	switch {
	case strings.HasPrefix(input, "s3://"):
		parsed, err := url.Parse(input)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid input %s", input)
		}
		bucket, key := parsed.Host, strings.TrimPrefix(parsed.Path, "/")
		if bucket == "" || key == "" {
			return nil, fmt.Errorf("invalid input %s: expected s3://bucket/key", input)
		}
		controller, err := aws.NewController(
			aws.WithLogger(logger.With("component", "aws-controller")),
			aws.WithContext(ctx))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create AWS controller")
		}
		return source.NewS3(controller, bucket, key, sourceLogger), nil

	case strings.HasPrefix(input, "kafka://"):
		parsed, err := url.Parse(input)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid input %s", input)
		}
		if parsed.Host == "" {
			return nil, fmt.Errorf("invalid input %s: expected kafka://topic", input)
		}
		return source.NewKafka(source.KafkaConfig{
			Brokers:     config.Ingest.Kafka.Brokers,
			Topic:       parsed.Host,
			GroupID:     config.Ingest.Kafka.GroupID,
			IdleTimeout: config.Ingest.Kafka.IdleTimeout,
		}, sourceLogger), nil

	default:
		return source.NewFile(input, sourceLogger), nil
	}
}
