package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/vigilix/trailpipe/internal/helpers"
	"github.com/vigilix/trailpipe/internal/models"
)

// KafkaConfig carries the connection parameters for a Kafka record source.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	// IdleTimeout bounds the drain: reading stops once no message arrives within it.
	IdleTimeout time.Duration
}

// Kafka drains a topic into a finite batch. A message may carry a full
// CloudTrail document or a single bare record; undecodable messages are
// skipped with a warning rather than aborting the drain.
type Kafka struct {
	logger *slog.Logger
	reader *kafka.Reader
	idle   time.Duration
}

// NewKafka returns a Source draining the configured topic.
func NewKafka(cfg KafkaConfig, logger *slog.Logger) *Kafka {
	if logger == nil {
		logger = helpers.NewNoopLogger()
	}
	return &Kafka{
		logger: logger.With("source", "kafka", "topic", cfg.Topic),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.Brokers,
			Topic:    cfg.Topic,
			GroupID:  cfg.GroupID,
			MinBytes: 1,
			MaxBytes: 10e6,
		}),
		idle: cfg.IdleTimeout,
	}
}

// Name implements Source.
func (k *Kafka) Name() string {
	return "kafka"
}

// Records implements Source. The topic is read until the idle timeout
// elapses without a message, which closes the batch.
func (k *Kafka) Records(ctx context.Context) ([]models.RawRecord, error) {
	defer func() { _ = k.reader.Close() }()

	records := make([]models.RawRecord, 0)
	for {
		readCtx, cancel := context.WithTimeout(ctx, k.idle)
		message, err := k.reader.ReadMessage(readCtx)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				k.logger.Debug("topic drained", "records", len(records))
				return records, nil
			}
			return nil, errors.Wrap(err, "failed to read from topic")
		}

		decoded, err := DecodeMessage(k.logger, message.Value)
		if err != nil {
			// A poisoned topic would otherwise flood the log.
			helpers.OnceAMinute.Do(func() {
				k.logger.Warn("skipping undecodable message", "offset", message.Offset, "error", err)
			})
			continue
		}
		records = append(records, decoded...)
	}
}
