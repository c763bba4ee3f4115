package cmd

import (
	"time"

	"github.com/vigilix/trailpipe/internal/config"
	"github.com/vigilix/trailpipe/internal/helpers"
)

var ingestEnvMapString = map[*string]boundEnvVar[string]{
	&config.Ingest.Input: {
		Name:        "input",
		Description: "The CloudTrail input to ingest: a local file path, s3://bucket/key or kafka://topic",
		Short:       helpers.Ptr("i"),
	},
	&config.Ingest.Kafka.GroupID: {
		Name:        "kafka-group-id",
		Description: "The consumer group id used when draining a Kafka topic",
	},
}

var ingestEnvMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Ingest.Delay: {
		Name:        "ingest-delay",
		Description: "The pause between consecutive deliveries",
	},
	&config.Ingest.Kafka.IdleTimeout: {
		Name:        "kafka-idle-timeout",
		Description: "How long to wait for further Kafka messages before treating the topic as drained",
	},
}

var ingestEnvMapStringSlice = map[*[]string]boundEnvVar[[]string]{
	&config.Ingest.Kafka.Brokers: {
		Name:        "kafka-brokers",
		Description: "The Kafka bootstrap brokers",
	},
}
