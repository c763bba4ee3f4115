// Package source provides the record sources feeding the pipeline: local
// files, S3 objects and Kafka topics, all converging on a single decode path.
package source

import (
	"context"

	"github.com/vigilix/trailpipe/internal/models"
)

// Source yields a finite batch of raw CloudTrail records. Implementations
// resolve their input completely before the pipeline starts delivering.
type Source interface {
	Records(ctx context.Context) ([]models.RawRecord, error)
	Name() string
}
