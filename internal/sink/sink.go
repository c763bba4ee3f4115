// Package sink defines the delivery boundary of the pipeline: a destination
// accepting normalized events one at a time and reporting the collector's
// verdict without interpreting it.
package sink

import (
	"context"

	"github.com/vigilix/trailpipe/internal/models"
)

// Outcome reports what the collector said about a single delivery. The
// status code and body are recorded verbatim: a non-2xx status travels here,
// not as an error.
type Outcome struct {
	StatusCode int
	Body       string
}

// Sink delivers normalized events to a destination. Implementations return
// an error only for transport or encoding failures; collector-level
// rejections are part of the Outcome.
type Sink interface {
	Deliver(ctx context.Context, event models.NormalizedEvent) (Outcome, error)
	Name() string
}
