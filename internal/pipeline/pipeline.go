// Package pipeline implements the delivery driver: records are classified
// and forwarded to the sink one at a time, in input order, with optional
// pacing between deliveries. A failed delivery never blocks the rest of the
// batch.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vigilix/trailpipe/internal/classifier"
	"github.com/vigilix/trailpipe/internal/helpers"
	"github.com/vigilix/trailpipe/internal/metrics"
	"github.com/vigilix/trailpipe/internal/models"
	"github.com/vigilix/trailpipe/internal/sink"
)

// Summary tallies one pipeline run. Records counts the full batch even when
// a run is cancelled partway through.
type Summary struct {
	Records   int `json:"records"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

// Pipeline drives classification and delivery against a single sink.
type Pipeline struct {
	logger *slog.Logger
	sink   sink.Sink
	delay  time.Duration
}

// Option defines a function type used to configure an instance of the Pipeline struct.
type Option func(*Pipeline)

// New initializes a Pipeline delivering to the given sink.
func New(s sink.Sink, opts ...Option) *Pipeline {
	_inst := &Pipeline{sink: s}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	_inst.logger = _inst.logger.With("sink", s.Name())
	return _inst
}

// Run classifies each record in input order and delivers the resulting
// events. Classification is total, so every record reaches the sink exactly
// once unless the context is cancelled first.
func (p *Pipeline) Run(ctx context.Context, records []models.RawRecord) Summary {
	summary := Summary{Records: len(records)}
	for position, record := range records {
		if ctx.Err() != nil {
			p.logger.Warn("run cancelled", "remaining", len(records)-position)
			break
		}
		event := classifier.Classify(record)
		metrics.RecordsClassified.WithLabelValues(string(event.Category), string(event.Severity)).Inc()
		p.deliver(ctx, position, len(records), event, &summary)
		if !p.pace(ctx) {
			break
		}
	}
	return summary
}

// Forward delivers events that are already normalized, bypassing the
// classifier. The pacing and failure semantics match Run.
func (p *Pipeline) Forward(ctx context.Context, events []models.NormalizedEvent) Summary {
	summary := Summary{Records: len(events)}
	for position, event := range events {
		if ctx.Err() != nil {
			p.logger.Warn("run cancelled", "remaining", len(events)-position)
			break
		}
		p.deliver(ctx, position, len(events), event, &summary)
		if !p.pace(ctx) {
			break
		}
	}
	return summary
}

func (p *Pipeline) deliver(ctx context.Context, position, total int, event models.NormalizedEvent, summary *Summary) {
	logger := p.logger.With(
		"progress", fmt.Sprintf("[%d/%d]", position+1, total),
		"action", event.Action,
		"actor", event.Actor,
		"target", event.Target,
		"severity", event.Severity)

	outcome, err := p.sink.Deliver(ctx, event)
	switch {
	case err != nil:
		summary.Failed++
		metrics.Deliveries.WithLabelValues(p.sink.Name(), "error").Inc()
		logger.Error("delivery failed", "error", err)
	case outcome.StatusCode >= 200 && outcome.StatusCode < 300:
		summary.Delivered++
		metrics.Deliveries.WithLabelValues(p.sink.Name(), "ok").Inc()
		logger.Info("event delivered", "status", outcome.StatusCode)
	default:
		summary.Failed++
		metrics.Deliveries.WithLabelValues(p.sink.Name(), "rejected").Inc()
		logger.Warn("event rejected by collector", "status", outcome.StatusCode, "body", helpers.Truncate(outcome.Body, 256))
	}
}

// pace sleeps the configured delay between deliveries. It reports false when
// the context is cancelled, which ends the run early.
func (p *Pipeline) pace(ctx context.Context) bool {
	if p.delay <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(p.delay):
		return true
	}
}
