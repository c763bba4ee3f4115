package pipeline

import (
	"log/slog"
	"time"
)

// WithLogger configures the logger of the Pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithDelay configures the pause between consecutive deliveries.
func WithDelay(delay time.Duration) Option {
	return func(p *Pipeline) {
		p.delay = delay
	}
}
