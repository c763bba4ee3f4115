// Package hec implements the sink.Sink interface over the Splunk HTTP Event
// Collector wire contract: one POST per event, Splunk token authentication,
// and an uninterpreted response.
package hec

import (
	"context"
	"crypto/tls"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/vigilix/trailpipe/internal/helpers"
	"github.com/vigilix/trailpipe/internal/models"
	"github.com/vigilix/trailpipe/internal/sink"
)

// payload is the HEC event envelope. Index and SourceType are omitted when
// configured empty; Time is the send time in Unix seconds.
type payload struct {
	Time       int64                  `json:"time"`
	Index      string                 `json:"index,omitempty"`
	SourceType string                 `json:"sourcetype,omitempty"`
	Event      models.NormalizedEvent `json:"event"`
}

// Client delivers normalized events to a Splunk HEC endpoint.
type Client struct {
	logger *slog.Logger

	url                string
	token              string
	index              string
	sourceType         string
	timeout            time.Duration
	insecureSkipVerify bool

	rest *resty.Client
}

// Option defines a function type used to configure an instance of the Client struct.
type Option func(*Client)

// NewClient initializes a Client with customizable options. The collector URL
// and token are required; their absence is a configuration error surfaced
// here, before any record is read.
func NewClient(opts ...Option) (*Client, error) {
	_inst := &Client{timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	_inst.logger = _inst.logger.With("sink", _inst.Name())

	if _inst.url == "" {
		return nil, errors.New("collector URL not configured")
	}
	if _inst.token == "" {
		return nil, errors.New("collector token not configured")
	}

	_inst.rest = resty.New().
		SetAuthScheme("Splunk").
		SetAuthToken(_inst.token).
		SetHeader("Content-Type", "application/json").
		SetTimeout(_inst.timeout)
	if _inst.insecureSkipVerify {
		_inst.logger.Warn("TLS certificate verification disabled")
		_inst.rest.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // explicit opt-in for lab collectors
	}

	return _inst, nil
}

// Name implements sink.Sink.
func (c *Client) Name() string {
	return "splunk-hec"
}

// Deliver posts a single normalized event to the collector. The returned
// Outcome carries the collector's status code and body verbatim; an error is
// returned only when the request itself could not be made.
func (c *Client) Deliver(ctx context.Context, event models.NormalizedEvent) (sink.Outcome, error) {
	c.logger.Debug("delivering event...", "action", event.Action, "severity", event.Severity)

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(payload{
			Time:       time.Now().Unix(),
			Index:      c.index,
			SourceType: c.sourceType,
			Event:      event,
		}).
		Post(c.url)
	if err != nil {
		return sink.Outcome{}, errors.Wrap(err, "failed to deliver event")
	}

	return sink.Outcome{StatusCode: resp.StatusCode(), Body: resp.String()}, nil
}
