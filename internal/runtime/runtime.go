// Package runtime hosts the long-running delivery surfaces: the HTTP batch
// endpoint served in service mode and the S3 notification handler invoked in
// lambda mode. Both feed the same pipeline.
package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/vigilix/trailpipe/internal/controllers/aws"
	"github.com/vigilix/trailpipe/internal/helpers"
	"github.com/vigilix/trailpipe/internal/metrics"
	"github.com/vigilix/trailpipe/internal/models"
	"github.com/vigilix/trailpipe/internal/pipeline"
	"github.com/vigilix/trailpipe/internal/source"
)

// maxBodyBytes caps the accepted request body. CloudTrail delivers digests
// far below this; anything larger is not a CloudTrail document.
const maxBodyBytes = 1 << 20

type Option func(*Runtime)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithController wires the AWS controller used to fetch notified S3 objects.
func WithController(controller *aws.Controller) Option {
	return func(r *Runtime) {
		r.controller = controller
	}
}

type Runtime struct {
	logger     *slog.Logger
	pipeline   *pipeline.Pipeline
	controller *aws.Controller
}

// ingestResponse is the success body of the batch endpoint.
type ingestResponse struct {
	Message string `json:"message"`
	pipeline.Summary
}

// NewRuntime creates a new runtime instance delivering through the given pipeline.
func NewRuntime(p *pipeline.Pipeline, opts ...Option) *Runtime {
	_inst := &Runtime{pipeline: p}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return _inst
}

// HandleS3Event is the Lambda handler for the runtime. Every notification
// record names an object holding one CloudTrail document; a fetch or decode
// failure fails the invocation so the event is redelivered, while delivery
// failures are absorbed by the pipeline.
func (r *Runtime) HandleS3Event(ctx context.Context, notification events.S3Event) error {
	r.logger.Info("received S3 notification", slog.Any("records", len(notification.Records)))

	if r.controller == nil {
		return errors.New("AWS controller not configured")
	}

	for _, record := range notification.Records {
		bucket := record.S3.Bucket.Name
		key := record.S3.Object.Key

		records, err := source.NewS3(r.controller, bucket, key, r.logger).Records(ctx)
		if err != nil {
			return fmt.Errorf("failed to process s3://%s/%s: %w", bucket, key, err)
		}

		summary := r.pipeline.Run(ctx, records)
		r.logger.Info("batch processed", slog.Any("bucket", bucket), slog.Any("key", key),
			slog.Any("records", summary.Records), slog.Any("delivered", summary.Delivered), slog.Any("failed", summary.Failed))
	}
	return nil
}

// ServeHTTP is the HTTP handler for the runtime. It accepts one CloudTrail
// document per POST and processes it synchronously.
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	switch req.Method {
	case http.MethodPost:
		break
	default:
		r.logger.Debug("rejecting HTTP request...", slog.Any("requestor", req.RemoteAddr), "reason", "method not allowed", slog.Any("method", req.Method))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusMethodNotAllowed}, nil, resp)
		return
	}

	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("path", req.URL.Path))

	body, err := io.ReadAll(http.MaxBytesReader(resp, req.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			r.logger.Warn("rejecting oversized document", slog.Any("requestor", req.RemoteAddr))
			helpers.RespondHTTP(models.Response{StatusCode: http.StatusRequestEntityTooLarge}, err, resp)
			return
		}
		r.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusInternalServerError}, err, resp)
		return
	}

	r.logger.Debug("decoding document...")
	records, err := source.DecodeRecords(r.logger, body)
	if err != nil {
		metrics.DocumentsRejected.Inc()
		r.logger.Warn("rejecting undecodable document", slog.Any("error", err))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusBadRequest}, err, resp)
		return
	}

	summary := r.pipeline.Run(req.Context(), records)

	respBody, _ := json.Marshal(ingestResponse{Message: "processed", Summary: summary})
	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(http.StatusOK)
	_, _ = resp.Write(respBody)
}

// HandleHealth reports liveness for the service listener.
func (r *Runtime) HandleHealth(resp http.ResponseWriter, _ *http.Request) {
	helpers.RespondHTTP(models.Response{Body: "ok"}, nil, resp)
}
