package source

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/vigilix/trailpipe/internal/controllers/aws"
	"github.com/vigilix/trailpipe/internal/helpers"
	"github.com/vigilix/trailpipe/internal/models"
)

// S3 fetches one CloudTrail log object through the AWS controller. Object
// keys arriving URL-encoded, as they do in S3 event notifications, are
// unescaped before the lookup.
type S3 struct {
	logger     *slog.Logger
	controller *aws.Controller
	bucket     string
	key        string
}

// NewS3 returns a Source reading the object stored under bucket and key.
func NewS3(controller *aws.Controller, bucket, key string, logger *slog.Logger) *S3 {
	if logger == nil {
		logger = helpers.NewNoopLogger()
	}
	return &S3{
		logger:     logger.With("source", "s3"),
		controller: controller,
		bucket:     bucket,
		key:        key,
	}
}

// Name implements Source.
func (s *S3) Name() string {
	return "s3"
}

// Records implements Source.
func (s *S3) Records(_ context.Context) ([]models.RawRecord, error) {
	key := s.key
	if unescaped, err := url.QueryUnescape(key); err == nil {
		key = unescaped
	}
	body, err := s.controller.GetS3Object(s.bucket, key)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(s.logger, body)
}
