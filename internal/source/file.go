package source

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/vigilix/trailpipe/internal/helpers"
	"github.com/vigilix/trailpipe/internal/models"
)

// File reads one CloudTrail document from the local filesystem.
type File struct {
	logger *slog.Logger
	path   string
}

// NewFile returns a Source reading the document at the given path.
func NewFile(path string, logger *slog.Logger) *File {
	if logger == nil {
		logger = helpers.NewNoopLogger()
	}
	return &File{logger: logger.With("source", "file"), path: path}
}

// Name implements Source.
func (f *File) Name() string {
	return "file"
}

// Records implements Source.
func (f *File) Records(_ context.Context) ([]models.RawRecord, error) {
	f.logger.With("path", f.path).Debug("loading CloudTrail records...")
	content, err := os.ReadFile(filepath.Clean(f.path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", f.path)
	}
	return DecodeRecords(f.logger, content)
}
