package source

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/vigilix/trailpipe/internal/models"
)

var gzipMagic = []byte{0x1f, 0x8b}

// DecodeRecords parses a CloudTrail document into its records. Two shapes
// are accepted: an object with a top-level "Records" array, and a bare array
// of records. Any other shape is an error. Gzipped input is inflated first,
// matching how CloudTrail delivers log objects.
func DecodeRecords(logger *slog.Logger, data []byte) ([]models.RawRecord, error) {
	data, err := inflate(data)
	if err != nil {
		return nil, err
	}
	var document any
	if err = json.Unmarshal(data, &document); err != nil {
		return nil, errors.Wrap(err, "malformed CloudTrail document")
	}
	return documentRecords(logger, document)
}

// DecodeMessage parses a single queue message. The document shapes accepted
// by DecodeRecords pass through unchanged; a bare record object is treated as
// a batch of one, since queue messages carry records rather than files.
func DecodeMessage(logger *slog.Logger, data []byte) ([]models.RawRecord, error) {
	data, err := inflate(data)
	if err != nil {
		return nil, err
	}
	var document any
	if err = json.Unmarshal(data, &document); err != nil {
		return nil, errors.Wrap(err, "malformed record message")
	}
	if record, ok := document.(map[string]any); ok {
		if _, wrapped := record["Records"]; !wrapped {
			return []models.RawRecord{record}, nil
		}
	}
	return documentRecords(logger, document)
}

func documentRecords(logger *slog.Logger, document any) ([]models.RawRecord, error) {
	var entries []any
	switch doc := document.(type) {
	case map[string]any:
		wrapped, ok := doc["Records"].([]any)
		if !ok {
			return nil, errors.New("unexpected CloudTrail JSON structure")
		}
		entries = wrapped
	case []any:
		entries = doc
	default:
		return nil, errors.New("unexpected CloudTrail JSON structure")
	}

	records := make([]models.RawRecord, 0, len(entries))
	for position, entry := range entries {
		record, ok := entry.(map[string]any)
		if !ok {
			logger.Warn("skipping non-object record", "position", position)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func inflate(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, gzipMagic) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to open gzipped document")
	}
	defer func() { _ = zr.Close() }()
	inflated, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to inflate gzipped document")
	}
	return inflated, nil
}
