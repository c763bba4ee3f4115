// Package models provides the core data structures of the pipeline: the raw
// CloudTrail record, the normalized security event derived from it, and the
// HTTP envelope used by the service surface.
package models

// Severity is the classified risk tier of a normalized event.
type Severity string

// The three severity tiers. Every classified event carries exactly one.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Category partitions events by originating service.
type Category string

const (
	// CategoryIAM marks events originating from iam.amazonaws.com.
	CategoryIAM Category = "iam"
	// CategoryCloudTrail is the generic bucket for every other event source.
	CategoryCloudTrail Category = "cloudtrail"
)

// SourceCloudTrail is stamped on every event classified from a CloudTrail record.
const SourceCloudTrail = "aws_cloudtrail"

// TimestampLayout is the canonical format for the Timestamp field when the
// pipeline has to synthesize one itself. CloudTrail's own eventTime values
// pass through untouched.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Sentinel values for fields no resolution heuristic could populate.
const (
	UnknownAction = "UnknownEvent"
	UnknownActor  = "unknown_actor"
	UnknownTarget = "unknown_target"
)

// NormalizedEvent is the flattened security event emitted downstream. The
// JSON field names are wire contract: they appear verbatim inside the HEC
// payload's "event" member.
type NormalizedEvent struct {
	Source    string    `json:"source"`
	Category  Category  `json:"category"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Target    string    `json:"target"`
	Severity  Severity  `json:"severity"`
	Timestamp string    `json:"timestamp"`
	Raw       RawRecord `json:"raw"`
}
