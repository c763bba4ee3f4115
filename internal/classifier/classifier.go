// Package classifier turns raw CloudTrail records into normalized security
// events. Classification is a pure function over the record: no I/O, no error
// paths, total over arbitrary record shapes.
package classifier

import (
	"strings"
	"time"

	"github.com/vigilix/trailpipe/internal/models"
)

// SeverityRule identifies the branch of the severity decision table that
// fired. The table is order-sensitive and the first matching rule wins.
type SeverityRule string

const (
	// RuleReadOnly matches records flagged readOnly and Get/List/Describe actions.
	RuleReadOnly SeverityRule = "read_only"
	// RuleHighRiskIAM matches IAM actions that alter policies, credentials or users.
	RuleHighRiskIAM SeverityRule = "high_risk_iam"
	// RuleIAMWrite matches IAM management events that are not read-only.
	RuleIAMWrite SeverityRule = "iam_write"
	// RuleDefault is the fallback for everything else.
	RuleDefault SeverityRule = "default"
)

var readOnlyPrefixes = []string{"get", "list", "describe"}

// Classify derives a normalized security event from a raw CloudTrail record.
// Missing or malformed fields degrade to sentinel values rather than errors;
// an empty record yields the all-sentinel medium event. The input record is
// carried unmodified in the event's Raw field.
func Classify(record models.RawRecord) models.NormalizedEvent {
	category := models.CategoryCloudTrail
	if record.String("eventSource", "unknown") == "iam.amazonaws.com" {
		category = models.CategoryIAM
	}

	action := record.String("eventName", models.UnknownAction)
	severity, _ := DeriveSeverity(category, action,
		record.Bool("readOnly", false),
		record.Bool("managementEvent", true))

	return models.NormalizedEvent{
		Source:    models.SourceCloudTrail,
		Category:  category,
		Action:    action,
		Actor:     resolveActor(record),
		Target:    resolveTarget(record),
		Severity:  severity,
		Timestamp: record.String("eventTime", time.Now().UTC().Format(models.TimestampLayout)),
		Raw:       record,
	}
}

// DeriveSeverity walks the ordered severity decision table and reports both
// the severity and the rule that produced it. Rule order matters: a readOnly
// DeleteUser is low, not high.
func DeriveSeverity(category models.Category, action string, readOnly, management bool) (models.Severity, SeverityRule) {
	switch {
	case readOnly || hasReadOnlyPrefix(action):
		return models.SeverityLow, RuleReadOnly
	case category == models.CategoryIAM && highRiskActions[action]:
		return models.SeverityHigh, RuleHighRiskIAM
	case category == models.CategoryIAM && management && !readOnly:
		return models.SeverityMedium, RuleIAMWrite
	default:
		return models.SeverityMedium, RuleDefault
	}
}

func hasReadOnlyPrefix(action string) bool {
	lowered := strings.ToLower(action)
	for _, prefix := range readOnlyPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return true
		}
	}
	return false
}

// resolveActor prefers the caller ARN over the bare user name. Empty values
// fall through just like missing ones.
func resolveActor(record models.RawRecord) string {
	identity := record.Map("userIdentity")
	if arn := identity.String("arn", ""); arn != "" {
		return arn
	}
	if name := identity.String("userName", ""); name != "" {
		return name
	}
	return models.UnknownActor
}

// resolveTarget reads the user name from the request parameters. The
// heuristic is deliberately narrow: it covers IAM user manipulation and makes
// no attempt to resolve targets for other services.
func resolveTarget(record models.RawRecord) string {
	if name := record.Map("requestParameters").String("userName", ""); name != "" {
		return name
	}
	return models.UnknownTarget
}
