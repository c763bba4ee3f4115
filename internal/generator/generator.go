// Package generator fabricates IAM-style security events for smoke testing a
// live collector without real CloudTrail input. Generated events skip the
// classifier entirely and are forwarded as-is.
package generator

import (
	"math/rand/v2"
	"time"

	"github.com/vigilix/trailpipe/internal/models"
)

var (
	actions = []string{
		"CreateUser",
		"DeleteUser",
		"AttachUserPolicy",
		"DetachUserPolicy",
		"CreateAccessKey",
		"DeleteAccessKey",
		"UpdateLoginProfile",
	}

	actors = []string{
		"admin_user",
		"automation_role",
		"security_engineer",
		"dev_user1",
		"dev_user2",
		"unknown_user",
	}

	targets = []string{
		"new_user123",
		"temporary_contractor",
		"service_account_api",
		"prod_admin",
		"test_user",
	}
)

// severityWeights biases drawn events towards the quiet end of the scale.
var severityWeights = []struct {
	severity models.Severity
	weight   int
}{
	{models.SeverityLow, 50},
	{models.SeverityMedium, 30},
	{models.SeverityHigh, 20},
}

// Event fabricates a single synthetic IAM event. Unattributed actors and
// credential or user deletion always escalate to high severity regardless of
// the weighted draw.
func Event() models.NormalizedEvent {
	action := actions[rand.IntN(len(actions))]
	actor := actors[rand.IntN(len(actors))]

	severity := weightedSeverity()
	if actor == "unknown_user" || action == "DeleteUser" || action == "CreateAccessKey" {
		severity = models.SeverityHigh
	}

	return models.NormalizedEvent{
		Source:    models.SourceCloudTrail,
		Category:  models.CategoryIAM,
		Action:    action,
		Actor:     actor,
		Target:    targets[rand.IntN(len(targets))],
		Severity:  severity,
		Timestamp: time.Now().UTC().Format(models.TimestampLayout),
		Raw: models.RawRecord{
			"example":  "fake_iam_event",
			"event_id": rand.IntN(900000) + 100000,
		},
	}
}

// Events fabricates count synthetic events.
func Events(count int) []models.NormalizedEvent {
	if count < 1 {
		return nil
	}
	events := make([]models.NormalizedEvent, 0, count)
	for i := 0; i < count; i++ {
		events = append(events, Event())
	}
	return events
}

func weightedSeverity() models.Severity {
	total := 0
	for _, candidate := range severityWeights {
		total += candidate.weight
	}
	draw := rand.IntN(total)
	for _, candidate := range severityWeights {
		if draw < candidate.weight {
			return candidate.severity
		}
		draw -= candidate.weight
	}
	return severityWeights[len(severityWeights)-1].severity
}
