package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigilix/trailpipe/internal/models"
)

func TestEventsCount(t *testing.T) {
	assert.Len(t, Events(5), 5)
	assert.Len(t, Events(1), 1)
	assert.Nil(t, Events(0))
	assert.Nil(t, Events(-3))
}

func TestEventShape(t *testing.T) {
	event := Event()

	assert.Equal(t, models.SourceCloudTrail, event.Source)
	assert.Equal(t, models.CategoryIAM, event.Category)
	assert.Contains(t, actions, event.Action)
	assert.Contains(t, actors, event.Actor)
	assert.Contains(t, targets, event.Target)
	assert.Contains(t, []models.Severity{models.SeverityLow, models.SeverityMedium, models.SeverityHigh}, event.Severity)

	_, err := time.Parse(models.TimestampLayout, event.Timestamp)
	assert.NoError(t, err)

	require.NotNil(t, event.Raw)
	assert.Equal(t, "fake_iam_event", event.Raw["example"])
	id, ok := event.Raw["event_id"].(int)
	require.True(t, ok)
	assert.GreaterOrEqual(t, id, 100000)
	assert.LessOrEqual(t, id, 999999)
}

func TestEventEscalation(t *testing.T) {
	sawEscalation := false
	for i := 0; i < 500; i++ {
		event := Event()
		if event.Actor == "unknown_user" || event.Action == "DeleteUser" || event.Action == "CreateAccessKey" {
			sawEscalation = true
			assert.Equal(t, models.SeverityHigh, event.Severity,
				"action %s by %s must escalate", event.Action, event.Actor)
		}
	}
	assert.True(t, sawEscalation, "500 draws should hit at least one escalation case")
}

func TestWeightedSeverityCoversAllTiers(t *testing.T) {
	seen := map[models.Severity]bool{}
	for i := 0; i < 500; i++ {
		seen[weightedSeverity()] = true
	}
	assert.True(t, seen[models.SeverityLow])
	assert.True(t, seen[models.SeverityMedium])
	assert.True(t, seen[models.SeverityHigh])
}
