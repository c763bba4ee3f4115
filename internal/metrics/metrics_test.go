package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestDeliveryMetricsIncrement(t *testing.T) {
	before := testutil.ToFloat64(Deliveries.WithLabelValues("test-sink", "ok"))
	Deliveries.WithLabelValues("test-sink", "ok").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Deliveries.WithLabelValues("test-sink", "ok")))
}

func TestClassificationMetricsIncrement(t *testing.T) {
	before := testutil.ToFloat64(RecordsClassified.WithLabelValues("iam", "high"))
	RecordsClassified.WithLabelValues("iam", "high").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RecordsClassified.WithLabelValues("iam", "high")))
}
