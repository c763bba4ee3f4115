package hec_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vigilix/trailpipe/internal/models"
	"github.com/vigilix/trailpipe/internal/sink/hec"
)

func testEvent() models.NormalizedEvent {
	return models.NormalizedEvent{
		Source:    models.SourceCloudTrail,
		Category:  models.CategoryIAM,
		Action:    "AttachUserPolicy",
		Actor:     "arn:aws:iam::123456789012:user/alice",
		Target:    "bob",
		Severity:  models.SeverityHigh,
		Timestamp: "2024-06-01T12:34:56Z",
		Raw:       models.RawRecord{"eventName": "AttachUserPolicy"},
	}
}

func TestNewClientValidation(t *testing.T) {
	testCases := []struct {
		Name          string
		Opts          []hec.Option
		ExpectedError string
	}{
		{
			Name:          "missing_url",
			Opts:          []hec.Option{hec.WithToken("secret")},
			ExpectedError: "collector URL not configured",
		},
		{
			Name:          "missing_token",
			Opts:          []hec.Option{hec.WithURL("https://collector:8088/services/collector/event")},
			ExpectedError: "collector token not configured",
		},
		{
			Name: "url_and_token_present",
			Opts: []hec.Option{
				hec.WithURL("https://collector:8088/services/collector/event"),
				hec.WithToken("secret"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			client, err := hec.NewClient(tc.Opts...)
			if tc.ExpectedError != "" {
				assert.Nil(t, client)
				assert.EqualError(t, err, tc.ExpectedError)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

func TestDeliverWireContract(t *testing.T) {
	var (
		captured     map[string]any
		capturedPath string
		headers      http.Header
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		capturedPath = r.URL.Path
		headers = r.Header.Clone()
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"text":"Success","code":0}`))
	}))
	defer server.Close()

	client, err := hec.NewClient(
		hec.WithURL(server.URL+"/services/collector/event"),
		hec.WithToken("test-token"),
		hec.WithIndex("cloud_security"),
		hec.WithSourceType("json"),
	)
	require.NoError(t, err)

	before := time.Now().Unix()
	outcome, err := client.Deliver(context.Background(), testEvent())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, outcome.StatusCode)
	assert.Equal(t, `{"text":"Success","code":0}`, outcome.Body)
	assert.Equal(t, "/services/collector/event", capturedPath)
	assert.Equal(t, "Splunk test-token", headers.Get("Authorization"))
	assert.Equal(t, "application/json", headers.Get("Content-Type"))

	assert.GreaterOrEqual(t, int64(captured["time"].(float64)), before)
	assert.Equal(t, "cloud_security", captured["index"])
	assert.Equal(t, "json", captured["sourcetype"])

	event, ok := captured["event"].(map[string]any)
	require.True(t, ok, "payload must nest the normalized event under 'event'")
	assert.Equal(t, "aws_cloudtrail", event["source"])
	assert.Equal(t, "iam", event["category"])
	assert.Equal(t, "AttachUserPolicy", event["action"])
	assert.Equal(t, "arn:aws:iam::123456789012:user/alice", event["actor"])
	assert.Equal(t, "bob", event["target"])
	assert.Equal(t, "high", event["severity"])
	assert.Equal(t, "2024-06-01T12:34:56Z", event["timestamp"])
	assert.Equal(t, map[string]any{"eventName": "AttachUserPolicy"}, event["raw"])
}

func TestDeliverOmitsEmptyIndexAndSourceType(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := hec.NewClient(
		hec.WithURL(server.URL),
		hec.WithToken("test-token"),
	)
	require.NoError(t, err)

	_, err = client.Deliver(context.Background(), testEvent())
	require.NoError(t, err)

	assert.NotContains(t, captured, "index")
	assert.NotContains(t, captured, "sourcetype")
	assert.Contains(t, captured, "time")
	assert.Contains(t, captured, "event")
}

func TestDeliverOutcomePassthrough(t *testing.T) {
	testCases := []struct {
		Name       string
		StatusCode int
		Body       string
	}{
		{
			Name:       "success",
			StatusCode: http.StatusOK,
			Body:       `{"text":"Success","code":0}`,
		},
		{
			Name:       "invalid_token",
			StatusCode: http.StatusForbidden,
			Body:       `{"text":"Invalid token","code":4}`,
		},
		{
			Name:       "server_busy",
			StatusCode: http.StatusServiceUnavailable,
			Body:       `{"text":"Server is busy","code":9}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.StatusCode)
				_, _ = w.Write([]byte(tc.Body))
			}))
			defer server.Close()

			client, err := hec.NewClient(hec.WithURL(server.URL), hec.WithToken("test-token"))
			require.NoError(t, err)

			outcome, err := client.Deliver(context.Background(), testEvent())

			// Collector rejections are outcomes, never errors.
			assert.NoError(t, err)
			assert.Equal(t, tc.StatusCode, outcome.StatusCode)
			assert.Equal(t, tc.Body, outcome.Body)
		})
	}
}

func TestDeliverTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	client, err := hec.NewClient(hec.WithURL(server.URL), hec.WithToken("test-token"))
	require.NoError(t, err)
	server.Close()

	outcome, err := client.Deliver(context.Background(), testEvent())

	assert.Error(t, err)
	assert.Zero(t, outcome)
}

func TestDeliverTLSVerification(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	// Verification is on by default: the self-signed certificate must be rejected.
	strict, err := hec.NewClient(hec.WithURL(server.URL), hec.WithToken("test-token"))
	require.NoError(t, err)
	_, err = strict.Deliver(context.Background(), testEvent())
	assert.Error(t, err)

	// The explicit opt-out accepts it.
	insecure, err := hec.NewClient(
		hec.WithURL(server.URL),
		hec.WithToken("test-token"),
		hec.WithInsecureSkipVerify(true),
	)
	require.NoError(t, err)
	outcome, err := insecure.Deliver(context.Background(), testEvent())
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, outcome.StatusCode)
}
