package cmd

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collectorStub accepts HEC deliveries and records the decoded envelopes.
type collectorStub struct {
	mu       sync.Mutex
	payloads []map[string]any
}

func (c *collectorStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		_ = json.NewDecoder(r.Body).Decode(&payload)
		c.mu.Lock()
		c.payloads = append(c.payloads, payload)
		c.mu.Unlock()
		_, _ = w.Write([]byte(`{"text":"Success","code":0}`))
	}
}

func writeDocument(t *testing.T, document string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))
	return path
}

func TestIngestCommandEndToEnd(t *testing.T) {
	stub := &collectorStub{}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	input := writeDocument(t, `{"Records":[
		{"eventSource":"iam.amazonaws.com","eventName":"AttachUserPolicy",
		 "userIdentity":{"arn":"arn:aws:iam::123456789012:user/mallory"},
		 "requestParameters":{"userName":"victim"}},
		{"eventSource":"s3.amazonaws.com","eventName":"GetObject","readOnly":true}]}`)

	cmd := New()
	cmd.SetArgs([]string{"ingest", input,
		"--collector-url", server.URL,
		"--collector-token", "test-token",
		"--ingest-delay", "0s"})
	require.NoError(t, cmd.Execute())

	require.Len(t, stub.payloads, 2)

	first := stub.payloads[0]
	assert.Equal(t, "cloud_security", first["index"])
	assert.Equal(t, "json", first["sourcetype"])
	event, ok := first["event"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "aws_cloudtrail", event["source"])
	assert.Equal(t, "iam", event["category"])
	assert.Equal(t, "AttachUserPolicy", event["action"])
	assert.Equal(t, "arn:aws:iam::123456789012:user/mallory", event["actor"])
	assert.Equal(t, "victim", event["target"])
	assert.Equal(t, "high", event["severity"])

	second, ok := stub.payloads[1]["event"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "cloudtrail", second["category"])
	assert.Equal(t, "low", second["severity"])
}

func TestRootDispatchesDefaultMode(t *testing.T) {
	stub := &collectorStub{}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	input := writeDocument(t, `[{"eventSource":"iam.amazonaws.com","eventName":"ListUsers"}]`)

	cmd := New()
	cmd.SetArgs([]string{input,
		"--collector-url", server.URL,
		"--collector-token", "test-token"})
	require.NoError(t, cmd.Execute())

	require.Len(t, stub.payloads, 1)
	event, ok := stub.payloads[0]["event"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ListUsers", event["action"])
	assert.Equal(t, "low", event["severity"])
}

func TestGenerateCommandEndToEnd(t *testing.T) {
	stub := &collectorStub{}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	cmd := New()
	cmd.SetArgs([]string{"generate", "-n", "3",
		"--collector-url", server.URL,
		"--collector-token", "test-token",
		"--generate-delay", "0s"})
	require.NoError(t, cmd.Execute())

	require.Len(t, stub.payloads, 3)
	for _, payload := range stub.payloads {
		event, ok := payload["event"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "iam", event["category"])
		assert.Contains(t, []string{"low", "medium", "high"}, event["severity"])
		assert.NotEmpty(t, event["action"])
		assert.NotEmpty(t, event["actor"])
	}
}

func TestRootRejectsInvalidMode(t *testing.T) {
	cmd := New()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--mode", "bogus"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid mode")
}

func TestIngestRequiresInput(t *testing.T) {
	cmd := New()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"ingest", "--input", ""})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input specified")
}
