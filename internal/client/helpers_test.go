package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/quickbase-client/pkg/quickbase"
)

const queryFixture = `{
  "data": [
    {
      "6": {"value": "Andre Harris"},
      "7": {"value": 10},
      "8": {"value": "2019-12-18T08:00:00Z"}
    }
  ],
  "fields": [
    {"id": 6, "label": "Full Name", "type": "text"},
    {"id": 7, "label": "Amount", "type": "numeric"},
    {"id": 8, "label": "Date time", "type": "date time"}
  ],
  "metadata": {"totalRecords": 10, "numRecords": 1, "numFields": 3, "skip": 0}
}`

// capturedRequest is what the test server saw.
type capturedRequest struct {
	Method  string
	Path    string
	Headers http.Header
	Body    string
}

// testServer replies with a fixed status and body and records each request.
type testServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
}

func newTestServer(t *testing.T, statusCode int, body string) *testServer {
	t.Helper()

	server := &testServer{}
	server.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		data, _ := io.ReadAll(request.Body)

		server.mu.Lock()
		server.requests = append(server.requests, capturedRequest{
			Method:  request.Method,
			Path:    request.URL.Path,
			Headers: request.Header.Clone(),
			Body:    string(data),
		})
		server.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(statusCode)
		_, _ = writer.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

func (s *testServer) lastRequest(t *testing.T) capturedRequest {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	require.NotEmpty(t, s.requests, "server received no requests")

	return s.requests[len(s.requests)-1]
}

// newTestClient builds a client for realm "testRealm" and token "testToken".
func newTestClient(t *testing.T, baseURL string, configure ...func(*quickbase.Config)) *Client {
	t.Helper()

	config := &quickbase.Config{
		Realm:     "testRealm",
		UserToken: "testToken",
		BaseURL:   baseURL,
	}

	for _, fn := range configure {
		fn(config)
	}

	client, err := New(config)
	require.NoError(t, err)

	return client
}

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []string
}

func (l *MockLogger) add(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, msg)
}

func (l *MockLogger) Debug(msg string, _ map[string]interface{}) { l.add(msg) }
func (l *MockLogger) Info(msg string, _ map[string]interface{})  { l.add(msg) }
func (l *MockLogger) Warn(msg string, _ map[string]interface{})  { l.add(msg) }
func (l *MockLogger) Error(msg string, _ map[string]interface{}) { l.add(msg) }

func (l *MockLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.logs...)
}
