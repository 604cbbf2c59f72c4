package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qbhttp "github.com/fivetwenty-io/quickbase-client/internal/http"
)

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []map[string]interface{}
}

func (l *MockLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, map[string]interface{}{"level": level, "msg": msg, "fields": fields})
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func (l *MockLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	msgs := make([]string, 0, len(l.logs))
	for _, entry := range l.logs {
		msgs = append(msgs, entry["msg"].(string))
	}

	return msgs
}

type failingDoer struct{}

var errDial = errors.New("dial tcp: connection refused")

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errDial
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("post with fixed headers and body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/v1/records/query", request.URL.Path)
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "testRealm.quickbase.com", request.Header.Get("QB-Realm-Hostname"))
			assert.Equal(t, "QB-USER-TOKEN testToken", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))
			assert.Equal(t, "quickbase-client/1.0", request.Header.Get("User-Agent"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "bck7gp3q2", body["from"])

			_, _ = writer.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		client := qbhttp.NewClient(server.URL+"/",
			qbhttp.WithHeader("QB-Realm-Hostname", "testRealm.quickbase.com"),
			qbhttp.WithHeader("Authorization", "QB-USER-TOKEN testToken"),
		)

		resp, err := client.Post(context.Background(), "/v1/records/query", map[string]string{"from": "bck7gp3q2"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"data":[]}`, string(resp.Body))
	})

	t.Run("delete carries a body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodDelete, request.Method)
			assert.Equal(t, "/v1/records", request.URL.Path)

			body, _ := io.ReadAll(request.Body)
			assert.JSONEq(t, `{"from":"t","where":"{3.EX.1}"}`, string(body))

			_, _ = writer.Write([]byte(`{"numberDeleted":1}`))
		}))
		defer server.Close()

		client := qbhttp.NewClient(server.URL)

		resp, err := client.Delete(context.Background(), "/v1/records", map[string]string{"from": "t", "where": "{3.EX.1}"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("query parameters and per-request headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "tableId=t1", request.URL.RawQuery)
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			assert.Equal(t, "my-agent", request.Header.Get("User-Agent"))
			assert.Empty(t, request.Header.Get("Content-Type"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := qbhttp.NewClient(server.URL, qbhttp.WithUserAgent("my-agent"))

		resp, err := client.Do(context.Background(), &qbhttp.Request{
			Method:  http.MethodGet,
			Path:    "/v1/fields",
			Query:   url.Values{"tableId": []string{"t1"}},
			Headers: map[string]string{"X-Custom-Header": "custom-value"},
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("error status is not an error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusServiceUnavailable)
			_, _ = writer.Write([]byte(`{"message":"Service Unavailable"}`))
		}))
		defer server.Close()

		client := qbhttp.NewClient(server.URL)

		resp, err := client.Post(context.Background(), "/v1/records", map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Contains(t, string(resp.Body), "Service Unavailable")
	})

	t.Run("server errors are sent once", func(t *testing.T) {
		t.Parallel()

		var (
			mu    sync.Mutex
			calls int
		)

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			mu.Lock()
			calls++
			mu.Unlock()
			writer.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := qbhttp.NewClient(server.URL)

		resp, err := client.Post(context.Background(), "/v1/records", map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 1, calls)
	})

	t.Run("transport failure", func(t *testing.T) {
		t.Parallel()

		client := qbhttp.NewClient("https://api.quickbase.com", qbhttp.WithDoer(failingDoer{}))

		resp, err := client.Post(context.Background(), "/v1/records", map[string]string{})
		require.ErrorIs(t, err, errDial)
		assert.Nil(t, resp)
	})

	t.Run("unmarshalable body", func(t *testing.T) {
		t.Parallel()

		client := qbhttp.NewClient("https://api.quickbase.com", qbhttp.WithDoer(failingDoer{}))

		_, err := client.Post(context.Background(), "/v1/records", map[string]interface{}{"bad": make(chan int)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "marshaling request body")
	})

	t.Run("context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := qbhttp.NewClient(server.URL)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := client.Post(ctx, "/v1/records/query", map[string]string{})
		require.Error(t, err)
	})
}

func TestClient_DebugLogging(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	logger := &MockLogger{}
	client := qbhttp.NewClient(server.URL, qbhttp.WithLogger(logger), qbhttp.WithDebug(true))

	_, err := client.Post(context.Background(), "/v1/records/query", map[string]string{})
	require.NoError(t, err)

	msgs := logger.messages()
	assert.Contains(t, msgs, "HTTP Request")
	assert.Contains(t, msgs, "HTTP Response")
}

func TestClient_NoLoggingWithoutDebug(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		_, _ = writer.Write([]byte(`{}`))
	}))
	defer server.Close()

	logger := &MockLogger{}
	client := qbhttp.NewClient(server.URL, qbhttp.WithLogger(logger))

	_, err := client.Post(context.Background(), "/v1/records/query", map[string]string{})
	require.NoError(t, err)

	assert.NotContains(t, logger.messages(), "HTTP Request")
}
