package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/snowgate/snowgate/internal/catalog"
	"github.com/snowgate/snowgate/internal/gateway"
	"github.com/snowgate/snowgate/internal/sqlwrite"
	"github.com/snowgate/snowgate/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T, gwConfig *gateway.Config) *Server {
	t.Helper()

	var gw *gateway.Gateway
	if gwConfig != nil {
		if gwConfig.Registry == nil {
			gwConfig.Registry = catalog.NewRegistry(catalog.Evaluate(gwConfig.AllowWrite, gwConfig.ExcludeTools))
		}
		if gwConfig.DB == nil {
			db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
			require.NoError(t, err)
			require.NoError(t, db.Exec("CREATE TABLE metrics (id INTEGER PRIMARY KEY, name TEXT)").Error)
			require.NoError(t, db.Exec("INSERT INTO metrics (name) VALUES ('latency'), ('throughput')").Error)
			gwConfig.DB = db
		}
		if gwConfig.Detector == nil {
			gwConfig.Detector = sqlwrite.NewDetector()
		}
		var err error
		gw, err = gateway.NewGateway(gwConfig)
		require.NoError(t, err)
	}

	s, err := NewServer(&ServerOptions{
		Host:              "127.0.0.1",
		Port:              "0",
		Gateway:           gw,
		HeartbeatInterval: 50 * time.Millisecond,
	})
	require.NoError(t, err)
	return s
}

func doRequest(s *Server, method, path string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestServerInfoEndpoint(t *testing.T) {
	s := newTestServer(t, &gateway.Config{})

	w := doRequest(s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var info types.ServerInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, ServerName, info.Name)
	assert.Equal(t, "running", info.Status)
	assert.Equal(t, "http", info.Transport)
	assert.NotEmpty(t, info.Version)
}

func TestListToolsEndpoint(t *testing.T) {
	t.Run("uninitialized server fails with server fault", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := doRequest(s, http.MethodGet, "/tools", "")
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Server not initialized")
	})

	t.Run("returns registry projection", func(t *testing.T) {
		s := newTestServer(t, &gateway.Config{})
		w := doRequest(s, http.MethodGet, "/tools", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp types.ToolListResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		names := make([]string, len(resp.Tools))
		for i, tool := range resp.Tools {
			names[i] = tool.Name
		}
		assert.Equal(t, []string{
			"list_databases", "list_schemas", "list_tables",
			"describe_table", "read_query", "append_insight",
		}, names)

		// internal-only fields must not cross the boundary
		var raw struct {
			Tools []map[string]any `json:"tools"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		for _, tool := range raw.Tools {
			assert.NotContains(t, tool, "handler")
			assert.NotContains(t, tool, "tags")
		}
	})
}

func TestInvokeToolEndpoint(t *testing.T) {
	t.Run("uninitialized server fails with server fault", func(t *testing.T) {
		s := newTestServer(t, nil)
		w := doRequest(s, http.MethodPost, "/tools/read_query", `{"query": "SELECT 1"}`)
		require.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("successful invocation", func(t *testing.T) {
		s := newTestServer(t, &gateway.Config{})
		w := doRequest(s, http.MethodPost, "/tools/read_query", `{"query": "SELECT name FROM metrics ORDER BY id"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var result types.ToolInvokeResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Empty(t, result.Error)
		require.NotNil(t, result.Result)
	})

	t.Run("excluded tool returns error payload with normal status", func(t *testing.T) {
		s := newTestServer(t, &gateway.Config{ExcludeTools: []string{"read_query"}})
		w := doRequest(s, http.MethodPost, "/tools/read_query", `{"query": "SELECT 1"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var result types.ToolInvokeResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "Tool read_query is excluded from this data connection", result.Error)
	})

	t.Run("unknown tool returns error payload with normal status", func(t *testing.T) {
		s := newTestServer(t, &gateway.Config{})
		w := doRequest(s, http.MethodPost, "/tools/bogus", "")
		require.Equal(t, http.StatusOK, w.Code)

		var result types.ToolInvokeResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "Unknown tool: bogus", result.Error)
	})

	t.Run("write tool hidden by policy looks unknown", func(t *testing.T) {
		s := newTestServer(t, &gateway.Config{AllowWrite: false})
		w := doRequest(s, http.MethodPost, "/tools/write_query", `{"query": "DELETE FROM metrics"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var result types.ToolInvokeResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, "Unknown tool: write_query", result.Error)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		s := newTestServer(t, &gateway.Config{})
		w := doRequest(s, http.MethodPost, "/tools/read_query", "{not json")
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestStreamEventsEndpoint(t *testing.T) {
	s := newTestServer(t, &gateway.Config{})

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/sse", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		s.router.ServeHTTP(w, req)
		close(done)
	}()

	// long enough for at least two heartbeats at the test interval
	time.Sleep(180 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream handler did not terminate on client disconnect")
	}

	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	var events []types.StreamEvent
	for _, chunk := range strings.Split(w.Body.String(), "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		payload := strings.TrimPrefix(chunk, "data: ")
		var ev types.StreamEvent
		require.NoError(t, json.Unmarshal([]byte(payload), &ev))
		events = append(events, ev)
	}

	require.GreaterOrEqual(t, len(events), 3, "expected connection event plus at least two pings")
	assert.Equal(t, types.StreamEvent{Type: types.StreamEventConnection, Status: "connected"}, events[0])

	var lastTimestamp int64
	for _, ev := range events[1:] {
		assert.Equal(t, types.StreamEventPing, ev.Type)
		assert.GreaterOrEqual(t, ev.Timestamp, lastTimestamp, "ping timestamps must be non-decreasing")
		lastTimestamp = ev.Timestamp
	}
}
