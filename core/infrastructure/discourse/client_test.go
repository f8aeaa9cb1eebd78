package discourse

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperterse/dataexplorer/core/domain"
)

type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) Debug(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, message)
}

// leveledLogger reports a fixed debug level like the zerolog logger does
type leveledLogger struct {
	captureLogger
	enabled bool
}

func (l *leveledLogger) DebugEnabled() bool {
	return l.enabled
}

type recordedRequest struct {
	method  string
	path    string
	headers http.Header
	body    string
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *recordedRequest) {
	t.Helper()
	recorded := &recordedRequest{}
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		recorded.method = r.Method
		recorded.path = r.URL.Path
		recorded.headers = r.Header.Clone()
		recorded.body = string(data)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, recorded
}

func hostOf(t *testing.T, server *httptest.Server) string {
	t.Helper()
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	return u.Host
}

const sampleResult = `{
  "success": true,
  "errors": [],
  "duration": 4.2,
  "result_count": 2,
  "params": {"foo": "bar"},
  "columns": ["a", "b"],
  "default_limit": 1000,
  "relations": {"user": [{"id": 1, "username": "sam"}]},
  "colrender": {"a": "user"},
  "rows": [[1, "x"], [2, "y"]]
}`

func TestBuildURL(t *testing.T) {
	assert.Equal(t,
		"https://forum.example.com/admin/plugins/explorer/queries/42/run",
		BuildURL("forum.example.com", domain.QueryIDFromInt(42)),
	)
	assert.Equal(t,
		"https://forum.example.com/admin/plugins/explorer/queries/42/run",
		BuildURL("forum.example.com", domain.QueryID("42")),
	)
}

func TestEncodeBody(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		want   string
	}{
		{
			name:   "double encoded params",
			params: map[string]string{"foo": "bar"},
			want:   "{\n  \"params\": \"{\\\"foo\\\":\\\"bar\\\"}\"\n}",
		},
		{
			name:   "nil params",
			params: nil,
			want:   "{\n  \"params\": \"{}\"\n}",
		},
		{
			name:   "html is not escaped",
			params: map[string]string{"q": "<a&b>"},
			want:   "{\n  \"params\": \"{\\\"q\\\":\\\"<a&b>\\\"}\"\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := EncodeBody(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(body))
		})
	}

	body, err := EncodeBody(map[string]string{"foo": "bar"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"params":"{\"foo\":\"bar\"}"}`, string(body))
}

func TestExecuteQuery_Success(t *testing.T) {
	server, recorded := newTestServer(t, http.StatusOK, sampleResult)
	client := NewClient(WithHTTPClient(server.Client()), WithLogger(nil))

	result, err := client.ExecuteQuery(context.Background(), &domain.QueryRequest{
		Hostname: hostOf(t, server),
		ID:       domain.QueryIDFromInt(42),
		Params:   map[string]string{"foo": "bar"},
		APIKey:   "secret",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, recorded.method)
	assert.Equal(t, "/admin/plugins/explorer/queries/42/run", recorded.path)
	assert.Equal(t, "secret", recorded.headers.Get("api-key"))
	assert.Equal(t, "system", recorded.headers.Get("api-username"))
	assert.Equal(t, "application/json; charset=UTF-8", recorded.headers.Get("content-type"))
	assert.JSONEq(t, `{"params":"{\"foo\":\"bar\"}"}`, recorded.body)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"a", "b"}, result.Columns)
	assert.Equal(t, 2, result.ResultCount)
	assert.Equal(t, 1000, result.DefaultLimit)
	assert.InDelta(t, 4.2, result.Duration, 1e-9)
	assert.Equal(t, map[string]string{"a": "user"}, result.ColRender)
	require.Len(t, result.Relations["user"], 1)
	require.Len(t, result.Rows, 2)
	assert.Equal(t, "1", result.Rows[0][0].String())
	assert.Equal(t, "y", result.Rows[1][1].String())
}

func TestExecuteQuery_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{status: http.StatusNotFound, want: "404 Not Found"},
		{status: http.StatusForbidden, want: "403 Forbidden"},
		{status: http.StatusInternalServerError, want: "500 Internal Server Error"},
		{status: http.StatusCreated, want: "201 Created"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			server, _ := newTestServer(t, tt.status, `{"errors":["nope"]}`)
			client := NewClient(WithHTTPClient(server.Client()), WithLogger(nil))

			result, err := client.ExecuteQuery(context.Background(), &domain.QueryRequest{
				Hostname: hostOf(t, server),
				ID:       "7",
				APIKey:   "secret",
			})
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Equal(t, tt.want, err.Error())

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
		})
	}
}

func TestExecuteQuery_TransportErrorIsNotWrapped(t *testing.T) {
	server := httptest.NewTLSServer(http.NotFoundHandler())
	host := hostOf(t, server)
	httpClient := server.Client()
	server.Close()

	client := NewClient(WithHTTPClient(httpClient), WithLogger(nil))
	_, err := client.ExecuteQuery(context.Background(), &domain.QueryRequest{
		Hostname: host,
		ID:       "1",
	})
	require.Error(t, err)

	var urlErr *url.Error
	assert.ErrorAs(t, err, &urlErr)
	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
}

func TestExecuteQuery_CanceledContext(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, sampleResult)
	client := NewClient(WithHTTPClient(server.Client()), WithLogger(nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ExecuteQuery(ctx, &domain.QueryRequest{Hostname: hostOf(t, server), ID: "1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecuteQuery_ValidatesBeforeRequest(t *testing.T) {
	tests := []struct {
		name string
		req  *domain.QueryRequest
		want error
	}{
		{name: "nil request", req: nil, want: domain.ErrInvalidRequest},
		{name: "empty hostname", req: &domain.QueryRequest{ID: "1"}, want: domain.ErrInvalidHostname},
		{name: "hostname with scheme", req: &domain.QueryRequest{Hostname: "https://forum.example.com", ID: "1"}, want: domain.ErrInvalidHostname},
		{name: "empty id", req: &domain.QueryRequest{Hostname: "forum.example.com"}, want: domain.ErrInvalidQueryID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &captureLogger{}
			client := NewClient(WithLogger(log))
			_, err := client.ExecuteQuery(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, log.lines)
		})
	}
}

func TestExecuteQuery_DebugTraces(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, sampleResult)
	log := &captureLogger{}
	client := NewClient(WithHTTPClient(server.Client()), WithLogger(log))

	req := &domain.QueryRequest{
		Hostname: hostOf(t, server),
		ID:       "42",
		Params:   map[string]string{"foo": "bar"},
		APIKey:   "secret",
	}
	_, err := client.ExecuteQuery(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, log.lines, 7)
	assert.Equal(t, "Submit POST request: "+BuildURL(req.Hostname, req.ID), log.lines[0])
	assert.Equal(t, "===== Body =====", log.lines[1])
	assert.Equal(t, "{\n  \"params\": \"{\\\"foo\\\":\\\"bar\\\"}\"\n}", log.lines[2])
	assert.Equal(t, "================", log.lines[3])
	assert.Equal(t, "===== Response =====", log.lines[4])
	assert.True(t, strings.HasPrefix(log.lines[5], "HTTP/1.1 200 OK"))
	assert.Contains(t, log.lines[5], `"result_count": 2`)
	assert.Equal(t, "====================", log.lines[6])

	for _, line := range log.lines {
		assert.NotContains(t, line, "secret")
	}
}

func TestExecuteQuery_TracesFollowDebugLevel(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, sampleResult)
	req := &domain.QueryRequest{Hostname: hostOf(t, server), ID: "42"}

	disabled := &leveledLogger{enabled: false}
	client := NewClient(WithHTTPClient(server.Client()), WithLogger(disabled))
	result, err := client.ExecuteQuery(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)
	assert.Empty(t, disabled.lines)

	enabled := &leveledLogger{enabled: true}
	client = NewClient(WithHTTPClient(server.Client()), WithLogger(enabled))
	result, err = client.ExecuteQuery(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)
	require.Len(t, enabled.lines, 7)
	assert.Equal(t, "===== Response =====", enabled.lines[4])
}

func TestExecuteQuery_LenientDecoding(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"columns":["a"],"rows":[[1]],"result_count":"one","success":true}`)
	log := &captureLogger{}
	client := NewClient(WithHTTPClient(server.Client()), WithLogger(log))

	result, err := client.ExecuteQuery(context.Background(), &domain.QueryRequest{Hostname: hostOf(t, server), ID: "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, result.Columns)
	assert.Equal(t, 0, result.ResultCount)
	assert.True(t, result.Success)
	assert.Contains(t, log.lines[len(log.lines)-1], "Result does not match the expected shape")
}

func TestExecuteQuery_InvalidJSON(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `not json`)
	client := NewClient(WithHTTPClient(server.Client()), WithLogger(nil))

	_, err := client.ExecuteQuery(context.Background(), &domain.QueryRequest{Hostname: hostOf(t, server), ID: "1"})
	require.Error(t, err)
	var syntaxErr *json.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestStatusError_FallsBackToStatusText(t *testing.T) {
	err := newStatusError(&http.Response{StatusCode: http.StatusTeapot, Status: "418"})
	assert.Equal(t, "418 I'm a teapot", err.Error())

	err = newStatusError(&http.Response{StatusCode: http.StatusNotFound, Status: "404 Nothing Here"})
	assert.Equal(t, "404 Nothing Here", err.Error())
}
