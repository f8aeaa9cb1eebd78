package discourse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httputil"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyperterse/dataexplorer/core/domain"
	"github.com/hyperterse/dataexplorer/core/domain/interfaces"
	"github.com/hyperterse/dataexplorer/core/infrastructure/logging"
	"github.com/hyperterse/dataexplorer/core/infrastructure/metrics"
	"github.com/hyperterse/dataexplorer/core/observability"
)

// Client runs saved Data Explorer queries on a remote forum.
type Client struct {
	httpClient *http.Client
	debug      interfaces.DebugLogger
}

var _ interfaces.QueryExecutor = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default otelhttp-instrumented client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the sink for request and response traces. A nil logger
// turns tracing off.
func WithLogger(log interfaces.DebugLogger) Option {
	return func(c *Client) {
		c.debug = log
	}
}

// NewClient creates a Client. Without options, traces go to the "discourse"
// logger and only show up at debug level.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		debug:      logging.New("discourse"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ExecuteQuery posts the request to the query runner and decodes the result.
// Non-200 answers fail with *StatusError. Errors from the HTTP client are
// returned as they are.
func (c *Client) ExecuteQuery(ctx context.Context, req *domain.QueryRequest) (*domain.QueryResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	url := BuildURL(req.Hostname, req.ID)
	body, err := EncodeBody(req.Params)
	if err != nil {
		return nil, err
	}

	ctx, span := observability.Tracer().Start(ctx, "discourse.ExecuteQuery",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(observability.AttrRemoteHost, req.Hostname),
			attribute.String(observability.AttrQueryID, req.ID.String()),
		),
	)
	defer span.End()

	debug := c.debugEnabled()
	if debug {
		c.debug.Debug("Submit POST request: " + url)
		debugBlock(c.debug, "Body", string(body))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("api-key", req.APIKey)
	httpReq.Header.Set("api-username", APIUsername)
	httpReq.Header.Set("content-type", ContentType)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.ObserveRemoteRequest(req.Hostname, req.ID.String(), metrics.StatusTransportError, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport error")
		return nil, err
	}
	defer resp.Body.Close()

	metrics.ObserveRemoteRequest(req.Hostname, req.ID.String(), strconv.Itoa(resp.StatusCode), time.Since(start))
	span.SetAttributes(attribute.Int(observability.AttrHTTPStatusCode, resp.StatusCode))

	// DumpResponse buffers the whole body, so it only runs when the trace is written
	if debug {
		if dump, dumpErr := httputil.DumpResponse(resp, true); dumpErr == nil {
			debugBlock(c.debug, "Response", string(dump))
		} else {
			c.trace("Response could not be dumped: " + dumpErr.Error())
		}
	}

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		statusErr := newStatusError(resp)
		span.SetStatus(codes.Error, statusErr.Error())
		return nil, statusErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	result := &domain.QueryResult{}
	if err := json.Unmarshal(data, result); err != nil {
		// Fields of an unexpected type are left at their zero value, the rest
		// of the document is still decoded.
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			span.RecordError(err)
			return nil, err
		}
		c.trace("Result does not match the expected shape: " + err.Error())
	}

	span.SetAttributes(attribute.Int(observability.AttrRowCount, len(result.Rows)))
	return result, nil
}

func (c *Client) trace(message string) {
	if c.debugEnabled() {
		c.debug.Debug(message)
	}
}

// debugEnabled reports whether traces are written. Loggers that cannot report
// their level are always written to.
func (c *Client) debugEnabled() bool {
	if c.debug == nil {
		return false
	}
	if checker, ok := c.debug.(interfaces.DebugLevelChecker); ok {
		return checker.DebugEnabled()
	}
	return true
}
