package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goliatone/go-intake/pkg/cache"
	"github.com/goliatone/go-intake/pkg/schema"
)

// Query names the jurisdiction and case-type tuple a template lookup runs
// against. It doubles as the cache key for the fetched list.
type Query = cache.Query

// Client is the remote template source. Implementations wrap whatever
// transport the deployment uses; the engine only consumes the resolved list.
type Client interface {
	FetchTemplates(ctx context.Context, query Query) ([]schema.Template, error)
}

// ClientFunc adapts a function into a Client.
type ClientFunc func(ctx context.Context, query Query) ([]schema.Template, error)

// FetchTemplates delegates to the underlying function.
func (fn ClientFunc) FetchTemplates(ctx context.Context, query Query) ([]schema.Template, error) {
	return fn(ctx, query)
}

// ClientOption customizes an HTTPClient.
type ClientOption func(*HTTPClient)

// WithTransport injects the http.Client used for requests.
func WithTransport(client *http.Client) ClientOption {
	return func(c *HTTPClient) {
		if client != nil {
			c.client = client
		}
	}
}

// WithRequestTimeout caps each fetch. Zero leaves the caller's context in
// charge.
func WithRequestTimeout(timeout time.Duration) ClientOption {
	return func(c *HTTPClient) {
		c.timeout = timeout
	}
}

// WithHeader adds a header to every request, for API keys and the like.
func WithHeader(key, value string) ClientOption {
	return func(c *HTTPClient) {
		c.headers[key] = value
	}
}

// HTTPClient fetches template lists from the template service's REST
// endpoint: GET {base}/templates with state, county, court, and caseType
// query parameters.
type HTTPClient struct {
	base    *url.URL
	client  *http.Client
	timeout time.Duration
	headers map[string]string
}

// NewHTTPClient validates the base URL and applies options.
func NewHTTPClient(baseURL string, opts ...ClientOption) (*HTTPClient, error) {
	base, err := url.ParseRequestURI(baseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch: invalid base URL %q: %w", baseURL, err)
	}

	c := &HTTPClient{
		base:    base,
		client:  http.DefaultClient,
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// FetchTemplates implements Client.
func (c *HTTPClient) FetchTemplates(ctx context.Context, query Query) ([]schema.Template, error) {
	endpoint := c.base.JoinPath("templates")

	params := endpoint.Query()
	setParam(params, "state", query.State)
	setParam(params, "county", query.County)
	setParam(params, "court", query.Court)
	setParam(params, "caseType", query.CaseType)
	endpoint.RawQuery = params.Encode()

	reqCtx := ctx
	var cancel context.CancelFunc
	if c.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: request templates: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch: template service returned %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: read response: %w", err)
	}

	return schema.ParseList(endpoint.String(), data)
}

func setParam(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}
