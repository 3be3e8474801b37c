package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	v1 "github.com/gctalent/talent-backoffice/api/v1"
	srvErrors "github.com/gctalent/talent-backoffice/pkg/errors"
)

// RequestEditorFn changes a request before it is sent.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithRequestEditorFn(fn RequestEditorFn) Option {
	return func(c *Client) { c.editors = append(c.editors, fn) }
}

// Client talks to the back-office table API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	editors    []RequestEditorFn
	log        *zap.SugaredLogger
}

// NewClient returns a client for the API served under baseURL, for example
// http://localhost:8000/api/v1.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize client: %w", err)
	}
	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
		log:        zap.S().Named("client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListTables returns the table definitions
// GET /tables
func (c *Client) ListTables(ctx context.Context) (*v1.TableList, error) {
	var out v1.TableList
	if err := c.do(ctx, http.MethodGet, "/tables", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Rows renders the view described by query
// GET /tables/{table}/rows
func (c *Client) Rows(ctx context.Context, table string, query url.Values) (*v1.TableView, error) {
	var out v1.TableView
	if err := c.do(ctx, http.MethodGet, tablePath(table, "rows"), query, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatchState applies patch to the view described by query
// PATCH /tables/{table}/state
func (c *Client) PatchState(ctx context.Context, table string, query url.Values, patch v1.StatePatch) (*v1.TableView, error) {
	var out v1.TableView
	if err := c.do(ctx, http.MethodPatch, tablePath(table, "state"), query, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSelection changes a selection. An empty id creates one.
// POST /tables/{table}/selections[/{id}]
func (c *Client) UpdateSelection(ctx context.Context, table, id string, query url.Values, req v1.SelectionRequest) (*v1.Selection, error) {
	path := tablePath(table, "selections")
	if id != "" {
		path = tablePath(table, "selections", id)
	}
	var out v1.Selection
	if err := c.do(ctx, http.MethodPost, path, query, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSelection
// GET /tables/{table}/selections/{id}
func (c *Client) GetSelection(ctx context.Context, table, id string) (*v1.Selection, error) {
	var out v1.Selection
	if err := c.do(ctx, http.MethodGet, tablePath(table, "selections", id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSelection
// DELETE /tables/{table}/selections/{id}
func (c *Client) DeleteSelection(ctx context.Context, table, id string) error {
	return c.do(ctx, http.MethodDelete, tablePath(table, "selections", id), nil, nil, nil)
}

// Export returns the xlsx workbook of the view, or of selection when set
// GET /tables/{table}/export
func (c *Client) Export(ctx context.Context, table string, query url.Values, selection string) ([]byte, error) {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	if selection != "" {
		q.Set("selection", selection)
	}

	resp, err := c.send(ctx, http.MethodGet, tablePath(table, "export"), q, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	u := *c.baseURL
	u.Path += path
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, edit := range c.editors {
		if err := edit(ctx, req); err != nil {
			return nil, err
		}
	}

	c.log.Debugw("request", "method", method, "url", u.String())
	return c.httpClient.Do(req)
}

// checkStatus maps error responses back to typed errors.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}

	var apiErr v1.Error
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)
	msg := apiErr.Error
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return srvErrors.NewResourceNotFoundError("resource", msg)
	case http.StatusBadRequest:
		return srvErrors.NewInvalidArgumentError(msg, nil)
	default:
		return fmt.Errorf("request failed: %s: %s", resp.Status, msg)
	}
}

func tablePath(table string, parts ...string) string {
	segments := append([]string{"", "tables", url.PathEscape(table)}, parts...)
	for i := 3; i < len(segments); i++ {
		segments[i] = url.PathEscape(segments[i])
	}
	return strings.Join(segments, "/")
}
