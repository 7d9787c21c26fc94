// Package airtable is a small client for the Airtable REST API: list with
// formula filtering and offset pagination, get, create and patch records.
package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.airtable.com/v0"

// ErrNotConfigured is returned by every call when the API key or base id is empty.
var ErrNotConfigured = errors.New("airtable: api key or base id not configured")

// Client talks to a single Airtable base.
type Client struct {
	apiKey  string
	baseID  string
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL points the client at another host (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New creates a client. timeout bounds every request.
func New(apiKey, baseID string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		apiKey:  apiKey,
		baseID:  baseID,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Record is one Airtable row. Fields is kept raw so callers decode into their own types.
type Record struct {
	ID          string          `json:"id"`
	CreatedTime string          `json:"createdTime,omitempty"`
	Fields      json.RawMessage `json:"fields"`
}

// Decode unmarshals the record fields into v.
func (r Record) Decode(v any) error {
	if len(r.Fields) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Fields, v); err != nil {
		return fmt.Errorf("decode record %s: %w", r.ID, err)
	}
	return nil
}

// Attachment is an element of an attachment field. Only URL and Filename
// are sent on writes; Airtable fills the rest.
type Attachment struct {
	ID       string `json:"id,omitempty"`
	URL      string `json:"url"`
	Filename string `json:"filename,omitempty"`
	Type     string `json:"type,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// Sort orders a list query.
type Sort struct {
	Field     string
	Direction string // asc | desc
}

// ListParams filters a list query. Zero values are omitted.
type ListParams struct {
	Formula    string
	Sort       []Sort
	MaxRecords int
	PageSize   int
	Fields     []string
}

func (p ListParams) values(offset string) url.Values {
	q := url.Values{}
	if p.Formula != "" {
		q.Set("filterByFormula", p.Formula)
	}
	for i, s := range p.Sort {
		q.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
		if s.Direction != "" {
			q.Set(fmt.Sprintf("sort[%d][direction]", i), s.Direction)
		}
	}
	if p.MaxRecords > 0 {
		q.Set("maxRecords", strconv.Itoa(p.MaxRecords))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	for _, f := range p.Fields {
		q.Add("fields[]", f)
	}
	if offset != "" {
		q.Set("offset", offset)
	}
	return q
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

type writeRequest struct {
	Fields   any  `json:"fields"`
	Typecast bool `json:"typecast,omitempty"`
}

// List returns every record of table matching p, following offsets until
// the last page or MaxRecords.
func (c *Client) List(ctx context.Context, table string, p ListParams) ([]Record, error) {
	var (
		out    []Record
		offset string
	)
	for {
		var page listResponse
		if err := c.do(ctx, http.MethodGet, c.tableURL(table, "")+"?"+p.values(offset).Encode(), nil, &page); err != nil {
			return nil, fmt.Errorf("list %s: %w", table, err)
		}
		out = append(out, page.Records...)
		if page.Offset == "" || (p.MaxRecords > 0 && len(out) >= p.MaxRecords) {
			break
		}
		offset = page.Offset
	}
	if p.MaxRecords > 0 && len(out) > p.MaxRecords {
		out = out[:p.MaxRecords]
	}
	return out, nil
}

// Get fetches one record by id.
func (c *Client) Get(ctx context.Context, table, id string) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodGet, c.tableURL(table, id), nil, &rec); err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", table, id, err)
	}
	return &rec, nil
}

// Update patches the given fields of a record and returns the stored record.
// Fields not present in fields are left untouched.
func (c *Client) Update(ctx context.Context, table, id string, fields any) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPatch, c.tableURL(table, id), writeRequest{Fields: fields, Typecast: true}, &rec); err != nil {
		return nil, fmt.Errorf("update %s/%s: %w", table, id, err)
	}
	return &rec, nil
}

// Create inserts a record.
func (c *Client) Create(ctx context.Context, table string, fields any) (*Record, error) {
	var rec Record
	if err := c.do(ctx, http.MethodPost, c.tableURL(table, ""), writeRequest{Fields: fields, Typecast: true}, &rec); err != nil {
		return nil, fmt.Errorf("create %s: %w", table, err)
	}
	return &rec, nil
}

func (c *Client) tableURL(table, id string) string {
	u := c.baseURL + "/" + url.PathEscape(c.baseID) + "/" + url.PathEscape(table)
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	if c.apiKey == "" || c.baseID == "" {
		return ErrNotConfigured
	}
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("airtable request failed",
			zap.String("method", method),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	c.logger.Debug("airtable request",
		zap.String("method", method),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	if resp.StatusCode >= 300 {
		return parseError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
