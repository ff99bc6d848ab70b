// Package api is the HTTP client for the coupon automation backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/tidwall/gjson"

	"github.com/justinpbarnett/coupontop/internal/config"
)

// Endpoint paths on the backend.
const (
	PathRun          = "/run"
	PathForceRun     = "/force_run"
	PathSaveUIDs     = "/save/uids"
	PathSaveCoupons  = "/save/coupons"
	PathDeleteCoupon = "/delete_coupon"
	PathDeleteUID    = "/delete_uid"
	PathStatus       = "/status"
	PathStream       = "/stream-all-logs"
	PathLogs         = "/api/logs"
	PathLogContent   = "/api/log-content"
)

const maxErrorBody = 200

type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

func NewClient(baseURL, username, password string, timeout time.Duration) *Client {
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
		httpClient: hc,
	}
}

func NewClientFromConfig(cfg *config.ServerConfig) *Client {
	return NewClient(cfg.URL, cfg.Username, cfg.Password, cfg.Timeout)
}

// StreamURL is the server-push log channel. It is consumed by the stream
// package with its own untimed client.
func (c *Client) StreamURL() string {
	return c.baseURL + PathStream
}

// Authorize sets basic auth on req when credentials are configured.
func (c *Client) Authorize(req *http.Request) {
	if c.username != "" || c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}
}

func (c *Client) Run(ctx context.Context, req RunRequest) (Result, error) {
	return c.post(ctx, PathRun, normalizeRun(req))
}

func (c *Client) ForceRun(ctx context.Context, req RunRequest) (Result, error) {
	return c.post(ctx, PathForceRun, normalizeRun(req))
}

func (c *Client) SaveUIDs(ctx context.Context, content string) (Result, error) {
	return c.post(ctx, PathSaveUIDs, map[string]string{"content": content})
}

func (c *Client) SaveCoupons(ctx context.Context, content string) (Result, error) {
	return c.post(ctx, PathSaveCoupons, map[string]string{"content": content})
}

func (c *Client) DeleteCoupon(ctx context.Context, name string) (Result, error) {
	return c.post(ctx, PathDeleteCoupon, map[string]string{"coupon_name": name})
}

func (c *Client) DeleteUID(ctx context.Context, uid string) (Result, error) {
	return c.post(ctx, PathDeleteUID, map[string]string{"uid": uid})
}

// Status fetches the session snapshot. Entries come back in the order the
// backend serialized them.
func (c *Client) Status(ctx context.Context) ([]SessionEntry, error) {
	body, err := c.get(ctx, PathStatus, nil)
	if err != nil {
		return nil, err
	}
	return ParseStatus(body)
}

// ParseStatus decodes a /status body. A null or missing session_id becomes "".
func ParseStatus(body []byte) ([]SessionEntry, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%s: invalid JSON", PathStatus)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%s: expected object, got %s", PathStatus, root.Type)
	}

	var entries []SessionEntry
	root.ForEach(func(key, value gjson.Result) bool {
		entries = append(entries, SessionEntry{
			Key: key.String(),
			Session: Session{
				Status:      value.Get("status").String(),
				DisplayName: value.Get("display_name").String(),
				LogPreview:  value.Get("log_preview").String(),
				SessionID:   value.Get("session_id").String(),
			},
		})
		return true
	})
	return entries, nil
}

func (c *Client) ListLogs(ctx context.Context) (LogListing, error) {
	var listing LogListing
	body, err := c.get(ctx, PathLogs, nil)
	if err != nil {
		return listing, err
	}
	if err := json.Unmarshal(body, &listing); err != nil {
		return listing, fmt.Errorf("%s: parsing response: %w", PathLogs, err)
	}
	return listing, nil
}

// LogContent fetches one archived file. category is "log" or "coupon".
func (c *Client) LogContent(ctx context.Context, category, file string) (LogContent, error) {
	var content LogContent
	q := url.Values{}
	q.Set("type", category)
	q.Set("file", file)
	body, err := c.get(ctx, PathLogContent, q)
	if err != nil {
		return content, err
	}
	if err := json.Unmarshal(body, &content); err != nil {
		return content, fmt.Errorf("%s: parsing response: %w", PathLogContent, err)
	}
	return content, nil
}

// post sends a JSON action. The backend answers {status, message} on error
// codes too, so the body is decoded whatever the status code.
func (c *Client) post(ctx context.Context, path string, payload any) (Result, error) {
	var result Result

	data, err := json.Marshal(payload)
	if err != nil {
		return result, fmt.Errorf("%s: encoding request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return result, fmt.Errorf("%s: creating request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.Authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return result, fmt.Errorf("%s: request failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, fmt.Errorf("%s: reading response: %w", path, err)
	}

	if err := json.Unmarshal(body, &result); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return result, &StatusError{Endpoint: path, Code: resp.StatusCode, Body: truncate(string(body), maxErrorBody)}
		}
		return result, fmt.Errorf("%s: parsing response: %w", path, err)
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	c.Authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: request failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: reading response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Endpoint: path, Code: resp.StatusCode, Body: truncate(strings.TrimSpace(string(body)), maxErrorBody)}
	}
	return body, nil
}

// normalizeRun sends empty arrays rather than null for empty selections.
func normalizeRun(req RunRequest) RunRequest {
	if req.UIDs == nil {
		req.UIDs = []string{}
	}
	if req.Coupons == nil {
		req.Coupons = []string{}
	}
	return req
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
