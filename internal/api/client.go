// Package api is a thin client for the workforce tracking REST API.
// Every call is a single GET; responses are decoded but not transformed.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultTimesheetDays is used when Timesheet is called with days <= 0.
	DefaultTimesheetDays = 7
	// DefaultSummaryDays is used when AnalyticsSummary is called with days <= 0.
	DefaultSummaryDays = 30

	apiPrefix = "/api"
)

// Client issues requests against a workforce API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a client for the server at baseURL (e.g. "http://127.0.0.1:8000").
// An empty baseURL produces host-relative URLs.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EmployeeInfo fetches the identity of the tracked employee.
func (c *Client) EmployeeInfo(ctx context.Context) (*EmployeeInfo, error) {
	var out EmployeeInfo
	if err := c.get(ctx, "/employee/info", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TodayStats fetches today's aggregate statistics.
func (c *Client) TodayStats(ctx context.Context) (*TodayResponse, error) {
	var out TodayResponse
	if err := c.get(ctx, "/work/today", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Timesheet fetches one entry per day for the last days days, newest first.
func (c *Client) Timesheet(ctx context.Context, days int) (*TimesheetResponse, error) {
	if days <= 0 {
		days = DefaultTimesheetDays
	}
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))

	var out TimesheetResponse
	if err := c.get(ctx, "/work/timesheet", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DetailedActivity fetches the per-minute activity log for date (YYYY-MM-DD).
// An empty date lets the server pick today.
func (c *Client) DetailedActivity(ctx context.Context, date string) (*ActivityResponse, error) {
	var out ActivityResponse
	if err := c.get(ctx, "/activity/detailed", dateQuery(date), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListScreenshots lists the screenshots captured on date.
// An empty date lets the server pick today.
func (c *Client) ListScreenshots(ctx context.Context, date string) (*ScreenshotListResponse, error) {
	var out ScreenshotListResponse
	if err := c.get(ctx, "/screenshots/list", dateQuery(date), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScreenshotURL returns the address of a screenshot image. The same URL
// serves previews and downloads.
func (c *Client) ScreenshotURL(date, filename string) string {
	return c.baseURL + apiPrefix + screenshotPath(date, filename)
}

// screenshotPath is the escaped endpoint path of one screenshot image.
func screenshotPath(date, filename string) string {
	return "/screenshots/" + url.PathEscape(date) + "/" + url.PathEscape(filename)
}

// Screenshot downloads the raw image bytes of a screenshot.
func (c *Client) Screenshot(ctx context.Context, date, filename string) ([]byte, error) {
	resp, err := c.do(ctx, screenshotPath(date, filename), nil, "image/*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read screenshot %s: %w", filename, err)
	}
	return data, nil
}

// AnalyticsSummary fetches totals and averages over the last days days.
func (c *Client) AnalyticsSummary(ctx context.Context, days int) (*AnalyticsSummary, error) {
	if days <= 0 {
		days = DefaultSummaryDays
	}
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))

	var out AnalyticsSummary
	if err := c.get(ctx, "/analytics/summary", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// get performs a GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, path, query, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s%s response: %w", apiPrefix, path, err)
	}
	return nil
}

// do sends the request and converts non-2xx responses into *StatusError.
// On success the caller owns resp.Body.
func (c *Client) do(ctx context.Context, path string, query url.Values, accept string) (*http.Response, error) {
	endpoint := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s%s failed: %w", apiPrefix, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Path:       apiPrefix + path,
			Body:       strings.TrimSpace(string(body)),
		}
	}
	return resp, nil
}

func dateQuery(date string) url.Values {
	if date == "" {
		return nil
	}
	q := url.Values{}
	q.Set("date", date)
	return q
}
