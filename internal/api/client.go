package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tomnomnom/linkheader"
	"golang.org/x/oauth2"
)

const (
	// PerPage is the page size requested from list endpoints.
	PerPage = 100

	// maxPages caps Link-header pagination so a misbehaving server
	// cannot keep the client walking forever.
	maxPages = 50

	requestTimeout = 30 * time.Second
)

// ErrNoToken is returned by NewClient when no access token is
// configured. It is surfaced to the user before any call proceeds.
var ErrNoToken = errors.New("no Canvas access token configured")

// RequestRecorder receives one record per HTTP round trip. The history
// package provides a SQLite-backed implementation; a no-op recorder is
// used when request logging is disabled.
type RequestRecorder interface {
	Record(method, url string, status int, duration time.Duration, reqErr error)
}

type nopRecorder struct{}

func (nopRecorder) Record(string, string, int, time.Duration, error) {}

// NopRecorder returns a recorder that discards everything.
func NopRecorder() RequestRecorder { return nopRecorder{} }

// Client is a Canvas LMS REST client bound to one base URL and token.
type Client struct {
	baseURL string
	http    *http.Client
	rec     RequestRecorder
	logf    func(format string, args ...any)
}

// Option configures a Client.
type Option func(*Client)

// WithRecorder installs a request recorder.
func WithRecorder(rec RequestRecorder) Option {
	return func(c *Client) {
		if rec != nil {
			c.rec = rec
		}
	}
}

// WithLogger redirects transport-failure logging. The TUI points this
// at a file logger since stderr is not usable under the alternate screen.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(c *Client) {
		if logf != nil {
			c.logf = logf
		}
	}
}

// NewClient builds a client for baseURL using a bearer token. The token
// is attached on every request via an oauth2 static token source.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	if baseURL == "" {
		return nil, errors.New("no Canvas base URL configured")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		rec:     nopRecorder{},
		logf:    log.Printf,
		http: &http.Client{
			Timeout: requestTimeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// resolve joins a relative path onto the base URL and appends the query
// string. Already-absolute URLs (module item detail links) pass through
// without re-prefixing.
func (c *Client) resolve(path string, params Params) string {
	u := path
	if !isAbsolute(path) {
		u = c.baseURL + path
	}
	if q := params.Encode(); q != "" {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + q
	}
	return u
}

func isAbsolute(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// do performs one round trip and records it.
func (c *Client) do(ctx context.Context, method, rawURL string, body io.Reader) ([]byte, http.Header, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, nil, fmt.Errorf("build request %s %s: %w", method, rawURL, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.rec.Record(method, rawURL, 0, time.Since(start), err)
		return nil, nil, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	c.rec.Record(method, rawURL, resp.StatusCode, time.Since(start), err)
	if err != nil {
		return nil, nil, fmt.Errorf("read response %s: %w", rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("%s %s: %s", method, rawURL, resp.Status)
	}
	return data, resp.Header, nil
}

// GetJSON fetches a single JSON document into out.
func (c *Client) GetJSON(ctx context.Context, path string, params Params, out any) error {
	data, _, err := c.do(ctx, http.MethodGet, c.resolve(path, params), nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// GetText fetches a path and returns the raw body.
func (c *Client) GetText(ctx context.Context, path string) (string, error) {
	data, _, err := c.do(ctx, http.MethodGet, c.resolve(path, nil), nil)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PostForm sends a POST with form-encoded params and decodes the JSON
// response into out when out is non-nil.
func (c *Client) PostForm(ctx context.Context, path string, params Params, out any) error {
	data, _, err := c.do(ctx, http.MethodPost, c.resolve(path, nil), strings.NewReader(params.Encode()))
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// getList fetches a list endpoint, following RFC 5988 Link headers with
// rel="next" until the pages run out. Canvas paginates everything this
// way; per_page keeps each round trip at 100 records.
func (c *Client) getList(ctx context.Context, path string, params Params, out any) error {
	next := c.resolve(path, params.With(P("per_page", strconv.Itoa(PerPage))))
	all := []json.RawMessage{}

	for pages := 0; next != "" && pages < maxPages; pages++ {
		data, hdr, err := c.do(ctx, http.MethodGet, next, nil)
		if err != nil {
			return err
		}
		var page []json.RawMessage
		if err := json.Unmarshal(data, &page); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		all = append(all, page...)
		next = nextLink(hdr.Get("Link"))
	}

	merged, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("merge pages for %s: %w", path, err)
	}
	if err := json.Unmarshal(merged, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// nextLink extracts the rel="next" target from a Link header.
func nextLink(header string) string {
	if header == "" {
		return ""
	}
	for _, l := range linkheader.Parse(header).FilterByRel("next") {
		return l.URL
	}
	return ""
}

// Self returns the authenticated user. Unlike the per-section fetchers
// this fails hard: without a user id there is no course list to show.
func (c *Client) Self(ctx context.Context) (*User, error) {
	var u User
	if err := c.GetJSON(ctx, "/users/self", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Courses lists the user's courses.
func (c *Client) Courses(ctx context.Context, userID int64) ([]Course, error) {
	var out []Course
	if err := c.getList(ctx, fmt.Sprintf("/users/%d/courses", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// The per-section fetchers below degrade on failure: the error is
// logged and the zero value returned, so one broken section renders as
// "no contents" instead of aborting the whole page.

// Announcements returns the course announcements from the last year.
func (c *Client) Announcements(ctx context.Context, courseID int64) []Announcement {
	end := time.Now()
	start := end.AddDate(-1, 0, 0)
	params := Params{
		P("start_date", start.Format("2006-01-02")),
		P("end_date", end.Format("2006-01-02")),
		P("context_codes[]", fmt.Sprintf("course_%d", courseID)),
	}
	var out []Announcement
	if err := c.getList(ctx, "/announcements", params, &out); err != nil {
		c.logf("announcements for course %d: %v", courseID, err)
		return nil
	}
	return out
}

// FrontPage returns the course front page, or nil when the course has
// none (Canvas answers 404 for courses without a designated front page).
func (c *Client) FrontPage(ctx context.Context, courseID int64) *Page {
	var p Page
	if err := c.GetJSON(ctx, fmt.Sprintf("/courses/%d/front_page", courseID), nil, &p); err != nil {
		c.logf("front page for course %d: %v", courseID, err)
		return nil
	}
	return &p
}

// Assignments returns the course assignments.
func (c *Client) Assignments(ctx context.Context, courseID int64) []Assignment {
	var out []Assignment
	if err := c.getList(ctx, fmt.Sprintf("/courses/%d/assignments", courseID), nil, &out); err != nil {
		c.logf("assignments for course %d: %v", courseID, err)
		return nil
	}
	return out
}

// Modules returns the course modules with their items inlined.
func (c *Client) Modules(ctx context.Context, courseID int64) []Module {
	params := Params{P("include[]", "items")}
	var out []Module
	if err := c.getList(ctx, fmt.Sprintf("/courses/%d/modules", courseID), params, &out); err != nil {
		c.logf("modules for course %d: %v", courseID, err)
		return nil
	}
	return out
}

// Discussions returns the course discussion topics.
func (c *Client) Discussions(ctx context.Context, courseID int64) []DiscussionTopic {
	var out []DiscussionTopic
	if err := c.getList(ctx, fmt.Sprintf("/courses/%d/discussion_topics", courseID), nil, &out); err != nil {
		c.logf("discussions for course %d: %v", courseID, err)
		return nil
	}
	return out
}

// Detail fetches a module item's detail document by its absolute URL.
// Errors are returned rather than degraded so the caller can tell a
// cancelled fetch from an empty one.
func (c *Client) Detail(ctx context.Context, absURL string) (json.RawMessage, error) {
	data, _, err := c.do(ctx, http.MethodGet, c.resolve(absURL, nil), nil)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
