package history

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Stats aggregates the recorded round trips for one endpoint shape.
type Stats struct {
	Endpoint      string
	Method        string
	TotalCalls    int
	SuccessCount  int
	ErrorCount    int
	NetworkErrors int // status 0: DNS failures, timeouts, refused connections
	AvgDurationMS float64
	MinDurationMS int64
	MaxDurationMS int64
	LastCalled    time.Time
}

var numericSegment = regexp.MustCompile(`^\d+$`)

// NormalizeEndpoint reduces a request URL to its endpoint shape: the
// host and query are dropped and numeric path segments collapse to
// {id}, so /courses/421/modules and /courses/7/modules aggregate
// together.
func NormalizeEndpoint(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		path = u.Path
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if numericSegment.MatchString(seg) {
			segments[i] = "{id}"
		}
	}
	return strings.Join(segments, "/")
}

// Stats aggregates the whole request log per endpoint shape and method,
// most recently used first.
func (r *Recorder) Stats() ([]Stats, error) {
	entries, err := r.all()
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]*Stats)
	var order []string
	for _, e := range entries {
		key := e.Method + " " + NormalizeEndpoint(e.URL)
		s, ok := byKey[key]
		if !ok {
			s = &Stats{
				Endpoint:      NormalizeEndpoint(e.URL),
				Method:        e.Method,
				MinDurationMS: e.DurationMS,
			}
			byKey[key] = s
			order = append(order, key)
		}

		s.TotalCalls++
		switch {
		case e.Status == 0:
			s.NetworkErrors++
		case e.Status >= 200 && e.Status < 300:
			s.SuccessCount++
		case e.Status >= 400:
			s.ErrorCount++
		}
		if e.DurationMS < s.MinDurationMS {
			s.MinDurationMS = e.DurationMS
		}
		if e.DurationMS > s.MaxDurationMS {
			s.MaxDurationMS = e.DurationMS
		}
		// Running mean keeps a single pass.
		s.AvgDurationMS += (float64(e.DurationMS) - s.AvgDurationMS) / float64(s.TotalCalls)
		if e.Timestamp.After(s.LastCalled) {
			s.LastCalled = e.Timestamp
		}
	}

	// Recent first: entries come newest-first, so the insertion order
	// already matches.
	out := make([]Stats, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out, nil
}

func (r *Recorder) all() ([]Entry, error) {
	rows, err := r.db.Query(
		`SELECT id, timestamp, method, url, status, duration_ms, error
		 FROM requests ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query request log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Method, &e.URL, &e.Status, &e.DurationMS, &e.Error); err != nil {
			return nil, fmt.Errorf("failed to scan request log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
