package history

import (
	"errors"
	"testing"
	"time"
)

func TestNormalizeEndpoint(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://canvas.example.edu/api/v1/courses/421/modules?include%5B%5D=items", "/api/v1/courses/{id}/modules"},
		{"https://canvas.example.edu/api/v1/courses/7/modules", "/api/v1/courses/{id}/modules"},
		{"https://canvas.example.edu/api/v1/users/self", "/api/v1/users/self"},
		{"/api/v1/courses/3/pages/week-1", "/api/v1/courses/{id}/pages/week-1"},
	}
	for _, tc := range cases {
		if got := NormalizeEndpoint(tc.in); got != tc.want {
			t.Errorf("NormalizeEndpoint(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStatsAggregatesByEndpointShape(t *testing.T) {
	r := openTestRecorder(t)

	r.Record("GET", "https://canvas.example.edu/api/v1/courses/1/modules", 200, 10*time.Millisecond, nil)
	r.Record("GET", "https://canvas.example.edu/api/v1/courses/2/modules", 200, 30*time.Millisecond, nil)
	r.Record("GET", "https://canvas.example.edu/api/v1/courses/2/modules", 500, 20*time.Millisecond,
		errors.New("HTTP 500"))
	r.Record("GET", "https://canvas.example.edu/api/v1/users/self", 0, 5*time.Millisecond,
		errors.New("dial tcp: timeout"))

	stats, err := r.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 endpoint shapes, got %d: %+v", len(stats), stats)
	}

	var modules, self *Stats
	for i := range stats {
		switch stats[i].Endpoint {
		case "/api/v1/courses/{id}/modules":
			modules = &stats[i]
		case "/api/v1/users/self":
			self = &stats[i]
		}
	}
	if modules == nil || self == nil {
		t.Fatalf("Missing expected endpoints: %+v", stats)
	}

	if modules.TotalCalls != 3 || modules.SuccessCount != 2 || modules.ErrorCount != 1 {
		t.Errorf("Unexpected module aggregates: %+v", modules)
	}
	if modules.MinDurationMS != 10 || modules.MaxDurationMS != 30 {
		t.Errorf("Unexpected duration range: %+v", modules)
	}
	if modules.AvgDurationMS < 19 || modules.AvgDurationMS > 21 {
		t.Errorf("Expected average near 20ms, got %f", modules.AvgDurationMS)
	}

	if self.NetworkErrors != 1 || self.SuccessCount != 0 {
		t.Errorf("Status 0 should count as a network error: %+v", self)
	}
}

func TestStatsEmptyLog(t *testing.T) {
	r := openTestRecorder(t)

	stats, err := r.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 0 {
		t.Errorf("Expected no stats for an empty log, got %+v", stats)
	}
}
