package history

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	r, err := Open(filepath.Join(t.TempDir(), "log", "canvascli.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordAndRecent(t *testing.T) {
	r := openTestRecorder(t)

	r.Record("GET", "https://canvas.example.edu/api/v1/users/self", 200, 120*time.Millisecond, nil)
	r.Record("GET", "https://canvas.example.edu/api/v1/courses/421/modules", 500, 40*time.Millisecond,
		errors.New("HTTP 500"))

	entries, err := r.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	// Most recent first.
	if entries[0].Status != 500 {
		t.Errorf("Expected the failed request first, got status %d", entries[0].Status)
	}
	if entries[0].Error != "HTTP 500" {
		t.Errorf("Expected error text recorded, got %q", entries[0].Error)
	}
	if entries[1].Method != "GET" || entries[1].DurationMS != 120 {
		t.Errorf("Unexpected entry: %+v", entries[1])
	}
}

func TestRecentLimit(t *testing.T) {
	r := openTestRecorder(t)

	for i := 0; i < 5; i++ {
		r.Record("GET", "https://canvas.example.edu/api/v1/courses", 200, time.Millisecond, nil)
	}
	entries, err := r.Recent(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("Expected 3 entries, got %d", len(entries))
	}
}

func TestClear(t *testing.T) {
	r := openTestRecorder(t)

	r.Record("GET", "https://canvas.example.edu/api/v1/courses", 200, time.Millisecond, nil)
	if err := r.Clear(); err != nil {
		t.Fatal(err)
	}
	entries, err := r.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty log after Clear, got %d entries", len(entries))
	}
}
