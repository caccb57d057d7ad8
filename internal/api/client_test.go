package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClientRequiresToken(t *testing.T) {
	_, err := NewClient("https://canvas.example.edu/api/v1", "")
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("Expected ErrNoToken, got %v", err)
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient("", "secret")
	if err == nil {
		t.Fatal("Expected error for empty base URL")
	}
}

func TestRelativePathAssembly(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"id": 7, "name": "Test User"}`)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret")
	if err != nil {
		t.Fatal(err)
	}

	var u User
	params := Params{P("b", "2"), P("a", "1")}
	if err := c.GetJSON(context.Background(), "/users/self", params, &u); err != nil {
		t.Fatal(err)
	}

	if gotPath != "/users/self" {
		t.Errorf("Expected path /users/self, got %s", gotPath)
	}
	if gotQuery != "b=2&a=1" {
		t.Errorf("Expected query in insertion order b=2&a=1, got %s", gotQuery)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("Expected bearer token header, got %q", gotAuth)
	}
	if u.ID != 7 || u.Name != "Test User" {
		t.Errorf("Unexpected user decoded: %+v", u)
	}
}

func TestAbsoluteURLNotRePrefixed(t *testing.T) {
	other := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"body": "<p>detail</p>"}`)
	}))
	defer other.Close()

	base := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("Base server should not receive the absolute request, got %s", r.URL)
	}))
	defer base.Close()

	c, err := NewClient(base.URL, "secret")
	if err != nil {
		t.Fatal(err)
	}

	raw, err := c.Detail(context.Background(), other.URL+"/detail")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "detail") {
		t.Errorf("Unexpected detail payload: %s", raw)
	}
}

func TestParamsEncodeEscapesValues(t *testing.T) {
	got := Params{P("q", "a b&c")}.Encode()
	if got != "q=a+b%26c" {
		t.Errorf("Expected escaped value, got %s", got)
	}
}

func TestListPaginationFollowsLinkHeader(t *testing.T) {
	var firstQuery string
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/users/7/courses", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"id": 2, "name": "Art"}]`)
			return
		}
		firstQuery = r.URL.RawQuery
		next := srv.URL + "/users/7/courses?page=2"
		w.Header().Set("Link", fmt.Sprintf(`<%s>; rel="next", <%s>; rel="current"`, next, srv.URL))
		fmt.Fprint(w, `[{"id": 1, "name": "Math"}]`)
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret")
	if err != nil {
		t.Fatal(err)
	}

	courses, err := c.Courses(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(courses) != 2 {
		t.Fatalf("Expected 2 courses across pages, got %d", len(courses))
	}
	if courses[0].Name != "Math" || courses[1].Name != "Art" {
		t.Errorf("Pages merged out of order: %+v", courses)
	}
	if !strings.Contains(firstQuery, "per_page=100") {
		t.Errorf("Expected per_page=100 on the first request, got %s", firstQuery)
	}
}

func TestSectionFetchDegradesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	var logged []string
	c, err := NewClient(srv.URL, "secret", WithLogger(func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}))
	if err != nil {
		t.Fatal(err)
	}

	if got := c.Announcements(context.Background(), 42); got != nil {
		t.Errorf("Expected nil announcements on server error, got %+v", got)
	}
	if got := c.Assignments(context.Background(), 42); got != nil {
		t.Errorf("Expected nil assignments on server error, got %+v", got)
	}
	if got := c.FrontPage(context.Background(), 42); got != nil {
		t.Errorf("Expected nil front page on server error, got %+v", got)
	}
	if len(logged) != 3 {
		t.Errorf("Expected 3 logged failures, got %d: %v", len(logged), logged)
	}
}

func TestSelfErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "bad-token")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Self(context.Background()); err == nil {
		t.Fatal("Expected error from Self on 401")
	}
}

func TestDetailPropagatesCancellation(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c, err := NewClient(srv.URL, "secret")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Detail(ctx, srv.URL+"/item"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestAnnouncementsSendsContextCode(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret")
	if err != nil {
		t.Fatal(err)
	}
	c.Announcements(context.Background(), 42)

	if !strings.Contains(gotQuery, "context_codes%5B%5D=course_42") &&
		!strings.Contains(gotQuery, "context_codes[]=course_42") {
		t.Errorf("Expected context code for course 42, got %s", gotQuery)
	}
	if !strings.Contains(gotQuery, "start_date=") || !strings.Contains(gotQuery, "end_date=") {
		t.Errorf("Expected date window parameters, got %s", gotQuery)
	}
}
