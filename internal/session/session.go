// Package session holds the per-run state shared by the TUI and CLI:
// the API client, the authenticated user and the cached course list.
// There are no ambient globals; callers hold a *Session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/studiowebux/canvascli/internal/api"
)

// ErrNoCourse is returned when an operation needs a current course and
// none is open (e.g. reload before the first course selection).
var ErrNoCourse = errors.New("no course is currently open")

// Session is the mutable per-run state. It is driven from a single
// logical thread of control (the user's sequential interactions), so
// it carries no lock.
type Session struct {
	client  *api.Client
	user    *api.User
	courses []api.Course
	loaded  bool
}

// New wraps an API client in a fresh session.
func New(client *api.Client) *Session {
	return &Session{client: client}
}

// Client exposes the underlying API client.
func (s *Session) Client() *api.Client { return s.client }

// CurrentUser returns the authenticated user, fetching it once.
func (s *Session) CurrentUser(ctx context.Context) (*api.User, error) {
	if s.user != nil {
		return s.user, nil
	}
	u, err := s.client.Self(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch current user: %w", err)
	}
	s.user = u
	return u, nil
}

// Courses returns the user's course list, sorted by start date
// descending (newest term first). The list is fetched once and cached;
// force bypasses the cache, as does a prior Invalidate.
func (s *Session) Courses(ctx context.Context, force bool) ([]api.Course, error) {
	if s.loaded && !force {
		return s.courses, nil
	}

	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.client.Courses(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch courses: %w", err)
	}

	// ISO-8601 start dates sort lexicographically; courses without one
	// go last.
	sort.SliceStable(courses, func(i, j int) bool {
		a, b := courses[i].StartAt, courses[j].StartAt
		if (a == "") != (b == "") {
			return a != ""
		}
		return a > b
	})

	s.courses = courses
	s.loaded = true
	return courses, nil
}

// Invalidate drops the cached course list; the next Courses call
// refetches.
func (s *Session) Invalidate() {
	s.courses = nil
	s.loaded = false
}

// CourseByID finds a cached course.
func (s *Session) CourseByID(id int64) (api.Course, bool) {
	for _, c := range s.courses {
		if c.ID == id {
			return c, true
		}
	}
	return api.Course{}, false
}
