package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/canvascli/internal/api"
	"github.com/studiowebux/canvascli/internal/document"
	"golang.org/x/sync/errgroup"
)

// loadCourses fetches the course list off the update loop.
func (m *Model) loadCourses(force bool) tea.Cmd {
	m.loading = true
	sess := m.sess
	return func() tea.Msg {
		courses, err := sess.Courses(context.Background(), force)
		return coursesLoadedMsg{courses: courses, err: err}
	}
}

// openCourse fetches all five sections of a course concurrently and
// delivers one message when the page is complete. The per-section
// fetchers degrade failures to zero values, so the page always loads;
// observable behavior stays "load finishes before the next action".
func (m *Model) openCourse(course api.Course) tea.Cmd {
	m.loading = true
	m.statusMsg = "Loading " + course.Name + "..."
	client := m.sess.Client()
	return func() tea.Msg {
		data := document.CourseData{Course: course}
		g, ctx := errgroup.WithContext(context.Background())
		g.Go(func() error {
			data.Announcements = client.Announcements(ctx, course.ID)
			return nil
		})
		g.Go(func() error {
			data.FrontPage = client.FrontPage(ctx, course.ID)
			return nil
		})
		g.Go(func() error {
			data.Assignments = client.Assignments(ctx, course.ID)
			return nil
		})
		g.Go(func() error {
			data.Modules = client.Modules(ctx, course.ID)
			return nil
		})
		g.Go(func() error {
			data.Discussions = client.Discussions(ctx, course.ID)
			return nil
		})
		_ = g.Wait()
		return courseLoadedMsg{course: course, data: data}
	}
}

// fetchDetail retrieves a module item's detail content. The context is
// cancellable: re-activating the region while the fetch is in flight
// cancels it instead of stacking a second request.
func (m *Model) fetchDetail(r *document.Region) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.detailCancel[r.ID] = cancel
	m.loading = true
	m.statusMsg = "Fetching " + r.Label + "..."

	client := m.sess.Client()
	id := r.ID
	url := r.DetailURL
	return func() tea.Msg {
		raw, err := client.Detail(ctx, url)
		if err != nil {
			return detailLoadedMsg{regionID: id, err: err}
		}
		return detailLoadedMsg{regionID: id, body: document.DetailBody(raw), payload: raw}
	}
}

// reloadPage rebuilds the current course page from scratch, dropping
// all region state. With no open course this is a user-facing error.
func (m *Model) reloadPage() tea.Cmd {
	if m.course == nil {
		return func() tea.Msg { return errorMsg("reload: no course is currently open") }
	}
	m.cancelDetailFetches()
	return m.openCourse(*m.course)
}
