// Package cli implements the non-interactive subcommands: course
// listing, full-page dumps and the request-log browser.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/studiowebux/canvascli/internal/api"
	"github.com/studiowebux/canvascli/internal/config"
	"github.com/studiowebux/canvascli/internal/document"
	"github.com/studiowebux/canvascli/internal/history"
	"github.com/studiowebux/canvascli/internal/session"
)

// Options configures a CLI run.
type Options struct {
	ConfigPath string
	Reload     bool
	Out        io.Writer
}

func (o *Options) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

// newSession builds a session from the configuration. The returned
// cleanup closes the request-log recorder when one was opened.
func newSession(configPath string) (*session.Session, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {}
	opts := []api.Option{}
	if cfg.RequestLog {
		dbPath, err := config.DatabasePath()
		if err != nil {
			return nil, nil, err
		}
		recorder, err := history.Open(dbPath)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { recorder.Close() }
		opts = append(opts, api.WithRecorder(recorder))
	}

	client, err := api.NewClient(cfg.APIBase(), cfg.Token, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return session.New(client), cleanup, nil
}

// Whoami prints the authenticated user.
func Whoami(opts Options) error {
	sess, cleanup, err := newSession(opts.ConfigPath)
	if err != nil {
		return err
	}
	defer cleanup()

	user, err := sess.CurrentUser(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(opts.out(), "%s (id %d)\n", user.Name, user.ID)
	return nil
}

// Courses prints the course list, newest term first.
func Courses(opts Options) error {
	sess, cleanup, err := newSession(opts.ConfigPath)
	if err != nil {
		return err
	}
	defer cleanup()

	courses, err := sess.Courses(context.Background(), opts.Reload)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(opts.out(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tNAME")
	for _, c := range courses {
		start := c.StartAt
		if len(start) > 10 {
			start = start[:10]
		}
		if start == "" {
			start = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, start, c.Name)
	}
	return w.Flush()
}

// Dump renders one course page fully expanded: every toggle revealed
// and every module item detail fetched. Detail fetches run
// sequentially, like the interactive expansions they stand in for.
func Dump(opts Options, courseID int64) error {
	sess, cleanup, err := newSession(opts.ConfigPath)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := context.Background()
	courses, err := sess.Courses(ctx, opts.Reload)
	if err != nil {
		return err
	}

	var course *api.Course
	for i := range courses {
		if courses[i].ID == courseID {
			course = &courses[i]
			break
		}
	}
	if course == nil {
		return fmt.Errorf("course %d not found", courseID)
	}

	client := sess.Client()
	data := document.CourseData{
		Course:        *course,
		Announcements: client.Announcements(ctx, courseID),
		FrontPage:     client.FrontPage(ctx, courseID),
		Assignments:   client.Assignments(ctx, courseID),
		Modules:       client.Modules(ctx, courseID),
		Discussions:   client.Discussions(ctx, courseID),
	}

	doc := document.Build(data)
	for _, r := range doc.Regions() {
		if r.NeedsFetch() {
			raw, err := client.Detail(ctx, r.DetailURL)
			if err == nil {
				doc.SetDetail(r.ID, document.DetailBody(raw), raw)
			}
		}
		doc.Reveal(r.ID)
	}

	for _, line := range doc.Render() {
		fmt.Fprintln(opts.out(), line)
	}
	return nil
}

// Stats prints per-endpoint aggregates over the whole request log.
// Numeric path segments are collapsed, so every course's module fetch
// counts against one row.
func Stats(opts Options) error {
	dbPath, err := config.DatabasePath()
	if err != nil {
		return err
	}
	recorder, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer recorder.Close()

	stats, err := recorder.Stats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(opts.out(), "request log is empty (enable request_log in the config)")
		return nil
	}

	w := tabwriter.NewWriter(opts.out(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CALLS\tOK\tERR\tNET\tAVG MS\tMIN\tMAX\tMETHOD\tENDPOINT")
	for _, s := range stats {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.0f\t%d\t%d\t%s\t%s\n",
			s.TotalCalls, s.SuccessCount, s.ErrorCount, s.NetworkErrors,
			s.AvgDurationMS, s.MinDurationMS, s.MaxDurationMS, s.Method, s.Endpoint)
	}
	return w.Flush()
}

// History prints the newest request-log entries.
func History(opts Options, limit int) error {
	dbPath, err := config.DatabasePath()
	if err != nil {
		return err
	}
	recorder, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer recorder.Close()

	entries, err := recorder.Recent(limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(opts.out(), "request log is empty (enable request_log in the config)")
		return nil
	}

	w := tabwriter.NewWriter(opts.out(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSTATUS\tMS\tMETHOD\tURL")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Status, e.DurationMS, e.Method, e.URL)
	}
	return w.Flush()
}
