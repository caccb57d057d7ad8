package tui

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/canvascli/internal/api"
	"github.com/studiowebux/canvascli/internal/config"
	"github.com/studiowebux/canvascli/internal/history"
	"github.com/studiowebux/canvascli/internal/keybinds"
	"github.com/studiowebux/canvascli/internal/session"
)

// New creates a TUI model around a prepared session.
func New(sess *session.Session) *Model {
	return &Model{
		sess:         sess,
		keys:         keybinds.NewDefaultRegistry(),
		mode:         ModePicker,
		picker:       newPicker(),
		docView:      viewport.New(80, 20),
		inspectView:  viewport.New(80, 20),
		helpView:     viewport.New(80, 20),
		detailCancel: make(map[int]context.CancelFunc),
	}
}

// RunOptions configures the TUI entry point.
type RunOptions struct {
	ConfigPath string
	Reload     bool   // bypass the cached course list on startup
	CourseID   int64  // open this course directly, skipping the picker
}

// Run starts the TUI.
func Run(opts RunOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	// stderr is unusable under the alternate screen; transport errors
	// go to a log file instead.
	logPath, err := config.LogPath()
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, config.FilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)

	clientOpts := []api.Option{api.WithLogger(logger.Printf)}

	var recorder *history.Recorder
	if cfg.RequestLog {
		dbPath, err := config.DatabasePath()
		if err != nil {
			return err
		}
		recorder, err = history.Open(dbPath)
		if err != nil {
			return err
		}
		defer recorder.Close()
		clientOpts = append(clientOpts, api.WithRecorder(recorder))
	}

	client, err := api.NewClient(cfg.APIBase(), cfg.Token, clientOpts...)
	if err != nil {
		return err
	}

	sess := session.New(client)
	if opts.Reload {
		sess.Invalidate()
	}

	m := New(sess)

	if opts.CourseID != 0 {
		// Resolve the course up front so a bad id fails before the
		// alternate screen takes over.
		courses, err := sess.Courses(context.Background(), opts.Reload)
		if err != nil {
			return err
		}
		found := false
		for _, c := range courses {
			if c.ID == opts.CourseID {
				m.course = &c
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("course %d not found", opts.CourseID)
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// startupCmd picks the initial fetch: the preselected course when one
// was named on the command line, the course list otherwise.
func (m *Model) startupCmd() tea.Cmd {
	if m.course != nil {
		return m.openCourse(*m.course)
	}
	return m.loadCourses(false)
}
