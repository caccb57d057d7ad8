package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/canvascli/internal/api"
	"github.com/studiowebux/canvascli/internal/document"
	"github.com/studiowebux/canvascli/internal/keybinds"
	"github.com/studiowebux/canvascli/internal/session"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModePicker Mode = iota
	ModeCourse
	ModeInspect
	ModeFilter
	ModeHelp
)

// Model represents the TUI state
type Model struct {
	// Core state
	sess *session.Session
	keys *keybinds.Registry
	mode Mode

	// Course picker
	picker      list.Model
	pickerReady bool

	// Course document
	course       *api.Course
	doc          *document.Document
	docView      viewport.Model
	cursor       int // line index into the rendered document
	detailCancel map[int]context.CancelFunc

	// Inspect modal
	inspectView  viewport.Model
	inspectRaw   string
	inspectLabel string
	filterInput  string
	filterErr    string

	helpView   viewport.Model
	helpReturn Mode // mode to restore when help closes

	// UI state
	width        int
	height       int
	loading      bool
	statusMsg    string
	errorMsg     string // Truncated error for footer
	fullErrorMsg string // Full error message
}

// Init kicks off the initial fetch.
func (m *Model) Init() tea.Cmd {
	return m.startupCmd()
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.MouseMsg:
		// Discard mouse events; navigation is keyboard-only.

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case coursesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, m.setErrorMessage(msg.err.Error())
		}
		m.setPickerItems(msg.courses)
		m.statusMsg = "Courses loaded"

	case courseLoadedMsg:
		m.loading = false
		m.errorMsg = ""
		m.fullErrorMsg = ""
		m.course = &msg.course
		m.doc = document.Build(msg.data)
		m.cancelDetailFetches()
		m.cursor = 0
		m.mode = ModeCourse
		m.refreshDoc()
		m.statusMsg = "Loaded " + msg.course.Name

	case detailLoadedMsg:
		m.loading = false
		if cancel, ok := m.detailCancel[msg.regionID]; ok {
			cancel()
			delete(m.detailCancel, msg.regionID)
		}
		if msg.err != nil {
			if errors.Is(msg.err, context.Canceled) {
				m.statusMsg = "Fetch cancelled"
				return m, nil
			}
			// Not loaded: the user can retry by activating again.
			return m, m.setErrorMessage(msg.err.Error())
		}
		if m.doc != nil {
			m.doc.SetDetail(msg.regionID, msg.body, msg.payload)
			m.doc.Reveal(msg.regionID)
			m.refreshDoc()
		}
		m.statusMsg = "Loaded item"

	case errorMsg:
		m.loading = false
		return m, m.setErrorMessage(string(msg))

	case clearStatusMsg:
		m.statusMsg = ""
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModePicker:
		return m.renderPicker()
	case ModeCourse:
		return m.renderCourse()
	case ModeInspect, ModeFilter:
		return m.renderInspect()
	case ModeHelp:
		return m.renderHelp()
	}
	return ""
}

// Cleanup cancels in-flight fetches; called on quit.
func (m *Model) Cleanup() {
	m.cancelDetailFetches()
}

func (m *Model) cancelDetailFetches() {
	for id, cancel := range m.detailCancel {
		cancel()
		delete(m.detailCancel, id)
	}
}

// resize propagates the window size to all nested views.
func (m *Model) resize() {
	contentHeight := m.height - 2 // status bar + footer
	if contentHeight < 1 {
		contentHeight = 1
	}
	m.picker.SetSize(m.width, contentHeight)
	m.docView.Width = m.width
	m.docView.Height = contentHeight
	m.inspectView.Width = m.width
	m.inspectView.Height = contentHeight
	m.helpView.Width = m.width
	m.helpView.Height = contentHeight
	if m.doc != nil {
		m.refreshDoc()
	}
}

// refreshDoc re-renders the document into the viewport, restyling the
// cursor line, and keeps the cursor visible.
func (m *Model) refreshDoc() {
	if m.doc == nil {
		return
	}
	lines := m.doc.Render()
	if m.cursor >= len(lines) {
		m.cursor = len(lines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.docView.SetContent(strings.Join(m.styleDocLines(lines), "\n"))
	m.scrollCursorIntoView()
}

func (m *Model) scrollCursorIntoView() {
	if m.docView.Height <= 0 {
		return
	}
	if m.cursor < m.docView.YOffset {
		m.docView.SetYOffset(m.cursor)
	} else if m.cursor >= m.docView.YOffset+m.docView.Height {
		m.docView.SetYOffset(m.cursor - m.docView.Height + 1)
	}
}

// Custom message types
type coursesLoadedMsg struct {
	courses []api.Course
	err     error
}

type courseLoadedMsg struct {
	course api.Course
	data   document.CourseData
}

type detailLoadedMsg struct {
	regionID int
	body     []string
	payload  []byte
	err      error
}

type errorMsg string

type clearStatusMsg struct{}

// setErrorMessage truncates long errors for the footer while keeping
// the full text available.
func (m *Model) setErrorMessage(msg string) tea.Cmd {
	m.fullErrorMsg = msg
	if len(msg) > 100 {
		m.errorMsg = msg[:97] + "..."
	} else {
		m.errorMsg = msg
	}
	return nil
}
