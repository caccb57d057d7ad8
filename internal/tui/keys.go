package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/canvascli/internal/document"
	"github.com/studiowebux/canvascli/internal/filter"
	"github.com/studiowebux/canvascli/internal/keybinds"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.Cleanup()
		return tea.Quit
	}

	switch m.mode {
	case ModePicker:
		return m.handlePickerKeys(msg)
	case ModeCourse:
		return m.handleCourseKeys(msg)
	case ModeInspect:
		return m.handleInspectKeys(msg)
	case ModeFilter:
		return m.handleFilterKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}
	return nil
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) tea.Cmd {
	// While the list's fuzzy filter is active it owns the keyboard.
	if m.picker.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return cmd
	}

	if action, ok := m.keys.Match(keybinds.ContextPicker, msg.String()); ok {
		switch action {
		case keybinds.ActionQuit, keybinds.ActionQuitForce:
			m.Cleanup()
			return tea.Quit
		case keybinds.ActionHelp:
			m.openHelp()
			return nil
		case keybinds.ActionPickCourse:
			if item, ok := m.picker.SelectedItem().(courseItem); ok {
				return m.openCourse(item.course)
			}
			return nil
		case keybinds.ActionReloadList:
			m.sess.Invalidate()
			return m.loadCourses(true)
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return cmd
}

func (m *Model) handleCourseKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keys.Match(keybinds.ContextCourse, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuitForce:
		m.Cleanup()
		return tea.Quit
	case keybinds.ActionBackToList:
		m.mode = ModePicker
		return nil
	case keybinds.ActionHelp:
		m.openHelp()
		return nil

	case keybinds.ActionCursorUp:
		m.moveCursor(-1)
	case keybinds.ActionCursorDown:
		m.moveCursor(1)
	case keybinds.ActionPageUp:
		m.moveCursor(-m.docView.Height)
	case keybinds.ActionPageDown:
		m.moveCursor(m.docView.Height)
	case keybinds.ActionGoToTop:
		m.cursor = 0
		m.refreshDoc()
	case keybinds.ActionGoToBottom:
		if m.doc != nil {
			m.cursor = len(m.doc.Lines()) - 1
			m.refreshDoc()
		}

	case keybinds.ActionNextItem:
		m.jumpItem(1, false)
	case keybinds.ActionPrevItem:
		m.jumpItem(-1, false)
	case keybinds.ActionNextControl:
		m.jumpItem(1, true)
	case keybinds.ActionPrevControl:
		m.jumpItem(-1, true)

	case keybinds.ActionActivate:
		return m.activateRegion()

	case keybinds.ActionJumpAnnouncements:
		return m.jumpSection(document.SectionAnnouncements)
	case keybinds.ActionJumpFrontpage:
		return m.jumpSection(document.SectionFrontpage)
	case keybinds.ActionJumpAssignments:
		return m.jumpSection(document.SectionAssignments)
	case keybinds.ActionJumpModules:
		return m.jumpSection(document.SectionModules)
	case keybinds.ActionJumpDiscussions:
		return m.jumpSection(document.SectionDiscussions)

	case keybinds.ActionReloadPage:
		return m.reloadPage()
	case keybinds.ActionInspect:
		m.openInspect()
	case keybinds.ActionYank:
		m.yankRegion()
	}
	return nil
}

func (m *Model) handleInspectKeys(msg tea.KeyMsg) tea.Cmd {
	action, ok := m.keys.Match(keybinds.ContextInspect, msg.String())
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuitForce:
		m.Cleanup()
		return tea.Quit
	case keybinds.ActionCloseModal:
		m.mode = ModeCourse
	case keybinds.ActionOpenFilter:
		m.mode = ModeFilter
		m.filterErr = ""
	case keybinds.ActionClearFilter:
		m.filterInput = ""
		m.filterErr = ""
		m.setInspectContent(m.inspectRaw)
	case keybinds.ActionScrollUp:
		m.inspectView.ScrollUp(1)
	case keybinds.ActionScrollDown:
		m.inspectView.ScrollDown(1)
	case keybinds.ActionPageUp:
		m.inspectView.PageUp()
	case keybinds.ActionPageDown:
		m.inspectView.PageDown()
	case keybinds.ActionYank:
		if err := clipboard.WriteAll(m.inspectRaw); err != nil {
			return m.setErrorMessage("clipboard: " + err.Error())
		}
		m.statusMsg = "Yanked payload"
	}
	return nil
}

// handleFilterKeys owns the JMESPath input line under the inspect modal.
func (m *Model) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = ModeInspect
		m.filterErr = ""
	case "enter":
		m.applyFilter()
	case "backspace":
		if len(m.filterInput) > 0 {
			m.filterInput = m.filterInput[:len(m.filterInput)-1]
		}
	default:
		if msg.Type == tea.KeyRunes || msg.String() == " " {
			m.filterInput += string(msg.Runes)
		}
	}
	return nil
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	if action, ok := m.keys.Match(keybinds.ContextHelp, msg.String()); ok {
		switch action {
		case keybinds.ActionQuitForce:
			m.Cleanup()
			return tea.Quit
		case keybinds.ActionCloseModal:
			m.mode = m.helpReturn
		case keybinds.ActionScrollUp:
			m.helpView.ScrollUp(1)
		case keybinds.ActionScrollDown:
			m.helpView.ScrollDown(1)
		}
	}
	return nil
}

// moveCursor shifts the document cursor and keeps it in range.
func (m *Model) moveCursor(delta int) {
	if m.doc == nil {
		return
	}
	m.cursor += delta
	m.refreshDoc()
}

// activateRegion dispatches activation of the region under the cursor:
// buttons run their action, unloaded items fetch, everything else
// toggles visibility. Re-activating an item whose fetch is still in
// flight cancels the stale fetch.
func (m *Model) activateRegion() tea.Cmd {
	if m.doc == nil {
		return nil
	}
	r := m.doc.RegionAt(m.cursor)
	if r == nil || !r.Interactive() {
		m.statusMsg = "Nothing to activate here"
		return nil
	}

	if r.Kind == document.KindButton {
		if r.Label == document.ReloadLabel {
			return m.reloadPage()
		}
		return nil
	}

	if cancel, ok := m.detailCancel[r.ID]; ok {
		cancel()
		delete(m.detailCancel, r.ID)
		m.loading = false
		m.statusMsg = "Fetch cancelled"
		return nil
	}

	if r.NeedsFetch() {
		return m.fetchDetail(r)
	}

	m.doc.Toggle(r.ID)
	m.refreshDoc()
	return nil
}

// jumpItem moves to the next/previous clickable region. The control
// keys (tab/shift+tab) wrap around the document; the item keys stop at
// the ends.
func (m *Model) jumpItem(dir int, wrap bool) {
	if m.doc == nil {
		return
	}
	r := m.doc.NextInteractive(m.cursor, dir)
	if r == nil && wrap {
		r = edgeInteractive(m.doc, dir)
	}
	if r == nil {
		m.statusMsg = "No more items"
		return
	}
	m.cursor = r.Start
	m.refreshDoc()
}

// edgeInteractive returns the first (dir > 0) or last rendered
// interactive region, for wrap-around.
func edgeInteractive(doc *document.Document, dir int) *document.Region {
	var best *document.Region
	for _, r := range doc.Regions() {
		if !r.Rendered() || !r.Interactive() {
			continue
		}
		if best == nil || (dir >= 0 && r.Start < best.Start) || (dir < 0 && r.Start > best.Start) {
			best = r
		}
	}
	return best
}

// jumpSection moves the cursor to a section heading. A heading missing
// from the document is a no-op. The frontpage jump additionally reveals
// the first toggle after the heading.
func (m *Model) jumpSection(name string) tea.Cmd {
	if m.doc == nil {
		return nil
	}
	line, ok := m.doc.Heading(name)
	if !ok {
		m.statusMsg = name + " not found"
		return nil
	}
	m.cursor = line

	if name == document.SectionFrontpage {
		if r := m.doc.FirstToggleAfter(line); r != nil && r.Hidden {
			if r.NeedsFetch() {
				m.refreshDoc()
				return m.fetchDetail(r)
			}
			m.doc.Reveal(r.ID)
		}
	}
	m.refreshDoc()
	return nil
}

// yankRegion copies the focused region's content (or its detail URL
// when nothing is loaded) to the clipboard.
func (m *Model) yankRegion() {
	if m.doc == nil {
		return
	}
	r := m.doc.RegionAt(m.cursor)
	if r == nil {
		m.statusMsg = "Nothing to yank"
		return
	}
	text := strings.Join(r.Body, "\n")
	if text == "" {
		text = r.DetailURL
	}
	if text == "" {
		text = r.Label
	}
	if err := clipboard.WriteAll(text); err != nil {
		m.errorMsg = "clipboard: " + err.Error()
		return
	}
	m.statusMsg = "Yanked " + r.Label
}

// applyFilter runs the JMESPath expression against the inspected payload.
func (m *Model) applyFilter() {
	if m.filterInput == "" {
		m.filterErr = ""
		m.setInspectContent(m.inspectRaw)
		m.mode = ModeInspect
		return
	}
	result, err := filter.Apply(m.inspectRaw, m.filterInput)
	if err != nil {
		m.filterErr = err.Error()
		return
	}
	m.filterErr = ""
	m.setInspectContent(result)
	m.mode = ModeInspect
}
