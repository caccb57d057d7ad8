package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/canvascli/internal/document"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"}
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleHeading = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorYellow)

	styleCursor = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleTrigger = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// styleDocLines decorates the rendered document: title, section
// headings, interactive triggers and the cursor line.
func (m *Model) styleDocLines(lines []string) []string {
	headingLines := make(map[int]bool)
	for _, name := range document.SectionNames {
		if line, ok := m.doc.Heading(name); ok {
			headingLines[line] = true
		}
	}
	triggerLines := make(map[int]bool)
	for _, r := range m.doc.Regions() {
		if r.Rendered() && r.Interactive() {
			triggerLines[r.Start] = true
		}
	}

	styled := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case i == m.cursor:
			styled[i] = styleCursor.Render(line)
		case i == 0:
			styled[i] = styleTitle.Render(line)
		case headingLines[i]:
			styled[i] = styleHeading.Render(line)
		case triggerLines[i]:
			styled[i] = styleTrigger.Render(line)
		default:
			styled[i] = line
		}
	}
	return styled
}

func (m Model) renderPicker() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.picker.View(),
		m.renderStatusBar("enter: open · r: refresh · ?: help · q: quit"),
	)
}

func (m Model) renderCourse() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.docView.View(),
		m.renderStatusBar("n/p: items · tab: controls · enter: toggle · r: reload · ?: help"),
	)
}

func (m Model) renderInspect() string {
	header := styleTitle.Render("Inspect: " + m.inspectLabel)

	footer := styleSubtle.Render("/: filter · c: clear · y: yank · esc: close")
	if m.mode == ModeFilter {
		footer = "JMESPath> " + m.filterInput + "█"
	}
	if m.filterErr != "" {
		footer = styleError.Render(m.filterErr)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.inspectView.View(),
		footer,
	)
}

func (m Model) renderHelp() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.helpView.View(),
		styleSubtle.Render("esc/q: close"),
	)
}

// renderStatusBar shows status or error plus a key hint line.
func (m Model) renderStatusBar(hints string) string {
	left := m.statusMsg
	if m.loading {
		left = "Loading..."
	}
	if m.errorMsg != "" {
		left = styleError.Render(m.errorMsg)
	}

	right := styleSubtle.Render(hints)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return fmt.Sprintf("%s%s%s", left, strings.Repeat(" ", gap), right)
}
