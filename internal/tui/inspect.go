package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// openInspect shows the focused region's raw JSON payload.
func (m *Model) openInspect() {
	if m.doc == nil {
		return
	}
	r := m.doc.RegionAt(m.cursor)
	if r == nil || len(r.Payload) == 0 {
		m.statusMsg = "No payload to inspect"
		return
	}
	m.inspectRaw = string(r.Payload)
	m.inspectLabel = r.Label
	m.filterInput = ""
	m.filterErr = ""
	m.setInspectContent(m.inspectRaw)
	m.mode = ModeInspect
}

// setInspectContent syntax-highlights JSON into the inspect viewport.
// Highlighting failures fall back to the plain text.
func (m *Model) setInspectContent(body string) {
	var buf strings.Builder
	if err := quick.Highlight(&buf, body, "json", "terminal256", "monokai"); err != nil {
		m.inspectView.SetContent(body)
	} else {
		m.inspectView.SetContent(buf.String())
	}
	m.inspectView.GotoTop()
}

// openHelp shows the keybinding reference, remembering where to return.
func (m *Model) openHelp() {
	m.helpReturn = m.mode
	m.helpView.SetContent(helpText)
	m.helpView.GotoTop()
	m.mode = ModeHelp
}

const helpText = `canvascli keys

Course picker
  up/down        select course
  /              filter courses
  enter          open course
  r              refresh course list
  q              quit

Course page
  j/k, up/down   move cursor
  n / p          next / previous interactive item
  tab/shift+tab  cycle clickable controls (wraps)
  enter, space   toggle region / press button
  A F S M D      jump to Announcements, Frontpage, Assignments,
                 Modules, Discussions
  r              reload page (drops all region state)
  i              inspect raw JSON of focused item
  y              yank focused item to clipboard
  q              back to course picker

Inspect
  j/k            scroll
  /              JMESPath filter
  c              clear filter
  y              yank payload
  esc, q         close

?                this help · ctrl+c quits everywhere`
