// Package document builds the per-course text document: a linear list
// of lines plus an explicit region table describing every collapsible
// or clickable span. The table is independent of any UI toolkit; the
// TUI layer translates regions into highlighted spans and key targets.
package document

import (
	"encoding/json"
	"strings"
)

// RegionKind classifies a region in the table.
type RegionKind int

const (
	// KindToggle is a collapsible region whose body was inlined at
	// build time (announcements, assignments, discussions, frontpage).
	KindToggle RegionKind = iota
	// KindModule is a collapsible region whose body is its nested
	// item regions.
	KindModule
	// KindItem is a module item with a detail URL: its body is fetched
	// from the network on first activation.
	KindItem
	// KindStatic is a module item without a URL, rendered as a plain
	// non-interactive label.
	KindStatic
	// KindButton is a plain action trigger (e.g. the reload control).
	KindButton
)

// Region is one entry in the region table. Start and End are line
// offsets into the last Render result; both are -1 while the region is
// not rendered (e.g. items inside a collapsed module).
type Region struct {
	ID        int
	Kind      RegionKind
	Label     string
	Body      []string
	Hidden    bool
	Loaded    bool
	DetailURL string
	Payload   json.RawMessage
	Indent    int
	Start     int
	End       int

	children []*Region
}

// Interactive reports whether the region responds to activation.
func (r *Region) Interactive() bool {
	return r.Kind != KindStatic
}

// Toggleable reports whether activation flips visibility.
func (r *Region) Toggleable() bool {
	return r.Kind == KindToggle || r.Kind == KindModule || r.Kind == KindItem
}

// NeedsFetch reports whether the next activation must fetch the
// region's detail content first. True exactly once per render cycle:
// SetDetail flips Loaded and nothing resets it short of a full rebuild.
func (r *Region) NeedsFetch() bool {
	return r.Kind == KindItem && !r.Loaded && r.DetailURL != ""
}

// Rendered reports whether the region's trigger appeared in the last
// Render pass.
func (r *Region) Rendered() bool {
	return r.Start >= 0
}

// Contains reports whether line falls inside the region's last
// rendered span.
func (r *Region) Contains(line int) bool {
	return r.Rendered() && line >= r.Start && line <= r.End
}

// Section is one named part of the document (Announcements, Modules, ...).
type Section struct {
	Name    string
	regions []*Region
	doc     *Document
}

// Document is the renderable course page.
type Document struct {
	Title    string
	sections []*Section
	buttons  []*Region
	byID     map[int]*Region
	order    []*Region
	nextID   int

	lines    []string
	headings map[string]int
}

// New starts an empty document titled title.
func New(title string) *Document {
	return &Document{
		Title:    title,
		byID:     make(map[int]*Region),
		headings: make(map[string]int),
	}
}

func (d *Document) newRegion(kind RegionKind, label string) *Region {
	r := &Region{
		ID:     d.nextID,
		Kind:   kind,
		Label:  label,
		Hidden: true,
		Start:  -1,
		End:    -1,
	}
	d.nextID++
	d.byID[r.ID] = r
	d.order = append(d.order, r)
	return r
}

// AddButton appends a top-level action control rendered under the title.
func (d *Document) AddButton(label string) *Region {
	r := d.newRegion(KindButton, label)
	r.Hidden = false
	d.buttons = append(d.buttons, r)
	return r
}

// Section appends a named section and returns it.
func (d *Document) Section(name string) *Section {
	s := &Section{Name: name, doc: d}
	d.sections = append(d.sections, s)
	return s
}

// AddToggle appends a collapsible region with an eagerly-inlined body.
func (s *Section) AddToggle(label string, body []string) *Region {
	r := s.doc.newRegion(KindToggle, label)
	r.Body = body
	s.regions = append(s.regions, r)
	return r
}

// AddModule appends a module toggle; its items are attached with AddItem.
func (s *Section) AddModule(label string) *Region {
	r := s.doc.newRegion(KindModule, label)
	s.regions = append(s.regions, r)
	return r
}

// AddItem attaches a module item to a module region. Items with a
// detail URL become lazily-loaded toggles; items without one render as
// static labels.
func (d *Document) AddItem(module *Region, label, detailURL string, indent int) *Region {
	kind := KindItem
	if detailURL == "" {
		kind = KindStatic
	}
	r := d.newRegion(kind, label)
	r.DetailURL = detailURL
	r.Indent = indent
	module.children = append(module.children, r)
	return r
}

// Region looks up a region by id.
func (d *Document) Region(id int) *Region {
	return d.byID[id]
}

// Regions returns the region table in document order.
func (d *Document) Regions() []*Region {
	return d.order
}

// Toggle flips the visibility of a toggleable region and returns it.
// Static labels and buttons are left alone.
func (d *Document) Toggle(id int) *Region {
	r := d.byID[id]
	if r != nil && r.Toggleable() {
		r.Hidden = !r.Hidden
	}
	return r
}

// Reveal makes a toggleable region visible regardless of prior state.
func (d *Document) Reveal(id int) *Region {
	r := d.byID[id]
	if r != nil && r.Toggleable() {
		r.Hidden = false
	}
	return r
}

// SetDetail installs fetched detail content on a lazily-loaded item.
// The region stays in its current visibility; marking it loaded is what
// guarantees at most one fetch per render cycle.
func (d *Document) SetDetail(id int, body []string, payload json.RawMessage) {
	r := d.byID[id]
	if r == nil {
		return
	}
	r.Body = body
	if payload != nil {
		r.Payload = payload
	}
	r.Loaded = true
}

const placeholder = "  no contents"

// Render produces the document lines and recomputes every region's
// line span. Regions whose trigger is not visible (items inside a
// collapsed module) get span -1/-1.
func (d *Document) Render() []string {
	for _, r := range d.order {
		r.Start, r.End = -1, -1
	}
	d.headings = make(map[string]int)

	var lines []string
	lines = append(lines, d.Title)
	for _, b := range d.buttons {
		b.Start = len(lines)
		lines = append(lines, "["+b.Label+"]")
		b.End = len(lines) - 1
	}
	lines = append(lines, "")

	for _, s := range d.sections {
		d.headings[s.Name] = len(lines)
		lines = append(lines, s.Name)
		if len(s.regions) == 0 {
			lines = append(lines, placeholder)
		}
		for _, r := range s.regions {
			lines = d.renderRegion(lines, r)
		}
		lines = append(lines, "")
	}

	d.lines = lines
	return lines
}

func (d *Document) renderRegion(lines []string, r *Region) []string {
	indent := strings.Repeat("  ", r.Indent+1)

	r.Start = len(lines)
	switch r.Kind {
	case KindStatic:
		lines = append(lines, indent+"  "+r.Label)
	default:
		marker := "+"
		if !r.Hidden {
			marker = "-"
		}
		lines = append(lines, indent+marker+" "+r.Label)
	}

	if !r.Hidden {
		body := r.Body
		if len(body) == 0 && r.Kind != KindModule {
			body = []string{strings.TrimLeft(placeholder, " ")}
		}
		for _, line := range body {
			lines = append(lines, indent+"  "+line)
		}
		for _, child := range r.children {
			lines = d.renderRegion(lines, child)
		}
	}

	r.End = len(lines) - 1
	return lines
}

// Lines returns the last Render result.
func (d *Document) Lines() []string {
	return d.lines
}

// Heading returns the line of the first occurrence of a section
// heading in the last render, scanning from document start. The second
// return is false when the heading does not exist; callers treat that
// as a no-op rather than a failure.
func (d *Document) Heading(name string) (int, bool) {
	line, ok := d.headings[name]
	return line, ok
}

// NextInteractive returns the nearest interactive region after (dir > 0)
// or before (dir < 0) fromLine among currently rendered regions. A
// region whose span contains fromLine is skipped, so repeated presses
// always move. Returns nil at either end of the document.
func (d *Document) NextInteractive(fromLine, dir int) *Region {
	var best *Region
	for _, r := range d.order {
		if !r.Rendered() || !r.Interactive() || r.Contains(fromLine) {
			continue
		}
		if dir >= 0 {
			if r.Start > fromLine && (best == nil || r.Start < best.Start) {
				best = r
			}
		} else {
			if r.Start < fromLine && (best == nil || r.Start > best.Start) {
				best = r
			}
		}
	}
	return best
}

// RegionAt returns the innermost rendered region whose span contains
// line, preferring the one with the greatest Start (deepest nesting).
func (d *Document) RegionAt(line int) *Region {
	var best *Region
	for _, r := range d.order {
		if r.Contains(line) && (best == nil || r.Start >= best.Start) {
			best = r
		}
	}
	return best
}

// FirstToggleAfter returns the first toggleable region whose trigger
// renders at or after line; used by the frontpage jump's eager reveal.
func (d *Document) FirstToggleAfter(line int) *Region {
	var best *Region
	for _, r := range d.order {
		if !r.Rendered() || !r.Toggleable() {
			continue
		}
		if r.Start >= line && (best == nil || r.Start < best.Start) {
			best = r
		}
	}
	return best
}
