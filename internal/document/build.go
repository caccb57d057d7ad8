package document

import (
	"encoding/json"
	"fmt"

	"github.com/studiowebux/canvascli/internal/api"
	"github.com/studiowebux/canvascli/internal/render"
)

// Section headings, in the fixed order the course page renders them.
const (
	SectionAnnouncements = "Announcements"
	SectionFrontpage     = "Frontpage"
	SectionAssignments   = "Assignments"
	SectionModules       = "Modules"
	SectionDiscussions   = "Discussions"
)

// SectionNames lists the headings in render order.
var SectionNames = []string{
	SectionAnnouncements,
	SectionFrontpage,
	SectionAssignments,
	SectionModules,
	SectionDiscussions,
}

// ReloadLabel is the label of the page's reload button region.
const ReloadLabel = "Reload"

// CourseData carries everything one course page is built from. Nil or
// empty fields render as an empty section; the fetch layer already
// degraded any failures to zero values.
type CourseData struct {
	Course        api.Course
	Announcements []api.Announcement
	FrontPage     *api.Page
	Assignments   []api.Assignment
	Modules       []api.Module
	Discussions   []api.DiscussionTopic
}

// Build assembles a fresh course document. Every toggle starts hidden;
// rebuilding from new data is the only way region state resets.
func Build(data CourseData) *Document {
	d := New(data.Course.Name)
	d.AddButton(ReloadLabel)

	ann := d.Section(SectionAnnouncements)
	for _, a := range data.Announcements {
		body := []string{"Posted: " + shortDate(a.PostedAt), ""}
		body = append(body, render.Lines(a.Message)...)
		r := ann.AddToggle(a.Title, body)
		r.Payload = marshal(a)
	}

	front := d.Section(SectionFrontpage)
	if data.FrontPage != nil {
		r := front.AddToggle(data.FrontPage.Title, render.Lines(data.FrontPage.Body))
		r.Payload = marshal(data.FrontPage)
	}

	asg := d.Section(SectionAssignments)
	for _, a := range data.Assignments {
		var body []string
		if a.DueAt != "" {
			body = append(body, "Due: "+shortDate(a.DueAt))
		}
		if a.PointsPossible > 0 {
			body = append(body, fmt.Sprintf("Points: %g", a.PointsPossible))
		}
		if len(body) > 0 {
			body = append(body, "")
		}
		body = append(body, render.Lines(a.Description)...)
		r := asg.AddToggle(a.Name, body)
		r.Payload = marshal(a)
	}

	mods := d.Section(SectionModules)
	for _, m := range data.Modules {
		module := mods.AddModule(m.Name)
		module.Payload = marshal(m)
		for _, item := range m.Items {
			r := d.AddItem(module, item.Title, item.URL, item.Indent+1)
			r.Payload = marshal(item)
		}
	}

	disc := d.Section(SectionDiscussions)
	for _, t := range data.Discussions {
		label := t.Title
		if t.UnreadCount > 0 {
			label = fmt.Sprintf("%s (%d unread)", t.Title, t.UnreadCount)
		}
		body := []string{"Posted: " + shortDate(t.PostedAt), ""}
		body = append(body, render.Lines(t.Message)...)
		r := disc.AddToggle(label, body)
		r.Payload = marshal(t)
	}

	d.Render()
	return d
}

// DetailBody renders a fetched module item detail document. Canvas item
// URLs resolve to heterogeneous records (pages, assignments, files);
// the fields below cover the text-bearing ones.
func DetailBody(raw json.RawMessage) []string {
	fields, err := api.Project(raw, "body", "message", "description", "url")
	if err != nil {
		return []string{"no contents"}
	}
	for _, f := range fields {
		var s string
		if json.Unmarshal(f.Value, &s) != nil || s == "" {
			continue
		}
		if f.Key == "url" {
			return []string{s}
		}
		if lines := render.Lines(s); len(lines) > 0 {
			return lines
		}
	}
	return []string{"no contents"}
}

// shortDate clips an ISO-8601 timestamp to its date part.
func shortDate(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	if ts == "" {
		return "unknown"
	}
	return ts
}

func marshal(v any) json.RawMessage {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil
	}
	return json.RawMessage(data)
}
