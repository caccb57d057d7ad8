package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/canvascli/internal/api"
)

var (
	pickerTitleStyle = lipgloss.NewStyle().MarginLeft(2).Bold(true)
)

// courseItem adapts an api.Course to the bubbles list.
type courseItem struct {
	course api.Course
}

func (i courseItem) FilterValue() string {
	return i.course.Name + " " + i.course.CourseCode
}

func (i courseItem) Title() string {
	return i.course.Name
}

func (i courseItem) Description() string {
	desc := i.course.CourseCode
	if i.course.StartAt != "" {
		start := i.course.StartAt
		if len(start) > 10 {
			start = start[:10]
		}
		if desc != "" {
			desc += " · "
		}
		desc += "starts " + start
	}
	if desc == "" {
		desc = fmt.Sprintf("course %d", i.course.ID)
	}
	return desc
}

// newPicker builds the course picker list. The items arrive sorted by
// start date descending from the session layer.
func newPicker() list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 80, 20)
	l.Title = "Canvas courses"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = pickerTitleStyle
	return l
}

func (m *Model) setPickerItems(courses []api.Course) {
	items := make([]list.Item, 0, len(courses))
	for _, c := range courses {
		items = append(items, courseItem{course: c})
	}
	m.picker.SetItems(items)
	m.pickerReady = true
}
