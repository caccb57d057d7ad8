package api

// Typed responses for the Canvas REST endpoints this client consumes.
// Timestamps stay as the ISO-8601 strings Canvas sends; they sort and
// compare lexicographically and some instances return date-only values.

// User is the authenticated user from /users/self.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
	LoginID   string `json:"login_id,omitempty"`
}

// Course is one entry from /users/{id}/courses.
type Course struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CourseCode string `json:"course_code,omitempty"`
	StartAt    string `json:"start_at,omitempty"`
	EndAt      string `json:"end_at,omitempty"`
}

// Announcement is one entry from /announcements.
type Announcement struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Message  string `json:"message,omitempty"`
	PostedAt string `json:"posted_at,omitempty"`
	HTMLURL  string `json:"html_url,omitempty"`
}

// Page is a wiki page, notably the course front page.
type Page struct {
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	URL       string `json:"url,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Assignment is one entry from /courses/{id}/assignments.
type Assignment struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	DueAt          string  `json:"due_at,omitempty"`
	PointsPossible float64 `json:"points_possible,omitempty"`
	HTMLURL        string  `json:"html_url,omitempty"`
}

// Module is one entry from /courses/{id}/modules?include[]=items.
type Module struct {
	ID         int64        `json:"id"`
	Name       string       `json:"name"`
	State      string       `json:"state,omitempty"`
	ItemsCount int          `json:"items_count,omitempty"`
	Items      []ModuleItem `json:"items,omitempty"`
}

// ModuleItem is a nested module entry. URL, when present, is an absolute
// API URL whose content is fetched on first expansion. Items without a
// URL (SubHeader rows, external links) render as plain labels.
type ModuleItem struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type,omitempty"`
	Indent  int    `json:"indent,omitempty"`
	URL     string `json:"url,omitempty"`
	HTMLURL string `json:"html_url,omitempty"`
}

// DiscussionTopic is one entry from /courses/{id}/discussion_topics.
type DiscussionTopic struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Message       string `json:"message,omitempty"`
	PostedAt      string `json:"posted_at,omitempty"`
	UnreadCount   int    `json:"unread_count,omitempty"`
	SubentryCount int    `json:"discussion_subentry_count,omitempty"`
}
