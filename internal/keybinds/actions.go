package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	ContextGlobal  Context = "global"  // Available everywhere
	ContextPicker  Context = "picker"  // Course picker list
	ContextCourse  Context = "course"  // Course document view
	ContextInspect Context = "inspect" // Raw JSON inspect modal
	ContextFilter  Context = "filter"  // JMESPath filter input
	ContextHelp    Context = "help"    // Help viewer
)

const (
	// Global actions
	ActionQuit      Action = "quit"
	ActionQuitForce Action = "quit_force"
	ActionHelp      Action = "help"

	// Picker actions
	ActionPickCourse  Action = "pick_course"
	ActionReloadList  Action = "reload_list"
	ActionBackToList  Action = "back_to_list"

	// Document navigation
	ActionCursorUp     Action = "cursor_up"
	ActionCursorDown   Action = "cursor_down"
	ActionPageUp       Action = "page_up"
	ActionPageDown     Action = "page_down"
	ActionGoToTop      Action = "go_to_top"
	ActionGoToBottom   Action = "go_to_bottom"
	ActionNextItem     Action = "next_item"     // next interactive item
	ActionPrevItem     Action = "prev_item"     // previous interactive item
	ActionNextControl  Action = "next_control"  // next clickable control
	ActionPrevControl  Action = "prev_control"  // previous clickable control
	ActionActivate     Action = "activate"      // toggle/click the focused region

	// Section jumps
	ActionJumpAnnouncements Action = "jump_announcements"
	ActionJumpFrontpage     Action = "jump_frontpage"
	ActionJumpAssignments   Action = "jump_assignments"
	ActionJumpModules       Action = "jump_modules"
	ActionJumpDiscussions   Action = "jump_discussions"

	// Page actions
	ActionReloadPage Action = "reload_page"
	ActionInspect    Action = "inspect"
	ActionYank       Action = "yank"

	// Inspect modal actions
	ActionCloseModal  Action = "close_modal"
	ActionOpenFilter  Action = "open_filter"
	ActionClearFilter Action = "clear_filter"
	ActionScrollUp    Action = "scroll_up"
	ActionScrollDown  Action = "scroll_down"
)
