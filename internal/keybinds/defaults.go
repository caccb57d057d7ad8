package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerPickerBindings(r)
	registerCourseBindings(r)
	registerInspectBindings(r)
	registerHelpBindings(r)

	return r
}

func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "?", ActionHelp)
}

func registerPickerBindings(r *Registry) {
	r.Register(ContextPicker, "enter", ActionPickCourse)
	r.Register(ContextPicker, "r", ActionReloadList)
	r.Register(ContextPicker, "q", ActionQuit)
}

func registerCourseBindings(r *Registry) {
	// Cursor movement
	r.RegisterMultiple(ContextCourse, []string{"up", "k"}, ActionCursorUp)
	r.RegisterMultiple(ContextCourse, []string{"down", "j"}, ActionCursorDown)
	r.Register(ContextCourse, "pgup", ActionPageUp)
	r.Register(ContextCourse, "pgdown", ActionPageDown)
	r.RegisterMultiple(ContextCourse, []string{"home", "g"}, ActionGoToTop)
	r.RegisterMultiple(ContextCourse, []string{"end", "G"}, ActionGoToBottom)

	// Interactive-item jumps, distinct from the control-order keys
	r.Register(ContextCourse, "n", ActionNextItem)
	r.Register(ContextCourse, "p", ActionPrevItem)
	r.Register(ContextCourse, "tab", ActionNextControl)
	r.Register(ContextCourse, "shift+tab", ActionPrevControl)

	// Activation
	r.RegisterMultiple(ContextCourse, []string{"enter", " "}, ActionActivate)

	// Section jumps
	r.Register(ContextCourse, "A", ActionJumpAnnouncements)
	r.Register(ContextCourse, "F", ActionJumpFrontpage)
	r.Register(ContextCourse, "S", ActionJumpAssignments)
	r.Register(ContextCourse, "M", ActionJumpModules)
	r.Register(ContextCourse, "D", ActionJumpDiscussions)

	// Page actions
	r.Register(ContextCourse, "r", ActionReloadPage)
	r.Register(ContextCourse, "i", ActionInspect)
	r.Register(ContextCourse, "y", ActionYank)
	r.Register(ContextCourse, "q", ActionBackToList)
}

func registerInspectBindings(r *Registry) {
	r.RegisterMultiple(ContextInspect, []string{"esc", "q", "i"}, ActionCloseModal)
	r.Register(ContextInspect, "/", ActionOpenFilter)
	r.Register(ContextInspect, "c", ActionClearFilter)
	r.RegisterMultiple(ContextInspect, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextInspect, []string{"down", "j"}, ActionScrollDown)
	r.Register(ContextInspect, "pgup", ActionPageUp)
	r.Register(ContextInspect, "pgdown", ActionPageDown)
	r.Register(ContextInspect, "y", ActionYank)
}

func registerHelpBindings(r *Registry) {
	r.RegisterMultiple(ContextHelp, []string{"esc", "q", "?"}, ActionCloseModal)
	r.RegisterMultiple(ContextHelp, []string{"up", "k"}, ActionScrollUp)
	r.RegisterMultiple(ContextHelp, []string{"down", "j"}, ActionScrollDown)
}
