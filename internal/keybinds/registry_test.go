package keybinds

import (
	"sort"
	"testing"
)

func TestMatchSpecificContext(t *testing.T) {
	r := NewDefaultRegistry()

	action, ok := r.Match(ContextCourse, "n")
	if !ok || action != ActionNextItem {
		t.Errorf("Expected ActionNextItem for n in course context, got %v (ok=%v)", action, ok)
	}
}

func TestMatchGlobalFallback(t *testing.T) {
	r := NewDefaultRegistry()

	action, ok := r.Match(ContextCourse, "ctrl+c")
	if !ok || action != ActionQuitForce {
		t.Errorf("Expected global ctrl+c fallback, got %v (ok=%v)", action, ok)
	}
}

func TestMatchSpecificBeatsGlobal(t *testing.T) {
	r := NewRegistry()
	r.Register(ContextGlobal, "x", ActionQuit)
	r.Register(ContextCourse, "x", ActionInspect)

	action, _ := r.Match(ContextCourse, "x")
	if action != ActionInspect {
		t.Errorf("Specific binding should win, got %v", action)
	}
	action, _ = r.Match(ContextPicker, "x")
	if action != ActionQuit {
		t.Errorf("Other contexts should see the global binding, got %v", action)
	}
}

func TestMatchUnbound(t *testing.T) {
	r := NewDefaultRegistry()
	if _, ok := r.Match(ContextCourse, "ctrl+z"); ok {
		t.Error("Expected no match for an unbound key")
	}
}

func TestSectionJumpKeysAreUpperCase(t *testing.T) {
	r := NewDefaultRegistry()

	for key, want := range map[string]Action{
		"A": ActionJumpAnnouncements,
		"F": ActionJumpFrontpage,
		"S": ActionJumpAssignments,
		"M": ActionJumpModules,
		"D": ActionJumpDiscussions,
	} {
		action, ok := r.Match(ContextCourse, key)
		if !ok || action != want {
			t.Errorf("Expected %v for %q, got %v (ok=%v)", want, key, action, ok)
		}
	}

	// The lower-case counterparts stay free for navigation.
	if action, _ := r.Match(ContextCourse, "r"); action != ActionReloadPage {
		t.Errorf("Expected r to reload, got %v", action)
	}
}

func TestKeysForAction(t *testing.T) {
	r := NewDefaultRegistry()

	keys := r.Keys(ContextCourse, ActionActivate)
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != " " || keys[1] != "enter" {
		t.Errorf("Expected enter and space bound to activate, got %v", keys)
	}
}
