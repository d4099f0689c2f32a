package navigation

import "testing"

func TestSetViewPushesAndTracksCurrent(t *testing.T) {
	nav := NewMemoryNavigator()
	bridge := NewBridge(nav)

	if got := bridge.CurrentView(); got != ViewSplash {
		t.Fatalf("initial view = %q, want splash", got)
	}

	bridge.SetViewWithPath(ViewRoleSelection, "", nil)
	bridge.SetViewWithPath(ViewKidHome, "/kid_home", nil)

	if got := bridge.CurrentView(); got != ViewKidHome {
		t.Errorf("current view = %q, want kid_home", got)
	}
	if got := bridge.Depth(); got != 3 {
		t.Errorf("stack depth = %d, want 3", got)
	}
}

func TestSetViewReplaceSwapsTop(t *testing.T) {
	nav := NewMemoryNavigator()
	bridge := NewBridge(nav)

	bridge.SetViewWithPath(ViewLogin, "", nil)
	bridge.SetViewWithPath(ViewParentDashboard, "", &Options{Replace: true})

	if got := bridge.CurrentView(); got != ViewParentDashboard {
		t.Errorf("current view = %q, want parent_dashboard", got)
	}
	if got := bridge.Depth(); got != 2 {
		t.Errorf("stack depth = %d, want 2 after replace", got)
	}
}

func TestOptionsStateCarriedOnEntry(t *testing.T) {
	nav := NewMemoryNavigator()
	bridge := NewBridge(nav)

	bridge.SetViewWithPath(ViewCourseDetail, "/courses/c1", &Options{
		State: map[string]interface{}{"courseId": "c1"},
	})

	entry := bridge.CurrentEntry()
	if entry.Path != "/courses/c1" {
		t.Errorf("path = %q, want /courses/c1", entry.Path)
	}
	if entry.State["courseId"] != "c1" {
		t.Errorf("state = %v, want courseId c1", entry.State)
	}
}

func TestGoBackPopsAndBottomsOut(t *testing.T) {
	nav := NewMemoryNavigator()
	bridge := NewBridge(nav)

	bridge.SetViewWithPath(ViewRoleSelection, "", nil)
	bridge.SetViewWithPath(ViewLogin, "", nil)

	bridge.GoBack()
	if got := bridge.CurrentView(); got != ViewRoleSelection {
		t.Errorf("view after back = %q, want role_selection", got)
	}

	// Backing past the bottom entry must be a no-op, never a panic
	bridge.GoBack()
	bridge.GoBack()
	bridge.GoBack()
	if got := bridge.CurrentView(); got != ViewSplash {
		t.Errorf("view after over-popping = %q, want splash", got)
	}
}

func TestUnknownViewIgnored(t *testing.T) {
	nav := NewMemoryNavigator()
	bridge := NewBridge(nav)

	bridge.SetViewWithPath(View("not_a_screen"), "", nil)
	if got := bridge.CurrentView(); got != ViewSplash {
		t.Errorf("view = %q, unknown views must not navigate", got)
	}
}

func TestExternalRouteChangeReconciles(t *testing.T) {
	nav := NewMemoryNavigator()
	bridge := NewBridge(nav)

	nav.SimulateExternalChange("/chat_list")
	if got := bridge.CurrentView(); got != ViewChatList {
		t.Errorf("view = %q, want chat_list after deep link", got)
	}

	// Unmatched routes keep the current view
	nav.SimulateExternalChange("/totally/unknown/screen")
	if got := bridge.CurrentView(); got != ViewChatList {
		t.Errorf("view = %q, unmatched routes must not change the view", got)
	}
}

func TestExternalBackReconcilesAsPop(t *testing.T) {
	nav := NewMemoryNavigator()
	bridge := NewBridge(nav)

	bridge.SetViewWithPath(ViewKidHome, "", nil)
	bridge.SetViewWithPath(ViewCourseCatalog, "", nil)

	// The platform going back to the previous route pops the logical stack
	nav.SimulateExternalChange("/kid_home")
	if got := bridge.CurrentView(); got != ViewKidHome {
		t.Errorf("view = %q, want kid_home", got)
	}
	if got := bridge.Depth(); got != 2 {
		t.Errorf("depth = %d, want 2 after reconciled back", got)
	}
}

func TestViewForRoute(t *testing.T) {
	tests := []struct {
		route string
		want  View
		ok    bool
	}{
		{"/kid_home", ViewKidHome, true},
		{"kid-home", ViewKidHome, true},
		{"/app/ChatList", ViewChatList, true},
		{"/course_detail/c1", ViewCourseDetail, true},
		{"", ViewSplash, true},
		{"/nothing/here", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			got, ok := viewForRoute(tt.route)
			if ok != tt.ok || got != tt.want {
				t.Errorf("viewForRoute(%q) = %q, %v; want %q, %v", tt.route, got, ok, tt.want, tt.ok)
			}
		})
	}
}
