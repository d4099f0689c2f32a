package navigation

import "strings"

// View is a logical screen identifier, decoupled from the route name the
// underlying navigator uses
type View string

const (
	ViewSplash           View = "splash"
	ViewRoleSelection    View = "role_selection"
	ViewLogin            View = "login"
	ViewOnboarding       View = "onboarding"
	ViewKidHome          View = "kid_home"
	ViewParentDashboard  View = "parent_dashboard"
	ViewTeacherDashboard View = "teacher_dashboard"
	ViewAdminDashboard   View = "admin_dashboard"
	ViewCourseCatalog    View = "course_catalog"
	ViewCourseDetail     View = "course_detail"
	ViewLessonPlayer     View = "lesson_player"
	ViewActivityList     View = "activity_list"
	ViewChatList         View = "chat_list"
	ViewChatConversation View = "chat_conversation"
	ViewParentalControls View = "parental_controls"
	ViewSettings         View = "settings"
)

var allViews = []View{
	ViewSplash, ViewRoleSelection, ViewLogin, ViewOnboarding,
	ViewKidHome, ViewParentDashboard, ViewTeacherDashboard, ViewAdminDashboard,
	ViewCourseCatalog, ViewCourseDetail, ViewLessonPlayer, ViewActivityList,
	ViewChatList, ViewChatConversation, ViewParentalControls, ViewSettings,
}

// Valid reports whether the view is part of the closed set
func (v View) Valid() bool {
	for _, known := range allViews {
		if v == known {
			return true
		}
	}
	return false
}

// DefaultPath is the route used when the caller passes no explicit path
func (v View) DefaultPath() string {
	return "/" + string(v)
}

// viewForRoute maps a navigator route name back to a logical view.
// Matching is best effort: exact path first, then the last path segment
// against the view names, ignoring case and separators.
func viewForRoute(route string) (View, bool) {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return ViewSplash, true
	}

	segments := strings.Split(trimmed, "/")
	last := normalizeSegment(segments[len(segments)-1])
	first := normalizeSegment(segments[0])

	for _, v := range allViews {
		name := normalizeSegment(string(v))
		if last == name || first == name {
			return v, true
		}
	}
	return "", false
}

func normalizeSegment(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}
