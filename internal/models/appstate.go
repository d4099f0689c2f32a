package models

// CurrentSchemaVersion is the version written into every persisted state
// blob. Blobs with an older version are migrated on load.
const CurrentSchemaVersion = 2

// AdminProfile is the denormalized copy of the active admin's profile
type AdminProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// AppState is the canonical application state persisted to device storage.
// Remote catalog data and derived snapshots are intentionally not part of
// it; they are rebuilt at boot and on read.
type AppState struct {
	SchemaVersion           int                          `json:"schemaVersion"`
	CurrentUserRole         Role                         `json:"currentUserRole"`
	CurrentKidProfileID     string                       `json:"currentKidProfileId,omitempty"`
	CurrentParentProfileID  string                       `json:"currentParentProfileId,omitempty"`
	CurrentTeacherProfileID string                       `json:"currentTeacherProfileId,omitempty"`
	CurrentAdminProfileID   string                       `json:"currentAdminProfileId,omitempty"`
	AdminProfile            *AdminProfile                `json:"adminProfile,omitempty"`
	KidProfiles             []KidProfile                 `json:"kidProfiles,omitempty"`
	ParentalControls        map[string]ParentalControls  `json:"parentalControlsMap,omitempty"`
	CourseProgress          map[string]KidCourseProgress `json:"courseProgress,omitempty"`
	ChatConversations       []ChatConversation           `json:"chatConversations,omitempty"`
	ChatMessages            []ChatMessage                `json:"chatMessages,omitempty"`
	OnboardingComplete      bool                         `json:"onboardingComplete"`
}

// DefaultAppState returns the hardcoded boot state used before any blob is
// loaded and after a logout/reset
func DefaultAppState() AppState {
	return AppState{
		SchemaVersion:    CurrentSchemaVersion,
		CurrentUserRole:  RoleNone,
		ParentalControls: make(map[string]ParentalControls),
		CourseProgress:   make(map[string]KidCourseProgress),
	}
}

// KidByID returns the kid profile with the given id, or nil
func (s AppState) KidByID(id string) *KidProfile {
	for i := range s.KidProfiles {
		if s.KidProfiles[i].ID == id {
			return &s.KidProfiles[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the state. Mutations always operate on a
// clone so that consumers holding a previous snapshot never observe
// in-place changes.
func (s AppState) Clone() AppState {
	out := s
	if s.AdminProfile != nil {
		admin := *s.AdminProfile
		out.AdminProfile = &admin
	}
	out.KidProfiles = make([]KidProfile, len(s.KidProfiles))
	for i, k := range s.KidProfiles {
		out.KidProfiles[i] = k.Clone()
	}
	out.ParentalControls = make(map[string]ParentalControls, len(s.ParentalControls))
	for id, c := range s.ParentalControls {
		out.ParentalControls[id] = c.Clone()
	}
	out.CourseProgress = make(map[string]KidCourseProgress, len(s.CourseProgress))
	for key, p := range s.CourseProgress {
		out.CourseProgress[key] = p.Clone()
	}
	out.ChatConversations = make([]ChatConversation, len(s.ChatConversations))
	for i, c := range s.ChatConversations {
		out.ChatConversations[i] = c.Clone()
	}
	out.ChatMessages = append([]ChatMessage(nil), s.ChatMessages...)
	return out
}

// Catalog holds the remotely sourced collections. It lives outside AppState
// because it is reloaded from the backend at boot, never persisted locally.
type Catalog struct {
	Teachers   []TeacherProfile `json:"teachers,omitempty"`
	Courses    []Course         `json:"courses,omitempty"`
	Activities []Activity       `json:"activities,omitempty"`
	Reviews    []Review         `json:"reviews,omitempty"`
}

// CourseByID returns the course with the given id, or nil
func (c Catalog) CourseByID(id string) *Course {
	for i := range c.Courses {
		if c.Courses[i].ID == id {
			return &c.Courses[i]
		}
	}
	return nil
}

// TeacherByID returns the teacher with the given id, or nil
func (c Catalog) TeacherByID(id string) *TeacherProfile {
	for i := range c.Teachers {
		if c.Teachers[i].ID == id {
			return &c.Teachers[i]
		}
	}
	return nil
}

// ActivityByID returns the activity with the given id, or nil
func (c Catalog) ActivityByID(id string) *Activity {
	for i := range c.Activities {
		if c.Activities[i].ID == id {
			return &c.Activities[i]
		}
	}
	return nil
}
