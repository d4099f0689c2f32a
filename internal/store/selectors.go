package store

import (
	"sort"

	"kidventure/internal/models"
)

// Selectors are pure projections over the canonical state, recomputed on
// every read. Nothing here is cached as a parallel mutable field.

// ActiveKidProfile returns the kid profile matching the current kid id,
// or nil when no kid is active or the id no longer resolves
func (s *Store) ActiveKidProfile() *models.KidProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kid := s.state.KidByID(s.state.CurrentKidProfileID)
	if kid == nil {
		return nil
	}
	out := kid.Clone()
	return &out
}

// ActiveTeacherProfile returns the catalog record for the logged-in
// teacher, or nil
func (s *Store) ActiveTeacherProfile() *models.TeacherProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.CurrentTeacherProfileID == "" {
		return nil
	}
	t := s.catalog.TeacherByID(s.state.CurrentTeacherProfileID)
	if t == nil {
		return nil
	}
	out := *t
	return &out
}

// ActiveAdminProfile returns the denormalized admin profile, or nil
func (s *Store) ActiveAdminProfile() *models.AdminProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.AdminProfile == nil {
		return nil
	}
	out := *s.state.AdminProfile
	return &out
}

// ControlsForKid returns the parental controls for a kid, default-filled
// when no explicit entry exists
func (s *Store) ControlsForKid(kidID string) models.ParentalControls {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.state.ParentalControls[kidID]; ok {
		return c.Clone()
	}
	return models.DefaultParentalControls(kidID)
}

// ProgressFor returns the progress record for a kid/course pair
func (s *Store) ProgressFor(kidID, courseID string) (models.KidCourseProgress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state.CourseProgress[models.ProgressKey(kidID, courseID)]
	if !ok {
		return models.KidCourseProgress{}, false
	}
	return p.Clone(), true
}

// ConversationsFor returns the conversations the given user participates
// in, most recently active first
func (s *Store) ConversationsFor(userID string) []models.ChatConversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ChatConversation
	for _, c := range s.state.ChatConversations {
		if c.HasParticipant(userID) {
			out = append(out, c.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageTimestamp.After(out[j].LastMessageTimestamp)
	})
	return out
}

// MessagesFor returns the messages of a conversation in timestamp order
func (s *Store) MessagesFor(conversationID string) []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.ChatMessage
	for _, m := range s.state.ChatMessages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// UnreadTotal returns the sum of unread counters for a user across all
// their conversations
func (s *Store) UnreadTotal(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, c := range s.state.ChatConversations {
		if c.HasParticipant(userID) {
			total += c.UnreadCounts[userID]
		}
	}
	return total
}

// activeParticipantLocked resolves the chat identity of the current user
// from the logged-in role. The caller must hold at least a read lock.
func (s *Store) activeParticipantLocked() (models.ChatParticipant, bool) {
	switch s.state.CurrentUserRole {
	case models.RoleKid:
		kid := s.state.KidByID(s.state.CurrentKidProfileID)
		if kid == nil {
			return models.ChatParticipant{}, false
		}
		return models.ChatParticipant{ID: kid.ID, Role: models.RoleKid, Name: kid.Name, Avatar: kid.Avatar}, true
	case models.RoleParent:
		if s.state.CurrentParentProfileID == "" {
			return models.ChatParticipant{}, false
		}
		return models.ChatParticipant{ID: s.state.CurrentParentProfileID, Role: models.RoleParent, Name: "Parent"}, true
	case models.RoleTeacher:
		if s.state.CurrentTeacherProfileID == "" {
			return models.ChatParticipant{}, false
		}
		p := models.ChatParticipant{ID: s.state.CurrentTeacherProfileID, Role: models.RoleTeacher}
		if t := s.catalog.TeacherByID(s.state.CurrentTeacherProfileID); t != nil {
			p.Name = t.Name
			p.Avatar = t.Avatar
		}
		return p, true
	case models.RoleAdmin:
		if s.state.AdminProfile == nil {
			return models.ChatParticipant{}, false
		}
		return models.ChatParticipant{
			ID:     s.state.AdminProfile.ID,
			Role:   models.RoleAdmin,
			Name:   s.state.AdminProfile.Name,
			Avatar: s.state.AdminProfile.Avatar,
		}, true
	}
	return models.ChatParticipant{}, false
}

// ActiveParticipant resolves the chat identity of the current user
func (s *Store) ActiveParticipant() (models.ChatParticipant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeParticipantLocked()
}
