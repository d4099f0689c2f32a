package store

import (
	"fmt"
	"log"

	"kidventure/internal/models"
	"kidventure/internal/validation"
)

// AddKidProfile creates a new kid profile owned by the active parent,
// together with its parental controls. Both records are written in a
// single state update. The provided kid data is merged over defaults and
// given a generated id and, if none was chosen, a random avatar.
func (s *Store) AddKidProfile(kid models.KidProfile, controls models.ParentalControls) (models.KidProfile, error) {
	if err := validation.ValidateKidName(kid.Name); err != nil {
		return models.KidProfile{}, err
	}

	s.mu.Lock()
	if s.state.CurrentParentProfileID == "" {
		s.mu.Unlock()
		return models.KidProfile{}, ErrNoActiveParent
	}

	now := s.now()
	kid.ID = s.newID()
	kid.ParentID = s.state.CurrentParentProfileID
	kid.CreatedAt = now
	kid.UpdatedAt = now
	if kid.Avatar == "" {
		avatar, err := s.pickAvatar()
		if err != nil {
			s.mu.Unlock()
			return models.KidProfile{}, fmt.Errorf("failed to pick avatar: %w", err)
		}
		kid.Avatar = avatar
	}
	if kid.Level == 0 {
		kid.Level = 1
	}
	if kid.LearningLevel == "" {
		kid.LearningLevel = models.LearningLevelBeginner
	}

	merged := models.DefaultParentalControls(kid.ID)
	if controls.ScreenTimeLimitMins > 0 {
		merged.ScreenTimeLimitMins = controls.ScreenTimeLimitMins
	}
	merged.ContentFilters = append([]string(nil), controls.ContentFilters...)
	merged.PremiumAccess = controls.PremiumAccess
	merged.BlockedTeacherIDs = append([]string(nil), controls.BlockedTeacherIDs...)
	merged.SubscribedCourseIDs = append([]string(nil), controls.SubscribedCourseIDs...)
	merged.PINHash = controls.PINHash

	next := s.state.Clone()
	next.KidProfiles = append(next.KidProfiles, kid.Clone())
	next.ParentalControls[kid.ID] = merged
	s.finalize(&next)
	s.commitLocked(next)

	return kid, nil
}

// UpdateKidProfileAndControls replaces a kid profile and its controls by
// id in one state update. There is no partial update path: callers always
// supply both records.
func (s *Store) UpdateKidProfileAndControls(kid models.KidProfile, controls models.ParentalControls) error {
	if err := validation.ValidateKidName(kid.Name); err != nil {
		return err
	}

	s.mu.Lock()
	existing := s.state.KidByID(kid.ID)
	if existing == nil {
		s.mu.Unlock()
		return ErrKidNotFound
	}

	kid.ParentID = existing.ParentID
	kid.CreatedAt = existing.CreatedAt
	kid.UpdatedAt = s.now()
	controls.KidID = kid.ID

	next := s.state.Clone()
	for i := range next.KidProfiles {
		if next.KidProfiles[i].ID == kid.ID {
			next.KidProfiles[i] = kid.Clone()
			break
		}
	}
	next.ParentalControls[kid.ID] = controls.Clone()
	s.finalize(&next)
	s.commitLocked(next)
	return nil
}

// SwitchToKid puts the app into kid mode for one of the active parent's
// kids (masquerading). Fails when the kid is missing or belongs to a
// different parent.
func (s *Store) SwitchToKid(kidID string) error {
	s.mu.Lock()
	if s.state.CurrentParentProfileID == "" {
		s.mu.Unlock()
		return ErrNoActiveParent
	}
	kid := s.state.KidByID(kidID)
	if kid == nil {
		s.mu.Unlock()
		return ErrKidNotFound
	}
	if kid.ParentID != s.state.CurrentParentProfileID {
		s.mu.Unlock()
		return ErrNotParentsKid
	}

	next := s.state.Clone()
	next.CurrentUserRole = models.RoleKid
	next.CurrentKidProfileID = kidID
	s.finalize(&next)
	s.commitLocked(next)
	return nil
}

// SwitchToParent leaves kid mode and returns to the parent view. If no
// parent id is present the only safe option is a full logout.
func (s *Store) SwitchToParent() error {
	s.mu.Lock()
	if s.state.CurrentParentProfileID == "" {
		log.Println("Warning: switch to parent without a parent profile, resetting state")
		s.catalog = models.Catalog{}
		s.catalogLoaded = false
		s.commitLocked(models.DefaultAppState())
		return ErrNoActiveParent
	}

	next := s.state.Clone()
	next.CurrentUserRole = models.RoleParent
	next.CurrentKidProfileID = ""
	s.finalize(&next)
	s.commitLocked(next)
	return nil
}

// SignInParent activates a parent profile
func (s *Store) SignInParent(parentID string) {
	s.mu.Lock()
	next := s.state.Clone()
	next.CurrentUserRole = models.RoleParent
	next.CurrentParentProfileID = parentID
	next.CurrentKidProfileID = ""
	s.finalize(&next)
	s.commitLocked(next)
}

// SignInTeacher activates a teacher profile
func (s *Store) SignInTeacher(teacherID string) {
	s.mu.Lock()
	next := s.state.Clone()
	next.CurrentUserRole = models.RoleTeacher
	next.CurrentTeacherProfileID = teacherID
	s.finalize(&next)
	s.commitLocked(next)
}

// SignInAdmin activates an admin profile, keeping the denormalized copy
// in state for convenience
func (s *Store) SignInAdmin(profile models.AdminProfile) {
	s.mu.Lock()
	next := s.state.Clone()
	next.CurrentUserRole = models.RoleAdmin
	next.CurrentAdminProfileID = profile.ID
	next.AdminProfile = &profile
	s.finalize(&next)
	s.commitLocked(next)
}

// CompleteOnboarding marks the first-run flow as finished
func (s *Store) CompleteOnboarding() {
	s.mu.Lock()
	next := s.state.Clone()
	next.OnboardingComplete = true
	s.finalize(&next)
	s.commitLocked(next)
}
