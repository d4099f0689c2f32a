package store

import "kidventure/internal/models"

// lessonXP is the fixed reward for completing a lesson
const lessonXP = 10

// EnrollInCourse adds a course to a kid's enrolled set and creates the
// matching progress record. Enrolling twice is a no-op: the enrolled set
// never holds duplicates.
func (s *Store) EnrollInCourse(kidID, courseID string) error {
	s.mu.Lock()
	kid := s.state.KidByID(kidID)
	if kid == nil {
		s.mu.Unlock()
		return ErrKidNotFound
	}
	if s.catalogLoaded && s.catalog.CourseByID(courseID) == nil {
		s.mu.Unlock()
		return ErrCourseNotFound
	}
	if kid.IsEnrolled(courseID) {
		s.mu.Unlock()
		return nil
	}

	next := s.state.Clone()
	for i := range next.KidProfiles {
		if next.KidProfiles[i].ID == kidID {
			next.KidProfiles[i].EnrolledCourseIDs = append(next.KidProfiles[i].EnrolledCourseIDs, courseID)
			break
		}
	}
	key := models.ProgressKey(kidID, courseID)
	if _, ok := next.CourseProgress[key]; !ok {
		next.CourseProgress[key] = models.KidCourseProgress{KidID: kidID, CourseID: courseID}
	}
	s.finalize(&next)
	s.commitLocked(next)
	return nil
}

// UpdateLessonProgress records a completed lesson, advances the current
// lesson cursor and grants the fixed XP reward. Completing the same
// lesson twice leaves the state untouched.
func (s *Store) UpdateLessonProgress(kidID, courseID, lessonID string) error {
	s.mu.Lock()
	if s.state.KidByID(kidID) == nil {
		s.mu.Unlock()
		return ErrKidNotFound
	}
	key := models.ProgressKey(kidID, courseID)
	prog, ok := s.state.CourseProgress[key]
	if !ok {
		s.mu.Unlock()
		return ErrNotEnrolled
	}
	if prog.HasCompleted(lessonID) {
		s.mu.Unlock()
		return nil
	}

	next := s.state.Clone()
	updated := next.CourseProgress[key]
	updated.CompletedLessonIDs = append(updated.CompletedLessonIDs, lessonID)

	// The cursor only advances when the completed lesson has a known
	// position and a lesson after it
	if course := s.catalog.CourseByID(courseID); course != nil {
		if pos := course.LessonIndex(lessonID); pos >= 0 && pos+1 < len(course.Lessons) {
			updated.CurrentLessonIndex = pos + 1
		}
	}
	next.CourseProgress[key] = updated

	for i := range next.KidProfiles {
		if next.KidProfiles[i].ID == kidID {
			next.KidProfiles[i].XP += lessonXP
			next.KidProfiles[i].UpdatedAt = s.now()
			break
		}
	}
	s.finalize(&next)
	s.commitLocked(next)
	return nil
}
