package models

// KidCourseProgress tracks a kid's position within one enrolled course
type KidCourseProgress struct {
	KidID              string   `json:"kidId"`
	CourseID           string   `json:"courseId"`
	CompletedLessonIDs []string `json:"completedLessonIds,omitempty"`
	CurrentLessonIndex int      `json:"currentLessonIndex"`
}

// ProgressKey builds the composite map key for a kid/course pair
func ProgressKey(kidID, courseID string) string {
	return kidID + "_" + courseID
}

// HasCompleted reports whether the lesson is already in the completed list
func (p KidCourseProgress) HasCompleted(lessonID string) bool {
	for _, id := range p.CompletedLessonIDs {
		if id == lessonID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the progress record
func (p KidCourseProgress) Clone() KidCourseProgress {
	out := p
	out.CompletedLessonIDs = append([]string(nil), p.CompletedLessonIDs...)
	return out
}
