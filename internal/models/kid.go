package models

import "time"

// AgeGroup buckets kids into the age ranges the course catalog targets
type AgeGroup string

const (
	AgeGroupNone       AgeGroup = ""
	AgeGroupToddler    AgeGroup = "3-5"
	AgeGroupEarly      AgeGroup = "5-7"
	AgeGroupMiddle     AgeGroup = "8-10"
	AgeGroupPreteen    AgeGroup = "11-13"
)

// LearningLevel is the coarse difficulty tier a kid is currently working at
type LearningLevel string

const (
	LearningLevelBeginner     LearningLevel = "beginner"
	LearningLevelIntermediate LearningLevel = "intermediate"
	LearningLevelAdvanced     LearningLevel = "advanced"
)

// KidProfile represents a child profile created by a parent on this device
type KidProfile struct {
	ID                string        `json:"id"`
	ParentID          string        `json:"parentId,omitempty"`
	Name              string        `json:"name"`
	AgeGroup          AgeGroup      `json:"ageGroup,omitempty"`
	Avatar            string        `json:"avatar"`
	Interests         []string      `json:"interests,omitempty"`
	Level             int           `json:"level"`
	XP                int           `json:"xp"`
	BadgeIDs          []string      `json:"badgeIds,omitempty"`
	EnrolledCourseIDs []string      `json:"enrolledCourseIds,omitempty"`
	LearningFocus     []string      `json:"learningFocus,omitempty"`
	LearningLevel     LearningLevel `json:"learningLevel,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// IsEnrolled reports whether the kid is enrolled in the given course
func (k KidProfile) IsEnrolled(courseID string) bool {
	for _, id := range k.EnrolledCourseIDs {
		if id == courseID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can modify it without touching shared state
func (k KidProfile) Clone() KidProfile {
	out := k
	out.Interests = append([]string(nil), k.Interests...)
	out.BadgeIDs = append([]string(nil), k.BadgeIDs...)
	out.EnrolledCourseIDs = append([]string(nil), k.EnrolledCourseIDs...)
	out.LearningFocus = append([]string(nil), k.LearningFocus...)
	return out
}
