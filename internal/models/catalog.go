package models

import "time"

// ModerationStatus is the lifecycle tag on teacher-submitted content.
// Transitions are one-way: Pending may move to Active, Approved or
// Rejected; everything else is terminal.
type ModerationStatus string

const (
	StatusPending  ModerationStatus = "pending"
	StatusApproved ModerationStatus = "approved"
	StatusActive   ModerationStatus = "active"
	StatusRejected ModerationStatus = "rejected"
)

// Valid reports whether the status is one of the known values
func (s ModerationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusActive, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further moderation action applies
func (s ModerationStatus) Terminal() bool {
	return s != StatusPending
}

// CanTransitionTo reports whether a moderation action may move a record
// from this status to the target status
func (s ModerationStatus) CanTransitionTo(target ModerationStatus) bool {
	if !target.Valid() || target == StatusPending {
		return false
	}
	return s == StatusPending
}

// TeacherProfile is a remotely sourced catalog entity describing a teacher
type TeacherProfile struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Email              string           `json:"email,omitempty"`
	Avatar             string           `json:"avatar,omitempty"`
	Bio                string           `json:"bio,omitempty"`
	Subjects           []string         `json:"subjects,omitempty"`
	Rating             float64          `json:"rating"`
	VerificationStatus ModerationStatus `json:"verificationStatus"`
	Reviews            []Review         `json:"reviews,omitempty"`
}

// Lesson is one unit of a course, presented in order
type Lesson struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	DurationMins int    `json:"durationMins"`
}

// Course is a remotely sourced catalog entity kids can enroll in
type Course struct {
	ID          string           `json:"id"`
	TeacherID   string           `json:"teacherId"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Subject     string           `json:"subject,omitempty"`
	AgeGroup    AgeGroup         `json:"ageGroup,omitempty"`
	Status      ModerationStatus `json:"status"`
	Lessons     []Lesson         `json:"lessons,omitempty"`
	Reviews     []Review         `json:"reviews,omitempty"`
}

// LessonIndex returns the position of a lesson within the course, or -1
func (c Course) LessonIndex(lessonID string) int {
	for i, l := range c.Lessons {
		if l.ID == lessonID {
			return i
		}
	}
	return -1
}

// Activity is a remotely sourced standalone activity (quiz, game, craft)
type Activity struct {
	ID        string           `json:"id"`
	TeacherID string           `json:"teacherId"`
	Title     string           `json:"title"`
	Type      string           `json:"type,omitempty"`
	AgeGroup  AgeGroup         `json:"ageGroup,omitempty"`
	Status    ModerationStatus `json:"status"`
}

// Review is feedback left on a teacher or course
type Review struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName,omitempty"`
	TeacherID  string    `json:"teacherId,omitempty"`
	CourseID   string    `json:"courseId,omitempty"`
	Rating     int       `json:"rating"`
	Text       string    `json:"text,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
