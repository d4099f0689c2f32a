package backend

import (
	"context"
	"errors"

	"kidventure/internal/models"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrUnavailable = errors.New("backend unavailable")
)

// Client is the backend contract the app core depends on. The shipped
// implementation is a local mock; a real backend must honor the same
// semantics: fetches return full collections, updates return the full
// updated record or ErrNotFound.
type Client interface {
	FetchTeachers(ctx context.Context) ([]models.TeacherProfile, error)
	FetchCourses(ctx context.Context) ([]models.Course, error)
	FetchActivities(ctx context.Context) ([]models.Activity, error)

	UpdateTeacherVerification(ctx context.Context, teacherID string, status models.ModerationStatus) (models.TeacherProfile, error)
	UpdateCourseStatus(ctx context.Context, courseID string, status models.ModerationStatus) (models.Course, error)
	UpdateActivityStatus(ctx context.Context, activityID string, status models.ModerationStatus) (models.Activity, error)
}
