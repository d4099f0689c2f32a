package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"kidventure/internal/catalog"
	"kidventure/internal/models"
	"kidventure/internal/store"
)

var (
	ErrRecordNotFound    = errors.New("moderation target not found")
	ErrInvalidTransition = errors.New("invalid moderation transition")
)

// ModerationService applies admin moderation decisions. It enforces the
// one-way status machine before touching the backend, pushes the update
// through the catalog loader and notifies the affected teacher by email.
// Email failures are logged, never surfaced: the decision already stands.
type ModerationService struct {
	loader *catalog.Loader
	store  *store.Store
	email  *EmailService
}

// NewModerationService wires the moderation flow together
func NewModerationService(loader *catalog.Loader, st *store.Store, email *EmailService) *ModerationService {
	return &ModerationService{loader: loader, store: st, email: email}
}

// ModerateTeacher applies a verification decision to a teacher profile
func (s *ModerationService) ModerateTeacher(ctx context.Context, teacherID string, status models.ModerationStatus) (models.TeacherProfile, error) {
	cat := s.store.Catalog()
	current := cat.TeacherByID(teacherID)
	if current == nil {
		return models.TeacherProfile{}, ErrRecordNotFound
	}
	if !current.VerificationStatus.CanTransitionTo(status) {
		return models.TeacherProfile{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.VerificationStatus, status)
	}

	updated, err := s.loader.ApproveTeacher(ctx, teacherID, status)
	if err != nil {
		return models.TeacherProfile{}, err
	}

	s.notify(ctx, updated.Email, updated.Name, "your teacher profile", status)
	return updated, nil
}

// ModerateCourse applies a moderation decision to a course
func (s *ModerationService) ModerateCourse(ctx context.Context, courseID string, status models.ModerationStatus) (models.Course, error) {
	cat := s.store.Catalog()
	current := cat.CourseByID(courseID)
	if current == nil {
		return models.Course{}, ErrRecordNotFound
	}
	if !current.Status.CanTransitionTo(status) {
		return models.Course{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	updated, err := s.loader.ApproveCourse(ctx, courseID, status)
	if err != nil {
		return models.Course{}, err
	}

	if teacher := cat.TeacherByID(updated.TeacherID); teacher != nil {
		s.notify(ctx, teacher.Email, teacher.Name, updated.Title, status)
	}
	return updated, nil
}

// ModerateActivity applies a moderation decision to an activity
func (s *ModerationService) ModerateActivity(ctx context.Context, activityID string, status models.ModerationStatus) (models.Activity, error) {
	cat := s.store.Catalog()
	current := cat.ActivityByID(activityID)
	if current == nil {
		return models.Activity{}, ErrRecordNotFound
	}
	if !current.Status.CanTransitionTo(status) {
		return models.Activity{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	updated, err := s.loader.ApproveActivity(ctx, activityID, status)
	if err != nil {
		return models.Activity{}, err
	}

	if teacher := cat.TeacherByID(updated.TeacherID); teacher != nil {
		s.notify(ctx, teacher.Email, teacher.Name, updated.Title, status)
	}
	return updated, nil
}

func (s *ModerationService) notify(ctx context.Context, email, name, subject string, status models.ModerationStatus) {
	if s.email == nil {
		return
	}
	if err := s.email.SendModerationDecision(ctx, email, name, subject, status); err != nil {
		log.Printf("Warning: failed to send moderation notification to %s: %v", email, err)
	}
}
