package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"kidventure/internal/backend"
	"kidventure/internal/catalog"
	"kidventure/internal/models"
	"kidventure/internal/store"
)

func newModerationFixture(t *testing.T) (*ModerationService, *store.Store) {
	t.Helper()
	client := backend.NewEmptyMockClient()
	client.Seed(
		[]models.TeacherProfile{
			{ID: "t1", Name: "Amelia", Email: "amelia@example.com", VerificationStatus: models.StatusPending},
			{ID: "t2", Name: "Ben", VerificationStatus: models.StatusActive},
		},
		[]models.Course{
			{ID: "c1", TeacherID: "t1", Title: "Phonics", Status: models.StatusPending},
			{ID: "c2", TeacherID: "t1", Title: "Numbers", Status: models.StatusPending},
		},
		[]models.Activity{
			{ID: "a1", TeacherID: "t2", Title: "Quiz", Status: models.StatusRejected},
		},
	)

	st := store.New(models.DefaultAppState())
	loader := catalog.NewLoader(client, st, time.Second)
	if err := loader.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	email, err := NewEmailService("eu-west-1", "", "")
	if err != nil {
		t.Fatalf("NewEmailService() error = %v", err)
	}
	return NewModerationService(loader, st, email), st
}

func TestModerateCourseApprovesOnlyTarget(t *testing.T) {
	svc, st := newModerationFixture(t)

	course, err := svc.ModerateCourse(context.Background(), "c1", models.StatusActive)
	if err != nil {
		t.Fatalf("ModerateCourse() error = %v", err)
	}
	if course.Status != models.StatusActive {
		t.Errorf("returned status = %q, want active", course.Status)
	}

	cat := st.Catalog()
	if got := cat.CourseByID("c1").Status; got != models.StatusActive {
		t.Errorf("c1 status = %q, want active", got)
	}
	if got := cat.CourseByID("c2").Status; got != models.StatusPending {
		t.Errorf("c2 status = %q, other courses must be untouched", got)
	}
}

func TestModerateTeacherRejects(t *testing.T) {
	svc, st := newModerationFixture(t)

	teacher, err := svc.ModerateTeacher(context.Background(), "t1", models.StatusRejected)
	if err != nil {
		t.Fatalf("ModerateTeacher() error = %v", err)
	}
	if teacher.VerificationStatus != models.StatusRejected {
		t.Errorf("status = %q, want rejected", teacher.VerificationStatus)
	}
	if got := st.Catalog().TeacherByID("t1").VerificationStatus; got != models.StatusRejected {
		t.Errorf("catalog status = %q, want rejected", got)
	}
}

func TestModerationTransitionsAreOneWay(t *testing.T) {
	svc, _ := newModerationFixture(t)
	ctx := context.Background()

	// t2 is already active, a1 already rejected; both are terminal
	if _, err := svc.ModerateTeacher(ctx, "t2", models.StatusRejected); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("active teacher: error = %v, want ErrInvalidTransition", err)
	}
	if _, err := svc.ModerateActivity(ctx, "a1", models.StatusActive); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("rejected activity: error = %v, want ErrInvalidTransition", err)
	}
	// Nothing may go back to pending
	if _, err := svc.ModerateCourse(ctx, "c1", models.StatusPending); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("to-pending: error = %v, want ErrInvalidTransition", err)
	}
}

func TestModerateUnknownRecord(t *testing.T) {
	svc, _ := newModerationFixture(t)
	if _, err := svc.ModerateCourse(context.Background(), "nope", models.StatusActive); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("error = %v, want ErrRecordNotFound", err)
	}
}
