package catalog

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"kidventure/internal/backend"
	"kidventure/internal/models"
	"kidventure/internal/store"
)

const defaultFetchTimeout = 10 * time.Second

// Loader pulls the remote catalog into the store. The three collection
// fetches run concurrently and fail independently: a dead activities
// endpoint must not keep courses off the home screen.
type Loader struct {
	client  backend.Client
	store   *store.Store
	timeout time.Duration
}

// NewLoader creates a loader over the given backend client
func NewLoader(client backend.Client, st *store.Store, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Loader{client: client, store: st, timeout: timeout}
}

// LoadAll fetches teachers, courses and activities, derives the review
// list and installs the result into the store. Individual fetch
// failures are logged and leave that collection empty; the error is
// non-nil only when every fetch failed.
func (l *Loader) LoadAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	var (
		wg       sync.WaitGroup
		teachers []models.TeacherProfile
		courses  []models.Course
		acts     []models.Activity
		errs     [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		teachers, errs[0] = l.client.FetchTeachers(ctx)
	}()
	go func() {
		defer wg.Done()
		courses, errs[1] = l.client.FetchCourses(ctx)
	}()
	go func() {
		defer wg.Done()
		acts, errs[2] = l.client.FetchActivities(ctx)
	}()
	wg.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
			log.Printf("Warning: catalog fetch failed: %v", err)
		}
	}
	if failed == len(errs) {
		return fmt.Errorf("failed to load catalog: %w", errs[0])
	}

	// A failed fetch keeps whatever that collection held before, so a
	// refresh can never wipe data the user is already browsing
	prev := l.store.Catalog()
	if errs[0] != nil {
		teachers = prev.Teachers
	}
	if errs[1] != nil {
		courses = prev.Courses
	}
	if errs[2] != nil {
		acts = prev.Activities
	}

	l.store.SetCatalog(models.Catalog{
		Teachers:   teachers,
		Courses:    courses,
		Activities: acts,
		Reviews:    deriveReviews(teachers, courses),
	})
	return nil
}

// deriveReviews flattens the reviews embedded in teacher and course
// records into one list. Teacher reviews come first, then course
// reviews; duplicate ids keep the first occurrence.
func deriveReviews(teachers []models.TeacherProfile, courses []models.Course) []models.Review {
	seen := make(map[string]bool)
	var out []models.Review

	add := func(r models.Review) {
		if r.ID != "" && seen[r.ID] {
			return
		}
		seen[r.ID] = true
		out = append(out, r)
	}

	for _, t := range teachers {
		for _, r := range t.Reviews {
			if r.TeacherID == "" {
				r.TeacherID = t.ID
			}
			add(r)
		}
	}
	for _, c := range courses {
		for _, r := range c.Reviews {
			if r.CourseID == "" {
				r.CourseID = c.ID
			}
			add(r)
		}
	}
	return out
}

// ApproveTeacher marks a teacher verification decision on the backend
// and swaps the updated record into the loaded catalog
func (l *Loader) ApproveTeacher(ctx context.Context, teacherID string, status models.ModerationStatus) (models.TeacherProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	teacher, err := l.client.UpdateTeacherVerification(ctx, teacherID, status)
	if err != nil {
		return models.TeacherProfile{}, fmt.Errorf("failed to update teacher verification: %w", err)
	}
	if !l.store.ReplaceTeacher(teacher) {
		log.Printf("Warning: updated teacher %s is not in the loaded catalog", teacher.ID)
	}
	return teacher, nil
}

// ApproveCourse applies a course moderation decision and swaps the
// updated record into the loaded catalog
func (l *Loader) ApproveCourse(ctx context.Context, courseID string, status models.ModerationStatus) (models.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	course, err := l.client.UpdateCourseStatus(ctx, courseID, status)
	if err != nil {
		return models.Course{}, fmt.Errorf("failed to update course status: %w", err)
	}
	if !l.store.ReplaceCourse(course) {
		log.Printf("Warning: updated course %s is not in the loaded catalog", course.ID)
	}
	return course, nil
}

// ApproveActivity applies an activity moderation decision and swaps the
// updated record into the loaded catalog
func (l *Loader) ApproveActivity(ctx context.Context, activityID string, status models.ModerationStatus) (models.Activity, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	activity, err := l.client.UpdateActivityStatus(ctx, activityID, status)
	if err != nil {
		return models.Activity{}, fmt.Errorf("failed to update activity status: %w", err)
	}
	if !l.store.ReplaceActivity(activity) {
		log.Printf("Warning: updated activity %s is not in the loaded catalog", activity.ID)
	}
	return activity, nil
}
