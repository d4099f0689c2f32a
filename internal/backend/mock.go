package backend

import (
	"context"
	"sync"
	"time"

	"kidventure/internal/models"
)

// MockClient serves a seeded in-memory catalog. It stands in for the
// real backend during development and in tests; latency and per-call
// failures are injectable so boot and moderation paths can be exercised
// without a network.
type MockClient struct {
	mu         sync.Mutex
	teachers   []models.TeacherProfile
	courses    []models.Course
	activities []models.Activity

	Latency       time.Duration
	TeacherErr    error
	CourseErr     error
	ActivityErr   error
	FetchCount    int
	UpdateCount   int
	failRemaining int
}

// NewMockClient creates a mock backend with a demo catalog
func NewMockClient() *MockClient {
	return &MockClient{
		teachers:   seedTeachers(),
		courses:    seedCourses(),
		activities: seedActivities(),
	}
}

// NewEmptyMockClient creates a mock backend with no seeded records
func NewEmptyMockClient() *MockClient {
	return &MockClient{}
}

// Seed replaces the mock's collections
func (m *MockClient) Seed(teachers []models.TeacherProfile, courses []models.Course, activities []models.Activity) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teachers = append([]models.TeacherProfile(nil), teachers...)
	m.courses = append([]models.Course(nil), courses...)
	m.activities = append([]models.Activity(nil), activities...)
}

// FailNext makes the next n calls return ErrUnavailable
func (m *MockClient) FailNext(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failRemaining = n
}

func (m *MockClient) simulate(ctx context.Context) error {
	if m.Latency > 0 {
		select {
		case <-time.After(m.Latency):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failRemaining > 0 {
		m.failRemaining--
		return ErrUnavailable
	}
	return nil
}

// FetchTeachers returns all teacher profiles
func (m *MockClient) FetchTeachers(ctx context.Context) ([]models.TeacherProfile, error) {
	if err := m.simulate(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchCount++
	if m.TeacherErr != nil {
		return nil, m.TeacherErr
	}
	return append([]models.TeacherProfile(nil), m.teachers...), nil
}

// FetchCourses returns all courses
func (m *MockClient) FetchCourses(ctx context.Context) ([]models.Course, error) {
	if err := m.simulate(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchCount++
	if m.CourseErr != nil {
		return nil, m.CourseErr
	}
	return append([]models.Course(nil), m.courses...), nil
}

// FetchActivities returns all activities
func (m *MockClient) FetchActivities(ctx context.Context) ([]models.Activity, error) {
	if err := m.simulate(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchCount++
	if m.ActivityErr != nil {
		return nil, m.ActivityErr
	}
	return append([]models.Activity(nil), m.activities...), nil
}

// UpdateTeacherVerification sets a teacher's verification status and
// returns the updated record
func (m *MockClient) UpdateTeacherVerification(ctx context.Context, teacherID string, status models.ModerationStatus) (models.TeacherProfile, error) {
	if err := m.simulate(ctx); err != nil {
		return models.TeacherProfile{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCount++
	for i := range m.teachers {
		if m.teachers[i].ID == teacherID {
			m.teachers[i].VerificationStatus = status
			return m.teachers[i], nil
		}
	}
	return models.TeacherProfile{}, ErrNotFound
}

// UpdateCourseStatus sets a course's moderation status and returns the
// updated record
func (m *MockClient) UpdateCourseStatus(ctx context.Context, courseID string, status models.ModerationStatus) (models.Course, error) {
	if err := m.simulate(ctx); err != nil {
		return models.Course{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCount++
	for i := range m.courses {
		if m.courses[i].ID == courseID {
			m.courses[i].Status = status
			return m.courses[i], nil
		}
	}
	return models.Course{}, ErrNotFound
}

// UpdateActivityStatus sets an activity's moderation status and returns
// the updated record
func (m *MockClient) UpdateActivityStatus(ctx context.Context, activityID string, status models.ModerationStatus) (models.Activity, error) {
	if err := m.simulate(ctx); err != nil {
		return models.Activity{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCount++
	for i := range m.activities {
		if m.activities[i].ID == activityID {
			m.activities[i].Status = status
			return m.activities[i], nil
		}
	}
	return models.Activity{}, ErrNotFound
}

func seedTeachers() []models.TeacherProfile {
	return []models.TeacherProfile{
		{
			ID: "t-amelia", Name: "Amelia Hart", Email: "amelia@example.com",
			Avatar: "🦉", Bio: "Primary school teacher with a love of storytelling.",
			Subjects: []string{"reading", "writing"}, Rating: 4.8,
			VerificationStatus: models.StatusActive,
			Reviews: []models.Review{
				{ID: "r-1", AuthorID: "p-demo", AuthorName: "Sam", TeacherID: "t-amelia", Rating: 5, Text: "My daughter loves her classes."},
			},
		},
		{
			ID: "t-ben", Name: "Ben Okafor", Email: "ben@example.com",
			Avatar: "🦁", Bio: "Maths made playful.",
			Subjects: []string{"maths"}, Rating: 4.6,
			VerificationStatus: models.StatusActive,
		},
		{
			ID: "t-new", Name: "Nadia Petrov", Email: "nadia@example.com",
			Avatar: "🐨", Bio: "Science experiments you can do in the kitchen.",
			Subjects: []string{"science"},
			VerificationStatus: models.StatusPending,
		},
	}
}

func seedCourses() []models.Course {
	return []models.Course{
		{
			ID: "c-phonics", TeacherID: "t-amelia", Title: "Phonics Adventures",
			Description: "Letter sounds through stories and songs.",
			Subject:     "reading", AgeGroup: models.AgeGroupEarly,
			Status: models.StatusActive,
			Lessons: []models.Lesson{
				{ID: "l-ph-1", Title: "The Letter S", DurationMins: 10},
				{ID: "l-ph-2", Title: "The Letter A", DurationMins: 10},
				{ID: "l-ph-3", Title: "Blending Sounds", DurationMins: 15},
			},
			Reviews: []models.Review{
				{ID: "r-2", AuthorID: "p-demo", AuthorName: "Priya", TeacherID: "t-amelia", CourseID: "c-phonics", Rating: 4, Text: "Great pacing."},
			},
		},
		{
			ID: "c-numbers", TeacherID: "t-ben", Title: "Number Explorers",
			Description: "Counting, shapes and patterns.",
			Subject:     "maths", AgeGroup: models.AgeGroupEarly,
			Status: models.StatusActive,
			Lessons: []models.Lesson{
				{ID: "l-nu-1", Title: "Counting to 20", DurationMins: 10},
				{ID: "l-nu-2", Title: "Shapes Around Us", DurationMins: 12},
			},
		},
		{
			ID: "c-kitchen", TeacherID: "t-new", Title: "Kitchen Science",
			Description: "Safe experiments with everyday things.",
			Subject:     "science", AgeGroup: models.AgeGroupMiddle,
			Status: models.StatusPending,
			Lessons: []models.Lesson{
				{ID: "l-ks-1", Title: "Sink or Float", DurationMins: 15},
			},
		},
	}
}

func seedActivities() []models.Activity {
	return []models.Activity{
		{ID: "a-quiz-animals", TeacherID: "t-amelia", Title: "Animal Sounds Quiz", Type: "quiz", AgeGroup: models.AgeGroupEarly, Status: models.StatusActive},
		{ID: "a-craft-volcano", TeacherID: "t-new", Title: "Paper Volcano", Type: "craft", AgeGroup: models.AgeGroupMiddle, Status: models.StatusPending},
	}
}
