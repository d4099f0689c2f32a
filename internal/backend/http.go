package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kidventure/internal/models"
)

// HTTPClient talks to a real catalog backend over its JSON API
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a backend client for the given base URL
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) patchStatus(ctx context.Context, path string, status models.ModerationStatus, out interface{}) error {
	body, err := json.Marshal(map[string]string{"status": string(status)})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// FetchTeachers retrieves all teacher profiles
func (c *HTTPClient) FetchTeachers(ctx context.Context) ([]models.TeacherProfile, error) {
	var teachers []models.TeacherProfile
	if err := c.get(ctx, "/api/teachers", &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

// FetchCourses retrieves all courses
func (c *HTTPClient) FetchCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := c.get(ctx, "/api/courses", &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// FetchActivities retrieves all activities
func (c *HTTPClient) FetchActivities(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	if err := c.get(ctx, "/api/activities", &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// UpdateTeacherVerification sets a teacher's verification status
func (c *HTTPClient) UpdateTeacherVerification(ctx context.Context, teacherID string, status models.ModerationStatus) (models.TeacherProfile, error) {
	var teacher models.TeacherProfile
	err := c.patchStatus(ctx, "/api/teachers/"+teacherID+"/verification", status, &teacher)
	return teacher, err
}

// UpdateCourseStatus sets a course's moderation status
func (c *HTTPClient) UpdateCourseStatus(ctx context.Context, courseID string, status models.ModerationStatus) (models.Course, error) {
	var course models.Course
	err := c.patchStatus(ctx, "/api/courses/"+courseID+"/status", status, &course)
	return course, err
}

// UpdateActivityStatus sets an activity's moderation status
func (c *HTTPClient) UpdateActivityStatus(ctx context.Context, activityID string, status models.ModerationStatus) (models.Activity, error) {
	var activity models.Activity
	err := c.patchStatus(ctx, "/api/activities/"+activityID+"/status", status, &activity)
	return activity, err
}
