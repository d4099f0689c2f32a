package handlers

import (
	"net/http"

	"kidventure/internal/models"
	"kidventure/internal/store"
)

// ProgressHandler exposes enrollment and lesson progress
type ProgressHandler struct {
	store *store.Store
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(st *store.Store) *ProgressHandler {
	return &ProgressHandler{store: st}
}

type enrollRequest struct {
	CourseID string `json:"courseId"`
}

// Enroll adds a course to a kid's enrolled set
func (h *ProgressHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	kidID := r.PathValue("id")

	var req enrollRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.CourseID == "" {
		respondWithError(w, http.StatusBadRequest, "courseId is required", "", nil)
		return
	}

	if err := h.store.EnrollInCourse(kidID, req.CourseID); err != nil {
		respondStoreError(w, err)
		return
	}

	progress, _ := h.store.ProgressFor(kidID, req.CourseID)
	respondJSON(w, http.StatusOK, progress)
}

type lessonProgressRequest struct {
	CourseID string `json:"courseId"`
	LessonID string `json:"lessonId"`
}

// CompleteLesson records a finished lesson and advances the cursor
func (h *ProgressHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	kidID := r.PathValue("id")

	var req lessonProgressRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.CourseID == "" || req.LessonID == "" {
		respondWithError(w, http.StatusBadRequest, "courseId and lessonId are required", "", nil)
		return
	}

	if err := h.store.UpdateLessonProgress(kidID, req.CourseID, req.LessonID); err != nil {
		respondStoreError(w, err)
		return
	}

	progress, _ := h.store.ProgressFor(kidID, req.CourseID)
	respondJSON(w, http.StatusOK, progress)
}

// GetProgress returns the progress record for one kid/course pair
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	kidID := r.PathValue("id")
	courseID := r.PathValue("courseId")

	progress, ok := h.store.ProgressFor(kidID, courseID)
	if !ok {
		respondStoreError(w, store.ErrNotEnrolled)
		return
	}
	respondJSON(w, http.StatusOK, progress)
}

// ListProgress returns all progress records for one kid
func (h *ProgressHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	kidID := r.PathValue("id")
	kid := h.store.State().KidByID(kidID)
	if kid == nil {
		respondStoreError(w, store.ErrKidNotFound)
		return
	}

	out := make([]models.KidCourseProgress, 0, len(kid.EnrolledCourseIDs))
	for _, courseID := range kid.EnrolledCourseIDs {
		if p, ok := h.store.ProgressFor(kidID, courseID); ok {
			out = append(out, p)
		}
	}
	respondJSON(w, http.StatusOK, out)
}
