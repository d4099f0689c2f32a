package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"kidventure/internal/catalog"
	"kidventure/internal/models"
	"kidventure/internal/service"
	"kidventure/internal/store"
	"kidventure/internal/validation"
)

// CatalogHandler exposes the loaded catalog and the admin moderation
// operations
type CatalogHandler struct {
	store      *store.Store
	loader     *catalog.Loader
	moderation *service.ModerationService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(st *store.Store, loader *catalog.Loader, moderation *service.ModerationService) *CatalogHandler {
	return &CatalogHandler{store: st, loader: loader, moderation: moderation}
}

// GetCatalog returns the full loaded catalog
func (h *CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"loaded":  h.store.CatalogLoaded(),
		"catalog": h.store.Catalog(),
	})
}

// Refresh re-runs the catalog load
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.loader.LoadAll(r.Context()); err != nil {
		respondWithError(w, http.StatusBadGateway, "Catalog refresh failed", "catalog refresh failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"loaded": true})
}

type reviewRequest struct {
	TeacherID string `json:"teacherId"`
	CourseID  string `json:"courseId"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
}

// AddReview appends a review from the active user
func (h *CatalogHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	participant, ok := h.store.ActiveParticipant()
	if !ok {
		respondStoreError(w, store.ErrNoActiveUser)
		return
	}

	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.TeacherID == "" && req.CourseID == "" {
		respondWithError(w, http.StatusBadRequest, "teacherId or courseId is required", "", nil)
		return
	}
	if err := validation.ValidateRating(req.Rating); err != nil {
		respondStoreError(w, err)
		return
	}

	review := models.Review{
		ID:         uuid.New().String(),
		AuthorID:   participant.ID,
		AuthorName: participant.Name,
		TeacherID:  req.TeacherID,
		CourseID:   req.CourseID,
		Rating:     req.Rating,
		Text:       req.Text,
		CreatedAt:  time.Now(),
	}
	h.store.AddReview(review)
	respondJSON(w, http.StatusCreated, review)
}

type moderationRequest struct {
	Status models.ModerationStatus `json:"status"`
}

// ModerateTeacher applies an admin verification decision to a teacher
func (h *CatalogHandler) ModerateTeacher(w http.ResponseWriter, r *http.Request) {
	var req moderationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	teacher, err := h.moderation.ModerateTeacher(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, teacher)
}

// ModerateCourse applies an admin moderation decision to a course
func (h *CatalogHandler) ModerateCourse(w http.ResponseWriter, r *http.Request) {
	var req moderationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	course, err := h.moderation.ModerateCourse(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, course)
}

// ModerateActivity applies an admin moderation decision to an activity
func (h *CatalogHandler) ModerateActivity(w http.ResponseWriter, r *http.Request) {
	var req moderationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	activity, err := h.moderation.ModerateActivity(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}
