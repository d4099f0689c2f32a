package handlers

import (
	"net/http"

	"kidventure/internal/credentials"
	"kidventure/internal/models"
	"kidventure/internal/persistence"
	"kidventure/internal/session"
	"kidventure/internal/store"
)

// StateHandler exposes the app state and the profile/session mutations
type StateHandler struct {
	store    *store.Store
	sessions *session.Manager
	syncer   *persistence.Synchronizer
}

// NewStateHandler creates a new state handler
func NewStateHandler(st *store.Store, sessions *session.Manager, syncer *persistence.Synchronizer) *StateHandler {
	return &StateHandler{store: st, sessions: sessions, syncer: syncer}
}

// GetState returns the full state snapshot for the caller's session.
// PIN hashes never leave the process: the PIN gates kid-to-parent
// switching, and kid sessions can read this endpoint too.
func (h *StateHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state := h.store.State()
	for kidID, controls := range state.ParentalControls {
		controls.PINHash = ""
		state.ParentalControls[kidID] = controls
	}
	respondJSON(w, http.StatusOK, state)
}

type kidRequest struct {
	Name          string               `json:"name"`
	AgeGroup      models.AgeGroup      `json:"ageGroup"`
	Avatar        string               `json:"avatar"`
	Interests     []string             `json:"interests"`
	LearningFocus []string             `json:"learningFocus"`
	LearningLevel models.LearningLevel `json:"learningLevel"`
	Controls      controlsRequest      `json:"controls"`
}

type controlsRequest struct {
	ScreenTimeLimitMins int      `json:"screenTimeLimitMins"`
	ContentFilters      []string `json:"contentFilters"`
	PremiumAccess       bool     `json:"premiumAccess"`
	BlockedTeacherIDs   []string `json:"blockedTeacherIds"`
	SubscribedCourseIDs []string `json:"subscribedCourseIds"`
	PIN                 string   `json:"pin"`
}

func (req controlsRequest) toModel(kidID string) (models.ParentalControls, error) {
	controls := models.ParentalControls{
		KidID:               kidID,
		ScreenTimeLimitMins: req.ScreenTimeLimitMins,
		ContentFilters:      req.ContentFilters,
		PremiumAccess:       req.PremiumAccess,
		BlockedTeacherIDs:   req.BlockedTeacherIDs,
		SubscribedCourseIDs: req.SubscribedCourseIDs,
	}
	if req.PIN != "" {
		hash, err := credentials.HashPIN(req.PIN)
		if err != nil {
			return models.ParentalControls{}, err
		}
		controls.PINHash = hash
	}
	return controls, nil
}

// AddKid creates a kid profile with its parental controls
func (h *StateHandler) AddKid(w http.ResponseWriter, r *http.Request) {
	var req kidRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	controls, err := req.Controls.toModel("")
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to process controls", "pin hashing failed", err)
		return
	}

	kid, err := h.store.AddKidProfile(models.KidProfile{
		Name:          req.Name,
		AgeGroup:      req.AgeGroup,
		Avatar:        req.Avatar,
		Interests:     req.Interests,
		LearningFocus: req.LearningFocus,
		LearningLevel: req.LearningLevel,
	}, controls)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, kid)
}

// UpdateKid replaces a kid profile and its controls in one call
func (h *StateHandler) UpdateKid(w http.ResponseWriter, r *http.Request) {
	kidID := r.PathValue("id")

	var req kidRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	controls, err := req.Controls.toModel(kidID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to process controls", "pin hashing failed", err)
		return
	}
	// An empty PIN keeps the existing one
	if controls.PINHash == "" {
		controls.PINHash = h.store.ControlsForKid(kidID).PINHash
	}

	existing := h.store.State().KidByID(kidID)
	if existing == nil {
		respondStoreError(w, store.ErrKidNotFound)
		return
	}
	updated := existing.Clone()
	updated.Name = req.Name
	updated.AgeGroup = req.AgeGroup
	updated.Avatar = req.Avatar
	updated.Interests = req.Interests
	updated.LearningFocus = req.LearningFocus
	updated.LearningLevel = req.LearningLevel

	if err := h.store.UpdateKidProfileAndControls(updated, controls); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.store.State().KidByID(kidID))
}

// SuggestIdentity returns a random avatar and display name for the
// add-kid form
func (h *StateHandler) SuggestIdentity(w http.ResponseWriter, r *http.Request) {
	avatar, err := credentials.RandomAvatar()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to pick avatar", "", err)
		return
	}
	name, err := credentials.SuggestDisplayName()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to suggest name", "", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"avatar": avatar, "name": name})
}

// SwitchToKid puts the session into kid mode for one of the parent's kids
func (h *StateHandler) SwitchToKid(w http.ResponseWriter, r *http.Request) {
	kidID := r.PathValue("id")
	if err := h.store.SwitchToKid(kidID); err != nil {
		respondStoreError(w, err)
		return
	}

	token, err := h.sessions.Issue(models.RoleKid, kidID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create session", "token issue failed", err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{Token: token, Role: models.RoleKid, ProfileID: kidID})
}

type switchToParentRequest struct {
	PIN string `json:"pin"`
}

// SwitchToParent leaves kid mode. When the active kid's controls carry a
// PIN, the correct PIN must be supplied.
func (h *StateHandler) SwitchToParent(w http.ResponseWriter, r *http.Request) {
	var req switchToParentRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
			return
		}
	}

	if kid := h.store.ActiveKidProfile(); kid != nil {
		controls := h.store.ControlsForKid(kid.ID)
		if !credentials.CheckPIN(req.PIN, controls.PINHash) {
			respondWithError(w, http.StatusForbidden, "Incorrect PIN", "", nil)
			return
		}
	}

	if err := h.store.SwitchToParent(); err != nil {
		respondStoreError(w, err)
		return
	}

	parentID := h.store.State().CurrentParentProfileID
	token, err := h.sessions.Issue(models.RoleParent, parentID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create session", "token issue failed", err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{Token: token, Role: models.RoleParent, ProfileID: parentID})
}

// CompleteOnboarding marks the first-run flow as finished
func (h *StateHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	h.store.CompleteOnboarding()
	respondJSON(w, http.StatusOK, map[string]bool{"onboardingComplete": true})
}

// Logout clears storage and resets the state to defaults
func (h *StateHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.syncer.Reset(r.Context()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to reset", "reset failed", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"reset": true})
}
