package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kidventure/internal/service"
	"kidventure/internal/store"
	"kidventure/internal/validation"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, map[string]string{"error": userMsg})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondStoreError maps the mutation API's sentinel errors onto HTTP
// statuses
func respondStoreError(w http.ResponseWriter, err error) {
	var vErr validation.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondWithError(w, http.StatusBadRequest, vErr.Error(), "", nil)
	case errors.Is(err, store.ErrKidNotFound),
		errors.Is(err, store.ErrCourseNotFound),
		errors.Is(err, store.ErrConversationNotFound),
		errors.Is(err, service.ErrRecordNotFound):
		respondWithError(w, http.StatusNotFound, err.Error(), "", nil)
	case errors.Is(err, store.ErrNoActiveParent),
		errors.Is(err, store.ErrNoActiveUser),
		errors.Is(err, store.ErrNotParentsKid),
		errors.Is(err, store.ErrNotParticipant),
		errors.Is(err, store.ErrSenderNotAllowed):
		respondWithError(w, http.StatusForbidden, err.Error(), "", nil)
	case errors.Is(err, store.ErrNotEnrolled),
		errors.Is(err, service.ErrInvalidTransition):
		respondWithError(w, http.StatusConflict, err.Error(), "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "request failed", err)
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
