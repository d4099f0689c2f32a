package handlers

import (
	"net/http"

	"kidventure/internal/navigation"
)

// NavigationHandler exposes the logical view state to the screen layer
type NavigationHandler struct {
	bridge *navigation.Bridge
}

// NewNavigationHandler creates a new navigation handler
func NewNavigationHandler(bridge *navigation.Bridge) *NavigationHandler {
	return &NavigationHandler{bridge: bridge}
}

// Current returns the current logical view and its path
func (h *NavigationHandler) Current(w http.ResponseWriter, r *http.Request) {
	entry := h.bridge.CurrentEntry()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"view":  entry.View,
		"path":  entry.Path,
		"state": entry.State,
		"depth": h.bridge.Depth(),
	})
}

type setViewRequest struct {
	View    navigation.View        `json:"view"`
	Path    string                 `json:"path"`
	Replace bool                   `json:"replace"`
	State   map[string]interface{} `json:"state"`
}

// SetView navigates to a logical view
func (h *NavigationHandler) SetView(w http.ResponseWriter, r *http.Request) {
	var req setViewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if !req.View.Valid() {
		respondWithError(w, http.StatusBadRequest, "Unknown view", "", nil)
		return
	}

	h.bridge.SetViewWithPath(req.View, req.Path, &navigation.Options{
		Replace: req.Replace,
		State:   req.State,
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{"view": h.bridge.CurrentView()})
}

// GoBack pops the current view; on the bottom of the stack it is a no-op
func (h *NavigationHandler) GoBack(w http.ResponseWriter, r *http.Request) {
	h.bridge.GoBack()
	respondJSON(w, http.StatusOK, map[string]interface{}{"view": h.bridge.CurrentView()})
}
