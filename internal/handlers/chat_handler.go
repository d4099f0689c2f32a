package handlers

import (
	"net/http"

	"kidventure/internal/models"
	"kidventure/internal/store"
	"kidventure/internal/validation"
)

// ChatHandler exposes the conversation and message operations
type ChatHandler struct {
	store *store.Store
}

// NewChatHandler creates a new chat handler
func NewChatHandler(st *store.Store) *ChatHandler {
	return &ChatHandler{store: st}
}

// ListConversations returns the active user's conversations, most
// recently active first
func (h *ChatHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	participant, ok := h.store.ActiveParticipant()
	if !ok {
		respondStoreError(w, store.ErrNoActiveUser)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"conversations": h.store.ConversationsFor(participant.ID),
		"unreadTotal":   h.store.UnreadTotal(participant.ID),
	})
}

type startChatRequest struct {
	ParticipantID     string      `json:"participantId"`
	ParticipantRole   models.Role `json:"participantRole"`
	ParticipantName   string      `json:"participantName"`
	ParticipantAvatar string      `json:"participantAvatar"`
}

// StartChat finds or creates the conversation with another participant
func (h *ChatHandler) StartChat(w http.ResponseWriter, r *http.Request) {
	var req startChatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.ParticipantID == "" {
		respondWithError(w, http.StatusBadRequest, "participantId is required", "", nil)
		return
	}

	conversationID, err := h.store.StartOrGoToChat(models.ChatParticipant{
		ID:     req.ParticipantID,
		Role:   req.ParticipantRole,
		Name:   req.ParticipantName,
		Avatar: req.ParticipantAvatar,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"conversationId": conversationID})
}

// ListMessages returns a conversation's messages in timestamp order
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("id")
	messages := h.store.MessagesFor(conversationID)
	respondJSON(w, http.StatusOK, messages)
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// SendMessage appends a message to a conversation
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("id")

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if err := validation.ValidateChatText(req.Text); err != nil {
		respondStoreError(w, err)
		return
	}

	message, err := h.store.SendChatMessage(conversationID, req.Text)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, message)
}

// MarkRead zeroes the caller's unread counter on a conversation
func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("id")
	if err := h.store.MarkConversationAsRead(conversationID); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"read": true})
}
