package store

import "kidventure/internal/models"

// StartOrGoToChat finds the conversation between the current user and the
// other participant, creating it when none exists. The pair is unordered:
// whichever side initiates, the same conversation is returned.
func (s *Store) StartOrGoToChat(other models.ChatParticipant) (string, error) {
	s.mu.Lock()
	self, ok := s.activeParticipantLocked()
	if !ok {
		s.mu.Unlock()
		return "", ErrNoActiveUser
	}

	for _, c := range s.state.ChatConversations {
		if c.HasParticipants(self.ID, other.ID) {
			s.mu.Unlock()
			return c.ID, nil
		}
	}

	convo := models.ChatConversation{
		ID:                   s.newID(),
		Participants:         []models.ChatParticipant{self, other},
		LastMessageTimestamp: s.now(),
		UnreadCounts:         map[string]int{self.ID: 0, other.ID: 0},
	}

	next := s.state.Clone()
	next.ChatConversations = append(next.ChatConversations, convo)
	s.finalize(&next)
	s.commitLocked(next)
	return convo.ID, nil
}

// SendChatMessage appends a message from the current user to a
// conversation, updates the conversation's last-message fields and
// increments the other participant's unread counter. Only parents and
// teachers may send.
func (s *Store) SendChatMessage(conversationID, text string) (models.ChatMessage, error) {
	s.mu.Lock()
	self, ok := s.activeParticipantLocked()
	if !ok {
		s.mu.Unlock()
		return models.ChatMessage{}, ErrNoActiveUser
	}
	if !s.state.CurrentUserRole.CanSendChat() {
		s.mu.Unlock()
		return models.ChatMessage{}, ErrSenderNotAllowed
	}

	idx := -1
	for i, c := range s.state.ChatConversations {
		if c.ID == conversationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return models.ChatMessage{}, ErrConversationNotFound
	}
	if !s.state.ChatConversations[idx].HasParticipant(self.ID) {
		s.mu.Unlock()
		return models.ChatMessage{}, ErrNotParticipant
	}

	if s.messageFilter != nil {
		text = s.messageFilter(text)
	}

	msg := models.ChatMessage{
		ID:             s.newID(),
		ConversationID: conversationID,
		SenderID:       self.ID,
		Text:           text,
		Timestamp:      s.now(),
	}

	next := s.state.Clone()
	next.ChatMessages = append(next.ChatMessages, msg)
	convo := &next.ChatConversations[idx]
	convo.LastMessageText = msg.Text
	convo.LastMessageTimestamp = msg.Timestamp
	if other, ok := convo.OtherParticipant(self.ID); ok {
		if convo.UnreadCounts == nil {
			convo.UnreadCounts = make(map[string]int)
		}
		convo.UnreadCounts[other.ID]++
	}
	s.finalize(&next)
	s.commitLocked(next)
	return msg, nil
}

// MarkConversationAsRead zeroes the current user's unread counter on a
// conversation
func (s *Store) MarkConversationAsRead(conversationID string) error {
	s.mu.Lock()
	self, ok := s.activeParticipantLocked()
	if !ok {
		s.mu.Unlock()
		return ErrNoActiveUser
	}

	idx := -1
	for i, c := range s.state.ChatConversations {
		if c.ID == conversationID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrConversationNotFound
	}
	if !s.state.ChatConversations[idx].HasParticipant(self.ID) {
		s.mu.Unlock()
		return ErrNotParticipant
	}

	next := s.state.Clone()
	convo := &next.ChatConversations[idx]
	if convo.UnreadCounts == nil {
		convo.UnreadCounts = make(map[string]int)
	}
	convo.UnreadCounts[self.ID] = 0
	s.finalize(&next)
	s.commitLocked(next)
	return nil
}
