package models

import "time"

// ChatParticipant is the denormalized display info for one side of a conversation
type ChatParticipant struct {
	ID     string `json:"id"`
	Role   Role   `json:"role"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// ChatConversation is a two-party conversation. Conversations are created
// lazily (find-or-create) keyed by the unordered pair of participant ids.
type ChatConversation struct {
	ID                   string            `json:"id"`
	Participants         []ChatParticipant `json:"participants"`
	LastMessageText      string            `json:"lastMessageText,omitempty"`
	LastMessageTimestamp time.Time         `json:"lastMessageTimestamp"`
	UnreadCounts         map[string]int    `json:"unreadCounts,omitempty"`
}

// HasParticipants reports whether the conversation is between the two given
// ids, in either order
func (c ChatConversation) HasParticipants(a, b string) bool {
	if len(c.Participants) != 2 {
		return false
	}
	p0, p1 := c.Participants[0].ID, c.Participants[1].ID
	return (p0 == a && p1 == b) || (p0 == b && p1 == a)
}

// HasParticipant reports whether the given id is one of the two participants
func (c ChatConversation) HasParticipant(id string) bool {
	for _, p := range c.Participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// OtherParticipant returns the participant that is not the given id
func (c ChatConversation) OtherParticipant(id string) (ChatParticipant, bool) {
	for _, p := range c.Participants {
		if p.ID != id {
			return p, true
		}
	}
	return ChatParticipant{}, false
}

// Clone returns a deep copy of the conversation
func (c ChatConversation) Clone() ChatConversation {
	out := c
	out.Participants = append([]ChatParticipant(nil), c.Participants...)
	out.UnreadCounts = make(map[string]int, len(c.UnreadCounts))
	for id, n := range c.UnreadCounts {
		out.UnreadCounts[id] = n
	}
	return out
}

// ChatMessage is a single message belonging to exactly one conversation
type ChatMessage struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
}
