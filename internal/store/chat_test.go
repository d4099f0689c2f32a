package store

import (
	"strings"
	"testing"

	"kidventure/internal/models"
)

var teacherParticipant = models.ChatParticipant{
	ID:   "t1",
	Role: models.RoleTeacher,
	Name: "Ms. Rivera",
}

func TestStartOrGoToChatFindOrCreateIsSymmetric(t *testing.T) {
	s := newTestStore(parentState("p1"))

	first, err := s.StartOrGoToChat(teacherParticipant)
	if err != nil {
		t.Fatalf("StartOrGoToChat() error = %v", err)
	}
	if first == "" {
		t.Fatal("expected a conversation id")
	}

	// Same pair again from the parent side
	again, err := s.StartOrGoToChat(teacherParticipant)
	if err != nil {
		t.Fatalf("StartOrGoToChat() error = %v", err)
	}
	if again != first {
		t.Errorf("second call returned %q, want %q", again, first)
	}

	// Now the teacher initiates towards the parent: still the same
	// conversation, regardless of participant order
	s.SignInTeacher("t1")
	fromTeacher, err := s.StartOrGoToChat(models.ChatParticipant{ID: "p1", Role: models.RoleParent, Name: "Parent"})
	if err != nil {
		t.Fatalf("StartOrGoToChat() from teacher error = %v", err)
	}
	if fromTeacher != first {
		t.Errorf("teacher-initiated call returned %q, want %q", fromTeacher, first)
	}

	if got := len(s.State().ChatConversations); got != 1 {
		t.Errorf("conversation count = %d, want 1", got)
	}
}

func TestStartOrGoToChatWithoutActiveUser(t *testing.T) {
	s := newTestStore(models.DefaultAppState())
	id, err := s.StartOrGoToChat(teacherParticipant)
	if err != ErrNoActiveUser {
		t.Errorf("error = %v, want ErrNoActiveUser", err)
	}
	if id != "" {
		t.Errorf("id = %q, want empty", id)
	}
}

func TestSendChatMessageUnreadCounters(t *testing.T) {
	s := newTestStore(parentState("p1"))
	convoID, err := s.StartOrGoToChat(teacherParticipant)
	if err != nil {
		t.Fatalf("StartOrGoToChat() error = %v", err)
	}

	msg, err := s.SendChatMessage(convoID, "Hello! How is Mia doing?")
	if err != nil {
		t.Fatalf("SendChatMessage() error = %v", err)
	}
	if msg.SenderID != "p1" {
		t.Errorf("SenderID = %q, want p1", msg.SenderID)
	}

	convo := s.State().ChatConversations[0]
	if got := convo.UnreadCounts["t1"]; got != 1 {
		t.Errorf("recipient unread = %d, want 1", got)
	}
	if got := convo.UnreadCounts["p1"]; got != 0 {
		t.Errorf("sender unread = %d, want 0", got)
	}
	if convo.LastMessageText != msg.Text {
		t.Errorf("LastMessageText = %q, want %q", convo.LastMessageText, msg.Text)
	}

	// Recipient reads the conversation
	s.SignInTeacher("t1")
	if err := s.MarkConversationAsRead(convoID); err != nil {
		t.Fatalf("MarkConversationAsRead() error = %v", err)
	}
	convo = s.State().ChatConversations[0]
	if got := convo.UnreadCounts["t1"]; got != 0 {
		t.Errorf("unread after read = %d, want 0", got)
	}
}

func TestSendChatMessageRoleRestrictions(t *testing.T) {
	s := newTestStore(parentState("p1"))
	kid, err := s.AddKidProfile(models.KidProfile{Name: "Mia"}, models.ParentalControls{})
	if err != nil {
		t.Fatalf("AddKidProfile() error = %v", err)
	}
	convoID, err := s.StartOrGoToChat(teacherParticipant)
	if err != nil {
		t.Fatalf("StartOrGoToChat() error = %v", err)
	}

	if err := s.SwitchToKid(kid.ID); err != nil {
		t.Fatalf("SwitchToKid() error = %v", err)
	}
	if _, err := s.SendChatMessage(convoID, "hi"); err != ErrSenderNotAllowed {
		t.Errorf("kid send error = %v, want ErrSenderNotAllowed", err)
	}

	s.SignInAdmin(models.AdminProfile{ID: "a1", Name: "Admin"})
	if _, err := s.SendChatMessage(convoID, "hi"); err != ErrSenderNotAllowed {
		t.Errorf("admin send error = %v, want ErrSenderNotAllowed", err)
	}
}

func TestSendChatMessageUnknownConversation(t *testing.T) {
	s := newTestStore(parentState("p1"))
	if _, err := s.SendChatMessage("missing", "hi"); err != ErrConversationNotFound {
		t.Errorf("error = %v, want ErrConversationNotFound", err)
	}
}

func TestSendChatMessageAppliesFilter(t *testing.T) {
	s := newTestStore(parentState("p1"))
	s.SetMessageFilter(func(text string) string {
		return strings.ReplaceAll(text, "darn", "****")
	})
	convoID, err := s.StartOrGoToChat(teacherParticipant)
	if err != nil {
		t.Fatalf("StartOrGoToChat() error = %v", err)
	}

	msg, err := s.SendChatMessage(convoID, "darn homework")
	if err != nil {
		t.Fatalf("SendChatMessage() error = %v", err)
	}
	if msg.Text != "**** homework" {
		t.Errorf("Text = %q, want filtered", msg.Text)
	}
}

func TestConversationsForSortsByRecency(t *testing.T) {
	s := newTestStore(parentState("p1"))
	first, _ := s.StartOrGoToChat(teacherParticipant)
	second, _ := s.StartOrGoToChat(models.ChatParticipant{ID: "t2", Role: models.RoleTeacher, Name: "Mr. Okafor"})

	if _, err := s.SendChatMessage(first, "bumping the older conversation"); err != nil {
		t.Fatalf("SendChatMessage() error = %v", err)
	}

	convos := s.ConversationsFor("p1")
	if len(convos) != 2 {
		t.Fatalf("got %d conversations, want 2", len(convos))
	}
	if convos[0].ID != first || convos[1].ID != second {
		t.Errorf("order = [%s %s], want [%s %s]", convos[0].ID, convos[1].ID, first, second)
	}
}

func TestUnreadTotal(t *testing.T) {
	s := newTestStore(parentState("p1"))
	first, _ := s.StartOrGoToChat(teacherParticipant)
	_, _ = s.StartOrGoToChat(models.ChatParticipant{ID: "t2", Role: models.RoleTeacher})
	if _, err := s.SendChatMessage(first, "one"); err != nil {
		t.Fatalf("SendChatMessage() error = %v", err)
	}
	if _, err := s.SendChatMessage(first, "two"); err != nil {
		t.Fatalf("SendChatMessage() error = %v", err)
	}

	if got := s.UnreadTotal("t1"); got != 2 {
		t.Errorf("UnreadTotal(t1) = %d, want 2", got)
	}
	if got := s.UnreadTotal("p1"); got != 0 {
		t.Errorf("UnreadTotal(p1) = %d, want 0", got)
	}
}
