package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"kidventure/internal/backend"
	"kidventure/internal/catalog"
	"kidventure/internal/models"
	"kidventure/internal/navigation"
	"kidventure/internal/persistence"
	"kidventure/internal/security"
	"kidventure/internal/service"
	"kidventure/internal/session"
	"kidventure/internal/store"
)

type memBlobStore struct {
	mu   sync.Mutex
	blob []byte
}

func (m *memBlobStore) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blob, nil
}

func (m *memBlobStore) Save(ctx context.Context, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = append([]byte(nil), blob...)
	return nil
}

func (m *memBlobStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = nil
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st := store.New(models.DefaultAppState())
	syncer := persistence.NewSynchronizer(&memBlobStore{}, st)
	if err := syncer.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	client := backend.NewMockClient()
	loader := catalog.NewLoader(client, st, time.Second)
	if err := loader.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}

	sessions, err := session.NewManager("test-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	email, err := service.NewEmailService("eu-west-1", "", "")
	if err != nil {
		t.Fatal(err)
	}
	moderation := service.NewModerationService(loader, st, email)
	bridge := navigation.NewBridge(navigation.NewMemoryNavigator())

	middleware := NewMiddleware(sessions, security.NewRateLimiter(100, time.Minute))
	authHandler := NewAuthHandler(st, sessions, nil, "")
	stateHandler := NewStateHandler(st, sessions, syncer)
	progressHandler := NewProgressHandler(st)
	chatHandler := NewChatHandler(st)
	catalogHandler := NewCatalogHandler(st, loader, moderation)
	navigationHandler := NewNavigationHandler(bridge)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /api/state", middleware.RequireSession(stateHandler.GetState))
	mux.HandleFunc("POST /api/kids", middleware.RequireRole(models.RoleParent, stateHandler.AddKid))
	mux.HandleFunc("PUT /api/kids/{id}", middleware.RequireRole(models.RoleParent, stateHandler.UpdateKid))
	mux.HandleFunc("POST /api/session/kid/{id}", middleware.RequireRole(models.RoleParent, stateHandler.SwitchToKid))
	mux.HandleFunc("POST /api/session/parent", middleware.RequireSession(stateHandler.SwitchToParent))
	mux.HandleFunc("POST /api/kids/{id}/enroll", middleware.RequireSession(progressHandler.Enroll))
	mux.HandleFunc("POST /api/kids/{id}/lessons/complete", middleware.RequireSession(progressHandler.CompleteLesson))
	mux.HandleFunc("POST /api/chats", middleware.RequireSession(chatHandler.StartChat))
	mux.HandleFunc("POST /api/chats/{id}/messages", middleware.RequireSession(chatHandler.SendMessage))
	mux.HandleFunc("GET /api/catalog", catalogHandler.GetCatalog)
	mux.HandleFunc("PATCH /api/admin/courses/{id}/status", middleware.RequireRole(models.RoleAdmin, catalogHandler.ModerateCourse))
	mux.HandleFunc("GET /api/navigation/current", navigationHandler.Current)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	} else {
		resp.Body.Close()
	}
	return resp
}

func loginParent(t *testing.T, server *httptest.Server) (token, parentID string) {
	t.Helper()
	var resp loginResponse
	r := doJSON(t, "POST", server.URL+"/api/auth/login", "",
		map[string]string{"role": "parent"}, &resp)
	if r.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", r.StatusCode)
	}
	return resp.Token, resp.ProfileID
}

func TestStateRequiresSession(t *testing.T) {
	server := newTestServer(t)
	r := doJSON(t, "GET", server.URL+"/api/state", "", nil, nil)
	if r.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", r.StatusCode)
	}
}

func TestAddKidAndMasqueradeFlow(t *testing.T) {
	server := newTestServer(t)
	token, parentID := loginParent(t, server)

	var kid models.KidProfile
	r := doJSON(t, "POST", server.URL+"/api/kids", token, map[string]interface{}{
		"name":     "Mia",
		"ageGroup": "5-7",
		"controls": map[string]interface{}{"screenTimeLimitMins": 45, "pin": "1234"},
	}, &kid)
	if r.StatusCode != http.StatusCreated {
		t.Fatalf("add kid status = %d", r.StatusCode)
	}
	if kid.ParentID != parentID || kid.AgeGroup != models.AgeGroupEarly {
		t.Errorf("kid = %+v, want owned by %s with age group 5-7", kid, parentID)
	}

	// Switch into kid mode
	var kidSession loginResponse
	r = doJSON(t, "POST", server.URL+"/api/session/kid/"+kid.ID, token, nil, &kidSession)
	if r.StatusCode != http.StatusOK || kidSession.Role != models.RoleKid {
		t.Fatalf("switch to kid: status = %d, role = %q", r.StatusCode, kidSession.Role)
	}

	// Leaving kid mode requires the PIN set on the kid's controls
	r = doJSON(t, "POST", server.URL+"/api/session/parent", kidSession.Token,
		map[string]string{"pin": "9999"}, nil)
	if r.StatusCode != http.StatusForbidden {
		t.Errorf("wrong pin: status = %d, want 403", r.StatusCode)
	}

	var parentSession loginResponse
	r = doJSON(t, "POST", server.URL+"/api/session/parent", kidSession.Token,
		map[string]string{"pin": "1234"}, &parentSession)
	if r.StatusCode != http.StatusOK || parentSession.Role != models.RoleParent {
		t.Errorf("correct pin: status = %d, role = %q", r.StatusCode, parentSession.Role)
	}
}

func TestStateDoesNotExposePINHash(t *testing.T) {
	server := newTestServer(t)
	token, _ := loginParent(t, server)

	var kid models.KidProfile
	doJSON(t, "POST", server.URL+"/api/kids", token, map[string]interface{}{
		"name":     "Mia",
		"controls": map[string]interface{}{"pin": "1234"},
	}, &kid)

	var kidSession loginResponse
	doJSON(t, "POST", server.URL+"/api/session/kid/"+kid.ID, token, nil, &kidSession)

	var state models.AppState
	r := doJSON(t, "GET", server.URL+"/api/state", kidSession.Token, nil, &state)
	if r.StatusCode != http.StatusOK {
		t.Fatalf("state status = %d", r.StatusCode)
	}
	controls, ok := state.ParentalControls[kid.ID]
	if !ok {
		t.Fatal("no parental controls entry for kid in state response")
	}
	if controls.PINHash != "" {
		t.Error("state response carries the PIN hash")
	}

	// The stored hash stays intact and keeps gating the switch back
	r = doJSON(t, "POST", server.URL+"/api/session/parent", kidSession.Token,
		map[string]string{"pin": "9999"}, nil)
	if r.StatusCode != http.StatusForbidden {
		t.Errorf("wrong pin after state read: status = %d, want 403", r.StatusCode)
	}
}

func TestEnrollAndCompleteLessonOverAPI(t *testing.T) {
	server := newTestServer(t)
	token, _ := loginParent(t, server)

	var kid models.KidProfile
	doJSON(t, "POST", server.URL+"/api/kids", token, map[string]interface{}{
		"name": "Leo",
	}, &kid)

	// c-phonics comes from the mock catalog
	var progress models.KidCourseProgress
	r := doJSON(t, "POST", server.URL+"/api/kids/"+kid.ID+"/enroll", token,
		map[string]string{"courseId": "c-phonics"}, &progress)
	if r.StatusCode != http.StatusOK {
		t.Fatalf("enroll status = %d", r.StatusCode)
	}

	r = doJSON(t, "POST", server.URL+"/api/kids/"+kid.ID+"/lessons/complete", token,
		map[string]string{"courseId": "c-phonics", "lessonId": "l-ph-1"}, &progress)
	if r.StatusCode != http.StatusOK {
		t.Fatalf("complete lesson status = %d", r.StatusCode)
	}
	if len(progress.CompletedLessonIDs) != 1 || progress.CurrentLessonIndex != 1 {
		t.Errorf("progress = %+v, want one completed lesson and cursor 1", progress)
	}

	r = doJSON(t, "POST", server.URL+"/api/kids/"+kid.ID+"/enroll", token,
		map[string]string{"courseId": "no-such-course"}, nil)
	if r.StatusCode != http.StatusNotFound {
		t.Errorf("unknown course enroll status = %d, want 404", r.StatusCode)
	}
}

func TestKidCannotSendChat(t *testing.T) {
	server := newTestServer(t)
	token, _ := loginParent(t, server)

	var kid models.KidProfile
	doJSON(t, "POST", server.URL+"/api/kids", token, map[string]interface{}{"name": "Mia"}, &kid)

	var started map[string]string
	r := doJSON(t, "POST", server.URL+"/api/chats", token, map[string]string{
		"participantId":   "t-amelia",
		"participantRole": "teacher",
		"participantName": "Amelia",
	}, &started)
	if r.StatusCode != http.StatusOK {
		t.Fatalf("start chat status = %d", r.StatusCode)
	}
	conversationID := started["conversationId"]

	// Parent can send
	r = doJSON(t, "POST", server.URL+"/api/chats/"+conversationID+"/messages", token,
		map[string]string{"text": "Hello!"}, nil)
	if r.StatusCode != http.StatusCreated {
		t.Errorf("parent send status = %d, want 201", r.StatusCode)
	}

	// Kid role cannot
	var kidSession loginResponse
	doJSON(t, "POST", server.URL+"/api/session/kid/"+kid.ID, token, nil, &kidSession)
	r = doJSON(t, "POST", server.URL+"/api/chats/"+conversationID+"/messages", kidSession.Token,
		map[string]string{"text": "hi"}, nil)
	if r.StatusCode != http.StatusForbidden {
		t.Errorf("kid send status = %d, want 403", r.StatusCode)
	}
}

func TestModerationRequiresAdminRole(t *testing.T) {
	server := newTestServer(t)
	parentToken, _ := loginParent(t, server)

	r := doJSON(t, "PATCH", server.URL+"/api/admin/courses/c-kitchen/status", parentToken,
		map[string]string{"status": "active"}, nil)
	if r.StatusCode != http.StatusForbidden {
		t.Fatalf("parent moderation status = %d, want 403", r.StatusCode)
	}

	var adminSession loginResponse
	doJSON(t, "POST", server.URL+"/api/auth/login", "",
		map[string]string{"role": "admin", "name": "Root"}, &adminSession)

	var course models.Course
	r = doJSON(t, "PATCH", server.URL+"/api/admin/courses/c-kitchen/status", adminSession.Token,
		map[string]string{"status": "active"}, &course)
	if r.StatusCode != http.StatusOK || course.Status != models.StatusActive {
		t.Errorf("admin moderation: status = %d, course status = %q", r.StatusCode, course.Status)
	}
}
