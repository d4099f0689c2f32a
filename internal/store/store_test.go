package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"kidventure/internal/models"
)

// newTestStore returns a store with deterministic clock and id sequence
func newTestStore(initial models.AppState) *Store {
	s := New(initial)
	ids := 0
	s.newID = func() string {
		ids++
		return fmt.Sprintf("id-%d", ids)
	}
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time {
		base = base.Add(time.Second)
		return base
	}
	s.pickAvatar = func() (string, error) { return "🦊", nil }
	return s
}

func parentState(parentID string) models.AppState {
	state := models.DefaultAppState()
	state.CurrentUserRole = models.RoleParent
	state.CurrentParentProfileID = parentID
	return state
}

func TestAddKidProfileCreatesKidAndControls(t *testing.T) {
	s := newTestStore(parentState("p1"))

	kid, err := s.AddKidProfile(
		models.KidProfile{Name: "Mia", AgeGroup: models.AgeGroupEarly, Interests: []string{"space"}},
		models.ParentalControls{ScreenTimeLimitMins: 45},
	)
	if err != nil {
		t.Fatalf("AddKidProfile() error = %v", err)
	}

	state := s.State()
	if len(state.KidProfiles) != 1 {
		t.Fatalf("got %d kid profiles, want 1", len(state.KidProfiles))
	}
	got := state.KidProfiles[0]
	if got.ParentID != "p1" {
		t.Errorf("ParentID = %q, want p1", got.ParentID)
	}
	if got.AgeGroup != models.AgeGroupEarly {
		t.Errorf("AgeGroup = %q, want 5-7", got.AgeGroup)
	}
	if got.Avatar == "" {
		t.Error("expected a random avatar to be assigned")
	}
	controls, ok := state.ParentalControls[kid.ID]
	if !ok {
		t.Fatal("no parental controls entry for new kid")
	}
	if controls.ScreenTimeLimitMins != 45 {
		t.Errorf("ScreenTimeLimitMins = %d, want 45", controls.ScreenTimeLimitMins)
	}
}

func TestAddKidProfileRequiresActiveParent(t *testing.T) {
	s := newTestStore(models.DefaultAppState())

	_, err := s.AddKidProfile(models.KidProfile{Name: "Mia"}, models.ParentalControls{})
	if err != ErrNoActiveParent {
		t.Errorf("error = %v, want ErrNoActiveParent", err)
	}
}

func TestControlsCompletenessInvariant(t *testing.T) {
	s := newTestStore(parentState("p1"))

	// A state arriving from an older blob can miss controls entries; the
	// store default-fills them on every commit
	broken := parentState("p1")
	broken.KidProfiles = []models.KidProfile{{ID: "k1", ParentID: "p1", Name: "Leo"}}
	s.Replace(broken)

	for _, op := range []func(){
		func() { _, _ = s.AddKidProfile(models.KidProfile{Name: "Mia"}, models.ParentalControls{}) },
		func() { _ = s.EnrollInCourse("k1", "c1") },
		func() { s.CompleteOnboarding() },
	} {
		op()
		state := s.State()
		for _, kid := range state.KidProfiles {
			if _, ok := state.ParentalControls[kid.ID]; !ok {
				t.Fatalf("kid %s has no parental controls entry", kid.ID)
			}
		}
	}
}

func TestSelfHealDemotesRoleWhenActiveKidMissing(t *testing.T) {
	state := parentState("p1")
	state.CurrentUserRole = models.RoleKid
	state.CurrentKidProfileID = "gone"
	s := newTestStore(models.DefaultAppState())
	s.Replace(state)

	got := s.State()
	if got.CurrentUserRole != models.RoleParent {
		t.Errorf("role = %q, want parent after self-heal", got.CurrentUserRole)
	}
	if got.CurrentKidProfileID != "" {
		t.Errorf("active kid id = %q, want empty", got.CurrentKidProfileID)
	}
	if s.ActiveKidProfile() != nil {
		t.Error("ActiveKidProfile() should be nil after self-heal")
	}
}

func TestSelfHealClearsRoleWithoutParent(t *testing.T) {
	state := models.DefaultAppState()
	state.CurrentUserRole = models.RoleKid
	state.CurrentKidProfileID = "gone"
	s := newTestStore(models.DefaultAppState())
	s.Replace(state)

	if got := s.State().CurrentUserRole; got != models.RoleNone {
		t.Errorf("role = %q, want none", got)
	}
}

func TestSwitchToKidOwnershipCheck(t *testing.T) {
	s := newTestStore(parentState("p1"))
	kid, err := s.AddKidProfile(models.KidProfile{Name: "Mia"}, models.ParentalControls{})
	if err != nil {
		t.Fatalf("AddKidProfile() error = %v", err)
	}

	// Another parent's kid in the device roster
	other := s.State()
	other.KidProfiles = append(other.KidProfiles, models.KidProfile{ID: "k-other", ParentID: "p2", Name: "Ben"})
	s.Replace(other)

	if err := s.SwitchToKid("k-other"); err != ErrNotParentsKid {
		t.Errorf("SwitchToKid(foreign kid) error = %v, want ErrNotParentsKid", err)
	}
	if err := s.SwitchToKid("missing"); err != ErrKidNotFound {
		t.Errorf("SwitchToKid(missing) error = %v, want ErrKidNotFound", err)
	}
	if err := s.SwitchToKid(kid.ID); err != nil {
		t.Fatalf("SwitchToKid() error = %v", err)
	}

	state := s.State()
	if state.CurrentUserRole != models.RoleKid || state.CurrentKidProfileID != kid.ID {
		t.Errorf("state after switch = (%q, %q), want (kid, %s)", state.CurrentUserRole, state.CurrentKidProfileID, kid.ID)
	}

	if err := s.SwitchToParent(); err != nil {
		t.Fatalf("SwitchToParent() error = %v", err)
	}
	state = s.State()
	if state.CurrentUserRole != models.RoleParent || state.CurrentKidProfileID != "" {
		t.Errorf("state after return = (%q, %q), want (parent, empty)", state.CurrentUserRole, state.CurrentKidProfileID)
	}
}

func TestSwitchToParentWithoutParentResets(t *testing.T) {
	state := models.DefaultAppState()
	state.CurrentUserRole = models.RoleKid
	state.KidProfiles = []models.KidProfile{{ID: "k1", Name: "Mia"}}
	state.CurrentKidProfileID = "k1"
	s := newTestStore(models.DefaultAppState())
	s.Replace(state)

	if err := s.SwitchToParent(); err != ErrNoActiveParent {
		t.Errorf("error = %v, want ErrNoActiveParent", err)
	}
	got := s.State()
	if got.CurrentUserRole != models.RoleNone || len(got.KidProfiles) != 0 {
		t.Error("expected a full reset when no parent id is present")
	}
}

func TestSubscribersSeeEveryCommit(t *testing.T) {
	s := newTestStore(parentState("p1"))
	var seen []int
	s.Subscribe(func(state models.AppState) {
		seen = append(seen, len(state.KidProfiles))
	})

	_, _ = s.AddKidProfile(models.KidProfile{Name: "Mia"}, models.ParentalControls{})
	_, _ = s.AddKidProfile(models.KidProfile{Name: "Leo"}, models.ParentalControls{})

	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("subscriber saw %v, want [1 2]", seen)
	}
}

func TestRacingCommitsDeliverNewestSnapshotLast(t *testing.T) {
	s := newTestStore(models.DefaultAppState())

	entered := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	first := true
	var last models.AppState
	s.Subscribe(func(state models.AppState) {
		mu.Lock()
		blockHere := first
		first = false
		mu.Unlock()
		if blockHere {
			close(entered)
			<-release
		}
		mu.Lock()
		last = state
		mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.SignInParent("p1")
	}()
	<-entered
	go func() {
		defer wg.Done()
		s.CompleteOnboarding()
	}()

	// Let the second commit reach the delivery path while the first
	// subscriber call is still in flight
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if last.CurrentParentProfileID != "p1" || !last.OnboardingComplete {
		t.Errorf("final snapshot = (parent %q, onboarding %t), want the newest commit last",
			last.CurrentParentProfileID, last.OnboardingComplete)
	}
}

func TestCatalogSnapshotsDoNotShareNestedSlices(t *testing.T) {
	s := newTestStore(models.DefaultAppState())
	s.SetCatalog(models.Catalog{
		Teachers: []models.TeacherProfile{
			{ID: "t1", Reviews: []models.Review{{ID: "r1", Rating: 5}}},
		},
		Courses: []models.Course{
			{
				ID:      "c1",
				Lessons: []models.Lesson{{ID: "l1", Title: "Letters"}},
				Reviews: []models.Review{{ID: "r2", Rating: 4}},
			},
		},
	})

	snap := s.Catalog()
	snap.Teachers[0].Reviews[0].Rating = 1
	snap.Courses[0].Lessons[0].Title = "Scribbled"
	snap.Courses[0].Reviews[0].Rating = 1

	fresh := s.Catalog()
	if got := fresh.Teachers[0].Reviews[0].Rating; got != 5 {
		t.Errorf("teacher review rating = %d, want 5", got)
	}
	if got := fresh.Courses[0].Lessons[0].Title; got != "Letters" {
		t.Errorf("lesson title = %q, want Letters", got)
	}
	if got := fresh.Courses[0].Reviews[0].Rating; got != 4 {
		t.Errorf("course review rating = %d, want 4", got)
	}
}

func TestResetClearsStateAndCatalog(t *testing.T) {
	s := newTestStore(parentState("p1"))
	s.SetCatalog(models.Catalog{Courses: []models.Course{{ID: "c1"}}})
	_, _ = s.AddKidProfile(models.KidProfile{Name: "Mia"}, models.ParentalControls{})

	s.Reset()

	if got := s.State(); got.CurrentUserRole != models.RoleNone || len(got.KidProfiles) != 0 {
		t.Error("Reset() did not restore defaults")
	}
	if s.CatalogLoaded() {
		t.Error("Reset() should flag the catalog as needing reload")
	}
	if got := s.Catalog(); len(got.Courses) != 0 {
		t.Error("Reset() should clear catalog collections")
	}
}
