package store

import (
	"errors"
	"sync"
	"time"

	"kidventure/internal/credentials"
	"kidventure/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNoActiveParent       = errors.New("no active parent profile")
	ErrNoActiveUser         = errors.New("no active user for the current role")
	ErrKidNotFound          = errors.New("kid profile not found")
	ErrNotParentsKid        = errors.New("kid does not belong to the active parent")
	ErrCourseNotFound       = errors.New("course not found")
	ErrNotEnrolled          = errors.New("kid has no progress for this course")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("user is not a participant in this conversation")
	ErrSenderNotAllowed     = errors.New("this role cannot send chat messages")
)

// Store is the single owner of AppState. Every write goes through one of
// the mutation methods, which clone the state, apply the change, re-assert
// the invariants and then notify subscribers with the new snapshot.
// Consumers never receive a reference into the live state.
type Store struct {
	mu            sync.RWMutex
	state         models.AppState
	catalog       models.Catalog
	catalogLoaded bool
	subscribers   []func(models.AppState)

	// version counts commits; notifyMu serializes subscriber delivery and
	// notifiedVersion drops snapshots that lost the race to a newer commit
	version         uint64
	notifyMu        sync.Mutex
	notifiedVersion uint64

	// messageFilter rewrites outgoing chat text (profanity masking); nil
	// means messages pass through untouched
	messageFilter func(string) string

	now        func() time.Time
	newID      func() string
	pickAvatar func() (string, error)
}

// New creates a store seeded with the given state
func New(initial models.AppState) *Store {
	s := &Store{
		state:      initial.Clone(),
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
		pickAvatar: credentials.RandomAvatar,
	}
	s.finalize(&s.state)
	return s
}

// Subscribe registers a callback invoked after committed state changes.
// Callbacks receive a private clone of the new state, run one at a time,
// and never see an older snapshot after a newer one; when commits race,
// the loser is skipped instead of delivered out of order.
func (s *Store) Subscribe(fn func(models.AppState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// SetMessageFilter installs the outgoing chat text filter
func (s *Store) SetMessageFilter(fn func(string) string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messageFilter = fn
}

// State returns a snapshot of the current state
func (s *Store) State() models.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Replace swaps in a fully formed state, used by the persistence layer
// once the stored blob has been loaded and migrated
func (s *Store) Replace(state models.AppState) {
	s.mu.Lock()
	next := state.Clone()
	s.finalize(&next)
	s.commitLocked(next)
}

// Reset returns the state to defaults and discards the loaded catalog.
// Used by logout and by a corrupt-state recovery path.
func (s *Store) Reset() {
	s.mu.Lock()
	s.catalog = models.Catalog{}
	s.catalogLoaded = false
	s.commitLocked(models.DefaultAppState())
}

// commitLocked installs the next state and notifies subscribers. The
// caller must hold s.mu; the lock is released before callbacks run so a
// subscriber may read from the store again (callbacks must not call
// mutation methods). Delivery is serialized in commit order: each
// snapshot carries the full state, so one that reaches the delivery
// lock after a newer commit has already been handed out is dropped
// rather than delivered stale.
func (s *Store) commitLocked(next models.AppState) {
	s.state = next
	s.version++
	version := s.version
	subs := append([]func(models.AppState){}, s.subscribers...)
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if version <= s.notifiedVersion {
		return
	}
	s.notifiedVersion = version
	for _, fn := range subs {
		fn(next.Clone())
	}
}

// finalize re-asserts the structural invariants before a state is
// committed: every kid has a parental-controls entry, and an active kid
// id that no longer resolves demotes the role instead of leaving the UI
// pointing at a missing profile.
func (s *Store) finalize(next *models.AppState) {
	if next.ParentalControls == nil {
		next.ParentalControls = make(map[string]models.ParentalControls)
	}
	if next.CourseProgress == nil {
		next.CourseProgress = make(map[string]models.KidCourseProgress)
	}
	for _, kid := range next.KidProfiles {
		if _, ok := next.ParentalControls[kid.ID]; !ok {
			next.ParentalControls[kid.ID] = models.DefaultParentalControls(kid.ID)
		}
	}

	if next.CurrentUserRole == models.RoleKid && next.KidByID(next.CurrentKidProfileID) == nil {
		next.CurrentKidProfileID = ""
		if next.CurrentParentProfileID != "" {
			next.CurrentUserRole = models.RoleParent
		} else {
			next.CurrentUserRole = models.RoleNone
		}
	}
}
