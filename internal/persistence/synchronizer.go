package persistence

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"
	"time"

	"kidventure/internal/models"
	"kidventure/internal/store"
)

const saveTimeout = 5 * time.Second

// Synchronizer keeps the store and device storage in sync: it loads the
// stored blob once at boot and then writes every state change back.
// Autosave only arms after the initial load so boot-time defaults can
// never clobber a blob that is still being read.
type Synchronizer struct {
	blobs  BlobStore
	store  *store.Store
	loaded atomic.Bool
}

// NewSynchronizer creates a synchronizer; call Load to arm it
func NewSynchronizer(blobs BlobStore, st *store.Store) *Synchronizer {
	return &Synchronizer{blobs: blobs, store: st}
}

// Load reads the stored state, merges it over defaults, migrates old
// schema versions and installs it into the store, then subscribes for
// autosave. Storage or parse failures fall back to defaults: a broken
// blob must never prevent the app from reaching a usable state.
func (s *Synchronizer) Load(ctx context.Context) error {
	state := models.DefaultAppState()

	blob, err := s.blobs.Load(ctx)
	if err != nil {
		log.Printf("Warning: failed to load stored state, starting fresh: %v", err)
	} else if blob != nil {
		// Unmarshalling into a default-initialized state gives new fields
		// their defaults when the blob predates them
		if err := json.Unmarshal(blob, &state); err != nil {
			log.Printf("Warning: stored state is not parseable, starting fresh: %v", err)
			state = models.DefaultAppState()
		}
	}

	migrate(&state)
	s.store.Replace(state)

	s.loaded.Store(true)
	s.store.Subscribe(s.autosave)
	return nil
}

// Loaded reports whether the initial load has completed
func (s *Synchronizer) Loaded() bool {
	return s.loaded.Load()
}

// autosave serializes and writes the full state after every change.
// Failures are logged, not retried; the next change writes again.
func (s *Synchronizer) autosave(state models.AppState) {
	if !s.loaded.Load() {
		return
	}

	blob, err := json.Marshal(state)
	if err != nil {
		log.Printf("Warning: failed to serialize state: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.blobs.Save(ctx, blob); err != nil {
		log.Printf("Warning: failed to save state: %v", err)
	}
}

// Reset clears storage and returns the store to defaults (logout)
func (s *Synchronizer) Reset(ctx context.Context) error {
	if err := s.blobs.Clear(ctx); err != nil {
		log.Printf("Warning: failed to clear storage on reset: %v", err)
	}
	s.store.Reset()
	return nil
}

// migrate upgrades a state loaded from an older blob in place
func migrate(state *models.AppState) {
	if state.SchemaVersion >= models.CurrentSchemaVersion {
		return
	}

	// Version 1 blobs predate per-kid persisted course progress; rebuild
	// empty progress records from the enrolled sets so cursors restart
	// at the first lesson instead of pointing nowhere
	if state.SchemaVersion < 2 {
		if state.CourseProgress == nil {
			state.CourseProgress = make(map[string]models.KidCourseProgress)
		}
		for _, kid := range state.KidProfiles {
			for _, courseID := range kid.EnrolledCourseIDs {
				key := models.ProgressKey(kid.ID, courseID)
				if _, ok := state.CourseProgress[key]; !ok {
					state.CourseProgress[key] = models.KidCourseProgress{KidID: kid.ID, CourseID: courseID}
				}
			}
		}
	}

	state.SchemaVersion = models.CurrentSchemaVersion
}
