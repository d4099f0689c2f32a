package store

import "kidventure/internal/models"

// SetCatalog installs the remotely loaded collections. Catalog changes do
// not notify subscribers: the catalog is never persisted locally.
func (s *Store) SetCatalog(cat models.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = cloneCatalog(cat)
	s.catalogLoaded = true
}

// Catalog returns a snapshot of the loaded catalog
func (s *Store) Catalog() models.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCatalog(s.catalog)
}

// CatalogLoaded reports whether a catalog load has completed since boot
// or the last reset
func (s *Store) CatalogLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalogLoaded
}

// ReplaceTeacher swaps the teacher record with the same id, returning
// false if no such record is loaded
func (s *Store) ReplaceTeacher(t models.TeacherProfile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.catalog.Teachers {
		if s.catalog.Teachers[i].ID == t.ID {
			s.catalog.Teachers[i] = t
			return true
		}
	}
	return false
}

// ReplaceCourse swaps the course record with the same id
func (s *Store) ReplaceCourse(c models.Course) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.catalog.Courses {
		if s.catalog.Courses[i].ID == c.ID {
			s.catalog.Courses[i] = c
			return true
		}
	}
	return false
}

// ReplaceActivity swaps the activity record with the same id
func (s *Store) ReplaceActivity(a models.Activity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.catalog.Activities {
		if s.catalog.Activities[i].ID == a.ID {
			s.catalog.Activities[i] = a
			return true
		}
	}
	return false
}

// AddReview appends a fully formed review to the flat review list
func (s *Store) AddReview(review models.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog.Reviews = append(s.catalog.Reviews, review)
}

func cloneCatalog(cat models.Catalog) models.Catalog {
	out := cat
	out.Teachers = make([]models.TeacherProfile, len(cat.Teachers))
	for i, t := range cat.Teachers {
		t.Subjects = append([]string(nil), t.Subjects...)
		t.Reviews = append([]models.Review(nil), t.Reviews...)
		out.Teachers[i] = t
	}
	out.Courses = make([]models.Course, len(cat.Courses))
	for i, c := range cat.Courses {
		c.Lessons = append([]models.Lesson(nil), c.Lessons...)
		c.Reviews = append([]models.Review(nil), c.Reviews...)
		out.Courses[i] = c
	}
	out.Activities = append([]models.Activity(nil), cat.Activities...)
	out.Reviews = append([]models.Review(nil), cat.Reviews...)
	return out
}
