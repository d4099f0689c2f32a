package models

// ParentalControls holds the per-kid restrictions a parent configures.
// Every kid profile must have a matching entry; missing entries are
// default-filled rather than treated as an error.
type ParentalControls struct {
	KidID               string   `json:"kidId"`
	ScreenTimeLimitMins int      `json:"screenTimeLimitMins"`
	ContentFilters      []string `json:"contentFilters,omitempty"`
	PremiumAccess       bool     `json:"premiumAccess"`
	BlockedTeacherIDs   []string `json:"blockedTeacherIds,omitempty"`
	SubscribedCourseIDs []string `json:"subscribedCourseIds,omitempty"`
	PINHash             string   `json:"pinHash,omitempty"`
}

// DefaultParentalControls returns the settings applied to a kid that has
// no explicit entry yet
func DefaultParentalControls(kidID string) ParentalControls {
	return ParentalControls{
		KidID:               kidID,
		ScreenTimeLimitMins: 60,
	}
}

// IsTeacherBlocked reports whether the given teacher is blocked for this kid
func (c ParentalControls) IsTeacherBlocked(teacherID string) bool {
	for _, id := range c.BlockedTeacherIDs {
		if id == teacherID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the controls
func (c ParentalControls) Clone() ParentalControls {
	out := c
	out.ContentFilters = append([]string(nil), c.ContentFilters...)
	out.BlockedTeacherIDs = append([]string(nil), c.BlockedTeacherIDs...)
	out.SubscribedCourseIDs = append([]string(nil), c.SubscribedCourseIDs...)
	return out
}
