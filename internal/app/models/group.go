package models

import "time"

// Membership bounds for study groups. Requested sizes outside this
// range are clamped at creation and update time, never stored raw.
const (
	DefaultMaxMembers = 8
	MinMaxMembers     = 2
	MaxMaxMembers     = 50
)

// Group defines the study group model based on the 'groups' table.
// Members preserves insertion order; the owner is always the first entry.
type Group struct {
	ID          string     `json:"groupId" db:"group_id" example:"7b0c2f4e-1b2a-4c3d-9e8f-5a6b7c8d9e0f"`
	CourseCode  string     `json:"courseCode" db:"course_code" example:"CMSC341"`
	Title       string     `json:"title" db:"title" example:"Data Structures Study Crew"`
	Description string     `json:"description" db:"description"`
	Tags        []string   `json:"tags" db:"tags"`
	TimePrefs   []string   `json:"timePrefs" db:"time_prefs"`
	Location    string     `json:"location" db:"location" example:"AOK Library"`
	OwnerID     string     `json:"ownerId" db:"owner_id"`
	Members     []string   `json:"members" db:"members"`
	Embedding   []float64  `json:"-" db:"embedding"`
	MaxMembers  int        `json:"maxMembers" db:"max_members" example:"8"`
	Semester    *string    `json:"semester,omitempty" db:"semester"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty" db:"expires_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// MemberCount returns the current number of members.
func (g *Group) MemberCount() int {
	return len(g.Members)
}

// IsFull reports whether the group has reached its member capacity.
func (g *Group) IsFull() bool {
	return len(g.Members) >= g.MaxMembers
}

// HasMember reports whether the given user is in the member list.
func (g *Group) HasMember(userID string) bool {
	for _, id := range g.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// HasEmbedding reports whether an embedding has been computed for the group.
func (g *Group) HasEmbedding() bool {
	return len(g.Embedding) > 0
}

// ClampMaxMembers normalizes a requested member capacity into the
// allowed range. Non-positive values fall back to the default.
func ClampMaxMembers(requested int) int {
	if requested <= 0 {
		requested = DefaultMaxMembers
	}
	if requested < MinMaxMembers {
		return MinMaxMembers
	}
	if requested > MaxMaxMembers {
		return MaxMaxMembers
	}
	return requested
}
