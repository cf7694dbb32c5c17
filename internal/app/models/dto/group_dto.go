package dto

import (
	"time"

	"github.com/retrieverhq/retriever-study/internal/app/models"
)

// --- Request DTOs ---

// CreateGroupRequest represents study group creation data
type CreateGroupRequest struct {
	CourseCode  string   `json:"courseCode" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	TimePrefs   []string `json:"timePrefs"`
	Location    string   `json:"location"`
	MaxMembers  int      `json:"maxMembers"`
	Semester    *string  `json:"semester,omitempty"`
}

// UpdateGroupRequest represents study group update data. Changing
// title, description or tags triggers an embedding recompute.
type UpdateGroupRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	TimePrefs   []string `json:"timePrefs"`
	Location    string   `json:"location"`
	MaxMembers  int      `json:"maxMembers"`
}

// --- Response DTOs ---

// GroupSummary represents a study group in API responses.
// MemberCount and IsFull are derived from the member list, never set
// independently.
type GroupSummary struct {
	GroupID     string     `json:"groupId"`
	CourseCode  string     `json:"courseCode"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	TimePrefs   []string   `json:"timePrefs"`
	Location    string     `json:"location"`
	OwnerID     string     `json:"ownerId"`
	Members     []string   `json:"members"`
	MemberCount int        `json:"memberCount"`
	MaxMembers  int        `json:"maxMembers"`
	IsFull      bool       `json:"isFull"`
	Semester    *string    `json:"semester,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// GroupListResponse represents a paginated list of groups
type GroupListResponse struct {
	Groups     []GroupSummary `json:"groups"`
	Pagination PaginationInfo `json:"pagination"`
}

// RankedGroup is a group paired with its similarity score, returned by
// search and recommendation endpoints.
type RankedGroup struct {
	GroupSummary
	Score float64 `json:"score"`
}

// FromGroup converts a models.Group to a GroupSummary.
// The embedding field is intentionally omitted from the payload.
func FromGroup(group *models.Group) GroupSummary {
	if group == nil {
		return GroupSummary{}
	}

	return GroupSummary{
		GroupID:     group.ID,
		CourseCode:  group.CourseCode,
		Title:       group.Title,
		Description: group.Description,
		Tags:        group.Tags,
		TimePrefs:   group.TimePrefs,
		Location:    group.Location,
		OwnerID:     group.OwnerID,
		Members:     group.Members,
		MemberCount: group.MemberCount(),
		MaxMembers:  group.MaxMembers,
		IsFull:      group.IsFull(),
		Semester:    group.Semester,
		ExpiresAt:   group.ExpiresAt,
		CreatedAt:   group.CreatedAt,
	}
}

// FromGroups converts a slice of groups to summaries
func FromGroups(groups []*models.Group) []GroupSummary {
	summaries := make([]GroupSummary, 0, len(groups))
	for _, group := range groups {
		summaries = append(summaries, FromGroup(group))
	}
	return summaries
}
