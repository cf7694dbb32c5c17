package dto

import (
	"time"

	"github.com/retrieverhq/retriever-study/internal/app/models"
)

// UpdateProfileRequest represents profile update data. Any change to
// bio, courses or prefs recomputes the profile embedding.
type UpdateProfileRequest struct {
	Name    string              `json:"name"`
	Bio     string              `json:"bio"`
	Courses []string            `json:"courses"`
	Prefs   map[string][]string `json:"prefs"`
}

// UserResponse represents a user profile in API responses
type UserResponse struct {
	UserID     string              `json:"userId"`
	Name       string              `json:"name"`
	Email      string              `json:"email"`
	PictureURL *string             `json:"pictureUrl,omitempty"`
	Courses    []string            `json:"courses"`
	Bio        string              `json:"bio"`
	Prefs      map[string][]string `json:"prefs"`
	CreatedAt  time.Time           `json:"createdAt"`
	LastLogin  time.Time           `json:"lastLogin"`
}

// FromUser converts a models.User to a UserResponse
func FromUser(user *models.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}

	return UserResponse{
		UserID:     user.ID,
		Name:       user.Name,
		Email:      user.Email,
		PictureURL: user.PictureURL,
		Courses:    user.Courses,
		Bio:        user.Bio,
		Prefs:      user.Prefs,
		CreatedAt:  user.CreatedAt,
		LastLogin:  user.LastLogin,
	}
}
