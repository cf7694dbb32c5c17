package models

import "time"

// User defines the user model based on the 'users' table.
// Accounts are provisioned through Google OAuth; there is no password.
type User struct {
	ID         string              `json:"userId" db:"user_id" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
	GoogleID   *string             `json:"-" db:"google_id"`
	Name       string              `json:"name" db:"name" example:"Jane Doe"`
	Email      string              `json:"email" db:"email" example:"jdoe1@umbc.edu"`
	PictureURL *string             `json:"pictureUrl,omitempty" db:"picture_url"`
	Courses    []string            `json:"courses" db:"courses"`
	Bio        string              `json:"bio" db:"bio"`
	Prefs      map[string][]string `json:"prefs" db:"prefs"`
	Embedding  []float64           `json:"-" db:"embedding"`
	CreatedAt  time.Time           `json:"createdAt" db:"created_at"`
	LastLogin  time.Time           `json:"lastLogin" db:"last_login"`
	IsActive   bool                `json:"isActive" db:"is_active"`
}

// HasEmbedding reports whether a profile embedding has been computed.
func (u *User) HasEmbedding() bool {
	return len(u.Embedding) > 0
}
