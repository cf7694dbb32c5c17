package services

import (
	"context"

	"github.com/retrieverhq/retriever-study/internal/app/models"
)

// GroupStore is the persistence contract for study groups. Implemented
// by repositories.GroupRepository; tests substitute an in-memory fake.
// Lookups return (nil, nil) when no record matches so callers decide
// how absence maps into the error taxonomy.
type GroupStore interface {
	Create(ctx context.Context, group *models.Group) (*models.Group, error)
	GetByID(ctx context.Context, groupID string) (*models.Group, error)
	GetAll(ctx context.Context, offset uint64, limit int) ([]*models.Group, error)
	GetByCourse(ctx context.Context, courseCode string) ([]*models.Group, error)
	GetForMember(ctx context.Context, userID string) ([]*models.Group, error)
	Update(ctx context.Context, group *models.Group) error
	UpdateMembers(ctx context.Context, groupID string, members []string) error
	UpdateEmbedding(ctx context.Context, groupID string, embedding []float64) error
	Count(ctx context.Context) (int64, error)
}

// UserStore is the persistence contract for user profiles.
type UserStore interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	UpsertOAuthUser(ctx context.Context, googleID, name, email string, pictureURL *string) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	UpdateEmbedding(ctx context.Context, userID string, embedding []float64) error
}

// MessageStore is the persistence contract for chat messages.
type MessageStore interface {
	Create(ctx context.Context, message *models.Message) (*models.Message, error)
	GetByGroup(ctx context.Context, groupID string, limit int) ([]*models.Message, error)
}

// Services holds all service instances
type Services struct {
	Auth           AuthService
	Group          GroupService
	Membership     MembershipService
	Recommendation RecommendationService
	User           UserService
	Message        MessageService
}
