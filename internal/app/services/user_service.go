package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/retrieverhq/retriever-study/internal/app/models"
	"github.com/retrieverhq/retriever-study/internal/app/models/dto"
	"github.com/retrieverhq/retriever-study/internal/pkg/ai"
	"github.com/retrieverhq/retriever-study/internal/pkg/apperrors"
)

// UserService defines operations on user profiles
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.User, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userStore UserStore
	embedder  ai.Embedder
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore UserStore, embedder ai.Embedder, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userStore: userStore,
		embedder:  embedder,
		logger:    logger,
	}
}

// GetProfile retrieves a user profile by ID
func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, "User profile not found")
	}
	return user, nil
}

// UpdateProfile applies the requested changes and refreshes the profile
// embedding when bio or courses changed. An embedding failure is not
// fatal: the stored vector is cleared so the next recommendation request
// recomputes it from the updated text.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, "User profile not found")
	}

	textChanged := req.Bio != user.Bio || !equalStrings(req.Courses, user.Courses)

	if req.Name != "" {
		user.Name = req.Name
	}
	user.Bio = req.Bio
	user.Courses = req.Courses
	if user.Courses == nil {
		user.Courses = []string{}
	}
	if req.Prefs != nil {
		user.Prefs = req.Prefs
	}

	if err := s.userStore.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	if textChanged {
		embedding, err := s.embedder.Embed(ctx, userEmbeddingText(user))
		if err != nil {
			s.logger.Warn().Err(err).
				Str("userID", userID).
				Msg("Failed to refresh profile embedding, clearing stale vector")
			embedding = nil
		}
		if err := s.userStore.UpdateEmbedding(ctx, userID, embedding); err != nil {
			s.logger.Warn().Err(err).
				Str("userID", userID).
				Msg("Failed to persist profile embedding")
		} else {
			user.Embedding = embedding
		}
	}

	return user, nil
}
