package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/retrieverhq/retriever-study/internal/app/models"
	"github.com/retrieverhq/retriever-study/internal/app/models/dto"
	"github.com/retrieverhq/retriever-study/internal/pkg/ai"
	"github.com/retrieverhq/retriever-study/internal/pkg/apperrors"
	"github.com/retrieverhq/retriever-study/internal/pkg/vector"
)

const (
	// maxCandidates bounds how many groups a single ranking pass
	// considers, keeping the O(n) similarity scan cheap.
	maxCandidates = 100

	// DefaultSearchLimit is the top-K returned by search when the
	// caller does not specify one.
	DefaultSearchLimit = 10

	// DefaultRecommendLimit is the top-K returned by recommendations.
	DefaultRecommendLimit = 5
)

// RecommendationService ranks study groups against a query or a user
// profile by embedding similarity.
type RecommendationService interface {
	Search(ctx context.Context, query string, limit int) ([]dto.RankedGroup, error)
	Recommend(ctx context.Context, userID string, limit int) ([]dto.RankedGroup, error)
}

// recommendationServiceImpl implements RecommendationService
type recommendationServiceImpl struct {
	groupStore GroupStore
	userStore  UserStore
	embedder   ai.Embedder
	logger     zerolog.Logger
}

// NewRecommendationService creates a new RecommendationService
func NewRecommendationService(groupStore GroupStore, userStore UserStore, embedder ai.Embedder, logger zerolog.Logger) RecommendationService {
	return &recommendationServiceImpl{
		groupStore: groupStore,
		userStore:  userStore,
		embedder:   embedder,
		logger:     logger,
	}
}

// Search embeds the query text and returns the top groups by cosine
// similarity. The query is validated before any provider call.
func (s *recommendationServiceImpl) Search(ctx context.Context, query string, limit int) ([]dto.RankedGroup, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrEmptyQuery, "Search query cannot be empty")
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	s.logger.Debug().
		Str("query", query).
		Int("limit", limit).
		Msg("Running semantic group search")

	queryEmbedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to embed search query")
		return nil, err
	}

	return s.rankAgainst(ctx, queryEmbedding, limit)
}

// Recommend ranks groups against the user's profile embedding. The
// embedding is materialized lazily: computed and persisted on the first
// recommendation request after a profile exists without one, so the
// provider cost is paid once. Groups the user already belongs to are
// not excluded from the result.
func (s *recommendationServiceImpl) Recommend(ctx context.Context, userID string, limit int) ([]dto.RankedGroup, error) {
	if limit <= 0 {
		limit = DefaultRecommendLimit
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error getting user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, "User profile not found for recommendations")
	}

	userEmbedding := user.Embedding
	if len(userEmbedding) == 0 {
		s.logger.Debug().
			Str("userID", userID).
			Msg("No stored profile embedding, computing on demand")

		userEmbedding, err = s.embedder.Embed(ctx, userEmbeddingText(user))
		if err != nil {
			s.logger.Error().Err(err).
				Str("userID", userID).
				Msg("Failed to compute profile embedding")
			return nil, err
		}

		if err := s.userStore.UpdateEmbedding(ctx, userID, userEmbedding); err != nil {
			// The ranking can still proceed with the fresh vector;
			// the cost is simply paid again next time.
			s.logger.Warn().Err(err).
				Str("userID", userID).
				Msg("Failed to persist profile embedding")
		}
	}

	return s.rankAgainst(ctx, userEmbedding, limit)
}

// rankAgainst retrieves a bounded candidate set, filters out groups
// without embeddings, ranks by cosine similarity and truncates to the
// top K. This is a pure read over group state; concurrent ranking
// requests never block each other.
func (s *recommendationServiceImpl) rankAgainst(ctx context.Context, queryEmbedding []float64, limit int) ([]dto.RankedGroup, error) {
	groups, err := s.groupStore.GetAll(ctx, 0, maxCandidates)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to retrieve candidate groups")
		return nil, fmt.Errorf("error retrieving candidate groups: %w", err)
	}

	byID := make(map[string]*models.Group, len(groups))
	candidates := make([]vector.Candidate, 0, len(groups))
	for _, group := range groups {
		if !group.HasEmbedding() {
			continue
		}
		byID[group.ID] = group
		candidates = append(candidates, vector.Candidate{ID: group.ID, Embedding: group.Embedding})
	}

	ranked := vector.Rank(queryEmbedding, candidates)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	results := make([]dto.RankedGroup, 0, len(ranked))
	for _, r := range ranked {
		results = append(results, dto.RankedGroup{
			GroupSummary: dto.FromGroup(byID[r.ID]),
			Score:        r.Score,
		})
	}

	return results, nil
}
