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
	"github.com/retrieverhq/retriever-study/internal/pkg/helpers"
)

// GroupService defines the interface for study group operations
type GroupService interface {
	CreateGroup(ctx context.Context, ownerID string, req *dto.CreateGroupRequest) (*dto.GroupSummary, error)
	GetGroupByID(ctx context.Context, groupID string) (*dto.GroupSummary, error)
	GetAllGroups(ctx context.Context, page, pageSize int) (*dto.GroupListResponse, error)
	GetGroupsByCourse(ctx context.Context, courseCode string) ([]dto.GroupSummary, error)
	GetGroupsForUser(ctx context.Context, userID string) ([]dto.GroupSummary, error)
	UpdateGroup(ctx context.Context, groupID, userID string, req *dto.UpdateGroupRequest) (*dto.GroupSummary, error)
}

// groupServiceImpl implements GroupService
type groupServiceImpl struct {
	groupStore GroupStore
	embedder   ai.Embedder
	logger     zerolog.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(groupStore GroupStore, embedder ai.Embedder, logger zerolog.Logger) GroupService {
	return &groupServiceImpl{
		groupStore: groupStore,
		embedder:   embedder,
		logger:     logger,
	}
}

// CreateGroup creates a new study group with the owner enrolled as the
// first member, then computes the group embedding from its descriptive
// text. An embedding failure does not fail creation; the group simply
// stays out of search and recommendations until an embedding exists.
func (s *groupServiceImpl) CreateGroup(ctx context.Context, ownerID string, req *dto.CreateGroupRequest) (*dto.GroupSummary, error) {
	s.logger.Debug().
		Str("ownerID", ownerID).
		Str("courseCode", req.CourseCode).
		Msg("Creating study group")

	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError("group title cannot be empty")
	}
	if strings.TrimSpace(req.CourseCode) == "" {
		return nil, apperrors.NewValidationError("course code cannot be empty")
	}

	group := &models.Group{
		CourseCode:  strings.TrimSpace(req.CourseCode),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Tags:        req.Tags,
		TimePrefs:   req.TimePrefs,
		Location:    req.Location,
		OwnerID:     ownerID,
		Members:     []string{ownerID},
		MaxMembers:  models.ClampMaxMembers(req.MaxMembers),
		Semester:    req.Semester,
	}
	if group.Tags == nil {
		group.Tags = []string{}
	}
	if group.TimePrefs == nil {
		group.TimePrefs = []string{}
	}

	created, err := s.groupStore.Create(ctx, group)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create group")
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	embedding, err := s.embedder.Embed(ctx, groupEmbeddingText(created))
	if err != nil {
		s.logger.Warn().Err(err).
			Str("groupID", created.ID).
			Msg("Failed to compute group embedding, group will be excluded from ranking")
	} else {
		if err := s.groupStore.UpdateEmbedding(ctx, created.ID, embedding); err != nil {
			s.logger.Warn().Err(err).
				Str("groupID", created.ID).
				Msg("Failed to persist group embedding")
		} else {
			created.Embedding = embedding
		}
	}

	summary := dto.FromGroup(created)
	return &summary, nil
}

// GetGroupByID retrieves a group by ID
func (s *groupServiceImpl) GetGroupByID(ctx context.Context, groupID string) (*dto.GroupSummary, error) {
	group, err := s.groupStore.GetByID(ctx, groupID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("groupID", groupID).
			Msg("Failed to get group")
		return nil, fmt.Errorf("error getting group: %w", err)
	}
	if group == nil {
		return nil, apperrors.NewGroupNotFoundError("Study group not found")
	}

	summary := dto.FromGroup(group)
	return &summary, nil
}

// GetAllGroups retrieves groups with pagination
func (s *groupServiceImpl) GetAllGroups(ctx context.Context, page, pageSize int) (*dto.GroupListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	groups, err := s.groupStore.GetAll(ctx, offset, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list groups")
		return nil, fmt.Errorf("error listing groups: %w", err)
	}

	total, err := s.groupStore.Count(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count groups")
		return nil, fmt.Errorf("error counting groups: %w", err)
	}

	return &dto.GroupListResponse{
		Groups:     dto.FromGroups(groups),
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// GetGroupsByCourse retrieves all groups for a course code
func (s *groupServiceImpl) GetGroupsByCourse(ctx context.Context, courseCode string) ([]dto.GroupSummary, error) {
	groups, err := s.groupStore.GetByCourse(ctx, courseCode)
	if err != nil {
		s.logger.Error().Err(err).
			Str("courseCode", courseCode).
			Msg("Failed to list groups by course")
		return nil, fmt.Errorf("error listing groups by course: %w", err)
	}

	return dto.FromGroups(groups), nil
}

// GetGroupsForUser retrieves all groups the user is a member of
func (s *groupServiceImpl) GetGroupsForUser(ctx context.Context, userID string) ([]dto.GroupSummary, error) {
	groups, err := s.groupStore.GetForMember(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("userID", userID).
			Msg("Failed to list groups for user")
		return nil, fmt.Errorf("error listing groups for user: %w", err)
	}

	return dto.FromGroups(groups), nil
}

// UpdateGroup updates a group's descriptive fields. Only the owner may
// update. If title, description or tags changed, the embedding is
// recomputed so ranking never works from stale text.
func (s *groupServiceImpl) UpdateGroup(ctx context.Context, groupID, userID string, req *dto.UpdateGroupRequest) (*dto.GroupSummary, error) {
	s.logger.Debug().
		Str("groupID", groupID).
		Str("userID", userID).
		Msg("Updating study group")

	group, err := s.groupStore.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("error getting group: %w", err)
	}
	if group == nil {
		return nil, apperrors.NewGroupNotFoundError("Study group not found")
	}
	if group.OwnerID != userID {
		return nil, apperrors.NewValidationError("only the group owner can update the group")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.NewValidationError("group title cannot be empty")
	}

	newMax := models.ClampMaxMembers(req.MaxMembers)
	if newMax < group.MemberCount() {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("maxMembers cannot be lower than the current member count (%d)", group.MemberCount()))
	}

	newTitle := strings.TrimSpace(req.Title)
	textChanged := group.Title != newTitle ||
		group.Description != req.Description ||
		!equalStrings(group.Tags, req.Tags)

	group.Title = newTitle
	group.Description = req.Description
	group.Tags = req.Tags
	group.TimePrefs = req.TimePrefs
	group.Location = req.Location
	group.MaxMembers = newMax
	if group.Tags == nil {
		group.Tags = []string{}
	}
	if group.TimePrefs == nil {
		group.TimePrefs = []string{}
	}

	if textChanged {
		embedding, err := s.embedder.Embed(ctx, groupEmbeddingText(group))
		if err != nil {
			s.logger.Warn().Err(err).
				Str("groupID", group.ID).
				Msg("Failed to recompute group embedding on update")
			group.Embedding = nil
		} else {
			group.Embedding = embedding
		}
	}

	if err := s.groupStore.Update(ctx, group); err != nil {
		s.logger.Error().Err(err).
			Str("groupID", group.ID).
			Msg("Failed to update group")
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	summary := dto.FromGroup(group)
	return &summary, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
