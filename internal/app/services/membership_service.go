package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/retrieverhq/retriever-study/internal/app/models/dto"
	"github.com/retrieverhq/retriever-study/internal/pkg/apperrors"
)

// MembershipService is the only path through which a group's member
// set may be mutated after creation. It owns the capacity invariant.
type MembershipService interface {
	JoinGroup(ctx context.Context, groupID, userID string) (*dto.GroupSummary, error)
	LeaveGroup(ctx context.Context, groupID, userID string) (*dto.GroupSummary, error)
}

// membershipServiceImpl implements MembershipService
type membershipServiceImpl struct {
	groupStore GroupStore
	userStore  UserStore
	locks      groupLocks
	logger     zerolog.Logger
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(groupStore GroupStore, userStore UserStore, logger zerolog.Logger) MembershipService {
	return &membershipServiceImpl{
		groupStore: groupStore,
		userStore:  userStore,
		logger:     logger,
	}
}

// groupLocks provides one mutex per group id. Locking is per group, not
// global: joins against unrelated groups never contend. Mutexes are
// retained for the life of the process, bounded by the number of
// groups touched.
type groupLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *groupLocks) forGroup(groupID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := l.locks[groupID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[groupID] = lock
	}
	return lock
}

// JoinGroup adds a user to a group. Joining a group the user already
// belongs to is an idempotent no-op success. Joining a full group fails
// with ErrGroupFull and leaves the member set untouched. The
// read-check-write sequence runs under the group's lock so two
// concurrent joins cannot both pass the capacity check.
func (s *membershipServiceImpl) JoinGroup(ctx context.Context, groupID, userID string) (*dto.GroupSummary, error) {
	s.logger.Debug().
		Str("groupID", groupID).
		Str("userID", userID).
		Msg("User joining study group")

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error checking user: %w", err)
	}
	if user == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrUserNotFound, "User not found")
	}

	lock := s.locks.forGroup(groupID)
	lock.Lock()
	defer lock.Unlock()

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

	if group.HasMember(userID) {
		summary := dto.FromGroup(group)
		return &summary, nil
	}

	if group.IsFull() {
		s.logger.Info().
			Str("groupID", groupID).
			Str("userID", userID).
			Int("maxMembers", group.MaxMembers).
			Msg("Join rejected, group at capacity")
		return nil, apperrors.NewGroupFullError("Study group is at full capacity")
	}

	group.Members = append(group.Members, userID)
	if err := s.groupStore.UpdateMembers(ctx, groupID, group.Members); err != nil {
		s.logger.Error().Err(err).
			Str("groupID", groupID).
			Msg("Failed to persist member list")
		return nil, fmt.Errorf("failed to update members: %w", err)
	}

	summary := dto.FromGroup(group)
	return &summary, nil
}

// LeaveGroup removes a user from a group. Leaving a group the user is
// not a member of is an idempotent no-op success. The owner may leave;
// the owner id field is not reassigned (the group keeps its original
// owner for attribution even after they depart).
func (s *membershipServiceImpl) LeaveGroup(ctx context.Context, groupID, userID string) (*dto.GroupSummary, error) {
	s.logger.Debug().
		Str("groupID", groupID).
		Str("userID", userID).
		Msg("User leaving study group")

	lock := s.locks.forGroup(groupID)
	lock.Lock()
	defer lock.Unlock()

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

	if !group.HasMember(userID) {
		summary := dto.FromGroup(group)
		return &summary, nil
	}

	members := make([]string, 0, len(group.Members)-1)
	for _, id := range group.Members {
		if id != userID {
			members = append(members, id)
		}
	}
	group.Members = members

	if err := s.groupStore.UpdateMembers(ctx, groupID, group.Members); err != nil {
		s.logger.Error().Err(err).
			Str("groupID", groupID).
			Msg("Failed to persist member list")
		return nil, fmt.Errorf("failed to update members: %w", err)
	}

	summary := dto.FromGroup(group)
	return &summary, nil
}
