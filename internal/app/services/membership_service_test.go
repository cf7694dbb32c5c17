package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/retrieverhq/retriever-study/internal/app/models"
	"github.com/retrieverhq/retriever-study/internal/pkg/apperrors"
)

func newMembershipFixture(t *testing.T, maxMembers int) (MembershipService, *memGroupStore, *memUserStore, string, string) {
	t.Helper()

	groupStore := newMemGroupStore()
	userStore := newMemUserStore()

	ownerID := seedUser(userStore, "owner")
	group, err := groupStore.Create(context.Background(), &models.Group{
		CourseCode: "CMSC341",
		Title:      "Data Structures Study Crew",
		OwnerID:    ownerID,
		MaxMembers: maxMembers,
	})
	if err != nil {
		t.Fatalf("failed to create group: %v", err)
	}

	svc := NewMembershipService(groupStore, userStore, testLogger())
	return svc, groupStore, userStore, group.ID, ownerID
}

func TestJoinGroupAddsMember(t *testing.T) {
	svc, _, userStore, groupID, ownerID := newMembershipFixture(t, 4)
	joiner := seedUser(userStore, "joiner")

	summary, err := svc.JoinGroup(context.Background(), groupID, joiner)
	if err != nil {
		t.Fatalf("JoinGroup returned error: %v", err)
	}

	if summary.MemberCount != 2 {
		t.Errorf("member count = %d, want 2", summary.MemberCount)
	}
	if summary.Members[0] != ownerID {
		t.Errorf("owner is not the first member: %v", summary.Members)
	}
}

func TestJoinGroupIdempotent(t *testing.T) {
	svc, groupStore, userStore, groupID, _ := newMembershipFixture(t, 4)
	joiner := seedUser(userStore, "joiner")

	if _, err := svc.JoinGroup(context.Background(), groupID, joiner); err != nil {
		t.Fatalf("first join failed: %v", err)
	}
	summary, err := svc.JoinGroup(context.Background(), groupID, joiner)
	if err != nil {
		t.Fatalf("repeat join failed: %v", err)
	}
	if summary.MemberCount != 2 {
		t.Errorf("member count after repeat join = %d, want 2", summary.MemberCount)
	}

	group, _ := groupStore.GetByID(context.Background(), groupID)
	seen := map[string]int{}
	for _, id := range group.Members {
		seen[id]++
	}
	if seen[joiner] != 1 {
		t.Errorf("joiner appears %d times in member list", seen[joiner])
	}
}

func TestJoinGroupFullLeavesStateUntouched(t *testing.T) {
	svc, groupStore, userStore, groupID, _ := newMembershipFixture(t, 2)
	second := seedUser(userStore, "second")
	third := seedUser(userStore, "third")

	if _, err := svc.JoinGroup(context.Background(), groupID, second); err != nil {
		t.Fatalf("join to capacity failed: %v", err)
	}

	_, err := svc.JoinGroup(context.Background(), groupID, third)
	if !errors.Is(err, apperrors.ErrGroupFull) {
		t.Fatalf("error = %v, want ErrGroupFull", err)
	}

	group, _ := groupStore.GetByID(context.Background(), groupID)
	if group.MemberCount() != 2 {
		t.Errorf("member count after rejected join = %d, want 2", group.MemberCount())
	}
	if group.HasMember(third) {
		t.Error("rejected joiner ended up in member list")
	}
}

func TestJoinGroupUnknownUser(t *testing.T) {
	svc, _, _, groupID, _ := newMembershipFixture(t, 4)

	_, err := svc.JoinGroup(context.Background(), groupID, "no-such-user")
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}

func TestJoinGroupUnknownGroup(t *testing.T) {
	svc, _, userStore, _, _ := newMembershipFixture(t, 4)
	joiner := seedUser(userStore, "joiner")

	_, err := svc.JoinGroup(context.Background(), "no-such-group", joiner)
	if !errors.Is(err, apperrors.ErrGroupNotFound) {
		t.Errorf("error = %v, want ErrGroupNotFound", err)
	}
}

func TestLeaveGroupRemovesMember(t *testing.T) {
	svc, groupStore, userStore, groupID, _ := newMembershipFixture(t, 4)
	joiner := seedUser(userStore, "joiner")

	if _, err := svc.JoinGroup(context.Background(), groupID, joiner); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	summary, err := svc.LeaveGroup(context.Background(), groupID, joiner)
	if err != nil {
		t.Fatalf("LeaveGroup returned error: %v", err)
	}
	if summary.MemberCount != 1 {
		t.Errorf("member count after leave = %d, want 1", summary.MemberCount)
	}

	group, _ := groupStore.GetByID(context.Background(), groupID)
	if group.HasMember(joiner) {
		t.Error("member still present after leave")
	}
}

func TestLeaveGroupNotMemberIsNoOp(t *testing.T) {
	svc, _, userStore, groupID, _ := newMembershipFixture(t, 4)
	stranger := seedUser(userStore, "stranger")

	summary, err := svc.LeaveGroup(context.Background(), groupID, stranger)
	if err != nil {
		t.Fatalf("LeaveGroup returned error: %v", err)
	}
	if summary.MemberCount != 1 {
		t.Errorf("member count = %d, want 1", summary.MemberCount)
	}
}

func TestLeaveGroupOwnerKeepsAttribution(t *testing.T) {
	svc, groupStore, userStore, groupID, ownerID := newMembershipFixture(t, 4)
	joiner := seedUser(userStore, "joiner")

	if _, err := svc.JoinGroup(context.Background(), groupID, joiner); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if _, err := svc.LeaveGroup(context.Background(), groupID, ownerID); err != nil {
		t.Fatalf("owner leave failed: %v", err)
	}

	group, _ := groupStore.GetByID(context.Background(), groupID)
	if group.HasMember(ownerID) {
		t.Error("owner still in member list after leaving")
	}
	if group.OwnerID != ownerID {
		t.Errorf("owner id changed to %q after owner left", group.OwnerID)
	}
}

func TestConcurrentJoinsNeverExceedCapacity(t *testing.T) {
	const maxMembers = 3
	const contenders = 20

	svc, groupStore, userStore, groupID, _ := newMembershipFixture(t, maxMembers)

	userIDs := make([]string, contenders)
	for i := range userIDs {
		userIDs[i] = seedUser(userStore, fmt.Sprintf("user%d", i))
	}

	var wg sync.WaitGroup
	errs := make([]error, contenders)
	for i, userID := range userIDs {
		wg.Add(1)
		go func(i int, userID string) {
			defer wg.Done()
			_, errs[i] = svc.JoinGroup(context.Background(), groupID, userID)
		}(i, userID)
	}
	wg.Wait()

	group, _ := groupStore.GetByID(context.Background(), groupID)
	if group.MemberCount() != maxMembers {
		t.Errorf("member count = %d, want exactly %d", group.MemberCount(), maxMembers)
	}

	// Owner holds one slot; exactly maxMembers-1 joins may succeed.
	succeeded := 0
	rejected := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, apperrors.ErrGroupFull):
			rejected++
		default:
			t.Errorf("unexpected join error: %v", err)
		}
	}
	if succeeded != maxMembers-1 {
		t.Errorf("%d joins succeeded, want %d", succeeded, maxMembers-1)
	}
	if succeeded+rejected != contenders {
		t.Errorf("accounted for %d outcomes, want %d", succeeded+rejected, contenders)
	}

	// No duplicates in the final member list.
	seen := map[string]bool{}
	for _, id := range group.Members {
		if seen[id] {
			t.Errorf("duplicate member %q", id)
		}
		seen[id] = true
	}
}

func TestConcurrentJoinAndLeaveKeepsListConsistent(t *testing.T) {
	svc, groupStore, userStore, groupID, _ := newMembershipFixture(t, 50)

	const workers = 10
	userIDs := make([]string, workers)
	for i := range userIDs {
		userIDs[i] = seedUser(userStore, fmt.Sprintf("churn%d", i))
	}

	var wg sync.WaitGroup
	for _, userID := range userIDs {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				if _, err := svc.JoinGroup(context.Background(), groupID, userID); err != nil {
					t.Errorf("join failed: %v", err)
					return
				}
				if _, err := svc.LeaveGroup(context.Background(), groupID, userID); err != nil {
					t.Errorf("leave failed: %v", err)
					return
				}
			}
		}(userID)
	}
	wg.Wait()

	group, _ := groupStore.GetByID(context.Background(), groupID)
	if group.MemberCount() != 1 {
		t.Errorf("member count after churn = %d, want 1 (owner)", group.MemberCount())
	}
}
