package services

import (
	"context"
	"errors"
	"testing"

	"github.com/retrieverhq/retriever-study/internal/app/models/dto"
	"github.com/retrieverhq/retriever-study/internal/pkg/apperrors"
)

func newUserFixture() (UserService, *memUserStore, *fakeEmbedder) {
	userStore := newMemUserStore()
	embedder := &fakeEmbedder{}
	svc := NewUserService(userStore, embedder, testLogger())
	return svc, userStore, embedder
}

func TestGetProfileNotFound(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.GetProfile(context.Background(), "no-such-user")
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateProfileAppliesChanges(t *testing.T) {
	svc, userStore, _ := newUserFixture()
	userID := seedUser(userStore, "student")

	updated, err := svc.UpdateProfile(context.Background(), userID, &dto.UpdateProfileRequest{
		Name:    "Renamed Student",
		Bio:     "Senior CS major, evenings only",
		Courses: []string{"CMSC341", "CMSC471"},
		Prefs:   map[string][]string{"days": {"mon", "wed"}},
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	if updated.Name != "Renamed Student" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.Bio != "Senior CS major, evenings only" {
		t.Errorf("bio = %q", updated.Bio)
	}
	if len(updated.Courses) != 2 {
		t.Errorf("courses = %v", updated.Courses)
	}

	stored, _ := userStore.GetByID(context.Background(), userID)
	if stored.Bio != updated.Bio {
		t.Error("profile changes were not persisted")
	}
}

func TestUpdateProfileKeepsNameWhenOmitted(t *testing.T) {
	svc, userStore, _ := newUserFixture()
	userID := seedUser(userStore, "student")

	if _, err := svc.UpdateProfile(context.Background(), userID, &dto.UpdateProfileRequest{
		Bio: "just a bio change",
	}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	stored, _ := userStore.GetByID(context.Background(), userID)
	if stored.Name != "student" {
		t.Errorf("name = %q after update without a name, want student", stored.Name)
	}
}

func TestUpdateProfileRefreshesEmbeddingOnTextChange(t *testing.T) {
	svc, userStore, embedder := newUserFixture()
	userID := seedUser(userStore, "student")

	if _, err := svc.UpdateProfile(context.Background(), userID, &dto.UpdateProfileRequest{
		Bio:     "Into databases",
		Courses: []string{"CMSC461"},
	}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if embedder.calls != 1 {
		t.Errorf("embedder called %d times after text change, want 1", embedder.calls)
	}
	if userStore.embeddingUpdates != 1 {
		t.Errorf("embedding persisted %d times, want 1", userStore.embeddingUpdates)
	}

	stored, _ := userStore.GetByID(context.Background(), userID)
	if len(stored.Embedding) == 0 {
		t.Error("profile embedding missing after text change")
	}
}

func TestUpdateProfileSkipsEmbeddingWhenTextUnchanged(t *testing.T) {
	svc, userStore, embedder := newUserFixture()
	userID := seedUser(userStore, "student")

	if _, err := svc.UpdateProfile(context.Background(), userID, &dto.UpdateProfileRequest{
		Bio:     "Into databases",
		Courses: []string{"CMSC461"},
	}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	// Same bio and courses again, only the name changes.
	if _, err := svc.UpdateProfile(context.Background(), userID, &dto.UpdateProfileRequest{
		Name:    "New Display Name",
		Bio:     "Into databases",
		Courses: []string{"CMSC461"},
	}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	if embedder.calls != 1 {
		t.Errorf("embedder called %d times, want 1 (no recompute for name-only change)", embedder.calls)
	}
	if userStore.embeddingUpdates != 1 {
		t.Errorf("embedding persisted %d times, want 1", userStore.embeddingUpdates)
	}
}

func TestUpdateProfileEmbedFailureClearsStaleVector(t *testing.T) {
	userStore := newMemUserStore()
	embedder := &fakeEmbedder{}
	svc := NewUserService(userStore, embedder, testLogger())
	userID := seedUser(userStore, "student")

	if err := userStore.UpdateEmbedding(context.Background(), userID, []float64{1, 0, 0}); err != nil {
		t.Fatalf("failed to seed embedding: %v", err)
	}

	embedder.err = apperrors.ErrProviderUnavailable
	updated, err := svc.UpdateProfile(context.Background(), userID, &dto.UpdateProfileRequest{
		Bio: "text changed during a provider outage",
	})
	if err != nil {
		t.Fatalf("UpdateProfile returned error during provider outage: %v", err)
	}
	if updated.Bio != "text changed during a provider outage" {
		t.Errorf("bio = %q, profile change should still apply", updated.Bio)
	}

	stored, _ := userStore.GetByID(context.Background(), userID)
	if len(stored.Embedding) != 0 {
		t.Error("stale embedding kept after text changed without a recompute")
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	svc, _, _ := newUserFixture()

	_, err := svc.UpdateProfile(context.Background(), "no-such-user", &dto.UpdateProfileRequest{Bio: "hi"})
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}
