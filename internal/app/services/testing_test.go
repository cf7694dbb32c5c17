package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/retrieverhq/retriever-study/internal/app/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// --- in-memory stores ---

type memGroupStore struct {
	mu     sync.Mutex
	groups map[string]*models.Group
	order  []string
}

func newMemGroupStore() *memGroupStore {
	return &memGroupStore{groups: make(map[string]*models.Group)}
}

func copyGroup(g *models.Group) *models.Group {
	if g == nil {
		return nil
	}
	dup := *g
	dup.Tags = append([]string(nil), g.Tags...)
	dup.TimePrefs = append([]string(nil), g.TimePrefs...)
	dup.Members = append([]string(nil), g.Members...)
	dup.Embedding = append([]float64(nil), g.Embedding...)
	return &dup
}

func (s *memGroupStore) Create(_ context.Context, group *models.Group) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	group.MaxMembers = models.ClampMaxMembers(group.MaxMembers)
	if len(group.Members) == 0 {
		group.Members = []string{group.OwnerID}
	}
	group.CreatedAt = time.Now().UTC()
	group.UpdatedAt = group.CreatedAt
	s.groups[group.ID] = copyGroup(group)
	s.order = append(s.order, group.ID)
	return copyGroup(group), nil
}

func (s *memGroupStore) GetByID(_ context.Context, groupID string) (*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyGroup(s.groups[groupID]), nil
}

func (s *memGroupStore) GetAll(_ context.Context, offset uint64, limit int) ([]*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Group
	for i, id := range s.order {
		if uint64(i) < offset {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, copyGroup(s.groups[id]))
	}
	return out, nil
}

func (s *memGroupStore) GetByCourse(_ context.Context, courseCode string) ([]*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Group
	for _, id := range s.order {
		if s.groups[id].CourseCode == courseCode {
			out = append(out, copyGroup(s.groups[id]))
		}
	}
	return out, nil
}

func (s *memGroupStore) GetForMember(_ context.Context, userID string) ([]*models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Group
	for _, id := range s.order {
		if s.groups[id].HasMember(userID) {
			out = append(out, copyGroup(s.groups[id]))
		}
	}
	return out, nil
}

func (s *memGroupStore) Update(_ context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.groups[group.ID]; ok {
		updated := copyGroup(group)
		updated.Members = append([]string(nil), existing.Members...)
		s.groups[group.ID] = updated
	}
	return nil
}

func (s *memGroupStore) UpdateMembers(_ context.Context, groupID string, members []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group, ok := s.groups[groupID]; ok {
		group.Members = append([]string(nil), members...)
	}
	return nil
}

func (s *memGroupStore) UpdateEmbedding(_ context.Context, groupID string, embedding []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if group, ok := s.groups[groupID]; ok {
		group.Embedding = append([]float64(nil), embedding...)
	}
	return nil
}

func (s *memGroupStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.groups)), nil
}

type memUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User

	embeddingUpdates int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*models.User)}
}

func copyUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	dup := *u
	dup.Courses = append([]string(nil), u.Courses...)
	dup.Embedding = append([]float64(nil), u.Embedding...)
	return &dup
}

func (s *memUserStore) add(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	s.users[user.ID] = copyUser(user)
}

func (s *memUserStore) GetByID(_ context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyUser(s.users[userID]), nil
}

func (s *memUserStore) GetByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *memUserStore) UpsertOAuthUser(_ context.Context, googleID, name, email string, pictureURL *string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.GoogleID != nil && *u.GoogleID == googleID {
			u.Name = name
			u.PictureURL = pictureURL
			u.LastLogin = time.Now().UTC()
			return copyUser(u), nil
		}
	}
	user := &models.User{
		ID:        uuid.New().String(),
		GoogleID:  &googleID,
		Name:      name,
		Email:     email,
		Courses:   []string{},
		CreatedAt: time.Now().UTC(),
		LastLogin: time.Now().UTC(),
		IsActive:  true,
	}
	user.PictureURL = pictureURL
	s.users[user.ID] = user
	return copyUser(user), nil
}

func (s *memUserStore) UpdateProfile(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.users[user.ID]; ok {
		updated := copyUser(user)
		updated.Embedding = append([]float64(nil), existing.Embedding...)
		s.users[user.ID] = updated
	}
	return nil
}

func (s *memUserStore) UpdateEmbedding(_ context.Context, userID string, embedding []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.embeddingUpdates++
	if user, ok := s.users[userID]; ok {
		user.Embedding = append([]float64(nil), embedding...)
	}
	return nil
}

type memMessageStore struct {
	mu       sync.Mutex
	messages []*models.Message
}

func newMemMessageStore() *memMessageStore {
	return &memMessageStore{}
}

func (s *memMessageStore) Create(_ context.Context, message *models.Message) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := *message
	s.messages = append(s.messages, &dup)
	out := dup
	return &out, nil
}

func (s *memMessageStore) GetByGroup(_ context.Context, groupID string, limit int) ([]*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Message
	for _, m := range s.messages {
		if m.GroupID == groupID {
			dup := *m
			out = append(out, &dup)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// --- fake AI clients ---

// fakeEmbedder returns canned vectors per input text.
type fakeEmbedder struct {
	mu         sync.Mutex
	vectors    map[string][]float64
	fallbackFn func(text string) []float64
	err        error
	calls      int
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	if f.fallbackFn != nil {
		return f.fallbackFn(text), nil
	}
	return []float64{1, 0, 0}, nil
}

// fakeScorer returns a fixed toxicity score.
type fakeScorer struct {
	score float64
	err   error
	calls int
}

func (f *fakeScorer) Score(_ context.Context, _ string) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return f.score, nil
}

// recordingBroadcaster captures broadcast payloads per group.
type recordingBroadcaster struct {
	mu       sync.Mutex
	payloads map[string][]interface{}
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{payloads: make(map[string][]interface{})}
}

func (b *recordingBroadcaster) BroadcastToGroup(groupID string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.payloads[groupID] = append(b.payloads[groupID], payload)
}

// seedUser inserts a minimal active user and returns its id.
func seedUser(store *memUserStore, name string) string {
	user := &models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    name + "@umbc.edu",
		Courses:  []string{},
		IsActive: true,
	}
	store.add(user)
	return user.ID
}
