package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gatag/api/gaq"
	"gatag/api/models"
	"gatag/api/store"
)

type fakeUsers struct {
	mu     sync.Mutex
	byMail map[string]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byMail: map[string]*models.User{}}
}

func (f *fakeUsers) CreateUser(_ context.Context, email string, hashed []byte) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byMail[email]; ok {
		return nil, fmt.Errorf("email '%s': %w", email, store.ErrUserExists)
	}
	u := &models.User{ID: len(f.byMail) + 1, Email: email, HashedPassword: hashed}
	f.byMail[email] = u
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byMail[email]
	if !ok {
		return nil, fmt.Errorf("email '%s': %w", email, store.ErrUserNotFound)
	}
	return u, nil
}

type fakeProfiles struct {
	mu       sync.Mutex
	nextID   int
	profiles map[int]*models.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: map[int]*models.Profile{}}
}

func (f *fakeProfiles) CreateProfile(_ context.Context, userID int, accountID, name string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p := &models.Profile{ID: f.nextID, UserID: userID, AccountID: accountID, Name: name, CreatedAt: time.Now()}
	f.profiles[p.ID] = p
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) ListProfiles(_ context.Context, userID int) ([]models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Profile{}
	for id := 1; id <= f.nextID; id++ {
		if p, ok := f.profiles[id]; ok && p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProfiles) GetProfile(_ context.Context, userID, id int) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok || p.UserID != userID {
		return nil, fmt.Errorf("profile %d: %w", id, store.ErrProfileNotFound)
	}
	cp := *p
	cp.CustomVars = append([]models.CustomVar(nil), p.CustomVars...)
	return &cp, nil
}

func (f *fakeProfiles) AddCustomVar(_ context.Context, profileID int, cv gaq.CustomVariable) (*models.CustomVar, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[profileID]
	if !ok {
		return nil, fmt.Errorf("profile %d: %w", profileID, store.ErrProfileNotFound)
	}
	row := models.CustomVar{
		ID:        len(p.CustomVars) + 1,
		ProfileID: profileID,
		Index:     cv.Index,
		Name:      cv.Name,
		Value:     cv.Value,
		Scope:     int(cv.Scope),
	}
	p.CustomVars = append(p.CustomVars, row)
	return &row, nil
}

type fakeRenders struct {
	mu     sync.Mutex
	err    error
	events []models.RenderEvent
}

func (f *fakeRenders) InsertRenderEvents(_ context.Context, events []models.RenderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, events...)
	return nil
}

func (f *fakeRenders) recorded() []models.RenderEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.RenderEvent(nil), f.events...)
}

type fakeStats struct {
	interval string
	kind     string
	limit    uint64
	err      error
}

func (f *fakeStats) GetRenderCountsOverTime(_ context.Context, interval string, start, end time.Time, kind string) ([]models.RenderCountByTime, error) {
	f.interval, f.kind = interval, kind
	if f.err != nil {
		return nil, f.err
	}
	return []models.RenderCountByTime{{Time: start, Count: 3}}, nil
}

func (f *fakeStats) GetTopAccounts(_ context.Context, start, end time.Time, limit uint64) ([]models.TopAccountResult, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	return []models.TopAccountResult{{AccountID: "UA-123", Count: 9}}, nil
}
