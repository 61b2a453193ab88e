package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/serroba/shortify/internal/auth"
	"github.com/serroba/shortify/internal/shortener"
)

// MemoryDirectory is an in-memory implementation of shortener.Directory.
type MemoryDirectory struct {
	mu   sync.RWMutex
	urls map[string]*shortener.URL // slug -> url
}

// NewMemoryDirectory creates a new in-memory URL directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		urls: make(map[string]*shortener.URL),
	}
}

func (m *MemoryDirectory) Save(_ context.Context, url *shortener.URL) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.urls[url.Slug]; exists {
		return shortener.ErrSlugTaken
	}

	clone := *url
	m.urls[url.Slug] = &clone

	return nil
}

func (m *MemoryDirectory) FindBySlug(_ context.Context, slug string) (*shortener.URL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	url, ok := m.urls[slug]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	clone := *url

	return &clone, nil
}

func (m *MemoryDirectory) FindByCreator(_ context.Context, creatorID uuid.UUID) ([]*shortener.URL, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var urls []*shortener.URL

	for _, url := range m.urls {
		if url.OwnedBy(creatorID) {
			clone := *url
			urls = append(urls, &clone)
		}
	}

	sort.Slice(urls, func(i, j int) bool {
		return urls[i].CreatedAt.After(urls[j].CreatedAt)
	})

	return urls, nil
}

func (m *MemoryDirectory) Update(_ context.Context, url *shortener.URL) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.urls[url.Slug]; !ok {
		return shortener.ErrNotFound
	}

	clone := *url
	m.urls[url.Slug] = &clone

	return nil
}

// MemoryUsers is an in-memory implementation of auth.Users.
type MemoryUsers struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*auth.User
	byEmail map[string]*auth.User
}

// NewMemoryUsers creates a new in-memory user store.
func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{
		byID:    make(map[uuid.UUID]*auth.User),
		byEmail: make(map[string]*auth.User),
	}
}

func (m *MemoryUsers) Create(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[user.Email]; exists {
		return auth.ErrEmailTaken
	}

	clone := *user
	m.byID[user.ID] = &clone
	m.byEmail[user.Email] = &clone

	return nil
}

func (m *MemoryUsers) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byEmail[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}

	clone := *user

	return &clone, nil
}

func (m *MemoryUsers) FindByID(_ context.Context, id uuid.UUID) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.byID[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}

	clone := *user

	return &clone, nil
}

func (m *MemoryUsers) FindByVerificationToken(_ context.Context, token string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.byID {
		if user.VerificationToken != nil && *user.VerificationToken == token {
			clone := *user

			return &clone, nil
		}
	}

	return nil, auth.ErrUserNotFound
}

func (m *MemoryUsers) FindByResetToken(_ context.Context, token string) (*auth.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.byID {
		if user.ResetToken != nil && *user.ResetToken == token {
			clone := *user

			return &clone, nil
		}
	}

	return nil, auth.ErrUserNotFound
}

func (m *MemoryUsers) Update(_ context.Context, user *auth.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[user.ID]
	if !ok {
		return auth.ErrUserNotFound
	}

	clone := *user
	m.byID[user.ID] = &clone
	// Email is immutable, so the byEmail entry keeps its key.
	m.byEmail[existing.Email] = &clone

	return nil
}

// Compile-time checks.
var (
	_ shortener.Directory = (*MemoryDirectory)(nil)
	_ auth.Users          = (*MemoryUsers)(nil)
)
