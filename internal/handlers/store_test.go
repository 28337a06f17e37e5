package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"FOODLENS_BACK-END/internal/models"
	"FOODLENS_BACK-END/internal/repository"
)

// memoryUserStore mirrors the users table, including UNIQUE(email)
type memoryUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	failAll error
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{byEmail: map[string]*models.User{}}
}

func (s *memoryUserStore) Create(_ context.Context, name, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	if _, ok := s.byEmail[email]; ok {
		return nil, repository.ErrDuplicateEmail
	}
	u := &models.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: passwordHash}
	s.byEmail[email] = u
	out := *u
	return &out, nil
}

func (s *memoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll != nil {
		return nil, s.failAll
	}
	u, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (s *memoryUserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byEmail {
		if u.ID == id {
			out := *u
			out.PasswordHash = ""
			return &out, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

var errStoreDown = errors.New("connection refused")
