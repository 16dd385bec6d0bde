package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	ErrNotFound           = errors.New("auth: user not found")
	ErrConflict           = errors.New("auth: user already exists")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
)

const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User is the stored account record. Its security attributes (role,
// data scope, department, linked employee, sensitivity flag) are the
// single source for building the per-request access context.
type User struct {
	ID               string
	Email            string
	PasswordHash     string
	Role             string
	DataScope        string
	DepartmentID     string
	EmployeeID       string
	CanViewSensitive bool
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UserStore describes user persistence required by authentication.
type UserStore interface {
	Create(ctx context.Context, u User) error
	Find(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

// InMemoryUsers is a UserStore kept in process memory, used by tests and
// local development.
type InMemoryUsers struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
}

var _ UserStore = (*InMemoryUsers)(nil)

// NewInMemoryUsers creates an empty in-memory user store.
func NewInMemoryUsers() *InMemoryUsers {
	return &InMemoryUsers{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
	}
}

func (s *InMemoryUsers) Create(ctx context.Context, u User) error {
	email := strings.TrimSpace(strings.ToLower(u.Email))
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byID[u.ID]; exists {
		return ErrConflict
	}
	if _, exists := s.byEmail[email]; exists {
		return ErrConflict
	}
	u.Email = email
	s.byID[u.ID] = u
	s.byEmail[email] = u.ID
	return nil
}

func (s *InMemoryUsers) Find(ctx context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *InMemoryUsers) FindByEmail(ctx context.Context, email string) (User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return s.byID[id], nil
}
