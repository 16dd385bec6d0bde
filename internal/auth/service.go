package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"kadrio.org/internal/access"
)

const defaultTokenTTL = 15 * time.Minute

// Service issues tokens on login and resolves bearer tokens into access
// contexts.
type Service struct {
	users    UserStore
	tokenTTL time.Duration
}

// ServiceOption configures Service behavior.
type ServiceOption func(*Service)

// WithTokenTTL overrides the access token lifetime.
func WithTokenTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// NewService constructs a Service over the given user store.
func NewService(users UserStore, opts ...ServiceOption) (*Service, error) {
	if users == nil {
		return nil, errors.New("auth: user store is required")
	}
	s := &Service{users: users, tokenTTL: defaultTokenTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TokenTTL returns the configured access token lifetime.
func (s *Service) TokenTTL() time.Duration { return s.tokenTTL }

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}
	if u.Status != UserStatusActive {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err := VerifyPassword(u.PasswordHash, password); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	token, err := GenerateToken(u.ID, s.tokenTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, time.Now().UTC().Add(s.tokenTTL), nil
}

// Authenticate resolves a bearer token into the caller's user id and a
// freshly built access context. Attributes come from the stored user
// record, not the token, so attribute changes apply on the next request.
func (s *Service) Authenticate(ctx context.Context, token string) (string, access.Context, error) {
	claims, err := ParseAndValidate(token)
	if err != nil {
		return "", access.Context{}, err
	}
	u, err := s.users.Find(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", access.Context{}, ErrInvalidToken
		}
		return "", access.Context{}, err
	}
	if u.Status != UserStatusActive {
		return "", access.Context{}, ErrInvalidToken
	}
	ac := access.BuildContext(access.UserAttributes{
		Role:             u.Role,
		DataScope:        u.DataScope,
		DepartmentID:     u.DepartmentID,
		EmployeeID:       u.EmployeeID,
		CanViewSensitive: u.CanViewSensitive,
	})
	return u.ID, ac, nil
}
