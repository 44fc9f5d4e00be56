package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"easyshop/internal/auth"
	"easyshop/internal/domain"
	"easyshop/internal/repos"
)

var (
	ErrBadCreds         = errors.New("invalid username or password")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

type AuthService struct {
	Users  *repos.UserRepo
	Tokens *auth.Manager
}

func NewAuthService(users *repos.UserRepo, tokens *auth.Manager) *AuthService {
	return &AuthService{Users: users, Tokens: tokens}
}

// Login checks the password and issues a token for the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	u, err := s.Users.ByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil, ErrBadCreds
	}
	if err != nil {
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return "", nil, ErrBadCreds
	}
	tok, err := s.Tokens.Generate(*u)
	if err != nil {
		return "", nil, err
	}
	return tok, u, nil
}

// Register creates a ROLE_USER account.
func (s *AuthService) Register(ctx context.Context, username, password, confirm string) (*domain.User, error) {
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	taken, err := s.Users.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.Users.Create(ctx, domain.User{Username: username, Hash: string(h), Role: domain.RoleUser})
}

// Principal resolves a bearer token to its caller.
func (s *AuthService) Principal(token string) (domain.Principal, error) {
	return s.Tokens.Parse(token)
}
