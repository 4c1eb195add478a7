package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookreview/internal/apperr"
	"bookreview/internal/platform/crypto"
	"bookreview/internal/user"
)

const (
	msgNotLoggedIn    = "You are not logged in. Please log in to get access"
	msgInvalidToken   = "Invalid or expired token"
	msgBadCredentials = "Incorrect email or password"
	msgEmailInUse     = "Email already in use"
	msgUserGone       = "The user belonging to this token no longer exists"
)

type SignupInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is what signup and login hand back to the client.
type Session struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

type Service struct {
	users  UserStore
	tokens *crypto.TokenManager
}

func NewService(users UserStore, tokens *crypto.TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Authenticate resolves the user ID carried by a "Bearer <token>" header.
func (s *Service) Authenticate(header string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", apperr.Unauthenticated(msgNotLoggedIn)
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return "", apperr.Wrap(apperr.KindUnauthenticated, msgInvalidToken, err)
	}
	return claims.UserID, nil
}

// Signup creates an account and logs it in.
func (s *Service) Signup(ctx context.Context, in SignupInput) (Session, error) {
	hash, err := crypto.HashPassword(in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Register(ctx, in.Name, in.Email, hash)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return Session{}, apperr.Conflict(msgEmailInUse)
		}
		return Session{}, fmt.Errorf("register user: %w", err)
	}
	return s.session(u)
}

// Login checks the credentials and issues a token.
func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Session{}, apperr.Unauthenticated(msgBadCredentials)
		}
		return Session{}, fmt.Errorf("find user: %w", err)
	}
	if !crypto.VerifyPassword(u.Password, in.Password) {
		return Session{}, apperr.Unauthenticated(msgBadCredentials)
	}
	return s.session(u)
}

// Me returns the account of the authenticated caller.
func (s *Service) Me(ctx context.Context, userID string) (user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, apperr.Unauthenticated(msgUserGone)
		}
		return user.User{}, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *Service) session(u user.User) (Session, error) {
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	return Session{User: u, Token: token}, nil
}
