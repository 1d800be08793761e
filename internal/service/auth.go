package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/hash"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/tokens"
	"github.com/Skotchmaster/storefront/internal/transport"
)

const minPasswordLen = 6

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *tokens.Service
	Events mykafka.Publisher
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*transport.AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.RoleCustomer
	}

	switch {
	case username == "":
		return nil, fmt.Errorf("username is required: %w", ErrValidation)
	case email == "":
		return nil, fmt.Errorf("email is required: %w", ErrValidation)
	case len(req.Password) < minPasswordLen:
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, ErrValidation)
	case !models.ValidRole(role):
		return nil, fmt.Errorf("unknown role %q: %w", role, ErrValidation)
	case role == models.RoleAdmin:
		return nil, fmt.Errorf("admin role cannot be self-assigned: %w", ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("email is malformed: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Address:      req.Address,
		StoreName:    req.StoreName,
		Bio:          req.Bio,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fmt.Errorf("username or email already taken: %w", ErrAlreadyExists)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicUser, user.ID.String(), "user_registered", map[string]any{
		"userId": user.ID, "username": user.Username, "role": user.Role,
	})
	l.Info("register_success", "user_id", user.ID)
	return result, nil
}

func (s *AuthService) Login(ctx context.Context, login, password string) (*transport.AuthResult, error) {
	login = strings.TrimSpace(login)
	l := logging.FromContext(ctx).With("svc", "auth.login", "login", login)

	if login == "" || password == "" {
		return nil, fmt.Errorf("login and password are required: %w", ErrValidation)
	}

	user, err := s.Repo.FindUserByLogin(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "reason", "invalid credentials")
		return nil, fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicUser, user.ID.String(), "user_logged_in", map[string]any{"userId": user.ID})
	return result, nil
}

// Verify resolves a raw token to its user. Token errors pass through unchanged.
func (s *AuthService) Verify(ctx context.Context, raw string) (*models.User, error) {
	userID, err := s.Tokens.Verify(raw)
	if err != nil {
		return nil, err
	}
	return s.Profile(ctx, userID)
}

func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found: id %s: %w", userID, ErrNotFound)
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req transport.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Repo.UpdateProfile(ctx, userID, repo.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
		StoreName: req.StoreName,
		Bio:       req.Bio,
	})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found: id %s: %w", userID, ErrNotFound)
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*transport.AuthResult, error) {
	token, exp, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &transport.AuthResult{Token: token, ExpiresAt: exp, User: user}, nil
}
