package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"project-tracker/internal/apperror"
	"project-tracker/internal/models"
	"project-tracker/internal/security"
)

const usernameAttempts = 5

type AuthResult struct {
	Token     string           `json:"token"`
	Principal models.Principal `json:"user"`
}

// AuthService turns credentials or a federated identity into a principal and
// a bearer token.
type AuthService struct {
	users  UserStore
	roles  RoleStore
	hasher security.Hasher
	tokens security.TokenCodec
	audit  Auditor

	// compared against when the identity is unknown
	dummyHash string
}

func NewAuthService(users UserStore, roles RoleStore, hasher security.Hasher, tokens security.TokenCodec, auditor Auditor) (*AuthService, error) {
	dummy, err := hasher.Encode(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AuthService{
		users:     users,
		roles:     roles,
		hasher:    hasher,
		tokens:    tokens,
		audit:     auditor,
		dummyHash: dummy,
	}, nil
}

// Login looks the identifier up as a username first and as an email second.
// Every failure is the same InvalidCredentials error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	user, err := s.users.FindByUsername(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		if user, err = s.users.FindByEmail(ctx, req.Identifier); err != nil {
			return nil, err
		}
	}

	if user == nil {
		s.hasher.Matches(req.Password, s.dummyHash)
		return nil, apperror.InvalidCredentials()
	}
	if !s.hasher.Matches(req.Password, user.PasswordHash) {
		return nil, apperror.InvalidCredentials()
	}
	return s.issue(user)
}

// Register creates a CONTRACTOR account whose username is derived from the
// email local part.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	email := strings.TrimSpace(req.Email)
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.DuplicateEmail()
	}

	hash, err := s.hasher.Encode(req.Password)
	if err != nil {
		return nil, apperror.Internal("could not hash password", err)
	}
	user, err := s.provision(ctx, email, req.FullName, hash)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// FederatedLogin signs in the account matching the provider's email, creating
// it on first sight.
func (s *AuthService) FederatedLogin(ctx context.Context, id security.Identity) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, id.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return s.issue(user)
	}

	// nobody knows this password; the account can only sign in through the provider
	hash, err := s.hasher.Encode(uuid.NewString())
	if err != nil {
		return nil, apperror.Internal("could not hash password", err)
	}
	user, err = s.provision(ctx, id.Email, id.FullName, hash)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Authenticate resolves a bearer token to its principal.
func (s *AuthService) Authenticate(_ context.Context, token string) (models.Principal, error) {
	return s.tokens.Verify(token)
}

func (s *AuthService) provision(ctx context.Context, email, fullName, hash string) (*models.User, error) {
	role, err := s.roles.FindByRoleName(ctx, models.DefaultRole)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.Internal("default role is not seeded", nil)
	}

	username, err := s.deriveUsername(ctx, email)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     fullName,
		RoleID:       role.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	user.Role = *role

	s.audit.Created(ctx, models.EntityUser, user.ID, user.Username, user)
	return user, nil
}

func (s *AuthService) deriveUsername(ctx context.Context, email string) (string, error) {
	local, _, _ := strings.Cut(email, "@")
	for i := 0; i < usernameAttempts; i++ {
		candidate := local + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
		taken, err := s.users.ExistsByUsername(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", apperror.DuplicateUsername()
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	p := user.Principal()
	if !p.Role.Valid() {
		return nil, apperror.Internal(fmt.Sprintf("user %d has no valid role", user.ID), nil)
	}
	token, err := s.tokens.Issue(p)
	if err != nil {
		return nil, apperror.Internal("could not issue token", err)
	}
	return &AuthResult{Token: token, Principal: p}, nil
}
