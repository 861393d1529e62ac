package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"crmapi/internal/auth"
	"crmapi/internal/model"
	"crmapi/internal/repository"
)

// bcrypt only hashes the first 72 bytes of a password.
const maxPasswordBytes = 72

// RegisterInput is the payload of a sign-up.
type RegisterInput struct {
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Username  string `json:"username" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

// LoginInput is the payload of a sign-in.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshInput carries a refresh token.
type RefreshInput struct {
	Refresh string `json:"refresh" validate:"required"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User    *model.User `json:"user"`
	Access  string      `json:"access"`
	Refresh string      `json:"refresh"`
}

// RefreshResult is returned by a token refresh.
type RefreshResult struct {
	Access string `json:"access"`
}

// AuthService handles registration, credential checks and the token lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	// Refresh exchanges a valid, non-revoked refresh token for a new access token.
	Refresh(ctx context.Context, in RefreshInput) (*RefreshResult, error)
	// Logout revokes the refresh token of user until it expires.
	Logout(ctx context.Context, user *model.User, in RefreshInput) error
	// Authenticate resolves an access token to its user.
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	blacklist  auth.Blacklist
	bcryptCost int
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, blacklist auth.Blacklist, bcryptCost int) AuthService {
	return &authService{users: users, tokens: tokens, blacklist: blacklist, bcryptCost: bcryptCost}
}

// dummyHash is compared against when the username is unknown so both failure paths cost one bcrypt check.
const dummyHash = "$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3bAvLSU3HEAbL0hJMQ5C3aW"

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Username = strings.TrimSpace(in.Username)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, fieldError("password", fmt.Sprintf("must be at most %d bytes", maxPasswordBytes))
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, &model.User{
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	return s.issue(u)
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	u, err := s.users.FindByUsername(ctx, in.Username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		auth.CheckPassword(dummyHash, in.Password)
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(u.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *authService) issue(u *model.User) (*AuthResult, error) {
	pair, err := s.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Access: pair.Access, Refresh: pair.Refresh}, nil
}

func (s *authService) Refresh(ctx context.Context, in RefreshInput) (*RefreshResult, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	claims, err := s.verifyRefresh(ctx, in.Refresh)
	if err != nil {
		return nil, err
	}

	access, err := s.tokens.IssueAccess(claims)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &RefreshResult{Access: access}, nil
}

func (s *authService) Logout(ctx context.Context, user *model.User, in RefreshInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}

	claims, err := s.verifyRefresh(ctx, in.Refresh)
	if err != nil {
		return err
	}
	if id, err := claims.UserID(); err != nil || id != user.ID {
		return ErrInvalidToken
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	log.Ctx(ctx).Info().Int64("user_id", user.ID).Str("jti", claims.ID).Msg("refresh token revoked")
	return nil
}

func (s *authService) verifyRefresh(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.tokens.Parse(token, auth.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check token blacklist: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := s.tokens.Parse(accessToken, auth.AccessToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return u, nil
}
