// Package auth implements registration, login and token refresh for
// customer accounts.
package auth

import (
	"context"
	"time"

	"weblarek/domain/customer"
	"weblarek/pkg/auth"
	apperrors "weblarek/pkg/errors"
)

// Service coordinates account creation and token issuance.
type Service struct {
	customers customer.Repository
	tokens    *auth.TokenManager
}

// NewService creates the auth application service.
func NewService(customers customer.Repository, tokens *auth.TokenManager) *Service {
	return &Service{customers: customers, tokens: tokens}
}

// RegisterRequest carries the sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest carries the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenPair is an issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is the payload returned from register, login and refresh.
type AuthResponse struct {
	User *customer.Customer `json:"user"`
	TokenPair
}

// Register creates a new customer account and signs it in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to hash password")
	}

	now := time.Now().UTC()
	c := &customer.Customer{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hash,
		Roles:     []string{"customer"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return s.signIn(c)
}

// Login verifies credentials and issues a token pair. A missing account
// and a wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	c, err := s.customers.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	if !auth.CheckPassword(req.Password, c.Password) {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	return s.signIn(c)
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (s *Service) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	claims, err := s.tokens.VerifyRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired refresh token")
	}
	c, err := s.customers.FindByID(ctx, claims.Subject)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid or expired refresh token")
	}
	return s.signIn(c)
}

// Profile returns the account behind an authenticated subject.
func (s *Service) Profile(ctx context.Context, subjectID string) (*customer.Customer, error) {
	return s.customers.FindByID(ctx, subjectID)
}

func (s *Service) signIn(c *customer.Customer) (*AuthResponse, error) {
	id := c.ID.Hex()
	access, err := s.tokens.IssueAccessToken(id, c.Email, c.Roles)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to issue access token")
	}
	refresh, err := s.tokens.IssueRefreshToken(id, c.Email, c.Roles)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternal, "failed to issue refresh token")
	}
	return &AuthResponse{
		User:      c,
		TokenPair: TokenPair{AccessToken: access, RefreshToken: refresh},
	}, nil
}
