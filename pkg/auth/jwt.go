/*
Package auth provides token issuance/verification and password hashing
for the API layer.
*/
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when the token is invalid.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when the token has expired.
	ErrExpiredToken = errors.New("token has expired")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenConfig holds signing configuration for both token kinds.
type TokenConfig struct {
	AccessSecret  string
	AccessExpiry  time.Duration
	RefreshSecret string
	RefreshExpiry time.Duration
	Issuer        string
}

// Claims carries the authenticated subject through a token.
type Claims struct {
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	TokenType string   `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies access and refresh tokens.
type TokenManager struct {
	config TokenConfig
}

// NewTokenManager creates a TokenManager with the given configuration.
func NewTokenManager(config TokenConfig) *TokenManager {
	return &TokenManager{config: config}
}

// IssueAccessToken issues an access token for the given subject.
func (m *TokenManager) IssueAccessToken(subjectID, email string, roles []string) (string, error) {
	return m.issue(subjectID, email, roles, tokenTypeAccess, m.config.AccessSecret, m.config.AccessExpiry)
}

// IssueRefreshToken issues a refresh token for the given subject.
func (m *TokenManager) IssueRefreshToken(subjectID, email string, roles []string) (string, error) {
	return m.issue(subjectID, email, roles, tokenTypeRefresh, m.config.RefreshSecret, m.config.RefreshExpiry)
}

func (m *TokenManager) issue(subjectID, email string, roles []string, tokenType, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     email,
		Roles:     roles,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.config.Issuer,
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (m *TokenManager) verify(tokenString, secret, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != wantType {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// VerifyAccessToken validates an access token and returns its claims.
func (m *TokenManager) VerifyAccessToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, m.config.AccessSecret, tokenTypeAccess)
}

// VerifyRefreshToken validates a refresh token and returns its claims.
func (m *TokenManager) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, m.config.RefreshSecret, tokenTypeRefresh)
}
