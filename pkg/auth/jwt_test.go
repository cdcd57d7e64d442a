package auth

import (
	"testing"
	"time"
)

func testManager() *TokenManager {
	return NewTokenManager(TokenConfig{
		AccessSecret:  "access-secret",
		AccessExpiry:  time.Minute,
		RefreshSecret: "refresh-secret",
		RefreshExpiry: time.Hour,
		Issuer:        "test",
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := testManager()

	token, err := m.IssueAccessToken("user-1", "a@b.c", []string{"customer", "admin"})
	if err != nil {
		t.Fatalf("IssueAccessToken() error: %v", err)
	}

	claims, err := m.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("VerifyAccessToken() error: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("subject = %q, want user-1", claims.Subject)
	}
	if claims.Email != "a@b.c" {
		t.Errorf("email = %q, want a@b.c", claims.Email)
	}
	if len(claims.Roles) != 2 || claims.Roles[1] != "admin" {
		t.Errorf("roles = %v, want [customer admin]", claims.Roles)
	}
}

func TestTokenTypeSeparation(t *testing.T) {
	m := testManager()

	access, _ := m.IssueAccessToken("user-1", "a@b.c", nil)
	refresh, _ := m.IssueRefreshToken("user-1", "a@b.c", nil)

	if _, err := m.VerifyAccessToken(refresh); err == nil {
		t.Error("refresh token accepted as access token")
	}
	if _, err := m.VerifyRefreshToken(access); err == nil {
		t.Error("access token accepted as refresh token")
	}
	if _, err := m.VerifyRefreshToken(refresh); err != nil {
		t.Errorf("valid refresh token rejected: %v", err)
	}
}

func TestExpiredToken(t *testing.T) {
	m := NewTokenManager(TokenConfig{
		AccessSecret: "s",
		AccessExpiry: -time.Minute,
		Issuer:       "test",
	})

	token, err := m.IssueAccessToken("user-1", "a@b.c", nil)
	if err != nil {
		t.Fatalf("IssueAccessToken() error: %v", err)
	}
	if _, err := m.VerifyAccessToken(token); err != ErrExpiredToken {
		t.Errorf("expired token error = %v, want ErrExpiredToken", err)
	}
}

func TestTamperedToken(t *testing.T) {
	m := testManager()
	token, _ := m.IssueAccessToken("user-1", "a@b.c", nil)

	other := NewTokenManager(TokenConfig{
		AccessSecret: "different-secret",
		AccessExpiry: time.Minute,
	})
	if _, err := other.VerifyAccessToken(token); err == nil {
		t.Error("token verified under a different secret")
	}

	if _, err := m.VerifyAccessToken(token + "x"); err == nil {
		t.Error("mangled token verified")
	}
	if _, err := m.VerifyAccessToken("not-a-token"); err == nil {
		t.Error("garbage verified")
	}
}
