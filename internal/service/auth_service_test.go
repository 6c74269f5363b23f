package service

import (
	"strings"
	"testing"
)

func TestOpenSessionRoundTrip(t *testing.T) {
	svc := NewAuthService("test-secret")

	session, err := svc.OpenSession("user_abc123", "owner@example.com")
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if session.UserID != "user_abc123" {
		t.Fatalf("UserID = %q, want user_abc123", session.UserID)
	}

	claims, err := svc.ValidateToken(session.Token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != "user_abc123" || claims.Email != "owner@example.com" {
		t.Fatalf("claims = %s/%s, want user_abc123/owner@example.com", claims.UserID, claims.Email)
	}
}

func TestOpenSessionGeneratesUserID(t *testing.T) {
	svc := NewAuthService("test-secret")

	session, err := svc.OpenSession("", "new@example.com")
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if !strings.HasPrefix(session.UserID, "user_") {
		t.Fatalf("generated UserID = %q, want user_ prefix", session.UserID)
	}

	other, err := svc.OpenSession("", "new@example.com")
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}
	if other.UserID == session.UserID {
		t.Fatal("generated user ids should be unique per session")
	}
}

func TestOpenSessionRequiresEmail(t *testing.T) {
	svc := NewAuthService("test-secret")

	if _, err := svc.OpenSession("user_abc123", ""); err != ErrEmailRequired {
		t.Fatalf("OpenSession() error = %v, want ErrEmailRequired", err)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	session, err := NewAuthService("secret-a").OpenSession("user_abc123", "owner@example.com")
	if err != nil {
		t.Fatalf("OpenSession() error = %v", err)
	}

	if _, err := NewAuthService("secret-b").ValidateToken(session.Token); err != ErrInvalidToken {
		t.Fatalf("ValidateToken() error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService("test-secret")

	for _, token := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := svc.ValidateToken(token); err != ErrInvalidToken {
			t.Fatalf("ValidateToken(%q) error = %v, want ErrInvalidToken", token, err)
		}
	}
}
