package utils

import (
	"testing"
	"time"
)

func TestManagerRoundtrip(t *testing.T) {
	m, err := NewManager("test-key")
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	token, err := m.NewAccessToken(42, "user", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	userID, err := m.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user id 42, got %d", userID)
	}
}

func TestManagerRejectsWrongKey(t *testing.T) {
	issuer, _ := NewManager("key-one")
	verifier, _ := NewManager("key-two")

	token, err := issuer.NewAccessToken(42, "user", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := verifier.Parse(token); err == nil {
		t.Fatal("expected parse to fail with a different key")
	}
}

func TestManagerRejectsExpired(t *testing.T) {
	m, _ := NewManager("test-key")

	token, err := m.NewAccessToken(42, "user", -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatal("expected parse to fail for expired token")
	}
}

func TestNewManagerEmptyKey(t *testing.T) {
	if _, err := NewManager(""); err == nil {
		t.Fatal("expected error for empty signing key")
	}
}

func TestNewRefreshToken(t *testing.T) {
	m, _ := NewManager("test-key")

	a, err := m.NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken: %v", err)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
	b, _ := m.NewRefreshToken()
	if a == b {
		t.Fatal("expected distinct refresh tokens")
	}
}
