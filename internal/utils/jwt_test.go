package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken("secret", userID, "ada@example.com", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != userID {
		t.Fatalf("expected %s, got %s", userID, got)
	}
}

func TestParseTokenRejects(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken("secret", userID, "", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken("other-secret", token); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}

	expired, err := GenerateToken("secret", userID, "", -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken("secret", expired); err == nil {
		t.Fatal("expected expired token to fail")
	}

	if _, err := ParseToken("secret", "not-a-token"); err == nil {
		t.Fatal("expected garbage token to fail")
	}
}
