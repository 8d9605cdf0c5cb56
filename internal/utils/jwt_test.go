package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	id := uuid.New()

	token, err := GenerateToken("test-secret", id, "dealer", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	gotID, gotRole, err := ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if gotID != id {
		t.Errorf("principal id = %s, want %s", gotID, id)
	}
	if gotRole != "dealer" {
		t.Errorf("role = %q, want dealer", gotRole)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", uuid.New(), "admin", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, _, err := ParseToken("secret-b", token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := GenerateToken("test-secret", uuid.New(), "dealer", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, _, err := ParseToken("test-secret", token); err == nil {
		t.Error("expired token was accepted")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, _, err := ParseToken("test-secret", "not.a.token"); err == nil {
		t.Error("garbage token was accepted")
	}
}
