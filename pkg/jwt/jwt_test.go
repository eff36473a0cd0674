package jwt

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken(secret, "cust-001", "access", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	claims, err := ParseToken(secret, "access", token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.CustomerID != "cust-001" {
		t.Errorf("expected customer cust-001, got %s", claims.CustomerID)
	}
}

func TestParseTokenRejects(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateToken(secret, "cust-001", "refresh", time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	if _, err := ParseToken(secret, "access", token); err == nil {
		t.Error("expected type mismatch to be rejected")
	}
	if _, err := ParseToken([]byte("other-secret"), "refresh", token); err == nil {
		t.Error("expected bad signature to be rejected")
	}

	expired, err := GenerateToken(secret, "cust-001", "access", -time.Minute)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	if _, err := ParseToken(secret, "access", expired); err == nil {
		t.Error("expected expired token to be rejected")
	}
}
