package utils

import (
	"testing"

	"promocrm/config"
	"promocrm/models"

	"gorm.io/gorm"
)

func TestJWTRoundTrip(t *testing.T) {
	config.AppConfig.EncryptionKey = "test-encryption-key"

	user := &models.User{
		Model:        gorm.Model{ID: 42},
		Email:        "admin@test.local",
		TokenVersion: 3,
	}

	access, refresh, err := GenerateJWTToken(user, "go-test", "127.0.0.1")
	if err != nil {
		t.Fatalf("GenerateJWTToken failed: %v", err)
	}
	if access == "" || refresh == "" || access == refresh {
		t.Fatal("expected distinct non-empty access and refresh tokens")
	}

	claims, err := ParseJWTToken(access)
	if err != nil {
		t.Fatalf("ParseJWTToken failed: %v", err)
	}
	if claims.UserID != 42 || claims.TokenVersion != 3 {
		t.Fatalf("claims = %+v, want UserID 42 TokenVersion 3", claims)
	}
}

func TestParseJWTTokenRejectsTampered(t *testing.T) {
	config.AppConfig.EncryptionKey = "test-encryption-key"

	user := &models.User{Model: gorm.Model{ID: 1}}
	access, _, err := GenerateJWTToken(user, "go-test", "127.0.0.1")
	if err != nil {
		t.Fatalf("GenerateJWTToken failed: %v", err)
	}

	if _, err := ParseJWTToken(access + "x"); err == nil {
		t.Fatal("expected error for tampered token")
	}

	// A token signed with a different key fails verification
	config.AppConfig.EncryptionKey = "another-key"
	if _, err := ParseJWTToken(access); err == nil {
		t.Fatal("expected error for wrong signing key")
	}
}
