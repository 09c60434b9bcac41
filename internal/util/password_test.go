package util

import (
	"bytes"
	"testing"
)

func TestDeriveAndVerifyPassword(t *testing.T) {
	hash, salt, err := DerivePassword("secret1")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	if len(hash) == 0 || len(salt) == 0 {
		t.Fatalf("expected hash and salt to be populated")
	}
	if !VerifyPassword("secret1", salt, hash) {
		t.Fatalf("expected password verification to succeed")
	}
	if VerifyPassword("wrong-pass", salt, hash) {
		t.Fatalf("expected password verification to fail for wrong password")
	}
}

func TestDerivePasswordSaltsEveryCall(t *testing.T) {
	hash1, salt1, err := DerivePassword("same-password")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	hash2, salt2, err := DerivePassword("same-password")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	if bytes.Equal(salt1, salt2) {
		t.Fatalf("expected distinct salts per call")
	}
	if bytes.Equal(hash1, hash2) {
		t.Fatalf("expected distinct hashes for the same password")
	}
}

func TestVerifyPasswordMalformedInput(t *testing.T) {
	hash, salt, err := DerivePassword("secret1")
	if err != nil {
		t.Fatalf("DerivePassword returned error: %v", err)
	}
	if VerifyPassword("", salt, hash) {
		t.Fatalf("expected empty password to fail verification")
	}
	if VerifyPassword("secret1", nil, hash) {
		t.Fatalf("expected missing salt to fail verification")
	}
	if VerifyPassword("secret1", salt, nil) {
		t.Fatalf("expected missing hash to fail verification")
	}
	if VerifyPassword("secret1", salt, []byte{1, 2, 3}) {
		t.Fatalf("expected truncated hash to fail verification")
	}
}

func TestHashPasswordEmptyInput(t *testing.T) {
	if _, err := HashPassword("", []byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error when password empty")
	}
	if _, err := HashPassword("secret", nil); err == nil {
		t.Fatalf("expected error when salt empty")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("secret1"); err != nil {
		t.Fatalf("expected password to be accepted, got %v", err)
	}
	if err := ValidatePassword("   "); err == nil {
		t.Fatalf("expected blank password to be rejected")
	}
	if err := ValidatePassword("abc"); err == nil {
		t.Fatalf("expected short password to be rejected")
	}
}
