package utils

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	id := GenerateID("acc")
	if !strings.HasPrefix(id, "acc-") {
		t.Errorf("expected prefix acc-, got %q", id)
	}
	if len(id) != len("acc-")+10 {
		t.Errorf("unexpected length for %q", id)
	}

	if GenerateID("acc") == GenerateID("acc") {
		t.Error("expected successive IDs to differ")
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Error("hash must not equal the plaintext password")
	}

	if !CheckPassword("hunter2hunter2", hash) {
		t.Error("expected correct password to verify")
	}
	if CheckPassword("wrong", hash) {
		t.Error("expected wrong password to fail verification")
	}
}
