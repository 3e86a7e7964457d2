// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"strings"
	"testing"
)

func TestArgon2HasherRoundTrip(t *testing.T) {
	h := NewArgon2Hasher()

	hash, err := h.Hash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("expected argon2id encoding, got %q", hash)
	}
	if strings.Contains(hash, "Sup3rSecret!") {
		t.Error("hash must not contain the plaintext")
	}

	if !h.Verify(hash, "Sup3rSecret!") {
		t.Error("expected the original password to verify")
	}
	if h.Verify(hash, "WrongPassword1!") {
		t.Error("expected a wrong password to fail")
	}
}

func TestArgon2HasherSaltsDiffer(t *testing.T) {
	h := NewArgon2Hasher()

	a, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := h.Hash("same password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Error("expected two hashes of the same password to differ")
	}
}

func TestArgon2HasherVerifyMalformed(t *testing.T) {
	h := NewArgon2Hasher()

	for _, hash := range []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=3,p=4$short",
		"$bcrypt$whatever",
	} {
		if h.Verify(hash, "anything") {
			t.Errorf("expected malformed hash %q to fail verification", hash)
		}
	}
}
