package security

import (
	"errors"
	"strings"
	"testing"

	"github.com/TariqTawalbeh/employees-board/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func TestHashAndVerifyRoundTrip(t *testing.T) {
	encoded, err := HashPassword("s3cret-pass", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format: %s", encoded)
	}

	ok, err := VerifyPassword("s3cret-pass", encoded)
	if err != nil {
		t.Fatalf("verify password: %v", err)
	}
	if !ok {
		t.Fatalf("expected password to verify")
	}
}

func TestVerifyRejectsWrongPassword(t *testing.T) {
	encoded, err := HashPassword("right-password", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	ok, err := VerifyPassword("wrong-password", encoded)
	if err != nil {
		t.Fatalf("verify password: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch to fail verification")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("same-password", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword("same-password", testPasswordConfig())
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for the same password")
	}
}

func TestEmptyPasswordRejected(t *testing.T) {
	if _, err := HashPassword("", testPasswordConfig()); err == nil {
		t.Fatalf("expected error hashing empty password")
	}
	if _, err := VerifyPassword("", "$argon2id$v=19$m=8,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA"); err == nil {
		t.Fatalf("expected error verifying empty password")
	}
}

func TestVerifyRejectsMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=8,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8,t=1$c2FsdA",
		"$argon2id$v=19$m=nope,t=1,p=1$c2FsdA$aGFzaA",
		// Well-formed sections but no recognized parameter keys; zero-valued
		// params must fail decoding, not reach the key derivation.
		"$argon2id$v=19$x=1$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA",
		"$argon2id$v=19$m=8,t=0,p=1$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA",
		"$argon2id$v=19$m=8,t=1,p=0$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA",
		"$argon2id$v=18$m=8,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2hoYXNoaGFzaA",
	}
	for _, encoded := range cases {
		_, err := VerifyPassword("whatever", encoded)
		if !errors.Is(err, ErrInvalidHash) {
			t.Fatalf("hash %q: expected ErrInvalidHash, got %v", encoded, err)
		}
	}
}
