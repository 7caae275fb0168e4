package auth

import (
	"errors"
	"testing"
	"time"
)

func TestLogin_StaticCredential(t *testing.T) {
	svc := NewService("admin", "admin", "secret", time.Hour)

	tok, err := svc.Login("admin", "admin")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected a token")
	}
	if err := svc.Verify(tok); err != nil {
		t.Fatalf("Verify error: %v", err)
	}
}

func TestLogin_RejectsWrongCredential(t *testing.T) {
	svc := NewService("admin", "admin", "secret", time.Hour)

	if _, err := svc.Login("admin", "nope"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("err = %v, want %v", err, ErrBadCredentials)
	}
	if _, err := svc.Login("root", "admin"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("err = %v, want %v", err, ErrBadCredentials)
	}
}

func TestVerify_RejectsGarbageAndForeignSignature(t *testing.T) {
	svc := NewService("admin", "admin", "secret", time.Hour)
	other := NewService("admin", "admin", "different", time.Hour)

	if err := svc.Verify("not-a-token"); !errors.Is(err, ErrBadToken) {
		t.Fatalf("err = %v, want %v", err, ErrBadToken)
	}

	tok, err := other.Login("admin", "admin")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if err := svc.Verify(tok); !errors.Is(err, ErrBadToken) {
		t.Fatalf("foreign token err = %v, want %v", err, ErrBadToken)
	}
}

func TestVerify_RejectsExpiredToken(t *testing.T) {
	svc := NewService("admin", "admin", "secret", time.Minute)

	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	tok, err := svc.Login("admin", "admin")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if err := svc.Verify(tok); !errors.Is(err, ErrBadToken) {
		t.Fatalf("expired token err = %v, want %v", err, ErrBadToken)
	}
}

func TestDisabledService(t *testing.T) {
	svc := NewService("", "", "secret", time.Hour)

	if svc.Enabled() {
		t.Fatalf("service with no credential should be disabled")
	}
	if _, err := svc.Login("admin", "admin"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("err = %v, want %v", err, ErrBadCredentials)
	}
}
