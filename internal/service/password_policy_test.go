package service

import (
	"errors"
	"testing"

	"github.com/sms-next/internal/config"
)

func TestValidatePassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}

	if err := validatePassword(policy, "Abcdef12"); err != nil {
		t.Fatalf("valid password should pass: %v", err)
	}

	cases := []struct {
		name     string
		password string
	}{
		{name: "too short", password: "Ab1"},
		{name: "no upper", password: "abcdef12"},
		{name: "no lower", password: "ABCDEF12"},
		{name: "no number", password: "Abcdefgh"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(policy, tc.password)
			if err == nil {
				t.Fatalf("password %q should be rejected", tc.password)
			}
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("error should match ErrWeakPassword, got %v", err)
			}
		})
	}
}

func TestValidatePasswordEmptyPolicy(t *testing.T) {
	if err := validatePassword(config.PasswordPolicyConfig{}, "x"); err != nil {
		t.Fatalf("empty policy should accept any password: %v", err)
	}
}

func TestEvaluatePasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		level    string
	}{
		{password: "abc", level: "WEAK"},
		{password: "abcdef12", level: "MEDIUM"},
		{password: "Abcdef12!longer", level: "STRONG"},
	}
	for _, tc := range cases {
		got := EvaluatePasswordStrength(tc.password)
		if got.Level != tc.level {
			t.Fatalf("password %q level want %s got %s (score %d)", tc.password, tc.level, got.Level, got.Score)
		}
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Secret123")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	if err := VerifyPassword(hash, "Secret123"); err != nil {
		t.Fatalf("correct password should verify: %v", err)
	}
	if err := VerifyPassword(hash, "wrong"); err == nil {
		t.Fatalf("wrong password should not verify")
	}
}
