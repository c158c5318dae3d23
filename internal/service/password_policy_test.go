package service

import (
	"errors"
	"testing"

	"github.com/marron-next/internal/config"
)

func TestValidatePassword(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}

	tests := []struct {
		name     string
		policy   config.PasswordPolicyConfig
		password string
		wantKey  string
	}{
		{name: "ok", policy: policy, password: "ClaveBuena1"},
		{name: "too_short", policy: policy, password: "Ab1", wantKey: "error.password_min_length"},
		{name: "missing_upper", policy: policy, password: "minusculas1", wantKey: "error.password_require_upper"},
		{name: "missing_lower", policy: policy, password: "MAYUSCULAS1", wantKey: "error.password_require_lower"},
		{name: "missing_number", policy: policy, password: "SinNumeros", wantKey: "error.password_require_number"},
		{
			name:     "missing_special",
			policy:   config.PasswordPolicyConfig{RequireSpecial: true},
			password: "SoloLetras1",
			wantKey:  "error.password_require_special",
		},
		{name: "empty_policy_allows_anything", policy: config.PasswordPolicyConfig{}, password: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePassword(tt.policy, tt.password)
			if tt.wantKey == "" {
				if err != nil {
					t.Fatalf("want nil error got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("want ErrWeakPassword got %v", err)
			}
			var policyErr passwordPolicyError
			if !errors.As(err, &policyErr) {
				t.Fatalf("want passwordPolicyError got %T", err)
			}
			if policyErr.Key() != tt.wantKey {
				t.Fatalf("message key want %q got %q", tt.wantKey, policyErr.Key())
			}
		})
	}
}

func TestPasswordPolicyErrorCarriesArgs(t *testing.T) {
	err := validatePassword(config.PasswordPolicyConfig{MinLength: 12}, "corta")
	var policyErr passwordPolicyError
	if !errors.As(err, &policyErr) {
		t.Fatalf("want passwordPolicyError got %T", err)
	}
	args := policyErr.Args()
	if len(args) != 1 || args[0] != 12 {
		t.Fatalf("args want [12] got %v", args)
	}
}
