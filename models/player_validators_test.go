package models

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "Daniel", "Daniel", false},
		{"trims whitespace", "  Daniel  ", "Daniel", false},
		{"accented letters", "José", "José", false},
		{"empty", "", "", true},
		{"only whitespace", "   ", "", true},
		{"contains digits", "Daniel2", "", true},
		{"too long", strings.Repeat("a", 51), "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateName("first_name", tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateNickname(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "shark_99", "shark_99", false},
		{"dots and hyphens", "the.shark-9", "the.shark-9", false},
		{"trims whitespace", " shark ", "shark", false},
		{"too short", "ab", "", true},
		{"too long", strings.Repeat("x", 51), "", true},
		{"spaces inside", "the shark", "", true},
		{"punctuation", "shark!", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateNickname(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateNickname(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateNickname(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "player@example.com", "player@example.com", false},
		{"lowercased", "Player@Example.COM", "player@example.com", false},
		{"trimmed", "  player@example.com ", "player@example.com", false},
		{"missing at", "playerexample.com", "", true},
		{"missing domain dot", "player@example", "", true},
		{"empty", "", "", true},
		{"too long", strings.Repeat("a", 115) + "@ex.com", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateEmail(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateEmail(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ValidateEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	if err := ValidatePasswordStrength("12345678"); err != nil {
		t.Errorf("eight characters should pass, got %v", err)
	}
	if err := ValidatePasswordStrength("1234567"); err == nil {
		t.Error("seven characters should fail")
	}
	if err := ValidatePasswordStrength(""); err == nil {
		t.Error("empty password should fail")
	}

	err := ValidatePasswordStrength("short")
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if ve.Field != "password" {
		t.Errorf("field = %q, want password", ve.Field)
	}
}

func TestValidateCountry(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	got, err := ValidateCountry(strPtr("it"))
	if err != nil || got == nil || *got != "IT" {
		t.Errorf("ValidateCountry(it) = %v, %v; want IT", got, err)
	}

	got, err = ValidateCountry(strPtr("  us "))
	if err != nil || got == nil || *got != "US" {
		t.Errorf("ValidateCountry('  us ') = %v, %v; want US", got, err)
	}

	// Blank means absent.
	got, err = ValidateCountry(strPtr("  "))
	if err != nil || got != nil {
		t.Errorf("blank country = %v, %v; want nil, nil", got, err)
	}
	got, err = ValidateCountry(nil)
	if err != nil || got != nil {
		t.Errorf("nil country = %v, %v; want nil, nil", got, err)
	}

	for _, bad := range []string{"ITA", "1T", "I"} {
		if _, err := ValidateCountry(strPtr(bad)); err == nil {
			t.Errorf("ValidateCountry(%q) should fail", bad)
		}
	}
}
