package models

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	maxNameLen     = 50
	minNicknameLen = 3
	maxNicknameLen = 50
	maxEmailLen    = 120
	minPasswordLen = 8
)

var (
	nicknameRe = regexp.MustCompile(`^[\p{L}\p{N}_.\-]+$`)
	// Permissive shape check; real deliverability is out of scope.
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateName normalizes a personal name: trimmed, non-empty, at most 50
// characters, no digits. The field name is echoed into the error message.
func ValidateName(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", newValidationError(field, "must not be empty")
	}
	if len([]rune(v)) > maxNameLen {
		return "", newValidationError(field, "must be at most %d characters", maxNameLen)
	}
	for _, r := range v {
		if unicode.IsDigit(r) {
			return "", newValidationError(field, "must not contain digits")
		}
	}
	return v, nil
}

// ValidateNickname normalizes a nickname: trimmed, 3-50 characters, letters,
// digits, underscore, dot and hyphen only. Uniqueness is the caller's job.
func ValidateNickname(value string) (string, error) {
	v := strings.TrimSpace(value)
	n := len([]rune(v))
	if n < minNicknameLen || n > maxNicknameLen {
		return "", newValidationError("nickname", "must be between %d and %d characters", minNicknameLen, maxNicknameLen)
	}
	if !nicknameRe.MatchString(v) {
		return "", newValidationError("nickname", "may only contain letters, digits, '.', '_' and '-'")
	}
	return v, nil
}

// ValidateEmail normalizes an email address: trimmed, lowercased, at most
// 120 characters, permissive shape check. Uniqueness is the caller's job.
func ValidateEmail(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "", newValidationError("email", "must not be empty")
	}
	if len(v) > maxEmailLen {
		return "", newValidationError("email", "must be at most %d characters", maxEmailLen)
	}
	if !emailRe.MatchString(v) {
		return "", newValidationError("email", "is not a valid email address")
	}
	return v, nil
}

// ValidatePasswordStrength enforces the password policy: non-empty, at
// least 8 characters. No complexity rules on purpose.
func ValidatePasswordStrength(password string) error {
	if password == "" {
		return newValidationError("password", "must not be empty")
	}
	if len(password) < minPasswordLen {
		return newValidationError("password", "must be at least %d characters", minPasswordLen)
	}
	return nil
}

// ValidateCountry normalizes an optional ISO-3166 alpha-2 country code to
// two uppercase letters. Blank input means "absent" and returns nil.
func ValidateCountry(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	v := strings.ToUpper(strings.TrimSpace(*value))
	if v == "" {
		return nil, nil
	}
	if len(v) != 2 || v[0] < 'A' || v[0] > 'Z' || v[1] < 'A' || v[1] > 'Z' {
		return nil, newValidationError("country", "must be a 2-letter ISO country code")
	}
	return &v, nil
}
