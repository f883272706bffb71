// Package impl contains the application-specific business rules implementations.
package impl

import (
	"strings"
	"unicode"

	"rately/config"
	domainerrors "rately/internal/domain/errors"
)

const (
	defaultPasswordMinLength = 8
	defaultPasswordMaxLength = 16
)

const passwordSpecialChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// passwordPolicy holds the configured password strength requirements shared
// by registration, admin account creation and password change.
type passwordPolicy struct {
	minLength        int
	maxLength        int
	requireUppercase bool
	requireLowercase bool
	requireNumbers   bool
	requireSpecial   bool
}

func newPasswordPolicy(cfg *config.PasswordStrengthConfig) passwordPolicy {
	policy := passwordPolicy{
		minLength:        defaultPasswordMinLength,
		maxLength:        defaultPasswordMaxLength,
		requireUppercase: true,
		requireSpecial:   true,
	}

	if cfg == nil {
		return policy
	}

	if cfg.MinLength > 0 {
		policy.minLength = cfg.MinLength
	}
	if cfg.MaxLength > 0 {
		policy.maxLength = cfg.MaxLength
	}
	policy.requireUppercase = cfg.RequireUppercase
	policy.requireLowercase = cfg.RequireLowercase
	policy.requireNumbers = cfg.RequireNumbers
	policy.requireSpecial = cfg.RequireSpecial

	return policy
}

// validate checks a plaintext password against the policy, returning a
// password-policy error describing the first violated rule.
func (p passwordPolicy) validate(password string) error {
	if len(password) < p.minLength {
		return domainerrors.ErrPasswordPolicy.WrapMessage("password is too short")
	}
	if len(password) > p.maxLength {
		return domainerrors.ErrPasswordPolicy.WrapMessage("password is too long")
	}

	if p.requireUppercase && !strings.ContainsFunc(password, unicode.IsUpper) {
		return domainerrors.ErrPasswordPolicy.WrapMessage("password needs at least one uppercase letter")
	}

	if p.requireLowercase && !strings.ContainsFunc(password, unicode.IsLower) {
		return domainerrors.ErrPasswordPolicy.WrapMessage("password needs at least one lowercase letter")
	}

	if p.requireNumbers && !strings.ContainsFunc(password, unicode.IsDigit) {
		return domainerrors.ErrPasswordPolicy.WrapMessage("password needs at least one number")
	}

	if p.requireSpecial && !strings.ContainsAny(password, passwordSpecialChars) {
		return domainerrors.ErrPasswordPolicy.WrapMessage("password needs at least one special character")
	}

	return nil
}
