package validators

import (
	"context"
	"strings"

	"github.com/YabaiTech/YAPM/models"
)

// Field name constants used to scope validation of a [models.Registration].
const (
	// FieldUsername targets the account name: ASCII letters and digits only.
	FieldUsername = "username"

	// FieldEmail targets the account email address.
	FieldEmail = "email"

	// FieldPassword targets the master password strength rules.
	FieldPassword = "password"
)

// MinPasswordLength is the shortest accepted master password.
const MinPasswordLength = 8

// AccountValidator implements the Validator interface for account
// registration input.
//
// It supports both value and pointer forms of models.Registration and allows
// field-level scoping: Validate(ctx, reg, FieldPassword) checks the password
// alone.
type AccountValidator struct {
}

// NewAccountValidator constructs a new AccountValidator and returns it as the
// Validator interface.
func NewAccountValidator() Validator {
	return &AccountValidator{}
}

// Validate checks the requested fields of a registration, in order, and
// returns the first violation.
func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Registration:
		return v.validateRegistration(ctx, value, fields...)
	case *models.Registration:
		return v.validateRegistration(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *AccountValidator) validateRegistration(_ context.Context, reg models.Registration, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if !isValidUsername(reg.Username) {
				return ErrInvalidUsername
			}
		case FieldEmail:
			if !isValidEmail(reg.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if err := validatePassword(reg.Password); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func isValidUsername(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !isLower(c) && !isUpper(c) && !isDigit(c) {
			return false
		}
	}
	return true
}

// isValidEmail accepts local@domain.tld with non-empty parts and no spaces.
func isValidEmail(email string) bool {
	if strings.ContainsAny(email, " \t\r\n") {
		return false
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}

	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

func validatePassword(pwd string) error {
	if len(pwd) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	var lower, upper, digit, special bool
	for i := 0; i < len(pwd); i++ {
		c := pwd[i]
		switch {
		case isLower(c):
			lower = true
		case isUpper(c):
			upper = true
		case isDigit(c):
			digit = true
		case isSpecial(c):
			special = true
		default:
			return ErrPasswordUnallowedChars
		}
	}

	switch {
	case !lower:
		return ErrPasswordNeedsLowercase
	case !upper:
		return ErrPasswordNeedsUppercase
	case !digit:
		return ErrPasswordNeedsDigit
	case !special:
		return ErrPasswordNeedsSpecial
	}

	return nil
}

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isSpecial reports printable ASCII punctuation: ! to /, : to @, [ to ` and { to ~.
func isSpecial(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') || (c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
