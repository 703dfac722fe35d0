package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUsername = errors.New("username may only contain letters and digits")
	ErrInvalidEmail    = errors.New("invalid email address")

	ErrPasswordTooShort       = errors.New("password needs to be at least 8 characters long")
	ErrPasswordUnallowedChars = errors.New("password can only contain letters, digits and special characters")
	ErrPasswordNeedsLowercase = errors.New("password needs at least 1 lowercase letter")
	ErrPasswordNeedsUppercase = errors.New("password needs at least 1 uppercase letter")
	ErrPasswordNeedsDigit     = errors.New("password needs at least 1 number")
	ErrPasswordNeedsSpecial   = errors.New("password needs at least 1 special character")
)
