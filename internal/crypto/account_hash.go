package crypto

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"github.com/YabaiTech/YAPM/models"
	"golang.org/x/crypto/pbkdf2"
)

// Parameters of the account password hash stored in the directories.
const (
	AccountHashIterations = 65536
	AccountHashLength     = 16 // 128 bits
	AccountSaltLength     = 16
)

type accountHasher struct{}

// NewAccountHasher returns the [AccountHasher] used by registration and
// login.
func NewAccountHasher() AccountHasher {
	return accountHasher{}
}

// NewSalt implements [AccountHasher].
func (accountHasher) NewSalt() (string, error) {
	salt, err := randomBytes(AccountSaltLength)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(salt), nil
}

// Hash implements [AccountHasher].
func (accountHasher) Hash(password, saltB64 string) (string, error) {
	salt, err := base64.StdEncoding.DecodeString(saltB64)
	if err != nil {
		return "", fmt.Errorf("%w: account salt: %w", ErrMalformedCipherText, err)
	}

	hash := pbkdf2.Key([]byte(password), salt, AccountHashIterations, AccountHashLength, sha1.New)
	return base64.StdEncoding.EncodeToString(hash), nil
}

// Verify implements [AccountHasher].
func (h accountHasher) Verify(password string, account models.Account) (bool, error) {
	hash, err := h.Hash(password, account.PasswordSalt)
	if err != nil {
		return false, err
	}

	return subtle.ConstantTimeCompare([]byte(hash), []byte(account.HashedPassword)) == 1, nil
}
