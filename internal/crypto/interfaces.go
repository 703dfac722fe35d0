package crypto

import "github.com/YabaiTech/YAPM/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Engine derives vault keys from a master password and encrypts single text
// values with them.
//
// Scheme:
//
//	Key        = PBKDF2-HMAC-SHA256(password, salt, 65536, 32)
//	CipherText = AES-256-CBC(Key, IV, PKCS#7(plaintext))
//
// Every output is standard base64 text. Encryption is not authenticated: a
// wrong key is detected only through invalid padding, which Decrypt reports
// as [ErrPaddingOrAuthFailure].
type Engine interface {
	// NewSalt returns 16 random bytes read from the OS CSPRNG.
	NewSalt() ([]byte, error)

	// DeriveKey returns the 32-byte vault key for password and salt. Same
	// inputs always give the same key.
	DeriveKey(password string, salt []byte) []byte

	// Encrypt derives the key and encrypts plaintext. When iv is nil a fresh
	// 16-byte IV is generated; callers pass an IV to make several values share
	// one.
	Encrypt(plaintext, password string, salt, iv []byte) (models.CipherText, error)

	// Decrypt derives the key from password and ct.Salt and decrypts ct.
	Decrypt(ct models.CipherText, password string) (string, error)

	// EncryptWithKey is Encrypt for callers that already hold a derived key.
	// The returned CipherText has an empty Salt.
	EncryptWithKey(plaintext string, key, iv []byte) (models.CipherText, error)

	// DecryptWithKey is Decrypt for callers that already hold a derived key.
	// ct.Salt is ignored.
	DecryptWithKey(ct models.CipherText, key []byte) (string, error)
}

// AccountHasher produces and checks the password hashes stored in account
// directories. It is unrelated to the vault key: the hash only gates access
// to a vault file, it never decrypts one.
type AccountHasher interface {
	// NewSalt returns a base64 encoded 16-byte random salt.
	NewSalt() (string, error)

	// Hash returns base64(PBKDF2-HMAC-SHA1(password, salt, 65536, 16)).
	Hash(password, saltB64 string) (string, error)

	// Verify reports whether password hashes to account.HashedPassword under
	// account.PasswordSalt.
	Verify(password string, account models.Account) (bool, error)
}
