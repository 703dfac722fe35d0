package crypto

import "errors"

var (
	// ErrPaddingOrAuthFailure is returned by Decrypt when the decrypted block
	// carries invalid PKCS#7 padding. With an unauthenticated cipher this is
	// the only wrong-password signal, so callers must surface it separately
	// from I/O failures.
	ErrPaddingOrAuthFailure = errors.New("bad padding: wrong password or corrupted ciphertext")

	// ErrMalformedCipherText is returned when a ciphertext, IV or salt is not
	// valid base64 or has an impossible length.
	ErrMalformedCipherText = errors.New("malformed ciphertext")

	// ErrInvalidIV is returned when a caller supplied IV is not exactly one
	// AES block long.
	ErrInvalidIV = errors.New("iv must be 16 bytes")

	// ErrRandomSource is returned when the OS CSPRNG cannot be read.
	ErrRandomSource = errors.New("error reading random bytes")
)
