// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/YabaiTech/YAPM/models"
	"golang.org/x/crypto/pbkdf2"
)

// Parameters of the vault key derivation. They are part of the vault file
// format: changing any of them makes existing vaults unreadable.
const (
	KeyIterations = 65536
	KeyLength     = 32 // AES-256
	SaltLength    = 16
	IVLength      = aes.BlockSize
)

// engine is the private implementation of [Engine].
type engine struct {
	iterations int
}

// NewEngine constructs an [Engine] with the vault file's fixed PBKDF2
// parameters.
func NewEngine() Engine {
	return &engine{iterations: KeyIterations}
}

// NewSalt implements [Engine].
func (e *engine) NewSalt() ([]byte, error) {
	return randomBytes(SaltLength)
}

// DeriveKey implements [Engine].
func (e *engine) DeriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, e.iterations, KeyLength, sha256.New)
}

// Encrypt implements [Engine].
func (e *engine) Encrypt(plaintext, password string, salt, iv []byte) (models.CipherText, error) {
	ct, err := e.EncryptWithKey(plaintext, e.DeriveKey(password, salt), iv)
	if err != nil {
		return models.CipherText{}, err
	}

	ct.Salt = base64.StdEncoding.EncodeToString(salt)
	return ct, nil
}

// Decrypt implements [Engine].
func (e *engine) Decrypt(ct models.CipherText, password string) (string, error) {
	salt, err := base64.StdEncoding.DecodeString(ct.Salt)
	if err != nil {
		return "", fmt.Errorf("%w: salt: %w", ErrMalformedCipherText, err)
	}

	return e.DecryptWithKey(ct, e.DeriveKey(password, salt))
}

// EncryptWithKey implements [Engine]. It pads plaintext with PKCS#7 and
// encrypts it with AES-256-CBC under key.
func (e *engine) EncryptWithKey(plaintext string, key, iv []byte) (models.CipherText, error) {
	if iv == nil {
		var err error
		if iv, err = randomBytes(IVLength); err != nil {
			return models.CipherText{}, err
		}
	}
	if len(iv) != IVLength {
		return models.CipherText{}, ErrInvalidIV
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return models.CipherText{}, fmt.Errorf("create cipher: %w", err)
	}

	padded := pkcs7Pad([]byte(plaintext), block.BlockSize())
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return models.CipherText{
		CipherText: base64.StdEncoding.EncodeToString(out),
		IV:         base64.StdEncoding.EncodeToString(iv),
	}, nil
}

// DecryptWithKey implements [Engine].
func (e *engine) DecryptWithKey(ct models.CipherText, key []byte) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ct.CipherText)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext: %w", ErrMalformedCipherText, err)
	}
	iv, err := base64.StdEncoding.DecodeString(ct.IV)
	if err != nil {
		return "", fmt.Errorf("%w: iv: %w", ErrMalformedCipherText, err)
	}
	if len(iv) != IVLength {
		return "", fmt.Errorf("%w: %w", ErrMalformedCipherText, ErrInvalidIV)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	if len(data) == 0 || len(data)%block.BlockSize() != 0 {
		return "", fmt.Errorf("%w: length %d is not a multiple of the block size", ErrMalformedCipherText, len(data))
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)

	plain, err := pkcs7Unpad(out, block.BlockSize())
	if err != nil {
		return "", err
	}

	return string(plain), nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return b, nil
}
