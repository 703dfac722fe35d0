package crypto

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/YabaiTech/YAPM/models"
	"golang.org/x/crypto/pbkdf2"
)

func TestNewSalt_LengthAndRandomness(t *testing.T) {
	e := NewEngine()

	s1, err := e.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt error: %v", err)
	}
	s2, err := e.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt error: %v", err)
	}

	if len(s1) != SaltLength || len(s2) != SaltLength {
		t.Fatalf("salt lengths = %d, %d, want %d", len(s1), len(s2), SaltLength)
	}
	if bytes.Equal(s1, s2) {
		t.Fatalf("expected salts to differ, but they are equal")
	}
}

func TestDeriveKey_DeterministicAndPBKDF2SHA256(t *testing.T) {
	e := NewEngine()
	salt := bytes.Repeat([]byte{0xAB}, SaltLength)

	k1 := e.DeriveKey("Secret1!", salt)
	k2 := e.DeriveKey("Secret1!", salt)
	if !bytes.Equal(k1, k2) {
		t.Fatalf("DeriveKey not deterministic")
	}
	if len(k1) != KeyLength {
		t.Fatalf("key length = %d, want %d", len(k1), KeyLength)
	}

	want := pbkdf2.Key([]byte("Secret1!"), salt, 65536, 32, sha256.New)
	if !bytes.Equal(k1, want) {
		t.Fatalf("key differs from PBKDF2-HMAC-SHA256 with 65536 iterations")
	}

	if bytes.Equal(k1, e.DeriveKey("Secret2!", salt)) {
		t.Fatalf("different passwords produced the same key")
	}
}

func TestEncryptWithKey_MatchesCBCVector(t *testing.T) {
	// NIST SP 800-38A F.2.5, first block.
	key, _ := hex.DecodeString("603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4")
	iv, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	plain, _ := hex.DecodeString("6bc1bee22e409f96e93d7e117393172a")

	ct, err := NewEngine().EncryptWithKey(string(plain), key, iv)
	if err != nil {
		t.Fatalf("EncryptWithKey error: %v", err)
	}

	raw, err := base64.StdEncoding.DecodeString(ct.CipherText)
	if err != nil {
		t.Fatalf("ciphertext is not base64: %v", err)
	}
	// one data block plus one full padding block
	if len(raw) != 32 {
		t.Fatalf("ciphertext length = %d, want 32", len(raw))
	}
	if got := hex.EncodeToString(raw[:16]); got != "f58c4c04d6e5f1ba779eabfb5f7bfbd6" {
		t.Fatalf("first block = %s", got)
	}
	if ct.IV != base64.StdEncoding.EncodeToString(iv) {
		t.Fatalf("IV not echoed back")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	e := NewEngine()
	salt, err := e.NewSalt()
	if err != nil {
		t.Fatalf("NewSalt error: %v", err)
	}

	for _, text := range []string{"a", "https://a.com", "exactly16bytes!!", "ünïcødé ✓", "x:y:z"} {
		ct, err := e.Encrypt(text, "Secret1!", salt, nil)
		if err != nil {
			t.Fatalf("Encrypt(%q) error: %v", text, err)
		}
		if ct.Salt != base64.StdEncoding.EncodeToString(salt) {
			t.Fatalf("salt not carried in ciphertext")
		}

		got, err := e.Decrypt(ct, "Secret1!")
		if err != nil {
			t.Fatalf("Decrypt(%q) error: %v", text, err)
		}
		if got != text {
			t.Fatalf("round trip = %q, want %q", got, text)
		}
	}
}

func TestEncrypt_SharedIV(t *testing.T) {
	e := NewEngine()
	salt, _ := e.NewSalt()

	first, err := e.Encrypt("https://a.com", "pw", salt, nil)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	iv, _ := base64.StdEncoding.DecodeString(first.IV)

	second, err := e.Encrypt("alice", "pw", salt, iv)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}
	if first.IV != second.IV {
		t.Fatalf("supplied IV was not used")
	}

	third, _ := e.Encrypt("https://a.com", "pw", salt, nil)
	if third.IV == first.IV {
		t.Fatalf("fresh IVs should differ")
	}
}

func TestEncrypt_RejectsBadIV(t *testing.T) {
	_, err := NewEngine().Encrypt("x", "pw", make([]byte, SaltLength), []byte{1, 2, 3})
	if !errors.Is(err, ErrInvalidIV) {
		t.Fatalf("err = %v, want ErrInvalidIV", err)
	}
}

func TestDecrypt_WrongPasswordIsPaddingFailureOrGarbage(t *testing.T) {
	e := NewEngine()
	salt, _ := e.NewSalt()

	ct, err := e.Encrypt("vault_verification", "Secret1!", salt, nil)
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	got, err := e.Decrypt(ct, "Secret2!")
	if err == nil {
		// valid padding by chance: the plaintext must still be wrong
		if got == "vault_verification" {
			t.Fatalf("wrong password decrypted to the original plaintext")
		}
		return
	}
	if !errors.Is(err, ErrPaddingOrAuthFailure) {
		t.Fatalf("err = %v, want ErrPaddingOrAuthFailure", err)
	}
}

func TestDecrypt_Malformed(t *testing.T) {
	e := NewEngine()
	salt := base64.StdEncoding.EncodeToString(make([]byte, SaltLength))
	iv := base64.StdEncoding.EncodeToString(make([]byte, IVLength))

	tests := []struct {
		name string
		ct   models.CipherText
	}{
		{"bad base64 ciphertext", models.CipherText{CipherText: "%%%", IV: iv, Salt: salt}},
		{"bad base64 iv", models.CipherText{CipherText: iv, IV: "%%%", Salt: salt}},
		{"bad base64 salt", models.CipherText{CipherText: iv, IV: iv, Salt: "%%%"}},
		{"short iv", models.CipherText{CipherText: iv, IV: "AAAA", Salt: salt}},
		{"partial block", models.CipherText{CipherText: "AAAA", IV: iv, Salt: salt}},
		{"empty", models.CipherText{CipherText: "", IV: iv, Salt: salt}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Decrypt(tt.ct, "pw")
			if !errors.Is(err, ErrMalformedCipherText) {
				t.Fatalf("err = %v, want ErrMalformedCipherText", err)
			}
		})
	}
}

func TestPKCS7Unpad(t *testing.T) {
	good := append([]byte("abc"), bytes.Repeat([]byte{13}, 13)...)
	got, err := pkcs7Unpad(good, 16)
	if err != nil || string(got) != "abc" {
		t.Fatalf("unpad = %q, %v", got, err)
	}

	bad := [][]byte{
		append([]byte("abc"), append(bytes.Repeat([]byte{13}, 12), 12)...),
		append(bytes.Repeat([]byte{'a'}, 15), 0),
		append(bytes.Repeat([]byte{'a'}, 15), 17),
		{},
	}
	for i, b := range bad {
		if _, err := pkcs7Unpad(b, 16); !errors.Is(err, ErrPaddingOrAuthFailure) {
			t.Fatalf("case %d: err = %v, want ErrPaddingOrAuthFailure", i, err)
		}
	}
}
