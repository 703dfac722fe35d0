package models

// CipherText is the text form of one encrypted value.
//
// All three fields are standard base64. Salt is carried along so a value can
// be decrypted with nothing but the password.
type CipherText struct {
	CipherText string
	IV         string
	Salt       string
}
