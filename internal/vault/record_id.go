package vault

import (
	"crypto/sha256"
	"encoding/base64"
)

// RecordID returns the content address of a record:
// base64(SHA-256(url + ":" + username)).
func RecordID(url, username string) string {
	sum := sha256.Sum256([]byte(url + ":" + username))
	return base64.StdEncoding.EncodeToString(sum[:])
}
