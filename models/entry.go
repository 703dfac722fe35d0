package models

// Entry is a decrypted vault record as returned to callers of the vault
// store. It never touches disk in this form.
type Entry struct {
	// ID is the content-derived record id: base64(SHA-256(url + ":" + username)).
	ID       string `json:"id"`
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Record is an encrypted row of the vault's entries table.
//
// URL, Username and Password are base64 ciphertexts that share the single
// base64 IV. Timestamp is the last write time in unix milliseconds.
type Record struct {
	ID        string
	URL       string
	Username  string
	Password  string
	IV        string
	Timestamp int64
}

// Tombstone marks record ID as deleted at DeletedAt (unix milliseconds).
type Tombstone struct {
	ID        string `json:"id"`
	DeletedAt int64  `json:"deleted_at"`
}
