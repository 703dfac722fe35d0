package models

// NoLastLogin is the LastLoginAtMillis value of an [Account] returned by an
// account directory when no matching row exists.
const NoLastLogin int64 = -1

// Account is one row of an account directory (local or remote).
//
// It names the vault file a login session operates on and carries the
// password hash used to authenticate the user before any vault file is
// touched.
type Account struct {
	// ID is the directory's own surrogate key. It differs between the local
	// and the remote directory and never takes part in comparisons.
	ID int64 `json:"-"`

	Username string `json:"username"`
	Email    string `json:"email"`

	// HashedPassword is base64(PBKDF2-HMAC-SHA1(password, PasswordSalt)).
	HashedPassword string `json:"hashed_password"`
	// PasswordSalt is the base64 salt used for HashedPassword.
	PasswordSalt string `json:"salt"`

	// VaultFileName is the bare file name of the vault, relative to the
	// vault directory on every device and to the bucket remotely.
	VaultFileName string `json:"pwd_db_path"`

	// LastLoginAtMillis is the unix time in milliseconds of the last
	// successful login, or [NoLastLogin] when the account does not exist.
	LastLoginAtMillis int64 `json:"last_logged_in"`
}

// NotFoundAccount returns the sentinel record account directories hand out
// when a lookup matches nothing.
func NotFoundAccount() Account {
	return Account{LastLoginAtMillis: NoLastLogin}
}

// Exists reports whether a is a real directory row rather than the
// not-found sentinel.
func (a Account) Exists() bool {
	return a.LastLoginAtMillis != NoLastLogin
}

// SameIdentity reports whether a and other agree on username, email and
// password hash. Two existing records that disagree on any of these are in
// conflict.
func (a Account) SameIdentity(other Account) bool {
	return a.Username == other.Username &&
		a.Email == other.Email &&
		a.HashedPassword == other.HashedPassword
}

// TableName returns the name of the directory table that stores accounts.
func (a Account) TableName() string {
	return "master_users"
}
