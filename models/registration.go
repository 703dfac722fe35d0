package models

// Registration is the input of account registration, before validation.
type Registration struct {
	Username string
	Email    string
	Password string
}
