package domain

// Credentials is the login form input. Both fields are mandatory.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Registration is the sign-up form input. All four fields are mandatory and
// the password must be at least MinPasswordLength characters; both checks run
// locally before any request is issued.
type Registration struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstname" validate:"required"`
	LastName  string `json:"lastname" validate:"required"`
}

// MinPasswordLength is the client-side minimum for registration passwords.
const MinPasswordLength = 8
