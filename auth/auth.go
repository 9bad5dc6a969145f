package auth

import (
	"errors"
)

// MaxPasswordBytes is the input limit of bcrypt.
const MaxPasswordBytes = 72

var (
	ErrEmptyPassword   = errors.New("refusing to set empty password")
	ErrPasswordTooLong = errors.New("password is longer than 72 bytes")
)

// ErrAuth is returned if the email address is unknown, the password is wrong or the user is not active.
// Callers should not tell these cases apart.
var ErrAuth = errors.New("authentication failed")
