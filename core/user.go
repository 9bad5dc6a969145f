package core

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/wansing/blog/auth"
)

type User struct {
	ID          int           `db:"id"`
	Email       string        `db:"email"`
	Password    string        `db:"password"` // bcrypt hash, empty if the user can't log in
	Active      bool          `db:"active"`
	ConfirmedAt sql.NullInt64 `db:"confirmed_at"`
	Username    string        `db:"username"`
	About       string        `db:"about"`
}

// Name returns the username, or the email address if the username is empty.
func (u *User) Name() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}

type UserDB interface {
	CountUsers() (int, error)
	GetAllUsers(limit, offset int) ([]*User, error)
	GetUser(id int) (*User, error)
	GetUserByEmail(email string) (*User, error)
	InsertUser(u *User, roleIDs []int) error // sets u.ID
	SaveUser(u *User, roleIDs []int) error   // username, about, active, password and role memberships in one transaction
	UpdateUser(u *User) error                // username, about, active
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// InsertUser shadows UserDB.InsertUser. It normalizes the email address and hashes the password if one is given.
func (c *CoreDB) InsertUser(email, password string, roleIDs ...int) (*User, error) {
	var u = &User{
		Email:  NormalizeEmail(email),
		Active: true,
	}
	if u.Email == "" {
		return nil, ErrEmptyEmail
	}
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if err := c.UserDB.InsertUser(u, roleIDs); err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByEmail shadows UserDB.GetUserByEmail.
func (c *CoreDB) GetUserByEmail(email string) (*User, error) {
	return c.UserDB.GetUserByEmail(NormalizeEmail(email))
}

// EditUser stores the changed fields of u, replaces its roles and, if password is not empty, sets a new password.
// The password is hashed before anything is written, so an unacceptable password changes nothing.
func (c *CoreDB) EditUser(u *User, roleIDs []int, password string) error {
	var edited = *u
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		edited.Password = hash
	}
	if err := c.SaveUser(&edited, roleIDs); err != nil {
		return err
	}
	*u = edited
	return nil
}

// LoginUser returns the active user with the given credentials, or auth.ErrAuth.
func (c *CoreDB) LoginUser(email, password string) (*User, error) {
	u, err := c.GetUserByEmail(email)
	if errors.Is(err, ErrNotFound) {
		return nil, auth.ErrAuth
	}
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, auth.ErrAuth
	}
	if err := auth.CheckPassword(u.Password, password); err != nil {
		return nil, err
	}
	return u, nil
}
