package core

import (
	"errors"
	"fmt"
	"log"

	"github.com/wansing/blog/auth"
)

// SeedRoles inserts the roles of auth.Vocabulary which don't exist yet.
func (c *CoreDB) SeedRoles() error {
	for _, name := range auth.Vocabulary {
		_, err := c.GetRoleByName(name)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}
		if _, err := c.InsertRole(name, ""); err != nil {
			return fmt.Errorf("inserting role %s: %w", name, err)
		}
		log.Printf("inserted role %s", name)
	}
	return nil
}

// SeedAdmin creates an active user with the admin role, unless a user with the email address exists.
// The admin role must have been seeded before.
func (c *CoreDB) SeedAdmin(email, password string) (bool, error) {

	_, err := c.GetUserByEmail(email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	adminRole, err := c.GetRoleByName(auth.Admin)
	if err != nil {
		return false, fmt.Errorf("getting role %s: %w", auth.Admin, err)
	}

	u, err := c.InsertUser(email, password, adminRole.ID)
	if err != nil {
		return false, fmt.Errorf("inserting admin %s: %w", email, err)
	}

	log.Printf("inserted admin %s", u.Email)
	return true, nil
}
