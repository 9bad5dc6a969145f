package core

import (
	"github.com/wansing/blog/auth"
)

type Role struct {
	ID          int    `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}

type RoleDB interface {
	GetAllRoles() ([]*Role, error)
	GetRole(id int) (*Role, error)
	GetRoleByName(name string) (*Role, error)
	GetRolesOf(userID int) ([]*Role, error)
	InsertRole(r *Role) error // sets r.ID
	SetRolesOf(userID int, roleIDs []int) error
	UpdateRole(r *Role) error // description
}

// RoleSetOf returns the names of the roles of a user. It returns an empty set for nil.
func (c *CoreDB) RoleSetOf(u *User) (auth.RoleSet, error) {
	if u == nil {
		return auth.NewRoleSet(), nil
	}
	roles, err := c.GetRolesOf(u.ID)
	if err != nil {
		return nil, err
	}
	var names = make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.Name
	}
	return auth.NewRoleSet(names...), nil
}

// InsertRole shadows RoleDB.InsertRole.
func (c *CoreDB) InsertRole(name, description string) (*Role, error) {
	var r = &Role{
		Name:        auth.NormalizeRole(name),
		Description: description,
	}
	if r.Name == "" {
		return nil, ErrEmptyRole
	}
	return r, c.RoleDB.InsertRole(r)
}

// Grant adds a role to the roles of a user. It does nothing if the user already has the role.
func (c *CoreDB) Grant(u *User, r *Role) error {
	roles, err := c.GetRolesOf(u.ID)
	if err != nil {
		return err
	}
	var ids = make([]int, 0, len(roles)+1)
	for _, existing := range roles {
		if existing.ID == r.ID {
			return nil
		}
		ids = append(ids, existing.ID)
	}
	return c.SetRolesOf(u.ID, append(ids, r.ID))
}
