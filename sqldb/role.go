package sqldb

import (
	"github.com/jmoiron/sqlx"
	"github.com/wansing/blog/core"
)

type RoleDB struct {
	*sqlx.DB
	dialect dialect
}

func NewRoleDB(db *sqlx.DB) *RoleDB {
	return &RoleDB{
		DB:      db,
		dialect: dialectOf(db),
	}
}

func (db *RoleDB) GetAllRoles() ([]*core.Role, error) {
	var roles = []*core.Role{}
	return roles, db.Select(&roles, "SELECT id, name, description FROM roles ORDER BY name")
}

func (db *RoleDB) GetRole(id int) (*core.Role, error) {
	var r = &core.Role{}
	if err := db.Get(r, db.Rebind("SELECT id, name, description FROM roles WHERE id = ?"), id); err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

func (db *RoleDB) GetRoleByName(name string) (*core.Role, error) {
	var r = &core.Role{}
	if err := db.Get(r, db.Rebind("SELECT id, name, description FROM roles WHERE name = ?"), name); err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

func (db *RoleDB) GetRolesOf(userID int) ([]*core.Role, error) {
	var roles = []*core.Role{}
	return roles, db.Select(&roles, db.Rebind("SELECT roles.id, roles.name, roles.description FROM roles, roles_users WHERE roles.id = roles_users.role_id AND roles_users.user_id = ? ORDER BY roles.name"), userID)
}

func (db *RoleDB) InsertRole(r *core.Role) error {

	tx, err := db.Beginx()
	if err != nil {
		return err
	}

	id, err := insertID(tx, db.dialect, "INSERT INTO roles (name, description) VALUES (?, ?)", r.Name, r.Description)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.ID = id
	return nil
}

// SetRolesOf replaces the role memberships of a user.
func (db *RoleDB) SetRolesOf(userID int, roleIDs []int) error {

	tx, err := db.Beginx()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(tx.Rebind("DELETE FROM roles_users WHERE user_id = ?"), userID); err != nil {
		tx.Rollback()
		return err
	}

	for _, roleID := range roleIDs {
		if _, err := tx.Exec(tx.Rebind("INSERT INTO roles_users (user_id, role_id) VALUES (?, ?)"), userID, roleID); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (db *RoleDB) UpdateRole(r *core.Role) error {
	return requireAffected(db.Exec(db.Rebind("UPDATE roles SET description = ? WHERE id = ?"), r.Description, r.ID))
}
