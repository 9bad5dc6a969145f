package sqldb

import (
	"github.com/jmoiron/sqlx"
	"github.com/wansing/blog/core"
)

const userColumns = "id, email, password, active, confirmed_at, username, about"

type UserDB struct {
	*sqlx.DB
	dialect dialect
}

func NewUserDB(db *sqlx.DB) *UserDB {
	return &UserDB{
		DB:      db,
		dialect: dialectOf(db),
	}
}

func (db *UserDB) CountUsers() (int, error) {
	var count int
	return count, db.Get(&count, "SELECT COUNT(*) FROM users")
}

func (db *UserDB) GetAllUsers(limit, offset int) ([]*core.User, error) {
	var users = []*core.User{}
	return users, db.Select(&users, db.Rebind("SELECT "+userColumns+" FROM users ORDER BY email LIMIT ? OFFSET ?"), limit, offset)
}

func (db *UserDB) GetUser(id int) (*core.User, error) {
	var u = &core.User{}
	if err := db.Get(u, db.Rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id); err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// GetUserByEmail expects a normalized email address.
func (db *UserDB) GetUserByEmail(email string) (*core.User, error) {
	var u = &core.User{}
	if err := db.Get(u, db.Rebind("SELECT "+userColumns+" FROM users WHERE email = ?"), email); err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// InsertUser inserts the user and its role memberships in one transaction.
func (db *UserDB) InsertUser(u *core.User, roleIDs []int) error {

	tx, err := db.Beginx()
	if err != nil {
		return err
	}

	id, err := insertID(tx, db.dialect,
		"INSERT INTO users (email, password, active, confirmed_at, username, about) VALUES (?, ?, ?, ?, ?, ?)",
		u.Email, u.Password, u.Active, u.ConfirmedAt, u.Username, u.About)
	if err != nil {
		tx.Rollback()
		return err
	}

	for _, roleID := range roleIDs {
		if _, err := tx.Exec(tx.Rebind("INSERT INTO roles_users (user_id, role_id) VALUES (?, ?)"), id, roleID); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	u.ID = id
	return nil
}

func (db *UserDB) UpdateUser(u *core.User) error {
	return requireAffected(db.Exec(db.Rebind("UPDATE users SET username = ?, about = ?, active = ? WHERE id = ?"), u.Username, u.About, u.Active, u.ID))
}

// SaveUser updates the user row and replaces its role memberships in one transaction.
func (db *UserDB) SaveUser(u *core.User, roleIDs []int) error {

	tx, err := db.Beginx()
	if err != nil {
		return err
	}

	// RowsAffected is not checked, mysql reports zero if nothing has changed
	if _, err := tx.Exec(tx.Rebind("UPDATE users SET password = ?, username = ?, about = ?, active = ? WHERE id = ?"), u.Password, u.Username, u.About, u.Active, u.ID); err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec(tx.Rebind("DELETE FROM roles_users WHERE user_id = ?"), u.ID); err != nil {
		tx.Rollback()
		return err
	}

	for _, roleID := range roleIDs {
		if _, err := tx.Exec(tx.Rebind("INSERT INTO roles_users (user_id, role_id) VALUES (?, ?)"), u.ID, roleID); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}
