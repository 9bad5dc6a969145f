// Package sqldb implements the stores of package core with SQL databases. It supports sqlite3, mysql and postgres.
package sqldb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wansing/blog/core"
	"github.com/xo/dburl"
)

type dialect struct {
	autoIncrement string // primary key column definition
	inlineIndexes bool   // CREATE INDEX IF NOT EXISTS is not supported
	returning     bool   // LastInsertId is not supported
}

func dialectOf(db *sqlx.DB) dialect {
	switch db.DriverName() {
	case "mysql":
		return dialect{
			autoIncrement: "INT NOT NULL AUTO_INCREMENT PRIMARY KEY",
			inlineIndexes: true,
		}
	case "pgx", "postgres":
		return dialect{
			autoIncrement: "SERIAL PRIMARY KEY",
			returning:     true,
		}
	default:
		return dialect{
			autoIncrement: "INTEGER PRIMARY KEY",
		}
	}
}

// Open parses a database url (see github.com/xo/dburl), connects and pings the database.
// Postgres urls are served by the pgx driver.
func Open(rawURL string) (*sqlx.DB, error) {

	dbURL, err := dburl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse database url: %w", err)
	}

	var driver = dbURL.Driver
	if driver == "postgres" {
		driver = "pgx"
	}

	db, err := sqlx.Open(driver, dbURL.DSN)
	if err != nil {
		return nil, fmt.Errorf("could not open sql database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not ping sql database: %w", err)
	}

	return db, nil
}

// CreateTables creates the tables users, roles, roles_users and posts if they don't exist.
func CreateTables(db *sqlx.DB) error {

	var d = dialectOf(db)

	var postIndexes = ""
	if d.inlineIndexes {
		postIndexes = `,
			INDEX ix_posts_created_at (created_at),
			INDEX ix_posts_last_edit (last_edit)`
	}

	var statements = []string{
		`CREATE TABLE IF NOT EXISTS users (
			id ` + d.autoIncrement + `,
			email VARCHAR(255) NOT NULL,
			password VARCHAR(255) NOT NULL,
			active BOOLEAN NOT NULL,
			confirmed_at BIGINT,
			username VARCHAR(255) NOT NULL,
			about TEXT NOT NULL,
			UNIQUE(email)
		)`,
		`CREATE TABLE IF NOT EXISTS roles (
			id ` + d.autoIncrement + `,
			name VARCHAR(80) NOT NULL,
			description VARCHAR(255) NOT NULL,
			UNIQUE(name)
		)`,
		`CREATE TABLE IF NOT EXISTS roles_users (
			user_id INTEGER NOT NULL REFERENCES users(id),
			role_id INTEGER NOT NULL REFERENCES roles(id),
			PRIMARY KEY (user_id, role_id)
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id ` + d.autoIncrement + `,
			title VARCHAR(255) NOT NULL,
			body TEXT NOT NULL,
			created_at BIGINT NOT NULL,
			last_edit BIGINT,
			author_id INTEGER REFERENCES users(id),
			UNIQUE(title)` + postIndexes + `
		)`,
	}

	if !d.inlineIndexes {
		statements = append(statements,
			`CREATE INDEX IF NOT EXISTS ix_posts_created_at ON posts (created_at)`,
			`CREATE INDEX IF NOT EXISTS ix_posts_last_edit ON posts (last_edit)`,
		)
	}

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

// insertID executes an INSERT statement with "?" placeholders and returns the id of the new row.
func insertID(tx *sqlx.Tx, d dialect, query string, args ...interface{}) (int, error) {
	if d.returning {
		var id int
		err := tx.QueryRowx(tx.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}
	result, err := tx.Exec(tx.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	id, err := result.LastInsertId()
	return int(id), err
}

// notFound translates sql.ErrNoRows to core.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	return err
}

// requireAffected returns core.ErrNotFound if no row has been affected.
func requireAffected(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return core.ErrNotFound
	}
	return nil
}
