// Package sqldbtest provides sqlite3 backed CoreDBs for tests.
package sqldbtest

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/wansing/blog/config"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/sqldb"
)

// Open creates an empty sqlite3 database in a temporary directory and creates the tables.
func Open(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "blog.sqlite3")+"?_busy_timeout=5000&_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqldb.CreateTables(db))
	return db
}

// NewCoreDB returns a CoreDB on a fresh database with in-memory sessions.
// If cfg is nil, the default config with disabled CSRF protection is used.
func NewCoreDB(t testing.TB, cfg *config.Config) *core.CoreDB {
	t.Helper()

	if cfg == nil {
		cfg = config.Default()
		cfg.CSRF = false
	}
	if cfg.SecretKey == "" {
		cfg.SecretKey = "test-secret"
	}

	var db = Open(t)
	var coreDB = &core.CoreDB{
		Config: cfg,
		PostDB: sqldb.NewPostDB(db),
		RoleDB: sqldb.NewRoleDB(db),
		UserDB: sqldb.NewUserDB(db),
	}
	require.NoError(t, coreDB.Init(nil))
	return coreDB
}

// Seed seeds the roles and creates one user per given role with the password "secret".
// The email address of each user is <role>@example.com.
func Seed(t testing.TB, db *core.CoreDB, roles ...string) map[string]*core.User {
	t.Helper()

	require.NoError(t, db.SeedRoles())

	var users = make(map[string]*core.User, len(roles))
	for _, name := range roles {
		role, err := db.GetRoleByName(name)
		require.NoError(t, err)
		u, err := db.InsertUser(name+"@example.com", "secret", role.ID)
		require.NoError(t, err)
		users[name] = u
	}
	return users
}
