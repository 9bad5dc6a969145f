package core_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/sqldb/sqldbtest"
)

func TestLoginUser(t *testing.T) {
	db := sqldbtest.NewCoreDB(t, nil)
	users := sqldbtest.Seed(t, db, auth.Publisher)

	u, err := db.LoginUser("PUBLISHER@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, users[auth.Publisher].ID, u.ID)

	_, err = db.LoginUser("publisher@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrAuth)

	_, err = db.LoginUser("nobody@example.com", "secret")
	assert.ErrorIs(t, err, auth.ErrAuth)

	u.Active = false
	require.NoError(t, db.UpdateUser(u))
	_, err = db.LoginUser("publisher@example.com", "secret")
	assert.ErrorIs(t, err, auth.ErrAuth, "inactive users can't log in")
}

func TestInsertUserWithoutPassword(t *testing.T) {
	db := sqldbtest.NewCoreDB(t, nil)

	u, err := db.InsertUser("new@example.com", "")
	require.NoError(t, err)
	assert.Empty(t, u.Password)

	_, err = db.LoginUser("new@example.com", "")
	assert.ErrorIs(t, err, auth.ErrAuth)

	require.NoError(t, db.EditUser(u, nil, "pw"))
	_, err = db.LoginUser("new@example.com", "pw")
	assert.NoError(t, err)

	_, err = db.InsertUser("  ", "")
	assert.ErrorIs(t, err, core.ErrEmptyEmail)
}

func TestGrant(t *testing.T) {
	db := sqldbtest.NewCoreDB(t, nil)
	users := sqldbtest.Seed(t, db, auth.User)
	u := users[auth.User]

	publisher, err := db.GetRoleByName(auth.Publisher)
	require.NoError(t, err)

	require.NoError(t, db.Grant(u, publisher))
	require.NoError(t, db.Grant(u, publisher))

	set, err := db.RoleSetOf(u)
	require.NoError(t, err)
	assert.Equal(t, []string{auth.Publisher, auth.User}, set.Names())
}

func TestCreateAndEditPost(t *testing.T) {
	db := sqldbtest.NewCoreDB(t, nil)
	users := sqldbtest.Seed(t, db, auth.Publisher)

	p, err := db.CreatePost(users[auth.Publisher], "Hello", "World")
	require.NoError(t, err)
	assert.NotZero(t, p.CreatedAt)

	got, err := db.GetPost(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "publisher@example.com", got.Author())
	assert.False(t, got.LastEdit.Valid)

	require.NoError(t, db.EditPost(got, "Hello", "Changed"))
	got, err = db.GetPost(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", got.Body)
	assert.True(t, got.LastEdit.Valid)
	assert.Equal(t, p.CreatedAt, got.CreatedAt, "creation time is immutable")

	_, err = db.CreatePost(users[auth.Publisher], "Hello", "Duplicate")
	assert.Error(t, err)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 403, core.StatusCode(core.ErrForbidden))
	assert.Equal(t, 404, core.StatusCode(core.ErrNotFound))
	assert.Equal(t, 500, core.StatusCode(assert.AnError))
}

func TestEditUser(t *testing.T) {
	db := sqldbtest.NewCoreDB(t, nil)
	users := sqldbtest.Seed(t, db, auth.Publisher)
	u := users[auth.Publisher]

	userRole, err := db.GetRoleByName(auth.User)
	require.NoError(t, err)

	u.Username = "pub"
	require.NoError(t, db.EditUser(u, []int{userRole.ID}, "changed"))

	_, err = db.LoginUser("publisher@example.com", "changed")
	assert.NoError(t, err)

	t.Run("too long password changes nothing", func(t *testing.T) {
		var edited = *u
		edited.Username = "other"
		edited.Active = false
		err := db.EditUser(&edited, nil, strings.Repeat("x", auth.MaxPasswordBytes+8))
		assert.ErrorIs(t, err, auth.ErrPasswordTooLong)

		got, err := db.GetUser(u.ID)
		require.NoError(t, err)
		assert.Equal(t, "pub", got.Username)
		assert.True(t, got.Active)

		roles, err := db.RoleSetOf(got)
		require.NoError(t, err)
		assert.Equal(t, []string{auth.User}, roles.Names())
	})

	t.Run("empty password keeps the old one", func(t *testing.T) {
		require.NoError(t, db.EditUser(u, []int{userRole.ID}, ""))
		_, err := db.LoginUser("publisher@example.com", "changed")
		assert.NoError(t, err)
	})
}
