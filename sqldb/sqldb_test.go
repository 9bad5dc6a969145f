package sqldb_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/sqldb"
	"github.com/wansing/blog/sqldb/sqldbtest"
)

func TestCreateTablesIsIdempotent(t *testing.T) {
	db := sqldbtest.Open(t)
	assert.NoError(t, sqldb.CreateTables(db))
}

func TestPostDB(t *testing.T) {
	db := sqldbtest.Open(t)
	users := sqldb.NewUserDB(db)
	posts := sqldb.NewPostDB(db)

	author := &core.User{Email: "author@example.com", Username: "Author", Active: true}
	require.NoError(t, users.InsertUser(author, nil))

	first := &core.Post{
		Title:     "Hello",
		Body:      "World",
		CreatedAt: 1000,
		AuthorID:  sql.NullInt64{Int64: int64(author.ID), Valid: true},
	}
	require.NoError(t, posts.InsertPost(first))
	assert.NotZero(t, first.ID)

	got, err := posts.GetPost(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)
	assert.Equal(t, "World", got.Body)
	assert.Equal(t, int64(1000), got.CreatedAt)
	assert.False(t, got.LastEdit.Valid)
	assert.Equal(t, "Author", got.Author())

	t.Run("duplicate title", func(t *testing.T) {
		err := posts.InsertPost(&core.Post{Title: "Hello", Body: "again", CreatedAt: 2000})
		assert.Error(t, err)
		count, err := posts.CountPosts()
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("newest first", func(t *testing.T) {
		second := &core.Post{Title: "Second", Body: "Body", CreatedAt: 3000}
		require.NoError(t, posts.InsertPost(second))

		list, err := posts.GetPosts(10, 0)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Second", list[0].Title)
		assert.Equal(t, "", list[0].Author())

		list, err = posts.GetPosts(1, 1)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Hello", list[0].Title)
	})

	t.Run("update and delete", func(t *testing.T) {
		got.Title = "Hello again"
		got.LastEdit = sql.NullInt64{Int64: 5000, Valid: true}
		require.NoError(t, posts.UpdatePost(got))

		updated, err := posts.GetPost(got.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello again", updated.Title)
		assert.Equal(t, int64(5000), updated.LastEdit.Int64)

		require.NoError(t, posts.DeletePost(got.ID))
		_, err = posts.GetPost(got.ID)
		assert.ErrorIs(t, err, core.ErrNotFound)
		assert.ErrorIs(t, posts.DeletePost(got.ID), core.ErrNotFound)
	})
}

func TestUserAndRoleDB(t *testing.T) {
	db := sqldbtest.Open(t)
	users := sqldb.NewUserDB(db)
	roles := sqldb.NewRoleDB(db)

	admin := &core.Role{Name: auth.Admin}
	publisher := &core.Role{Name: auth.Publisher, Description: "writes posts"}
	require.NoError(t, roles.InsertRole(admin))
	require.NoError(t, roles.InsertRole(publisher))
	assert.Error(t, roles.InsertRole(&core.Role{Name: auth.Admin}), "role names are unique")

	u := &core.User{Email: "a@example.com", Active: true}
	require.NoError(t, users.InsertUser(u, []int{admin.ID}))
	assert.Error(t, users.InsertUser(&core.User{Email: "a@example.com"}, nil), "emails are unique")

	got, err := users.GetUserByEmail("a@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.Active)

	_, err = users.GetUser(12345)
	assert.ErrorIs(t, err, core.ErrNotFound)

	of, err := roles.GetRolesOf(u.ID)
	require.NoError(t, err)
	require.Len(t, of, 1)
	assert.Equal(t, auth.Admin, of[0].Name)

	require.NoError(t, roles.SetRolesOf(u.ID, []int{publisher.ID}))
	of, err = roles.GetRolesOf(u.ID)
	require.NoError(t, err)
	require.Len(t, of, 1)
	assert.Equal(t, "writes posts", of[0].Description)

	got.Username = "alice"
	got.Active = false
	require.NoError(t, users.UpdateUser(got))

	got, err = users.GetUser(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.False(t, got.Active)

	count, err := users.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInsertPostRollsBack(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	posts := sqldb.NewPostDB(sqlx.NewDb(mockDB, "sqlite3"))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO posts").
		WithArgs("Hello", "World", int64(1000), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("UNIQUE constraint failed: posts.title"))
	mock.ExpectRollback()

	var p = &core.Post{Title: "Hello", Body: "World", CreatedAt: 1000}
	assert.Error(t, posts.InsertPost(p))
	assert.Zero(t, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertPostCommits(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	posts := sqldb.NewPostDB(sqlx.NewDb(mockDB, "sqlite3"))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO posts").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	var p = &core.Post{Title: "Hello", Body: "World", CreatedAt: 1000}
	require.NoError(t, posts.InsertPost(p))
	assert.Equal(t, 7, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertPostReturningOnPostgres(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	posts := sqldb.NewPostDB(sqlx.NewDb(mockDB, "pgx"))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO posts \(title, body, created_at, last_edit, author_id\) VALUES \(\$1, \$2, \$3, \$4, \$5\) RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	var p = &core.Post{Title: "Hello", Body: "World", CreatedAt: 1000}
	require.NoError(t, posts.InsertPost(p))
	assert.Equal(t, 3, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUser(t *testing.T) {
	db := sqldbtest.Open(t)
	users := sqldb.NewUserDB(db)
	roles := sqldb.NewRoleDB(db)

	publisher := &core.Role{Name: auth.Publisher}
	require.NoError(t, roles.InsertRole(publisher))
	user := &core.Role{Name: auth.User}
	require.NoError(t, roles.InsertRole(user))

	u := &core.User{Email: "bob@example.com", Active: true}
	require.NoError(t, users.InsertUser(u, []int{publisher.ID}))

	u.Username = "bob"
	u.Active = false
	u.Password = "hash"
	require.NoError(t, users.SaveUser(u, []int{user.ID}))

	got, err := users.GetUser(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
	assert.False(t, got.Active)
	assert.Equal(t, "hash", got.Password)

	memberships, err := roles.GetRolesOf(u.ID)
	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, auth.User, memberships[0].Name)
}

func TestSaveUserRollsBack(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	users := sqldb.NewUserDB(sqlx.NewDb(mockDB, "sqlite3"))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET").
		WithArgs("hash", "bob", "", false, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM roles_users").WithArgs(5).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO roles_users").
		WithArgs(5, 99).
		WillReturnError(errors.New("FOREIGN KEY constraint failed"))
	mock.ExpectRollback()

	var u = &core.User{ID: 5, Email: "bob@example.com", Username: "bob", Password: "hash"}
	assert.Error(t, users.SaveUser(u, []int{99}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
