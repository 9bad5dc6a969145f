package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	t.Parallel()

	var postAuthors = RequireRoles(Admin, Publisher)

	testCases := []struct {
		name     string
		guard    Guard
		loggedIn bool
		roles    RoleSet
		allowed  bool
	}{
		{"public anonymous", Public, false, nil, true},
		{"public logged in", Public, true, NewRoleSet(User), true},
		{"anonymous", postAuthors, false, nil, false},
		{"anonymous with stale roles", postAuthors, false, NewRoleSet(Admin), false},
		{"no roles", postAuthors, true, NewRoleSet(), false},
		{"user", postAuthors, true, NewRoleSet(User), false},
		{"publisher", postAuthors, true, NewRoleSet(Publisher), true},
		{"admin", postAuthors, true, NewRoleSet(Admin, User), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.guard.Allows(tc.loggedIn, tc.roles))
		})
	}
}

func TestRoleSet(t *testing.T) {
	set := NewRoleSet(" Publisher", "admin")
	assert.True(t, set.Has("publisher"))
	assert.True(t, set.Has("ADMIN"))
	assert.False(t, set.Has(User))
	assert.Equal(t, []string{"admin", "publisher"}, set.Names())
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", hash)

	assert.NoError(t, CheckPassword(hash, "secret"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrAuth)
	assert.ErrorIs(t, CheckPassword("", ""), ErrAuth)

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = HashPassword(strings.Repeat("x", MaxPasswordBytes))
	assert.NoError(t, err)

	_, err = HashPassword(strings.Repeat("x", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}
