package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wansing/blog/auth"
)

func labels(items []NavItem) []string {
	var result = []string{}
	for _, item := range items {
		if item.Items != nil {
			result = append(result, "[")
			result = append(result, labels(item.Items)...)
			result = append(result, "]")
			continue
		}
		result = append(result, item.Label)
	}
	return result
}

func TestNavigation(t *testing.T) {
	t.Parallel()

	var alice = &User{ID: 1, Email: "alice@example.com"}

	testCases := []struct {
		name     string
		user     *User
		roles    auth.RoleSet
		expected []string
	}{
		{"anonymous", nil, nil, []string{"Home", "Login"}},
		{"user", alice, auth.NewRoleSet(auth.User), []string{"Home", "[", "alice@example.com", "Logout", "]"}},
		{"publisher", alice, auth.NewRoleSet(auth.Publisher), []string{"Home", "[", "alice@example.com", "Logout", "]"}},
		{"admin", alice, auth.NewRoleSet(auth.Admin), []string{"Home", "[", "alice@example.com", "Admin", "Logout", "]"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, labels(Navigation(tc.user, tc.roles)))
		})
	}
}

func TestNavigationAlignment(t *testing.T) {
	anonymous := Navigation(nil, nil)
	assert.False(t, anonymous[0].Right)
	assert.True(t, anonymous[1].Right)
	assert.Equal(t, "/security/login", anonymous[1].Href)

	admin := Navigation(&User{Email: "root@example.com"}, auth.NewRoleSet(auth.Admin))
	assert.True(t, admin[1].Right)
	assert.Empty(t, admin[1].Items[0].Href, "email is display-only")
	assert.Equal(t, "/admin/", admin[1].Items[1].Href)
	assert.Equal(t, "/security/logout", admin[1].Items[2].Href)
}

func TestPrefixNav(t *testing.T) {
	items := PrefixNav(Navigation(&User{Email: "root@example.com"}, auth.NewRoleSet(auth.Admin)), "/blog")
	assert.Equal(t, "/blog/", items[0].Href)
	assert.Equal(t, "", items[1].Items[0].Href)
	assert.Equal(t, "/blog/admin/", items[1].Items[1].Href)

	original := Navigation(nil, nil)
	PrefixNav(original, "/blog")
	assert.Equal(t, "/", original[0].Href, "input is not modified")
}
