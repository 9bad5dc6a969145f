package core

import (
	"github.com/wansing/blog/auth"
)

// A NavItem is an entry of the navigation bar. Items without Href are displayed as text.
type NavItem struct {
	Label string
	Href  string
	Right bool
	Items []NavItem // a group, rendered in order
}

// Navigation builds the navigation bar from the authentication state and the roles of a user.
// Anonymous requests pass a nil user.
func Navigation(user *User, roles auth.RoleSet) []NavItem {

	var items = []NavItem{
		{Label: "Home", Href: "/"},
	}

	if user == nil {
		return append(items, NavItem{Label: "Login", Href: "/security/login", Right: true})
	}

	var group = []NavItem{
		{Label: user.Email},
	}
	if roles.Has(auth.Admin) {
		group = append(group, NavItem{Label: "Admin", Href: "/admin/"})
	}
	group = append(group, NavItem{Label: "Logout", Href: "/security/logout"})

	return append(items, NavItem{Right: true, Items: group})
}

// PrefixNav returns a copy of items with base prepended to every link.
func PrefixNav(items []NavItem, base string) []NavItem {
	if base == "" {
		return items
	}
	var prefixed = make([]NavItem, len(items))
	for i, item := range items {
		if item.Href != "" {
			item.Href = base + item.Href
		}
		if item.Items != nil {
			item.Items = PrefixNav(item.Items, base)
		}
		prefixed[i] = item
	}
	return prefixed
}
