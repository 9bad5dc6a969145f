package auth

import (
	"sort"
	"strings"
)

const (
	Admin     = "admin"
	Publisher = "publisher"
	User      = "user"
)

// Vocabulary is the fixed set of role names which is seeded at deployment.
var Vocabulary = []string{Admin, Publisher, User}

// NormalizeRole trims and lower-cases a role name.
func NormalizeRole(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// RoleSet is the set of role names held by a user.
type RoleSet map[string]struct{}

func NewRoleSet(names ...string) RoleSet {
	var set = make(RoleSet, len(names))
	for _, name := range names {
		set[NormalizeRole(name)] = struct{}{}
	}
	return set
}

func (set RoleSet) Has(name string) bool {
	_, ok := set[NormalizeRole(name)]
	return ok
}

// HasAny returns true if the set contains at least one of the given names.
func (set RoleSet) HasAny(names ...string) bool {
	for _, name := range names {
		if set.Has(name) {
			return true
		}
	}
	return false
}

// Names returns the role names in alphabetical order.
func (set RoleSet) Names() []string {
	var names = make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// A Guard lists the roles which are accepted. The zero Guard accepts everyone.
type Guard []string

// Public is the guard of routes without restrictions.
var Public Guard

// RequireRoles returns a guard which accepts any of the given roles.
func RequireRoles(names ...string) Guard {
	return Guard(names)
}

// Allows returns whether a request may pass.
// loggedIn must be false for anonymous requests, their roles are ignored.
func (g Guard) Allows(loggedIn bool, roles RoleSet) bool {
	if len(g) == 0 {
		return true
	}
	if !loggedIn {
		return false
	}
	return roles.HasAny(g...)
}
