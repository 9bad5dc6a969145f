/*
Package auth is for authorization. It contains the role vocabulary, role sets and the guard which decides whether a set of roles may pass.

# Roles

A role is a named permission group attached to users.
The vocabulary is fixed and seeded once per deployment:

	admin      may use the admin panel and write posts
	publisher  may write posts
	user       may log in, nothing else

A guard lists the roles it accepts. A request passes if its user holds any of them.
An empty guard accepts everyone, including anonymous requests.
*/
package auth
