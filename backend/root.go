package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
)

var rootTmpl = tmpl(`<h1>Dashboard</h1>

	<table class="table">
		<tbody>
			<tr>
				<th><a href="posts">Posts</a></th>
				<td>{{ .NumPosts }}</td>
			</tr>
			<tr>
				<th><a href="users">Users</a></th>
				<td>{{ .NumUsers }}</td>
			</tr>
			<tr>
				<th><a href="roles">Roles</a></th>
				<td>{{ len .Roles }}</td>
			</tr>
		</tbody>
	</table>

	<p><a class="btn btn-primary" href="{{ .Href "/posts/new" }}">New post</a></p>`)

type rootData struct {
	*context
	NumPosts int
	NumUsers int
	Roles    []*core.Role
}

func root(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	numPosts, err := ctx.db.CountPosts()
	if err != nil {
		return err
	}

	numUsers, err := ctx.db.CountUsers()
	if err != nil {
		return err
	}

	roles, err := ctx.db.GetAllRoles()
	if err != nil {
		return err
	}

	return ctx.Render(rootTmpl, &rootData{
		context:  ctx,
		NumPosts: numPosts,
		NumUsers: numUsers,
		Roles:    roles,
	})
}
