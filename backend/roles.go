package backend

import (
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
)

var rolesTmpl = tmpl(`<h1>Roles</h1>

	<table class="table table-sm">
		<thead>
			<tr>
				<th>Name</th>
				<th>Description</th>
			</tr>
		</thead>
		<tbody>
			{{ range .Roles }}
				<tr>
					<td><a href="role/{{ .ID }}">{{ .Name }}</a></td>
					<td>{{ .Description }}</td>
				</tr>
			{{ end }}
		</tbody>
	</table>

	<h2>Create Role</h2>

	<form method="post" class="form-inline">
		<input type="hidden" name="{{ .CSRFField }}" value="{{ .CSRFToken }}">
		<div class="form-group">
			<input type="text" class="form-control mr-sm-2" name="name" placeholder="Name">
			<input type="text" class="form-control" name="description" placeholder="Description">
			<button type="submit" class="btn btn-primary mx-sm-3" name="submit_add">Create role</button>
		</div>
	</form>`)

type rolesData struct {
	*context
	Roles []*core.Role
}

func roles(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if req.Method == http.MethodPost {

		r, err := ctx.db.InsertRole(req.PostFormValue("name"), strings.TrimSpace(req.PostFormValue("description")))
		switch {
		case err == nil:
			ctx.Success(ctx.Messages.Get("role-created"), r.Name)
		case errors.Is(err, core.ErrEmptyRole):
			ctx.Danger("%s", ctx.Messages.Get("role-name-required"))
		default:
			return err
		}
		ctx.Redirect("/roles")
		return nil
	}

	list, err := ctx.db.GetAllRoles()
	if err != nil {
		return err
	}

	return ctx.Render(rolesTmpl, &rolesData{
		context: ctx,
		Roles:   list,
	})
}
