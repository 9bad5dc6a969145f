package backend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/util"
)

var usersTmpl = tmpl(`<h1>Users</h1>

	<table class="table table-sm">
		<thead>
			<tr>
				<th>ID</th>
				<th>Email</th>
				<th>Username</th>
				<th>Active</th>
			</tr>
		</thead>
		<tbody>
			{{ range .Users }}
				<tr>
					<td>{{ .ID }}</td>
					<td><a href="user/{{ .ID }}">{{ .Email }}</a></td>
					<td>{{ .Username }}</td>
					<td>{{ if .Active }}yes{{ else }}no{{ end }}</td>
				</tr>
			{{ end }}
		</tbody>
	</table>

	` + pagination + `

	<h2>Create User</h2>

	<form method="post" class="form-inline">
		<input type="hidden" name="{{ .CSRFField }}" value="{{ .CSRFToken }}">
		<div class="form-group">
			<input type="email" class="form-control" name="email" placeholder="Email address">
			<button type="submit" class="btn btn-primary mx-sm-3" name="submit_add">Create user</button>
		</div>
	</form>`)

type usersData struct {
	*context
	Page     int
	NumPages int
	Path     string
	Users    []*core.User
}

func (data *usersData) PageLinks() []util.PageLink {
	return util.Pages(data.Page, data.NumPages)
}

func users(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	if req.Method == http.MethodPost {

		u, err := ctx.db.InsertUser(req.PostFormValue("email"), "")
		switch {
		case err == nil:
			ctx.Success(ctx.Messages.Get("user-created"), u.Email)
			ctx.Redirect("/user/%d", u.ID)
		case errors.Is(err, core.ErrEmptyEmail):
			ctx.Danger("%s", ctx.Messages.Get("email-required"))
			ctx.Redirect("/users")
		default:
			return err
		}
		return nil
	}

	var perPage = ctx.db.Config.PageSize

	count, err := ctx.db.CountUsers()
	if err != nil {
		return err
	}

	var numPages = util.NumPages(count, perPage)
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	page = util.ClampPage(page, numPages)

	list, err := ctx.db.GetAllUsers(perPage, (page-1)*perPage)
	if err != nil {
		return err
	}

	return ctx.Render(usersTmpl, &usersData{
		context:  ctx,
		Page:     page,
		NumPages: numPages,
		Path:     "users",
		Users:    list,
	})
}
