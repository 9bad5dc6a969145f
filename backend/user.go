package backend

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
)

var userTmpl = tmpl(`<h1>User &raquo;{{ .Selected.Email }}&laquo;</h1>

	<form method="post">

		<input type="hidden" name="{{ .CSRFField }}" value="{{ .CSRFToken }}">

		<div class="form-group row">
			<label class="col-sm-3 col-form-label" for="username">Username</label>
			<div class="col-sm-9">
				<input type="text" class="form-control" id="username" name="username" value="{{ .Selected.Username }}">
			</div>
		</div>

		<div class="form-group row">
			<label class="col-sm-3 col-form-label" for="about">About</label>
			<div class="col-sm-9">
				<textarea class="form-control" id="about" name="about" rows="4">{{ .Selected.About }}</textarea>
			</div>
		</div>

		<div class="form-group row">
			<div class="col-sm-3"></div>
			<div class="col-sm-9">
				<div class="form-check">
					<input class="form-check-input" type="checkbox" id="active" name="active" value="1"{{ if .Selected.Active }} checked{{ end }}>
					<label class="form-check-label" for="active">Active</label>
				</div>
			</div>
		</div>

		<div class="form-group row">
			<div class="col-sm-3 col-form-label">Roles</div>
			<div class="col-sm-9">
				{{ range .AllRoles }}
					<div class="form-check">
						<input class="form-check-input" type="checkbox" id="role-{{ .ID }}" name="role" value="{{ .ID }}"{{ if $.HasRole .ID }} checked{{ end }}>
						<label class="form-check-label" for="role-{{ .ID }}">{{ .Name }}</label>
					</div>
				{{ end }}
			</div>
		</div>

		<h2>Change Password</h2>

		<div class="form-group row">
			<label class="col-sm-3 col-form-label" for="new1">New password</label>
			<div class="col-sm-9">
				<input type="password" class="form-control" id="new1" name="new1" autocomplete="new-password">
			</div>
		</div>

		<div class="form-group row">
			<label class="col-sm-3 col-form-label" for="new2">Repeat new password</label>
			<div class="col-sm-9">
				<input type="password" class="form-control" id="new2" name="new2" autocomplete="new-password">
			</div>
		</div>

		<button type="submit" class="btn btn-primary" name="submit">Save</button>

	</form>`)

type userData struct {
	*context
	Selected *core.User
	AllRoles []*core.Role
	roleIDs  map[int]struct{}
}

func (data *userData) HasRole(id int) bool {
	_, ok := data.roleIDs[id]
	return ok
}

func user(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	selectedID, err := idParam(params)
	if err != nil {
		return err
	}

	selected, err := ctx.db.GetUser(selectedID)
	if err != nil {
		return err
	}

	allRoles, err := ctx.db.GetAllRoles()
	if err != nil {
		return err
	}

	if req.Method == http.MethodPost {

		if err := req.ParseForm(); err != nil {
			return err
		}

		var new1 = req.PostFormValue("new1")
		var new2 = req.PostFormValue("new2")

		if new1 != new2 {
			ctx.Danger("%s", ctx.Messages.Get("passwords-mismatch"))
			ctx.Redirect("/user/%d", selected.ID)
			return nil
		}

		var roleIDs = []int{}
		var grantsAdmin = false
		for _, value := range req.PostForm["role"] {
			id, err := strconv.Atoi(value)
			if err != nil {
				return core.ErrNotFound
			}
			for _, r := range allRoles {
				if r.ID == id {
					roleIDs = append(roleIDs, id)
					if r.Name == auth.Admin {
						grantsAdmin = true
					}
				}
			}
		}

		var active = req.PostFormValue("active") != ""

		// admins must not lock themselves out
		if selected.ID == ctx.User.ID && (!grantsAdmin || !active) {
			ctx.Danger("%s", ctx.Messages.Get("own-admin"))
			ctx.Redirect("/user/%d", selected.ID)
			return nil
		}

		selected.Username = strings.TrimSpace(req.PostFormValue("username"))
		selected.About = strings.TrimSpace(req.PostFormValue("about"))
		selected.Active = active

		var password = ""
		if strings.TrimSpace(new1) != "" {
			password = new1
		}

		err := ctx.db.EditUser(selected, roleIDs, password)
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrPasswordTooLong):
			ctx.Danger(ctx.Messages.Get("password-too-long"), auth.MaxPasswordBytes)
			ctx.Redirect("/user/%d", selected.ID)
			return nil
		default:
			return err
		}

		ctx.Success(ctx.Messages.Get("user-saved"), selected.Email)
		ctx.Redirect("/user/%d", selected.ID)
		return nil
	}

	roles, err := ctx.db.GetRolesOf(selected.ID)
	if err != nil {
		return err
	}

	var roleIDs = make(map[int]struct{}, len(roles))
	for _, r := range roles {
		roleIDs[r.ID] = struct{}{}
	}

	return ctx.Render(userTmpl, &userData{
		context:  ctx,
		Selected: selected,
		AllRoles: allRoles,
		roleIDs:  roleIDs,
	})
}
