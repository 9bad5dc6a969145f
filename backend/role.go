package backend

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
)

var roleTmpl = tmpl(`<h1>Role &raquo;{{ .Selected.Name }}&laquo;</h1>

	<form method="post">
		<input type="hidden" name="{{ .CSRFField }}" value="{{ .CSRFToken }}">
		<div class="form-group">
			<label for="description">Description</label>
			<input type="text" class="form-control" id="description" name="description" value="{{ .Selected.Description }}">
		</div>
		<button type="submit" class="btn btn-primary" name="submit">Save</button>
	</form>`)

type roleData struct {
	*context
	Selected *core.Role
}

func role(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	selectedID, err := idParam(params)
	if err != nil {
		return err
	}

	selected, err := ctx.db.GetRole(selectedID)
	if err != nil {
		return err
	}

	if req.Method == http.MethodPost {

		selected.Description = strings.TrimSpace(req.PostFormValue("description"))
		if err := ctx.db.UpdateRole(selected); err != nil {
			return err
		}

		ctx.Success(ctx.Messages.Get("role-saved"), selected.Name)
		ctx.Redirect("/role/%d", selected.ID)
		return nil
	}

	return ctx.Render(roleTmpl, &roleData{
		context:  ctx,
		Selected: selected,
	})
}
