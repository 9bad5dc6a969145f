package backend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
)

var postTmpl = tmpl(`<h1>Post &raquo;{{ .Selected.Title }}&laquo;</h1>

	<p class="text-muted">
		<a href="{{ .Href "/posts/id/" }}{{ .Selected.ID }}" target="_blank">View</a>
		&middot; created {{ .FormatDateTime .Selected.CreatedAt }}{{ with .Selected.Author }} by {{ . }}{{ end }}
		{{ if .Selected.LastEdit.Valid }}&middot; last edit {{ .FormatDateTime .Selected.LastEdit.Int64 }}{{ end }}
	</p>

	<form method="post">
		<input type="hidden" name="{{ .CSRFField }}" value="{{ .CSRFToken }}">
		<div class="form-group">
			<label for="title">Title</label>
			<input type="text" class="form-control{{ if .Errors.title }} is-invalid{{ end }}" id="title" name="title" value="{{ .Form.Title }}">
			{{ with .Errors.title }}<div class="invalid-feedback">{{ . }}</div>{{ end }}
		</div>
		<div class="form-group">
			<label for="body">Body</label>
			<textarea class="form-control{{ if .Errors.body }} is-invalid{{ end }}" id="body" name="body" rows="20">{{ .Form.Body }}</textarea>
			{{ with .Errors.body }}<div class="invalid-feedback">{{ . }}</div>{{ end }}
		</div>
		<button type="submit" class="btn btn-primary" name="save">Save</button>
		<button type="submit" class="btn btn-danger float-right" name="delete" value="1" onclick="return confirm('Delete this post?');">Delete</button>
	</form>`)

type postForm struct {
	Title string `form:"title" validate:"notblank"`
	Body  string `form:"body" validate:"notblank"`
}

type postData struct {
	*context
	Selected *core.Post
	Form     *postForm
	Errors   core.FieldErrors
}

func post(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	selectedID, err := idParam(params)
	if err != nil {
		return err
	}

	selected, err := ctx.db.GetPost(selectedID)
	if err != nil {
		return err
	}

	var data = &postData{
		context:  ctx,
		Selected: selected,
		Form: &postForm{
			Title: selected.Title,
			Body:  selected.Body,
		},
	}

	if req.Method == http.MethodPost {

		if req.PostFormValue("delete") != "" {
			if err := ctx.db.DeletePost(selected.ID); err != nil {
				return err
			}
			ctx.Success("%s", ctx.Messages.Get("deleted"))
			ctx.Redirect("/posts")
			return nil
		}

		data.Form.Title = req.PostFormValue("title")
		data.Form.Body = req.PostFormValue("body")

		data.Errors, err = ctx.ValidateForm(data.Form)
		if err != nil {
			return err
		}

		if data.Errors == nil {
			if err := ctx.db.EditPost(selected, data.Form.Title, data.Form.Body); err != nil {
				return err // duplicate title is an internal server error, like in the frontend
			}
			ctx.Success("%s", ctx.Messages.Get("saved"))
			ctx.Redirect("/post/%d", selected.ID)
			return nil
		}
	}

	return ctx.Render(postTmpl, data)
}
