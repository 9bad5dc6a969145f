package frontend

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/util"
)

var postTmpl = tmpl(`
	<article>
		<h1>{{ .Post.Title }}</h1>
		<p class="text-muted">
			{{ .FormatDateTime .Post.CreatedAt }}
			{{ with .Post.Author }} &middot; {{ . }}{{ end }}
		</p>
		{{ Markdown .Post.Body }}
	</article>`)

type postData struct {
	*context
	Post *core.Post
}

func post(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	id, ok := util.ParseID(params.ByName("id"))
	if !ok {
		return core.ErrNotFound
	}

	p, err := ctx.db.GetPost(id)
	if err != nil {
		return err
	}

	return ctx.Render(postTmpl, &postData{
		context: ctx,
		Post:    p,
	})
}

var newPostTmpl = tmpl(`<h1>New post</h1>

	{{ with .FormError }}
		<div class="alert alert-danger" role="alert">{{ . }}</div>
	{{ end }}

	<form method="post">
		<input type="hidden" name="{{ .CSRFField }}" value="{{ .CSRFToken }}">
		<div class="form-group">
			<label for="title">Title</label>
			<input type="text" class="form-control{{ if .Errors.title }} is-invalid{{ end }}" id="title" name="title" value="{{ .Form.Title }}">
			{{ with .Errors.title }}<div class="invalid-feedback">{{ . }}</div>{{ end }}
		</div>
		<div class="form-group">
			<label for="body">Body</label>
			<textarea class="form-control{{ if .Errors.body }} is-invalid{{ end }}" id="body" name="body" rows="12">{{ .Form.Body }}</textarea>
			{{ with .Errors.body }}<div class="invalid-feedback">{{ . }}</div>{{ end }}
		</div>
		<button type="submit" class="btn btn-primary" name="submit">Submit</button>
	</form>`)

type postForm struct {
	Title string `form:"title" validate:"notblank"`
	Body  string `form:"body" validate:"notblank"`
}

type newPostData struct {
	*context
	Form      *postForm
	Errors    core.FieldErrors
	FormError string
}

// newPost is guarded by the admin and publisher roles.
// A duplicate title is not caught here, it fails in the database and results in an internal server error.
func newPost(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var data = &newPostData{
		context: ctx,
		Form:    &postForm{},
	}

	if req.Method == http.MethodPost {

		data.Form.Title = req.PostFormValue("title")
		data.Form.Body = req.PostFormValue("body")

		if err := ctx.CheckCSRF(); err != nil {
			data.FormError = ctx.Messages.Get("csrf-invalid")
			return ctx.Render(newPostTmpl, data)
		}

		var err error
		data.Errors, err = ctx.ValidateForm(data.Form)
		if err != nil {
			return err
		}

		if data.Errors == nil {
			p, err := ctx.db.CreatePost(ctx.User, data.Form.Title, data.Form.Body)
			if err != nil {
				return err
			}
			ctx.Redirect("/posts/id/%d", p.ID)
			return nil
		}
	}

	return ctx.Render(newPostTmpl, data)
}
