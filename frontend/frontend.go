// Package frontend serves the public pages of the blog, post authoring and login.
package frontend

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/render"
)

// we need the CoreDB in the handlers
type context struct {
	*core.Request
	db *core.CoreDB
}

type handlerFunc func(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error

// middleware creates the request context and applies the guard before f is called.
func middleware(db *core.CoreDB, guard auth.Guard, f handlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		request, err := db.NewRequest(w, req)
		if err != nil {
			request.Fail(err)
			return
		}

		var ctx = &context{
			Request: request,
			db:      db,
		}

		if err := ctx.Require(guard); err != nil {
			ctx.Fail(err)
			return
		}

		if err := f(w, req, ctx, params); err != nil {
			ctx.Fail(err)
		}
	}
}

// failHandler answers requests which no route matches.
func failHandler(db *core.CoreDB, err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		request, _ := db.NewRequest(w, req) // request is usable anyway
		request.Fail(err)
	})
}

// NewRouter returns the handler of the public routes. It expects the session to be loaded by db.SessionManager.
func NewRouter(db *core.CoreDB) http.Handler {

	var router = httprouter.New()

	var GETAndPOST = func(path string, handle httprouter.Handle) {
		router.GET(path, handle)
		router.POST(path, handle)
	}

	var postAuthors = auth.RequireRoles(auth.Admin, auth.Publisher)

	router.GET("/", middleware(db, auth.Public, index))
	router.GET("/posts/id/:id", middleware(db, auth.Public, post))
	GETAndPOST("/posts/new", middleware(db, postAuthors, newPost))
	GETAndPOST("/security/login", middleware(db, auth.Public, login))
	router.GET("/security/logout", middleware(db, auth.Public, logout))

	router.NotFound = failHandler(db, core.ErrNotFound)
	router.PanicHandler = func(w http.ResponseWriter, req *http.Request, v interface{}) {
		request, _ := db.NewRequest(w, req)
		request.Fail(fmt.Errorf("panic: %v", v))
	}

	return router
}

func tmpl(text string) *template.Template {
	t := template.Must(layoutTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

type teaserData struct {
	Text string
	More bool
}

func teaser(body string) teaserData {
	text, more := render.Teaser(body)
	return teaserData{text, more}
}

var layoutTmpl = template.Must(template.New("layout").Funcs(
	template.FuncMap{
		"Markdown": render.Markdown,
		"Teaser":   teaser,
	},
).Parse(`<!DOCTYPE html>
<html lang="{{ .Lang }}">
	<head>
		<meta charset="utf-8">
		<meta name="viewport" content="width=device-width, initial-scale=1, shrink-to-fit=no">
		<link rel="stylesheet" type="text/css" href="https://cdn.jsdelivr.net/npm/bootstrap@4.4.1/dist/css/bootstrap.min.css">
		<title>Blog</title>
	</head>
	<body>

		{{ define "navitem" }}
			<li class="nav-item">
				{{ if .Href }}
					<a class="nav-link" href="{{ .Href }}">{{ .Label }}</a>
				{{ else }}
					<span class="navbar-text mr-2">{{ .Label }}</span>
				{{ end }}
			</li>
		{{ end }}

		<nav class="navbar navbar-expand-md navbar-light bg-light">
			<a class="navbar-brand" href="{{ .Href "/" }}">Blog</a>
			<ul class="navbar-nav mr-auto">
				{{ range .Navigation }}
					{{ if not .Right }}{{ template "navitem" . }}{{ end }}
				{{ end }}
			</ul>
			<ul class="navbar-nav">
				{{ range .Navigation }}
					{{ if .Right }}
						{{ if .Items }}
							{{ range .Items }}{{ template "navitem" . }}{{ end }}
						{{ else }}
							{{ template "navitem" . }}
						{{ end }}
					{{ end }}
				{{ end }}
			</ul>
		</nav>

		<div class="container pt-3">
			{{ .RenderNotifications }}
			{{ template "content" . }}
		</div>
	</body>
</html>`))
