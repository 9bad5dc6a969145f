// Package backend is the admin panel. Every route requires the admin role.
package backend

import (
	"html/template"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/auth"
	"github.com/wansing/blog/core"
)

// we need the CoreDB in the backend
type context struct {
	*core.Request
	Prefix string // with trailing slash
	db     *core.CoreDB
}

type handlerFunc func(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error

// middleware applies the guard to every request and checks the CSRF token of every POST request.
func middleware(db *core.CoreDB, guard auth.Guard, f handlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {

		request, err := db.NewRequest(w, req)
		if err != nil {
			request.Fail(err)
			return
		}

		var ctx = &context{
			Request: request,
			Prefix:  db.Config.Base + "/admin/",
			db:      db,
		}

		if err := ctx.Require(guard); err != nil {
			ctx.Fail(err)
			return
		}

		if req.Method == http.MethodPost {
			if err := ctx.CheckCSRF(); err != nil {
				ctx.Danger("%s", ctx.Messages.Get("csrf-invalid"))
				ctx.Redirect("%s", req.URL.Path)
				return
			}
		}

		if err := f(w, req, ctx, params); err != nil {
			ctx.Fail(err)
		}
	}
}

// NewBackendRouter returns the handler of the admin panel. It must be mounted at Config.Base + "/admin" with util.HandlePrefix.
func NewBackendRouter(db *core.CoreDB) http.Handler {

	var router = httprouter.New()

	var admins = auth.RequireRoles(auth.Admin)

	var GET = func(path string, f handlerFunc) {
		router.GET(path, middleware(db, admins, f))
	}

	var GETAndPOST = func(path string, f handlerFunc) {
		router.GET(path, middleware(db, admins, f))
		router.POST(path, middleware(db, admins, f))
	}

	GET("/", root)
	GET("/posts", posts)
	GETAndPOST("/post/:id", post)
	GETAndPOST("/roles", roles)
	GETAndPOST("/role/:id", role)
	GETAndPOST("/users", users)
	GETAndPOST("/user/:id", user)

	// unknown routes are hidden from non-admins too
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		request, _ := db.NewRequest(w, req)
		if err := request.Require(admins); err != nil {
			request.Fail(err)
			return
		}
		request.Fail(core.ErrNotFound)
	})

	return router
}

func tmpl(text string) *template.Template {
	t := template.Must(backendTmpl.Clone())
	t = template.Must(t.Parse(`{{ define "content" }}` + text + `{{ end }}`))
	return t
}

// pagination is included by templates whose data has the methods NumPages and PageLinks, and the field Path
const pagination = `
	{{ if gt .NumPages 1 }}
		<nav>
			<ul class="pagination">
				{{ range .PageLinks }}
					{{ if .Gap }}<li class="page-item disabled"><span class="page-link">&hellip;</span></li>{{ end }}
					<li class="page-item{{ if .Current }} active{{ end }}">
						<a class="page-link" href="{{ $.Path }}?page={{ .Number }}">{{ .Number }}</a>
					</li>
				{{ end }}
			</ul>
		</nav>
	{{ end }}`

var backendTmpl = template.Must(template.New("backend").Funcs(
	template.FuncMap{
		"Excerpt": Excerpt,
	},
).Parse(`<!DOCTYPE html>
<html lang="{{ .Lang }}">
	<head>
		<base href="{{ .Prefix }}">
		<meta charset="utf-8">
		<link rel="stylesheet" type="text/css" href="https://cdn.jsdelivr.net/npm/bootstrap@4.4.1/dist/css/bootstrap.min.css">
		<title>Admin</title>

		<style>

			/* bootstrap enhancements */

			.bg-light, .table-light, .table-light > td, .table-light > th {
				background-color: #f4f5f6 !important;
			}

			.col-form-label {
				text-align: right;
			}

			/* html tags */

			body {
				padding-bottom: 1rem;
			}

			h1 {
				font-size: 1.5rem !important;
				margin: 1rem 0 0.7rem !important;
			}

			h2 {
				font-size: 1.3rem !important;
				margin: 0.2rem 0 0.5rem !important;
			}

			table {
				margin-top: 0.5rem;
				border-bottom: 1px solid #dee2e6;
			}

			textarea {
				tab-size: 4;
				-moz-tab-size: 4;
			}

		</style>
	</head>
	<body>

		<nav class="navbar navbar-expand-md bg-light">
			<ul class="navbar-nav">
				<li class="nav-item">
					<a class="nav-link" href="{{ .Href "/" }}" target="_blank">View site</a>
				</li>
				<li class="nav-item">
					<a class="nav-link" href="./">Dashboard</a>
				</li>
				<li class="nav-item">
					<a class="nav-link" href="posts">Posts</a>
				</li>
				<li class="nav-item">
					<a class="nav-link" href="users">Users</a>
				</li>
				<li class="nav-item">
					<a class="nav-link" href="roles">Roles</a>
				</li>
				<li class="nav-item">
					<a class="nav-link" href="user/{{ .User.ID }}">{{ .User.Name }}</a>
				</li>
				<li class="nav-item">
					<a class="nav-link" href="{{ .Href "/security/logout" }}">Logout</a>
				</li>
			</ul>
		</nav>

		<div class="container pt-3">
			{{ .RenderNotifications }}
			{{ template "content" . }}
		</div>

	</body>
</html>`))
