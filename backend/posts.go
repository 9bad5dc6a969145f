package backend

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/util"
)

var postsTmpl = tmpl(`<h1>Posts</h1>

	<table class="table table-sm">
		<thead>
			<tr>
				<th>Title</th>
				<th>Author</th>
				<th>Created</th>
				<th>Last edit</th>
			</tr>
		</thead>
		<tbody>
			{{ range .Posts }}
				<tr>
					<td>
						<a href="post/{{ .ID }}">{{ .Title }}</a>
						<div class="text-muted small">{{ Excerpt .Body 120 }}</div>
					</td>
					<td>{{ .Author }}</td>
					<td>{{ $.FormatDateTime .CreatedAt }}</td>
					<td>{{ if .LastEdit.Valid }}{{ $.FormatDateTime .LastEdit.Int64 }}{{ end }}</td>
				</tr>
			{{ else }}
				<tr><td colspan="4">No posts.</td></tr>
			{{ end }}
		</tbody>
	</table>

	` + pagination)

type postsData struct {
	*context
	Page     int
	NumPages int
	Path     string
	Posts    []*core.Post
}

func (data *postsData) PageLinks() []util.PageLink {
	return util.Pages(data.Page, data.NumPages)
}

func posts(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var perPage = ctx.db.Config.PageSize

	count, err := ctx.db.CountPosts()
	if err != nil {
		return err
	}

	var numPages = util.NumPages(count, perPage)
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	page = util.ClampPage(page, numPages)

	list, err := ctx.db.GetPosts(perPage, (page-1)*perPage)
	if err != nil {
		return err
	}

	return ctx.Render(postsTmpl, &postsData{
		context:  ctx,
		Page:     page,
		NumPages: numPages,
		Path:     "posts",
		Posts:    list,
	})
}
