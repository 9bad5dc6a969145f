package frontend

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/util"
)

var indexTmpl = tmpl(`
	{{ range .Posts }}
		<article class="mb-4">
			<h2><a href="{{ $.Href "/posts/id/" }}{{ .ID }}">{{ .Title }}</a></h2>
			<p class="text-muted">{{ $.FormatDateTime .CreatedAt }}{{ with .Author }} &middot; {{ . }}{{ end }}</p>
			{{ $teaser := Teaser .Body }}
			{{ Markdown $teaser.Text }}
			{{ if $teaser.More }}<p><a href="{{ $.Href "/posts/id/" }}{{ .ID }}">&hellip;</a></p>{{ end }}
		</article>
	{{ else }}
		<p>Nothing here yet.</p>
	{{ end }}

	{{ if gt .NumPages 1 }}
		<nav>
			<ul class="pagination">
				{{ range .PageLinks }}
					{{ if .Gap }}<li class="page-item disabled"><span class="page-link">&hellip;</span></li>{{ end }}
					<li class="page-item{{ if .Current }} active{{ end }}">
						<a class="page-link" href="{{ $.Href "/" }}?page={{ .Number }}">{{ .Number }}</a>
					</li>
				{{ end }}
			</ul>
		</nav>
	{{ end }}`)

type indexData struct {
	*context
	Page     int
	NumPages int
	Posts    []*core.Post
}

func (data *indexData) PageLinks() []util.PageLink {
	return util.Pages(data.Page, data.NumPages)
}

func index(w http.ResponseWriter, req *http.Request, ctx *context, params httprouter.Params) error {

	var perPage = ctx.db.Config.PageSize

	count, err := ctx.db.CountPosts()
	if err != nil {
		return err
	}

	var numPages = util.NumPages(count, perPage)
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	page = util.ClampPage(page, numPages)

	posts, err := ctx.db.GetPosts(perPage, (page-1)*perPage)
	if err != nil {
		return err
	}

	return ctx.Render(indexTmpl, &indexData{
		context:  ctx,
		Page:     page,
		NumPages: numPages,
		Posts:    posts,
	})
}
