package backend

import (
	"github.com/julienschmidt/httprouter"
	"github.com/wansing/blog/core"
	"github.com/wansing/blog/render"
	"github.com/wansing/blog/util"
)

const excerptBytes = 1000

// Excerpt returns the beginning of a markdown text as plain text.
func Excerpt(markdown string, maxRunes int) string {
	return util.Trunc(util.PlainText(string(render.Markdown(markdown)), excerptBytes), maxRunes)
}

// idParam parses a numeric route parameter. Invalid ids are not found.
func idParam(params httprouter.Params) (int, error) {
	id, ok := util.ParseID(params.ByName("id"))
	if !ok {
		return 0, core.ErrNotFound
	}
	return id, nil
}
