// Package render turns post bodies into HTML.
package render

import (
	"bufio"
	"bytes"
	"html/template"
	"strings"

	"gitlab.com/golang-commonmark/markdown"
)

// raw HTML is escaped, posts are written by publishers and must not inject scripts
var markdownParser = markdown.New(markdown.HTML(false), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

// MoreMarker separates the teaser of a post from the rest.
const MoreMarker = "<!-- more -->"

// Teaser returns everything before the MoreMarker, and whether the body has been truncated.
func Teaser(body string) (string, bool) {
	if index := strings.Index(body, MoreMarker); index >= 0 {
		return body[:index], true
	}
	return body, false
}

// Markdown renders CommonMark markdown to HTML. The MoreMarker is discarded.
func Markdown(body string) template.HTML {

	body = strings.Replace(body, MoreMarker, "", 1)

	// remove all tabs from the beginning of each line

	var unindented = &bytes.Buffer{}

	lineScanner := bufio.NewScanner(strings.NewReader(body))
	for lineScanner.Scan() {
		unindented.WriteString(strings.TrimLeft(lineScanner.Text(), "\t"))
		unindented.WriteString("\n")
	}

	return template.HTML(markdownParser.RenderToString(unindented.Bytes()))
}
