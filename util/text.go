package util

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText extracts the text content of an HTML fragment and collapses whitespace.
// It stops after maxBytes bytes of input, so long documents are cheap.
func PlainText(fragment string, maxBytes int) string {

	tokenizer := html.NewTokenizerFragment(strings.NewReader(fragment), "body")
	tokenizer.SetMaxBuf(maxBytes + 1024)

	var text = &strings.Builder{}
	var offset = 0

	for offset < maxBytes {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break // assuming tokenizer.Err() == io.EOF
		}
		offset += len(tokenizer.Raw())
		if tt == html.TextToken {
			text.Write(tokenizer.Text())
			text.WriteString(" ")
		}
	}

	return strings.Join(strings.Fields(text.String()), " ")
}
