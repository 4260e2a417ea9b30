// ABOUTME: Markdown rendering for assistant message content
// ABOUTME: Output is trusted template HTML; goldmark escapes raw HTML by default

package dashboard

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// renderMarkdown converts message content to HTML. On a conversion failure
// the raw text is returned escaped, so the page always renders.
func renderMarkdown(content string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(buf.String())
}
