package format

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// chatMarkdown renders free-form chat replies. Raw HTML in model output is
// not passed through.
var chatMarkdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(),
	),
)

// ChatHTML renders a chat reply as HTML. If Markdown conversion fails the
// escaped text is returned in a paragraph.
func ChatHTML(text string) string {
	var buf bytes.Buffer
	if err := chatMarkdown.Convert([]byte(text), &buf); err != nil {
		return "<p>" + html.EscapeString(text) + "</p>"
	}
	return buf.String()
}
