package web

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed content/info.md
var infoMarkdown []byte

// mdRenderer leaves raw HTML in the source escaped.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Linkify),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var infoHTML = func() template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert(infoMarkdown, &buf); err != nil {
		panic("render info page: " + err.Error())
	}
	return template.HTML(buf.String())
}()

func (s *Server) infoPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "info", infoView{
		Page: s.page(r, "Information & Help"),
		Body: infoHTML,
	})
}
