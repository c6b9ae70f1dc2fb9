package web

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/hackgods/counseling-scheduler/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"login", "register", "info", "dashboard", "admin", "denied"}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
}

// pages holds one template set per page, each layered on the shared layout.
var pages = func() map[string]*template.Template {
	m := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		m[name] = template.Must(template.New("layout.html").Funcs(funcs).ParseFS(
			templateFS, "templates/layout.html", "templates/"+name+".html",
		))
	}
	return m
}()

// page collects what every template needs. It pops the pending flash, so call it once per render.
func (s *Server) page(r *http.Request, title string) Page {
	p := Page{
		Title:     title,
		CSRFField: csrf.TemplateField(r),
	}
	if u, ok := currentUser(r.Context()); ok {
		p.User = &u
	}
	if sid := sessionID(r.Context()); sid != "" {
		if f, ok := s.holder.PopFlash(r.Context(), sid); ok {
			p.Flash = &f
		}
	}
	return p
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, ok := pages[name]
	if !ok {
		log.Printf("op=render request_id=%s err=unknown page %q", GetRequestID(r.Context()), name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		log.Printf("op=render page=%s request_id=%s err=%v", name, GetRequestID(r.Context()), err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// flash queues a one-shot message for the next page this session renders.
func (s *Server) flash(r *http.Request, kind, msg string) {
	err := s.holder.SetFlash(r.Context(), sessionID(r.Context()), session.Flash{Kind: kind, Message: msg})
	if err != nil {
		log.Printf("op=set_flash request_id=%s err=%v", GetRequestID(r.Context()), err)
	}
}
