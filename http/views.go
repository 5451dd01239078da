package httpapi

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"

	"github.com/yourorg/listings-web/internal/logger"
	"github.com/yourorg/listings-web/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Views renders the HTML pages. Each page is parsed together with the
// shared layout.
type Views struct {
	pages map[string]*template.Template
	min   *minify.M
}

func NewViews() (*Views, error) {
	return newViews(templateFS)
}

func newViews(fsys fs.FS) (*Views, error) {
	names, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}
	v := &Views{pages: map[string]*template.Template{}, min: minify.New()}
	v.min.AddFunc("text/html", html.Minify)

	for _, name := range names {
		base := name[len("templates/"):]
		if base == "layout.html" {
			continue
		}
		t, err := template.New(base).ParseFS(fsys, "templates/layout.html", name)
		if err != nil {
			return nil, err
		}
		v.pages[base] = t
	}
	return v, nil
}

// pageData is common to every page.
type pageData struct {
	Title   string
	Session *session.Session
	Flash   string
	Error   string
	Body    any
}

// Render writes page with status. The markup is minified; if that fails the
// raw markup is sent.
func (v *Views) Render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	log := logger.From(r.Context())
	t, ok := v.pages[page]
	if !ok {
		log.Error("unknown page template", "page", page)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data.Session == nil {
		data.Session = session.FromContext(r.Context())
	}

	var raw bytes.Buffer
	if err := t.ExecuteTemplate(&raw, "layout", data); err != nil {
		log.Error("render page failed", "page", page, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := raw.Bytes()
	var small bytes.Buffer
	if err := v.min.Minify("text/html", &small, bytes.NewReader(out)); err != nil {
		log.Warn("minify failed", "page", page, "err", err)
	} else {
		out = small.Bytes()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}
