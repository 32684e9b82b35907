package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"nexuslink/internal/http/httputils"
)

const (
	PageHome      = "home"
	PageFeatures  = "features"
	PageAnalytics = "analytics"
	PageAbout     = "about"
	PageLogin     = "login"
	PageRegister  = "register"
	PageNotFound  = "not_found"
	PageDashboard = "dashboard"
)

//go:embed *.html
var files embed.FS

var pages = []string{
	PageHome, PageFeatures, PageAnalytics, PageAbout,
	PageLogin, PageRegister, PageNotFound, PageDashboard,
}

// Renderer хранит по набору шаблонов на страницу: каждая страница
// переопределяет блок "content" общего layout
type Renderer struct {
	sets map[string]*template.Template
}

func New() (*Renderer, error) {
	r := &Renderer{sets: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tpl, err := template.ParseFS(files, "layout.html", page+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", page, err)
		}
		r.sets[page] = tpl
	}
	return r, nil
}

// Render рендерит в буфер, чтобы ошибка шаблона не оставила полстраницы
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tpl, ok := r.sets[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render page %s: %w", page, err)
	}

	w.Header().Set(httputils.HeaderContentType, httputils.MIMETextHTML)
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
