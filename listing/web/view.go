package web

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templatesFS embed.FS

type IndexModel struct {
	Gyms []string
}

type ErrorModel struct {
	RequestID string
}

func (m ErrorModel) ShowRequestID() bool { return m.RequestID != "" }

// View é a camada de exibição do site.
type View interface {
	Index(w io.Writer, m IndexModel) error
	Error(w io.Writer, m ErrorModel) error
}

// TemplateView renderiza as páginas com html/template embutido no binário.
type TemplateView struct {
	index *template.Template
	err   *template.Template
}

func NewTemplateView() (*TemplateView, error) {
	index, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/index.html")
	if err != nil {
		return nil, err
	}
	errPage, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/error.html")
	if err != nil {
		return nil, err
	}
	return &TemplateView{index: index, err: errPage}, nil
}

func (v *TemplateView) Index(w io.Writer, m IndexModel) error {
	return v.index.ExecuteTemplate(w, "layout", m)
}

func (v *TemplateView) Error(w io.Writer, m ErrorModel) error {
	return v.err.ExecuteTemplate(w, "layout", m)
}
