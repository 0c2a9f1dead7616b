package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/satriahrh/inventario/internal/locale"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer implements echo.Renderer over the embedded page templates
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates with the Spanish date helpers
func NewRenderer(formatter *locale.Formatter) (*Renderer, error) {
	funcs := template.FuncMap{
		"longDate":      formatter.LongDate,
		"date":          formatter.Date,
		"clock":         formatter.Clock,
		"shortDateTime": formatter.ShortDateTime,
		"typeLabel":     TypeLabel,
		"statusLabel":   StatusLabel,
		"roleLabel":     RoleLabel,
		"statusBadge":   statusBadge,
		"inc":           func(i int) int { return i + 1 },
		// The QR code is generated server side, never from user input
		"dataURI": func(s string) template.URL { return template.URL(s) },
	}

	tmpl, err := template.New("inventario").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render executes the named page template
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
