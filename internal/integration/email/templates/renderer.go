// Package templates renders the embedded email templates.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed *.html *.txt
var templateFS embed.FS

var funcs = map[string]any{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"pct":   func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
	"abs": func(n int) int {
		if n < 0 {
			return -n
		}
		return n
	},
}

// Renderer handles email template rendering.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.New("").Funcs(funcs).ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.New("").Funcs(funcs).ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
	}, nil
}

// Render renders both HTML and text versions of a template.
func (r *Renderer) Render(templateName string, data any) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		// Text part is optional
		return htmlBuf.String(), "", nil
	}

	return htmlBuf.String(), textBuf.String(), nil
}
