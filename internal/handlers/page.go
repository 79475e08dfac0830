package handlers

import (
	"embed"
	"html/template"
)

const pageTemplateName = "index.html"

//go:embed templates/index.html
var templateFS embed.FS

// PageTemplate returns the parsed widget page for gin's HTML renderer.
func PageTemplate() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/"+pageTemplateName))
}
