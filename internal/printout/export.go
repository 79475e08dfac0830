// Package printout renders the shopping list as a standalone printable page.
package printout

import (
	"bytes"
	"fmt"
	"html/template"
)

// Title is the heading and document title of the printed list.
const Title = "Shopping List"

var documentTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <title>{{.Title}}</title>
    <style>
      body { font-family: sans-serif; padding: 20px; }
      h2 { margin-top: 0; }
      ul { list-style: none; padding: 0; }
      li { padding: 6px 0; border-bottom: 1px solid #ccc; }
    </style>
  </head>
  <body>
    <h2>{{.Title}}</h2>
    <ul>
{{- range .Items}}
      <li>{{.}}</li>
{{- end}}
    </ul>
  </body>
</html>
`))

// Export renders items, in the given order, as an HTML document with one list
// entry per name. Names are HTML-escaped.
func Export(items []string) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Title string
		Items []string
	}{Title: Title, Items: items}

	if err := documentTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render shopping list: %w", err)
	}
	return buf.Bytes(), nil
}
