package board

import (
	"embed"
	"html/template"
	"io"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type pageData struct {
	View
	LoadFailedNotice string
	MessageClass     string
	HideAfterMS      int64
}

// Render writes the full board page for v.
func Render(w io.Writer, v View, hideAfter time.Duration) error {
	return templates.ExecuteTemplate(w, "page", pageData{
		View:             v,
		LoadFailedNotice: LoadFailedNotice,
		MessageClass:     messageClass(v.Message),
		HideAfterMS:      hideAfter.Milliseconds(),
	})
}

func messageClass(m Message) string {
	class := string(m.Kind)
	if !m.Visible {
		if class != "" {
			class += " "
		}
		class += "hidden"
	}
	return class
}
