// Package render turns a session snapshot into an HTML page with pongo2.
package render

import (
	"io"

	"github.com/goliatone/go-reportgen/pkg/session"
)

// DefaultTitle is the page title used when none is configured.
const DefaultTitle = "Assistant de rendu"

type page struct {
	session.View
	Title string `json:"title"`
}

// Session renders the session page for view.
func (e *Engine) Session(view session.View, title string, out ...io.Writer) (string, error) {
	if title == "" {
		title = DefaultTitle
	}
	return e.RenderTemplate("session", page{View: view, Title: title}, out...)
}
