// Package views embeds the HTML templates served by the page handler.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed *.html
var files embed.FS

// NewEngine returns a template engine reading from the embedded files.
func NewEngine() *html.Engine {
	return html.NewFileSystem(http.FS(files), ".html")
}
