// Package view holds the server-rendered HTML templates and the helpers that
// render them through gin.
package view

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-catalog/internal/shared/utils"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses every page. Markup in record values is escaped here, at render time.
func Templates() *template.Template {
	return template.Must(
		template.New("").
			Funcs(template.FuncMap{"date": utils.FormatDisplayDate}).
			ParseFS(templateFS, "templates/*.tmpl"),
	)
}

// Page renders name with data, filling in the page title.
func Page(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	c.HTML(status, name, data)
}

// NotFound renders the error page with 404.
func NotFound(c *gin.Context, message string) {
	Page(c, http.StatusNotFound, "error", "Not Found", gin.H{
		"Message":   message,
		"RequestID": c.GetString("request_id"),
	})
}

// ServerError renders the generic failure page. Internal details never reach the client.
func ServerError(c *gin.Context) {
	Page(c, http.StatusInternalServerError, "error", "Error", gin.H{
		"Message":   "Something went wrong. Please try again later.",
		"RequestID": c.GetString("request_id"),
	})
}
