package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pokedex-server/internal/apperror"
	"pokedex-server/internal/logger"
)

// Template names.
const (
	Home  = "HomeView"
	List  = "ListView"
	Show  = "ShowView"
	Error = "ErrorView"
)

//go:embed templates/*.html
var files embed.FS

// Funcs are the helpers every template can call.
var Funcs = template.FuncMap{
	"path":   Path,
	"styles": func(name string) string { return "/css/" + strings.TrimPrefix(name, "/") },
	"images": func(name string) string { return "/images/" + strings.TrimPrefix(name, "/") },
}

// Path fills the :id placeholder of pattern with the first argument.
func Path(pattern string, args ...any) string {
	if len(args) > 0 {
		pattern = strings.Replace(pattern, ":id", fmt.Sprint(args[0]), 1)
	}
	return pattern
}

// Templates parses the embedded views. The Header and Footer partials are
// defined once here and visible to every view.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*.html")
}

func MustTemplates() *template.Template {
	t, err := Templates()
	if err != nil {
		panic(err)
	}
	return t
}

// WantsHTML decides between an HTML and a plain-text error body. An Accept
// header that names a media type decides; a missing or wildcard-only one
// (curl sends */*) falls back to the User-Agent, where curl gets plain text.
func WantsHTML(c *gin.Context) bool {
	if wildcardOnly(c.GetHeader("Accept")) {
		return !strings.Contains(strings.ToLower(c.GetHeader("User-Agent")), "curl")
	}
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEPlain) == gin.MIMEHTML
}

func wildcardOnly(accept string) bool {
	for _, part := range strings.Split(accept, ",") {
		mediaType, _, _ := strings.Cut(part, ";")
		switch strings.TrimSpace(mediaType) {
		case "", "*/*":
		default:
			return false
		}
	}
	return true
}

// RenderError writes err as a negotiated error response and aborts c.
func RenderError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := kind.Status()
	message := apperror.Message(err)

	fields := map[string]any{
		"kind":   kind.String(),
		"status": status,
		"path":   c.Request.URL.Path,
		"error":  err.Error(),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", fields)
	} else {
		logger.Debug("request rejected", fields)
	}

	if WantsHTML(c) {
		c.HTML(status, Error, gin.H{
			"title":   "Error",
			"message": message,
		})
	} else {
		c.String(status, message)
	}
	c.Abort()
}
