// Package dispatch classifies each request the engine has no explicit
// route for, attaches the browser's session and hands it to the router.
package dispatch

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"pokedex-server/internal/apperror"
	"pokedex-server/internal/router"
	"pokedex-server/internal/session"
	"pokedex-server/internal/view"
)

type Dispatcher struct {
	routes   *router.Router
	sessions *session.Manager
	static   fs.FS
	cookie   session.CookieOptions
}

// New builds a Dispatcher. static may be nil, in which case every asset
// request is a StaticFileNotFound.
func New(
	routes *router.Router,
	sessions *session.Manager,
	static fs.FS,
	cookie session.CookieOptions,
) *Dispatcher {
	return &Dispatcher{
		routes:   routes,
		sessions: sessions,
		static:   static,
		cookie:   cookie,
	}
}

// IsStaticPath reports whether the last path segment carries a file
// extension, which is how asset requests are told apart from routes.
func IsStaticPath(p string) bool {
	return path.Ext(path.Base(p)) != ""
}

// Handle is installed as the engine's fallback handler.
func (d *Dispatcher) Handle(c *gin.Context) {
	p := c.Request.URL.Path

	// Assets skip session resolution entirely, so they never set a cookie.
	if IsStaticPath(p) {
		if err := d.serveStatic(c, p); err != nil {
			view.RenderError(c, err)
		}
		return
	}

	cookies := session.ParseCookies(c.GetHeader("Cookie"))
	sess, err := d.sessions.Resolve(c.Request.Context(), cookies)
	if err != nil {
		view.RenderError(c, apperror.Wrap(apperror.Internal, err, "Internal server error"))
		return
	}

	session.SetCookie(c.Writer, sess.ID, d.cookie)

	// URL.Path carries no query string, so /pokemon?x=1 matches /pokemon.
	h, params, ok := d.routes.Match(c.Request.Method, p)
	if !ok {
		view.RenderError(c, apperror.New(apperror.RouteNotFound, "Route not found"))
		return
	}

	c.Params = params
	h(c, sess)
}

func (d *Dispatcher) serveStatic(c *gin.Context, p string) error {
	notFound := apperror.New(apperror.StaticFileNotFound, "File not found")
	if d.static == nil {
		return notFound
	}

	name := strings.TrimPrefix(path.Clean("/"+p), "/")
	if !fs.ValidPath(name) {
		return notFound
	}

	info, err := fs.Stat(d.static, name)
	if errors.Is(err, fs.ErrNotExist) {
		return apperror.Wrap(apperror.StaticFileNotFound, err, "File not found")
	}
	if err != nil {
		return apperror.Wrap(apperror.Internal, err, "Internal server error")
	}
	if info.IsDir() {
		return notFound
	}

	http.ServeFileFS(c.Writer, c.Request, d.static, name)
	return nil
}
