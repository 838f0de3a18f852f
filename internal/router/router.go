// Package router holds the static (method, pattern) → handler table the
// dispatcher consults. It performs no I/O and no session handling itself.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pokedex-server/internal/session"
)

// ParamID is the name of the single supported path parameter.
const ParamID = "id"

var (
	ErrDuplicateRoute    = errors.New("router: route already registered")
	ErrUnsupportedMethod = errors.New("router: unsupported method")
)

// Handler serves one routed request. It owns the whole response.
type Handler func(c *gin.Context, s *session.Session)

type routeKey struct {
	method  string
	pattern string
}

// Route describes a registered entry.
type Route struct {
	Method  string
	Pattern string
}

type Router struct {
	routes map[routeKey]Handler
}

func New() *Router {
	return &Router{routes: make(map[routeKey]Handler)}
}

func supported(method string) bool {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// Register adds a route. Registering the same (method, pattern) twice
// fails rather than overwriting.
func (r *Router) Register(method, pattern string, h Handler) error {
	if !supported(method) {
		return fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	key := routeKey{method: method, pattern: pattern}
	if _, ok := r.routes[key]; ok {
		return fmt.Errorf("%w: %s %s", ErrDuplicateRoute, method, pattern)
	}

	r.routes[key] = h
	return nil
}

// MustRegister is Register for startup wiring, where a conflict is a
// programming error.
func (r *Router) MustRegister(method, pattern string, h Handler) {
	if err := r.Register(method, pattern, h); err != nil {
		panic(err)
	}
}

func (r *Router) GET(pattern string, h Handler)    { r.MustRegister(http.MethodGet, pattern, h) }
func (r *Router) POST(pattern string, h Handler)   { r.MustRegister(http.MethodPost, pattern, h) }
func (r *Router) PUT(pattern string, h Handler)    { r.MustRegister(http.MethodPut, pattern, h) }
func (r *Router) DELETE(pattern string, h Handler) { r.MustRegister(http.MethodDelete, pattern, h) }

// Normalize maps /<prefix>/<integer> to /<prefix>/:id and returns the id as
// a param. Every other path comes back unchanged with no params.
func Normalize(path string) (string, gin.Params) {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	if len(segments) != 2 || segments[0] == "" || !isUint(segments[1]) {
		return path, nil
	}

	return "/" + segments[0] + "/:" + ParamID, gin.Params{{Key: ParamID, Value: segments[1]}}
}

func isUint(s string) bool {
	if s == "" {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

// Match looks up the handler for method and a request path (no query).
func (r *Router) Match(method, path string) (Handler, gin.Params, bool) {
	pattern, params := Normalize(path)

	h, ok := r.routes[routeKey{method: method, pattern: pattern}]
	if !ok {
		return nil, nil, false
	}
	return h, params, true
}

// Routes lists the table sorted by pattern then method.
func (r *Router) Routes() []Route {
	out := make([]Route, 0, len(r.routes))
	for k := range r.routes {
		out = append(out, Route{Method: k.method, Pattern: k.pattern})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pattern != out[j].Pattern {
			return out[i].Pattern < out[j].Pattern
		}
		return out[i].Method < out[j].Method
	})
	return out
}
