package handler

import (
	"pokedex-server/internal/logger"
	"pokedex-server/internal/pokemon"
	"pokedex-server/internal/router"
	"pokedex-server/internal/session"
)

type Handler struct {
	pokemon  *pokemon.Store
	sessions *session.Manager
	cookie   session.CookieOptions
}

func NewHandler(
	store *pokemon.Store,
	sessions *session.Manager,
	cookie session.CookieOptions,
) *Handler {
	return &Handler{
		pokemon:  store,
		sessions: sessions,
		cookie:   cookie,
	}
}

func (h *Handler) RegisterRoutes(r *router.Router) {
	r.GET("/", h.home)

	r.GET("/pokemon", h.listPokemon)
	r.GET("/pokemon/:id", h.showPokemon)
	r.POST("/pokemon", h.requireLogin(h.createPokemon))

	r.POST("/login", h.login)
	r.GET("/logout", h.logout)
	r.POST("/logout", h.logout)

	for _, route := range r.Routes() {
		logger.Debug("route registered", map[string]any{
			"method":  route.Method,
			"pattern": route.Pattern,
		})
	}
}
