package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pokedex-server/internal/apperror"
	"pokedex-server/internal/router"
	"pokedex-server/internal/session"
	"pokedex-server/internal/view"
)

func (h *Handler) home(c *gin.Context, s *session.Session) {
	title := "Welcome Guest!"
	if s.LoggedIn() {
		title = "Welcome " + s.String(session.KeyName) + "!"
	}

	c.HTML(http.StatusOK, view.Home, gin.H{
		"title":      title,
		"isLoggedIn": s.LoggedIn(),
	})
}

func (h *Handler) listPokemon(c *gin.Context, s *session.Session) {
	c.HTML(http.StatusOK, view.List, gin.H{
		"title":      "All Pokemon",
		"pokemon":    h.pokemon.All(),
		"isLoggedIn": s.LoggedIn(),
	})
}

func (h *Handler) showPokemon(c *gin.Context, s *session.Session) {
	id, err := strconv.Atoi(c.Param(router.ParamID))
	if err != nil {
		view.RenderError(c, apperror.New(apperror.NotFound, "Pokemon not found"))
		return
	}

	p, ok := h.pokemon.Get(id)
	if !ok {
		view.RenderError(c, apperror.New(apperror.NotFound, "Pokemon not found"))
		return
	}

	c.HTML(http.StatusOK, view.Show, gin.H{
		"title":      p.Name,
		"pokemon":    p,
		"isLoggedIn": s.LoggedIn(),
	})
}

func (h *Handler) createPokemon(c *gin.Context, _ *session.Session) {
	var req createPokemonRequest
	if err := bindBody(c, &req); err != nil {
		view.RenderError(c, err)
		return
	}

	h.pokemon.Add(req.Name, req.Type)

	c.Redirect(http.StatusSeeOther, "/pokemon")
}
