package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pokedex-server/internal/apperror"
	"pokedex-server/internal/logger"
	"pokedex-server/internal/router"
	"pokedex-server/internal/session"
	"pokedex-server/internal/view"
)

func (h *Handler) login(c *gin.Context, s *session.Session) {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		view.RenderError(c, err)
		return
	}

	s.Set(session.KeyLoggedIn, true)
	s.Set(session.KeyName, req.Name)

	if err := h.sessions.Save(c.Request.Context(), s); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			// logged out concurrently; make the client start over
			session.ClearCookie(c.Writer, h.cookie)
			c.Redirect(http.StatusSeeOther, "/")
			return
		}
		view.RenderError(c, apperror.Wrap(apperror.Internal, err, "Internal server error"))
		return
	}

	logger.Debug("login", map[string]any{
		"ip": c.ClientIP(),
	})

	c.Redirect(http.StatusSeeOther, "/")
}

// logout drops the server-side session as well as expiring the cookie, so
// a replayed cookie only ever gets a fresh anonymous session.
func (h *Handler) logout(c *gin.Context, s *session.Session) {
	if err := h.sessions.Destroy(c.Request.Context(), s.ID); err != nil {
		// best-effort; the cookie is cleared regardless
		logger.Warn("session delete failed", map[string]any{
			"error": err.Error(),
		})
	}

	session.ClearCookie(c.Writer, h.cookie)

	c.Redirect(http.StatusSeeOther, "/")
}

// requireLogin rejects sessions the login handler has not marked.
func (h *Handler) requireLogin(next router.Handler) router.Handler {
	return func(c *gin.Context, s *session.Session) {
		if !s.LoggedIn() {
			view.RenderError(c, apperror.New(
				apperror.Unauthorized,
				"You must be logged in to view this page",
			))
			return
		}
		next(c, s)
	}
}
