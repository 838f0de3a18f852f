package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"pokedex-server/internal/apperror"
)

type loginRequest struct {
	Name string `form:"name" json:"name" binding:"required"`
}

type createPokemonRequest struct {
	Name string `form:"name" json:"name" binding:"required"`
	Type string `form:"type" json:"type" binding:"required"`
}

// bindBody decodes the request body into dst, choosing the decoder from
// Content-Type. Only JSON and urlencoded forms are accepted.
func bindBody(c *gin.Context, dst any) error {
	var err error

	switch c.ContentType() {
	case binding.MIMEJSON:
		err = c.ShouldBindWith(dst, binding.JSON)
	case binding.MIMEPOSTForm:
		err = c.ShouldBindWith(dst, binding.FormPost)
	default:
		return apperror.New(apperror.BodyParseError, "Unsupported content type")
	}

	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.Wrap(apperror.BodyTooLarge, err, "Request body too large")
	}
	return apperror.Wrap(apperror.BodyParseError, err, "Malformed request body")
}
