package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/view"
)

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("request_id", c.GetString("request_id")).
					Str("path", c.Request.URL.Path).
					Interface("error", err).
					Msg("Panic recovered")

				renderFailure(c)
				c.Abort()
			}
		}()

		c.Next()
	}
}

// ErrorHandler logs errors attached with c.Error and, when the handler wrote
// nothing, answers with the generic failure page.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", c.GetString("request_id")).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("request failed")
		}
		if !c.Writer.Written() {
			renderFailure(c)
		}
	}
}

func renderFailure(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		response.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		return
	}
	view.ServerError(c)
}
