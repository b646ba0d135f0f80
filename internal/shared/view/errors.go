package view

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-catalog/internal/shared"
)

// ParamID parses the :id path parameter. A malformed id cannot name a record,
// so it renders the not-found page and reports false.
func ParamID(c *gin.Context, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		NotFound(c, notFound)
		return uuid.Nil, false
	}
	return id, true
}

// Fail renders not-found errors and hands everything else to the error middleware.
func Fail(c *gin.Context, err error, notFound string) {
	if errors.Is(err, shared.ErrNotFound) {
		NotFound(c, notFound)
		return
	}
	_ = c.Error(err)
}
