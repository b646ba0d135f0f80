package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"library-catalog/internal/domains/catalog/service"
	"library-catalog/internal/shared/response"
	"library-catalog/internal/shared/view"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type CatalogHandler struct {
	service service.ServiceInterface
}

func NewCatalogHandler(svc service.ServiceInterface) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// Index godoc
// GET /catalog
func (h *CatalogHandler) Index(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	view.Page(c, http.StatusOK, "index", "Local Library Home", gin.H{"Summary": summary})
}

// Summary godoc
// GET /api/v1/catalog/summary
func (h *CatalogHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("catalog summary failed")
		response.ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not load catalog summary")
		return
	}

	response.Success(c, http.StatusOK, summary)
}

// ExportBooks godoc
// GET /catalog/books/export
func (h *CatalogHandler) ExportBooks(c *gin.Context) {
	f, err := h.service.ExportBooks(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("books-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)

	if err := f.Write(c.Writer); err != nil {
		log.Error().Err(err).Msg("writing book export failed")
	}
}
