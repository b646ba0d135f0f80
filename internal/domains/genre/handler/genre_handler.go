package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"library-catalog/internal/domains/genre/model"
	"library-catalog/internal/domains/genre/service"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/form"
	"library-catalog/internal/shared/view"
)

const notFoundMessage = "Genre not found"

type GenreHandler struct {
	service service.ServiceInterface
}

func NewGenreHandler(svc service.ServiceInterface) *GenreHandler {
	return &GenreHandler{service: svc}
}

// List godoc
// GET /catalog/genres?sort=name&order=asc
func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.service.List(c.Request.Context(), model.Filter{
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	view.Page(c, http.StatusOK, "genre_list", "Genre List", gin.H{"Genres": genres})
}

// Detail godoc
// GET /catalog/genre/:id
func (h *GenreHandler) Detail(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	view.Page(c, http.StatusOK, "genre_detail", "Genre: "+detail.Genre.Name, gin.H{"Detail": detail})
}

func (h *GenreHandler) CreateForm(c *gin.Context) {
	view.Page(c, http.StatusOK, "genre_form", "Create Genre", gin.H{"Form": model.GenreForm{}})
}

// Create godoc
// POST /catalog/genre/create
// Submitting a name that already exists (any case) redirects to that genre.
func (h *GenreHandler) Create(c *gin.Context) {
	var f model.GenreForm
	if err := c.ShouldBindWith(&f, binding.Form); err != nil {
		_ = c.Error(err)
		return
	}

	genre, err := h.service.Create(c.Request.Context(), &f)
	if errs, ok := form.AsErrors(err); ok {
		view.Page(c, http.StatusUnprocessableEntity, "genre_form", "Create Genre", gin.H{"Form": f, "Errors": errs})
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, genre.URL())
}

func (h *GenreHandler) UpdateForm(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	genre, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	view.Page(c, http.StatusOK, "genre_form", "Update Genre", gin.H{"Form": model.FormFromGenre(genre)})
}

// Update godoc
// POST /catalog/genre/:id/update
func (h *GenreHandler) Update(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	var f model.GenreForm
	if err := c.ShouldBindWith(&f, binding.Form); err != nil {
		_ = c.Error(err)
		return
	}

	genre, err := h.service.Update(c.Request.Context(), id, &f)
	if errs, ok := form.AsErrors(err); ok {
		view.Page(c, http.StatusUnprocessableEntity, "genre_form", "Update Genre", gin.H{"Form": f, "Errors": errs})
		return
	}
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	c.Redirect(http.StatusFound, genre.URL())
}

func (h *GenreHandler) DeleteForm(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	view.Page(c, http.StatusOK, "genre_delete", "Delete Genre", gin.H{"Detail": detail})
}

// Delete godoc
// POST /catalog/genre/:id/delete
// Refused with 409 while any book still lists the genre.
func (h *GenreHandler) Delete(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	detail, err := h.service.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, shared.ErrInUse):
		view.Page(c, http.StatusConflict, "genre_delete", "Delete Genre", gin.H{"Detail": detail})
	case err != nil:
		view.Fail(c, err, notFoundMessage)
	default:
		c.Redirect(http.StatusFound, "/catalog/genres")
	}
}
