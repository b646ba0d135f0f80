package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"library-catalog/internal/domains/book/model"
	"library-catalog/internal/domains/book/service"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/form"
	"library-catalog/internal/shared/view"
)

const notFoundMessage = "Book not found"

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

// ========================================
// READ
// ========================================

// List godoc
// GET /catalog/books?author=<id>&genre=<id>&sort=title&order=asc
func (h *BookHandler) List(c *gin.Context) {
	filter := model.Filter{
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
	}
	var err error
	if filter.AuthorID, err = optionalID(c.Query("author")); err != nil {
		view.Page(c, http.StatusOK, "book_list", "Book List", gin.H{"Books": nil})
		return
	}
	if filter.GenreID, err = optionalID(c.Query("genre")); err != nil {
		view.Page(c, http.StatusOK, "book_list", "Book List", gin.H{"Books": nil})
		return
	}

	books, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	view.Page(c, http.StatusOK, "book_list", "Book List", gin.H{"Books": books})
}

func (h *BookHandler) Detail(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	view.Page(c, http.StatusOK, "book_detail", "Title: "+detail.Title, gin.H{"Detail": detail})
}

// ========================================
// WRITE
// ========================================

func (h *BookHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "Create Book", model.BookForm{}, nil)
}

func (h *BookHandler) Create(c *gin.Context) {
	var f model.BookForm
	if err := c.ShouldBindWith(&f, binding.Form); err != nil {
		_ = c.Error(err)
		return
	}

	book, err := h.service.Create(c.Request.Context(), &f)
	if errs, ok := form.AsErrors(err); ok {
		h.renderForm(c, http.StatusUnprocessableEntity, "Create Book", f, errs)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, book.URL())
}

func (h *BookHandler) UpdateForm(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	book, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	h.renderForm(c, http.StatusOK, "Update Book", model.FormFromBook(book), nil)
}

func (h *BookHandler) Update(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	var f model.BookForm
	if err := c.ShouldBindWith(&f, binding.Form); err != nil {
		_ = c.Error(err)
		return
	}

	book, err := h.service.Update(c.Request.Context(), id, &f)
	if errs, ok := form.AsErrors(err); ok {
		h.renderForm(c, http.StatusUnprocessableEntity, "Update Book", f, errs)
		return
	}
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	c.Redirect(http.StatusFound, book.URL())
}

func (h *BookHandler) DeleteForm(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	view.Page(c, http.StatusOK, "book_delete", "Delete Book", gin.H{"Detail": detail})
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	detail, err := h.service.Delete(c.Request.Context(), id)
	if errors.Is(err, shared.ErrInUse) {
		view.Page(c, http.StatusConflict, "book_delete", "Delete Book", gin.H{"Detail": detail})
		return
	}
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	c.Redirect(http.StatusFound, "/catalog/books")
}

// renderForm loads the author and genre choices alongside the submitted values.
func (h *BookHandler) renderForm(c *gin.Context, status int, title string, f model.BookForm, errs form.Errors) {
	opts, err := h.service.FormOptions(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	view.Page(c, status, "book_form", title, gin.H{
		"Form":    f,
		"Options": opts,
		"Errors":  errs,
	})
}

// optionalID treats an empty query value as "no filter". A malformed one
// cannot match any book.
func optionalID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(raw)
}
