package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/service"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/form"
	"library-catalog/internal/shared/view"
)

const notFoundMessage = "Author not found"

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// LIST: GET /catalog/authors?sort=family_name&order=asc
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	filter := model.Filter{
		Sort:  c.Query("sort"),
		Order: c.Query("order"),
	}

	authors, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	view.Page(c, http.StatusOK, "author_list", "Author List", gin.H{"Authors": authors})
}

// ════════════════════════════════════════════════════════════════
// DETAIL: GET /catalog/author/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Detail(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	view.Page(c, http.StatusOK, "author_detail", "Author: "+detail.Author.Name(), gin.H{"Detail": detail})
}

// ════════════════════════════════════════════════════════════════
// CREATE: GET/POST /catalog/author/create
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) CreateForm(c *gin.Context) {
	renderForm(c, http.StatusOK, "Create Author", model.AuthorForm{}, nil)
}

func (h *AuthorHandler) Create(c *gin.Context) {
	var f model.AuthorForm
	if err := c.ShouldBindWith(&f, binding.Form); err != nil {
		_ = c.Error(err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &f)
	if errs, ok := form.AsErrors(err); ok {
		renderForm(c, http.StatusUnprocessableEntity, "Create Author", f, errs)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, created.URL())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: GET/POST /catalog/author/:id/update
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) UpdateForm(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	author, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	renderForm(c, http.StatusOK, "Update Author", model.FormFromAuthor(author), nil)
}

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	var f model.AuthorForm
	if err := c.ShouldBindWith(&f, binding.Form); err != nil {
		_ = c.Error(err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &f)
	if errs, ok := form.AsErrors(err); ok {
		renderForm(c, http.StatusUnprocessableEntity, "Update Author", f, errs)
		return
	}
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	c.Redirect(http.StatusFound, updated.URL())
}

// ════════════════════════════════════════════════════════════════
// DELETE: GET/POST /catalog/author/:id/delete
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) DeleteForm(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	view.Page(c, http.StatusOK, "author_delete", "Delete Author", gin.H{"Detail": detail})
}

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	detail, err := h.service.Delete(c.Request.Context(), id)
	if errors.Is(err, shared.ErrInUse) {
		view.Page(c, http.StatusConflict, "author_delete", "Delete Author", gin.H{"Detail": detail})
		return
	}
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	c.Redirect(http.StatusFound, "/catalog/authors")
}

func renderForm(c *gin.Context, status int, title string, f model.AuthorForm, errs form.Errors) {
	view.Page(c, status, "author_form", title, gin.H{
		"Form":   f,
		"Errors": errs,
	})
}
