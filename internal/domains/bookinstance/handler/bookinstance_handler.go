package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"library-catalog/internal/domains/bookinstance/model"
	"library-catalog/internal/domains/bookinstance/service"
	"library-catalog/internal/shared/form"
	"library-catalog/internal/shared/view"
)

const notFoundMessage = "Book copy not found"

type BookInstanceHandler struct {
	service service.ServiceInterface
}

func NewBookInstanceHandler(svc service.ServiceInterface) *BookInstanceHandler {
	return &BookInstanceHandler{service: svc}
}

// List godoc
// GET /catalog/bookinstances?status=Available&book=<id>&sort=due_back&order=asc
// Unknown status or book values yield an empty list.
func (h *BookInstanceHandler) List(c *gin.Context) {
	filter := model.Filter{
		Status: model.Status(c.Query("status")),
		Sort:   c.Query("sort"),
		Order:  c.Query("order"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		view.Page(c, http.StatusOK, "bookinstance_list", "Book Instance List", gin.H{"Instances": nil})
		return
	}
	if raw := c.Query("book"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			view.Page(c, http.StatusOK, "bookinstance_list", "Book Instance List", gin.H{"Instances": nil})
			return
		}
		filter.BookID = id
	}

	instances, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	view.Page(c, http.StatusOK, "bookinstance_list", "Book Instance List", gin.H{"Instances": instances})
}

func (h *BookInstanceHandler) Detail(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	view.Page(c, http.StatusOK, "bookinstance_detail", "Copy: "+detail.BookTitle(), gin.H{"Detail": detail})
}

// CreateForm preselects ?book=<id> so the book page can link straight here.
func (h *BookInstanceHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "Create BookInstance", model.BookInstanceForm{
		Book:   c.Query("book"),
		Status: string(model.StatusMaintenance),
	}, nil)
}

func (h *BookInstanceHandler) Create(c *gin.Context) {
	var f model.BookInstanceForm
	if err := c.ShouldBindWith(&f, binding.Form); err != nil {
		_ = c.Error(err)
		return
	}

	instance, err := h.service.Create(c.Request.Context(), &f)
	if errs, ok := form.AsErrors(err); ok {
		h.renderForm(c, http.StatusUnprocessableEntity, "Create BookInstance", f, errs)
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Redirect(http.StatusFound, instance.URL())
}

func (h *BookInstanceHandler) UpdateForm(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	instance, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	h.renderForm(c, http.StatusOK, "Update BookInstance", model.FormFromBookInstance(instance), nil)
}

func (h *BookInstanceHandler) Update(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	var f model.BookInstanceForm
	if err := c.ShouldBindWith(&f, binding.Form); err != nil {
		_ = c.Error(err)
		return
	}

	instance, err := h.service.Update(c.Request.Context(), id, &f)
	if errs, ok := form.AsErrors(err); ok {
		h.renderForm(c, http.StatusUnprocessableEntity, "Update BookInstance", f, errs)
		return
	}
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	c.Redirect(http.StatusFound, instance.URL())
}

func (h *BookInstanceHandler) DeleteForm(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	detail, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	view.Page(c, http.StatusOK, "bookinstance_delete", "Delete BookInstance", gin.H{"Detail": detail})
}

// Delete godoc
// POST /catalog/bookinstance/:id/delete
// Copies have no dependents, so deletion always proceeds.
func (h *BookInstanceHandler) Delete(c *gin.Context) {
	id, ok := view.ParamID(c, notFoundMessage)
	if !ok {
		return
	}

	if _, err := h.service.Delete(c.Request.Context(), id); err != nil {
		view.Fail(c, err, notFoundMessage)
		return
	}

	c.Redirect(http.StatusFound, "/catalog/bookinstances")
}

func (h *BookInstanceHandler) renderForm(c *gin.Context, status int, title string, f model.BookInstanceForm, errs form.Errors) {
	books, err := h.service.BookOptions(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	view.Page(c, status, "bookinstance_form", title, gin.H{
		"Form":     f,
		"Books":    books,
		"Statuses": model.Statuses,
		"Errors":   errs,
	})
}
