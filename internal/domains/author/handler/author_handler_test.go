package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/author/model"
	"library-catalog/internal/domains/author/repository"
	"library-catalog/internal/domains/author/service"
	bookModel "library-catalog/internal/domains/book/model"
	bookRepo "library-catalog/internal/domains/book/repository"
	"library-catalog/internal/shared"
	"library-catalog/internal/shared/view"
)

type fixture struct {
	router  *gin.Engine
	authors repository.RepositoryInterface
	books   bookRepo.RepositoryInterface
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	authors := repository.NewMemoryRepository()
	books := bookRepo.NewMemoryRepository()
	h := NewAuthorHandler(service.NewAuthorService(authors, books, shared.NopNotifier{}))

	r := gin.New()
	r.SetHTMLTemplate(view.Templates())
	r.GET("/catalog/authors", h.List)
	r.GET("/catalog/author/create", h.CreateForm)
	r.POST("/catalog/author/create", h.Create)
	r.GET("/catalog/author/:id", h.Detail)
	r.GET("/catalog/author/:id/update", h.UpdateForm)
	r.POST("/catalog/author/:id/update", h.Update)
	r.GET("/catalog/author/:id/delete", h.DeleteForm)
	r.POST("/catalog/author/:id/delete", h.Delete)

	return &fixture{router: r, authors: authors, books: books}
}

func (f *fixture) do(method, target string, values url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if values != nil {
		body = strings.NewReader(values.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, body)
	if values != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestAuthorHandler_ListEmpty(t *testing.T) {
	f := setup(t)

	w := f.do(http.MethodGet, "/catalog/authors", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Author List")
}

func TestAuthorHandler_CreateRedirectsToDetail(t *testing.T) {
	f := setup(t)

	w := f.do(http.MethodPost, "/catalog/author/create", url.Values{
		"first_name":    {"Isaac"},
		"family_name":   {"Asimov"},
		"date_of_birth": {"1920-01-02"},
	})

	require.Equal(t, http.StatusFound, w.Code)
	list, err := f.authors.FindAll(context.Background(), model.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, list[0].URL(), w.Header().Get("Location"))

	detail := f.do(http.MethodGet, list[0].URL(), nil)
	assert.Equal(t, http.StatusOK, detail.Code)
	assert.Contains(t, detail.Body.String(), "Asimov, Isaac")
}

func TestAuthorHandler_CreateInvalidRerenders(t *testing.T) {
	f := setup(t)

	w := f.do(http.MethodPost, "/catalog/author/create", url.Values{
		"first_name":  {"<b>Isaac</b>"},
		"family_name": {""},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Family name must be specified")
	assert.Contains(t, w.Body.String(), "&lt;b&gt;Isaac&lt;/b&gt;", "submitted values are kept and escaped")

	n, err := f.authors.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAuthorHandler_NotFound(t *testing.T) {
	f := setup(t)

	for _, target := range []string{
		"/catalog/author/" + uuid.NewString(),
		"/catalog/author/not-a-uuid",
		"/catalog/author/" + uuid.NewString() + "/update",
		"/catalog/author/" + uuid.NewString() + "/delete",
	} {
		w := f.do(http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, target)
	}
}

func TestAuthorHandler_DeleteRestrictedWhileBooksExist(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	author, err := f.authors.Create(ctx, &model.Author{ID: uuid.New(), FirstName: "Ursula", FamilyName: "Le Guin"})
	require.NoError(t, err)
	_, err = f.books.Create(ctx, &bookModel.Book{ID: uuid.New(), Title: "The Dispossessed", AuthorID: author.ID, Summary: "s", ISBN: "9780060512750"})
	require.NoError(t, err)

	w := f.do(http.MethodPost, author.URL()+"/delete", url.Values{})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "The Dispossessed")

	_, err = f.authors.FindByID(ctx, author.ID)
	assert.NoError(t, err)
}

func TestAuthorHandler_DeleteRedirectsToList(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	author, err := f.authors.Create(ctx, &model.Author{ID: uuid.New(), FirstName: "Ursula", FamilyName: "Le Guin"})
	require.NoError(t, err)

	w := f.do(http.MethodPost, author.URL()+"/delete", url.Values{})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/catalog/authors", w.Header().Get("Location"))

	_, err = f.authors.FindByID(ctx, author.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
