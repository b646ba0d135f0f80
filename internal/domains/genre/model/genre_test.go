package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenre_URL(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "/catalog/genre/"+id.String(), Genre{ID: id, Name: "Poetry"}.URL())
	assert.Equal(t, Genre{ID: id}.URL(), URLFor(id))
}

func TestGenreForm_Validate(t *testing.T) {
	f := GenreForm{Name: "   "}
	f.Sanitize()
	errs := f.Validate()
	assert.Equal(t, "Genre name must be specified", errs.Get("name"))

	f = GenreForm{Name: " Science Fiction "}
	f.Sanitize()
	assert.Empty(t, f.Validate())

	var g Genre
	f.Apply(&g)
	assert.Equal(t, "Science Fiction", g.Name)
	assert.Equal(t, f, FormFromGenre(&g))
}
