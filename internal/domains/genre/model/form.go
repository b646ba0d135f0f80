package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/form"
)

const MaxNameLength = 100

type GenreForm struct {
	Name string `form:"name"`
}

func (f *GenreForm) Sanitize() {
	f.Name = form.Trim(f.Name)
}

func (f GenreForm) Validate() form.Errors {
	return form.Validate(
		form.NewField("name", f.Name,
			validation.Required.Error("Genre name must be specified"),
			validation.RuneLength(1, MaxNameLength).Error("Genre name must be at most 100 characters"),
		),
	)
}

func (f GenreForm) Apply(g *Genre) {
	g.Name = f.Name
}

func FormFromGenre(g *Genre) GenreForm {
	return GenreForm{Name: g.Name}
}
