package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"library-catalog/internal/shared/form"
	"library-catalog/internal/shared/utils"
)

const (
	MaxTitleLength   = 200
	MaxSummaryLength = 2000
)

// BookForm holds the raw values of the create/update form. Genre carries
// one value per checked box.
type BookForm struct {
	Title   string   `form:"title"`
	Author  string   `form:"author"`
	Summary string   `form:"summary"`
	ISBN    string   `form:"isbn"`
	Genre   []string `form:"genre"`
}

func (f *BookForm) Sanitize() {
	f.Title = form.Trim(f.Title)
	f.Author = form.Trim(f.Author)
	f.Summary = form.Trim(f.Summary)
	f.ISBN = form.Trim(f.ISBN)
	f.Genre = lo.Compact(lo.Map(f.Genre, func(s string, _ int) string { return form.Trim(s) }))
}

func (f BookForm) Validate() form.Errors {
	return form.Validate(
		form.NewField("title", f.Title,
			validation.Required.Error("Title must be specified"),
			validation.RuneLength(1, MaxTitleLength).Error("Title must be at most 200 characters"),
		),
		form.NewField("author", f.Author,
			validation.Required.Error("Author must be specified"),
			is.UUID.Error("Author must be specified"),
		),
		form.NewField("summary", f.Summary,
			validation.RuneLength(0, MaxSummaryLength).Error("Summary must be at most 2000 characters"),
		),
		form.NewField("isbn", f.ISBN,
			is.ISBN.Error("ISBN must be a valid ISBN-10 or ISBN-13"),
		),
		form.NewField("genre", f.Genre, validation.By(allUUIDs)),
	)
}

func allUUIDs(value interface{}) error {
	ids, _ := value.([]string)
	for _, s := range ids {
		if _, err := uuid.Parse(s); err != nil {
			return validation.NewError("validation_invalid_genre", "Invalid genre")
		}
	}
	return nil
}

// Apply copies validated values onto b. Call only after Validate succeeded.
func (f BookForm) Apply(b *Book) {
	b.Title = f.Title
	b.AuthorID = uuid.MustParse(f.Author)
	b.Summary = f.Summary
	b.ISBN = f.ISBN
	b.GenreIDs = f.GenreIDs()
}

// GenreIDs returns the parseable, de-duplicated genre ids.
func (f BookForm) GenreIDs() []uuid.UUID {
	ids := lo.FilterMap(f.Genre, func(s string, _ int) (uuid.UUID, bool) {
		id := utils.ParseStringToUUID(s)
		return id, id != uuid.Nil
	})
	return lo.Uniq(ids)
}

// Checked is used by the form template to keep genre boxes ticked.
func (f BookForm) Checked(genreID uuid.UUID) bool {
	return lo.Contains(f.Genre, genreID.String())
}

func FormFromBook(b *Book) BookForm {
	return BookForm{
		Title:   b.Title,
		Author:  b.AuthorID.String(),
		Summary: b.Summary,
		ISBN:    b.ISBN,
		Genre:   lo.Map(b.GenreIDs, func(id uuid.UUID, _ int) string { return id.String() }),
	}
}
