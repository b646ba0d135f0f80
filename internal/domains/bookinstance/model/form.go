package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"library-catalog/internal/shared/form"
)

const MaxImprintLength = 200

// BookInstanceForm holds the raw values of the create/update form.
type BookInstanceForm struct {
	Book    string `form:"book"`
	Imprint string `form:"imprint"`
	Status  string `form:"status"`
	DueBack string `form:"due_back"`
}

// Sanitize trims every field; a blank status becomes Maintenance.
func (f *BookInstanceForm) Sanitize() {
	f.Book = form.Trim(f.Book)
	f.Imprint = form.Trim(f.Imprint)
	f.Status = form.Trim(f.Status)
	f.DueBack = form.Trim(f.DueBack)
	if f.Status == "" {
		f.Status = string(StatusMaintenance)
	}
}

func (f BookInstanceForm) Validate() form.Errors {
	statuses := make([]interface{}, len(Statuses))
	for i, s := range Statuses {
		statuses[i] = string(s)
	}

	return form.Validate(
		form.NewField("book", f.Book,
			validation.Required.Error("Book must be specified"),
			is.UUID.Error("Book must be specified"),
		),
		form.NewField("imprint", f.Imprint,
			validation.Required.Error("Imprint must be specified"),
			validation.RuneLength(1, MaxImprintLength).Error("Imprint must be at most 200 characters"),
		),
		form.NewField("status", f.Status,
			validation.In(statuses...).Error("Invalid status"),
		),
		form.NewField("due_back", f.DueBack, form.Date("Invalid date")),
	)
}

// Apply copies validated values onto bi. Call only after Validate succeeded.
func (f BookInstanceForm) Apply(bi *BookInstance) {
	bi.BookID = uuid.MustParse(f.Book)
	bi.Imprint = f.Imprint
	bi.Status = Status(f.Status)
	bi.DueBack, _ = form.ParseDate(f.DueBack)
}

// SelectedBook is the book id the form should keep selected, or uuid.Nil.
func (f BookInstanceForm) SelectedBook() uuid.UUID {
	id, err := uuid.Parse(f.Book)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func FormFromBookInstance(bi *BookInstance) BookInstanceForm {
	return BookInstanceForm{
		Book:    bi.BookID.String(),
		Imprint: bi.Imprint,
		Status:  string(bi.Status),
		DueBack: form.FormatInputDate(bi.DueBack),
	}
}
