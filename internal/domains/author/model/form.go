package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-catalog/internal/shared/form"
)

const MaxNameLength = 100

// AuthorForm holds the raw values of the create/update form.
type AuthorForm struct {
	FirstName   string `form:"first_name"`
	FamilyName  string `form:"family_name"`
	DateOfBirth string `form:"date_of_birth"`
	DateOfDeath string `form:"date_of_death"`
}

// Sanitize trims every field in place.
func (f *AuthorForm) Sanitize() {
	f.FirstName = form.Trim(f.FirstName)
	f.FamilyName = form.Trim(f.FamilyName)
	f.DateOfBirth = form.Trim(f.DateOfBirth)
	f.DateOfDeath = form.Trim(f.DateOfDeath)
}

// Validate checks fields in form order, then the date range.
func (f AuthorForm) Validate() form.Errors {
	errs := form.Validate(
		form.NewField("first_name", f.FirstName,
			validation.Required.Error("First name must be specified"),
			validation.RuneLength(1, MaxNameLength).Error("First name must be at most 100 characters"),
		),
		form.NewField("family_name", f.FamilyName,
			validation.Required.Error("Family name must be specified"),
			validation.RuneLength(1, MaxNameLength).Error("Family name must be at most 100 characters"),
		),
		form.NewField("date_of_birth", f.DateOfBirth, form.Date("Invalid date of birth")),
		form.NewField("date_of_death", f.DateOfDeath, form.Date("Invalid date of death")),
	)
	if errs.Has("date_of_birth") || errs.Has("date_of_death") {
		return errs
	}

	birth, _ := form.ParseDate(f.DateOfBirth)
	death, _ := form.ParseDate(f.DateOfDeath)
	if birth != nil && death != nil && death.Before(*birth) {
		errs = append(errs, form.FieldError{Field: "date_of_death", Message: "Date of death must not be before date of birth"})
	}
	return errs
}

// Apply copies validated values onto a. Call only after Validate succeeded.
func (f AuthorForm) Apply(a *Author) {
	a.FirstName = f.FirstName
	a.FamilyName = f.FamilyName
	a.DateOfBirth = mustDate(f.DateOfBirth)
	a.DateOfDeath = mustDate(f.DateOfDeath)
}

// FormFromAuthor pre-fills the update form.
func FormFromAuthor(a *Author) AuthorForm {
	return AuthorForm{
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		DateOfBirth: form.FormatInputDate(a.DateOfBirth),
		DateOfDeath: form.FormatInputDate(a.DateOfDeath),
	}
}

func mustDate(s string) *time.Time {
	t, _ := form.ParseDate(s)
	return t
}
