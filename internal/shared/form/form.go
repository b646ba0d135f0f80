package form

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// InputDateLayout is the layout of <input type="date"> values.
const InputDateLayout = "2006-01-02"

// FieldError is one failed rule, scoped to the submitted field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors keeps failures in the order the fields were checked.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether field failed at least one rule.
func (e Errors) Has(field string) bool {
	return e.Get(field) != ""
}

// Get returns the first message recorded for field.
func (e Errors) Get(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// OrNil converts an empty list into a nil error.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Field pairs a form value with the rules applied to it.
type Field struct {
	Name  string
	Value interface{}
	Rules []validation.Rule
}

// NewField is shorthand for building a Field inline.
func NewField(name string, value interface{}, rules ...validation.Rule) Field {
	return Field{Name: name, Value: value, Rules: rules}
}

// Validate runs each field's rules in order. A field stops at its first failing rule.
func Validate(fields ...Field) Errors {
	var errs Errors
	for _, f := range fields {
		if err := validation.Validate(f.Value, f.Rules...); err != nil {
			errs = append(errs, FieldError{Field: f.Name, Message: message(err)})
		}
	}
	return errs
}

// AsErrors extracts the field list from err, if it carries one.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

func message(err error) string {
	var ve validation.Error
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}

// Trim strips surrounding whitespace from a submitted value.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// ParseDate accepts YYYY-MM-DD or RFC 3339. Empty input means absent.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(InputDateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &t, nil
}

// FormatInputDate renders t for a date input; nil renders empty.
func FormatInputDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(InputDateLayout)
}

// Date fails with msg when a non-empty string does not parse as a date.
func Date(msg string) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if _, err := ParseDate(s); err != nil {
			return validation.NewError("validation_invalid_date", msg)
		}
		return nil
	})
}
