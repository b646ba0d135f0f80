package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAuthor_Lifespan(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{"neither", Author{}, "lifespan unknown"},
		{"birth only", Author{DateOfBirth: date(1920, time.January, 2)}, "Jan 2, 1920 - unknown or still living"},
		{"death only", Author{DateOfDeath: date(1992, time.April, 6)}, "unknown - Apr 6, 1992"},
		{"both", Author{DateOfBirth: date(1920, time.January, 2), DateOfDeath: date(1992, time.April, 6)}, "Jan 2, 1920 - Apr 6, 1992"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.author.Lifespan())
		})
	}
}

func TestAuthor_NameProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		first := rapid.String().Draw(t, "first")
		family := rapid.String().Draw(t, "family")
		a := Author{FirstName: first, FamilyName: family}
		if got := a.Name(); got != family+", "+first {
			t.Fatalf("Name() = %q", got)
		}
	})
}

func TestAuthor_URLProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), 16, 16).Draw(t, "id")
		id, err := uuid.FromBytes(raw)
		if err != nil {
			t.Fatal(err)
		}
		a := Author{ID: id, FirstName: rapid.String().Draw(t, "first")}
		b := Author{ID: id}
		if a.URL() != b.URL() || a.URL() != "/catalog/author/"+id.String() {
			t.Fatalf("URL() not determined by id: %q vs %q", a.URL(), b.URL())
		}
	})
}

func TestAuthorForm_Validate(t *testing.T) {
	t.Run("missing names in order", func(t *testing.T) {
		f := AuthorForm{FirstName: "   ", FamilyName: ""}
		f.Sanitize()
		errs := f.Validate()
		if assert.Len(t, errs, 2) {
			assert.Equal(t, "first_name", errs[0].Field)
			assert.Equal(t, "First name must be specified", errs[0].Message)
			assert.Equal(t, "Family name must be specified", errs[1].Message)
		}
	})

	t.Run("bad dates", func(t *testing.T) {
		errs := AuthorForm{FirstName: "A", FamilyName: "B", DateOfBirth: "x", DateOfDeath: "1999-13-01"}.Validate()
		assert.Equal(t, "Invalid date of birth", errs.Get("date_of_birth"))
		assert.Equal(t, "Invalid date of death", errs.Get("date_of_death"))
	})

	t.Run("death before birth", func(t *testing.T) {
		errs := AuthorForm{FirstName: "A", FamilyName: "B", DateOfBirth: "2000-01-02", DateOfDeath: "2000-01-01"}.Validate()
		assert.True(t, errs.Has("date_of_death"))
	})

	t.Run("too long", func(t *testing.T) {
		long := make([]rune, MaxNameLength+1)
		for i := range long {
			long[i] = 'é'
		}
		errs := AuthorForm{FirstName: string(long), FamilyName: "B"}.Validate()
		assert.True(t, errs.Has("first_name"))
	})

	t.Run("valid applies dates", func(t *testing.T) {
		f := AuthorForm{FirstName: " Isaac ", FamilyName: "Asimov", DateOfBirth: "1920-01-02"}
		f.Sanitize()
		assert.Empty(t, f.Validate())

		var a Author
		f.Apply(&a)
		assert.Equal(t, "Asimov, Isaac", a.Name())
		assert.Equal(t, date(1920, time.January, 2), a.DateOfBirth)
		assert.Nil(t, a.DateOfDeath)
		assert.Equal(t, f, FormFromAuthor(&a))
	})
}

func TestFilter_Normalize(t *testing.T) {
	assert.Equal(t, Filter{Sort: SortFamilyName, Order: "asc"}, Filter{}.Normalize())
	assert.Equal(t, Filter{Sort: SortDateOfBirth, Order: "desc"}, Filter{Sort: "date_of_birth", Order: "desc"}.Normalize())
	assert.Equal(t, Filter{Sort: SortFamilyName, Order: "asc"}, Filter{Sort: "password", Order: "sideways"}.Normalize())
}
