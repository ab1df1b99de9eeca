package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
)

type contact struct {
	Phone string `json:"phone" validate:"required,min=10"`
}

type signup struct {
	Name     string   `json:"name" validate:"notblank"`
	Birthday string   `json:"birthday" validate:"omitempty,isodate"`
	Start    string   `json:"start" validate:"omitempty,hhmm"`
	Consent  bool     `json:"consent" validate:"accepted"`
	Currency string   `json:"currency" validate:"omitempty,currency"`
	Contact  contact  `json:"contact"`
	Tags     []string `json:"tags" validate:"dive,min=1,max=50"`
}

func valid() signup {
	return signup{
		Name:     "Ana",
		Birthday: "1990-02-28",
		Start:    "07:30",
		Consent:  true,
		Currency: "EUR",
		Contact:  contact{Phone: "5551234567"},
	}
}

func fieldOf(t *testing.T, err error) string {
	t.Helper()
	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, httperr.KindValidation, be.Kind)
	return be.Field
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(valid()))
}

func TestStruct_ReportsJSONPath(t *testing.T) {
	s := valid()
	s.Contact.Phone = "123"

	err := Struct(s)

	assert.Equal(t, "contact.phone", fieldOf(t, err))
	assert.Contains(t, err.Error(), "phone must be at least 10 characters")
}

func TestStruct_CustomTags(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*signup)
		field string
	}{
		{"blank", func(s *signup) { s.Name = "   " }, "name"},
		{"bad date", func(s *signup) { s.Birthday = "1990-02-30" }, "birthday"},
		{"bad time", func(s *signup) { s.Start = "7:30pm" }, "start"},
		{"no consent", func(s *signup) { s.Consent = false }, "consent"},
		{"lowercase currency", func(s *signup) { s.Currency = "eur" }, "currency"},
		{"empty tag", func(s *signup) { s.Tags = []string{""} }, "tags[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mut(&s)
			assert.Equal(t, tt.field, fieldOf(t, Struct(s)))
		})
	}
}

func TestConsentMessage(t *testing.T) {
	s := valid()
	s.Consent = false

	var be httperr.BusinessError
	require.ErrorAs(t, Struct(s), &be)
	assert.Equal(t, "You must accept the terms and conditions", be.Message)
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "", SanitizeText(""))
	assert.Equal(t, "Hello", SanitizeText("<p>Hello</p><script>alert('x')</script>"))
	assert.Equal(t, "Tom & Jerry's notes", SanitizeText("  Tom & Jerry's notes "))
	assert.Equal(t, `Say "om"`, SanitizeText(`Say "om"`))
}

func TestSanitizeText_KeepsEscapedMarkupEscaped(t *testing.T) {
	got := SanitizeText("&lt;b&gt;bold&lt;/b&gt;")
	assert.NotContains(t, got, "<b>")
	assert.Equal(t, "&lt;b&gt;bold&lt;/b&gt;", got)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "jose-maria-lopez", Slugify("José María  López", 0))
	assert.Equal(t, "yoga-flow", Slugify("--Yoga!! Flow--", 0))
	assert.Equal(t, "", Slugify("???", 0))
	assert.Equal(t, "abc", Slugify("abc-def", 4))
}

func TestIsEmailDomainValid_Malformed(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsEmailDomainValid(ctx, "no-at-sign"))
	assert.False(t, IsEmailDomainValid(ctx, "trailing@"))
	assert.False(t, IsEmailDomainValid(ctx, "@example.com"))
	assert.False(t, IsEmailDomainValid(ctx, "ana@localhost"))
}
