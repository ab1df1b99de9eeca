package program

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/shala-api/internal/httperr"
	"github.com/BruksfildServices01/shala-api/internal/models"
)

func sessions() datatypes.JSONSlice[models.Session] {
	return datatypes.JSONSlice[models.Session]{
		{Date: "2026-05-01", StartTime: "07:00", EndTime: "09:00", Title: "Day 1"},
	}
}

func TestTransitions(t *testing.T) {
	all := []Status{StatusDraft, StatusPublished, StatusCancelled, StatusCompleted}
	allowed := map[[2]Status]bool{
		{StatusDraft, StatusPublished}:     true,
		{StatusPublished, StatusCancelled}: true,
		{StatusPublished, StatusCompleted}: true,
	}

	for _, from := range all {
		for _, to := range all {
			p := &models.Program{Status: string(from), Sessions: sessions()}
			err := Transition(p, to)

			if allowed[[2]Status{from, to}] {
				require.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, string(to), p.Status)
				continue
			}
			require.Error(t, err, "%s -> %s", from, to)
			assert.True(t, httperr.IsBusiness(err, "invalid_status_transition"))
			assert.Contains(t, err.Error(), "Cannot change from "+string(from)+" to "+string(to))
			assert.Equal(t, string(from), p.Status)
		}
	}
}

func TestPublishRequiresSessions(t *testing.T) {
	p := &models.Program{Status: string(StatusDraft)}

	err := Transition(p, StatusPublished)

	assert.True(t, httperr.IsBusiness(err, "program_without_sessions"))
	assert.Equal(t, string(StatusDraft), p.Status)
}

func TestCopySlug(t *testing.T) {
	assert.Equal(t, "morning-flow-copy", CopySlug("morning-flow", 1))
	assert.Equal(t, "morning-flow-copy-2", CopySlug("morning-flow", 2))
	assert.Equal(t, "morning-flow-copy-3", CopySlug("morning-flow", 3))

	long := strings.Repeat("a", 100)
	got := CopySlug(long, 12)
	assert.Len(t, got, 100)
	assert.True(t, strings.HasSuffix(got, "-copy-12"))

	// A cut that lands on a hyphen must not leave "--copy".
	got = CopySlug(strings.Repeat("a", 94)+"-b", 1)
	assert.Equal(t, strings.Repeat("a", 94)+"-copy", got)
	assert.True(t, slugPattern.MatchString(got))

	for n := 1; n <= MaxCopyAttempts; n++ {
		for _, base := range []string{strings.Repeat("ab-", 32) + "ab", strings.Repeat("a", 93) + "-bc-d"} {
			assert.Regexp(t, slugPattern, CopySlug(base, n))
		}
	}
}

func TestDuplicate_LongAccentedName(t *testing.T) {
	src := &models.Program{Name: strings.Repeat("á", 60) + " Retiro de Año Nuevo en la Montaña"}

	dup := Duplicate(src)

	assert.True(t, utf8.ValidString(dup.Name))
	assert.Equal(t, 100, utf8.RuneCountInString(dup.Name))
	assert.True(t, strings.HasSuffix(dup.Name, " (Copy)"))

	short := Duplicate(&models.Program{Name: strings.Repeat("ñ", 60)})
	assert.Equal(t, strings.Repeat("ñ", 60)+" (Copy)", short.Name)
}

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, ValidateSlug("ashtanga-intro-2026"))

	for _, bad := range []string{"ab", "Has-Caps", "double--hyphen", "-lead", "trail-", "new", "published", strings.Repeat("x", 51)} {
		err := ValidateSlug(bad)
		kind, _ := httperr.KindOf(err)
		assert.Equal(t, httperr.KindValidation, kind, bad)
	}
}

func TestDuplicate(t *testing.T) {
	venueID := uuid.New()
	capacity := 12
	src := &models.Program{
		ID:                 uuid.New(),
		TeacherID:          uuid.New(),
		Name:               "Teacher Training",
		Slug:               "teacher-training",
		Status:             string(StatusPublished),
		VenueType:          string(VenueInPerson),
		VenueID:            &venueID,
		Sessions:           sessions(),
		Capacity:           &capacity,
		PriceAmount:        decimal.NewNullDecimal(decimal.RequireFromString("250.00")),
		PriceCurrency:      "EUR",
		RequiresHealthForm: true,
	}

	dup := Duplicate(src)

	assert.Equal(t, uuid.Nil, dup.ID)
	assert.Equal(t, "Teacher Training (Copy)", dup.Name)
	assert.Equal(t, string(StatusDraft), dup.Status)
	assert.Empty(t, dup.Sessions)
	assert.NotNil(t, dup.Sessions)
	assert.Equal(t, src.TeacherID, dup.TeacherID)
	assert.Equal(t, &venueID, dup.VenueID)
	assert.Equal(t, 12, *dup.Capacity)
	assert.True(t, dup.PriceAmount.Decimal.Equal(decimal.RequireFromString("250")))
	assert.True(t, dup.RequiresHealthForm)
	assert.Empty(t, dup.Slug)
	assert.Len(t, src.Sessions, 1)
}

func TestCanDelete(t *testing.T) {
	draft := &models.Program{Status: string(StatusDraft)}
	published := &models.Program{Status: string(StatusPublished)}

	assert.NoError(t, CanDelete(draft, 0))
	assert.True(t, httperr.IsBusiness(CanDelete(draft, 1), "program_has_bookings"))
	assert.True(t, httperr.IsBusiness(CanDelete(published, 0), "program_not_draft"))
}

func TestSnapshotTemplate(t *testing.T) {
	capacity := 20
	p := &models.Program{
		TeacherID:     uuid.New(),
		Sessions:      sessions(),
		Capacity:      &capacity,
		PriceCurrency: "USD",
		Notes:         "bring water",
		Status:        string(StatusPublished),
	}

	tpl := SnapshotTemplate(p, "Weekend intensive", "")

	require.NotNil(t, tpl.TeacherID)
	assert.Equal(t, p.TeacherID, *tpl.TeacherID)
	assert.Equal(t, FormatCustom, tpl.FormatType)
	assert.Equal(t, "bring water", tpl.DefaultNotes)
	assert.False(t, tpl.IsPlatformTemplate)

	tpl.DefaultSessions[0].Title = "changed"
	assert.Equal(t, "Day 1", p.Sessions[0].Title)
	assert.Equal(t, string(StatusPublished), p.Status)
}

func TestNormalizeMeetingURL(t *testing.T) {
	assert.Equal(t, "https://zoom.us/j/1", NormalizeMeetingURL("zoom.us/j/1"))
	assert.Equal(t, "https://meet.google.com/x", NormalizeMeetingURL(" https://meet.google.com/x "))
	assert.Equal(t, "", NormalizeMeetingURL(""))
}
