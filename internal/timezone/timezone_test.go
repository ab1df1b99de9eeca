package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, Location(""))
	assert.Equal(t, time.UTC, Location("Mars/Olympus"))
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
}

func TestSessionBounds(t *testing.T) {
	from, to, err := SessionBounds("2026-07-01", "07:00", "09:30", "Asia/Kolkata")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 1, 30, 0, 0, time.UTC), from.UTC())
	assert.Equal(t, 150*time.Minute, to.Sub(from))

	_, _, err = SessionBounds("2026-07-01", "09:00", "09:00", "UTC")
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	_, _, err = SessionBounds("2026-13-01", "09:00", "10:00", "UTC")
	assert.Error(t, err)
}
