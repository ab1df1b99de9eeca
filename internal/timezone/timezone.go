package timezone

import (
	"errors"
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	return time.UTC
}

func Now() time.Time {
	return time.Now().UTC()
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

var ErrEndBeforeStart = errors.New("session ends before it starts")

// At combines a YYYY-MM-DD date and an HH:MM clock time in tz.
func At(date, hhmm, tz string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, Location(tz))
}

// SessionBounds resolves a session's start and end in the teacher's zone.
func SessionBounds(date, start, end, tz string) (time.Time, time.Time, error) {
	from, err := At(date, start, tz)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := At(date, end, tz)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, ErrEndBeforeStart
	}
	return from, to, nil
}
