package weather

import (
	"errors"
	"strings"
	"time"

	// Timezone ids come from the upstream; do not depend on the host's zoneinfo.
	_ "time/tzdata"
)

const dateLayout = "2006-01-02"

var errEmptyZone = errors.New("timezone id is empty")

// clockLayouts are the accepted sunrise/sunset formats, 12-hour first.
var clockLayouts = []string{
	"3:04 PM",
	"03:04 PM",
	"3:04PM",
	"15:04",
	"15:04:05",
}

// AstronomyDate picks the calendar date used for the astronomy lookup: the
// first token of the location's local time, else today in its timezone,
// else today in process-local time.
func AstronomyDate(loc *LocationPayload, now time.Time) string {
	if loc != nil {
		if fields := strings.Fields(loc.Localtime); len(fields) > 0 {
			return fields[0]
		}
		if tz, err := loadZone(loc.TzID); err == nil {
			return now.In(tz).Format(dateLayout)
		}
	}
	return now.In(time.Local).Format(dateLayout)
}

// ResolveIsDay decides whether it is daytime at the location.
//
// An upstream flag of 0 or 1 is used as-is. Otherwise sunrise <= now < sunset
// is evaluated in the location's timezone on the given date. When neither
// source is usable the result is nil (unknown), never a guess.
func ResolveIsDay(flag *int, astro *Astronomy, tzID, date string, now time.Time) *bool {
	if flag != nil && (*flag == 0 || *flag == 1) {
		v := *flag == 1
		return &v
	}
	if astro == nil || tzID == "" {
		return nil
	}
	tz, err := loadZone(tzID)
	if err != nil {
		return nil
	}

	localNow := now.In(tz)
	day, err := time.ParseInLocation(dateLayout, date, tz)
	if err != nil {
		day = time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, tz)
	}

	sunrise, ok := parseClock(day, astro.Sunrise)
	if !ok {
		return nil
	}
	sunset, ok := parseClock(day, astro.Sunset)
	if !ok {
		return nil
	}

	v := !localNow.Before(sunrise) && localNow.Before(sunset)
	return &v
}

// parseClock places a wall-clock string on day (midnight in the target zone).
func parseClock(day time.Time, s string) (time.Time, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(day.Year(), day.Month(), day.Day(),
			t.Hour(), t.Minute(), t.Second(), 0, day.Location()), true
	}
	return time.Time{}, false
}

func loadZone(id string) (*time.Location, error) {
	if id == "" {
		return nil, errEmptyZone
	}
	return time.LoadLocation(id)
}
