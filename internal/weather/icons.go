package weather

import (
	"strings"

	"github.com/i474232898/weather-lookup/internal/common"
)

// IconNotAvailable is returned when no table entry matches.
const IconNotAvailable = "not-available"

type iconRule struct {
	substring string
	icon      string
}

// iconTable maps condition substrings to animated icon names. First match
// wins, so more specific phrases precede the generic ones they contain.
var iconTable = []iconRule{
	{"thunder", "thunderstorms"},
	{"lightning", "thunderstorms"},
	{"storm", "thunderstorms"},
	{"partly cloudy", "partly-cloudy-day"},
	{"light rain", "rain"},
	{"heavy rain", "rain"},
	{"clear", "clear-day"},
	{"sunny", "clear-day"},
	{"overcast", "overcast"},
	{"cloudy", "cloudy"},
	{"drizzle", "drizzle"},
	{"rain", "rain"},
	{"blizzard", "snow"},
	{"sleet", "sleet"},
	{"snow", "snow"},
	{"hail", "hail"},
	{"fog", "fog"},
	{"mist", "mist"},
	{"haze", "haze"},
	{"smoke", "smoke"},
	{"dust", "dust"},
	{"tornado", "tornado"},
	{"hurricane", "hurricane"},
}

// IconFor returns the animated icon name for a condition text. Day icons
// switch to their night variant only when isDay is known to be false.
func IconFor(condition string, isDay *bool) string {
	c := strings.ToLower(condition)
	for _, rule := range iconTable {
		if !strings.Contains(c, rule.substring) {
			continue
		}
		if isDay != nil && !*isDay && strings.Contains(rule.icon, "-day") {
			return strings.Replace(rule.icon, "-day", "-night", 1)
		}
		return rule.icon
	}
	return IconNotAvailable
}

// Classify maps free-text condition descriptions to a Condition category.
func Classify(text string) Condition {
	t := strings.ToLower(text)
	switch {
	case t == "":
		return ConditionUnknown
	case common.HasAny(t, "thunder", "storm"):
		return ConditionStorm
	case common.HasAny(t, "snow", "sleet", "blizzard", "ice pellets"):
		return ConditionSnow
	case common.HasAny(t, "rain", "shower", "drizzle"):
		return ConditionRain
	case common.HasAny(t, "fog", "mist", "haze"):
		return ConditionMist
	case common.HasAny(t, "cloud", "overcast"):
		return ConditionCloudy
	case common.HasAny(t, "sunny", "clear"):
		return ConditionClear
	default:
		return ConditionUnknown
	}
}

// apiIconURL makes protocol-relative upstream icon URLs absolute.
func apiIconURL(icon string) string {
	if strings.HasPrefix(icon, "//") {
		return "https:" + icon
	}
	return icon
}
