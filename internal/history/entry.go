package history

import (
	"bytes"
	"encoding/json"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// Entry is a remembered location plus the display fields captured when it
// was looked up. The fields are never refreshed afterwards.
type Entry struct {
	Name         string   `json:"name"`
	Condition    string   `json:"condition,omitempty"`
	Icon         string   `json:"icon,omitempty"`
	TemperatureC *float64 `json:"temperatureC,omitempty"`
	IsDay        *bool    `json:"isDay,omitempty"`
}

// EntryFromResult captures the display fields of a lookup.
func EntryFromResult(r weather.WeatherResult) Entry {
	temp := r.Current.TemperatureC
	e := Entry{
		Name:         r.Location.Key(),
		Condition:    r.Current.Condition,
		Icon:         r.Current.Icon,
		TemperatureC: &temp,
	}
	if r.IsDay != nil {
		v := *r.IsDay
		e.IsDay = &v
	}
	return e
}

type entryFields Entry

// MarshalJSON stores name-only entries as bare strings, the format the map
// history has always used.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.Condition == "" && e.Icon == "" && e.TemperatureC == nil && e.IsDay == nil {
		return json.Marshal(e.Name)
	}
	return json.Marshal(entryFields(e))
}

// UnmarshalJSON accepts both a bare name and the object form.
func (e *Entry) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var name string
		if err := json.Unmarshal(b, &name); err != nil {
			return err
		}
		*e = Entry{Name: name}
		return nil
	}
	var f entryFields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*e = Entry(f)
	return nil
}

// SameEntry compares entries by location name.
func SameEntry(a, b Entry) bool {
	return a.Name == b.Name
}

// Pin is a map position the user fetched weather for.
type Pin struct {
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	LocationName string  `json:"locationName"`
}

// SamePin compares pins by exact coordinates.
func SamePin(a, b Pin) bool {
	return a.Lat == b.Lat && a.Lng == b.Lng
}
