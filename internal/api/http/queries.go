package httpapi

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-lookup/internal/weather"
)

// locationQuery holds query parameters for identifying a location: either
// q or both lat and lng.
type locationQuery struct {
	Q   string   `validate:"required_without=Lat"`
	Lat *float64 `validate:"omitempty,latitude"`
	Lng *float64 `validate:"omitempty,longitude"`
}

func (l *locationQuery) bind(c *fiber.Ctx) error {
	l.Q = strings.TrimSpace(c.Query("q"))

	var err error
	if l.Lat, err = optionalFloat(c, "lat"); err != nil {
		return err
	}
	if l.Lng, err = optionalFloat(c, "lng"); err != nil {
		return err
	}
	if (l.Lat == nil) != (l.Lng == nil) {
		return errors.New("lat and lng must be given together")
	}
	return validate.Struct(l)
}

func (l locationQuery) toQuery() weather.LocationQuery {
	if l.Lat != nil && l.Lng != nil {
		return weather.CoordQuery(*l.Lat, *l.Lng)
	}
	return weather.TextQuery(l.Q)
}

// forecastQuery holds query parameters for the forecast endpoint.
type forecastQuery struct {
	Location locationQuery
	Days     int `validate:"min=1,max=3"`
}

func (f *forecastQuery) bind(c *fiber.Ctx) error {
	if err := f.Location.bind(c); err != nil {
		return err
	}

	daysStr := c.Query("days")
	if daysStr == "" {
		return errors.New("days query parameter is required")
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil {
		return errors.New("days must be an integer")
	}
	f.Days = days
	return validate.Struct(f)
}

// clickRequest is the body of a map click.
type clickRequest struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lng *float64 `json:"lng" validate:"required,longitude"`
}

func optionalFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New(key + " must be a number")
	}
	return &v, nil
}
