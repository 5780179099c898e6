package httpapi

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/weather-lookup/internal/history"
	"github.com/i474232898/weather-lookup/internal/mapview"
	"github.com/i474232898/weather-lookup/internal/weather"
	"github.com/i474232898/weather-lookup/internal/weather/providers"
)

var validate = validator.New()

// Handlers bundles the components the HTTP API exposes.
type Handlers struct {
	Weather       *weather.Service
	SearchHistory *history.Ledger[history.Entry]
	Map           *mapview.Map
	Tiles         *providers.OpenWeatherTiles
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, h *Handlers) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", h.current)
	v1.Get("/weather/forecast", h.forecast)
	v1.Get("/weather/astronomy", h.astronomy)
	v1.Get("/weather/search", h.search)

	v1.Get("/history/:surface", h.listHistory)
	v1.Delete("/history/:surface", h.clearHistory)
	v1.Delete("/history/:surface/:index", h.removeHistory)

	v1.Post("/map/click", h.mapClick)
	v1.Get("/map/markers", func(c *fiber.Ctx) error { return c.JSON(h.Map.Markers()) })
	v1.Get("/map/pins", func(c *fiber.Ctx) error { return c.JSON(h.Map.Pins()) })
	v1.Get("/map/layers", h.mapLayers)
	v1.Post("/map/details/:name", h.mapDetails)
	v1.Post("/map/drawer/:name", h.mapDrawer)
}

func (h *Handlers) current(c *fiber.Ctx) error {
	var req locationQuery
	if err := req.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result, err := h.Weather.Show(c.UserContext(), req.toQuery())
	if err != nil {
		return toFiberError(err)
	}

	if _, err := h.SearchHistory.Record(history.EntryFromResult(result)); err != nil {
		log.WithError(err).Warn("search history not persisted")
	}
	return c.JSON(result)
}

func (h *Handlers) forecast(c *fiber.Ctx) error {
	var req forecastQuery
	if err := req.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result, err := h.Weather.Forecast(c.UserContext(), req.Location.toQuery(), req.Days)
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(fiber.Map{
		"location":   result.Location,
		"current":    result.Current,
		"isDay":      result.IsDay,
		"airQuality": result.AirQuality,
		"aqiBand":    result.AQIBand,
		"forecast":   result.Forecast,
		"alerts":     result.Alerts,
		"outlook":    weather.SummarizeForecast(result.Forecast),
	})
}

func (h *Handlers) astronomy(c *fiber.Ctx) error {
	var req locationQuery
	if err := req.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	date := c.Query("dt")
	if date != "" {
		if err := validate.Var(date, "datetime=2006-01-02"); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "dt must be formatted as YYYY-MM-DD")
		}
	}

	astro, err := h.Weather.Astronomy(c.UserContext(), req.toQuery(), date)
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(astro)
}

func (h *Handlers) search(c *fiber.Ctx) error {
	candidates, err := h.Weather.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(candidates)
}

func (h *Handlers) listHistory(c *fiber.Ctx) error {
	switch c.Params("surface") {
	case surfaceSearch:
		return c.JSON(h.SearchHistory.List())
	case surfaceMap:
		return c.JSON(h.Map.History())
	default:
		return errUnknownSurface
	}
}

func (h *Handlers) clearHistory(c *fiber.Ctx) error {
	var err error
	switch c.Params("surface") {
	case surfaceSearch:
		_, err = h.SearchHistory.Clear()
	case surfaceMap:
		err = h.Map.ClearHistory()
	default:
		return errUnknownSurface
	}
	if err != nil {
		return toFiberError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) removeHistory(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "index must be an integer")
	}

	var entries []history.Entry
	switch c.Params("surface") {
	case surfaceSearch:
		entries, err = h.SearchHistory.Remove(index)
	case surfaceMap:
		entries, err = h.Map.RemoveHistory(index)
	default:
		return errUnknownSurface
	}
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(entries)
}

func (h *Handlers) mapClick(c *fiber.Ctx) error {
	var req clickRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "body must be JSON with lat and lng")
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	marker, err := h.Map.Click(c.UserContext(), *req.Lat, *req.Lng)
	if errors.Is(err, mapview.ErrThrottled) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if err != nil && marker.LocationName == "" {
		return toFiberError(err)
	}
	if err != nil {
		log.WithError(err).Warn("map history not persisted")
	}
	return c.Status(fiber.StatusCreated).JSON(marker)
}

func (h *Handlers) mapLayers(c *fiber.Ctx) error {
	layers, err := h.Tiles.Layers()
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(layers)
}

func (h *Handlers) mapDetails(c *fiber.Ctx) error {
	return h.mapRequest(c, h.Map.ShowDetails)
}

func (h *Handlers) mapDrawer(c *fiber.Ctx) error {
	return h.mapRequest(c, h.Map.OpenDrawer)
}

func (h *Handlers) mapRequest(c *fiber.Ctx, fn func(string) ([]history.Entry, error)) error {
	name := strings.TrimSpace(c.Params("name"))
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "location name is required")
	}
	entries, err := fn(name)
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(entries)
}

const (
	surfaceSearch = "search"
	surfaceMap    = "map"
)

var errUnknownSurface = fiber.NewError(fiber.StatusNotFound, "unknown history surface; use search or map")

// ErrorHandler renders every error as the JSON error envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	// Centralized error response
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// toFiberError maps service errors to HTTP statuses. Upstream messages are
// passed through unchanged.
func toFiberError(err error) error {
	var upstream *weather.UpstreamError
	switch {
	case errors.As(err, &upstream):
		return fiber.NewError(fiber.StatusBadRequest, upstream.Message)
	case errors.Is(err, weather.ErrInvalidQuery):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrConfiguration):
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	case errors.Is(err, weather.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, "weather service timed out")
	case errors.Is(err, weather.ErrNetwork):
		return fiber.NewError(fiber.StatusBadGateway, "weather service unreachable")
	default:
		log.WithError(err).Error("request failed")
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
