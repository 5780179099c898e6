package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-lookup/internal/api/http"
	"github.com/i474232898/weather-lookup/internal/history"
	"github.com/i474232898/weather-lookup/internal/mapview"
	"github.com/i474232898/weather-lookup/internal/scheduler"
	"github.com/i474232898/weather-lookup/internal/weather"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the weather lookup API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()
			return serve(a)
		},
	}
}

func serve(a *app) error {
	a.bus.Subscribe(mapview.EventMarkerRemoved, func(e mapview.Event) {
		log.WithFields(log.Fields{"marker": e.Marker.ID, "location": e.Marker.LocationName}).Debug("marker removed")
	})

	// Scheduler that periodically re-fetches saved pins into markers.
	sched := scheduler.New(a.cfg.PinRefreshInterval, a.mapView)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// Basic app configuration
	server := fiber.New(fiber.Config{
		AppName:               "weather-lookup",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	server.Use(logger.New())
	server.Use(recover.New())

	// Basic health endpoint
	server.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-lookup",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(server, &httpapi.Handlers{
		Weather:       a.service,
		SearchHistory: a.searchHistory,
		Map:           a.mapView,
		Tiles:         a.tiles,
	})

	go func() {
		log.WithField("port", a.cfg.Port).Info("listening")
		if err := server.Listen(":" + a.cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
	return nil
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <location>",
		Short: "Show current conditions for a location",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.service.Show(cmd.Context(), weather.TextQuery(strings.Join(args, " ")))
			if err != nil {
				return err
			}
			if _, err := a.searchHistory.Record(history.EntryFromResult(result)); err != nil {
				log.WithError(err).Warn("search history not persisted")
			}
			return printJSON(result)
		},
	}
}

func newForecastCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "forecast <location>",
		Short: "Show a forecast of up to three days",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.service.Forecast(cmd.Context(), weather.TextQuery(strings.Join(args, " ")), days)
			if err != nil {
				return err
			}
			return printJSON(struct {
				weather.ForecastResult
				Outlook weather.Outlook `json:"outlook"`
			}{result, weather.SummarizeForecast(result.Forecast)})
		},
	}
	cmd.Flags().IntVar(&days, "days", weather.MaxForecastDays, "number of forecast days (1-3)")
	return cmd
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Suggest locations matching text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			candidates, err := a.service.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printJSON(candidates)
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var clearAll bool
	cmd := &cobra.Command{
		Use:       "history [search|map]",
		Short:     "List or clear a history surface",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"search", "map"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			surface := "search"
			if len(args) == 1 {
				surface = args[0]
			}

			if surface == "map" {
				if clearAll {
					return a.mapView.ClearHistory()
				}
				return printJSON(a.mapView.History())
			}
			if clearAll {
				_, err := a.searchHistory.Clear()
				return err
			}
			return printJSON(a.searchHistory.List())
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "remove every entry")
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
