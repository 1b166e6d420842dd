package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
	"github.com/i474232898/weather-dashboard/internal/i18n"
	"github.com/i474232898/weather-dashboard/internal/weather"
)

var validate = validator.New()

// Preferences is the session's language and unit settings.
type Preferences interface {
	Language() string
	Units() i18n.Units
	SetLanguage(lang string) bool
	SetUnits(units i18n.Units)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, d *dashboard.Dashboard, prefs Preferences, logger *slog.Logger) {
	logger = logger.With("component", "http")
	v1 := app.Group("/api/v1")

	v1.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-dashboard",
		})
	})

	v1.Get("/view", func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"status": d.Status(),
			"query":  d.Query(),
			"view":   nil,
		}
		if v, ok := d.View(); ok {
			resp["view"] = v
		}
		return c.JSON(resp)
	})

	v1.Post("/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		if (req.Lat == nil) != (req.Lon == nil) {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lon must be given together")
		}
		v, err := d.Search(c.UserContext(), req.toQuery())
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(v)
	})

	v1.Post("/locate", func(c *fiber.Ctx) error {
		var req locateRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		v, err := d.Locate(c.UserContext(), *req.Lat, *req.Lon)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(v)
	})

	v1.Get("/suggestions", func(c *fiber.Ctx) error {
		return c.JSON(d.Suggest(c.UserContext(), c.Query("q")))
	})

	days := v1.Group("/days")
	days.Post("/select", func(c *fiber.Ctx) error {
		var req daySelection
		if err := bindBody(c, &req); err != nil {
			return err
		}
		day, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		v, err := d.SelectDay(day)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(v)
	})
	days.Post("/reset", func(c *fiber.Ctx) error {
		v, err := d.ResetToToday()
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(v)
	})

	favorites := v1.Group("/favorites")
	favorites.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(d.Favorites())
	})
	favorites.Post("/toggle", func(c *fiber.Ctx) error {
		saved, err := d.ToggleFavorite()
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{
			"favorite":  saved,
			"favorites": d.Favorites(),
		})
	})
	favorites.Post("/refresh", func(c *fiber.Ctx) error {
		if err := d.RefreshFavorites(c.UserContext()); err != nil {
			return toHTTPError(err)
		}
		return c.JSON(d.Favorites())
	})
	favorites.Delete("/:city", func(c *fiber.Ctx) error {
		if !d.RemoveFavorite(c.Params("city")) {
			return fiber.NewError(fiber.StatusNotFound, "favorite not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Get("/history", func(c *fiber.Ctx) error {
		return c.JSON(d.History())
	})
	v1.Delete("/history/:city", func(c *fiber.Ctx) error {
		if !d.RemoveHistory(c.Params("city")) {
			return fiber.NewError(fiber.StatusNotFound, "history entry not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Put("/preferences", func(c *fiber.Ctx) error {
		var req preferencesRequest
		if err := bindBody(c, &req); err != nil {
			return err
		}
		if req.Units != "" {
			prefs.SetUnits(i18n.ParseUnits(req.Units))
		}
		if req.Language != "" && prefs.SetLanguage(req.Language) {
			refreshAfterLanguageChange(c.UserContext(), d, logger)
		}
		return c.JSON(fiber.Map{
			"language": prefs.Language(),
			"units":    prefs.Units(),
		})
	})
}

// Cached favorites carry descriptions in the old language.
func refreshAfterLanguageChange(ctx context.Context, d *dashboard.Dashboard, logger *slog.Logger) {
	err := d.RefreshFavorites(ctx)
	if err != nil && !errors.Is(err, dashboard.ErrSuperseded) {
		logger.Warn("favorites refresh after language change failed", "error", err)
	}
}

func bindBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// searchRequest is free text in City, or a picked place in the other fields.
type searchRequest struct {
	City    string   `json:"city" validate:"required_without=Name"`
	Name    string   `json:"name"`
	Country string   `json:"country"`
	State   string   `json:"state"`
	Lat     *float64 `json:"lat" validate:"omitempty,latitude"`
	Lon     *float64 `json:"lon" validate:"omitempty,longitude"`
}

func (r searchRequest) toQuery() dashboard.Query {
	if r.Name == "" {
		return dashboard.Query{City: r.City}
	}
	return dashboard.Query{Selection: &weather.Location{
		Name:    r.Name,
		Country: r.Country,
		State:   r.State,
		Lat:     r.Lat,
		Lon:     r.Lon,
	}}
}

type locateRequest struct {
	Lat *float64 `json:"lat" validate:"required,latitude"`
	Lon *float64 `json:"lon" validate:"required,longitude"`
}

type daySelection struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
}

type preferencesRequest struct {
	Language string `json:"language" validate:"omitempty,bcp47_language_tag"`
	Units    string `json:"units" validate:"omitempty,oneof=metric imperial"`
}
