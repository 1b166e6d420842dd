package httpapi

import (
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-dashboard/internal/dashboard"
)

// NewApp creates the Fiber app with the JSON codec and centralized error
// handler used by every route.
func NewApp(name string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		// Searches wait on several upstreams in sequence.
		WriteTimeout: 60 * time.Second,
		// City names in paths may carry spaces and accents.
		UnescapePath: true,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: ErrorHandler,
	})
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// toHTTPError maps dashboard errors onto status codes.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, dashboard.ErrSuperseded):
		return fiber.NewError(fiber.StatusConflict, "superseded")
	case errors.Is(err, dashboard.ErrNoForecast):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, dashboard.ErrEmptyQuery):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, dashboard.ErrResolution):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, dashboard.ErrDependentFetch):
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	default:
		return err
	}
}
