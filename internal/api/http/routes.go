package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/JDeep1234/airwise/internal/aqi"
	"github.com/JDeep1234/airwise/internal/forecast"
	"github.com/JDeep1234/airwise/internal/service"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, svc *service.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/aqi/current", func(c *fiber.Ctx) error {
		obs, err := svc.Current(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch current air quality")
		}
		return c.JSON(obs)
	})

	v1.Get("/forecast", func(c *fiber.Ctx) error {
		days, err := parseDays(c, 7)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(forecastDaysQuery{Days: days}); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		summaries, ml, err := svc.DailyForecast(c.Context(), days)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build forecast")
		}

		return c.JSON(fiber.Map{
			"source":   forecastSource(ml),
			"forecast": summaries,
		})
	})

	v1.Get("/forecast/hourly", func(c *fiber.Ctx) error {
		points, ml, err := svc.HourlyTrend(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build hourly trend")
		}

		return c.JSON(fiber.Map{
			"source": forecastSource(ml),
			"trend":  points,
		})
	})

	v1.Get("/historical", func(c *fiber.Ctx) error {
		days, err := parseDays(c, 30)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(historicalDaysQuery{Days: days}); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		obs, err := svc.Historical(c.Context(), days)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch historical data")
		}
		return c.JSON(fiber.Map{
			"days":         days,
			"observations": obs,
		})
	})

	v1.Post("/ml/train", func(c *fiber.Ctx) error {
		var req trainRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
			}
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := svc.Train(c.Context(), req.Days)
		if err != nil {
			status := fiber.StatusInternalServerError
			if errors.Is(err, forecast.ErrInsufficientData) {
				status = fiber.StatusUnprocessableEntity
			}
			return c.Status(status).JSON(fiber.Map{
				"status": "error",
				"error":  err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"status":  "success",
			"results": report,
		})
	})

	v1.Get("/ml/status", func(c *fiber.Ctx) error {
		engine := svc.Engine()
		resp := fiber.Map{
			"status":       "success",
			"model_loaded": engine.Loaded(),
			"model_dir":    engine.StoreDir(),
		}
		if meta, ok := engine.Meta(); ok {
			resp["model"] = meta
		}
		return c.JSON(resp)
	})

	v1.Get("/recommendations", func(c *fiber.Ctx) error {
		current, recs, err := svc.Recommendations(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to build recommendations")
		}
		return c.JSON(fiber.Map{
			"aqi":             current.AQI,
			"category":        string(aqi.Categorize(current.AQI)),
			"recommendations": recs,
		})
	})
}

func forecastSource(ml bool) string {
	if ml {
		return "ml"
	}
	return "fallback"
}

// forecastDaysQuery caps `days` at the weekly recursion horizon.
type forecastDaysQuery struct {
	Days int `validate:"required,min=1,max=7"`
}

// historicalDaysQuery allows up to 90 days of history.
type historicalDaysQuery struct {
	Days int `validate:"required,min=1,max=90"`
}

func parseDays(c *fiber.Ctx, def int) (int, error) {
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, errors.New("days must be an integer")
		}
		return n, nil
	}
	return def, nil
}

// trainRequest is the optional body of the train endpoint.
type trainRequest struct {
	Days int `json:"days" validate:"omitempty,min=3,max=365"`
}
