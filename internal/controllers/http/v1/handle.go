package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"oil-forecast/internal/models"
	"oil-forecast/internal/services/forecast"
)

// ForecastResponse represents the forecast returned by the JSON API
type ForecastResponse struct {
	Model       string          `json:"model" example:"brent-sarima"`
	Steps       int             `json:"steps" example:"3"`
	MinValue    float64         `json:"min_value" example:"70.12"`
	MaxValue    float64         `json:"max_value" example:"74.80"`
	MeanValue   float64         `json:"mean_value" example:"72.41"`
	GeneratedAt time.Time       `json:"generated_at" example:"2025-07-01T10:00:00Z"`
	Forecast    []ForecastValue `json:"forecast"`
}

// ForecastValue represents a single forecast step
type ForecastValue struct {
	Label string  `json:"label" example:"July 2025"`
	Date  string  `json:"date" example:"2025-07-01"`
	Value float64 `json:"value" example:"71.42"`
}

// stepsParam returns the raw steps value and whether a forecast is requested.
// A missing parameter falls back to the default, an empty one requests nothing.
func stepsParam(c *fiber.Ctx) (string, bool) {
	if !c.Context().QueryArgs().Has("steps") {
		return forecast.DefaultSteps, true
	}
	raw := c.Query("steps")
	return raw, raw != ""
}

func statusFor(err error) int {
	if errors.Is(err, forecast.ErrInvalidInput) || errors.Is(err, forecast.ErrOutOfRange) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func outcome(err error) string {
	var forecastErr *forecast.ForecastError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, forecast.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, forecast.ErrOutOfRange):
		return "out_of_range"
	case errors.As(err, &forecastErr):
		return "model_error"
	}
	return "error"
}

func toForecastResponse(result *models.ForecastResult) ForecastResponse {
	values := make([]ForecastValue, len(result.Points))
	for i, p := range result.Points {
		values[i] = ForecastValue{
			Label: p.Label,
			Date:  p.Date.Format(time.DateOnly),
			Value: p.Value,
		}
	}

	return ForecastResponse{
		Model:       result.ModelName,
		Steps:       result.Steps,
		MinValue:    result.MinValue,
		MaxValue:    result.MaxValue,
		MeanValue:   result.MeanValue,
		GeneratedAt: result.GeneratedAt,
		Forecast:    values,
	}
}

// GetForecast godoc
// @Summary Get oil price forecast
// @Description Runs the loaded model for the requested number of monthly steps and returns the values with summary statistics
// @Tags Forecast
// @Accept json
// @Produce json
// @Param steps query integer false "Number of forecast steps (1-100, default: 12)" minimum(1) maximum(100) example(12)
// @Success 200 {object} ForecastResponse "Successful response"
// @Failure 400 {object} models.ErrorResponse "Bad request - invalid or out of range steps"
// @Failure 500 {object} models.ErrorResponse "Model failure"
// @Router /api/v1/forecast [get]
// @Example {curl} Example usage:
//
//	curl -X GET "http://localhost:8080/api/v1/forecast?steps=6"
func (r *routes) handleForecastCall(c *fiber.Ctx) error {
	raw, _ := stepsParam(c)

	result, err := r.service.Forecast(c.Context(), raw)
	r.metrics.ObserveRequest("api", outcome(err))
	if err != nil {
		status := statusFor(err)
		r.l.Debug("forecast request failed", map[string]any{
			"steps":  raw,
			"status": status,
		})

		return c.Status(status).JSON(models.ErrorResponse{
			Error: forecast.UserMessage(err),
		})
	}

	return c.JSON(toForecastResponse(result))
}

// handleForecastPage renders the form, and the forecast with its chart or the error inline.
// Errors keep status 200 so the form stays usable.
func (r *routes) handleForecastPage(c *fiber.Ctx) error {
	raw, requested := stepsParam(c)
	view := pageView{Steps: raw}

	if requested {
		result, err := r.service.Forecast(c.Context(), raw)
		r.metrics.ObserveRequest("page", outcome(err))
		if err != nil {
			view.Error = forecast.UserMessage(err)
		} else {
			view.Result = result
			view.Chart = newChartSnippet(result)
		}
	}

	c.Type("html", "utf-8")
	return renderPage(c, view)
}
