package http

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/gofiber/fiber/v2"

	"oil-forecast/internal/models"
	"oil-forecast/internal/services/forecast"
)

// lineForecast generates an echart line chart of the forecast values over their month labels.
func lineForecast(result *models.ForecastResult) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(
			opts.Initialization{
				PageTitle: "Oil Price Forecast",
				Width:     "100%",
				Height:    "400px",
			},
		),
		charts.WithTitleOpts(
			opts.Title{
				Title: "Oil Price Time Series Forecast",
			},
		),
		charts.WithTooltipOpts(
			opts.Tooltip{
				Trigger: "axis",
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Name: "Month",
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Name: "Price",
			},
		),
	)

	lineData := make([]opts.LineData, 0, len(result.Points))
	for _, p := range result.Points {
		lineData = append(lineData, opts.LineData{Value: p.Value})
	}

	line.SetXAxis(result.Labels()).
		AddSeries("Oil Price Forecast", lineData)
	return line
}

func (r *routes) handleForecastChart(c *fiber.Ctx) error {
	raw, _ := stepsParam(c)

	result, err := r.service.Forecast(c.Context(), raw)
	r.metrics.ObserveRequest("chart", outcome(err))
	if err != nil {
		return c.Status(statusFor(err)).SendString(forecast.UserMessage(err))
	}

	c.Type("html", "utf-8")
	return lineForecast(result).Render(c)
}
