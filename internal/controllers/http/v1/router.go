package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "oil-forecast/docs"
	"oil-forecast/internal/services/forecast"
	"oil-forecast/pkg/observe"
)

type routes struct {
	service *forecast.ForecastService
	metrics *observe.Metrics
	l       *observe.Logger
}

func NewRouter(
	app *fiber.App,
	forecastService *forecast.ForecastService,
	gatherer prometheus.Gatherer,
	metrics *observe.Metrics,
	l *observe.Logger,
) {
	r := &routes{
		service: forecastService,
		metrics: metrics,
		l:       l,
	}

	// Swagger documentation, served from the registered docs package
	app.Get("/swagger/*", swagger.HandlerDefault)

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	app.Get("/", r.handleForecastPage)
	app.Get("/chart", r.handleForecastChart)

	api := app.Group("/api/v1")
	api.Get("/forecast", r.handleForecastCall)
}
