package repositories

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"oil-forecast/config"
	"oil-forecast/pkg/observe"
)

// ForecastModel is a pre-fitted model that predicts the next steps values of its series.
type ForecastModel interface {
	Name() string
	Forecast(ctx context.Context, steps int) ([]float64, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// InitForecastModel loads the model selected by cfg.Model.Kind, wrapped in a rate limiter when configured.
func InitForecastModel(cfg *config.Config, l *observe.Logger) (ForecastModel, error) {
	var model ForecastModel

	switch cfg.Model.Kind {
	case config.ModelKindArtifact:
		artifact, err := LoadArtifactModel(cfg.Model.ArtifactPath, l)
		if err != nil {
			return nil, err
		}
		model = artifact
	case config.ModelKindRemote:
		httpClient := &http.Client{Timeout: time.Duration(cfg.Model.Timeout) * time.Second}
		remote, err := NewRemoteModel(cfg.Model.RemoteURL, l, httpClient)
		if err != nil {
			return nil, err
		}
		model = remote
		// Add more cases for new model backends
	default:
		return nil, fmt.Errorf("unknown model kind %q", cfg.Model.Kind)
	}

	if cfg.Model.RateLimit > 0 {
		model = NewRateLimitedModel(model, cfg.Model.RateLimit, cfg.Model.RateBurst)
	}

	l.Info("forecast model ready", map[string]any{
		"kind":      cfg.Model.Kind,
		"model":     model.Name(),
		"rateLimit": cfg.Model.RateLimit,
	})

	return model, nil
}
