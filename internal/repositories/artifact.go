package repositories

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/goccy/go-json"

	"oil-forecast/pkg/observe"
)

// ModelArtifact is the serialized form written by the offline fitting pipeline.
// Horizon holds the model's out-of-sample predictions, one per future step.
type ModelArtifact struct {
	Name      string    `json:"name"`
	TrainedAt time.Time `json:"trained_at"`
	Frequency string    `json:"frequency"`
	Horizon   []float64 `json:"horizon"`
}

func (a ModelArtifact) validate() error {
	if len(a.Horizon) == 0 {
		return errors.New("artifact has an empty forecast horizon")
	}
	for i, v := range a.Horizon {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("artifact horizon value %d is not finite", i)
		}
	}
	return nil
}

// ArtifactModel serves forecasts from a model artifact loaded once at startup.
type ArtifactModel struct {
	artifact ModelArtifact
	l        *observe.Logger
}

func NewArtifactModel(artifact ModelArtifact, l *observe.Logger) (*ArtifactModel, error) {
	if err := artifact.validate(); err != nil {
		return nil, err
	}
	if artifact.Name == "" {
		artifact.Name = "artifact"
	}

	return &ArtifactModel{
		artifact: artifact,
		l:        l,
	}, nil
}

func LoadArtifactModel(path string, l *observe.Logger) (*ArtifactModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model artifact: %w", err)
	}

	var artifact ModelArtifact
	if err = json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact %s: %w", path, err)
	}

	m, err := NewArtifactModel(artifact, l)
	if err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}

	l.Info("loaded model artifact", map[string]any{
		"path":      path,
		"model":     m.Name(),
		"trainedAt": artifact.TrainedAt,
		"frequency": artifact.Frequency,
		"horizon":   len(artifact.Horizon),
	})

	return m, nil
}

func (a *ArtifactModel) Name() string {
	return a.artifact.Name
}

// Horizon is the largest steps value the artifact can answer.
func (a *ArtifactModel) Horizon() int {
	return len(a.artifact.Horizon)
}

func (a *ArtifactModel) Forecast(_ context.Context, steps int) ([]float64, error) {
	if steps < 1 {
		return nil, fmt.Errorf("steps must be positive, got %d", steps)
	}
	if steps > len(a.artifact.Horizon) {
		return nil, fmt.Errorf("model %s covers %d steps, %d requested", a.Name(), len(a.artifact.Horizon), steps)
	}

	forecast := make([]float64, steps)
	copy(forecast, a.artifact.Horizon[:steps])

	return forecast, nil
}
