package models

import (
	"fmt"
	"time"
)

// ForecastPoint is one forecast step labelled with its approximate calendar month.
type ForecastPoint struct {
	Label string    `json:"label" example:"July 2025"`
	Date  time.Time `json:"date" example:"2025-07-01T00:00:00Z"`
	Value float64   `json:"value" example:"71.42"`
}

type ForecastResult struct {
	ModelName   string          `json:"model_name" example:"brent-sarima"`
	Steps       int             `json:"steps" example:"12"`
	Points      []ForecastPoint `json:"points"`
	MinValue    float64         `json:"min_value" example:"68.10"`
	MaxValue    float64         `json:"max_value" example:"74.95"`
	MeanValue   float64         `json:"mean_value" example:"71.30"`
	GeneratedAt time.Time       `json:"generated_at"`
}

func (f *ForecastResult) Labels() []string {
	labels := make([]string, len(f.Points))
	for i, p := range f.Points {
		labels[i] = p.Label
	}
	return labels
}

func (f *ForecastResult) Values() []float64 {
	values := make([]float64, len(f.Points))
	for i, p := range f.Points {
		values[i] = p.Value
	}
	return values
}

func (f *ForecastResult) RequestParams() string {
	return fmt.Sprintf("model: %s steps: %d", f.ModelName, f.Steps)
}
