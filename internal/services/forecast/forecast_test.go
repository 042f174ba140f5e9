package forecast_test

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oil-forecast/internal/services/forecast"
	"oil-forecast/pkg/observe"
)

// MockModel implements ForecastModel for testing
type MockModel struct {
	name       string
	shouldFail bool
	values     []float64
	callCount  int
	lastSteps  int
}

func (m *MockModel) Name() string {
	return m.name
}

func (m *MockModel) Forecast(ctx context.Context, steps int) ([]float64, error) {
	m.callCount++
	m.lastSteps = steps

	if m.shouldFail {
		return nil, errors.New("model exploded")
	}
	if m.values != nil {
		return m.values, nil
	}

	values := make([]float64, steps)
	for i := range values {
		values[i] = 70 + 5*math.Sin(float64(i))
	}
	return values, nil
}

var fixedNow = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

func newService(model *MockModel) *forecast.ForecastService {
	logger := observe.NewZapLogger("test-app", io.Discard)
	metrics := observe.NewMetrics(prometheus.NewRegistry(), "test")
	return forecast.NewForecastService(model, logger, metrics).WithClock(func() time.Time { return fixedNow })
}

func TestParseSteps(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr error
	}{
		{"1", 1, nil},
		{"12", 12, nil},
		{"100", 100, nil},
		{" 42 ", 42, nil},
		{"+7", 7, nil},
		{"0", 0, forecast.ErrOutOfRange},
		{"-3", 0, forecast.ErrOutOfRange},
		{"101", 0, forecast.ErrOutOfRange},
		{"99999999999999999999999", 0, forecast.ErrOutOfRange},
		{"abc", 0, forecast.ErrInvalidInput},
		{"12.5", 0, forecast.ErrInvalidInput},
		{"", 0, forecast.ErrInvalidInput},
		{"1e2", 0, forecast.ErrInvalidInput},
		{"1_0", 10, nil},
		{"1_0_0", 100, nil},
		{"１２", 12, nil},
		{"٣", 3, nil},
		{"-１", 0, forecast.ErrOutOfRange},
		{"\u00a012\u3000", 12, nil},
		{"_10", 0, forecast.ErrInvalidInput},
		{"10_", 0, forecast.ErrInvalidInput},
		{"1__0", 0, forecast.ErrInvalidInput},
		{"+_1", 0, forecast.ErrInvalidInput},
		{"0x10", 0, forecast.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := forecast.ParseSteps(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForecastService_Forecast_Success(t *testing.T) {
	model := &MockModel{name: "mock", values: []float64{70, 80, 75}}
	service := newService(model)

	result, err := service.Forecast(context.Background(), "3")
	require.NoError(t, err)

	assert.Equal(t, 1, model.callCount)
	assert.Equal(t, 3, model.lastSteps)
	assert.Equal(t, "mock", result.ModelName)
	assert.Equal(t, 3, result.Steps)
	assert.Equal(t, []float64{70, 80, 75}, result.Values())
	assert.Equal(t, []string{"January 2025", "February 2025", "March 2025"}, result.Labels())
	assert.Equal(t, 70.0, result.MinValue)
	assert.Equal(t, 80.0, result.MaxValue)
	assert.Equal(t, 75.0, result.MeanValue)
	assert.Equal(t, fixedNow, result.GeneratedAt)
}

func TestForecastService_Forecast_LengthMatchesSteps(t *testing.T) {
	for _, steps := range []int{1, 2, 12, 37, 99, 100} {
		model := &MockModel{name: "mock"}
		result, err := newService(model).ForecastSteps(context.Background(), steps)
		require.NoError(t, err)
		assert.Len(t, result.Points, steps)
		assert.LessOrEqual(t, result.MinValue, result.MeanValue)
		assert.LessOrEqual(t, result.MeanValue, result.MaxValue)
	}
}

func TestForecastService_Forecast_MeanWithinBounds(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"constant tenths", []float64{0.1, 0.1, 0.1}},
		{"sum overflows", []float64{1e308, 1e308}},
		{"negative constant", []float64{-0.7, -0.7, -0.7, -0.7, -0.7, -0.7, -0.7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &MockModel{name: "mock", values: tt.values}
			result, err := newService(model).ForecastSteps(context.Background(), len(tt.values))
			require.NoError(t, err)

			assert.LessOrEqual(t, result.MinValue, result.MeanValue)
			assert.LessOrEqual(t, result.MeanValue, result.MaxValue)
			assert.False(t, math.IsInf(result.MeanValue, 0))
			assert.Equal(t, tt.values[0], result.MeanValue)
		})
	}
}

func TestForecastService_Forecast_Labels(t *testing.T) {
	model := &MockModel{name: "mock"}
	result, err := newService(model).ForecastSteps(context.Background(), 100)
	require.NoError(t, err)

	for i, p := range result.Points {
		want := fixedNow.AddDate(0, 0, 30*i)
		assert.Equal(t, want, p.Date)
		assert.Equal(t, want.Format("January 2006"), p.Label)
	}
	// 360 days, five days short of a calendar year
	assert.Equal(t, "January 2026", result.Points[12].Label)
}

func TestForecastService_Forecast_InvalidInput(t *testing.T) {
	model := &MockModel{name: "mock"}
	service := newService(model)

	_, err := service.Forecast(context.Background(), "twelve")
	assert.ErrorIs(t, err, forecast.ErrInvalidInput)
	assert.Equal(t, "Please enter a valid number", forecast.UserMessage(err))
	assert.Zero(t, model.callCount)
}

func TestForecastService_Forecast_OutOfRange(t *testing.T) {
	model := &MockModel{name: "mock"}
	service := newService(model)

	for _, raw := range []string{"0", "-1", "101", "1000"} {
		_, err := service.Forecast(context.Background(), raw)
		assert.ErrorIs(t, err, forecast.ErrOutOfRange)
		assert.Equal(t, "Steps must be between 1 and 100", forecast.UserMessage(err))
	}

	_, err := service.ForecastSteps(context.Background(), 0)
	assert.ErrorIs(t, err, forecast.ErrOutOfRange)
	assert.Zero(t, model.callCount)
}

func TestForecastService_Forecast_ModelFailure(t *testing.T) {
	model := &MockModel{name: "mock", shouldFail: true}
	service := newService(model)

	_, err := service.Forecast(context.Background(), "5")
	require.Error(t, err)

	var forecastErr *forecast.ForecastError
	require.ErrorAs(t, err, &forecastErr)
	assert.Equal(t, "mock", forecastErr.Model)
	assert.Equal(t, "Forecast error: model exploded", forecast.UserMessage(err))
}

func TestForecastService_Forecast_BadModelOutput(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantMsg string
	}{
		{"too few values", []float64{1, 2}, "Forecast error: model returned 2 values for 3 steps"},
		{"empty", []float64{}, "Forecast error: model returned 0 values for 3 steps"},
		{"nan", []float64{1, math.NaN(), 3}, "Forecast error: model returned a non-finite value at step 2"},
		{"inf", []float64{1, 2, math.Inf(1)}, "Forecast error: model returned a non-finite value at step 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := &MockModel{name: "mock", values: tt.values}
			_, err := newService(model).Forecast(context.Background(), "3")

			var forecastErr *forecast.ForecastError
			require.ErrorAs(t, err, &forecastErr)
			assert.Equal(t, tt.wantMsg, forecast.UserMessage(err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, forecast.UserMessage(nil))
	assert.Equal(t, "Forecast error: unexpected", forecast.UserMessage(errors.New("unexpected")))
}

func TestMonthDates(t *testing.T) {
	from := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	dates := forecast.MonthDates(from, 3)

	require.Len(t, dates, 3)
	assert.Equal(t, from, dates[0])
	assert.Equal(t, time.Date(2025, time.January, 30, 0, 0, 0, 0, time.UTC), dates[1])
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), dates[2])
	assert.Equal(t, "March 2025", forecast.MonthLabel(dates[2]))
	assert.Empty(t, forecast.MonthDates(from, 0))
}
