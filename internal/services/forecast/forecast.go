package forecast

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	pkgerrors "github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"oil-forecast/internal/models"
	"oil-forecast/internal/repositories"
	"oil-forecast/pkg/observe"
)

const (
	DefaultSteps = "12"
	MinSteps     = 1
	MaxSteps     = 100
)

// ForecastService validates step counts, calls the model and summarises its output.
type ForecastService struct {
	model   repositories.ForecastModel
	metrics *observe.Metrics
	l       *observe.Logger
	now     func() time.Time
}

func NewForecastService(model repositories.ForecastModel, l *observe.Logger, metrics *observe.Metrics) *ForecastService {
	return &ForecastService{
		model:   model,
		metrics: metrics,
		l:       l,
		now:     time.Now,
	}
}

// WithClock replaces the time source used for labels.
func (s *ForecastService) WithClock(now func() time.Time) *ForecastService {
	s.now = now
	return s
}

func (s *ForecastService) ModelName() string {
	return s.model.Name()
}

// ParseSteps parses a raw step count. Digits of any script and single underscores
// between digits are accepted. Integers too large to represent are out of range, not invalid.
func ParseSteps(raw string) (int, error) {
	normalized, ok := normalizeDigits(strings.TrimSpace(raw))
	if !ok {
		return 0, ErrInvalidInput
	}

	steps, err := strconv.Atoi(normalized)
	if errors.Is(err, strconv.ErrRange) {
		return 0, ErrOutOfRange
	}
	if err != nil {
		return 0, ErrInvalidInput
	}
	if steps < MinSteps || steps > MaxSteps {
		return 0, ErrOutOfRange
	}
	return steps, nil
}

// normalizeDigits rewrites decimal digits of any script to ASCII and drops digit-group
// underscores. It reports false when an underscore is not between two digits.
func normalizeDigits(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))

	prevDigit, prevUnderscore := false, false
	for _, r := range s {
		switch {
		case r == '_':
			if !prevDigit {
				return "", false
			}
			prevDigit, prevUnderscore = false, true
			continue
		case unicode.IsDigit(r):
			b.WriteByte(byte('0' + digitValue(r)))
			prevDigit = true
		default:
			if prevUnderscore {
				return "", false
			}
			b.WriteRune(r)
			prevDigit = false
		}
		prevUnderscore = false
	}
	if prevUnderscore {
		return "", false
	}

	return b.String(), true
}

// digitValue returns the value of a decimal digit rune. Decimal digits come in
// contiguous runs of ten starting at zero.
func digitValue(r rune) int {
	if r >= '0' && r <= '9' {
		return int(r - '0')
	}
	for _, rg := range unicode.Nd.R16 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return int((r-lo)/rune(rg.Stride)) % 10
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if lo, hi := rune(rg.Lo), rune(rg.Hi); r >= lo && r <= hi {
			return int((r-lo)/rune(rg.Stride)) % 10
		}
	}
	return 0
}

// Forecast runs the model for the raw step count and returns the labelled result.
func (s *ForecastService) Forecast(ctx context.Context, raw string) (*models.ForecastResult, error) {
	steps, err := ParseSteps(raw)
	if err != nil {
		s.l.Debug("rejected forecast request", map[string]any{"steps": raw, "err": err.Error()})
		return nil, err
	}

	return s.ForecastSteps(ctx, steps)
}

// ForecastSteps is Forecast for an already validated step count.
func (s *ForecastService) ForecastSteps(ctx context.Context, steps int) (*models.ForecastResult, error) {
	if steps < MinSteps || steps > MaxSteps {
		return nil, ErrOutOfRange
	}

	start := time.Now()
	values, err := s.model.Forecast(ctx, steps)
	if err == nil {
		err = checkValues(values, steps)
	}
	s.metrics.ObserveModelCall(s.model.Name(), time.Since(start), err)

	if err != nil {
		s.l.Error(err, map[string]any{
			"model": s.model.Name(),
			"steps": steps,
		})
		return nil, &ForecastError{Model: s.model.Name(), Err: err}
	}

	now := s.now()
	dates := MonthDates(now, steps)

	points := make([]models.ForecastPoint, steps)
	for i := range points {
		points[i] = models.ForecastPoint{
			Label: MonthLabel(dates[i]),
			Date:  dates[i],
			Value: values[i],
		}
	}

	minValue, maxValue := floats.Min(values), floats.Max(values)
	// sum/n rounding can land just outside [min, max]
	meanValue := math.Min(math.Max(stat.Mean(values, nil), minValue), maxValue)

	result := &models.ForecastResult{
		ModelName:   s.model.Name(),
		Steps:       steps,
		Points:      points,
		MinValue:    minValue,
		MaxValue:    maxValue,
		MeanValue:   meanValue,
		GeneratedAt: now,
	}

	s.l.Info("forecast generated", map[string]any{
		"params": result.RequestParams(),
		"min":    result.MinValue,
		"max":    result.MaxValue,
		"mean":   result.MeanValue,
	})

	return result, nil
}

func checkValues(values []float64, steps int) error {
	if len(values) != steps {
		return pkgerrors.Errorf("model returned %d values for %d steps", len(values), steps)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return pkgerrors.Errorf("model returned a non-finite value at step %d", i+1)
		}
	}
	return nil
}
