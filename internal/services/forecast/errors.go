package forecast

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("steps is not a valid number")
	ErrOutOfRange   = fmt.Errorf("steps must be between %d and %d", MinSteps, MaxSteps)
)

// ForecastError reports a failure of the underlying model.
type ForecastError struct {
	Model string
	Err   error
}

func (e *ForecastError) Error() string {
	return fmt.Sprintf("forecast error: %s", e.Err.Error())
}

func (e *ForecastError) Unwrap() error {
	return e.Err
}

// UserMessage renders err the way it is shown to end users.
func UserMessage(err error) string {
	var forecastErr *ForecastError
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "Please enter a valid number"
	case errors.Is(err, ErrOutOfRange):
		return fmt.Sprintf("Steps must be between %d and %d", MinSteps, MaxSteps)
	case errors.As(err, &forecastErr):
		return "Forecast error: " + forecastErr.Err.Error()
	case err != nil:
		return "Forecast error: " + err.Error()
	}
	return ""
}
