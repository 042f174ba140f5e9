package forecast

import "time"

const (
	labelStepDays = 30
	labelLayout   = "January 2006"
)

// MonthDates approximates one month per step as 30 days, starting at from for step 0.
func MonthDates(from time.Time, steps int) []time.Time {
	dates := make([]time.Time, steps)
	for i := range dates {
		dates[i] = from.AddDate(0, 0, labelStepDays*i)
	}
	return dates
}

func MonthLabel(t time.Time) string {
	return t.Format(labelLayout)
}
