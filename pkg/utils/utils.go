package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// Round2 rounds a monetary amount to 2 decimal places (half up).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// MonthlyInstallment calculates the advertised monthly payment amount.
// Formula: (Remaining + Interest) / Duration, rounded to cents. When rounding
// half up would make the first months-1 rows exceed the total (sub-dollar
// totals), the amount rounds down instead so the final installment never goes
// negative.
func MonthlyInstallment(total decimal.Decimal, months int) decimal.Decimal {
	quotient := total.Div(decimal.NewFromInt(int64(months)))
	monthly := quotient.Round(2)
	if monthly.Mul(decimal.NewFromInt(int64(months - 1))).GreaterThan(total) {
		monthly = quotient.RoundDown(2)
	}
	return monthly
}

// FinalInstallment returns the amount of the last installment so the schedule
// sums exactly to the total: total - monthly*(months-1).
func FinalInstallment(total, monthly decimal.Decimal, months int) decimal.Decimal {
	return total.Sub(monthly.Mul(decimal.NewFromInt(int64(months - 1)))).Round(2)
}

// AddMonths advances a date by the given number of calendar months, keeping the
// start date's day-of-month and clamping to the last day of shorter months
// (Jan 31 + 1 month = Feb 28, not Mar 3 as time.AddDate would normalize).
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// StartOfDay truncates a time to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// IsDateDue checks if a scheduled date is due as of now (date has arrived or passed).
func IsDateDue(scheduledDate, now time.Time) bool {
	return !StartOfDay(scheduledDate).After(StartOfDay(now))
}
