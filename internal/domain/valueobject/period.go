// Package valueobject contains domain value objects for the analytics engine.
package valueobject

import (
	"math"
	"time"

	"github.com/finance-tracker/analytics/internal/domain/entity"
)

// Window is a half-open time span [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// LastDay returns the last calendar day covered by the window.
func (w Window) LastDay() time.Time {
	return w.End.AddDate(0, 0, -1)
}

// Calendar math runs on UTC days, the zone every stored date is written in.

// StartOfDay truncates t to midnight of its UTC day.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the week containing the given date.
func WeekStart(date time.Time) time.Time {
	date = date.UTC()
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday is 7
	}
	return time.Date(date.Year(), date.Month(), date.Day()-(weekday-1), 0, 0, 0, 0, time.UTC)
}

// CalendarMonth returns the calendar month containing now.
func CalendarMonth(now time.Time) Window {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// BudgetWindow returns the period window of a budget anchored to now.
// Weeks start on Monday; months and years are calendar aligned.
func BudgetWindow(period entity.BudgetPeriod, now time.Time) Window {
	now = now.UTC()

	switch period {
	case entity.BudgetPeriodWeekly:
		start := WeekStart(now)
		return Window{Start: start, End: start.AddDate(0, 0, 7)}
	case entity.BudgetPeriodYearly:
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		return Window{Start: start, End: start.AddDate(1, 0, 0)}
	default:
		return CalendarMonth(now)
	}
}

// shiftBack moves t back by n lengths of the given prediction period.
func shiftBack(t time.Time, period entity.PredictionPeriod, n int) time.Time {
	switch period {
	case entity.PredictionPeriodNextWeek:
		return t.AddDate(0, 0, -7*n)
	case entity.PredictionPeriodNextQuarter:
		return t.AddDate(0, -3*n, 0)
	default:
		return t.AddDate(0, -n, 0)
	}
}

// TrailingWindows returns n consecutive windows of the period's length ending with today,
// ordered oldest first.
func TrailingWindows(now time.Time, period entity.PredictionPeriod, n int) []Window {
	if n <= 0 {
		return nil
	}

	anchor := StartOfDay(now).AddDate(0, 0, 1)
	windows := make([]Window, 0, n)
	for i := n - 1; i >= 0; i-- {
		windows = append(windows, Window{
			Start: shiftBack(anchor, period, i+1),
			End:   shiftBack(anchor, period, i),
		})
	}
	return windows
}

// DaysUntil returns the whole days from today to the due day. Negative values mean overdue.
func DaysUntil(due, now time.Time) int {
	days := StartOfDay(due).Sub(StartOfDay(now)).Hours() / 24
	return int(math.Round(days))
}
