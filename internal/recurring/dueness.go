// Package recurring materializes occurrences of recurring expenses. An
// expense flagged recurring acts as a template: when its interval has
// elapsed since the latest matching occurrence, a fresh dated expense is
// appended through the store's normal mutation API.
package recurring

import (
	"fmt"
	"time"

	"fintrack/internal/core"
)

// DuenessChecker decides whether a recurring expense is due given the
// date of its latest occurrence, the current time, and the template's
// original date (the anchor for day-of-month and day-of-year targets).
type DuenessChecker interface {
	IsDue(last, now, anchor time.Time) bool
}

// DailyChecker is due once per calendar day.
type DailyChecker struct{}

func (DailyChecker) IsDue(last, now, _ time.Time) bool {
	return last.Format("2006-01-02") != now.Format("2006-01-02")
}

// WeeklyChecker is due when 7 or more days have passed.
type WeeklyChecker struct{}

func (WeeklyChecker) IsDue(last, now, _ time.Time) bool {
	return now.Sub(last).Hours()/24 >= 7
}

// MonthlyChecker is due in a new month once the anchor's day of month is
// reached, clamped to the last day of short months.
type MonthlyChecker struct{}

func (MonthlyChecker) IsDue(last, now, anchor time.Time) bool {
	if last.Year() == now.Year() && last.Month() == now.Month() {
		return false
	}
	target := clampDay(anchor.Day(), now)
	return now.Day() >= target
}

// YearlyChecker is due in a new year once the anchor's month and day are
// reached.
type YearlyChecker struct{}

func (YearlyChecker) IsDue(last, now, anchor time.Time) bool {
	if last.Year() == now.Year() {
		return false
	}
	if now.Month() < anchor.Month() {
		return false
	}
	if now.Month() == anchor.Month() {
		return now.Day() >= clampDay(anchor.Day(), now)
	}
	return true
}

// clampDay limits a target day of month to the length of now's month.
func clampDay(day int, now time.Time) int {
	lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	if day > lastDay {
		return lastDay
	}
	return day
}

var duenessStrategies = map[core.RecurringInterval]DuenessChecker{
	core.Daily:   DailyChecker{},
	core.Weekly:  WeeklyChecker{},
	core.Monthly: MonthlyChecker{},
	core.Yearly:  YearlyChecker{},
}

// CheckerFor returns the dueness checker for an interval.
func CheckerFor(interval core.RecurringInterval) (DuenessChecker, error) {
	checker, ok := duenessStrategies[interval]
	if !ok {
		return nil, fmt.Errorf("unsupported recurring interval: %s", interval)
	}
	return checker, nil
}
