package recurring

import (
	"testing"
	"time"

	"fintrack/internal/core"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestDailyChecker(t *testing.T) {
	c := DailyChecker{}
	last := date(2025, 3, 10)
	if c.IsDue(last, date(2025, 3, 10), last) {
		t.Fatalf("same day should not be due")
	}
	if !c.IsDue(last, date(2025, 3, 11), last) {
		t.Fatalf("next day should be due")
	}
	// Time of day is irrelevant; only the calendar date matters.
	sameDayLater := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	if c.IsDue(last, sameDayLater, last) {
		t.Fatalf("later the same day should not be due")
	}
}

func TestWeeklyChecker(t *testing.T) {
	c := WeeklyChecker{}
	last := date(2025, 3, 3)
	if c.IsDue(last, date(2025, 3, 9), last) {
		t.Fatalf("6 days is not due")
	}
	if !c.IsDue(last, date(2025, 3, 10), last) {
		t.Fatalf("7 days is due")
	}
	if !c.IsDue(last, date(2025, 3, 20), last) {
		t.Fatalf("more than 7 days is due")
	}
}

func TestMonthlyChecker(t *testing.T) {
	c := MonthlyChecker{}
	anchor := date(2025, 1, 15)

	if c.IsDue(date(2025, 3, 15), date(2025, 3, 31), anchor) {
		t.Fatalf("same month should not be due")
	}
	if c.IsDue(date(2025, 2, 15), date(2025, 3, 10), anchor) {
		t.Fatalf("new month before the anchor day should not be due")
	}
	if !c.IsDue(date(2025, 2, 15), date(2025, 3, 15), anchor) {
		t.Fatalf("new month on the anchor day should be due")
	}
	if !c.IsDue(date(2025, 2, 15), date(2025, 3, 20), anchor) {
		t.Fatalf("new month past the anchor day should be due")
	}
}

func TestMonthlyCheckerClampsShortMonths(t *testing.T) {
	c := MonthlyChecker{}
	anchor := date(2025, 1, 31)
	// February 2025 has 28 days; the day-31 target clamps to the 28th.
	if c.IsDue(date(2025, 1, 31), date(2025, 2, 27), anchor) {
		t.Fatalf("before the clamped day should not be due")
	}
	if !c.IsDue(date(2025, 1, 31), date(2025, 2, 28), anchor) {
		t.Fatalf("last day of a short month should be due")
	}
}

func TestYearlyChecker(t *testing.T) {
	c := YearlyChecker{}
	anchor := date(2024, 6, 15)

	if c.IsDue(date(2025, 6, 15), date(2025, 12, 31), anchor) {
		t.Fatalf("same year should not be due")
	}
	if c.IsDue(date(2024, 6, 15), date(2025, 5, 20), anchor) {
		t.Fatalf("new year before the anchor month should not be due")
	}
	if c.IsDue(date(2024, 6, 15), date(2025, 6, 14), anchor) {
		t.Fatalf("anchor month before the anchor day should not be due")
	}
	if !c.IsDue(date(2024, 6, 15), date(2025, 6, 15), anchor) {
		t.Fatalf("anniversary should be due")
	}
	if !c.IsDue(date(2024, 6, 15), date(2025, 7, 1), anchor) {
		t.Fatalf("past the anchor month should be due")
	}
}

func TestCheckerFor(t *testing.T) {
	for _, interval := range []core.RecurringInterval{core.Daily, core.Weekly, core.Monthly, core.Yearly} {
		if _, err := CheckerFor(interval); err != nil {
			t.Fatalf("%s: %v", interval, err)
		}
	}
	if _, err := CheckerFor("fortnightly"); err == nil {
		t.Fatalf("unknown interval should error")
	}
}
