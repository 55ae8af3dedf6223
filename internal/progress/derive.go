package progress

import (
	"math"
	"time"
)

// DefaultHorizonDays is the assumed runway when an objective carries no
// resolvable target date (roughly one quarter).
const DefaultHorizonDays = 90

// Derived holds the computed display values for one objective.
type Derived struct {
	ProgressPercent float64 `json:"progress_percent"`
	DaysRemaining   int     `json:"days_remaining"`
	Status          Status  `json:"status"`
}

// Engine computes derived metrics. The zero value uses DefaultHorizonDays.
type Engine struct {
	HorizonDays int
}

// ComputeDerived derives progress percent, days remaining, and status using
// the default horizon for missing target dates.
func ComputeDerived(target, current float64, targetDate *time.Time, now time.Time) Derived {
	return Engine{}.ComputeDerived(target, current, targetDate, now)
}

// ComputeDerived derives the display values for a single objective. All
// numeric edge cases are defined-behavior guards, never errors: a zero or
// negative target yields 0% progress, a past target date yields 0 days.
func (e Engine) ComputeDerived(target, current float64, targetDate *time.Time, now time.Time) Derived {
	return Derived{
		ProgressPercent: Percent(target, current),
		DaysRemaining:   e.daysRemaining(targetDate, now),
		Status:          ClassifyProgress(Percent(target, current)),
	}
}

// Percent reports current as a percentage of target, rounded to one decimal.
// Targets at or below zero report 0 rather than dividing by zero.
func Percent(target, current float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := current / target * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	return round1(pct)
}

func (e Engine) daysRemaining(targetDate *time.Time, now time.Time) int {
	if targetDate == nil {
		if e.HorizonDays > 0 {
			return e.HorizonDays
		}
		return DefaultHorizonDays
	}
	remaining := targetDate.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
