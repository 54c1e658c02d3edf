// Package models defines the domain types for Uruz.
package models

import "time"

// Difficulty levels a habit or daily can be tracked at.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Difficulties lists every valid difficulty value.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ValidDifficulty reports whether s is one of the enumerated difficulty values.
func ValidDifficulty(s string) bool {
	for _, d := range Difficulties {
		if s == d {
			return true
		}
	}
	return false
}

// StrengthThreshold is the counter value a habit must exceed to count as strong.
const StrengthThreshold = 10

// Strength labels derived from a habit's counter.
const (
	StrengthWeak   = "weak"
	StrengthStrong = "strong"
)

// DateLayout is the calendar-day format used for completion dates.
const DateLayout = "2006-01-02"

// Habit represents a tracked habit. Counter is the canonical progress value;
// DatesCompleted is a deduplicated audit trail of completion days and Streak
// advances only when a completion adds a new date.
type Habit struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Notes          string    `json:"notes"`
	Positive       bool      `json:"positive"`
	Negative       bool      `json:"negative"`
	Difficulty     string    `json:"difficulty"`
	Counter        int       `json:"counter"`
	Streak         int       `json:"streak"`
	DatesCompleted []string  `json:"datesCompleted"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// StrengthOf maps a counter value to a strength label.
func StrengthOf(counter int) string {
	if counter > StrengthThreshold {
		return StrengthStrong
	}
	return StrengthWeak
}

// Strength derives the habit's strength from its counter. It is computed on
// every read and never stored, so it cannot drift from the counter.
func (h *Habit) Strength() string {
	return StrengthOf(h.Counter)
}

// CompletedToday reports whether the habit was marked done on now's calendar day.
func (h *Habit) CompletedToday(now time.Time) bool {
	day := now.Format(DateLayout)
	for _, d := range h.DatesCompleted {
		if d == day {
			return true
		}
	}
	return false
}
