package models

import (
	"testing"
	"time"
)

func TestStrengthOf(t *testing.T) {
	cases := []struct {
		counter int
		want    string
	}{
		{0, StrengthWeak},
		{10, StrengthWeak},
		{11, StrengthStrong},
		{100, StrengthStrong},
	}
	for _, tc := range cases {
		if got := StrengthOf(tc.counter); got != tc.want {
			t.Errorf("StrengthOf(%d) = %q, want %q", tc.counter, got, tc.want)
		}
	}
}

func TestHabitCompletedToday(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)
	h := Habit{DatesCompleted: []string{"2026-08-31", "2026-09-01"}}
	if !h.CompletedToday(now) {
		t.Error("expected completed today")
	}

	h.DatesCompleted = []string{"2026-08-31"}
	if h.CompletedToday(now) {
		t.Error("yesterday's completion counted as today")
	}

	h.DatesCompleted = nil
	if h.CompletedToday(now) {
		t.Error("empty trail counted as completed")
	}
}

func TestValidDifficulty(t *testing.T) {
	for _, d := range Difficulties {
		if !ValidDifficulty(d) {
			t.Errorf("ValidDifficulty(%q) = false", d)
		}
	}
	for _, d := range []string{"", "meduim", "EASY", "extreme"} {
		if ValidDifficulty(d) {
			t.Errorf("ValidDifficulty(%q) = true", d)
		}
	}
}
