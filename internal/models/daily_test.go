package models

import (
	"testing"
	"time"
)

func TestWeekdaysOn(t *testing.T) {
	// 2026-09-01 is a Tuesday.
	tue := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	mask := Weekdays{Tue: true}
	if !mask.On(tue) {
		t.Error("Tue mask not matched on a Tuesday")
	}
	if mask.On(tue.AddDate(0, 0, 1)) {
		t.Error("Tue mask matched on a Wednesday")
	}

	if !EveryDay().On(tue) || !EveryDay().On(tue.AddDate(0, 0, 4)) {
		t.Error("EveryDay mask missed a weekday")
	}
	if (Weekdays{}).On(tue) {
		t.Error("empty mask matched")
	}
}

func TestDailyCompletionResetsAcrossDayBoundary(t *testing.T) {
	today := time.Date(2026, 9, 1, 23, 50, 0, 0, time.UTC)
	d := Daily{CompletedOn: "2026-09-01", Days: EveryDay()}

	if !d.CompletedToday(today) {
		t.Error("expected completed today")
	}
	// Ten minutes later it is a new day and the flag derives to false.
	tomorrow := today.Add(20 * time.Minute)
	if d.CompletedToday(tomorrow) {
		t.Error("completion leaked across the day boundary")
	}

	var never Daily
	if never.CompletedToday(today) {
		t.Error("never-completed daily reported complete")
	}
}
