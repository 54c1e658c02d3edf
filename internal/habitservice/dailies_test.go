package habitservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/starford/uruz/internal/apperr"
	"github.com/starford/uruz/internal/models"
)

func TestCreateDailyDefaults(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	d, err := s.CreateDaily(ctx, CreateDailyInput{Title: " Standup "})
	if err != nil {
		t.Fatalf("CreateDaily: %v", err)
	}
	if d.Title != "Standup" {
		t.Errorf("title = %q, want trimmed", d.Title)
	}
	if d.Difficulty != models.DifficultyMedium {
		t.Errorf("difficulty = %q, want medium", d.Difficulty)
	}
	if d.Days != models.EveryDay() {
		t.Errorf("days = %+v, want every day", d.Days)
	}
	if d.CompletedOn != "" || d.Streak != 0 {
		t.Errorf("new daily already completed: %+v", d)
	}
}

func TestCreateDailyExplicitMask(t *testing.T) {
	s := testService(t)

	mask := models.Weekdays{Mon: true, Thu: true}
	d, err := s.CreateDaily(context.Background(), CreateDailyInput{Title: "Gym", Days: &mask})
	if err != nil {
		t.Fatal(err)
	}
	if d.Days != mask {
		t.Errorf("days = %+v, want %+v", d.Days, mask)
	}
}

func TestCreateDailyValidation(t *testing.T) {
	s := testService(t)

	_, err := s.CreateDaily(context.Background(), CreateDailyInput{Title: "", Difficulty: "nope"})
	var ferrs apperr.FieldErrors
	if !errors.As(err, &ferrs) {
		t.Fatalf("err = %v, want field errors", err)
	}
	if len(ferrs) < 2 {
		t.Errorf("got %d field errors, want both violations", len(ferrs))
	}
}

func TestCompleteDailyOncePerDay(t *testing.T) {
	day1 := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	s := serviceAt(t, day1)
	ctx := context.Background()

	d, err := s.CreateDaily(ctx, CreateDailyInput{Title: "Read"})
	if err != nil {
		t.Fatal(err)
	}

	d, err = s.CompleteDaily(ctx, d.ID)
	if err != nil {
		t.Fatalf("CompleteDaily: %v", err)
	}
	if d.CompletedOn != "2026-09-01" || d.Streak != 1 {
		t.Errorf("after complete: %+v", d)
	}
	if !d.CompletedToday(day1) {
		t.Error("CompletedToday = false on completion day")
	}

	d, err = s.CompleteDaily(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if d.Streak != 1 {
		t.Errorf("same-day streak = %d, want 1", d.Streak)
	}

	// A new day re-arms completion.
	day2 := day1.AddDate(0, 0, 1)
	s.now = func() time.Time { return day2 }
	if d.CompletedToday(day2) {
		t.Error("completion did not reset at the day boundary")
	}
	d, err = s.CompleteDaily(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if d.CompletedOn != "2026-09-02" || d.Streak != 2 {
		t.Errorf("next-day: %+v", d)
	}
}

func TestUpdateDailyMask(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	d, err := s.CreateDaily(ctx, CreateDailyInput{Title: "Walk"})
	if err != nil {
		t.Fatal(err)
	}

	mask := models.Weekdays{Sat: true, Sun: true}
	d, err = s.UpdateDaily(ctx, d.ID, UpdateDailyInput{Days: &mask})
	if err != nil {
		t.Fatalf("UpdateDaily: %v", err)
	}
	if d.Days != mask {
		t.Errorf("days = %+v", d.Days)
	}
	if d.Title != "Walk" {
		t.Errorf("untouched title changed to %q", d.Title)
	}
}

func TestUpdateDailyRejectsBlankTitle(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	d, err := s.CreateDaily(ctx, CreateDailyInput{Title: "Stretch"})
	if err != nil {
		t.Fatal(err)
	}

	for _, title := range []string{"", "   "} {
		_, err = s.UpdateDaily(ctx, d.ID, UpdateDailyInput{Title: &title})
		var ferrs apperr.FieldErrors
		if !errors.As(err, &ferrs) {
			t.Fatalf("title %q: err = %v, want field errors", title, err)
		}
	}

	got, err := s.GetDaily(ctx, d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Stretch" {
		t.Errorf("stored title = %q, want untouched after rejected patches", got.Title)
	}
}

func TestDailyIDChecks(t *testing.T) {
	s := testService(t)
	ctx := context.Background()

	if _, err := s.GetDaily(ctx, "nope"); !errors.Is(err, apperr.ErrInvalidID) {
		t.Errorf("err = %v, want ErrInvalidID", err)
	}
	if _, err := s.CompleteDaily(ctx, "00000000-0000-0000-0000-000000000000"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
