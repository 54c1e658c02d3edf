package habitservice

import (
	"context"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/starford/uruz/internal/models"
	"github.com/starford/uruz/internal/store"
)

// CreateHabitInput is a candidate habit missing id and timestamps.
type CreateHabitInput struct {
	Title      string `json:"title"`
	Notes      string `json:"notes"`
	Positive   bool   `json:"positive"`
	Negative   bool   `json:"negative"`
	Difficulty string `json:"difficulty"`
	Counter    int    `json:"counter"`
}

func (in *CreateHabitInput) validate() error {
	return fieldErrors(validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Notes, validation.Length(0, 500)),
		validation.Field(&in.Difficulty, validation.Required,
			validation.In(models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard)),
		validation.Field(&in.Counter, validation.Min(0)),
	))
}

// UpdateHabitInput is a sparse set of habit fields to change. Nil fields are
// left untouched; supplied fields are validated under the same rules as
// creation.
type UpdateHabitInput struct {
	Title      *string `json:"title"`
	Notes      *string `json:"notes"`
	Positive   *bool   `json:"positive"`
	Negative   *bool   `json:"negative"`
	Difficulty *string `json:"difficulty"`
	Counter    *int    `json:"counter"`
}

func (in *UpdateHabitInput) validate() error {
	return fieldErrors(validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&in.Notes, validation.Length(0, 500)),
		validation.Field(&in.Difficulty, validation.NilOrNotEmpty,
			validation.In(models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard)),
	))
}

// CreateHabit validates the candidate record, applies defaults, assigns the
// id and timestamps and persists it.
func (s *Service) CreateHabit(_ context.Context, in CreateHabitInput) (*models.Habit, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Difficulty == "" {
		in.Difficulty = models.DifficultyMedium
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	h := &models.Habit{
		ID:             uuid.NewString(),
		Title:          in.Title,
		Notes:          in.Notes,
		Positive:       in.Positive,
		Negative:       in.Negative,
		Difficulty:     in.Difficulty,
		Counter:        in.Counter,
		DatesCompleted: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.InsertHabit(h); err != nil {
		return nil, err
	}
	return h, nil
}

// GetHabit returns the habit with the given id.
func (s *Service) GetHabit(_ context.Context, id string) (*models.Habit, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.store.GetHabit(id)
}

// UpdateHabit merges the supplied fields into the stored record. Validation
// of the merge runs against the state read inside the store transaction, and
// a counter pushed below zero is clamped to 0 rather than rejected.
func (s *Service) UpdateHabit(_ context.Context, id string, in UpdateHabitInput) (*models.Habit, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		in.Title = &t
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	return s.store.UpdateHabit(id, func(h *models.Habit) error {
		if in.Title != nil {
			h.Title = *in.Title
		}
		if in.Notes != nil {
			h.Notes = *in.Notes
		}
		if in.Positive != nil {
			h.Positive = *in.Positive
		}
		if in.Negative != nil {
			h.Negative = *in.Negative
		}
		if in.Difficulty != nil {
			h.Difficulty = *in.Difficulty
		}
		if in.Counter != nil {
			h.Counter = max(*in.Counter, 0)
		}
		h.UpdatedAt = s.now().UTC()
		return nil
	})
}

// CompleteHabit marks the habit done for today's calendar day. The date set
// holds at most one entry per day, and the streak advances only when the day
// is new, so repeating the call within one day is a timestamp-only update.
func (s *Service) CompleteHabit(_ context.Context, id string) (*models.Habit, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.store.UpdateHabit(id, func(h *models.Habit) error {
		day := s.now().Format(models.DateLayout)
		if !slices.Contains(h.DatesCompleted, day) {
			h.DatesCompleted = append(h.DatesCompleted, day)
			slices.Sort(h.DatesCompleted)
			h.Streak++
		}
		h.UpdatedAt = s.now().UTC()
		return nil
	})
}

// DeleteHabit removes the habit permanently and returns the deleted record
// as confirmation.
func (s *Service) DeleteHabit(_ context.Context, id string) (*models.Habit, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.store.DeleteHabit(id)
}

// ListHabits returns one page of habits plus the total matching the filter.
// Out-of-range page or limit values fall back to defaults.
func (s *Service) ListHabits(_ context.Context, f store.HabitFilter) ([]models.Habit, int, error) {
	f.Page, f.Limit = NormalizePage(f.Page, f.Limit)
	return s.store.ListHabits(f)
}

// HabitStats aggregates the full collection for dashboard display.
func (s *Service) HabitStats(_ context.Context) (*store.Stats, error) {
	return s.store.HabitStats()
}
