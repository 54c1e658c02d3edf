package habitservice

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/starford/uruz/internal/models"
)

// CreateDailyInput is a candidate daily missing id and timestamps. A nil
// recurrence mask schedules the daily for every weekday.
type CreateDailyInput struct {
	Title      string           `json:"title"`
	Notes      string           `json:"notes"`
	Difficulty string           `json:"difficulty"`
	Days       *models.Weekdays `json:"days"`
}

func (in *CreateDailyInput) validate() error {
	return fieldErrors(validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.Notes, validation.Length(0, 500)),
		validation.Field(&in.Difficulty, validation.Required,
			validation.In(models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard)),
	))
}

// UpdateDailyInput is a sparse set of daily fields to change.
type UpdateDailyInput struct {
	Title      *string          `json:"title"`
	Notes      *string          `json:"notes"`
	Difficulty *string          `json:"difficulty"`
	Days       *models.Weekdays `json:"days"`
}

func (in *UpdateDailyInput) validate() error {
	return fieldErrors(validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&in.Notes, validation.Length(0, 500)),
		validation.Field(&in.Difficulty, validation.NilOrNotEmpty,
			validation.In(models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard)),
	))
}

// CreateDaily validates the candidate record, applies defaults and persists it.
func (s *Service) CreateDaily(_ context.Context, in CreateDailyInput) (*models.Daily, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Difficulty == "" {
		in.Difficulty = models.DifficultyMedium
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	days := models.EveryDay()
	if in.Days != nil {
		days = *in.Days
	}
	now := s.now().UTC()
	d := &models.Daily{
		ID:         uuid.NewString(),
		Title:      in.Title,
		Notes:      in.Notes,
		Difficulty: in.Difficulty,
		Days:       days,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.InsertDaily(d); err != nil {
		return nil, err
	}
	return d, nil
}

// GetDaily returns the daily with the given id.
func (s *Service) GetDaily(_ context.Context, id string) (*models.Daily, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.store.GetDaily(id)
}

// UpdateDaily merges the supplied fields into the stored record.
func (s *Service) UpdateDaily(_ context.Context, id string, in UpdateDailyInput) (*models.Daily, error) {
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
	return s.store.UpdateDaily(id, func(d *models.Daily) error {
		if in.Title != nil {
			d.Title = *in.Title
		}
		if in.Notes != nil {
			d.Notes = *in.Notes
		}
		if in.Difficulty != nil {
			d.Difficulty = *in.Difficulty
		}
		if in.Days != nil {
			d.Days = *in.Days
		}
		d.UpdatedAt = s.now().UTC()
		return nil
	})
}

// CompleteDaily marks the daily done for today. The streak advances once per
// calendar day; the completion flag resets implicitly at the day boundary.
func (s *Service) CompleteDaily(_ context.Context, id string) (*models.Daily, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.store.UpdateDaily(id, func(d *models.Daily) error {
		day := s.now().Format(models.DateLayout)
		if d.CompletedOn != day {
			d.CompletedOn = day
			d.Streak++
		}
		d.UpdatedAt = s.now().UTC()
		return nil
	})
}

// DeleteDaily removes the daily permanently and returns the deleted record.
func (s *Service) DeleteDaily(_ context.Context, id string) (*models.Daily, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	return s.store.DeleteDaily(id)
}

// ListDailies returns one page of dailies plus the total count.
func (s *Service) ListDailies(_ context.Context, page, limit int) ([]models.Daily, int, error) {
	page, limit = NormalizePage(page, limit)
	return s.store.ListDailies(page, limit)
}
