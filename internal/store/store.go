package store

import "github.com/starford/uruz/internal/models"

// HabitFilter narrows and paginates habit listings. Page and Limit are
// 1-based and must both be >= 1; zero values of the remaining fields match
// all records.
type HabitFilter struct {
	Page       int
	Limit      int
	Difficulty string
	Positive   *bool
}

// DifficultyCounts breaks a habit count down by difficulty.
type DifficultyCounts struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

// Stats is the single-pass aggregate over the full habit collection.
type Stats struct {
	Total        int              `json:"total"`
	Positive     int              `json:"positive"`
	Negative     int              `json:"negative"`
	CounterSum   int              `json:"counterSum"`
	CounterAvg   float64          `json:"counterAvg"`
	ByDifficulty DifficultyCounts `json:"byDifficulty"`
}

// Store defines the persistence operations the service layer depends on.
// Consumers should depend on this interface rather than the concrete *DB type
// to facilitate testing with mocks.
type Store interface {
	InsertHabit(h *models.Habit) error
	GetHabit(id string) (*models.Habit, error)
	UpdateHabit(id string, apply func(*models.Habit) error) (*models.Habit, error)
	DeleteHabit(id string) (*models.Habit, error)
	ListHabits(f HabitFilter) ([]models.Habit, int, error)
	HabitStats() (*Stats, error)

	InsertDaily(d *models.Daily) error
	GetDaily(id string) (*models.Daily, error)
	UpdateDaily(id string, apply func(*models.Daily) error) (*models.Daily, error)
	DeleteDaily(id string) (*models.Daily, error)
	ListDailies(page, limit int) ([]models.Daily, int, error)

	Ping() error
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
