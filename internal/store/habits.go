package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/starford/uruz/internal/apperr"
	"github.com/starford/uruz/internal/models"
)

const habitColumns = `id, title, notes, positive, negative, difficulty, counter, streak, dates_completed, created_at, updated_at`

// InsertHabit persists a new habit row.
func (db *DB) InsertHabit(h *models.Habit) error {
	dates, _ := json.Marshal(nonNilDates(h.DatesCompleted))
	_, err := db.conn.Exec(`
		INSERT INTO habits (`+habitColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, h.ID, h.Title, h.Notes, h.Positive, h.Negative, h.Difficulty, h.Counter, h.Streak, string(dates), h.CreatedAt, h.UpdatedAt)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("store: insert habit id %s: %w", h.ID, apperr.ErrDuplicate)
		}
		return fmt.Errorf("store: insert habit: %w", err)
	}
	return nil
}

// GetHabit returns the habit with the given id.
func (db *DB) GetHabit(id string) (*models.Habit, error) {
	h, err := scanHabit(db.conn.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get habit: %w", err)
	}
	return h, nil
}

// UpdateHabit reads the habit inside a transaction, lets apply mutate it, and
// writes the result back. Validation in apply therefore runs against the state
// at read time; concurrent writers serialize on the database (last write wins).
func (db *DB) UpdateHabit(id string, apply func(*models.Habit) error) (*models.Habit, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	h, err := scanHabit(tx.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read habit: %w", err)
	}

	if err := apply(h); err != nil {
		return nil, err
	}

	dates, _ := json.Marshal(nonNilDates(h.DatesCompleted))
	_, err = tx.Exec(`
		UPDATE habits
		SET title = ?, notes = ?, positive = ?, negative = ?, difficulty = ?,
		    counter = ?, streak = ?, dates_completed = ?, updated_at = ?
		WHERE id = ?
	`, h.Title, h.Notes, h.Positive, h.Negative, h.Difficulty, h.Counter, h.Streak, string(dates), h.UpdatedAt, h.ID)
	if err != nil {
		return nil, fmt.Errorf("store: update habit: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return h, nil
}

// DeleteHabit removes the habit permanently and returns the deleted record.
func (db *DB) DeleteHabit(id string) (*models.Habit, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	h, err := scanHabit(tx.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read habit: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM habits WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("store: delete habit: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return h, nil
}

// ListHabits returns one page of habits, newest-created first, plus the total
// count matching the filter.
func (db *DB) ListHabits(f HabitFilter) ([]models.Habit, int, error) {
	var conds []string
	var args []any
	if f.Difficulty != "" {
		conds = append(conds, "difficulty = ?")
		args = append(args, f.Difficulty)
	}
	if f.Positive != nil {
		conds = append(conds, "positive = ?")
		args = append(args, *f.Positive)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM habits`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("store: count habits: %w", err)
	}

	rows, err := db.conn.Query(
		`SELECT `+habitColumns+` FROM habits`+where+` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		append(args, f.Limit, (f.Page-1)*f.Limit)...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list habits: %w", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("store: scan habit: %w", err)
		}
		habits = append(habits, *h)
	}
	return habits, total, rows.Err()
}

// HabitStats aggregates the full collection in a single query pass.
func (db *DB) HabitStats() (*Stats, error) {
	var s Stats
	err := db.conn.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(positive), 0),
			COALESCE(SUM(negative), 0),
			COALESCE(SUM(counter), 0),
			COALESCE(AVG(counter), 0),
			COALESCE(SUM(CASE WHEN difficulty = 'easy'   THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN difficulty = 'medium' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN difficulty = 'hard'   THEN 1 ELSE 0 END), 0)
		FROM habits
	`).Scan(&s.Total, &s.Positive, &s.Negative, &s.CounterSum, &s.CounterAvg,
		&s.ByDifficulty.Easy, &s.ByDifficulty.Medium, &s.ByDifficulty.Hard)
	if err != nil {
		return nil, fmt.Errorf("store: habit stats: %w", err)
	}
	return &s, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (*models.Habit, error) {
	var h models.Habit
	var dates string
	err := row.Scan(&h.ID, &h.Title, &h.Notes, &h.Positive, &h.Negative, &h.Difficulty,
		&h.Counter, &h.Streak, &dates, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(dates), &h.DatesCompleted); err != nil {
		return nil, fmt.Errorf("store: decode dates_completed: %w", err)
	}
	h.DatesCompleted = nonNilDates(h.DatesCompleted)
	return &h, nil
}

func nonNilDates(dates []string) []string {
	if dates == nil {
		return []string{}
	}
	return dates
}

func isConstraintErr(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint
}
