package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/starford/uruz/internal/apperr"
	"github.com/starford/uruz/internal/models"
)

const dailyColumns = `id, title, notes, difficulty, days, completed_on, streak, created_at, updated_at`

// InsertDaily persists a new daily row.
func (db *DB) InsertDaily(d *models.Daily) error {
	days, _ := json.Marshal(d.Days)
	_, err := db.conn.Exec(`
		INSERT INTO dailies (`+dailyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.Title, d.Notes, d.Difficulty, string(days), d.CompletedOn, d.Streak, d.CreatedAt, d.UpdatedAt)
	if err != nil {
		if isConstraintErr(err) {
			return fmt.Errorf("store: insert daily id %s: %w", d.ID, apperr.ErrDuplicate)
		}
		return fmt.Errorf("store: insert daily: %w", err)
	}
	return nil
}

// GetDaily returns the daily with the given id.
func (db *DB) GetDaily(id string) (*models.Daily, error) {
	d, err := scanDaily(db.conn.QueryRow(`SELECT `+dailyColumns+` FROM dailies WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get daily: %w", err)
	}
	return d, nil
}

// UpdateDaily reads the daily inside a transaction, lets apply mutate it, and
// writes the result back.
func (db *DB) UpdateDaily(id string, apply func(*models.Daily) error) (*models.Daily, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	d, err := scanDaily(tx.QueryRow(`SELECT `+dailyColumns+` FROM dailies WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read daily: %w", err)
	}

	if err := apply(d); err != nil {
		return nil, err
	}

	days, _ := json.Marshal(d.Days)
	_, err = tx.Exec(`
		UPDATE dailies
		SET title = ?, notes = ?, difficulty = ?, days = ?, completed_on = ?, streak = ?, updated_at = ?
		WHERE id = ?
	`, d.Title, d.Notes, d.Difficulty, string(days), d.CompletedOn, d.Streak, d.UpdatedAt, d.ID)
	if err != nil {
		return nil, fmt.Errorf("store: update daily: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return d, nil
}

// DeleteDaily removes the daily permanently and returns the deleted record.
func (db *DB) DeleteDaily(id string) (*models.Daily, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return nil, fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	d, err := scanDaily(tx.QueryRow(`SELECT `+dailyColumns+` FROM dailies WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read daily: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM dailies WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("store: delete daily: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store: commit: %w", err)
	}
	return d, nil
}

// ListDailies returns one page of dailies, newest-created first, plus the
// total count.
func (db *DB) ListDailies(page, limit int) ([]models.Daily, int, error) {
	var total int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM dailies`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("store: count dailies: %w", err)
	}

	rows, err := db.conn.Query(
		`SELECT `+dailyColumns+` FROM dailies ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list dailies: %w", err)
	}
	defer rows.Close()

	dailies := []models.Daily{}
	for rows.Next() {
		d, err := scanDaily(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("store: scan daily: %w", err)
		}
		dailies = append(dailies, *d)
	}
	return dailies, total, rows.Err()
}

func scanDaily(row scanner) (*models.Daily, error) {
	var d models.Daily
	var days string
	err := row.Scan(&d.ID, &d.Title, &d.Notes, &d.Difficulty, &days, &d.CompletedOn,
		&d.Streak, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(days), &d.Days); err != nil {
		return nil, fmt.Errorf("store: decode days: %w", err)
	}
	return &d, nil
}
