// Package export writes JSON snapshots of the habit store for backup.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/starford/uruz/internal/checksum"
	"github.com/starford/uruz/internal/habitservice"
	"github.com/starford/uruz/internal/models"
	"github.com/starford/uruz/internal/store"
)

// Manifest describes a written snapshot.
type Manifest struct {
	CreatedAt time.Time `json:"createdAt"`
	File      string    `json:"file"`
	Habits    int       `json:"habits"`
	Dailies   int       `json:"dailies"`
	Checksum  string    `json:"checksum"`
}

// Snapshot is the full exported payload.
type Snapshot struct {
	ExportedAt time.Time      `json:"exportedAt"`
	Habits     []models.Habit `json:"habits"`
	Dailies    []models.Daily `json:"dailies"`
}

// Writer writes snapshots into a directory using atomic renames, so a
// half-written file is never left behind under the final name.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a Writer rooted at dir, creating it if needed.
func NewWriter(dir string) (*Writer, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("export: resolve dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("export: create dir: %w", err)
	}
	return &Writer{dir: abs, now: time.Now}, nil
}

// Snapshot pages through every habit and daily, writes one timestamped JSON
// file plus a manifest, and returns the manifest.
func (w *Writer) Snapshot(ctx context.Context, svc *habitservice.Service) (*Manifest, error) {
	snap := Snapshot{
		ExportedAt: w.now().UTC(),
		Habits:     []models.Habit{},
		Dailies:    []models.Daily{},
	}

	for page := 1; ; page++ {
		habits, total, err := svc.ListHabits(ctx, store.HabitFilter{Page: page, Limit: habitservice.MaxPageSize})
		if err != nil {
			return nil, fmt.Errorf("export: list habits: %w", err)
		}
		snap.Habits = append(snap.Habits, habits...)
		if len(snap.Habits) >= total || len(habits) == 0 {
			break
		}
	}
	for page := 1; ; page++ {
		dailies, total, err := svc.ListDailies(ctx, page, habitservice.MaxPageSize)
		if err != nil {
			return nil, fmt.Errorf("export: list dailies: %w", err)
		}
		snap.Dailies = append(snap.Dailies, dailies...)
		if len(snap.Dailies) >= total || len(dailies) == 0 {
			break
		}
	}

	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode snapshot: %w", err)
	}

	name := fmt.Sprintf("snapshot-%s.json", snap.ExportedAt.Format("20060102-150405"))
	if err := w.writeAtomic(name, payload); err != nil {
		return nil, err
	}

	m := &Manifest{
		CreatedAt: snap.ExportedAt,
		File:      filepath.Join(w.dir, name),
		Habits:    len(snap.Habits),
		Dailies:   len(snap.Dailies),
		Checksum:  checksum.Sum(payload),
	}
	manifest, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode manifest: %w", err)
	}
	if err := w.writeAtomic("manifest.json", manifest); err != nil {
		return nil, err
	}
	return m, nil
}

// writeAtomic writes content as tmp file → fsync → rename.
func (w *Writer) writeAtomic(name string, content []byte) error {
	abs := filepath.Join(w.dir, name)

	tmp, err := os.CreateTemp(w.dir, ".uruz-tmp-*")
	if err != nil {
		return fmt.Errorf("export: create temp: %w", err)
	}
	tmpName := tmp.Name()

	// Clean up on any failure path.
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("export: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("export: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: close temp: %w", err)
	}
	if err := os.Rename(tmpName, abs); err != nil {
		return fmt.Errorf("export: rename: %w", err)
	}
	success = true
	return nil
}
