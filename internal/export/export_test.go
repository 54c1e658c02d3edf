package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/uruz/internal/checksum"
	"github.com/starford/uruz/internal/habitservice"
	"github.com/starford/uruz/internal/testutil"
)

func seededService(t *testing.T, habits, dailies int) *habitservice.Service {
	t.Helper()

	svc := habitservice.NewService(testutil.TestStore(t))
	ctx := context.Background()
	for i := 0; i < habits; i++ {
		if _, err := svc.CreateHabit(ctx, habitservice.CreateHabitInput{
			Title: fmt.Sprintf("habit-%03d", i),
		}); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < dailies; i++ {
		if _, err := svc.CreateDaily(ctx, habitservice.CreateDailyInput{
			Title: fmt.Sprintf("daily-%03d", i),
		}); err != nil {
			t.Fatal(err)
		}
	}
	return svc
}

func TestSnapshotWritesPayloadAndManifest(t *testing.T) {
	svc := seededService(t, 3, 2)
	dir := t.TempDir()

	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	m, err := w.Snapshot(context.Background(), svc)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if m.Habits != 3 || m.Dailies != 2 {
		t.Errorf("manifest counts = %d/%d, want 3/2", m.Habits, m.Dailies)
	}

	payload, err := os.ReadFile(m.File)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if len(snap.Habits) != 3 || len(snap.Dailies) != 2 {
		t.Errorf("snapshot counts = %d/%d", len(snap.Habits), len(snap.Dailies))
	}
	if m.Checksum != checksum.Sum(payload) {
		t.Error("manifest checksum does not match payload")
	}

	var onDisk Manifest
	raw, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatal(err)
	}
	if onDisk.Checksum != m.Checksum || onDisk.Habits != 3 {
		t.Errorf("manifest on disk = %+v", onDisk)
	}
}

func TestSnapshotPagesPastOnePage(t *testing.T) {
	svc := seededService(t, habitservice.MaxPageSize+5, 0)
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	m, err := w.Snapshot(context.Background(), svc)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if m.Habits != habitservice.MaxPageSize+5 {
		t.Errorf("habits = %d, want %d", m.Habits, habitservice.MaxPageSize+5)
	}
}

func TestSnapshotEmptyStore(t *testing.T) {
	svc := habitservice.NewService(testutil.TestStore(t))
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	m, err := w.Snapshot(context.Background(), svc)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if m.Habits != 0 || m.Dailies != 0 {
		t.Errorf("counts = %+v", m)
	}

	payload, err := os.ReadFile(m.File)
	if err != nil {
		t.Fatal(err)
	}
	// Empty collections serialize as [], never null.
	if strings.Contains(string(payload), "null") {
		t.Errorf("payload contains null collections: %s", payload)
	}
}

func TestSnapshotLeavesNoTempFiles(t *testing.T) {
	svc := seededService(t, 1, 0)
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Snapshot(context.Background(), svc); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".uruz-tmp-") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
	if len(entries) != 2 {
		t.Errorf("dir has %d entries, want snapshot + manifest", len(entries))
	}
}
