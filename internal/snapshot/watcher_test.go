package snapshot

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/verlow/clientele/internal/models"
)

func watcherLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func contactsDoc(t *testing.T, name, phone, email string) []byte {
	t.Helper()
	doc, err := json.Marshal([]map[string]any{
		{"name": name, "phone": phone, "email": email},
	})
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestWatcher_ExternalEditReloads(t *testing.T) {
	dir := t.TempDir()
	fsp, err := NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var gotGroups []models.Group
	var gotSnap *Snapshot

	go Watch(ctx, fsp, watcherLogger(), func(groups []models.Group, snap *Snapshot) {
		mu.Lock()
		gotGroups = groups
		gotSnap = snap
		mu.Unlock()
	})

	time.Sleep(100 * time.Millisecond)

	doc := contactsDoc(t, "Amy Bell", "91234567", "amy@example.com")
	if err := os.WriteFile(filepath.Join(dir, fileContacts), doc, 0o644); err != nil {
		t.Fatal(err)
	}

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return gotSnap != nil
	}, "external edit did not trigger reload")

	mu.Lock()
	defer mu.Unlock()
	if len(gotGroups) != 1 || gotGroups[0] != models.GroupContact {
		t.Errorf("groups = %v, want [contact]", gotGroups)
	}
	if gotSnap == nil || len(gotSnap.Persons) != 1 {
		t.Fatalf("snapshot = %+v", gotSnap)
	}
	if got := string(gotSnap.Persons[0].Name); got != "Amy Bell" {
		t.Errorf("reloaded name = %q", got)
	}
}

func TestWatcher_IgnoresOwnSaves(t *testing.T) {
	dir := t.TempDir()
	fsp, err := NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	reloads := 0

	go Watch(ctx, fsp, watcherLogger(), func([]models.Group, *Snapshot) {
		mu.Lock()
		reloads++
		mu.Unlock()
	})

	time.Sleep(100 * time.Millisecond)

	amy := models.NewPerson("Amy Bell", "91234567", "amy@example.com", nil)
	if err := fsp.Save(&Snapshot{Persons: []models.Person{amy}, Prefs: DefaultPrefs()}); err != nil {
		t.Fatal(err)
	}

	// Allow the debounce window to pass; the provider's own write must
	// not bounce back as a reload.
	time.Sleep(600 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if reloads != 0 {
		t.Errorf("reloads = %d, want 0 for own save", reloads)
	}
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	fsp, err := NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	reloads := 0

	go Watch(ctx, fsp, watcherLogger(), func([]models.Group, *Snapshot) {
		mu.Lock()
		reloads++
		mu.Unlock()
	})

	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(600 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if reloads != 0 {
		t.Errorf("reloads = %d, want 0 for untracked file", reloads)
	}
}
