// Package snapshot persists the record store as one serialized
// document per data group plus one preferences document. Two backends
// implement the contract: a JSON file directory and a SQLite database.
// Loading validates every field through the value-object constructors,
// so a corrupt snapshot fails load instead of admitting invalid records.
package snapshot

import "github.com/verlow/clientele/internal/models"

// Prefs is the preferences snapshot (window geometry for the desktop
// shell that consumes this core).
type Prefs struct {
	WindowWidth  int `json:"window_width"`
	WindowHeight int `json:"window_height"`
	WindowX      int `json:"window_x"`
	WindowY      int `json:"window_y"`
}

// DefaultPrefs returns the preferences used before any are saved.
func DefaultPrefs() Prefs {
	return Prefs{WindowWidth: 740, WindowHeight: 600}
}

// Snapshot is the full persisted state.
type Snapshot struct {
	Persons     []models.Person
	Meetings    []models.Meeting
	Reminders   []models.Reminder
	Sales       []models.Sale
	ContactTags []models.TagName
	SaleTags    []models.TagName
	Prefs       Prefs
}

// Provider is the load/save contract the core requires; the concrete
// layout belongs to the backend.
type Provider interface {
	// Load reads the persisted snapshot. Absent state yields an empty
	// snapshot with default preferences, not an error.
	Load() (*Snapshot, error)
	// Save persists the snapshot atomically per data group.
	Save(*Snapshot) error
	Close() error
}
