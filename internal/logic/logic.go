// Package logic is the application boundary: it turns raw command text
// into executed model changes and keeps the snapshot on disk in step
// with the in-memory record store.
package logic

import (
	"context"
	"log/slog"
	"sync"

	"github.com/verlow/clientele/internal/command"
	"github.com/verlow/clientele/internal/models"
	"github.com/verlow/clientele/internal/parser"
	"github.com/verlow/clientele/internal/snapshot"
	"github.com/verlow/clientele/internal/store"
)

// Listener is notified after a successful mutation, with the record
// groups that changed.
type Listener func(groups []models.Group)

// Logic wires the parser, the record store, and the snapshot provider.
// Execute calls are serialized so a half-applied command can never be
// snapshotted.
type Logic struct {
	mu       sync.Mutex
	store    *store.Store
	parser   *parser.Parser
	provider snapshot.Provider
	logger   *slog.Logger
	listener Listener
	prefs    snapshot.Prefs
}

// New builds a Logic over the given store and snapshot provider.
func New(st *store.Store, provider snapshot.Provider, logger *slog.Logger) (*Logic, error) {
	p, err := parser.New()
	if err != nil {
		return nil, err
	}
	return &Logic{
		store:    st,
		parser:   p,
		provider: provider,
		logger:   logger,
		prefs:    snapshot.DefaultPrefs(),
	}, nil
}

// SetListener registers the mutation listener. Call before serving.
func (l *Logic) SetListener(fn Listener) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.listener = fn
}

// Load reads the snapshot from the provider into the store. A missing
// snapshot yields an empty store; a corrupt one is an error.
func (l *Logic) Load(_ context.Context) error {
	snap, err := l.provider.Load()
	if err != nil {
		return err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.store.Reset(snap.Persons, snap.Meetings, snap.Reminders, snap.Sales,
		snap.ContactTags, snap.SaleTags)
	l.prefs = snap.Prefs
	l.logger.Info("logic: snapshot loaded",
		slog.Int("contacts", len(snap.Persons)),
		slog.Int("meetings", len(snap.Meetings)),
		slog.Int("reminders", len(snap.Reminders)),
		slog.Int("sales", len(snap.Sales)))
	return nil
}

// Execute parses and runs one command. On a mutating command the
// snapshot is saved before returning; a snapshot failure is logged but
// does not undo the in-memory change.
func (l *Logic) Execute(_ context.Context, text string) (*command.Result, error) {
	cmd, err := l.parser.Parse(text)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	res, err := cmd.Execute(l.store)
	if err != nil {
		return nil, err
	}
	if len(res.Mutated) > 0 {
		if saveErr := l.saveLocked(); saveErr != nil {
			l.logger.Error("logic: snapshot save failed",
				slog.String("error", saveErr.Error()))
		}
		if l.listener != nil {
			l.listener(res.Mutated)
		}
	}
	return res, nil
}

// ApplySnapshot replaces the store contents with an externally loaded
// snapshot, as after a watcher reload, and notifies the listener.
func (l *Logic) ApplySnapshot(groups []models.Group, snap *snapshot.Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.store.Reset(snap.Persons, snap.Meetings, snap.Reminders, snap.Sales,
		snap.ContactTags, snap.SaleTags)
	l.prefs = snap.Prefs
	if l.listener != nil {
		l.listener(groups)
	}
}

// Prefs returns the persisted window preferences.
func (l *Logic) Prefs() snapshot.Prefs {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.prefs
}

// SetPrefs updates and persists the window preferences.
func (l *Logic) SetPrefs(p snapshot.Prefs) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefs = p
	return l.saveLocked()
}

// Store exposes the record store for read-side views.
func (l *Logic) Store() *store.Store {
	return l.store
}

func (l *Logic) saveLocked() error {
	snap := &snapshot.Snapshot{
		Persons:     l.store.AllPersons(),
		Meetings:    l.store.AllMeetings(),
		Reminders:   l.store.AllReminders(),
		Sales:       l.store.AllSalesCanonical(),
		ContactTags: l.store.ContactTags(),
		SaleTags:    l.store.SaleTags(),
		Prefs:       l.prefs,
	}
	return l.provider.Save(snap)
}
