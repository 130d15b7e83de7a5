package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/verlow/clientele/internal/checksum"
	"github.com/verlow/clientele/internal/models"
)

// Group document filenames inside the data directory.
const (
	fileContacts  = "contacts.json"
	fileMeetings  = "meetings.json"
	fileReminders = "reminders.json"
	fileSales     = "sales.json"
	fileTags      = "tags.json"
	filePrefs     = "prefs.json"
)

// groupFiles maps a document filename to the record group it carries,
// for the watcher's event filtering.
var groupFiles = map[string]models.Group{
	fileContacts:  models.GroupContact,
	fileMeetings:  models.GroupMeeting,
	fileReminders: models.GroupReminder,
	fileSales:     models.GroupSale,
	fileTags:      models.GroupTag,
}

// FS implements Provider over a directory of JSON documents, one per
// data group plus preferences. Writes are atomic (tmp, fsync, rename)
// and skipped when the document content is unchanged, so external
// watchers see only real changes.
type FS struct {
	dir string

	mu   sync.Mutex
	sums map[string]string // filename -> checksum of last read/write
}

// NewFS creates (if needed) the data directory and returns an FS
// provider rooted at it.
func NewFS(dir string) (*FS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("snapshot: resolve dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("snapshot: create dir: %w", err)
	}
	return &FS{dir: abs, sums: make(map[string]string)}, nil
}

// Dir returns the absolute data directory path.
func (f *FS) Dir() string { return f.dir }

// Load reads every group document. Missing documents load as empty
// groups; malformed documents fail the load.
func (f *FS) Load() (*Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := &Snapshot{Prefs: DefaultPrefs()}

	var persons []personRecord
	if err := f.readDoc(fileContacts, &persons); err != nil {
		return nil, err
	}
	for _, r := range persons {
		p, err := decodePerson(r)
		if err != nil {
			return nil, decodeErr(fileContacts, err)
		}
		snap.Persons = append(snap.Persons, p)
	}

	var meetings []meetingRecord
	if err := f.readDoc(fileMeetings, &meetings); err != nil {
		return nil, err
	}
	for _, r := range meetings {
		m, err := decodeMeeting(r)
		if err != nil {
			return nil, decodeErr(fileMeetings, err)
		}
		snap.Meetings = append(snap.Meetings, m)
	}

	var reminders []reminderRecord
	if err := f.readDoc(fileReminders, &reminders); err != nil {
		return nil, err
	}
	for _, r := range reminders {
		rem, err := decodeReminder(r)
		if err != nil {
			return nil, decodeErr(fileReminders, err)
		}
		snap.Reminders = append(snap.Reminders, rem)
	}

	var sales []saleRecord
	if err := f.readDoc(fileSales, &sales); err != nil {
		return nil, err
	}
	for _, r := range sales {
		s, err := decodeSale(r)
		if err != nil {
			return nil, decodeErr(fileSales, err)
		}
		snap.Sales = append(snap.Sales, s)
	}

	var tags tagsRecord
	if err := f.readDoc(fileTags, &tags); err != nil {
		return nil, err
	}
	var err error
	if snap.ContactTags, err = decodeTagNames(tags.ContactTags); err != nil {
		return nil, decodeErr(fileTags, err)
	}
	if snap.SaleTags, err = decodeTagNames(tags.SaleTags); err != nil {
		return nil, decodeErr(fileTags, err)
	}

	if err := f.readDoc(filePrefs, &snap.Prefs); err != nil {
		return nil, err
	}

	return snap, nil
}

// Save writes every group document atomically, skipping unchanged ones.
func (f *FS) Save(snap *Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	persons := make([]personRecord, len(snap.Persons))
	for i, p := range snap.Persons {
		persons[i] = encodePerson(p)
	}
	meetings := make([]meetingRecord, len(snap.Meetings))
	for i, m := range snap.Meetings {
		meetings[i] = encodeMeeting(m)
	}
	reminders := make([]reminderRecord, len(snap.Reminders))
	for i, r := range snap.Reminders {
		reminders[i] = encodeReminder(r)
	}
	sales := make([]saleRecord, len(snap.Sales))
	for i, s := range snap.Sales {
		sales[i] = encodeSale(s)
	}
	tags := tagsRecord{
		ContactTags: encodeTagNames(snap.ContactTags),
		SaleTags:    encodeTagNames(snap.SaleTags),
	}

	for _, doc := range []struct {
		name string
		v    any
	}{
		{fileContacts, persons},
		{fileMeetings, meetings},
		{fileReminders, reminders},
		{fileSales, sales},
		{fileTags, tags},
		{filePrefs, snap.Prefs},
	} {
		if err := f.writeDoc(doc.name, doc.v); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op for the file backend.
func (f *FS) Close() error { return nil }

// knownSum returns the checksum recorded at the last read or write of
// the named document (empty if never touched).
func (f *FS) knownSum(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sums[name]
}

func (f *FS) readDoc(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("snapshot: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("snapshot: parse %s: %w", name, err)
	}
	f.sums[name] = checksum.Sum(data)
	return nil
}

// writeDoc writes one document atomically: tmp file, fsync, rename.
func (f *FS) writeDoc(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", name, err)
	}
	data = append(data, '\n')

	sum := checksum.Sum(data)
	if f.sums[name] == sum {
		return nil
	}

	tmp, err := os.CreateTemp(f.dir, ".clientele-tmp-*")
	if err != nil {
		return fmt.Errorf("snapshot: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("snapshot: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("snapshot: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("snapshot: close temp: %w", err)
	}
	if err := os.Rename(tmpName, filepath.Join(f.dir, name)); err != nil {
		return fmt.Errorf("snapshot: rename: %w", err)
	}
	success = true
	f.sums[name] = sum
	return nil
}
