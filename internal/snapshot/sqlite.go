package snapshot

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS records (
	grp     TEXT    NOT NULL,
	seq     INTEGER NOT NULL,
	payload TEXT    NOT NULL,
	PRIMARY KEY (grp, seq)
);

CREATE TABLE IF NOT EXISTS prefs (
	k TEXT PRIMARY KEY,
	v TEXT NOT NULL
);
`

// Table group keys. tags holds a single row carrying both namespaces.
const (
	grpContacts  = "contacts"
	grpMeetings  = "meetings"
	grpReminders = "reminders"
	grpSales     = "sales"
	grpTags      = "tags"
)

// DB implements Provider over a SQLite database: one row per record,
// grouped and ordered, replaced wholesale in a transaction on save.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite snapshot database.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("snapshot: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("snapshot: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("snapshot: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Load reads the persisted snapshot, validating every record.
func (db *DB) Load() (*Snapshot, error) {
	snap := &Snapshot{Prefs: DefaultPrefs()}

	var persons []personRecord
	if err := db.loadGroup(grpContacts, &persons); err != nil {
		return nil, err
	}
	for _, r := range persons {
		p, err := decodePerson(r)
		if err != nil {
			return nil, decodeErr(grpContacts, err)
		}
		snap.Persons = append(snap.Persons, p)
	}

	var meetings []meetingRecord
	if err := db.loadGroup(grpMeetings, &meetings); err != nil {
		return nil, err
	}
	for _, r := range meetings {
		m, err := decodeMeeting(r)
		if err != nil {
			return nil, decodeErr(grpMeetings, err)
		}
		snap.Meetings = append(snap.Meetings, m)
	}

	var reminders []reminderRecord
	if err := db.loadGroup(grpReminders, &reminders); err != nil {
		return nil, err
	}
	for _, r := range reminders {
		rem, err := decodeReminder(r)
		if err != nil {
			return nil, decodeErr(grpReminders, err)
		}
		snap.Reminders = append(snap.Reminders, rem)
	}

	var sales []saleRecord
	if err := db.loadGroup(grpSales, &sales); err != nil {
		return nil, err
	}
	for _, r := range sales {
		s, err := decodeSale(r)
		if err != nil {
			return nil, decodeErr(grpSales, err)
		}
		snap.Sales = append(snap.Sales, s)
	}

	var tags []tagsRecord
	if err := db.loadGroup(grpTags, &tags); err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		var err error
		if snap.ContactTags, err = decodeTagNames(tags[0].ContactTags); err != nil {
			return nil, decodeErr(grpTags, err)
		}
		if snap.SaleTags, err = decodeTagNames(tags[0].SaleTags); err != nil {
			return nil, decodeErr(grpTags, err)
		}
	}

	if err := db.loadPrefs(&snap.Prefs); err != nil {
		return nil, err
	}
	return snap, nil
}

// Save replaces the entire snapshot in one transaction.
func (db *DB) Save(snap *Snapshot) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("snapshot: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.Exec(`DELETE FROM records`); err != nil {
		return fmt.Errorf("snapshot: clear records: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO records (grp, seq, payload) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("snapshot: prepare insert: %w", err)
	}
	defer stmt.Close()

	insert := func(grp string, seq int, v any) error {
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("snapshot: encode %s: %w", grp, err)
		}
		if _, err := stmt.Exec(grp, seq, string(payload)); err != nil {
			return fmt.Errorf("snapshot: insert %s: %w", grp, err)
		}
		return nil
	}

	for i, p := range snap.Persons {
		if err := insert(grpContacts, i, encodePerson(p)); err != nil {
			return err
		}
	}
	for i, m := range snap.Meetings {
		if err := insert(grpMeetings, i, encodeMeeting(m)); err != nil {
			return err
		}
	}
	for i, r := range snap.Reminders {
		if err := insert(grpReminders, i, encodeReminder(r)); err != nil {
			return err
		}
	}
	for i, s := range snap.Sales {
		if err := insert(grpSales, i, encodeSale(s)); err != nil {
			return err
		}
	}
	tags := tagsRecord{
		ContactTags: encodeTagNames(snap.ContactTags),
		SaleTags:    encodeTagNames(snap.SaleTags),
	}
	if err := insert(grpTags, 0, tags); err != nil {
		return err
	}

	prefsJSON, err := json.Marshal(snap.Prefs)
	if err != nil {
		return fmt.Errorf("snapshot: encode prefs: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO prefs (k, v) VALUES ('prefs', ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v`, string(prefsJSON)); err != nil {
		return fmt.Errorf("snapshot: upsert prefs: %w", err)
	}

	return tx.Commit()
}

// loadGroup scans one group's rows in sequence order into a slice of
// wire records.
func (db *DB) loadGroup(grp string, out any) error {
	rows, err := db.conn.Query(`SELECT payload FROM records WHERE grp = ? ORDER BY seq`, grp)
	if err != nil {
		return fmt.Errorf("snapshot: query %s: %w", grp, err)
	}
	defer rows.Close()

	var payloads []json.RawMessage
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return fmt.Errorf("snapshot: scan %s: %w", grp, err)
		}
		payloads = append(payloads, json.RawMessage(payload))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("snapshot: iterate %s: %w", grp, err)
	}

	joined, err := json.Marshal(payloads)
	if err != nil {
		return fmt.Errorf("snapshot: join %s: %w", grp, err)
	}
	if err := json.Unmarshal(joined, out); err != nil {
		return fmt.Errorf("snapshot: parse %s: %w", grp, err)
	}
	return nil
}

func (db *DB) loadPrefs(prefs *Prefs) error {
	var v string
	err := db.conn.QueryRow(`SELECT v FROM prefs WHERE k = 'prefs'`).Scan(&v)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("snapshot: load prefs: %w", err)
	}
	if err := json.Unmarshal([]byte(v), prefs); err != nil {
		return fmt.Errorf("snapshot: parse prefs: %w", err)
	}
	return nil
}
