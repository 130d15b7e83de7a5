// Package testutil provides shared test helpers for building records
// and snapshot backends.
package testutil

import (
	"os"
	"testing"

	"github.com/verlow/clientele/internal/models"
	"github.com/verlow/clientele/internal/snapshot"
	"github.com/verlow/clientele/internal/store"
)

// TestDB creates a temporary SQLite snapshot database that is
// automatically cleaned up.
func TestDB(t *testing.T) *snapshot.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "clientele-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := snapshot.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestDataDir creates a temporary data directory with an FS snapshot
// provider.
func TestDataDir(t *testing.T) (string, *snapshot.FS) {
	t.Helper()
	dir := t.TempDir()
	fsp, err := snapshot.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, fsp
}

// Person builds a valid contact, failing the test on bad input.
func Person(t *testing.T, name, phone, email string, tags ...string) models.Person {
	t.Helper()
	n, err := models.NewName(name)
	if err != nil {
		t.Fatal(err)
	}
	p, err := models.NewPhone(phone)
	if err != nil {
		t.Fatal(err)
	}
	e, err := models.NewEmail(email)
	if err != nil {
		t.Fatal(err)
	}
	return models.NewPerson(n, p, e, TagNames(t, tags...))
}

// Date parses a date in either accepted layout.
func Date(t *testing.T, s string) models.DateTime {
	t.Helper()
	d, err := models.NewDateTime(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

// Message builds a valid message value.
func Message(t *testing.T, s string) models.Message {
	t.Helper()
	m, err := models.NewMessage(s)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// Sale builds a valid sale for the given contact.
func Sale(t *testing.T, contact models.Person, item, date, price string, qty int, tags ...string) models.Sale {
	t.Helper()
	it, err := models.NewItemName(item)
	if err != nil {
		t.Fatal(err)
	}
	pr, err := models.NewUnitPrice(price)
	if err != nil {
		t.Fatal(err)
	}
	q, err := models.NewQuantity(qty)
	if err != nil {
		t.Fatal(err)
	}
	return models.NewSale(contact, it, Date(t, date), pr, q, TagNames(t, tags...))
}

// TagNames converts raw strings into validated tag names.
func TagNames(t *testing.T, tags ...string) []models.TagName {
	t.Helper()
	if len(tags) == 0 {
		return nil
	}
	out := make([]models.TagName, len(tags))
	for i, raw := range tags {
		tag, err := models.NewTagName(raw)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = tag
	}
	return out
}

// SeededStore returns a store holding two contacts in display order.
func SeededStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New()
	for _, p := range []models.Person{
		Person(t, "Amy Bell", "91234567", "amy@example.com"),
		Person(t, "Ben Choo", "98765432", "ben@example.com"),
	} {
		if err := s.AddPerson(p); err != nil {
			t.Fatal(err)
		}
	}
	return s
}
