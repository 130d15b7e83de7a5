// Package store holds the canonical in-memory record collections and
// their live filtered/sorted views. All mutations are all-or-nothing:
// every check happens before the first write, so a failed operation
// leaves the store exactly as it was.
package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/models"
)

// Default comparators for the displayed views.
var (
	personByName = func(a, b models.Person) bool {
		return strings.ToLower(a.Name.String()) < strings.ToLower(b.Name.String())
	}
	meetingByDate = func(a, b models.Meeting) bool {
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Message < b.Message
	}
	reminderByDate = func(a, b models.Reminder) bool {
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Message < b.Message
	}
	saleByDate = func(a, b models.Sale) bool {
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Item < b.Item
	}
)

// Store is the single owner of all record lifetimes. One mutex guards
// both mutations and view reads; the execute path is serialized above
// this layer, the lock only shields the HTTP/MCP read adapters.
type Store struct {
	mu sync.Mutex

	persons   collection[models.Person]
	meetings  collection[models.Meeting]
	reminders collection[models.Reminder]
	sales     collection[models.Sale]

	contactTags []models.TagName
	saleTags    []models.TagName

	filteredPersons *FilteredView[models.Person]
	sortedPersons   *SortedView[models.Person]
	sortedMeetings  *SortedView[models.Meeting]
	sortedReminders *SortedView[models.Reminder]
	filteredSales   *FilteredView[models.Sale]
	sortedSales     *SortedView[models.Sale]
	allSalesByDate  *SortedView[models.Sale]
}

// New creates an empty store with default views: persons shown in name
// order, meetings/reminders in date order, and sales hidden until a
// filter selects them.
func New() *Store {
	s := &Store{}
	s.filteredPersons = NewFilteredView(&s.persons, nil)
	s.sortedPersons = NewSortedView(s.filteredPersons, personByName)
	s.sortedMeetings = NewSortedView(NewFilteredView(&s.meetings, nil), meetingByDate)
	s.sortedReminders = NewSortedView(NewFilteredView(&s.reminders, nil), reminderByDate)
	s.filteredSales = NewFilteredView(&s.sales, func(models.Sale) bool { return false })
	s.sortedSales = NewSortedView(s.filteredSales, saleByDate)
	s.allSalesByDate = NewSortedView(NewFilteredView(&s.sales, nil), saleByDate)
	return s
}

//=========== Persons ===========

// HasPerson reports membership by full-field equality.
func (s *Store) HasPerson(p models.Person) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOfPerson(p) >= 0
}

// AddPerson appends a person and folds its tags into the contact-tag
// namespace. Duplicate persons are rejected.
func (s *Store) AddPerson(p models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOfPerson(p) >= 0 {
		return apperr.ErrDuplicate
	}
	s.persons.items = append(s.persons.items, p)
	s.persons.bump()
	s.absorbContactTags(p.Tags)
	return nil
}

// RemovePerson deletes a person and cascades removal of the meetings,
// reminders, and sales that reference them.
func (s *Store) RemovePerson(p models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOfPerson(p)
	if i < 0 {
		return apperr.ErrNotFound
	}
	s.persons.items = append(s.persons.items[:i], s.persons.items[i+1:]...)
	s.persons.bump()
	s.dropDependents(p)
	return nil
}

// ReplacePerson substitutes old with edited, rejecting an edit that
// collides with another existing person. Dependent records follow the
// contact to its new value.
func (s *Store) ReplacePerson(old, edited models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOfPerson(old)
	if i < 0 {
		return apperr.ErrNotFound
	}
	if j := s.indexOfPerson(edited); j >= 0 && j != i {
		return apperr.ErrDuplicate
	}
	s.persons.items[i] = edited
	s.persons.bump()
	s.absorbContactTags(edited.Tags)
	s.retargetDependents(old, edited)
	return nil
}

// Persons returns the displayed (filtered then sorted) person view.
func (s *Store) Persons() []models.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedPersons.Items()
}

// SetPersonFilter replaces the person predicate; nil shows all. The
// sort order resets to the default name order, as a new filter means a
// fresh listing.
func (s *Store) SetPersonFilter(pred func(models.Person) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filteredPersons.SetPredicate(pred)
	s.sortedPersons.SetComparator(personByName)
}

// SetPersonComparator replaces the person sort order.
func (s *Store) SetPersonComparator(less func(a, b models.Person) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortedPersons.SetComparator(less)
}

//=========== Meetings ===========

// HasMeeting reports membership by full-field equality.
func (s *Store) HasMeeting(m models.Meeting) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOfMeeting(s.meetings.items, m) >= 0
}

// AddMeeting appends a meeting, rejecting duplicates.
func (s *Store) AddMeeting(m models.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOfMeeting(s.meetings.items, m) >= 0 {
		return apperr.ErrDuplicate
	}
	s.meetings.items = append(s.meetings.items, m)
	s.meetings.bump()
	return nil
}

// RemoveMeeting deletes a meeting.
func (s *Store) RemoveMeeting(m models.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOfMeeting(s.meetings.items, m)
	if i < 0 {
		return apperr.ErrNotFound
	}
	s.meetings.items = append(s.meetings.items[:i], s.meetings.items[i+1:]...)
	s.meetings.bump()
	return nil
}

// Meetings returns the date-ordered meeting view.
func (s *Store) Meetings() []models.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedMeetings.Items()
}

//=========== Reminders ===========

// HasReminder reports membership by full-field equality.
func (s *Store) HasReminder(r models.Reminder) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOfReminder(s.reminders.items, r) >= 0
}

// AddReminder appends a reminder, rejecting duplicates.
func (s *Store) AddReminder(r models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOfReminder(s.reminders.items, r) >= 0 {
		return apperr.ErrDuplicate
	}
	s.reminders.items = append(s.reminders.items, r)
	s.reminders.bump()
	return nil
}

// RemoveReminder deletes a reminder.
func (s *Store) RemoveReminder(r models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOfReminder(s.reminders.items, r)
	if i < 0 {
		return apperr.ErrNotFound
	}
	s.reminders.items = append(s.reminders.items[:i], s.reminders.items[i+1:]...)
	s.reminders.bump()
	return nil
}

// Reminders returns the date-ordered reminder view.
func (s *Store) Reminders() []models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedReminders.Items()
}

//=========== Sales ===========

// HasSale reports membership by full-field equality.
func (s *Store) HasSale(sale models.Sale) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOfSale(s.sales.items, sale) >= 0
}

// AddSale appends a sale and folds its tags into the sale-tag
// namespace. Duplicate sales are rejected.
func (s *Store) AddSale(sale models.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOfSale(s.sales.items, sale) >= 0 {
		return apperr.ErrDuplicate
	}
	s.sales.items = append(s.sales.items, sale)
	s.sales.bump()
	s.absorbSaleTags(sale.Tags)
	return nil
}

// RemoveSale deletes a sale.
func (s *Store) RemoveSale(sale models.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOfSale(s.sales.items, sale)
	if i < 0 {
		return apperr.ErrNotFound
	}
	s.sales.items = append(s.sales.items[:i], s.sales.items[i+1:]...)
	s.sales.bump()
	return nil
}

// Sales returns the displayed (filtered then sorted) sale view. The
// default filter hides everything until a listing selects a contact.
func (s *Store) Sales() []models.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedSales.Items()
}

// AllSales returns every sale in date order, regardless of the
// displayed filter. Index-addressed sale commands resolve against this
// view so filtering never shifts delete targets.
func (s *Store) AllSales() []models.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allSalesByDate.Items()
}

// SetSaleFilter replaces the sale predicate; nil shows all.
func (s *Store) SetSaleFilter(pred func(models.Sale) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filteredSales.SetPredicate(pred)
}

//=========== Tags ===========

// ContactTags returns the contact-tag namespace in name order.
func (s *Store) ContactTags() []models.TagName {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TagName, len(s.contactTags))
	copy(out, s.contactTags)
	return out
}

// SaleTags returns the sale-tag namespace in name order.
func (s *Store) SaleTags() []models.TagName {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.TagName, len(s.saleTags))
	copy(out, s.saleTags)
	return out
}

// HasContactTag reports membership in the contact-tag namespace.
func (s *Store) HasContactTag(t models.TagName) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOfTag(s.contactTags, t) >= 0
}

// HasSaleTag reports membership in the sale-tag namespace.
func (s *Store) HasSaleTag(t models.TagName) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOfTag(s.saleTags, t) >= 0
}

// AddContactTag registers a tag, rejecting duplicates.
func (s *Store) AddContactTag(t models.TagName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOfTag(s.contactTags, t) >= 0 {
		return apperr.ErrDuplicate
	}
	s.contactTags = insertTag(s.contactTags, t)
	return nil
}

// AddSaleTag registers a tag, rejecting duplicates.
func (s *Store) AddSaleTag(t models.TagName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOfTag(s.saleTags, t) >= 0 {
		return apperr.ErrDuplicate
	}
	s.saleTags = insertTag(s.saleTags, t)
	return nil
}

// RenameContactTag renames old to new and cascades the rename to every
// person tagged old. Missing old fails NotFound; occupied new fails
// Duplicate.
func (s *Store) RenameContactTag(old, new models.TagName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOfTag(s.contactTags, old)
	if i < 0 {
		return apperr.ErrNotFound
	}
	if indexOfTag(s.contactTags, new) >= 0 {
		return apperr.ErrDuplicate
	}
	s.contactTags = insertTag(append(s.contactTags[:i], s.contactTags[i+1:]...), new)
	for k, p := range s.persons.items {
		if p.HasTag(old) {
			s.persons.items[k] = p.WithTags(models.ReplaceTag(p.Tags, old, new))
		}
	}
	s.persons.bump()
	return nil
}

// RenameSaleTag renames old to new and cascades to every sale tagged old.
func (s *Store) RenameSaleTag(old, new models.TagName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOfTag(s.saleTags, old)
	if i < 0 {
		return apperr.ErrNotFound
	}
	if indexOfTag(s.saleTags, new) >= 0 {
		return apperr.ErrDuplicate
	}
	s.saleTags = insertTag(append(s.saleTags[:i], s.saleTags[i+1:]...), new)
	for k, sale := range s.sales.items {
		if sale.HasTag(old) {
			s.sales.items[k] = sale.WithTags(models.ReplaceTag(sale.Tags, old, new))
		}
	}
	s.sales.bump()
	return nil
}

// RemoveContactTag deletes a tag and strips it from every person.
func (s *Store) RemoveContactTag(t models.TagName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOfTag(s.contactTags, t)
	if i < 0 {
		return apperr.ErrNotFound
	}
	s.contactTags = append(s.contactTags[:i], s.contactTags[i+1:]...)
	for k, p := range s.persons.items {
		if p.HasTag(t) {
			s.persons.items[k] = p.WithTags(models.RemoveTag(p.Tags, t))
		}
	}
	s.persons.bump()
	return nil
}

// RemoveSaleTag deletes a tag and strips it from every sale.
func (s *Store) RemoveSaleTag(t models.TagName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOfTag(s.saleTags, t)
	if i < 0 {
		return apperr.ErrNotFound
	}
	s.saleTags = append(s.saleTags[:i], s.saleTags[i+1:]...)
	for k, sale := range s.sales.items {
		if sale.HasTag(t) {
			s.sales.items[k] = sale.WithTags(models.RemoveTag(sale.Tags, t))
		}
	}
	s.sales.bump()
	return nil
}

// CountByContactTag returns how many persons carry the tag.
func (s *Store) CountByContactTag(t models.TagName) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, p := range s.persons.items {
		if p.HasTag(t) {
			n++
		}
	}
	return n
}

// SalesByTag returns the sales carrying the tag, in date order.
func (s *Store) SalesByTag(t models.TagName) []models.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Sale
	for _, sale := range s.allSalesByDate.Items() {
		if sale.HasTag(t) {
			out = append(out, sale)
		}
	}
	return out
}

//=========== Bulk ===========

// Reset replaces all collections at once (snapshot load). Views keep
// their current predicates and comparators.
func (s *Store) Reset(persons []models.Person, meetings []models.Meeting,
	reminders []models.Reminder, sales []models.Sale,
	contactTags, saleTags []models.TagName) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persons.items = append([]models.Person(nil), persons...)
	s.meetings.items = append([]models.Meeting(nil), meetings...)
	s.reminders.items = append([]models.Reminder(nil), reminders...)
	s.sales.items = append([]models.Sale(nil), sales...)
	s.contactTags = sortedTagSet(contactTags)
	s.saleTags = sortedTagSet(saleTags)
	for _, p := range persons {
		s.absorbContactTags(p.Tags)
	}
	for _, sale := range sales {
		s.absorbSaleTags(sale.Tags)
	}
	s.persons.bump()
	s.meetings.bump()
	s.reminders.bump()
	s.sales.bump()
}

// Clear empties every collection and both tag namespaces.
func (s *Store) Clear() {
	s.Reset(nil, nil, nil, nil, nil, nil)
}

// Size returns the canonical record count for a group. The tag group
// counts both namespaces.
func (s *Store) Size(g models.Group) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch g {
	case models.GroupContact:
		return len(s.persons.items)
	case models.GroupMeeting:
		return len(s.meetings.items)
	case models.GroupReminder:
		return len(s.reminders.items)
	case models.GroupSale:
		return len(s.sales.items)
	case models.GroupTag:
		return len(s.contactTags) + len(s.saleTags)
	}
	return 0
}

//=========== internals (callers hold s.mu) ===========

func (s *Store) indexOfPerson(p models.Person) int {
	for i, got := range s.persons.items {
		if got.Equals(p) {
			return i
		}
	}
	return -1
}

func indexOfMeeting(items []models.Meeting, m models.Meeting) int {
	for i, got := range items {
		if got.Equals(m) {
			return i
		}
	}
	return -1
}

func indexOfReminder(items []models.Reminder, r models.Reminder) int {
	for i, got := range items {
		if got.Equals(r) {
			return i
		}
	}
	return -1
}

func indexOfSale(items []models.Sale, sale models.Sale) int {
	for i, got := range items {
		if got.Equals(sale) {
			return i
		}
	}
	return -1
}

func indexOfTag(tags []models.TagName, t models.TagName) int {
	for i, got := range tags {
		if got == t {
			return i
		}
	}
	return -1
}

func insertTag(tags []models.TagName, t models.TagName) []models.TagName {
	tags = append(tags, t)
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

func sortedTagSet(tags []models.TagName) []models.TagName {
	var out []models.TagName
	for _, t := range tags {
		if indexOfTag(out, t) < 0 {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Store) absorbContactTags(tags []models.TagName) {
	for _, t := range tags {
		if indexOfTag(s.contactTags, t) < 0 {
			s.contactTags = insertTag(s.contactTags, t)
		}
	}
}

func (s *Store) absorbSaleTags(tags []models.TagName) {
	for _, t := range tags {
		if indexOfTag(s.saleTags, t) < 0 {
			s.saleTags = insertTag(s.saleTags, t)
		}
	}
}

func (s *Store) dropDependents(p models.Person) {
	meetings := s.meetings.items[:0]
	for _, m := range s.meetings.items {
		if !m.Contact.Equals(p) {
			meetings = append(meetings, m)
		}
	}
	s.meetings.items = meetings
	s.meetings.bump()

	reminders := s.reminders.items[:0]
	for _, r := range s.reminders.items {
		if !r.Contact.Equals(p) {
			reminders = append(reminders, r)
		}
	}
	s.reminders.items = reminders
	s.reminders.bump()

	sales := s.sales.items[:0]
	for _, sale := range s.sales.items {
		if !sale.Contact.Equals(p) {
			sales = append(sales, sale)
		}
	}
	s.sales.items = sales
	s.sales.bump()
}

func (s *Store) retargetDependents(old, edited models.Person) {
	for i, m := range s.meetings.items {
		if m.Contact.Equals(old) {
			m.Contact = edited
			s.meetings.items[i] = m
		}
	}
	s.meetings.bump()
	for i, r := range s.reminders.items {
		if r.Contact.Equals(old) {
			r.Contact = edited
			s.reminders.items[i] = r
		}
	}
	s.reminders.bump()
	for i, sale := range s.sales.items {
		if sale.Contact.Equals(old) {
			sale.Contact = edited
			s.sales.items[i] = sale
		}
	}
	s.sales.bump()
}

// Snapshot-side accessors: canonical order, no filtering.

// AllPersons returns the canonical person slice copy.
func (s *Store) AllPersons() []models.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Person(nil), s.persons.items...)
}

// AllMeetings returns the canonical meeting slice copy.
func (s *Store) AllMeetings() []models.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Meeting(nil), s.meetings.items...)
}

// AllReminders returns the canonical reminder slice copy.
func (s *Store) AllReminders() []models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Reminder(nil), s.reminders.items...)
}

// AllSalesCanonical returns the canonical sale slice copy.
func (s *Store) AllSalesCanonical() []models.Sale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Sale(nil), s.sales.items...)
}
