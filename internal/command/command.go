// Package command defines one executable variant per user action. A
// command validates runtime state against the store, applies a single
// atomic mutation (or a pure read), and reports the outcome as a
// Result. Runtime failures are apperr.CommandErrors and leave the
// store unmodified.
package command

import (
	"fmt"

	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/models"
	"github.com/verlow/clientele/internal/stats"
	"github.com/verlow/clientele/internal/store"
)

// Command is the capability shared by every parsed user action.
type Command interface {
	Execute(s *store.Store) (*Result, error)
}

// Result carries user-facing feedback plus flags for the boundary.
type Result struct {
	// Feedback is the human-readable outcome text.
	Feedback string
	// Exit requests application shutdown.
	Exit bool
	// ShowHelp requests the help surface.
	ShowHelp bool
	// Cleared reports that every collection was purged.
	Cleared bool
	// Mutated lists the groups whose collections changed; empty for
	// pure reads. The boundary persists and notifies per entry.
	Mutated []models.Group
	// Report attaches monthly statistics when the command produced one.
	Report *stats.MonthlyCountSet
}

func feedback(format string, args ...any) *Result {
	return &Result{Feedback: fmt.Sprintf(format, args...)}
}

func mutated(g models.Group, format string, args ...any) *Result {
	return &Result{Feedback: fmt.Sprintf(format, args...), Mutated: []models.Group{g}}
}

// Runtime failure messages. Kept as constants so tests and the parser
// usage texts stay in step.
const (
	MsgInvalidContactIndex  = "the contact index provided is invalid"
	MsgInvalidMeetingIndex  = "the meeting index provided is invalid"
	MsgInvalidReminderIndex = "the reminder index provided is invalid"
	MsgInvalidSaleIndex     = "the sale index provided is invalid"
	MsgInvalidTagIndex      = "the tag index provided is invalid"

	MsgDuplicateContact  = "this contact already exists"
	MsgDuplicateMeeting  = "this meeting already exists"
	MsgDuplicateReminder = "this reminder already exists"
	MsgDuplicateSale     = "this sale already exists"
	MsgDuplicateTag      = "this tag already exists"
)

// resolvePerson maps a one-based display index onto the person shown at
// that position of the sorted view.
func resolvePerson(s *store.Store, idx models.Index) (models.Person, error) {
	persons := s.Persons()
	if idx.ZeroBased() >= len(persons) {
		return models.Person{}, apperr.Command(MsgInvalidContactIndex)
	}
	return persons[idx.ZeroBased()], nil
}
