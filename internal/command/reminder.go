package command

import (
	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/models"
	"github.com/verlow/clientele/internal/store"
)

// AddReminder schedules a reminder about the contact at ContactIndex.
type AddReminder struct {
	ContactIndex models.Index
	Message      models.Message
	Date         models.DateTime
}

func (c AddReminder) Execute(s *store.Store) (*Result, error) {
	contact, err := resolvePerson(s, c.ContactIndex)
	if err != nil {
		return nil, err
	}
	r := models.NewReminder(contact, c.Message, c.Date)
	if err := s.AddReminder(r); err != nil {
		return nil, apperr.CommandWrap(err, MsgDuplicateReminder)
	}
	return mutated(models.GroupReminder, "New reminder added: %s", r), nil
}

// DeleteReminder removes the reminder at a display index.
type DeleteReminder struct {
	Index models.Index
}

func (c DeleteReminder) Execute(s *store.Store) (*Result, error) {
	reminders := s.Reminders()
	if c.Index.ZeroBased() >= len(reminders) {
		return nil, apperr.Command(MsgInvalidReminderIndex)
	}
	target := reminders[c.Index.ZeroBased()]
	if err := s.RemoveReminder(target); err != nil {
		return nil, apperr.CommandWrap(err, MsgInvalidReminderIndex)
	}
	return mutated(models.GroupReminder, "Deleted reminder: %s", target), nil
}

// ListReminders shows every reminder in date order.
type ListReminders struct{}

func (ListReminders) Execute(s *store.Store) (*Result, error) {
	return feedback("Listed all %d reminders", len(s.Reminders())), nil
}
