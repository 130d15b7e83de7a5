package command

import (
	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/models"
	"github.com/verlow/clientele/internal/store"
)

// AddMeeting schedules a meeting with the contact at ContactIndex.
type AddMeeting struct {
	ContactIndex models.Index
	Message      models.Message
	Date         models.DateTime
}

func (c AddMeeting) Execute(s *store.Store) (*Result, error) {
	contact, err := resolvePerson(s, c.ContactIndex)
	if err != nil {
		return nil, err
	}
	m := models.NewMeeting(contact, c.Message, c.Date)
	if err := s.AddMeeting(m); err != nil {
		return nil, apperr.CommandWrap(err, MsgDuplicateMeeting)
	}
	return mutated(models.GroupMeeting, "New meeting added: %s", m), nil
}

// DeleteMeeting removes the meeting at a display index.
type DeleteMeeting struct {
	Index models.Index
}

func (c DeleteMeeting) Execute(s *store.Store) (*Result, error) {
	meetings := s.Meetings()
	if c.Index.ZeroBased() >= len(meetings) {
		return nil, apperr.Command(MsgInvalidMeetingIndex)
	}
	target := meetings[c.Index.ZeroBased()]
	if err := s.RemoveMeeting(target); err != nil {
		return nil, apperr.CommandWrap(err, MsgInvalidMeetingIndex)
	}
	return mutated(models.GroupMeeting, "Deleted meeting: %s", target), nil
}

// ListMeetings shows every meeting in date order.
type ListMeetings struct{}

func (ListMeetings) Execute(s *store.Store) (*Result, error) {
	return feedback("Listed all %d meetings", len(s.Meetings())), nil
}
