package command

import (
	"errors"
	"strings"

	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/models"
	"github.com/verlow/clientele/internal/store"
)

// AddContact adds one person.
type AddContact struct {
	Person models.Person
}

func (c AddContact) Execute(s *store.Store) (*Result, error) {
	if err := s.AddPerson(c.Person); err != nil {
		return nil, apperr.CommandWrap(err, MsgDuplicateContact)
	}
	// A fresh add always re-shows the full list, so the new contact is
	// visible whatever filter a find left behind.
	s.SetPersonFilter(nil)
	return mutated(models.GroupContact, "New contact added: %s", c.Person), nil
}

// EditPersonDescriptor carries the fields an edit replaces; nil fields
// keep the target's value.
type EditPersonDescriptor struct {
	Name  *models.Name
	Phone *models.Phone
	Email *models.Email
	Tags  []models.TagName // nil keeps, empty non-nil clears
}

// Any reports whether the descriptor edits at least one field.
func (d EditPersonDescriptor) Any() bool {
	return d.Name != nil || d.Phone != nil || d.Email != nil || d.Tags != nil
}

func (d EditPersonDescriptor) apply(target models.Person) models.Person {
	name, phone, email, tags := target.Name, target.Phone, target.Email, target.Tags
	if d.Name != nil {
		name = *d.Name
	}
	if d.Phone != nil {
		phone = *d.Phone
	}
	if d.Email != nil {
		email = *d.Email
	}
	if d.Tags != nil {
		tags = d.Tags
	}
	return models.NewPerson(name, phone, email, tags)
}

// EditContact replaces the person at a display index.
type EditContact struct {
	Index      models.Index
	Descriptor EditPersonDescriptor
}

func (c EditContact) Execute(s *store.Store) (*Result, error) {
	target, err := resolvePerson(s, c.Index)
	if err != nil {
		return nil, err
	}
	edited := c.Descriptor.apply(target)
	if err := s.ReplacePerson(target, edited); err != nil {
		if errors.Is(err, apperr.ErrDuplicate) {
			return nil, apperr.CommandWrap(err, MsgDuplicateContact)
		}
		return nil, apperr.CommandWrap(err, MsgInvalidContactIndex)
	}
	return mutated(models.GroupContact, "Edited contact: %s", edited), nil
}

// DeleteContact removes the person at a display index, cascading to
// their meetings, reminders, and sales.
type DeleteContact struct {
	Index models.Index
}

func (c DeleteContact) Execute(s *store.Store) (*Result, error) {
	target, err := resolvePerson(s, c.Index)
	if err != nil {
		return nil, err
	}
	if err := s.RemovePerson(target); err != nil {
		return nil, apperr.CommandWrap(err, MsgInvalidContactIndex)
	}
	return mutated(models.GroupContact, "Deleted contact: %s", target), nil
}

// ListContacts shows every person.
type ListContacts struct{}

func (ListContacts) Execute(s *store.Store) (*Result, error) {
	s.SetPersonFilter(nil)
	return feedback("Listed all contacts"), nil
}

// FindContacts filters persons whose name contains any keyword.
type FindContacts struct {
	Keywords []string
}

func (c FindContacts) Execute(s *store.Store) (*Result, error) {
	keywords := make([]string, len(c.Keywords))
	for i, k := range c.Keywords {
		keywords[i] = strings.ToLower(k)
	}
	s.SetPersonFilter(func(p models.Person) bool {
		name := strings.ToLower(p.Name.String())
		for _, k := range keywords {
			if strings.Contains(name, k) {
				return true
			}
		}
		return false
	})
	return feedback("%d contacts listed!", len(s.Persons())), nil
}
