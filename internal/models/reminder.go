package models

import "fmt"

// Reminder is a dated follow-up note attached to a contact.
type Reminder struct {
	Contact Person
	Message Message
	Date    DateTime
}

// NewReminder constructs a Reminder.
func NewReminder(contact Person, message Message, date DateTime) Reminder {
	return Reminder{Contact: contact, Message: message, Date: date}
}

// Equals compares all fields.
func (r Reminder) Equals(o Reminder) bool {
	return r.Contact.Equals(o.Contact) &&
		r.Message == o.Message &&
		r.Date.Equal(o.Date)
}

func (r Reminder) String() string {
	return fmt.Sprintf("%s (about %s, due %s)", r.Message, r.Contact.Name, r.Date)
}
