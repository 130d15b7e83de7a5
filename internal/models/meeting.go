package models

import "fmt"

// Meeting is a scheduled appointment with a contact.
type Meeting struct {
	Contact Person
	Message Message
	Date    DateTime
}

// NewMeeting constructs a Meeting.
func NewMeeting(contact Person, message Message, date DateTime) Meeting {
	return Meeting{Contact: contact, Message: message, Date: date}
}

// Equals compares all fields.
func (m Meeting) Equals(o Meeting) bool {
	return m.Contact.Equals(o.Contact) &&
		m.Message == o.Message &&
		m.Date.Equal(o.Date)
}

func (m Meeting) String() string {
	return fmt.Sprintf("%s (with %s on %s)", m.Message, m.Contact.Name, m.Date)
}
