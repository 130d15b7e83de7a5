// Package models defines the record groups and their self-validating
// value objects. Every constructor validates its input and returns an
// apperr.ValidationError naming the field when the domain constraint is
// not met; a value that exists is always valid.
package models

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/verlow/clientele/internal/apperr"
)

// Constraint messages surfaced verbatim in user feedback.
const (
	NameConstraints    = "names should only contain letters, digits and spaces, and should not be blank"
	PhoneConstraints   = "phone numbers should only contain digits, and should be at least 3 digits long"
	EmailConstraints   = "emails should be of the form local-part@domain"
	MessageConstraints = "messages should not be blank"
	TagNameConstraints = "tag names should be alphanumeric and should not be blank"
	IndexConstraints   = "index should be a positive integer"
)

var (
	nameRe    = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	phoneRe   = regexp.MustCompile(`^\d{3,}$`)
	tagNameRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

// Name is a contact's display name.
type Name string

// NewName validates and constructs a Name.
func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if err := validation.Validate(s, validation.Required, validation.Match(nameRe)); err != nil {
		return "", apperr.Validation("name", NameConstraints)
	}
	return Name(s), nil
}

func (n Name) String() string { return string(n) }

// Phone is a contact's phone number.
type Phone string

// NewPhone validates and constructs a Phone.
func NewPhone(s string) (Phone, error) {
	s = strings.TrimSpace(s)
	if err := validation.Validate(s, validation.Required, validation.Match(phoneRe)); err != nil {
		return "", apperr.Validation("phone", PhoneConstraints)
	}
	return Phone(s), nil
}

func (p Phone) String() string { return string(p) }

// Email is a contact's email address.
type Email string

// NewEmail validates and constructs an Email.
func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if err := validation.Validate(s, validation.Required, is.EmailFormat); err != nil {
		return "", apperr.Validation("email", EmailConstraints)
	}
	return Email(s), nil
}

func (e Email) String() string { return string(e) }

// Message is the free-text subject of a reminder or meeting.
type Message string

// NewMessage validates and constructs a Message.
func NewMessage(s string) (Message, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperr.Validation("message", MessageConstraints)
	}
	return Message(s), nil
}

func (m Message) String() string { return string(m) }

// ItemName is the name of a sold item. It shares the Name grammar.
type ItemName string

// NewItemName validates and constructs an ItemName.
func NewItemName(s string) (ItemName, error) {
	s = strings.TrimSpace(s)
	if err := validation.Validate(s, validation.Required, validation.Match(nameRe)); err != nil {
		return "", apperr.Validation("item name", NameConstraints)
	}
	return ItemName(s), nil
}

func (n ItemName) String() string { return string(n) }

// TagName is the deduplication key of a tag within its namespace.
type TagName string

// NewTagName validates and constructs a TagName.
func NewTagName(s string) (TagName, error) {
	s = strings.TrimSpace(s)
	if err := validation.Validate(s, validation.Required, validation.Match(tagNameRe)); err != nil {
		return "", apperr.Validation("tag", TagNameConstraints)
	}
	return TagName(s), nil
}

func (t TagName) String() string { return string(t) }

// Index is a one-based position into a displayed (sorted) view.
type Index int

// NewIndex validates and constructs an Index from a one-based value.
func NewIndex(oneBased int) (Index, error) {
	if oneBased < 1 {
		return 0, apperr.Validation("index", IndexConstraints)
	}
	return Index(oneBased), nil
}

// OneBased returns the index as displayed to the user.
func (i Index) OneBased() int { return int(i) }

// ZeroBased returns the index as used for slice access.
func (i Index) ZeroBased() int { return int(i) - 1 }
