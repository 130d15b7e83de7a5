package parser

import (
	"strings"

	"github.com/verlow/clientele/internal/apperr"
	"github.com/verlow/clientele/internal/command"
	"github.com/verlow/clientele/internal/models"
)

func parseContactCommand(commandWord, args string) (command.Command, error) {
	switch commandWord {
	case "add":
		return parseContactAdd(args)
	case "edit":
		return parseContactEdit(args)
	case "delete":
		return parseContactDelete(args)
	case "list":
		return command.ListContacts{}, nil
	case "find":
		return parseContactFind(args)
	default:
		return nil, apperr.Parse(MsgUnknownCommand)
	}
}

func parseContactAdd(args string) (command.Command, error) {
	m := Tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixTag)
	if m.Preamble() != "" || !m.allPresent(PrefixName, PrefixPhone, PrefixEmail) {
		return nil, invalidFormat(UsageContactAdd)
	}

	rawName, _ := m.Value(PrefixName)
	name, err := models.NewName(rawName)
	if err != nil {
		return nil, asParseError(err)
	}
	rawPhone, _ := m.Value(PrefixPhone)
	phone, err := models.NewPhone(rawPhone)
	if err != nil {
		return nil, asParseError(err)
	}
	rawEmail, _ := m.Value(PrefixEmail)
	email, err := models.NewEmail(rawEmail)
	if err != nil {
		return nil, asParseError(err)
	}
	tags, _, err := parseTagSet(m)
	if err != nil {
		return nil, err
	}

	return command.AddContact{Person: models.NewPerson(name, phone, email, tags)}, nil
}

func parseContactEdit(args string) (command.Command, error) {
	m := Tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixTag)
	idx, err := parseIndex(m.Preamble())
	if err != nil {
		return nil, invalidFormat(UsageContactEdit)
	}

	var d command.EditPersonDescriptor
	if raw, ok := m.Value(PrefixName); ok {
		name, err := models.NewName(raw)
		if err != nil {
			return nil, asParseError(err)
		}
		d.Name = &name
	}
	if raw, ok := m.Value(PrefixPhone); ok {
		phone, err := models.NewPhone(raw)
		if err != nil {
			return nil, asParseError(err)
		}
		d.Phone = &phone
	}
	if raw, ok := m.Value(PrefixEmail); ok {
		email, err := models.NewEmail(raw)
		if err != nil {
			return nil, asParseError(err)
		}
		d.Email = &email
	}
	if tags, present, err := parseTagSet(m); err != nil {
		return nil, err
	} else if present {
		d.Tags = tags
	}

	if !d.Any() {
		return nil, invalidFormat(UsageContactEdit)
	}
	return command.EditContact{Index: idx, Descriptor: d}, nil
}

func parseContactDelete(args string) (command.Command, error) {
	idx, err := parseIndex(args)
	if err != nil {
		return nil, invalidFormat(UsageContactDelete)
	}
	return command.DeleteContact{Index: idx}, nil
}

func parseContactFind(args string) (command.Command, error) {
	keywords := strings.Fields(args)
	if len(keywords) == 0 {
		return nil, invalidFormat(UsageContactFind)
	}
	return command.FindContacts{Keywords: keywords}, nil
}
